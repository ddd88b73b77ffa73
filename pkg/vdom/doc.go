// Package vdom provides the virtual node model that presenters render into.
//
// VNode is the fundamental building block representing elements, text,
// fragments, and raw HTML. Props holds attributes and event handlers.
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// The model is deliberately small: there is no diffing, reconciliation, or
// hydration here. A VNode tree is an inert description of output that a
// renderer (see pkg/render) or a host turns into something visible.
package vdom
