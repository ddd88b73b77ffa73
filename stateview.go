// Package stateview provides the public API for the stateview composition
// library: a state-holding provider that separates state and behavior from
// presentation, and a composition function that recombines the two.
//
// This is the recommended import for most applications:
//
//	import "github.com/stateview-go/stateview"
//
// Usage:
//
//	Counter := stateview.Def{
//	    Name:         "Counter",
//	    DefaultState: func() stateview.State { return stateview.State{"count": 0} },
//	    MakeHandlers: func(p *stateview.Provider) stateview.Handlers {
//	        return stateview.Handlers{
//	            "increment": func() {
//	                n, _ := p.State()["count"].(int)
//	                p.RequestMutation(stateview.State{"count": n + 1})
//	            },
//	        }
//	    },
//	}
//
//	CounterButton := stateview.WithRender(Counter, counterView)
//	p := CounterButton.Mount(stateview.Props{"label": "Clicks"})
package stateview

import (
	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

// =============================================================================
// Provider (the stateful half)
// =============================================================================

// State is the mutable state mapping owned by one provider instance.
type State = provider.State

// Props are the input properties a provider is constructed with.
type Props = provider.Props

// Handlers maps action names to callbacks, fixed at construction.
type Handlers = provider.Handlers

// Payload is the merged object handed to presenters:
// passthrough props, then state, then handlers.
type Payload = provider.Payload

// Def defines a provider variant: default state, handler factory, and
// fallback presenter.
type Def = provider.Def

// Provider holds state and handlers and delegates rendering.
type Provider = provider.Provider

// RenderFunc is the presenter shape.
type RenderFunc = provider.RenderFunc

// Ctx is the render context handed to presenters.
type Ctx = provider.Ctx

// StateProvider constructs a provider instance from a definition and
// input props.
func StateProvider(def Def, props Props) *Provider {
	return provider.New(def, props)
}

// NewCtx creates a plain render context.
var NewCtx = provider.NewCtx

// =============================================================================
// Composition (the recombining half)
// =============================================================================

// Component is a provider definition with a presenter bound to it.
type Component = compose.Component

// Factory is the deferred, two-step form of WithRender.
type Factory = compose.Factory

// WithRender binds a stateless presenter to a provider definition.
func WithRender(def Def, presenter RenderFunc) Component {
	return compose.WithRender(def, presenter)
}

// NewFactory creates a Factory over the given provider definition.
func NewFactory(def Def) Factory {
	return compose.NewFactory(def)
}

// =============================================================================
// Output model
// =============================================================================

// VNode is the virtual node presenters render into.
type VNode = vdom.VNode

// Func creates a render-only component from a function.
var Func = vdom.Func
