package vdom

import "strings"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node with the given tag.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string, Component.
// Nil arguments are ignored, which allows conditional attributes and children.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			if out := v.Render(); out != nil {
				node.Children = append(node.Children, out)
			}
		}
	}

	return node
}

// Common element constructors.

func Div(args ...any) *VNode    { return El("div", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func H1(args ...any) *VNode     { return El("h1", args...) }
func H2(args ...any) *VNode     { return El("h2", args...) }
func H3(args ...any) *VNode     { return El("h3", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
func Form(args ...any) *VNode   { return El("form", args...) }
func Label(args ...any) *VNode  { return El("label", args...) }
func A(args ...any) *VNode      { return El("a", args...) }
func Pre(args ...any) *VNode    { return El("pre", args...) }
func Code(args ...any) *VNode   { return El("code", args...) }

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with a Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("action", "inc") → data-action="inc"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// ValueAttr sets the value attribute.
func ValueAttr(v any) Attr { return attr("value", v) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// OnClick attaches a click handler.
func OnClick(handler any) Attr { return attr("onclick", handler) }

// OnInput attaches an input handler.
func OnInput(handler any) Attr { return attr("oninput", handler) }

// OnSubmit attaches a submit handler.
func OnSubmit(handler any) Attr { return attr("onsubmit", handler) }
