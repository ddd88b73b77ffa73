package provider

import "github.com/stateview-go/stateview/pkg/vdom"

// TargetKind discriminates where a provider's render target came from.
type TargetKind uint8

const (
	// TargetNone means no render target is resolvable; rendering produces
	// empty output. This is the documented fallback, not an error.
	TargetNone TargetKind = iota

	// TargetDefault is the definition's DefaultRender.
	TargetDefault

	// TargetRenderProp is a presenter supplied via the KeyRender prop.
	TargetRenderProp

	// TargetNestedContent is a presenter supplied via the KeyChildren prop.
	// It takes priority over TargetRenderProp when both are present.
	TargetNestedContent
)

// String returns the string representation of the TargetKind.
func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "None"
	case TargetDefault:
		return "Default"
	case TargetRenderProp:
		return "RenderProp"
	case TargetNestedContent:
		return "NestedContent"
	default:
		return "Unknown"
	}
}

// RenderTarget is the resolved render target of a provider instance:
// the presenter function plus where it came from.
type RenderTarget struct {
	Kind TargetKind
	Fn   RenderFunc
}

// ResolveTarget picks the render target for the given props and definition.
// Priority: nested content > render prop > definition default > none.
// Non-function values in the presenter channels are ignored and resolution
// falls through to the next priority.
func ResolveTarget(props Props, def Def) RenderTarget {
	if fn := asRenderFunc(props[KeyChildren]); fn != nil {
		return RenderTarget{Kind: TargetNestedContent, Fn: fn}
	}
	if fn := asRenderFunc(props[KeyRender]); fn != nil {
		return RenderTarget{Kind: TargetRenderProp, Fn: fn}
	}
	if def.DefaultRender != nil {
		return RenderTarget{Kind: TargetDefault, Fn: def.DefaultRender}
	}
	return RenderTarget{Kind: TargetNone}
}

// asRenderFunc extracts a presenter from a prop value.
// Accepts both the named RenderFunc type and its underlying function type.
func asRenderFunc(v any) RenderFunc {
	switch fn := v.(type) {
	case RenderFunc:
		return fn
	case func(Payload, Ctx) *vdom.VNode:
		return fn
	}
	return nil
}
