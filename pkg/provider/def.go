package provider

import "github.com/stateview-go/stateview/pkg/vdom"

// State is the mutable state mapping owned by a single provider instance.
type State map[string]any

// Props are the input properties a provider instance is constructed with.
// Reserved keys (KeyInitialState, KeyRender, KeyChildren) configure the
// instance; everything else passes through into the render payload.
type Props map[string]any

// Handlers maps action names to callback functions. Handlers are computed
// once per instance and keep the same identity for the instance's lifetime.
type Handlers map[string]any

// Payload is the merged object given to a presenter: passthrough props,
// then state, then handlers, with later sources winning on key collision.
type Payload map[string]any

// RenderFunc is the presenter shape: a pure function from the merged
// payload and a render context to output.
type RenderFunc func(Payload, Ctx) *vdom.VNode

// Reserved prop keys recognized at construction.
const (
	// KeyInitialState overrides the definition's default state. It is read
	// once at construction; later changes to the props map do not
	// re-initialize state.
	KeyInitialState = "initialState"

	// KeyRender supplies a presenter as a named prop.
	KeyRender = "render"

	// KeyChildren supplies a presenter as nested content. When both
	// KeyChildren and KeyRender are set, nested content wins.
	KeyChildren = "children"
)

// Def defines a provider variant. Instead of subclassing a base type and
// overriding getters, a variant is a plain configuration value: every field
// except Name is optional and has an empty fallback.
type Def struct {
	// Name identifies the variant in diagnostics and composed component
	// names. Not behaviorally load-bearing.
	Name string

	// DefaultState produces the initial state used when the instance is
	// constructed without a non-empty KeyInitialState prop.
	// Nil means an empty state.
	DefaultState func() State

	// MakeHandlers builds the handler set for an instance. It is called
	// exactly once, at construction, with the instance it may mutate
	// through RequestMutation. Nil means no handlers.
	MakeHandlers func(p *Provider) Handlers

	// DefaultRender is the fallback presenter used when neither nested
	// content nor a render prop is supplied. Nil means empty output.
	DefaultRender RenderFunc
}
