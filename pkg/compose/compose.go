package compose

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

// Component is a provider definition with a presenter bound as its render
// target. The component itself is stateless: all state lives in the
// provider instance created per Mount.
type Component struct {
	name      string
	def       provider.Def
	presenter provider.RenderFunc
}

// WithRender binds a stateless presenter to a provider definition.
//
// The returned component mounts instances whose render target is the given
// presenter; the presenter defines the composition's identity and always
// wins over a KeyRender prop supplied at mount time. A nil presenter does
// not force empty output: the component falls back to the provider's
// normal target resolution (nested content, render prop, then the
// definition's default).
func WithRender(def provider.Def, presenter provider.RenderFunc) Component {
	return Component{
		name:      composedName(def, presenter),
		def:       def,
		presenter: presenter,
	}
}

// Factory is the deferred form of WithRender: definition now, presenter
// later. It replaces argument-count dispatch with an explicit two-step
// builder, so "no presenter yet" can never be confused with "presenter
// explicitly absent".
type Factory struct {
	def provider.Def
}

// NewFactory creates a Factory over the given provider definition.
func NewFactory(def provider.Def) Factory {
	return Factory{def: def}
}

// Build completes the composition. Build(presenter) is equivalent to
// WithRender(def, presenter).
func (f Factory) Build(presenter provider.RenderFunc) Component {
	return WithRender(f.def, presenter)
}

// Name returns the component's diagnostic name, derived from the
// definition name and the presenter's function name.
func (c Component) Name() string {
	return c.name
}

// Def returns the underlying provider definition.
func (c Component) Def() provider.Def {
	return c.def
}

// Mount constructs a provider instance for the given props with the bound
// presenter forced as the render target. All non-reserved props pass
// through into the instance's render payload.
func (c Component) Mount(props provider.Props) *provider.Provider {
	merged := make(provider.Props, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	if c.presenter != nil {
		// The composition's presenter wins over a caller-supplied render
		// prop, and over nested content.
		merged[provider.KeyChildren] = c.presenter
		delete(merged, provider.KeyRender)
	}
	return provider.New(c.def, merged)
}

// Render mounts a throwaway instance and renders it once. This is the
// one-shot path for static output; hosts that re-render keep the Mount
// result around instead.
func (c Component) Render(props provider.Props, ctx provider.Ctx) *vdom.VNode {
	return c.Mount(props).Render(ctx)
}

// composedName derives a diagnostic name like "WithRender(Counter, CounterView)".
func composedName(def provider.Def, presenter provider.RenderFunc) string {
	defName := def.Name
	if defName == "" {
		defName = "Provider"
	}
	return fmt.Sprintf("WithRender(%s, %s)", defName, funcName(presenter))
}

// funcName resolves a short function name for diagnostics.
func funcName(fn provider.RenderFunc) string {
	if fn == nil {
		return "<none>"
	}
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "<anonymous>"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
