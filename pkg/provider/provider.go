package provider

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/stateview-go/stateview/pkg/vdom"
)

// Scheduler is the host hook a provider notifies when a mutation has been
// merged and a re-render is due. Hosts serialize and may batch these
// notifications; the only guarantee is that the mutation is reflected in a
// subsequent render pass.
type Scheduler interface {
	ScheduleRender(p *Provider)
}

// Provider holds state and handlers for one mounted instance and delegates
// visual output to its resolved render target.
//
// State is owned exclusively by the instance and mutated only through
// RequestMutation (a shallow merge-patch). Handlers are computed once at
// construction and keep their identity for the instance's lifetime, so
// presenters can rely on referential stability.
type Provider struct {
	def    Def
	target RenderTarget

	// InstanceID uniquely identifies this instance for diagnostics.
	InstanceID string

	// passthrough are the construction props minus reserved keys.
	passthrough Props

	// state is the instance's mutable state.
	state State

	// handlers is fixed at construction.
	handlers Handlers

	// mu protects state and scheduler. Dispose clears both from whatever
	// goroutine the host runs it on, so neither may be touched unlocked.
	mu sync.RWMutex

	scheduler Scheduler
	disposed  atomic.Bool
}

// instanceIDCounter is used to generate unique instance IDs.
var instanceIDCounter atomic.Uint64

func generateInstanceID() string {
	id := instanceIDCounter.Add(1)
	return fmt.Sprintf("p%d", id)
}

// New constructs a provider instance from a definition and input props.
//
// Initial state priority: a present, non-empty KeyInitialState prop wins
// over def.DefaultState, which wins over an empty state. The initial-state
// prop is copied, never aliased, so callers keep ownership of their map.
//
// def.MakeHandlers runs exactly once, here, with the new instance.
func New(def Def, props Props) *Provider {
	p := &Provider{
		def:         def,
		InstanceID:  generateInstanceID(),
		passthrough: make(Props, len(props)),
		target:      ResolveTarget(props, def),
	}

	for k, v := range props {
		if k == KeyInitialState || k == KeyRender || k == KeyChildren {
			continue
		}
		p.passthrough[k] = v
	}

	p.state = initialState(def, props)

	if def.MakeHandlers != nil {
		p.handlers = def.MakeHandlers(p)
	}
	if p.handlers == nil {
		p.handlers = Handlers{}
	}

	return p
}

// initialState resolves the starting state per the construction contract.
func initialState(def Def, props Props) State {
	if v, ok := props[KeyInitialState]; ok {
		if s := asState(v); len(s) > 0 {
			out := make(State, len(s))
			for k, val := range s {
				out[k] = val
			}
			return out
		}
	}
	if def.DefaultState != nil {
		if s := def.DefaultState(); s != nil {
			return s
		}
	}
	return State{}
}

// asState extracts a state mapping from a prop value.
func asState(v any) State {
	switch s := v.(type) {
	case State:
		return s
	case map[string]any:
		return s
	}
	return nil
}

// Name returns the definition name for diagnostics.
func (p *Provider) Name() string {
	return p.def.Name
}

// Def returns the definition this instance was constructed from.
func (p *Provider) Def() Def {
	return p.def
}

// Target returns the resolved render target.
func (p *Provider) Target() RenderTarget {
	return p.target
}

// State returns a snapshot of the current state. Mutate through
// RequestMutation, not through the returned map.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(State, len(p.state))
	for k, v := range p.state {
		out[k] = v
	}
	return out
}

// Handlers returns the instance's handler set. The returned map is the
// instance's own and must be treated as read-only.
func (p *Provider) Handlers() Handlers {
	return p.handlers
}

// RequestMutation shallow-merges patch into the current state and notifies
// the bound scheduler that a re-render is due. It is safe to call from
// inside a handler callback. There is no synchronous re-render: the merge
// is reflected in whatever render pass the host runs next.
func (p *Provider) RequestMutation(patch State) {
	if p.disposed.Load() {
		return
	}

	p.mu.Lock()
	if p.disposed.Load() {
		p.mu.Unlock()
		return
	}
	for k, v := range patch {
		p.state[k] = v
	}
	sched := p.scheduler
	p.mu.Unlock()

	if sched != nil {
		sched.ScheduleRender(p)
	}
}

// Payload builds the merged render payload: passthrough props, then state,
// then handlers, later sources overriding earlier ones on key collision.
// A fresh map is built on every call.
func (p *Provider) Payload() Payload {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(Payload, len(p.passthrough)+len(p.state)+len(p.handlers))
	for k, v := range p.passthrough {
		out[k] = v
	}
	for k, v := range p.state {
		out[k] = v
	}
	for k, v := range p.handlers {
		out[k] = v
	}
	return out
}

// Render invokes the resolved render target with the merged payload and
// the given context. When no target is resolvable the output is nil; that
// is the documented empty-output fallback, not an error. Render has no
// side effects beyond invoking the target.
func (p *Provider) Render(ctx Ctx) *vdom.VNode {
	if p.disposed.Load() {
		return nil
	}
	if p.target.Fn == nil {
		return nil
	}
	return p.target.Fn(p.Payload(), ctx)
}

// Bind attaches the host scheduler that receives re-render notifications.
// An unbound provider still merges mutations; they show up in the next
// explicit Render call.
func (p *Provider) Bind(s Scheduler) {
	p.mu.Lock()
	p.scheduler = s
	p.mu.Unlock()
}

// Dispose releases the instance. Further mutations and renders are no-ops.
func (p *Provider) Dispose() {
	if !p.disposed.CompareAndSwap(false, true) {
		return
	}

	p.mu.Lock()
	p.scheduler = nil
	p.state = State{}
	p.mu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (p *Provider) Disposed() bool {
	return p.disposed.Load()
}
