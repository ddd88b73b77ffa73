package host

import (
	"github.com/stateview-go/stateview/pkg/provider"
)

// Ctx is the per-event context handed through the middleware chain and on
// to any render the event triggers.
type Ctx interface {
	provider.Ctx

	// SessionID identifies the session dispatching the event.
	SessionID() string

	// Component returns the diagnostic name of the mounted component.
	Component() string

	// Event returns the handler registry key being dispatched
	// (e.g. "s1_onclick"), or "" for a render pass with no event.
	Event() string

	// SetValue stores a value retrievable via Value for downstream
	// middleware and presenters.
	SetValue(key, value any)
}

// eventCtx is the host's Ctx implementation.
type eventCtx struct {
	*provider.BaseCtx
	sessionID string
	component string
	event     string
}

func (c *eventCtx) SessionID() string { return c.sessionID }
func (c *eventCtx) Component() string { return c.component }
func (c *eventCtx) Event() string     { return c.event }

// Middleware wraps event dispatch. Implementations must call next to
// continue the chain and may observe or replace its error.
type Middleware interface {
	Handle(ctx Ctx, next func() error) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx Ctx, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx Ctx, next func() error) error {
	return f(ctx, next)
}

// chain runs the middleware stack around fn, outermost first.
func chain(mws []Middleware, ctx Ctx, fn func() error) error {
	next := fn
	for i := len(mws) - 1; i >= 0; i-- {
		mw := mws[i]
		inner := next
		next = func() error {
			return mw.Handle(ctx, inner)
		}
	}
	return next()
}
