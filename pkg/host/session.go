package host

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/render"
)

// Event is a client event targeting a rendered handler.
type Event struct {
	// Key is the handler registry key, e.g. "s1_onclick".
	Key string `json:"key"`

	// Value is an optional event value (e.g. input text).
	Value any `json:"value,omitempty"`
}

// ErrSessionClosed is returned when dispatching to a closed session.
var ErrSessionClosed = errors.New("host: session closed")

// sessionSeq issues creation-ordered sequence numbers.
var sessionSeq atomic.Uint64

// Session owns one mounted component instance and serializes everything
// that touches it: client events, the mutations they request, and the
// re-renders those mutations schedule all run on the session's single
// event loop. Mutation requests are coalesced, so several mutations from
// one event produce one re-render frame.
type Session struct {
	// ID is the session identifier.
	ID string

	cfg    Config
	logger *slog.Logger

	// seq orders sessions by creation for oldest-first eviction.
	seq uint64

	component compose.Component
	root      *provider.Provider
	renderer  *render.Renderer

	events    chan *Event
	renderReq chan struct{}
	frames    chan string
	done      chan struct{}
	closeOnce sync.Once

	// mu protects handlers, which is swapped on every render.
	mu       sync.RWMutex
	handlers map[string]any
}

var _ provider.Scheduler = (*Session)(nil)

// NewSession mounts the component with the given props and prepares the
// event loop. Call Start to begin processing events.
func NewSession(c compose.Component, props provider.Props, cfg Config) *Session {
	cfg = cfg.withDefaults()

	s := &Session{
		ID:        newSessionID(),
		cfg:       cfg,
		seq:       sessionSeq.Add(1),
		component: c,
		renderer:  render.NewRenderer(render.RendererConfig{}),
		events:    make(chan *Event, cfg.EventBuffer),
		renderReq: make(chan struct{}, 1),
		frames:    make(chan string, 8),
		done:      make(chan struct{}),
		handlers:  make(map[string]any),
	}
	s.logger = cfg.Logger.With("session", s.ID, "component", c.Name())

	s.root = c.Mount(props)
	s.root.Bind(s)

	return s
}

// newSessionID generates a random session identifier.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "s-fallback"
	}
	return hex.EncodeToString(b)
}

// RenderHTML renders the current tree synchronously and refreshes the
// handler registry. Used for the initial page render before Start; after
// Start the loop renders on its own schedule.
func (s *Session) RenderHTML() (string, error) {
	return s.renderOnce("")
}

// renderOnce renders the mounted instance and swaps in the new handler
// registry. event is the registry key that triggered the render, if any.
func (s *Session) renderOnce(event string) (string, error) {
	ctx := &eventCtx{
		BaseCtx:   provider.NewCtx(context.Background(), s.logger),
		sessionID: s.ID,
		component: s.component.Name(),
		event:     event,
	}

	s.renderer.Reset()
	tree := s.root.Render(ctx)
	html, err := s.renderer.RenderToString(tree)
	if err != nil {
		return "", fmt.Errorf("render session %s: %w", s.ID, err)
	}

	s.mu.Lock()
	s.handlers = s.renderer.Handlers()
	s.mu.Unlock()

	return html, nil
}

// Start runs the session event loop in its own goroutine.
func (s *Session) Start() {
	go s.run()
}

// run is the single goroutine that serializes event handling and renders.
func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-s.renderReq:
			s.renderDirty()
		}
	}
}

// handleEvent dispatches one client event through the middleware chain.
func (s *Session) handleEvent(ev *Event) {
	s.mu.RLock()
	handler, ok := s.handlers[ev.Key]
	s.mu.RUnlock()

	if !ok {
		s.logger.Warn("no handler for event", "key", ev.Key)
		return
	}

	ctx := &eventCtx{
		BaseCtx:   provider.NewCtx(context.Background(), s.logger),
		sessionID: s.ID,
		component: s.component.Name(),
		event:     ev.Key,
	}

	err := chain(s.cfg.Middleware, ctx, func() error {
		return s.safeExecute(handler, ev)
	})
	if err != nil {
		s.logger.Error("event handler failed", "key", ev.Key, "error", err)
	}
}

// safeExecute invokes a handler, converting panics into errors.
func (s *Session) safeExecute(handler any, ev *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic on %s: %v", ev.Key, r)
		}
	}()
	return invokeHandler(handler, ev.Value)
}

// invokeHandler calls a handler value with the event value if it accepts
// an argument.
func invokeHandler(handler any, value any) error {
	switch h := handler.(type) {
	case func():
		h()
		return nil
	case func(any):
		h(value)
		return nil
	case func() error:
		return h()
	case func(any) error:
		return h(value)
	}

	// Other function shapes go through reflection with best-effort
	// argument matching.
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("handler is %T, not a function", handler)
	}
	t := fn.Type()
	args := make([]reflect.Value, t.NumIn())
	for i := range args {
		if i == 0 && value != nil && reflect.TypeOf(value).AssignableTo(t.In(i)) {
			args[i] = reflect.ValueOf(value)
			continue
		}
		args[i] = reflect.Zero(t.In(i))
	}
	fn.Call(args)
	return nil
}

// ScheduleRender implements provider.Scheduler. Requests are coalesced:
// any number of mutations between two loop iterations yields one render.
func (s *Session) ScheduleRender(_ *provider.Provider) {
	select {
	case s.renderReq <- struct{}{}:
	default:
	}
}

// renderDirty renders the current tree and pushes the frame to any
// attached transport. Frames are dropped, not queued unboundedly, when
// the transport cannot keep up.
func (s *Session) renderDirty() {
	html, err := s.renderOnce("")
	if err != nil {
		s.logger.Error("render failed", "error", err)
		return
	}

	select {
	case s.frames <- html:
	default:
		s.logger.Warn("frame dropped, transport slow")
	}
}

// Dispatch queues a client event for the loop. It never blocks: events
// past the buffer are dropped with an error.
func (s *Session) Dispatch(ev *Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.events <- ev:
		return nil
	default:
		return fmt.Errorf("host: event queue full, dropped %s", ev.Key)
	}
}

// Frames is the stream of re-rendered HTML frames.
func (s *Session) Frames() <-chan string {
	return s.frames
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Root returns the mounted provider instance.
func (s *Session) Root() *provider.Provider {
	return s.root
}

// Close stops the event loop and disposes the mounted instance.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.root.Dispose()
	})
}
