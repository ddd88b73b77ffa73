package host

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

var counterDef = provider.Def{
	Name: "Counter",
	DefaultState: func() provider.State {
		return provider.State{"count": 0}
	},
	MakeHandlers: func(p *provider.Provider) provider.Handlers {
		return provider.Handlers{
			"increment": func() {
				n, _ := p.State()["count"].(int)
				p.RequestMutation(provider.State{"count": n + 1})
			},
		}
	},
}

func counterView(payload provider.Payload, _ provider.Ctx) *vdom.VNode {
	count, _ := payload["count"].(int)
	return vdom.Button(
		vdom.OnClick(payload["increment"]),
		vdom.Textf("count=%d", count),
	)
}

func newCounterSession(cfg Config) *Session {
	return NewSession(compose.WithRender(counterDef, counterView), nil, cfg)
}

func waitFrame(t *testing.T, s *Session) string {
	t.Helper()
	select {
	case frame := <-s.Frames():
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("no frame within 2s")
		return ""
	}
}

func TestSessionInitialRender(t *testing.T) {
	s := newCounterSession(DefaultConfig())
	defer s.Close()

	html, err := s.RenderHTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "count=0") {
		t.Errorf("initial render = %q, want count=0", html)
	}
	if !strings.Contains(html, `data-sv="s1"`) {
		t.Errorf("button not marked interactive: %q", html)
	}
}

func TestSessionEventTriggersRerender(t *testing.T) {
	s := newCounterSession(DefaultConfig())
	defer s.Close()

	if _, err := s.RenderHTML(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	if err := s.Dispatch(&Event{Key: "s1_onclick"}); err != nil {
		t.Fatal(err)
	}

	frame := waitFrame(t, s)
	if !strings.Contains(frame, "count=1") {
		t.Errorf("frame = %q, want count=1", frame)
	}
}

func TestSessionUnknownEventIgnored(t *testing.T) {
	s := newCounterSession(DefaultConfig())
	defer s.Close()

	if _, err := s.RenderHTML(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	if err := s.Dispatch(&Event{Key: "nope_onclick"}); err != nil {
		t.Fatal(err)
	}

	// The loop keeps working afterwards.
	if err := s.Dispatch(&Event{Key: "s1_onclick"}); err != nil {
		t.Fatal(err)
	}
	frame := waitFrame(t, s)
	if !strings.Contains(frame, "count=1") {
		t.Errorf("frame = %q, want count=1", frame)
	}
}

func TestSessionDispatchAfterClose(t *testing.T) {
	s := newCounterSession(DefaultConfig())
	s.Close()

	err := s.Dispatch(&Event{Key: "s1_onclick"})
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Dispatch after Close = %v, want ErrSessionClosed", err)
	}
	if !s.Root().Disposed() {
		t.Error("root not disposed on Close")
	}
}

func TestSessionMiddlewareRuns(t *testing.T) {
	var (
		components []string
		events     []string
	)
	recorder := MiddlewareFunc(func(ctx Ctx, next func() error) error {
		components = append(components, ctx.Component())
		events = append(events, ctx.Event())
		return next()
	})

	cfg := DefaultConfig()
	cfg.Middleware = []Middleware{recorder}

	s := newCounterSession(cfg)
	defer s.Close()

	if _, err := s.RenderHTML(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	if err := s.Dispatch(&Event{Key: "s1_onclick"}); err != nil {
		t.Fatal(err)
	}
	waitFrame(t, s)

	if len(events) != 1 || events[0] != "s1_onclick" {
		t.Errorf("middleware saw events %v, want [s1_onclick]", events)
	}
	if len(components) != 1 || !strings.Contains(components[0], "Counter") {
		t.Errorf("middleware saw components %v", components)
	}
}

func TestSessionMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(ctx Ctx, next func() error) error {
			order = append(order, name+"-in")
			err := next()
			order = append(order, name+"-out")
			return err
		})
	}

	cfg := DefaultConfig()
	cfg.Middleware = []Middleware{mw("outer"), mw("inner")}

	s := newCounterSession(cfg)
	defer s.Close()
	if _, err := s.RenderHTML(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	if err := s.Dispatch(&Event{Key: "s1_onclick"}); err != nil {
		t.Fatal(err)
	}
	waitFrame(t, s)

	want := []string{"outer-in", "inner-in", "inner-out", "outer-out"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSessionPanickingHandler(t *testing.T) {
	def := provider.Def{
		Name: "Panicky",
		MakeHandlers: func(p *provider.Provider) provider.Handlers {
			return provider.Handlers{
				"boom": func() { panic("kaboom") },
				"safe": func() { p.RequestMutation(provider.State{"ok": true}) },
			}
		},
	}
	view := func(payload provider.Payload, _ provider.Ctx) *vdom.VNode {
		ok, _ := payload["ok"].(bool)
		return vdom.Div(
			vdom.Button(vdom.OnClick(payload["boom"]), vdom.Text("boom")),
			vdom.Button(vdom.OnClick(payload["safe"]), vdom.Textf("ok=%v", ok)),
		)
	}

	var mwErr error
	cfg := DefaultConfig()
	cfg.Middleware = []Middleware{
		MiddlewareFunc(func(ctx Ctx, next func() error) error {
			err := next()
			if err != nil {
				mwErr = err
			}
			return err
		}),
	}

	s := NewSession(compose.WithRender(def, view), nil, cfg)
	defer s.Close()
	if _, err := s.RenderHTML(); err != nil {
		t.Fatal(err)
	}
	s.Start()

	if err := s.Dispatch(&Event{Key: "s1_onclick"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispatch(&Event{Key: "s2_onclick"}); err != nil {
		t.Fatal(err)
	}

	frame := waitFrame(t, s)
	if !strings.Contains(frame, "ok=true") {
		t.Errorf("loop did not survive panic, frame = %q", frame)
	}
	if mwErr == nil || !strings.Contains(mwErr.Error(), "panic") {
		t.Errorf("middleware error = %v, want handler panic", mwErr)
	}
}

func TestInvokeHandler(t *testing.T) {
	t.Run("func with value", func(t *testing.T) {
		var got any
		if err := invokeHandler(func(v any) { got = v }, "hello"); err != nil {
			t.Fatal(err)
		}
		if got != "hello" {
			t.Errorf("handler got %v, want hello", got)
		}
	})

	t.Run("func returning error", func(t *testing.T) {
		wantErr := errors.New("nope")
		if err := invokeHandler(func() error { return wantErr }, nil); !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	})

	t.Run("typed argument via reflection", func(t *testing.T) {
		var got string
		if err := invokeHandler(func(s string) { got = s }, "typed"); err != nil {
			t.Fatal(err)
		}
		if got != "typed" {
			t.Errorf("handler got %q, want typed", got)
		}
	})

	t.Run("non-function", func(t *testing.T) {
		if err := invokeHandler(42, nil); err == nil {
			t.Error("want error for non-function handler")
		}
	})
}

func TestScheduleRenderCoalesces(t *testing.T) {
	s := newCounterSession(DefaultConfig())
	defer s.Close()

	// Before the loop runs, repeated schedule requests collapse into the
	// single buffered slot instead of blocking.
	for i := 0; i < 10; i++ {
		s.ScheduleRender(s.Root())
	}

	if len(s.renderReq) != 1 {
		t.Errorf("renderReq length = %d, want 1", len(s.renderReq))
	}
}
