package middleware

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stateview-go/stateview/pkg/host"
	"github.com/stateview-go/stateview/pkg/provider"
)

// fakeCtx implements host.Ctx without a running session.
type fakeCtx struct {
	*provider.BaseCtx
	sessionID string
	component string
	event     string
}

func (c *fakeCtx) SessionID() string { return c.sessionID }
func (c *fakeCtx) Component() string { return c.component }
func (c *fakeCtx) Event() string     { return c.event }

func newFakeCtx(component, event string) *fakeCtx {
	return &fakeCtx{
		BaseCtx:   provider.NewCtx(nil, nil),
		sessionID: "test-session",
		component: component,
		event:     event,
	}
}

func TestPrometheusCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("mwtest"))

	ctx := newFakeCtx("Counter", "s1_onclick")

	if err := mw.Handle(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	wantErr := errors.New("handler broke")
	if err := mw.Handle(ctx, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("middleware swallowed error: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	found := make(map[string]bool)
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	for _, name := range []string{
		"mwtest_events_total",
		"mwtest_event_duration_seconds",
		"mwtest_event_errors_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not registered, got %v", name, found)
		}
	}
}

func TestPrometheusSharedAcrossInstances(t *testing.T) {
	// A second middleware instance on the same registry reuses the
	// registered metrics instead of re-registering and panicking.
	reg := prometheus.NewRegistry()
	a := Prometheus(WithRegistry(reg), WithNamespace("shared"))
	b := Prometheus(WithRegistry(reg), WithNamespace("shared"))

	ctx := newFakeCtx("Counter", "s1_onclick")
	if err := a.Handle(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := b.Handle(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, fam := range families {
		if fam.GetName() == "shared_events_total" {
			if got := fam.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("events_total = %v, want both instances counted", got)
			}
			return
		}
	}
	t.Error("shared_events_total not found")
}

func TestPrometheusPerRegistry(t *testing.T) {
	// Distinct registries get their own metrics with their own naming,
	// regardless of what other tests registered first.
	regA := prometheus.NewRegistry()
	regB := prometheus.NewRegistry()
	a := Prometheus(WithRegistry(regA), WithNamespace("rega"))
	b := Prometheus(WithRegistry(regB), WithNamespace("regb"))

	ctx := newFakeCtx("Counter", "s1_onclick")
	if err := a.Handle(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := b.Handle(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}

	for reg, ns := range map[*prometheus.Registry]string{regA: "rega", regB: "regb"} {
		families, err := reg.Gather()
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, fam := range families {
			if fam.GetName() == ns+"_events_total" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s_events_total not registered in its own registry", ns)
		}
	}
}

func TestOpenTelemetryPassesThrough(t *testing.T) {
	mw := OpenTelemetry()
	ctx := newFakeCtx("Counter", "s1_onclick")

	called := false
	if err := mw.Handle(ctx, func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("next not called")
	}

	// With only the no-op global tracer installed the span is still
	// reachable downstream.
	if span := SpanFromContext(ctx); span == nil {
		t.Error("SpanFromContext returned nil")
	}
}

func TestOpenTelemetryErrorPropagates(t *testing.T) {
	mw := OpenTelemetry(WithTracerName("mwtest"))
	ctx := newFakeCtx("Counter", "s1_onclick")

	wantErr := errors.New("boom")
	if err := mw.Handle(ctx, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	mw := OpenTelemetry(WithEventFilter(func(ctx host.Ctx) bool {
		return ctx.Event() != "s1_oninput"
	}))

	ctx := newFakeCtx("Counter", "s1_oninput")
	called := false
	if err := mw.Handle(ctx, func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("filtered event must still dispatch")
	}
	if ctx.Value(spanContextKey{}) != nil {
		t.Error("filtered event should not carry a span context")
	}
}
