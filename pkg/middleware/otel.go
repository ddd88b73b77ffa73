package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stateview-go/stateview/pkg/host"
)

// Default tracer name for stateview hosts.
const defaultTracerName = "stateview"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "stateview").
	TracerName string

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(ctx host.Ctx) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced event.
	AttributeExtractor func(ctx host.Ctx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx host.Ctx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx host.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every dispatched event.
//
// The middleware creates a span per event carrying the component name,
// session ID, and handler key, records errors, and sets span status. The
// tracer comes from the global OpenTelemetry tracer provider; configure
// that in main() before starting the host.
func OpenTelemetry(opts ...OTelOption) host.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return host.MiddlewareFunc(func(ctx host.Ctx, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("stateview.component", ctx.Component()),
			attribute.String("stateview.session_id", ctx.SessionID()),
			attribute.String("stateview.event", ctx.Event()),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		spanCtx, span := config.tracer.Start(
			ctx.StdContext(),
			fmt.Sprintf("stateview.%s", ctx.Event()),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		// Make the span context reachable for downstream middleware and
		// handlers via ctx.Value.
		ctx.SetValue(spanContextKey{}, spanCtx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// spanContextKey is the key for storing the span context in Ctx values.
type spanContextKey struct{}

// SpanFromContext retrieves the current trace span from the event context.
// Returns a no-op span if tracing middleware is not installed.
func SpanFromContext(ctx host.Ctx) trace.Span {
	if spanCtx, ok := ctx.Value(spanContextKey{}).(context.Context); ok {
		return trace.SpanFromContext(spanCtx)
	}
	return trace.SpanFromContext(ctx.StdContext())
}
