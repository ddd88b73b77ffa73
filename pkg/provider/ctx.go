package provider

import (
	"context"
	"log/slog"
)

// Ctx is the render context handed to presenters alongside the payload.
// Hosts provide their own implementation; BaseCtx is the plain one.
type Ctx interface {
	// StdContext returns the underlying context.Context.
	StdContext() context.Context

	// Logger returns the structured logger for this render.
	Logger() *slog.Logger

	// Value returns a context value set by the host, or nil.
	Value(key any) any
}

// BaseCtx is a minimal Ctx implementation.
type BaseCtx struct {
	ctx    context.Context
	logger *slog.Logger
	values map[any]any
}

// NewCtx creates a BaseCtx. A nil ctx defaults to context.Background()
// and a nil logger to slog.Default().
func NewCtx(ctx context.Context, logger *slog.Logger) *BaseCtx {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseCtx{
		ctx:    ctx,
		logger: logger,
		values: make(map[any]any),
	}
}

// StdContext implements Ctx.
func (c *BaseCtx) StdContext() context.Context {
	return c.ctx
}

// Logger implements Ctx.
func (c *BaseCtx) Logger() *slog.Logger {
	return c.logger
}

// Value implements Ctx.
func (c *BaseCtx) Value(key any) any {
	return c.values[key]
}

// SetValue stores a value retrievable via Value.
func (c *BaseCtx) SetValue(key, value any) {
	c.values[key] = value
}
