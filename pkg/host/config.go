package host

import (
	"log/slog"
	"net/http"
)

// Config configures a host.
type Config struct {
	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// EventBuffer is the per-session queue size for client events.
	// Events beyond the buffer are dropped with a warning.
	// Default: 64.
	EventBuffer int

	// Middleware wraps every dispatched event, outermost first.
	Middleware []Middleware

	// MaxSessions bounds the number of live sessions a Handler tracks.
	// When a page load would exceed the bound, the oldest session is
	// closed and evicted. Page loads that never attach their WebSocket
	// are reclaimed this way instead of leaking.
	// Default: 256.
	MaxSessions int

	// CheckOrigin validates WebSocket upgrade origins.
	// If nil, all origins are accepted; set this when serving the host
	// beyond a development machine.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EventBuffer: 64,
		MaxSessions: 256,
	}
}

// withDefaults fills zero fields in from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = DefaultConfig().EventBuffer
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultConfig().MaxSessions
	}
	return c
}
