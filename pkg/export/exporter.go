package export

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/render"
)

// Exporter renders composed components to static HTML snapshots and
// writes them through a Store.
type Exporter struct {
	store  Store
	logger *slog.Logger
	pretty bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithLogger sets the exporter's logger.
func WithLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithPretty enables pretty-printed HTML output.
func WithPretty(pretty bool) ExporterOption {
	return func(e *Exporter) {
		e.pretty = pretty
	}
}

// NewExporter creates an Exporter writing to the given store.
func NewExporter(store Store, opts ...ExporterOption) *Exporter {
	e := &Exporter{store: store}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Snapshot renders the component with the given props and writes the
// HTML under key. The instance is mounted, rendered once, and disposed;
// event handlers are inert in the exported output.
func (e *Exporter) Snapshot(ctx context.Context, key string, c compose.Component, props provider.Props) error {
	p := c.Mount(props)
	defer p.Dispose()

	tree := p.Render(provider.NewCtx(ctx, e.logger))

	r := render.NewRenderer(render.RendererConfig{Pretty: e.pretty})
	html, err := r.RenderToString(tree)
	if err != nil {
		return err
	}

	e.logger.Info("exporting snapshot", "key", key, "component", c.Name(), "bytes", len(html))
	return e.store.Put(ctx, key, "text/html; charset=utf-8", strings.NewReader(html))
}
