package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/stateview-go/stateview/example"
	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/host"
	"github.com/stateview-go/stateview/pkg/middleware"
	"github.com/stateview-go/stateview/pkg/provider"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		component string
		label     string
		tracing   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo component with live re-rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := demoComponent(component)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			cfg := host.DefaultConfig()
			cfg.Logger = logger
			cfg.Middleware = []host.Middleware{
				middleware.Prometheus(),
			}
			if tracing {
				cfg.Middleware = append(cfg.Middleware, middleware.OpenTelemetry())
			}

			handler := host.NewHandler(c, provider.Props{"label": label}, cfg)

			success("serving %s on http://localhost%s", c.Name(), addr)
			info("metrics on http://localhost%s/metrics", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&component, "component", "counter", "demo component (counter, toggle)")
	cmd.Flags().StringVar(&label, "label", "Clicks", "label prop passed to the component")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "enable OpenTelemetry event tracing")

	return cmd
}

// demoComponent resolves a demo component by name.
func demoComponent(name string) (compose.Component, error) {
	switch name {
	case "counter":
		return example.CounterButton, nil
	case "toggle":
		return example.Switch, nil
	default:
		return compose.Component{}, fmt.Errorf("unknown component %q (want counter or toggle)", name)
	}
}
