package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weft/internal/demo"
	"github.com/vango-dev/weft/pkg/devserver"
	"github.com/vango-dev/weft/pkg/snapshot"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		app     string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live demo app",
		Long: `Start the preview server. The demo app runs on a frame-paced work
loop; every commit is pushed to connected browsers over WebSocket and
browser events are dispatched back to the app.

Endpoints:
  /           the app page
  /ws         live updates
  /healthz    liveness and current cycle
  /metrics    Prometheus metrics (with --metrics)
  /snapshots  stored commit snapshots (when a snapshot backend is set)

Examples:
  weft serve
  weft serve --app=todo --port=8080
  weft serve --metrics --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if app != "" {
				cfg.Dev.App = app
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}
			if tracing {
				cfg.Tracing.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := demo.Lookup(cfg.Dev.App)
			if err != nil {
				return err
			}

			store, err := snapshot.Open(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			fmt.Fprintln(w, "  serve")
			fmt.Fprintln(w)
			info(w, "App:     %s", a.Name)
			info(w, "URL:     %s", cfg.DevURL())
			if cfg.Metrics.Enabled {
				info(w, "Metrics: %s/metrics", cfg.DevURL())
			}
			fmt.Fprintln(w)

			sc := devserver.ConfigFrom(cfg)
			sc.AppName = a.Name
			sc.Snapshots = store
			sc.Logger = newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return devserver.New(a.Build(), sc).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from weft.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from weft.json)")
	cmd.Flags().StringVarP(&app, "app", "a", "", "Demo app to serve")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Record an OpenTelemetry span per cycle")

	return cmd
}
