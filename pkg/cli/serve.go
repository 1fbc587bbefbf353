package cli

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/docnav/pkg/config"
	"github.com/mchmarny/docnav/pkg/schema"
	"github.com/mchmarny/docnav/pkg/server"
	"github.com/mchmarny/docnav/pkg/sidebar"
	"github.com/mchmarny/docnav/pkg/watch"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sidebar over HTTP",
		Long: `Serve exposes the sidebar as JSON:

  GET /sidebar          whole sidebar
  GET /sidebar/{group}  one group with resolved hrefs
  GET /routes           URL of every doc and link
  GET /metrics          Prometheus metrics
  GET /healthz, /readyz health and readiness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().Int("port", server.DefaultPort, "Port to run the server on")
	cmd.Flags().Bool("watch", false, "Reload the sidebar document when it changes")
	cmd.Flags().Duration("shutdown-timeout", server.DefaultShutdownTimeout, "Grace period for in-flight requests on shutdown")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting docnav", "version", Version, "commit", Commit, "date", Date)

	s, err := loadSidebar(cfg.SidebarFile)
	if err != nil {
		return err
	}

	store, err := sidebar.NewStore(s, cfg.ValidateOptions()...)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := sidebar.NewMetrics(reg)

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Watch {
		if cfg.SidebarFile == "" {
			return errors.New("--watch requires a sidebar document")
		}

		checker, err := schema.NewValidator()
		if err != nil {
			return err
		}

		w, err := watch.New(cfg.SidebarFile, store,
			watch.WithChecker(checker),
			watch.WithOnReload(metrics.Publish),
		)
		if err != nil {
			return err
		}

		g.Go(func() error {
			return w.Run(gCtx)
		})
	}

	g.Go(func() error {
		return sidebar.Run(gCtx, store, sidebar.RunConfig{
			Resolver: cfg.Resolver(),
			Registry: reg,
			Metrics:  metrics,
			Options: []server.Option{
				server.WithPort(cfg.Port),
				server.WithShutdownTimeout(cfg.ShutdownTimeout),
			},
		})
	})

	return g.Wait()
}
