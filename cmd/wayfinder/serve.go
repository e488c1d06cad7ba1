package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/config"
	httpAdapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the wizard as a JSON API with server-side sessions, the
documentation search endpoint, an SSE event stream and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Serve.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis") {
			cfg.Serve.RedisURL, _ = cmd.Flags().GetString("redis")
		}
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default: serve.addr)")
	serveCmd.Flags().String("redis", "", "Redis URL for shared sessions")
}

func buildHandler(ctx context.Context, c config.Config) (http.Handler, func(), error) {
	metrics := observability.NewMetrics(observability.WithLogger(logger))
	hooks := observability.MergeLifecycle(metrics.NavigationHooks(), lifecycleLogger(logger))

	engine, err := cli.BuildEngine(c, logger, hooks)
	if err != nil {
		return nil, nil, err
	}
	index, closeIndex, err := cli.BuildIndex(ctx, c, logger)
	if err != nil {
		return nil, nil, err
	}
	sessions, closeSessions, err := cli.BuildSessions(ctx, c, engine, logger)
	if err != nil {
		closeIndex()
		return nil, nil, err
	}
	cleanup := func() {
		closeSessions()
		closeIndex()
	}

	handler, err := httpAdapter.NewHandler(engine, sessions,
		httpAdapter.WithIndex(index),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithSearchLimit(c.Search.Limit),
		httpAdapter.WithLogger(logger),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return handler, cleanup, nil
}

func runServe(ctx context.Context, c config.Config) error {
	handler, cleanup, err := buildHandler(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              c.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	})
	return g.Wait()
}
