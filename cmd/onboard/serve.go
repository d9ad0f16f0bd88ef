package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/cli"
	onboardhttp "github.com/aretw0/onboard/pkg/adapters/http"
	"github.com/aretw0/onboard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the registration API. Sessions live in the configured store
(memory or redis); Prometheus metrics are served on /metrics, or on a
separate listener when metrics_addr is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}
		logger := newLogger(cfg)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)
		metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

		engine, err := newEngine(logger,
			onboard.WithLifecycleHooks(metrics.Hooks()),
			onboard.WithLifecycleHooks(observability.LogHooks(logger)),
		)
		if err != nil {
			return err
		}

		sessions, closeStore, err := cli.OpenSessions(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close store", "err", err)
			}
		}()

		opts := []onboardhttp.Option{onboardhttp.WithLogger(logger)}
		if cfg.MetricsAddr == "" {
			opts = append(opts, onboardhttp.WithMetricsHandler(metricsHandler))
		}

		servers := []*http.Server{{
			Addr:              cfg.Addr,
			Handler:           onboardhttp.NewHandler(engine, sessions, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}}
		if cfg.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metricsHandler)
			servers = append(servers, &http.Server{
				Addr:              cfg.MetricsAddr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			})
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		for _, srv := range servers {
			g.Go(func() error {
				logger.Info("listening", "addr", srv.Addr, "store", cfg.Store.Backend)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server on %s: %w", srv.Addr, err)
				}
				return nil
			})
		}
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			var errs []error
			for _, srv := range servers {
				if err := srv.Shutdown(shutdownCtx); err != nil {
					errs = append(errs, fmt.Errorf("graceful shutdown of %s did not complete in %v: %w", srv.Addr, shutdownTimeout, err))
					_ = srv.Close()
				}
			}
			return errors.Join(errs...)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address of the API listener (overrides config)")
	serveCmd.Flags().String("metrics-addr", "", "Separate address for /metrics (overrides config)")
}
