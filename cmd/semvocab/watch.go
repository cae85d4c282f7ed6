package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/converter"
	"github.com/c360studio/semvocab/watch"
)

func watchCmd(global *globalFlags) *cobra.Command {
	flags := &outputFlags{}
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch [pattern...]",
		Short: "Re-publish the vocabulary whenever the source changes",
		Long: `Watch converts the source once, then again every time a file matching
one of the patterns changes. Patterns use doublestar syntax
(input/**/*.xlsx). Without patterns the source file itself is watched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			flags.apply(cfg)
			if len(args) > 0 {
				cfg.Watch.Patterns = args
			}
			if metricsAddr != "" {
				cfg.Watch.MetricsAddr = metricsAddr
			}
			patterns := cfg.Watch.Patterns
			if len(patterns) == 0 {
				patterns = []string{cfg.Source.Path}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			metrics := converter.NewMetrics(reg)

			conv, cleanup, err := newConverter(cmd, cfg, logger, metrics)
			if err != nil {
				return err
			}
			defer cleanup()

			if cfg.Watch.MetricsAddr != "" {
				srv := serveMetrics(cfg.Watch.MetricsAddr, reg, logger)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			matcher, err := watch.NewMatcher(patterns)
			if err != nil {
				return err
			}
			w, err := watch.New(matcher, cfg.Watch.Debounce, logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			// Initial conversion; a failure is logged and the next change retries.
			if data, err := os.ReadFile(cfg.Source.Path); err == nil {
				if abs, err := filepath.Abs(cfg.Source.Path); err == nil {
					w.SetHash(abs, watch.ContentHash(data))
				}
			}
			if _, err := conv.Run(ctx); err != nil && ctx.Err() != nil {
				return nil
			}

			if err := w.Start(ctx); err != nil {
				return err
			}
			return runWatchLoop(ctx, w.Events(), conv, logger)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// runWatchLoop converts every created or modified file until ctx ends.
func runWatchLoop(ctx context.Context, events <-chan watch.Event, conv *converter.Converter, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Operation == watch.OpDelete {
				logger.Warn("Source removed, keeping last vocabulary", "path", ev.Path)
				continue
			}
			// Errors are logged by the converter; keep watching.
			_, _ = conv.RunFile(ctx, ev.Path)
		}
	}
}

// serveMetrics exposes reg over HTTP in the background.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
