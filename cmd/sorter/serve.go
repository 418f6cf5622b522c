package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muliwe/go-package-sorter/internal/logger"
	"github.com/muliwe/go-package-sorter/internal/metrics"
	"github.com/muliwe/go-package-sorter/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the classification HTTP service",
		Long: `Run the classification HTTP service until interrupted.

Endpoints:
  POST /v1/classify     classify a JSON parcel
  GET  /v1/classify     classify a parcel given as query parameters
  GET  /health          health check
  GET  /metrics         Prometheus metrics (server.enable_metrics)
  POST /debug/explain   full result with signals (server.enable_debug)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			decisions, err := logger.New(a.cfg.DecisionLog)
			if err != nil {
				return fmt.Errorf("failed to initialize decision log: %w", err)
			}

			var m *metrics.Metrics
			if a.cfg.Server.EnableMetrics {
				m = metrics.New(metrics.DefaultConfig())
			}

			a.log.Debug("Configuration loaded", zap.Any("server", a.cfg.Server))

			return server.New(a.cfg.Server, decisions, m, a.log).Start(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("debug", false, "enable the /debug/explain endpoint")

	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("server.enable_debug", cmd.Flags().Lookup("debug"))

	return cmd
}
