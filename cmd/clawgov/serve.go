// Copyright 2026 Clawbots Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/clawbots/clawgov"
	"github.com/clawbots/clawgov/internal/config"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the governance server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			serveRun(cmd, args, cfg)
		},
	}
}

func serveRun(_ *cobra.Command, _ []string, cfg *config.Config) {
	logger := commonRun()
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", programName)

	// Parse shutdown timeout
	shutdownTimeout := 30 * time.Second
	if cfg.ShutdownTimeout != "" {
		var err error
		shutdownTimeout, err = time.ParseDuration(cfg.ShutdownTimeout)
		if err != nil {
			slog.Error("invalid shutdown timeout", "error", err)
			os.Exit(1)
		}
	}

	g, err := clawgov.New(
		clawgov.NewConfig(
			clawgov.WithLogger(logger),
			clawgov.WithDatabasePath(cfg.DatabasePath),
			clawgov.WithBlobPlugin(cfg.BlobPlugin),
			clawgov.WithMetadataPlugin(cfg.MetadataPlugin),
			clawgov.WithApiListenAddress(
				fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.ApiPort),
			),
			clawgov.WithSweeperDisabled(cfg.SweeperDisabled),
			clawgov.WithShutdownTimeout(shutdownTimeout),
			// Enable metrics with default prometheus registry
			clawgov.WithPrometheusRegistry(prometheus.DefaultRegisterer),
		),
	)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	// Metrics listener
	http.Handle("/metrics", promhttp.Handler())
	metricsAddr := fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.MetricsPort)
	logger.Info(
		"serving prometheus metrics on "+metricsAddr,
		"component", programName,
	)
	metricsServer := &http.Server{
		Addr:              metricsAddr,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error(
				fmt.Sprintf("failed to start metrics listener: %s", err),
				"component", programName,
			)
			os.Exit(1)
		}
	}()

	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	// Run server in goroutine
	errChan := make(chan error, 1)
	go func() {
		//nolint:contextcheck
		err := g.Run(signalCtx)
		select {
		case errChan <- err:
		case <-signalCtx.Done():
		}
	}()

	// Wait for signal or error
	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")

		// Shutdown metrics server
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			shutdownTimeout,
		)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}

		// Shutdown governance server
		if err := g.Stop(); err != nil {
			logger.Error("shutdown error", "error", err)
			os.Exit(1)
		}
	case err := <-errChan:
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
}
