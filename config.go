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

package clawgov

import (
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clawbots/clawgov/api"
)

type Config struct {
	promRegistry     prometheus.Registerer
	logger           *slog.Logger
	rateLimiter      api.RateLimiter
	dataDir          string
	blobPlugin       string
	metadataPlugin   string
	apiListenAddress string
	shutdownTimeout  time.Duration
	sweeperDisabled  bool
}

// ConfigOptionFunc is a type that represents functions that modify the Gov config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new clawgov config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabasePath specifies the data directory for persistent storage.
// An empty path keeps all state in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithBlobPlugin specifies the blob store plugin for gazette documents
func WithBlobPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.blobPlugin = plugin
	}
}

// WithMetadataPlugin specifies the metadata store plugin
func WithMetadataPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.metadataPlugin = plugin
	}
}

// WithApiListenAddress specifies the listen address for the governance API
func WithApiListenAddress(address string) ConfigOptionFunc {
	return func(c *Config) {
		c.apiListenAddress = address
	}
}

// WithPrometheusRegistry specifies a prometheus registry for metrics
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithRateLimiter specifies the per-credential rate limiter used by the
// API server
func WithRateLimiter(limiter api.RateLimiter) ConfigOptionFunc {
	return func(c *Config) {
		c.rateLimiter = limiter
	}
}

// WithSweeperDisabled disables the background deadline sweeper. Useful
// for tests that drive deadline resolution by hand
func WithSweeperDisabled(disabled bool) ConfigOptionFunc {
	return func(c *Config) {
		c.sweeperDisabled = disabled
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}
