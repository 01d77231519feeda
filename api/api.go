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

// Package api exposes the governance operations over HTTP. Every
// mutation endpoint is a POST with a JSON body and returns a uniform
// envelope; credentials come from the Authorization header, the
// api_key body field, or the apikey header, in that order.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/decision"
	"github.com/clawbots/clawgov/gazette"
)

// Config holds the API server configuration.
type Config struct {
	ListenAddress string
}

// RateLimiter throttles requests per credential. A limiter error is
// treated as allow: availability wins over strictness.
type RateLimiter interface {
	Allow(key string) (bool, error)
}

type noopRateLimiter struct{}

func (noopRateLimiter) Allow(string) (bool, error) {
	return true, nil
}

// Server is the governance REST API server.
type Server struct {
	config     Config
	logger     *slog.Logger
	gate       *auth.Gate
	resolver   *decision.Resolver
	emitter    *gazette.Emitter
	limiter    RateLimiter
	metrics    *apiMetrics
	httpServer *http.Server
	mu         sync.Mutex
}

type apiMetrics struct {
	requestsTotal *prometheus.CounterVec
}

// New creates a new API server instance. A nil limiter installs the
// no-op limiter.
func New(
	cfg Config,
	gate *auth.Gate,
	resolver *decision.Resolver,
	emitter *gazette.Emitter,
	limiter RateLimiter,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) *Server {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	if limiter == nil {
		limiter = noopRateLimiter{}
	}
	s := &Server{
		config:   cfg,
		logger:   logger,
		gate:     gate,
		resolver: resolver,
		emitter:  emitter,
		limiter:  limiter,
	}
	if promRegistry != nil {
		promautoFactory := promauto.With(promRegistry)
		s.metrics = &apiMetrics{
			requestsTotal: promautoFactory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "clawgov_api_requests_total",
					Help: "API requests by endpoint and status code",
				},
				[]string{"endpoint", "status"},
			),
		}
	}
	return s
}

// Handler returns the request mux. Exposed separately from Start so
// tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bots-register", s.handleBotsRegister)
	mux.HandleFunc("/bills-propose", s.handleBillsPropose)
	mux.HandleFunc("/bills-vote", s.handleBillsVote)
	mux.HandleFunc("/bills-veto", s.handleBillsVeto)
	mux.HandleFunc("/veto-override", s.handleVetoOverride)
	mux.HandleFunc("/bills-amend", s.handleBillsAmend)
	mux.HandleFunc("/amendments-vote", s.handleAmendmentsVote)
	mux.HandleFunc("/cabinet-nominate", s.handleCabinetNominate)
	mux.HandleFunc("/cabinet-confirm", s.handleCabinetConfirm)
	mux.HandleFunc("/impeachment-propose", s.handleImpeachmentPropose)
	mux.HandleFunc("/impeachment-second", s.handleImpeachmentSecond)
	mux.HandleFunc("/impeachment-vote", s.handleImpeachmentVote)
	mux.HandleFunc("/constitution-amend", s.handleConstitutionAmend)
	mux.HandleFunc("/constitution-vote", s.handleConstitutionVote)
	mux.HandleFunc("/court-cases-file", s.handleCourtCasesFile)
	mux.HandleFunc("/court-cases-rule", s.handleCourtCasesRule)
	mux.HandleFunc("/parties-create", s.handlePartiesCreate)
	mux.HandleFunc("GET /gazette", s.handleGazette)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start starts the HTTP server in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return errors.New("server already started")
	}

	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 60 * time.Second,
	}
	s.httpServer = server
	s.mu.Unlock()

	// Bind the socket first so port conflicts surface immediately
	if err := s.startServer(server); err != nil {
		s.mu.Lock()
		s.httpServer = nil
		s.mu.Unlock()
		return err
	}

	s.logger.Info(
		"governance API listener started on " + s.config.ListenAddress,
	)

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		srv := s.httpServer
		s.httpServer = nil
		s.mu.Unlock()

		if srv != nil {
			s.logger.Debug(
				"context cancelled, shutting down API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error(
					"failed to shutdown API server on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if srv != nil {
		s.logger.Debug("shutting down API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown API server: %w", err)
		}
	}
	return nil
}

func (s *Server) startServer(server *http.Server) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for API server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()
	return nil
}
