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

// Package clawgov wires the governance core together: storage, the
// event bus, the gazette, the decision resolvers, the deadline sweeper,
// and the HTTP API.
package clawgov

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clawbots/clawgov/api"
	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/decision"
	"github.com/clawbots/clawgov/event"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/sweeper"
)

type Gov struct {
	config       Config
	eventBus     *event.EventBus
	db           *database.Database
	emitter      *gazette.Emitter
	gate         *auth.Gate
	resolver     *decision.Resolver
	sweeper      *sweeper.Sweeper
	apiServer    *api.Server
	done         chan struct{}
	shutdownOnce sync.Once
}

func New(cfg Config) (*Gov, error) {
	g := &Gov{
		config: cfg,
		eventBus: event.NewEventBus(
			cfg.promRegistry,
			cfg.logger,
		),
		done: make(chan struct{}),
	}
	return g, nil
}

// Run starts all components and blocks until Stop is called or the
// context is cancelled
func (g *Gov) Run(ctx context.Context) error {
	db, err := database.New(&database.Config{
		Logger:         g.config.logger,
		PromRegistry:   g.config.promRegistry,
		DataDir:        g.config.dataDir,
		BlobPlugin:     g.config.blobPlugin,
		MetadataPlugin: g.config.metadataPlugin,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	g.db = db
	g.emitter = gazette.NewEmitter(
		g.db,
		g.eventBus,
		g.config.logger,
		g.config.promRegistry,
	)
	g.gate = auth.NewGate(g.db, g.config.logger)
	g.resolver = decision.NewResolver(
		g.db,
		g.gate,
		g.emitter,
		g.eventBus,
		g.config.logger,
		g.config.promRegistry,
	)
	if !g.config.sweeperDisabled {
		g.sweeper = sweeper.New(
			g.db,
			g.emitter,
			g.config.logger,
			g.config.promRegistry,
		)
		if err := g.sweeper.Start(); err != nil {
			return err
		}
	}
	g.apiServer = api.New(
		api.Config{ListenAddress: g.config.apiListenAddress},
		g.gate,
		g.resolver,
		g.emitter,
		g.config.rateLimiter,
		g.config.logger,
		g.config.promRegistry,
	)
	if err := g.apiServer.Start(ctx); err != nil {
		return err
	}

	// Shutdown on context cancellation
	go func() {
		<-ctx.Done()
		if err := g.Stop(); err != nil {
			g.config.logger.Error(
				"failure during shutdown",
				"error", err,
			)
		}
	}()

	// Wait for shutdown
	<-g.done
	return nil
}

// Database returns the underlying database instance
func (g *Gov) Database() *database.Database {
	return g.db
}

// Resolver returns the decision resolver
func (g *Gov) Resolver() *decision.Resolver {
	return g.resolver
}

// EventBus returns the event bus
func (g *Gov) EventBus() *event.EventBus {
	return g.eventBus
}

func (g *Gov) Stop() error {
	var err error
	g.shutdownOnce.Do(func() {
		err = g.shutdown()
	})
	return err
}

func (g *Gov) shutdown() error {
	shutdownTimeout := 30 * time.Second
	if g.config.shutdownTimeout > 0 {
		shutdownTimeout = g.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()

	var err error

	g.config.logger.Debug("starting graceful shutdown")

	// Stop accepting new requests
	if g.apiServer != nil {
		if stopErr := g.apiServer.Stop(ctx); stopErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("api server shutdown: %w", stopErr),
			)
		}
	}

	// Let a running sweep finish
	if g.sweeper != nil {
		g.sweeper.Stop()
	}

	if g.eventBus != nil {
		g.eventBus.Stop()
	}

	if g.db != nil {
		if closeErr := g.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}

	g.config.logger.Debug("graceful shutdown complete")
	close(g.done)
	return err
}
