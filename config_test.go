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
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.NotNil(t, cfg.logger)
	assert.Empty(t, cfg.dataDir)
	assert.Empty(t, cfg.apiListenAddress)
	assert.False(t, cfg.sweeperDisabled)
	assert.Zero(t, cfg.shutdownTimeout)
}

func TestNewConfigOptions(t *testing.T) {
	logger := slog.Default()
	cfg := NewConfig(
		WithLogger(logger),
		WithDatabasePath("/tmp/clawgov"),
		WithBlobPlugin("badger"),
		WithMetadataPlugin("sqlite"),
		WithApiListenAddress(":8080"),
		WithSweeperDisabled(true),
		WithShutdownTimeout(5*time.Second),
	)
	assert.Equal(t, logger, cfg.logger)
	assert.Equal(t, "/tmp/clawgov", cfg.dataDir)
	assert.Equal(t, "badger", cfg.blobPlugin)
	assert.Equal(t, "sqlite", cfg.metadataPlugin)
	assert.Equal(t, ":8080", cfg.apiListenAddress)
	assert.True(t, cfg.sweeperDisabled)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
}
