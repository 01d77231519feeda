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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlobPlugin, cfg.BlobPlugin)
	assert.Equal(t, DefaultMetadataPlugin, cfg.MetadataPlugin)
	assert.Equal(t, uint(8080), cfg.ApiPort)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clawgov.yaml")
	require.NoError(t, os.WriteFile(
		path,
		[]byte("databasePath: /var/lib/clawgov\napiPort: 9000\n"),
		0o600,
	))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/clawgov", cfg.DatabasePath)
	assert.Equal(t, uint(9000), cfg.ApiPort)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CLAWGOV_METRICS_PORT", "15000")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, uint(15000), cfg.MetricsPort)
}

func TestConfigContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := GetConfig()
	ctx := WithContext(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
}
