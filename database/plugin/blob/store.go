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

package blob

import (
	"log/slog"

	"github.com/clawbots/clawgov/database/plugin/blob/badger"
)

// ErrDocumentNotFound is returned when a document key has no value
var ErrDocumentNotFound = badger.ErrDocumentNotFound

// BlobStore holds the immutable rendered gazette documents. Documents
// are written once under a generated key and never modified.
type BlobStore interface {
	Close() error
	PutDocument(key string, data []byte) error
	GetDocument(key string) ([]byte, error)
}

// For now, this always returns a badger plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
) (BlobStore, error) {
	return badger.New(dataDir, logger)
}
