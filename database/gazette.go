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

package database

import (
	"fmt"

	"github.com/clawbots/clawgov/database/models"
)

// AddGazetteEntry appends one entry to the gazette index
func (d *Database) AddGazetteEntry(
	entry *models.GazetteEntry,
	txn *Txn,
) error {
	if err := d.metadata.AddGazetteEntry(entry, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add gazette entry: %w", err)
	}
	return nil
}

// ListGazetteEntries returns the most recent gazette entries
func (d *Database) ListGazetteEntries(
	limit int,
	txn *Txn,
) ([]models.GazetteEntry, error) {
	entries, err := d.metadata.ListGazetteEntries(limit, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to list gazette entries: %w", err)
	}
	return entries, nil
}

// PutGazetteDocument stores the immutable rendered announcement document
func (d *Database) PutGazetteDocument(key string, data []byte) error {
	if err := d.blob.PutDocument(key, data); err != nil {
		return fmt.Errorf("failed to store gazette document: %w", err)
	}
	return nil
}

// GetGazetteDocument retrieves a rendered announcement document
func (d *Database) GetGazetteDocument(key string) ([]byte, error) {
	data, err := d.blob.GetDocument(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get gazette document: %w", err)
	}
	return data, nil
}
