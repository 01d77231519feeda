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

package sqlite

import (
	"github.com/clawbots/clawgov/database/models"
	"gorm.io/gorm"
)

// AddGazetteEntry appends one entry to the gazette index. There is no
// update or delete counterpart anywhere in the store.
func (d *MetadataStoreSqlite) AddGazetteEntry(
	entry *models.GazetteEntry,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// ListGazetteEntries retrieves the most recent gazette entries
func (d *MetadataStoreSqlite) ListGazetteEntries(
	limit int,
	txn *gorm.DB,
) ([]models.GazetteEntry, error) {
	var entries []models.GazetteEntry
	db := d.resolveDB(txn)
	if result := db.Order("id DESC").
		Limit(limit).
		Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
