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
	"errors"
	"fmt"

	"github.com/clawbots/clawgov/database/models"
	"gorm.io/gorm"
)

// impeachmentTallyColumns is the allowlist for impeachment tally increments
var impeachmentTallyColumns = map[string]bool{
	"seconds_count": true,
	"house_yea":     true,
	"house_nay":     true,
	"senate_yea":    true,
	"senate_nay":    true,
}

// AddImpeachment creates a new impeachment. The partial unique index on
// (target_id, position) over active statuses maps to ErrImpeachmentExists
func (d *MetadataStoreSqlite) AddImpeachment(
	impeachment *models.Impeachment,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(impeachment); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.ErrImpeachmentExists
		}
		return result.Error
	}
	return nil
}

// GetImpeachment retrieves an impeachment by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetImpeachment(
	id uint,
	txn *gorm.DB,
) (*models.Impeachment, error) {
	var impeachment models.Impeachment
	db := d.resolveDB(txn)
	if result := db.First(&impeachment, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &impeachment, nil
}

// GetActiveImpeachment retrieves a non-terminal impeachment against the
// given target and position. Returns nil when there is none, which is
// what allows a new one to be proposed.
func (d *MetadataStoreSqlite) GetActiveImpeachment(
	targetID uint,
	position string,
	txn *gorm.DB,
) (*models.Impeachment, error) {
	var impeachment models.Impeachment
	db := d.resolveDB(txn)
	if result := db.Where(
		"target_id = ? AND position = ? AND status IN ?",
		targetID,
		position,
		[]string{
			models.ImpeachmentStatusSeconding,
			models.ImpeachmentStatusHouseVoting,
			models.ImpeachmentStatusSenateVoting,
		},
	).First(&impeachment); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &impeachment, nil
}

// ListImpeachmentsByStatus retrieves all impeachments with the given status
func (d *MetadataStoreSqlite) ListImpeachmentsByStatus(
	status string,
	txn *gorm.DB,
) ([]models.Impeachment, error) {
	var impeachments []models.Impeachment
	db := d.resolveDB(txn)
	if result := db.Where(
		"status = ?",
		status,
	).Find(&impeachments); result.Error != nil {
		return nil, result.Error
	}
	return impeachments, nil
}

// IncrementImpeachmentTally atomically increments one tally bucket
func (d *MetadataStoreSqlite) IncrementImpeachmentTally(
	impeachmentID uint,
	column string,
	txn *gorm.DB,
) error {
	if !impeachmentTallyColumns[column] {
		return fmt.Errorf("unknown impeachment tally column: %s", column)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.Impeachment{}).
		Where("id = ?", impeachmentID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrImpeachmentNotFound
	}
	return nil
}

// TransitionImpeachmentStatus applies updates only when the impeachment
// is still in the expected status
func (d *MetadataStoreSqlite) TransitionImpeachmentStatus(
	impeachmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Impeachment{}).
		Where("id = ? AND status = ?", impeachmentID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
