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

// nominationTallyColumns is the allowlist for nomination tally increments
var nominationTallyColumns = map[string]bool{
	"yea_count":     true,
	"nay_count":     true,
	"abstain_count": true,
}

// AddNomination creates a new cabinet nomination
func (d *MetadataStoreSqlite) AddNomination(
	nomination *models.CabinetNomination,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(nomination); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetNomination retrieves a nomination by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetNomination(
	id uint,
	txn *gorm.DB,
) (*models.CabinetNomination, error) {
	var nomination models.CabinetNomination
	db := d.resolveDB(txn)
	if result := db.First(&nomination, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &nomination, nil
}

// IncrementNominationTally atomically increments one tally bucket
func (d *MetadataStoreSqlite) IncrementNominationTally(
	nominationID uint,
	column string,
	txn *gorm.DB,
) error {
	if !nominationTallyColumns[column] {
		return fmt.Errorf("unknown nomination tally column: %s", column)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.CabinetNomination{}).
		Where("id = ?", nominationID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNominationNotFound
	}
	return nil
}

// TransitionNominationStatus applies updates only when the nomination is
// still in the expected status
func (d *MetadataStoreSqlite) TransitionNominationStatus(
	nominationID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.CabinetNomination{}).
		Where("id = ? AND status = ?", nominationID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetActiveCabinetMember retrieves the active holder of a cabinet
// position. Returns nil if the position is vacant.
func (d *MetadataStoreSqlite) GetActiveCabinetMember(
	position string,
	txn *gorm.DB,
) (*models.CabinetMember, error) {
	var member models.CabinetMember
	db := d.resolveDB(txn)
	if result := db.Where(
		"position = ? AND is_active = ?",
		position,
		true,
	).First(&member); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &member, nil
}

// DeactivateCabinetMember marks the active holder of a position inactive
func (d *MetadataStoreSqlite) DeactivateCabinetMember(
	position string,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	result := db.Model(&models.CabinetMember{}).
		Where("position = ? AND is_active = ?", position, true).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// AddCabinetMember creates a new cabinet member record
func (d *MetadataStoreSqlite) AddCabinetMember(
	member *models.CabinetMember,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(member); result.Error != nil {
		return result.Error
	}
	return nil
}
