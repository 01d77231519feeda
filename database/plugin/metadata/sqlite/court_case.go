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

// courtCaseTallyColumns is the allowlist for court case tally increments
var courtCaseTallyColumns = map[string]bool{
	"uphold_count":  true,
	"strike_count":  true,
	"abstain_count": true,
}

// AddCourtCase creates a new court case
func (d *MetadataStoreSqlite) AddCourtCase(
	courtCase *models.CourtCase,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(courtCase); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetCourtCase retrieves a court case by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetCourtCase(
	id uint,
	txn *gorm.DB,
) (*models.CourtCase, error) {
	var courtCase models.CourtCase
	db := d.resolveDB(txn)
	if result := db.First(&courtCase, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &courtCase, nil
}

// IncrementCourtCaseTally atomically increments one tally bucket
func (d *MetadataStoreSqlite) IncrementCourtCaseTally(
	caseID uint,
	column string,
	txn *gorm.DB,
) error {
	if !courtCaseTallyColumns[column] {
		return fmt.Errorf("unknown court case tally column: %s", column)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.CourtCase{}).
		Where("id = ?", caseID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrCourtCaseNotFound
	}
	return nil
}

// TransitionCourtCaseStatus applies updates only when the case is still
// in the expected status
func (d *MetadataStoreSqlite) TransitionCourtCaseStatus(
	caseID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.CourtCase{}).
		Where("id = ? AND status = ?", caseID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
