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

// constAmendmentTallyColumns is the allowlist for constitutional
// amendment tally increments
var constAmendmentTallyColumns = map[string]bool{
	"yea_count": true,
	"nay_count": true,
}

// AddSection creates a constitution section
func (d *MetadataStoreSqlite) AddSection(
	section *models.ConstitutionSection,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(section); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetSection retrieves a section by number. Returns nil if not found.
func (d *MetadataStoreSqlite) GetSection(
	sectionNumber int,
	txn *gorm.DB,
) (*models.ConstitutionSection, error) {
	var section models.ConstitutionSection
	db := d.resolveDB(txn)
	if result := db.Where(
		"section_number = ?",
		sectionNumber,
	).First(&section); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &section, nil
}

// UpdateSectionContent saves new section text and version
func (d *MetadataStoreSqlite) UpdateSectionContent(
	section *models.ConstitutionSection,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	result := db.Model(&models.ConstitutionSection{}).
		Where("id = ?", section.ID).
		Updates(map[string]any{
			"content": section.Content,
			"version": section.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrSectionNotFound
	}
	return nil
}

// AddRevision archives a displaced section version
func (d *MetadataStoreSqlite) AddRevision(
	revision *models.ConstitutionRevision,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(revision); result.Error != nil {
		return result.Error
	}
	return nil
}

// AddConstAmendment creates a constitutional amendment. The partial
// unique index on section_number over the voting status maps to
// ErrConstAmendmentExists
func (d *MetadataStoreSqlite) AddConstAmendment(
	amendment *models.ConstitutionalAmendment,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(amendment); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.ErrConstAmendmentExists
		}
		return result.Error
	}
	return nil
}

// GetConstAmendment retrieves a constitutional amendment by ID. Returns
// nil if not found.
func (d *MetadataStoreSqlite) GetConstAmendment(
	id uint,
	txn *gorm.DB,
) (*models.ConstitutionalAmendment, error) {
	var amendment models.ConstitutionalAmendment
	db := d.resolveDB(txn)
	if result := db.First(&amendment, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &amendment, nil
}

// GetPendingConstAmendmentBySection retrieves the in-flight amendment
// for a section, if any. One pending amendment per section at a time.
func (d *MetadataStoreSqlite) GetPendingConstAmendmentBySection(
	sectionNumber int,
	txn *gorm.DB,
) (*models.ConstitutionalAmendment, error) {
	var amendment models.ConstitutionalAmendment
	db := d.resolveDB(txn)
	if result := db.Where(
		"section_number = ? AND status = ?",
		sectionNumber,
		models.ConstAmendmentStatusVoting,
	).First(&amendment); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &amendment, nil
}

// ListConstAmendmentsByStatus retrieves all constitutional amendments
// with the given status
func (d *MetadataStoreSqlite) ListConstAmendmentsByStatus(
	status string,
	txn *gorm.DB,
) ([]models.ConstitutionalAmendment, error) {
	var amendments []models.ConstitutionalAmendment
	db := d.resolveDB(txn)
	if result := db.Where(
		"status = ?",
		status,
	).Find(&amendments); result.Error != nil {
		return nil, result.Error
	}
	return amendments, nil
}

// IncrementConstAmendmentTally atomically increments one tally bucket
func (d *MetadataStoreSqlite) IncrementConstAmendmentTally(
	amendmentID uint,
	column string,
	txn *gorm.DB,
) error {
	if !constAmendmentTallyColumns[column] {
		return fmt.Errorf(
			"unknown constitutional amendment tally column: %s",
			column,
		)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.ConstitutionalAmendment{}).
		Where("id = ?", amendmentID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrConstAmendmentNotFound
	}
	return nil
}

// TransitionConstAmendmentStatus applies updates only when the amendment
// is still in the expected status
func (d *MetadataStoreSqlite) TransitionConstAmendmentStatus(
	amendmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.ConstitutionalAmendment{}).
		Where("id = ? AND status = ?", amendmentID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
