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

// billTallyColumns is the allowlist for atomic bill tally increments
var billTallyColumns = map[string]bool{
	"house_yea":           true,
	"house_nay":           true,
	"house_abstain":       true,
	"senate_yea":          true,
	"senate_nay":          true,
	"senate_abstain":      true,
	"override_house_yea":  true,
	"override_house_nay":  true,
	"override_senate_yea": true,
	"override_senate_nay": true,
}

// AddBill creates a new bill
func (d *MetadataStoreSqlite) AddBill(
	bill *models.Bill,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(bill); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetBill retrieves a bill by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetBill(
	id uint,
	txn *gorm.DB,
) (*models.Bill, error) {
	var bill models.Bill
	db := d.resolveDB(txn)
	if result := db.First(&bill, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &bill, nil
}

// ListBillsByStatus retrieves all bills with the given status
func (d *MetadataStoreSqlite) ListBillsByStatus(
	status string,
	txn *gorm.DB,
) ([]models.Bill, error) {
	var bills []models.Bill
	db := d.resolveDB(txn)
	if result := db.Where(
		"status = ?",
		status,
	).Find(&bills); result.Error != nil {
		return nil, result.Error
	}
	return bills, nil
}

// IncrementBillTally atomically increments one tally bucket. The
// read-modify-write happens inside the database, so concurrent votes
// never lose updates.
func (d *MetadataStoreSqlite) IncrementBillTally(
	billID uint,
	column string,
	txn *gorm.DB,
) error {
	if !billTallyColumns[column] {
		return fmt.Errorf("unknown bill tally column: %s", column)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.Bill{}).
		Where("id = ?", billID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrBillNotFound
	}
	return nil
}

// TransitionBillStatus applies updates only when the bill is still in
// the expected status. Returns false when another request already moved
// it, which is how resolution side effects stay exactly-once.
func (d *MetadataStoreSqlite) TransitionBillStatus(
	billID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Bill{}).
		Where("id = ? AND status = ?", billID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// TransitionOverrideStatus applies updates only when the bill's veto
// override is still in the expected status. The bill's own status is
// not part of the predicate since it stays "vetoed" while an override
// runs.
func (d *MetadataStoreSqlite) TransitionOverrideStatus(
	billID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Bill{}).
		Where("id = ? AND override_status = ?", billID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// amendmentTallyColumns is the allowlist for amendment tally increments
var amendmentTallyColumns = map[string]bool{
	"yea_count":     true,
	"nay_count":     true,
	"abstain_count": true,
}

// AddAmendment creates a new amendment
func (d *MetadataStoreSqlite) AddAmendment(
	amendment *models.Amendment,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(amendment); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetAmendment retrieves an amendment by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetAmendment(
	id uint,
	txn *gorm.DB,
) (*models.Amendment, error) {
	var amendment models.Amendment
	db := d.resolveDB(txn)
	if result := db.First(&amendment, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &amendment, nil
}

// ListAmendmentsByStatus retrieves all amendments with the given status
func (d *MetadataStoreSqlite) ListAmendmentsByStatus(
	status string,
	txn *gorm.DB,
) ([]models.Amendment, error) {
	var amendments []models.Amendment
	db := d.resolveDB(txn)
	if result := db.Where(
		"status = ?",
		status,
	).Find(&amendments); result.Error != nil {
		return nil, result.Error
	}
	return amendments, nil
}

// IncrementAmendmentTally atomically increments one tally bucket
func (d *MetadataStoreSqlite) IncrementAmendmentTally(
	amendmentID uint,
	column string,
	txn *gorm.DB,
) error {
	if !amendmentTallyColumns[column] {
		return fmt.Errorf("unknown amendment tally column: %s", column)
	}
	db := d.resolveDB(txn)
	result := db.Model(&models.Amendment{}).
		Where("id = ?", amendmentID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrAmendmentNotFound
	}
	return nil
}

// TransitionAmendmentStatus applies updates only when the amendment is
// still in the expected status
func (d *MetadataStoreSqlite) TransitionAmendmentStatus(
	amendmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Amendment{}).
		Where("id = ? AND status = ?", amendmentID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
