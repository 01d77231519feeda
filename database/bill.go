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

// AddBill creates a new bill
func (d *Database) AddBill(bill *models.Bill, txn *Txn) error {
	if err := d.metadata.AddBill(bill, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add bill: %w", err)
	}
	return nil
}

// GetBill returns a bill by ID
func (d *Database) GetBill(id uint, txn *Txn) (*models.Bill, error) {
	bill, err := d.metadata.GetBill(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, models.ErrBillNotFound
	}
	return bill, nil
}

// ListBillsByStatus returns all bills in the given status
func (d *Database) ListBillsByStatus(
	status string,
	txn *Txn,
) ([]models.Bill, error) {
	bills, err := d.metadata.ListBillsByStatus(status, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// IncrementBillTally atomically increments one bill tally bucket
func (d *Database) IncrementBillTally(
	billID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementBillTally(
		billID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment bill tally: %w", err)
	}
	return nil
}

// TransitionBillStatus conditionally moves a bill out of fromStatus.
// Returns false when another request already performed the transition.
func (d *Database) TransitionBillStatus(
	billID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionBillStatus(
		billID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition bill status: %w", err)
	}
	return moved, nil
}

// TransitionOverrideStatus conditionally moves a bill's veto override
// out of fromStatus
func (d *Database) TransitionOverrideStatus(
	billID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionOverrideStatus(
		billID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition override status: %w",
			err,
		)
	}
	return moved, nil
}

// AddAmendment creates a new amendment
func (d *Database) AddAmendment(amendment *models.Amendment, txn *Txn) error {
	if err := d.metadata.AddAmendment(amendment, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add amendment: %w", err)
	}
	return nil
}

// GetAmendment returns an amendment by ID
func (d *Database) GetAmendment(
	id uint,
	txn *Txn,
) (*models.Amendment, error) {
	amendment, err := d.metadata.GetAmendment(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get amendment: %w", err)
	}
	if amendment == nil {
		return nil, models.ErrAmendmentNotFound
	}
	return amendment, nil
}

// ListAmendmentsByStatus returns all amendments in the given status
func (d *Database) ListAmendmentsByStatus(
	status string,
	txn *Txn,
) ([]models.Amendment, error) {
	amendments, err := d.metadata.ListAmendmentsByStatus(
		status,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list amendments: %w", err)
	}
	return amendments, nil
}

// IncrementAmendmentTally atomically increments one amendment tally bucket
func (d *Database) IncrementAmendmentTally(
	amendmentID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementAmendmentTally(
		amendmentID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment amendment tally: %w", err)
	}
	return nil
}

// TransitionAmendmentStatus conditionally moves an amendment out of
// fromStatus
func (d *Database) TransitionAmendmentStatus(
	amendmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionAmendmentStatus(
		amendmentID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition amendment status: %w",
			err,
		)
	}
	return moved, nil
}
