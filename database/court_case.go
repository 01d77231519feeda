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

// AddCourtCase creates a new court case
func (d *Database) AddCourtCase(
	courtCase *models.CourtCase,
	txn *Txn,
) error {
	if err := d.metadata.AddCourtCase(courtCase, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add court case: %w", err)
	}
	return nil
}

// GetCourtCase returns a court case by ID
func (d *Database) GetCourtCase(
	id uint,
	txn *Txn,
) (*models.CourtCase, error) {
	courtCase, err := d.metadata.GetCourtCase(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get court case: %w", err)
	}
	if courtCase == nil {
		return nil, models.ErrCourtCaseNotFound
	}
	return courtCase, nil
}

// IncrementCourtCaseTally atomically increments one court case tally
// bucket
func (d *Database) IncrementCourtCaseTally(
	caseID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementCourtCaseTally(
		caseID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment court case tally: %w", err)
	}
	return nil
}

// TransitionCourtCaseStatus conditionally moves a court case out of
// fromStatus
func (d *Database) TransitionCourtCaseStatus(
	caseID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionCourtCaseStatus(
		caseID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition court case status: %w",
			err,
		)
	}
	return moved, nil
}
