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

// AddImpeachment creates a new impeachment
func (d *Database) AddImpeachment(
	impeachment *models.Impeachment,
	txn *Txn,
) error {
	if err := d.metadata.AddImpeachment(
		impeachment,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to add impeachment: %w", err)
	}
	return nil
}

// GetImpeachment returns an impeachment by ID
func (d *Database) GetImpeachment(
	id uint,
	txn *Txn,
) (*models.Impeachment, error) {
	impeachment, err := d.metadata.GetImpeachment(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get impeachment: %w", err)
	}
	if impeachment == nil {
		return nil, models.ErrImpeachmentNotFound
	}
	return impeachment, nil
}

// GetActiveImpeachment returns the in-flight impeachment against a
// target and position, or nil when there is none
func (d *Database) GetActiveImpeachment(
	targetID uint,
	position string,
	txn *Txn,
) (*models.Impeachment, error) {
	impeachment, err := d.metadata.GetActiveImpeachment(
		targetID,
		position,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get active impeachment: %w", err)
	}
	return impeachment, nil
}

// ListImpeachmentsByStatus returns all impeachments in the given status
func (d *Database) ListImpeachmentsByStatus(
	status string,
	txn *Txn,
) ([]models.Impeachment, error) {
	impeachments, err := d.metadata.ListImpeachmentsByStatus(
		status,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list impeachments: %w", err)
	}
	return impeachments, nil
}

// IncrementImpeachmentTally atomically increments one impeachment tally
// bucket
func (d *Database) IncrementImpeachmentTally(
	impeachmentID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementImpeachmentTally(
		impeachmentID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment impeachment tally: %w", err)
	}
	return nil
}

// TransitionImpeachmentStatus conditionally moves an impeachment out of
// fromStatus
func (d *Database) TransitionImpeachmentStatus(
	impeachmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionImpeachmentStatus(
		impeachmentID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition impeachment status: %w",
			err,
		)
	}
	return moved, nil
}
