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

// AddNomination creates a new cabinet nomination
func (d *Database) AddNomination(
	nomination *models.CabinetNomination,
	txn *Txn,
) error {
	if err := d.metadata.AddNomination(nomination, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add nomination: %w", err)
	}
	return nil
}

// GetNomination returns a nomination by ID
func (d *Database) GetNomination(
	id uint,
	txn *Txn,
) (*models.CabinetNomination, error) {
	nomination, err := d.metadata.GetNomination(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get nomination: %w", err)
	}
	if nomination == nil {
		return nil, models.ErrNominationNotFound
	}
	return nomination, nil
}

// IncrementNominationTally atomically increments one nomination tally
// bucket
func (d *Database) IncrementNominationTally(
	nominationID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementNominationTally(
		nominationID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment nomination tally: %w", err)
	}
	return nil
}

// TransitionNominationStatus conditionally moves a nomination out of
// fromStatus
func (d *Database) TransitionNominationStatus(
	nominationID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionNominationStatus(
		nominationID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition nomination status: %w",
			err,
		)
	}
	return moved, nil
}

// GetActiveCabinetMember returns the active holder of a position, or nil
// when vacant
func (d *Database) GetActiveCabinetMember(
	position string,
	txn *Txn,
) (*models.CabinetMember, error) {
	member, err := d.metadata.GetActiveCabinetMember(
		position,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cabinet member: %w", err)
	}
	return member, nil
}

// DeactivateCabinetMember displaces the incumbent holder of a position
func (d *Database) DeactivateCabinetMember(
	position string,
	txn *Txn,
) error {
	if err := d.metadata.DeactivateCabinetMember(
		position,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to deactivate cabinet member: %w", err)
	}
	return nil
}

// AddCabinetMember creates a new cabinet member record
func (d *Database) AddCabinetMember(
	member *models.CabinetMember,
	txn *Txn,
) error {
	if err := d.metadata.AddCabinetMember(member, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add cabinet member: %w", err)
	}
	return nil
}
