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
	"time"

	"github.com/clawbots/clawgov/database/models"
)

// AddSection creates a constitution section
func (d *Database) AddSection(
	section *models.ConstitutionSection,
	txn *Txn,
) error {
	if err := d.metadata.AddSection(section, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

// GetSection returns a section by number
func (d *Database) GetSection(
	sectionNumber int,
	txn *Txn,
) (*models.ConstitutionSection, error) {
	section, err := d.metadata.GetSection(sectionNumber, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	if section == nil {
		return nil, models.ErrSectionNotFound
	}
	return section, nil
}

// AdoptSectionText archives the current section content as a revision
// and replaces it with the adopted text, bumping the version. Must be
// called inside the same transaction as the amendment's terminal
// transition so the archive and the swap commit together.
func (d *Database) AdoptSectionText(
	sectionNumber int,
	newText string,
	txn *Txn,
) error {
	section, err := d.GetSection(sectionNumber, txn)
	if err != nil {
		return err
	}
	if err := d.metadata.AddRevision(&models.ConstitutionRevision{
		SectionNumber: section.SectionNumber,
		Version:       section.Version,
		Content:       section.Content,
		ArchivedAt:    time.Now(),
	}, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to archive section revision: %w", err)
	}
	section.Content = newText
	section.Version++
	if err := d.metadata.UpdateSectionContent(
		section,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to update section content: %w", err)
	}
	return nil
}

// AddConstAmendment creates a constitutional amendment
func (d *Database) AddConstAmendment(
	amendment *models.ConstitutionalAmendment,
	txn *Txn,
) error {
	if err := d.metadata.AddConstAmendment(
		amendment,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to add constitutional amendment: %w", err)
	}
	return nil
}

// GetConstAmendment returns a constitutional amendment by ID
func (d *Database) GetConstAmendment(
	id uint,
	txn *Txn,
) (*models.ConstitutionalAmendment, error) {
	amendment, err := d.metadata.GetConstAmendment(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get constitutional amendment: %w",
			err,
		)
	}
	if amendment == nil {
		return nil, models.ErrConstAmendmentNotFound
	}
	return amendment, nil
}

// GetPendingConstAmendmentBySection returns the in-flight amendment for
// a section, or nil when there is none
func (d *Database) GetPendingConstAmendmentBySection(
	sectionNumber int,
	txn *Txn,
) (*models.ConstitutionalAmendment, error) {
	amendment, err := d.metadata.GetPendingConstAmendmentBySection(
		sectionNumber,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get pending constitutional amendment: %w",
			err,
		)
	}
	return amendment, nil
}

// ListConstAmendmentsByStatus returns all constitutional amendments in
// the given status
func (d *Database) ListConstAmendmentsByStatus(
	status string,
	txn *Txn,
) ([]models.ConstitutionalAmendment, error) {
	amendments, err := d.metadata.ListConstAmendmentsByStatus(
		status,
		d.metaTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to list constitutional amendments: %w",
			err,
		)
	}
	return amendments, nil
}

// IncrementConstAmendmentTally atomically increments one tally bucket
func (d *Database) IncrementConstAmendmentTally(
	amendmentID uint,
	column string,
	txn *Txn,
) error {
	if err := d.metadata.IncrementConstAmendmentTally(
		amendmentID,
		column,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf(
			"failed to increment constitutional amendment tally: %w",
			err,
		)
	}
	return nil
}

// TransitionConstAmendmentStatus conditionally moves a constitutional
// amendment out of fromStatus
func (d *Database) TransitionConstAmendmentStatus(
	amendmentID uint,
	fromStatus string,
	updates map[string]any,
	txn *Txn,
) (bool, error) {
	moved, err := d.metadata.TransitionConstAmendmentStatus(
		amendmentID,
		fromStatus,
		updates,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition constitutional amendment status: %w",
			err,
		)
	}
	return moved, nil
}
