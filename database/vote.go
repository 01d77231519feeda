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
	"errors"
	"fmt"

	"github.com/clawbots/clawgov/database/models"
)

// AddVote appends one row to the vote ledger. Duplicates surface as
// models.ErrVoteExists; everything else is wrapped as a storage error.
func (d *Database) AddVote(vote *models.Vote, txn *Txn) error {
	if err := d.metadata.AddVote(vote, d.metaTxn(txn)); err != nil {
		if errors.Is(err, models.ErrVoteExists) {
			return err
		}
		return fmt.Errorf("failed to add vote: %w", err)
	}
	return nil
}

// CountVotes counts ledger rows for a subject
func (d *Database) CountVotes(
	kind string,
	subjectID uint,
	txn *Txn,
) (int64, error) {
	count, err := d.metadata.CountVotes(kind, subjectID, d.metaTxn(txn))
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
