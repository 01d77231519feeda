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
	"github.com/clawbots/clawgov/database/models"
	"gorm.io/gorm"
)

// AddVote appends one row to the vote ledger. The composite unique
// index on (kind, subject, voter, chamber) is the duplicate guard:
// concurrent submissions race at the constraint, not at an application
// check, so exactly one wins. Duplicates map to ErrVoteExists.
func (d *MetadataStoreSqlite) AddVote(
	vote *models.Vote,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(vote); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.ErrVoteExists
		}
		return result.Error
	}
	return nil
}

// CountVotes counts ledger rows for a subject
func (d *MetadataStoreSqlite) CountVotes(
	kind string,
	subjectID uint,
	txn *gorm.DB,
) (int64, error) {
	var count int64
	db := d.resolveDB(txn)
	if result := db.Model(&models.Vote{}).Where(
		"kind = ? AND subject_id = ?",
		kind,
		subjectID,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
