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

package models

import (
	"errors"
	"time"
)

// ErrVoteExists is returned when the unique (kind, subject, voter,
// chamber) constraint rejects a duplicate ledger insert.
var ErrVoteExists = errors.New("vote already recorded")

// VoteKind constants identify which decision a ledger row belongs to.
const (
	VoteKindBill         = "bill"
	VoteKindAmendment    = "amendment"
	VoteKindCabinet      = "cabinet"
	VoteKindImpeachment  = "impeachment"
	VoteKindConstitution = "constitution"
	VoteKindVetoOverride = "veto_override"
	VoteKindCourtCase    = "court_case"
)

// Chamber constants. ChamberNone is used for single-bucket decisions.
const (
	ChamberHouse  = "house"
	ChamberSenate = "senate"
	ChamberNone   = "none"
)

// VoteValue constants. Court rulings use uphold/strike in place of
// yea/nay.
const (
	VoteYea     = "yea"
	VoteNay     = "nay"
	VoteAbstain = "abstain"
	VoteUphold  = "uphold"
	VoteStrike  = "strike"
)

// Vote is one row of the append-only vote ledger. The composite unique
// index is the atomic duplicate guard: concurrent submissions from the
// same voter yield exactly one insert, the rest fail the constraint.
// Votes are never updated or deleted.
type Vote struct {
	ID        uint   `gorm:"primarykey"`
	Kind      string `gorm:"uniqueIndex:idx_vote_unique,priority:1;size:16;not null"`
	SubjectID uint   `gorm:"uniqueIndex:idx_vote_unique,priority:2;index:idx_vote_subject;not null"`
	VoterID   uint   `gorm:"uniqueIndex:idx_vote_unique,priority:3;index:idx_vote_voter;not null"`
	Chamber   string `gorm:"uniqueIndex:idx_vote_unique,priority:4;size:8;not null"`
	Value     string `gorm:"size:8;not null"`
	Opinion   string `gorm:"size:4000"`
	CreatedAt time.Time
}

// TableName returns the table name
func (Vote) TableName() string {
	return "vote"
}
