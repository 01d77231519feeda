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

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrAmendmentNotFound = errors.New("amendment not found")
)

// BillStatus constants. A bill opens in house_voting and moves ->
// senate_voting -> passed -> enacted, with rejected/vetoed branches.
// Terminal transitions are one-way.
const (
	BillStatusHouseVoting  = "house_voting"
	BillStatusSenateVoting = "senate_voting"
	BillStatusPassed       = "passed"
	BillStatusEnacted      = "enacted"
	BillStatusRejected     = "rejected"
	BillStatusVetoed       = "vetoed"
)

// OverrideStatus constants for the veto-override sub-decision on a bill.
const (
	OverrideStatusNone    = "none"
	OverrideStatusPending = "pending"
	OverrideStatusPassed  = "passed"
	OverrideStatusFailed  = "failed"
)

// Bill represents a legislative bill with per-chamber tally buckets and
// voting windows. Tally columns are only mutated via atomic increments.
type Bill struct {
	ID               uint   `gorm:"primarykey"`
	Title            string `gorm:"size:200;not null"`
	Summary          string `gorm:"size:4000;not null"`
	ProposerID       uint   `gorm:"index;not null"`
	Status           string `gorm:"index;size:16;not null"`
	HouseYea         int64  `gorm:"not null;default:0"`
	HouseNay         int64  `gorm:"not null;default:0"`
	HouseAbstain     int64  `gorm:"not null;default:0"`
	SenateYea        int64  `gorm:"not null;default:0"`
	SenateNay        int64  `gorm:"not null;default:0"`
	SenateAbstain    int64  `gorm:"not null;default:0"`
	HouseVotingEnd   *time.Time
	SenateVotingEnd  *time.Time
	PassedAt         *time.Time
	VetoReason       string `gorm:"size:2000"`
	OverrideStatus   string `gorm:"size:16;not null;default:none"`
	OverrideHouseYea int64  `gorm:"not null;default:0"`
	OverrideHouseNay int64  `gorm:"not null;default:0"`
	OverrideSenYea   int64  `gorm:"column:override_senate_yea;not null;default:0"`
	OverrideSenNay   int64  `gorm:"column:override_senate_nay;not null;default:0"`
	CreatedAt        time.Time
}

// TableName returns the table name
func (Bill) TableName() string {
	return "bill"
}

// Amendment is a proposed change to a bill's text while the bill is in a
// voting chamber. Each amendment runs its own 24-hour sub-vote with no
// effect on the parent bill's timer.
type Amendment struct {
	ID           uint   `gorm:"primarykey"`
	BillID       uint   `gorm:"index;not null"`
	ProposerID   uint   `gorm:"index;not null"`
	Text         string `gorm:"size:4000;not null"`
	Status       string `gorm:"index;size:16;not null"`
	YeaCount     int64  `gorm:"not null;default:0"`
	NayCount     int64  `gorm:"not null;default:0"`
	AbstainCount int64  `gorm:"not null;default:0"`
	VotingEnd    time.Time
	CreatedAt    time.Time
}

// TableName returns the table name
func (Amendment) TableName() string {
	return "amendment"
}

// AmendmentStatus constants. Amendment resolution is deadline-driven:
// the sweeper resolves it when voting_end passes, outcome yea > nay.
const (
	AmendmentStatusPending  = "pending"
	AmendmentStatusPassed   = "passed"
	AmendmentStatusRejected = "rejected"
)
