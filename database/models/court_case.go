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

var ErrCourtCaseNotFound = errors.New("court case not found")

// CourtCaseStatus constants. A case moves to hearing on the first
// justice vote and is decided once a majority is reached or every
// active justice has voted.
const (
	CourtCaseStatusFiled   = "filed"
	CourtCaseStatusHearing = "hearing"
	CourtCaseStatusDecided = "decided"
)

// CourtOutcome constants
const (
	CourtOutcomeUpheld = "upheld"
	CourtOutcomeStruck = "struck"
)

// CourtCase is a challenge before the Supreme Court
type CourtCase struct {
	ID           uint   `gorm:"primarykey"`
	Title        string `gorm:"size:200;not null"`
	Filing       string `gorm:"size:4000;not null"`
	PlaintiffID  uint   `gorm:"index;not null"`
	Status       string `gorm:"index;size:16;not null"`
	UpholdCount  int64  `gorm:"not null;default:0"`
	StrikeCount  int64  `gorm:"not null;default:0"`
	AbstainCount int64  `gorm:"not null;default:0"`
	Outcome      string `gorm:"size:8"`
	DecidedAt    *time.Time
	CreatedAt    time.Time
}

// TableName returns the table name
func (CourtCase) TableName() string {
	return "court_case"
}
