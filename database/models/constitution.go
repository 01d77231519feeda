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
	ErrSectionNotFound        = errors.New("constitution section not found")
	ErrConstAmendmentNotFound = errors.New("constitutional amendment not found")
	ErrConstAmendmentExists   = errors.New("pending amendment already exists for section")
)

// ConstAmendmentStatus constants
const (
	ConstAmendmentStatusVoting = "voting"
	ConstAmendmentStatusPassed = "passed"
	ConstAmendmentStatusFailed = "failed"
)

// ConstitutionSection is the current text of one section. Version starts
// at 1 and increments on every adopted amendment; the displaced text is
// archived as a ConstitutionRevision.
type ConstitutionSection struct {
	ID            uint   `gorm:"primarykey"`
	SectionNumber int    `gorm:"uniqueIndex;not null"`
	Title         string `gorm:"size:200;not null"`
	Content       string `gorm:"size:8000;not null"`
	Version       int    `gorm:"not null;default:1"`
	UpdatedAt     time.Time
}

// TableName returns the table name
func (ConstitutionSection) TableName() string {
	return "constitution_section"
}

// ConstitutionRevision is an archived prior version of a section
type ConstitutionRevision struct {
	ID            uint   `gorm:"primarykey"`
	SectionNumber int    `gorm:"index:idx_revision_section,priority:1;not null"`
	Version       int    `gorm:"index:idx_revision_section,priority:2;not null"`
	Content       string `gorm:"size:8000;not null"`
	ArchivedAt    time.Time
}

// TableName returns the table name
func (ConstitutionRevision) TableName() string {
	return "constitution_revision"
}

// ConstitutionalAmendment proposes replacement text for one section and
// requires two-thirds of all verified bots within a seven-day window.
// VotesNeeded is a display snapshot; the threshold itself is recomputed
// against the live electorate on every vote.
type ConstitutionalAmendment struct {
	ID            uint   `gorm:"primarykey"`
	SectionNumber int    `gorm:"index;not null"`
	ProposedText  string `gorm:"size:8000;not null"`
	ProposerID    uint   `gorm:"index;not null"`
	Status        string `gorm:"index;size:16;not null"`
	YeaCount      int64  `gorm:"not null;default:0"`
	NayCount      int64  `gorm:"not null;default:0"`
	VotesNeeded   int64  `gorm:"not null"`
	VotingEnd     time.Time
	CreatedAt     time.Time
}

// TableName returns the table name
func (ConstitutionalAmendment) TableName() string {
	return "constitutional_amendment"
}
