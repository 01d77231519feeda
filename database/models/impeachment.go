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
	ErrImpeachmentNotFound = errors.New("impeachment not found")
	ErrImpeachmentExists   = errors.New("active impeachment already exists")
)

// ImpeachmentStatus constants. An impeachment collects seconds, then
// runs a House vote and a Senate trial.
const (
	ImpeachmentStatusSeconding    = "seconding"
	ImpeachmentStatusHouseVoting  = "house_voting"
	ImpeachmentStatusSenateVoting = "senate_voting"
	ImpeachmentStatusConvicted    = "convicted"
	ImpeachmentStatusAcquitted    = "acquitted"
	ImpeachmentStatusDismissed    = "dismissed"
)

// Impeachment targets an active official. Only one may be active per
// (target, position) at a time; the proposer counts as the first second.
type Impeachment struct {
	ID           uint   `gorm:"primarykey"`
	TargetID     uint   `gorm:"index:idx_impeachment_target,priority:1;not null"`
	Position     string `gorm:"index:idx_impeachment_target,priority:2;size:16;not null"`
	ProposerID   uint   `gorm:"not null"`
	Reason       string `gorm:"size:2000;not null"`
	Status       string `gorm:"index;size:16;not null"`
	SecondsCount int64  `gorm:"not null;default:0"`
	HouseYea     int64  `gorm:"not null;default:0"`
	HouseNay     int64  `gorm:"not null;default:0"`
	SenateYea    int64  `gorm:"not null;default:0"`
	SenateNay    int64  `gorm:"not null;default:0"`
	SecondingEnd time.Time
	CreatedAt    time.Time
}

// TableName returns the table name
func (Impeachment) TableName() string {
	return "impeachment"
}
