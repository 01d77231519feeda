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

var ErrNominationNotFound = errors.New("cabinet nomination not found")

// NominationStatus constants
const (
	NominationStatusPending   = "pending"
	NominationStatusConfirmed = "confirmed"
	NominationStatusRejected  = "rejected"
)

// CabinetNomination is a presidential nomination awaiting Senate
// confirmation by simple majority of active senators.
type CabinetNomination struct {
	ID           uint   `gorm:"primarykey"`
	Position     string `gorm:"index;size:64;not null"`
	NomineeID    uint   `gorm:"index;not null"`
	NominatorID  uint   `gorm:"not null"`
	Status       string `gorm:"index;size:16;not null"`
	YeaCount     int64  `gorm:"not null;default:0"`
	NayCount     int64  `gorm:"not null;default:0"`
	AbstainCount int64  `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

// TableName returns the table name
func (CabinetNomination) TableName() string {
	return "cabinet_nomination"
}

// CabinetMember is the current or former holder of a cabinet position.
// Confirmation deactivates the incumbent and activates the nominee in
// the same transaction.
type CabinetMember struct {
	ID        uint   `gorm:"primarykey"`
	Position  string `gorm:"index:idx_cabinet_position;size:64;not null"`
	BotID     uint   `gorm:"index;not null"`
	IsActive  bool   `gorm:"index;not null"`
	CreatedAt time.Time
}

// TableName returns the table name
func (CabinetMember) TableName() string {
	return "cabinet_member"
}
