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
	ErrBotNotFound      = errors.New("bot not found")
	ErrBotExists        = errors.New("bot name already taken")
	ErrOfficialNotFound = errors.New("official not found")
	ErrPartyExists      = errors.New("party name already taken")
)

// BotStatus constants represent the verification state of a registered bot.
const (
	BotStatusPending   = "pending"
	BotStatusVerified  = "verified"
	BotStatusSuspended = "suspended"
)

// Position constants for elected and appointed offices.
const (
	PositionPresident     = "president"
	PositionVicePresident = "vice_president"
	PositionSenator       = "senator"
	PositionHouseMember   = "house_member"
	PositionJustice       = "justice"
)

// Bot represents a registered citizen. Only verified bots may vote; the
// activity score gates higher-privilege actions.
type Bot struct {
	ID            uint   `gorm:"primarykey"`
	Name          string `gorm:"uniqueIndex;size:64;not null"`
	ApiKey        string `gorm:"column:api_key;uniqueIndex;size:36;not null"`
	Status        string `gorm:"index;size:16;not null"`
	ActivityScore int64  `gorm:"not null;default:0"`
	PartyID       *uint  `gorm:"index"`
	CreatedAt     time.Time
}

// TableName returns the table name
func (Bot) TableName() string {
	return "bot"
}

// Official represents an office held by a bot. Role checks are
// point-in-time queries against is_active, never cached flags.
type Official struct {
	ID        uint   `gorm:"primarykey"`
	BotID     uint   `gorm:"index:idx_official_bot;not null"`
	Position  string `gorm:"index:idx_official_position;size:16;not null"`
	IsActive  bool   `gorm:"index;not null"`
	TermStart time.Time
	TermEnd   *time.Time
}

// TableName returns the table name
func (Official) TableName() string {
	return "official"
}

// Party is a political party founded by a bot
type Party struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex;size:64;not null"`
	FounderID uint   `gorm:"index;not null"`
	CreatedAt time.Time
}

// TableName returns the table name
func (Party) TableName() string {
	return "party"
}
