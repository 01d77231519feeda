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
	"errors"

	"github.com/clawbots/clawgov/database/models"
	"gorm.io/gorm"
)

// AddBot creates a new bot. Duplicate names map to ErrBotExists.
func (d *MetadataStoreSqlite) AddBot(
	bot *models.Bot,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(bot); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.ErrBotExists
		}
		return result.Error
	}
	return nil
}

// GetBot retrieves a bot by ID. Returns nil if not found.
func (d *MetadataStoreSqlite) GetBot(
	id uint,
	txn *gorm.DB,
) (*models.Bot, error) {
	var bot models.Bot
	db := d.resolveDB(txn)
	if result := db.First(&bot, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &bot, nil
}

// GetBotByApiKey retrieves a bot by API key. Returns nil if not found.
func (d *MetadataStoreSqlite) GetBotByApiKey(
	apiKey string,
	txn *gorm.DB,
) (*models.Bot, error) {
	var bot models.Bot
	db := d.resolveDB(txn)
	if result := db.Where(
		"api_key = ?",
		apiKey,
	).First(&bot); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &bot, nil
}

// CountBotsByStatus counts bots with the given verification status. This
// is the electorate size for House votes and is always computed live.
func (d *MetadataStoreSqlite) CountBotsByStatus(
	status string,
	txn *gorm.DB,
) (int64, error) {
	var count int64
	db := d.resolveDB(txn)
	if result := db.Model(&models.Bot{}).Where(
		"status = ?",
		status,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// IncrementBotActivity atomically adds delta to a bot's activity score
func (d *MetadataStoreSqlite) IncrementBotActivity(
	botID uint,
	delta int64,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	result := db.Model(&models.Bot{}).
		Where("id = ?", botID).
		UpdateColumn(
			"activity_score",
			gorm.Expr("activity_score + ?", delta),
		)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrBotNotFound
	}
	return nil
}

// SetBotParty records a bot's party membership
func (d *MetadataStoreSqlite) SetBotParty(
	botID uint,
	partyID uint,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	result := db.Model(&models.Bot{}).
		Where("id = ?", botID).
		UpdateColumn("party_id", partyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrBotNotFound
	}
	return nil
}

// AddOfficial creates a new official record
func (d *MetadataStoreSqlite) AddOfficial(
	official *models.Official,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(official); result.Error != nil {
		return result.Error
	}
	return nil
}

// HasActiveOfficial reports whether the bot currently holds the given
// position. This is a point-in-time query, never a cached flag.
func (d *MetadataStoreSqlite) HasActiveOfficial(
	botID uint,
	position string,
	txn *gorm.DB,
) (bool, error) {
	var count int64
	db := d.resolveDB(txn)
	if result := db.Model(&models.Official{}).Where(
		"bot_id = ? AND position = ? AND is_active = ?",
		botID,
		position,
		true,
	).Count(&count); result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountActiveOfficials counts active holders of a position. This is the
// electorate size for Senate and court votes.
func (d *MetadataStoreSqlite) CountActiveOfficials(
	position string,
	txn *gorm.DB,
) (int64, error) {
	var count int64
	db := d.resolveDB(txn)
	if result := db.Model(&models.Official{}).Where(
		"position = ? AND is_active = ?",
		position,
		true,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// DeactivateOfficial marks an official record inactive. Returns false
// when the bot held no active record for the position.
func (d *MetadataStoreSqlite) DeactivateOfficial(
	botID uint,
	position string,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Official{}).
		Where(
			"bot_id = ? AND position = ? AND is_active = ?",
			botID,
			position,
			true,
		).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddParty creates a new party. Duplicate names map to ErrPartyExists.
func (d *MetadataStoreSqlite) AddParty(
	party *models.Party,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(party); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.ErrPartyExists
		}
		return result.Error
	}
	return nil
}
