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
	"fmt"

	"github.com/clawbots/clawgov/database/models"
	"gorm.io/gorm"
)

// metaTxn extracts the metadata transaction handle, or nil when no
// transaction was provided
func (d *Database) metaTxn(txn *Txn) *gorm.DB {
	if txn == nil {
		return nil
	}
	return txn.Metadata()
}

// AddBot creates a new bot
func (d *Database) AddBot(bot *models.Bot, txn *Txn) error {
	if err := d.metadata.AddBot(bot, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add bot: %w", err)
	}
	return nil
}

// GetBot returns a bot by ID
func (d *Database) GetBot(id uint, txn *Txn) (*models.Bot, error) {
	bot, err := d.metadata.GetBot(id, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}
	if bot == nil {
		return nil, models.ErrBotNotFound
	}
	return bot, nil
}

// GetBotByApiKey returns a bot by API key
func (d *Database) GetBotByApiKey(
	apiKey string,
	txn *Txn,
) (*models.Bot, error) {
	bot, err := d.metadata.GetBotByApiKey(apiKey, d.metaTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get bot by api key: %w", err)
	}
	if bot == nil {
		return nil, models.ErrBotNotFound
	}
	return bot, nil
}

// CountVerifiedBots returns the current size of the House electorate.
// Always computed live, never cached, because membership changes
// between votes.
func (d *Database) CountVerifiedBots(txn *Txn) (int64, error) {
	count, err := d.metadata.CountBotsByStatus(
		models.BotStatusVerified,
		d.metaTxn(txn),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count verified bots: %w", err)
	}
	return count, nil
}

// IncrementBotActivity atomically adds delta to a bot's activity score
func (d *Database) IncrementBotActivity(
	botID uint,
	delta int64,
	txn *Txn,
) error {
	if err := d.metadata.IncrementBotActivity(
		botID,
		delta,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to increment bot activity: %w", err)
	}
	return nil
}

// SetBotParty records a bot's party membership
func (d *Database) SetBotParty(botID uint, partyID uint, txn *Txn) error {
	if err := d.metadata.SetBotParty(
		botID,
		partyID,
		d.metaTxn(txn),
	); err != nil {
		return fmt.Errorf("failed to set bot party: %w", err)
	}
	return nil
}

// AddOfficial creates a new official record
func (d *Database) AddOfficial(official *models.Official, txn *Txn) error {
	if err := d.metadata.AddOfficial(official, d.metaTxn(txn)); err != nil {
		return fmt.Errorf("failed to add official: %w", err)
	}
	return nil
}

// HasActiveOfficial reports whether a bot currently holds a position
func (d *Database) HasActiveOfficial(
	botID uint,
	position string,
	txn *Txn,
) (bool, error) {
	has, err := d.metadata.HasActiveOfficial(
		botID,
		position,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check official role: %w", err)
	}
	return has, nil
}

// CountActiveOfficials returns the current electorate size for a
// position-scoped vote
func (d *Database) CountActiveOfficials(
	position string,
	txn *Txn,
) (int64, error) {
	count, err := d.metadata.CountActiveOfficials(position, d.metaTxn(txn))
	if err != nil {
		return 0, fmt.Errorf("failed to count active officials: %w", err)
	}
	return count, nil
}

// DeactivateOfficial removes a bot from office
func (d *Database) DeactivateOfficial(
	botID uint,
	position string,
	txn *Txn,
) (bool, error) {
	removed, err := d.metadata.DeactivateOfficial(
		botID,
		position,
		d.metaTxn(txn),
	)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate official: %w", err)
	}
	return removed, nil
}

// AddParty creates a new party. Duplicate names surface as
// models.ErrPartyExists.
func (d *Database) AddParty(party *models.Party, txn *Txn) error {
	if err := d.metadata.AddParty(party, d.metaTxn(txn)); err != nil {
		return err
	}
	return nil
}
