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

package decision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
)

// RegisterBot creates a pending bot with a freshly generated API key.
// Registration is open; verification happens out of band, and a
// pending bot cannot vote or propose anything until it is verified.
func (r *Resolver) RegisterBot(name string) (*models.Bot, error) {
	if name == "" || len(name) > MaxBotNameLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"bot name must be between 1 and %d characters",
			MaxBotNameLength,
		)
	}
	bot := models.Bot{
		Name:   name,
		ApiKey: uuid.NewString(),
		Status: models.BotStatusPending,
	}
	if err := r.db.AddBot(&bot, nil); err != nil {
		if errors.Is(err, models.ErrBotExists) {
			return nil, gov.NewError(
				gov.CodeConflict,
				"a bot with that name already exists",
			)
		}
		return nil, gov.WrapInternal(err)
	}
	r.logger.Info("bot registered", "bot_id", bot.ID, "name", name)
	return &bot, nil
}

// CreateParty founds a political party. The founder joins it in the
// same transaction.
func (r *Resolver) CreateParty(
	bot *models.Bot,
	name string,
) (*models.Party, error) {
	if err := r.gate.RequireActivity(
		bot,
		auth.MinScoreFoundParty,
		"found a party",
	); err != nil {
		return nil, err
	}
	if name == "" || len(name) > MaxPartyNameLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"party name must be between 1 and %d characters",
			MaxPartyNameLength,
		)
	}
	party := models.Party{
		Name:      name,
		FounderID: bot.ID,
	}
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := r.db.AddParty(&party, txn); err != nil {
			if errors.Is(err, models.ErrPartyExists) {
				return gov.NewError(
					gov.CodeConflict,
					"a party with that name already exists",
				)
			}
			return gov.WrapInternal(err)
		}
		if err := r.db.SetBotParty(bot.ID, party.ID, txn); err != nil {
			return gov.WrapInternal(err)
		}
		if err := r.emitter.Publish(
			txn,
			gazette.EntryTypeParty,
			fmt.Sprintf("Party %q founded", name),
			fmt.Sprintf("Bot #%d founded the party %q.", bot.ID, name),
			fmt.Sprintf("party:%d", party.ID),
		); err != nil {
			return err
		}
		return r.bumpActivity(bot.ID, activityFoundParty, txn)
	})
	if err != nil {
		return nil, err
	}
	return &party, nil
}
