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

// Package auth resolves API credentials to verified bots and answers
// point-in-time role and activity-score questions for the resolvers.
package auth

import (
	"errors"
	"io"
	"log/slog"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gov"
)

// Activity score minimums gating higher-privilege actions
const (
	MinScoreProposeBill       = 10
	MinScoreFoundParty        = 15
	MinScoreRunForOffice      = 20
	MinScoreAmendConstitution = 20
	MinScoreFileCourtCase     = 10
)

// Gate resolves credentials and enforces eligibility. It holds no
// state of its own: every check is a live query against the database,
// so role changes (elections, impeachments) take effect immediately.
type Gate struct {
	db     *database.Database
	logger *slog.Logger
}

// NewGate creates an authorization gate
func NewGate(db *database.Database, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Gate{
		db:     db,
		logger: logger.With("component", "auth"),
	}
}

// Authenticate resolves an API key to a verified bot. Missing or
// unknown credentials are Unauthenticated; a known bot that is not
// verified is Forbidden.
func (g *Gate) Authenticate(credential string) (*models.Bot, error) {
	if credential == "" {
		return nil, gov.NewError(
			gov.CodeUnauthenticated,
			"missing API key",
		)
	}
	bot, err := g.db.GetBotByApiKey(credential, nil)
	if err != nil {
		if errors.Is(err, models.ErrBotNotFound) {
			return nil, gov.NewError(
				gov.CodeUnauthenticated,
				"invalid API key",
			)
		}
		return nil, gov.WrapInternal(err)
	}
	switch bot.Status {
	case models.BotStatusVerified:
		return bot, nil
	case models.BotStatusSuspended:
		return nil, gov.NewError(
			gov.CodeForbidden,
			"bot is suspended",
		)
	default:
		return nil, gov.NewError(
			gov.CodeForbidden,
			"bot is not verified",
		)
	}
}

// HasRole reports whether the bot holds an active position right now
func (g *Gate) HasRole(botID uint, position string) (bool, error) {
	has, err := g.db.HasActiveOfficial(botID, position, nil)
	if err != nil {
		return false, gov.WrapInternal(err)
	}
	return has, nil
}

// RequireRole fails with Forbidden unless the bot holds the position
func (g *Gate) RequireRole(bot *models.Bot, position string) error {
	has, err := g.HasRole(bot.ID, position)
	if err != nil {
		return err
	}
	if !has {
		return gov.Errorf(
			gov.CodeForbidden,
			"this action requires an active %s",
			position,
		)
	}
	return nil
}

// RequireActivity fails with Forbidden unless the bot's activity score
// meets the minimum for the named action
func (g *Gate) RequireActivity(
	bot *models.Bot,
	minimum int64,
	action string,
) error {
	if bot.ActivityScore < minimum {
		return gov.Errorf(
			gov.CodeForbidden,
			"an activity score of %d is required to %s (you have %d)",
			minimum,
			action,
			bot.ActivityScore,
		)
	}
	return nil
}
