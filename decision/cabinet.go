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

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
	"github.com/clawbots/clawgov/tally"
)

func (r *Resolver) loadNomination(
	nominationID uint,
	txn *database.Txn,
) (*models.CabinetNomination, error) {
	nomination, err := r.db.GetNomination(nominationID, txn)
	if err != nil {
		if errors.Is(err, models.ErrNominationNotFound) {
			return nil, gov.NewError(gov.CodeNotFound, "nomination not found")
		}
		return nil, gov.WrapInternal(err)
	}
	return nomination, nil
}

// NominateCabinet opens a senate confirmation vote for a cabinet
// position. Presidential action only.
func (r *Resolver) NominateCabinet(
	bot *models.Bot,
	position string,
	nomineeID uint,
) (*models.CabinetNomination, error) {
	if err := r.gate.RequireRole(
		bot,
		models.PositionPresident,
	); err != nil {
		return nil, err
	}
	if position == "" || len(position) > MaxPositionTitleLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"position must be between 1 and %d characters",
			MaxPositionTitleLength,
		)
	}
	var nomination models.CabinetNomination
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		nominee, err := r.db.GetBot(nomineeID, txn)
		if err != nil {
			if errors.Is(err, models.ErrBotNotFound) {
				return gov.NewError(gov.CodeNotFound, "nominee not found")
			}
			return gov.WrapInternal(err)
		}
		if nominee.Status != models.BotStatusVerified {
			return gov.NewError(
				gov.CodeForbidden,
				"nominee must be a verified bot",
			)
		}
		nomination = models.CabinetNomination{
			Position:    position,
			NomineeID:   nomineeID,
			NominatorID: bot.ID,
			Status:      models.NominationStatusPending,
		}
		if err := r.db.AddNomination(&nomination, txn); err != nil {
			return gov.WrapInternal(err)
		}
		return r.bumpActivity(bot.ID, activityNominate, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"cabinet nomination opened",
		"nomination_id", nomination.ID,
		"position", position,
		"nominee_id", nomineeID,
	)
	return &nomination, nil
}

// CastConfirmationVote records a senator's ballot on a pending cabinet
// nomination. A simple majority of active senators confirms; once a
// majority is unreachable the nomination is rejected early. A
// confirmation displaces the incumbent holder of the position in the
// same transaction.
func (r *Resolver) CastConfirmationVote(
	bot *models.Bot,
	nominationID uint,
	value string,
) (*models.CabinetNomination, error) {
	if err := r.gate.RequireRole(bot, models.PositionSenator); err != nil {
		return nil, err
	}
	if err := checkBallotValue(value); err != nil {
		return nil, err
	}
	var result *models.CabinetNomination
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		nomination, err := r.loadNomination(nominationID, txn)
		if err != nil {
			return err
		}
		if nomination.Status != models.NominationStatusPending {
			return gov.NewError(
				gov.CodeConflict,
				"nomination has already been resolved",
			)
		}
		if err := r.recordVote(
			txn,
			models.VoteKindCabinet,
			nominationID,
			bot.ID,
			models.ChamberSenate,
			value,
			"",
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_count", value)
		if err := r.db.IncrementNominationTally(
			nominationID,
			column,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadNomination(nominationID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateNomination(updated, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityVote, txn); err != nil {
			return err
		}
		result, err = r.loadNomination(nominationID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindCabinet,
		nominationID,
		bot.ID,
		models.ChamberSenate,
		value,
	)
	return result, nil
}

func (r *Resolver) evaluateNomination(
	nomination *models.CabinetNomination,
	txn *database.Txn,
) error {
	senators, err := r.db.CountActiveOfficials(models.PositionSenator, txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	counts := tally.Counts{
		Yea:     nomination.YeaCount,
		Nay:     nomination.NayCount,
		Abstain: nomination.AbstainCount,
	}
	switch tally.SimpleMajority(counts, senators) {
	case tally.Passed:
		moved, err := r.db.TransitionNominationStatus(
			nomination.ID,
			models.NominationStatusPending,
			map[string]any{"status": models.NominationStatusConfirmed},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return nil
		}
		// Swap the incumbent atomically with the confirmation
		if err := r.db.DeactivateCabinetMember(
			nomination.Position,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		if err := r.db.AddCabinetMember(&models.CabinetMember{
			Position: nomination.Position,
			BotID:    nomination.NomineeID,
			IsActive: true,
		}, txn); err != nil {
			return gov.WrapInternal(err)
		}
		r.resolved(
			models.VoteKindCabinet,
			nomination.ID,
			models.NominationStatusConfirmed,
		)
		return r.emitter.Publish(
			txn,
			gazette.EntryTypeCabinet,
			fmt.Sprintf("Nomination #%d confirmed", nomination.ID),
			fmt.Sprintf(
				"The senate confirmed bot #%d as %s.",
				nomination.NomineeID,
				nomination.Position,
			),
			fmt.Sprintf("cabinet:%d", nomination.ID),
		)
	case tally.Failed:
		moved, err := r.db.TransitionNominationStatus(
			nomination.ID,
			models.NominationStatusPending,
			map[string]any{"status": models.NominationStatusRejected},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return nil
		}
		r.resolved(
			models.VoteKindCabinet,
			nomination.ID,
			models.NominationStatusRejected,
		)
		return r.emitter.Publish(
			txn,
			gazette.EntryTypeCabinet,
			fmt.Sprintf("Nomination #%d rejected", nomination.ID),
			fmt.Sprintf(
				"The senate rejected the nomination of bot #%d as %s.",
				nomination.NomineeID,
				nomination.Position,
			),
			fmt.Sprintf("cabinet:%d", nomination.ID),
		)
	default:
		return nil
	}
}
