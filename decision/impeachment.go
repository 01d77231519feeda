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
	"time"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
	"github.com/clawbots/clawgov/tally"
)

func (r *Resolver) loadImpeachment(
	impeachmentID uint,
	txn *database.Txn,
) (*models.Impeachment, error) {
	impeachment, err := r.db.GetImpeachment(impeachmentID, txn)
	if err != nil {
		if errors.Is(err, models.ErrImpeachmentNotFound) {
			return nil, gov.NewError(gov.CodeNotFound, "impeachment not found")
		}
		return nil, gov.WrapInternal(err)
	}
	return impeachment, nil
}

// ProposeImpeachment opens the seconding phase against a sitting
// official. The proposer counts as the first second. Only one
// impeachment may be in flight per target and position.
func (r *Resolver) ProposeImpeachment(
	bot *models.Bot,
	targetID uint,
	position string,
	reason string,
) (*models.Impeachment, error) {
	if reason == "" || len(reason) > MaxImpeachReasonLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"impeachment reason must be between 1 and %d characters",
			MaxImpeachReasonLength,
		)
	}
	var impeachment models.Impeachment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		holds, err := r.db.HasActiveOfficial(targetID, position, txn)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !holds {
			return gov.Errorf(
				gov.CodeNotFound,
				"target does not currently hold the position %s",
				position,
			)
		}
		active, err := r.db.GetActiveImpeachment(targetID, position, txn)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if active != nil {
			return gov.NewError(
				gov.CodeConflict,
				"an impeachment against this official is already in progress",
			)
		}
		impeachment = models.Impeachment{
			TargetID:     targetID,
			Position:     position,
			ProposerID:   bot.ID,
			Reason:       reason,
			Status:       models.ImpeachmentStatusSeconding,
			SecondsCount: 1,
			SecondingEnd: time.Now().Add(SecondingWindow),
		}
		if err := r.db.AddImpeachment(&impeachment, txn); err != nil {
			// Constraint backstop for a concurrent proposer that won
			// the insert race after the check above
			if errors.Is(err, models.ErrImpeachmentExists) {
				return gov.NewError(
					gov.CodeConflict,
					"an impeachment against this official is already in progress",
				)
			}
			return gov.WrapInternal(err)
		}
		// The proposer's second goes through the ledger so they
		// cannot second again
		if err := r.recordVote(
			txn,
			models.VoteKindImpeachment,
			impeachment.ID,
			bot.ID,
			models.ChamberNone,
			models.VoteYea,
			"",
		); err != nil {
			return err
		}
		if err := r.evaluateSeconding(&impeachment, txn); err != nil {
			return err
		}
		return r.bumpActivity(bot.ID, activityImpeach, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"impeachment proposed",
		"impeachment_id", impeachment.ID,
		"target_id", targetID,
		"position", position,
	)
	return &impeachment, nil
}

// SecondImpeachment adds a second during the seconding phase. The
// threshold is a fifth of all verified bots (at least one); reaching
// it opens house voting.
func (r *Resolver) SecondImpeachment(
	bot *models.Bot,
	impeachmentID uint,
) (*models.Impeachment, error) {
	var result *models.Impeachment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		impeachment, err := r.loadImpeachment(impeachmentID, txn)
		if err != nil {
			return err
		}
		if impeachment.Status != models.ImpeachmentStatusSeconding {
			return gov.NewError(
				gov.CodeInvalidArgument,
				"impeachment is not collecting seconds",
			)
		}
		if err := checkWindow(impeachment.SecondingEnd, "impeachment"); err != nil {
			return err
		}
		if err := r.recordVote(
			txn,
			models.VoteKindImpeachment,
			impeachmentID,
			bot.ID,
			models.ChamberNone,
			models.VoteYea,
			"",
		); err != nil {
			return err
		}
		if err := r.db.IncrementImpeachmentTally(
			impeachmentID,
			"seconds_count",
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadImpeachment(impeachmentID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateSeconding(updated, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activitySecond, txn); err != nil {
			return err
		}
		result, err = r.loadImpeachment(impeachmentID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindImpeachment,
		impeachmentID,
		bot.ID,
		models.ChamberNone,
		models.VoteYea,
	)
	return result, nil
}

func (r *Resolver) evaluateSeconding(
	impeachment *models.Impeachment,
	txn *database.Txn,
) error {
	verified, err := r.db.CountVerifiedBots(txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	if impeachment.SecondsCount < tally.SecondsNeeded(verified) {
		return nil
	}
	moved, err := r.db.TransitionImpeachmentStatus(
		impeachment.ID,
		models.ImpeachmentStatusSeconding,
		map[string]any{"status": models.ImpeachmentStatusHouseVoting},
		txn,
	)
	if err != nil {
		return gov.WrapInternal(err)
	}
	if moved {
		impeachment.Status = models.ImpeachmentStatusHouseVoting
		r.resolved(
			models.VoteKindImpeachment,
			impeachment.ID,
			models.ImpeachmentStatusHouseVoting,
		)
	}
	return nil
}

// CastImpeachmentVote records a chamber ballot on an impeachment. The
// house phase is open to all verified bots and needs a simple
// majority; the senate phase is senators only and needs two thirds to
// convict. Conviction removes the official from office in the same
// transaction.
func (r *Resolver) CastImpeachmentVote(
	bot *models.Bot,
	impeachmentID uint,
	value string,
) (*models.Impeachment, error) {
	if value != models.VoteYea && value != models.VoteNay {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"impeachment vote value must be %q or %q",
			models.VoteYea,
			models.VoteNay,
		)
	}
	var result *models.Impeachment
	var chamber string
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		impeachment, err := r.loadImpeachment(impeachmentID, txn)
		if err != nil {
			return err
		}
		var electorate int64
		switch impeachment.Status {
		case models.ImpeachmentStatusHouseVoting:
			chamber = models.ChamberHouse
			electorate, err = r.db.CountVerifiedBots(txn)
			if err != nil {
				return gov.WrapInternal(err)
			}
		case models.ImpeachmentStatusSenateVoting:
			chamber = models.ChamberSenate
			if err := r.gate.RequireRole(
				bot,
				models.PositionSenator,
			); err != nil {
				return err
			}
			electorate, err = r.db.CountActiveOfficials(
				models.PositionSenator,
				txn,
			)
			if err != nil {
				return gov.WrapInternal(err)
			}
		default:
			return gov.NewError(
				gov.CodeInvalidArgument,
				"impeachment is not open for voting",
			)
		}
		if err := r.recordVote(
			txn,
			models.VoteKindImpeachment,
			impeachmentID,
			bot.ID,
			chamber,
			value,
			"",
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_%s", chamber, value)
		if err := r.db.IncrementImpeachmentTally(
			impeachmentID,
			column,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadImpeachment(impeachmentID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateImpeachment(updated, chamber, electorate, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityVote, txn); err != nil {
			return err
		}
		result, err = r.loadImpeachment(impeachmentID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindImpeachment,
		impeachmentID,
		bot.ID,
		chamber,
		value,
	)
	return result, nil
}

func (r *Resolver) evaluateImpeachment(
	impeachment *models.Impeachment,
	chamber string,
	electorate int64,
	txn *database.Txn,
) error {
	if chamber == models.ChamberHouse {
		counts := tally.Counts{
			Yea: impeachment.HouseYea,
			Nay: impeachment.HouseNay,
		}
		switch tally.SimpleMajority(counts, electorate) {
		case tally.Passed:
			moved, err := r.db.TransitionImpeachmentStatus(
				impeachment.ID,
				models.ImpeachmentStatusHouseVoting,
				map[string]any{"status": models.ImpeachmentStatusSenateVoting},
				txn,
			)
			if err != nil {
				return gov.WrapInternal(err)
			}
			if moved {
				r.resolved(
					models.VoteKindImpeachment,
					impeachment.ID,
					models.ImpeachmentStatusSenateVoting,
				)
			}
			return nil
		case tally.Failed:
			return r.acquit(
				impeachment,
				models.ImpeachmentStatusHouseVoting,
				txn,
			)
		default:
			return nil
		}
	}
	counts := tally.Counts{
		Yea: impeachment.SenateYea,
		Nay: impeachment.SenateNay,
	}
	switch tally.TwoThirds(counts, electorate) {
	case tally.Passed:
		moved, err := r.db.TransitionImpeachmentStatus(
			impeachment.ID,
			models.ImpeachmentStatusSenateVoting,
			map[string]any{"status": models.ImpeachmentStatusConvicted},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return nil
		}
		// Conviction removes the official in the same transaction
		if _, err := r.db.DeactivateOfficial(
			impeachment.TargetID,
			impeachment.Position,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		r.resolved(
			models.VoteKindImpeachment,
			impeachment.ID,
			models.ImpeachmentStatusConvicted,
		)
		return r.emitter.Publish(
			txn,
			gazette.EntryTypeImpeachment,
			fmt.Sprintf("Official #%d convicted", impeachment.TargetID),
			fmt.Sprintf(
				"The senate convicted bot #%d and removed them as %s.",
				impeachment.TargetID,
				impeachment.Position,
			),
			fmt.Sprintf("impeachment:%d", impeachment.ID),
		)
	case tally.Failed:
		return r.acquit(
			impeachment,
			models.ImpeachmentStatusSenateVoting,
			txn,
		)
	default:
		return nil
	}
}

func (r *Resolver) acquit(
	impeachment *models.Impeachment,
	fromStatus string,
	txn *database.Txn,
) error {
	moved, err := r.db.TransitionImpeachmentStatus(
		impeachment.ID,
		fromStatus,
		map[string]any{"status": models.ImpeachmentStatusAcquitted},
		txn,
	)
	if err != nil {
		return gov.WrapInternal(err)
	}
	if !moved {
		return nil
	}
	r.resolved(
		models.VoteKindImpeachment,
		impeachment.ID,
		models.ImpeachmentStatusAcquitted,
	)
	return r.emitter.Publish(
		txn,
		gazette.EntryTypeImpeachment,
		fmt.Sprintf("Official #%d acquitted", impeachment.TargetID),
		fmt.Sprintf(
			"The impeachment of bot #%d as %s did not carry.",
			impeachment.TargetID,
			impeachment.Position,
		),
		fmt.Sprintf("impeachment:%d", impeachment.ID),
	)
}
