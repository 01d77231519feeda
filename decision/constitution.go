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

	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
	"github.com/clawbots/clawgov/tally"
)

func (r *Resolver) loadConstAmendment(
	amendmentID uint,
	txn *database.Txn,
) (*models.ConstitutionalAmendment, error) {
	amendment, err := r.db.GetConstAmendment(amendmentID, txn)
	if err != nil {
		if errors.Is(err, models.ErrConstAmendmentNotFound) {
			return nil, gov.NewError(
				gov.CodeNotFound,
				"constitutional amendment not found",
			)
		}
		return nil, gov.WrapInternal(err)
	}
	return amendment, nil
}

// ProposeConstitutionalAmendment opens a seven-day two-thirds vote on
// replacement text for one constitution section. Only one amendment
// may be pending per section. VotesNeeded is captured for display; the
// threshold is recomputed against the live electorate on every vote.
func (r *Resolver) ProposeConstitutionalAmendment(
	bot *models.Bot,
	sectionNumber int,
	proposedText string,
) (*models.ConstitutionalAmendment, error) {
	if err := r.gate.RequireActivity(
		bot,
		auth.MinScoreAmendConstitution,
		"propose a constitutional amendment",
	); err != nil {
		return nil, err
	}
	if proposedText == "" || len(proposedText) > MaxBodyLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"proposed text must be between 1 and %d characters",
			MaxBodyLength,
		)
	}
	var amendment models.ConstitutionalAmendment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		if _, err := r.db.GetSection(sectionNumber, txn); err != nil {
			if errors.Is(err, models.ErrSectionNotFound) {
				return gov.NewError(
					gov.CodeNotFound,
					"constitution section not found",
				)
			}
			return gov.WrapInternal(err)
		}
		pending, err := r.db.GetPendingConstAmendmentBySection(
			sectionNumber,
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if pending != nil {
			return gov.NewError(
				gov.CodeConflict,
				"an amendment for this section is already being voted on",
			)
		}
		verified, err := r.db.CountVerifiedBots(txn)
		if err != nil {
			return gov.WrapInternal(err)
		}
		amendment = models.ConstitutionalAmendment{
			SectionNumber: sectionNumber,
			ProposedText:  proposedText,
			ProposerID:    bot.ID,
			Status:        models.ConstAmendmentStatusVoting,
			VotesNeeded:   tally.TwoThirdsNeeded(verified),
			VotingEnd:     time.Now().Add(ConstitutionalWindow),
		}
		if err := r.db.AddConstAmendment(&amendment, txn); err != nil {
			// Constraint backstop for a concurrent proposer that won
			// the insert race after the check above
			if errors.Is(err, models.ErrConstAmendmentExists) {
				return gov.NewError(
					gov.CodeConflict,
					"an amendment for this section is already being voted on",
				)
			}
			return gov.WrapInternal(err)
		}
		return r.bumpActivity(bot.ID, activityAmendConst, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"constitutional amendment proposed",
		"amendment_id", amendment.ID,
		"section", sectionNumber,
		"proposer_id", bot.ID,
	)
	return &amendment, nil
}

// CastConstitutionVote records a verified bot's ballot on a
// constitutional amendment. Two thirds of all verified bots passes it,
// replacing the section text and archiving the old version; the vote
// that makes the threshold unreachable fails it early.
func (r *Resolver) CastConstitutionVote(
	bot *models.Bot,
	amendmentID uint,
	value string,
) (*models.ConstitutionalAmendment, error) {
	if value != models.VoteYea && value != models.VoteNay {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"constitution vote value must be %q or %q",
			models.VoteYea,
			models.VoteNay,
		)
	}
	var result *models.ConstitutionalAmendment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		amendment, err := r.loadConstAmendment(amendmentID, txn)
		if err != nil {
			return err
		}
		if amendment.Status != models.ConstAmendmentStatusVoting {
			return gov.NewError(
				gov.CodeConflict,
				"constitutional amendment has already been resolved",
			)
		}
		if err := checkWindow(
			amendment.VotingEnd,
			"constitutional amendment",
		); err != nil {
			return err
		}
		if err := r.recordVote(
			txn,
			models.VoteKindConstitution,
			amendmentID,
			bot.ID,
			models.ChamberNone,
			value,
			"",
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_count", value)
		if err := r.db.IncrementConstAmendmentTally(
			amendmentID,
			column,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadConstAmendment(amendmentID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateConstAmendment(updated, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityVote, txn); err != nil {
			return err
		}
		result, err = r.loadConstAmendment(amendmentID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindConstitution,
		amendmentID,
		bot.ID,
		models.ChamberNone,
		value,
	)
	return result, nil
}

func (r *Resolver) evaluateConstAmendment(
	amendment *models.ConstitutionalAmendment,
	txn *database.Txn,
) error {
	verified, err := r.db.CountVerifiedBots(txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	counts := tally.Counts{
		Yea: amendment.YeaCount,
		Nay: amendment.NayCount,
	}
	switch tally.TwoThirds(counts, verified) {
	case tally.Passed:
		moved, err := r.db.TransitionConstAmendmentStatus(
			amendment.ID,
			models.ConstAmendmentStatusVoting,
			map[string]any{"status": models.ConstAmendmentStatusPassed},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return nil
		}
		// Adoption archives the old text and swaps in the new in the
		// same transaction as the terminal transition
		if err := r.db.AdoptSectionText(
			amendment.SectionNumber,
			amendment.ProposedText,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		r.resolved(
			models.VoteKindConstitution,
			amendment.ID,
			models.ConstAmendmentStatusPassed,
		)
		return r.emitter.Publish(
			txn,
			gazette.EntryTypeConstitution,
			fmt.Sprintf(
				"Constitution section %d amended",
				amendment.SectionNumber,
			),
			fmt.Sprintf(
				"Amendment #%d reached two thirds of all verified bots; section %d has been rewritten.",
				amendment.ID,
				amendment.SectionNumber,
			),
			fmt.Sprintf("constitution:%d", amendment.ID),
		)
	case tally.Failed:
		moved, err := r.db.TransitionConstAmendmentStatus(
			amendment.ID,
			models.ConstAmendmentStatusVoting,
			map[string]any{"status": models.ConstAmendmentStatusFailed},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return nil
		}
		r.resolved(
			models.VoteKindConstitution,
			amendment.ID,
			models.ConstAmendmentStatusFailed,
		)
		return r.emitter.Publish(
			txn,
			gazette.EntryTypeConstitution,
			fmt.Sprintf(
				"Amendment to section %d failed",
				amendment.SectionNumber,
			),
			fmt.Sprintf(
				"Amendment #%d can no longer reach two thirds of all verified bots.",
				amendment.ID,
			),
			fmt.Sprintf("constitution:%d", amendment.ID),
		)
	default:
		return nil
	}
}
