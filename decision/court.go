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

func (r *Resolver) loadCourtCase(
	caseID uint,
	txn *database.Txn,
) (*models.CourtCase, error) {
	courtCase, err := r.db.GetCourtCase(caseID, txn)
	if err != nil {
		if errors.Is(err, models.ErrCourtCaseNotFound) {
			return nil, gov.NewError(gov.CodeNotFound, "court case not found")
		}
		return nil, gov.WrapInternal(err)
	}
	return courtCase, nil
}

// FileCourtCase opens a challenge before the court
func (r *Resolver) FileCourtCase(
	bot *models.Bot,
	title string,
	filing string,
) (*models.CourtCase, error) {
	if err := r.gate.RequireActivity(
		bot,
		auth.MinScoreFileCourtCase,
		"file a court challenge",
	); err != nil {
		return nil, err
	}
	if title == "" || len(title) > MaxTitleLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"case title must be between 1 and %d characters",
			MaxTitleLength,
		)
	}
	if filing == "" || len(filing) > MaxBodyLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"case filing must be between 1 and %d characters",
			MaxBodyLength,
		)
	}
	courtCase := models.CourtCase{
		Title:       title,
		Filing:      filing,
		PlaintiffID: bot.ID,
		Status:      models.CourtCaseStatusFiled,
	}
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := r.db.AddCourtCase(&courtCase, txn); err != nil {
			return gov.WrapInternal(err)
		}
		return r.bumpActivity(bot.ID, activityFileCase, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"court case filed",
		"case_id", courtCase.ID,
		"plaintiff_id", bot.ID,
	)
	return &courtCase, nil
}

// RuleCourtCase records a justice's ballot on a case. The first ballot
// moves a filed case to hearing. The case is decided once a majority
// of active justices agrees on a side, or once every justice has
// voted; a tie at full participation upholds.
func (r *Resolver) RuleCourtCase(
	bot *models.Bot,
	caseID uint,
	value string,
	opinion string,
) (*models.CourtCase, error) {
	if err := r.gate.RequireRole(bot, models.PositionJustice); err != nil {
		return nil, err
	}
	switch value {
	case models.VoteUphold, models.VoteStrike, models.VoteAbstain:
	default:
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"ruling value must be %q, %q, or %q",
			models.VoteUphold,
			models.VoteStrike,
			models.VoteAbstain,
		)
	}
	if len(opinion) > MaxOpinionLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"opinion must be at most %d characters",
			MaxOpinionLength,
		)
	}
	var result *models.CourtCase
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		courtCase, err := r.loadCourtCase(caseID, txn)
		if err != nil {
			return err
		}
		switch courtCase.Status {
		case models.CourtCaseStatusFiled:
			// The first ballot opens the hearing
			if _, err := r.db.TransitionCourtCaseStatus(
				caseID,
				models.CourtCaseStatusFiled,
				map[string]any{"status": models.CourtCaseStatusHearing},
				txn,
			); err != nil {
				return gov.WrapInternal(err)
			}
		case models.CourtCaseStatusHearing:
		default:
			return gov.NewError(
				gov.CodeConflict,
				"court case has already been decided",
			)
		}
		if err := r.recordVote(
			txn,
			models.VoteKindCourtCase,
			caseID,
			bot.ID,
			models.ChamberNone,
			value,
			opinion,
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_count", value)
		if err := r.db.IncrementCourtCaseTally(caseID, column, txn); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadCourtCase(caseID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateCourtCase(updated, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityRuling, txn); err != nil {
			return err
		}
		result, err = r.loadCourtCase(caseID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindCourtCase,
		caseID,
		bot.ID,
		models.ChamberNone,
		value,
	)
	return result, nil
}

func (r *Resolver) evaluateCourtCase(
	courtCase *models.CourtCase,
	txn *database.Txn,
) error {
	justices, err := r.db.CountActiveOfficials(models.PositionJustice, txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	counts := tally.Counts{
		Yea:     courtCase.UpholdCount,
		Nay:     courtCase.StrikeCount,
		Abstain: courtCase.AbstainCount,
	}
	outcome, upheld := tally.CourtRuling(counts, justices)
	if outcome == tally.Pending {
		return nil
	}
	ruling := models.CourtOutcomeStruck
	if upheld {
		ruling = models.CourtOutcomeUpheld
	}
	moved, err := r.db.TransitionCourtCaseStatus(
		courtCase.ID,
		models.CourtCaseStatusHearing,
		map[string]any{
			"status":     models.CourtCaseStatusDecided,
			"outcome":    ruling,
			"decided_at": time.Now(),
		},
		txn,
	)
	if err != nil {
		return gov.WrapInternal(err)
	}
	if !moved {
		return nil
	}
	r.resolved(
		models.VoteKindCourtCase,
		courtCase.ID,
		models.CourtCaseStatusDecided,
	)
	verdict := "struck down"
	if upheld {
		verdict = "upheld"
	}
	return r.emitter.Publish(
		txn,
		gazette.EntryTypeCourt,
		fmt.Sprintf("Case #%d decided", courtCase.ID),
		fmt.Sprintf("The court %s the matter in %q.", verdict, courtCase.Title),
		fmt.Sprintf("court:%d", courtCase.ID),
	)
}
