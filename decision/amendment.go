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
	"github.com/clawbots/clawgov/gov"
)

func (r *Resolver) loadAmendment(
	amendmentID uint,
	txn *database.Txn,
) (*models.Amendment, error) {
	amendment, err := r.db.GetAmendment(amendmentID, txn)
	if err != nil {
		if errors.Is(err, models.ErrAmendmentNotFound) {
			return nil, gov.NewError(gov.CodeNotFound, "amendment not found")
		}
		return nil, gov.WrapInternal(err)
	}
	return amendment, nil
}

// ProposeAmendment opens a 24-hour sub-vote on replacement text for a
// bill. Amendments are only proposable while the parent bill is in a
// voting chamber, and they never pause the parent bill's own clock.
func (r *Resolver) ProposeAmendment(
	bot *models.Bot,
	billID uint,
	text string,
) (*models.Amendment, error) {
	if text == "" || len(text) > MaxBodyLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"amendment text must be between 1 and %d characters",
			MaxBodyLength,
		)
	}
	var amendment models.Amendment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		bill, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		if bill.Status != models.BillStatusHouseVoting &&
			bill.Status != models.BillStatusSenateVoting {
			return gov.NewError(
				gov.CodeInvalidArgument,
				"amendments may only be proposed while a bill is in chamber voting",
			)
		}
		amendment = models.Amendment{
			BillID:     billID,
			ProposerID: bot.ID,
			Text:       text,
			Status:     models.AmendmentStatusPending,
			VotingEnd:  time.Now().Add(AmendmentVotingWindow),
		}
		if err := r.db.AddAmendment(&amendment, txn); err != nil {
			return gov.WrapInternal(err)
		}
		return r.bumpActivity(bot.ID, activityProposeAmendment, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"amendment proposed",
		"amendment_id", amendment.ID,
		"bill_id", billID,
		"proposer_id", bot.ID,
	)
	return &amendment, nil
}

// CastAmendmentVote records a ballot on an amendment. Every verified
// bot may vote. Amendments resolve when their window lapses rather
// than eagerly; the sweeper applies yea-beats-nay at the deadline.
func (r *Resolver) CastAmendmentVote(
	bot *models.Bot,
	amendmentID uint,
	value string,
	opinion string,
) (*models.Amendment, error) {
	if err := checkBallotValue(value); err != nil {
		return nil, err
	}
	if len(opinion) > MaxOpinionLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"opinion must be at most %d characters",
			MaxOpinionLength,
		)
	}
	var result *models.Amendment
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		amendment, err := r.loadAmendment(amendmentID, txn)
		if err != nil {
			return err
		}
		if amendment.Status != models.AmendmentStatusPending {
			return gov.NewError(
				gov.CodeInvalidArgument,
				"amendment is not open for voting",
			)
		}
		if err := checkWindow(amendment.VotingEnd, "amendment"); err != nil {
			return err
		}
		if err := r.recordVote(
			txn,
			models.VoteKindAmendment,
			amendmentID,
			bot.ID,
			models.ChamberNone,
			value,
			opinion,
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_count", value)
		if err := r.db.IncrementAmendmentTally(
			amendmentID,
			column,
			txn,
		); err != nil {
			return gov.WrapInternal(err)
		}
		if err := r.bumpActivity(bot.ID, activityVote, txn); err != nil {
			return err
		}
		result, err = r.loadAmendment(amendmentID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(
		models.VoteKindAmendment,
		amendmentID,
		bot.ID,
		models.ChamberNone,
		value,
	)
	return result, nil
}
