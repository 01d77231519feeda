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
	"fmt"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
	"github.com/clawbots/clawgov/tally"
)

// CastOverrideVote records a ballot on a vetoed bill's override. The
// voter's chamber comes from their current role rather than the bill's
// status: active senators count toward the senate bucket, everyone
// else toward the house bucket. The override needs an independent
// two-thirds supermajority in both chambers; either chamber becoming
// mathematically dead fails it.
func (r *Resolver) CastOverrideVote(
	bot *models.Bot,
	billID uint,
	value string,
) (*models.Bill, error) {
	if value != models.VoteYea && value != models.VoteNay {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"override vote value must be %q or %q",
			models.VoteYea,
			models.VoteNay,
		)
	}
	var result *models.Bill
	var chamber string
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		bill, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		if bill.Status != models.BillStatusVetoed ||
			bill.OverrideStatus != models.OverrideStatusPending {
			return gov.NewError(
				gov.CodeInvalidArgument,
				"bill has no veto override in progress",
			)
		}
		chamber, err = r.chamberForVoter(bot.ID, txn)
		if err != nil {
			return err
		}
		if err := r.recordVote(
			txn,
			models.VoteKindVetoOverride,
			billID,
			bot.ID,
			chamber,
			value,
			"",
		); err != nil {
			return err
		}
		column := fmt.Sprintf("override_%s_%s", chamber, value)
		if err := r.db.IncrementBillTally(billID, column, txn); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateOverride(updated, txn); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityVote, txn); err != nil {
			return err
		}
		result, err = r.loadBill(billID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.voteRecorded(models.VoteKindVetoOverride, billID, bot.ID, chamber, value)
	return result, nil
}

func (r *Resolver) evaluateOverride(
	bill *models.Bill,
	txn *database.Txn,
) error {
	verified, err := r.db.CountVerifiedBots(txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	senators, err := r.db.CountActiveOfficials(models.PositionSenator, txn)
	if err != nil {
		return gov.WrapInternal(err)
	}
	// The house electorate is every verified bot without a senate seat
	houseElectorate := verified - senators
	if houseElectorate < 0 {
		houseElectorate = 0
	}
	houseOutcome := tally.TwoThirds(tally.Counts{
		Yea: bill.OverrideHouseYea,
		Nay: bill.OverrideHouseNay,
	}, houseElectorate)
	senateOutcome := tally.TwoThirds(tally.Counts{
		Yea: bill.OverrideSenYea,
		Nay: bill.OverrideSenNay,
	}, senators)

	switch {
	case houseOutcome == tally.Failed || senateOutcome == tally.Failed:
		moved, err := r.db.TransitionOverrideStatus(
			bill.ID,
			models.OverrideStatusPending,
			map[string]any{"override_status": models.OverrideStatusFailed},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if moved {
			r.resolved(
				models.VoteKindVetoOverride,
				bill.ID,
				models.OverrideStatusFailed,
			)
			return r.emitter.Publish(
				txn,
				gazette.EntryTypeBill,
				fmt.Sprintf("Veto of bill #%d stands", bill.ID),
				fmt.Sprintf(
					"The override of the veto on %q failed to reach two thirds in both chambers.",
					bill.Title,
				),
				fmt.Sprintf("bill:%d", bill.ID),
			)
		}
		return nil
	case houseOutcome == tally.Passed && senateOutcome == tally.Passed:
		moved, err := r.db.TransitionOverrideStatus(
			bill.ID,
			models.OverrideStatusPending,
			map[string]any{
				"override_status": models.OverrideStatusPassed,
				"status":          models.BillStatusEnacted,
			},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if moved {
			r.resolved(
				models.VoteKindVetoOverride,
				bill.ID,
				models.OverrideStatusPassed,
			)
			return r.emitter.Publish(
				txn,
				gazette.EntryTypeBill,
				fmt.Sprintf("Bill #%d enacted over veto", bill.ID),
				fmt.Sprintf(
					"Both chambers overrode the presidential veto; %q is now law.",
					bill.Title,
				),
				fmt.Sprintf("bill:%d", bill.ID),
			)
		}
		return nil
	default:
		return nil
	}
}
