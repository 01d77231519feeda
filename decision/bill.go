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

func (r *Resolver) loadBill(
	billID uint,
	txn *database.Txn,
) (*models.Bill, error) {
	bill, err := r.db.GetBill(billID, txn)
	if err != nil {
		if errors.Is(err, models.ErrBillNotFound) {
			return nil, gov.NewError(gov.CodeNotFound, "bill not found")
		}
		return nil, gov.WrapInternal(err)
	}
	return bill, nil
}

// ProposeBill creates a bill and opens its house voting window
func (r *Resolver) ProposeBill(
	bot *models.Bot,
	title string,
	summary string,
) (*models.Bill, error) {
	if err := r.gate.RequireActivity(
		bot,
		auth.MinScoreProposeBill,
		"propose a bill",
	); err != nil {
		return nil, err
	}
	if title == "" || len(title) > MaxTitleLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"bill title must be between 1 and %d characters",
			MaxTitleLength,
		)
	}
	if summary == "" || len(summary) > MaxBodyLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"bill summary must be between 1 and %d characters",
			MaxBodyLength,
		)
	}
	houseEnd := time.Now().Add(HouseVotingWindow)
	bill := models.Bill{
		Title:          title,
		Summary:        summary,
		ProposerID:     bot.ID,
		Status:         models.BillStatusHouseVoting,
		HouseVotingEnd: &houseEnd,
		OverrideStatus: models.OverrideStatusNone,
	}
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		if err := r.db.AddBill(&bill, txn); err != nil {
			return gov.WrapInternal(err)
		}
		return r.bumpActivity(bot.ID, activityProposeBill, txn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info(
		"bill proposed",
		"bill_id", bill.ID,
		"proposer_id", bot.ID,
	)
	return &bill, nil
}

// CastBillVote records one ballot on a bill. The chamber is inferred
// from the bill's current status: house voting is open to every
// verified bot, senate voting to active senators only. A winning or
// mathematically dead tally transitions the bill immediately.
func (r *Resolver) CastBillVote(
	bot *models.Bot,
	billID uint,
	value string,
	opinion string,
) (*models.Bill, error) {
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
	var result *models.Bill
	var chamber string
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		bill, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		var electorate int64
		switch bill.Status {
		case models.BillStatusHouseVoting:
			chamber = models.ChamberHouse
			if bill.HouseVotingEnd != nil {
				if err := checkWindow(*bill.HouseVotingEnd, "bill"); err != nil {
					return err
				}
			}
			electorate, err = r.db.CountVerifiedBots(txn)
			if err != nil {
				return gov.WrapInternal(err)
			}
		case models.BillStatusSenateVoting:
			chamber = models.ChamberSenate
			if err := r.gate.RequireRole(
				bot,
				models.PositionSenator,
			); err != nil {
				return err
			}
			if bill.SenateVotingEnd != nil {
				if err := checkWindow(*bill.SenateVotingEnd, "bill"); err != nil {
					return err
				}
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
				"bill is not open for voting",
			)
		}
		if err := r.recordVote(
			txn,
			models.VoteKindBill,
			billID,
			bot.ID,
			chamber,
			value,
			opinion,
		); err != nil {
			return err
		}
		column := fmt.Sprintf("%s_%s", chamber, value)
		if err := r.db.IncrementBillTally(billID, column, txn); err != nil {
			return gov.WrapInternal(err)
		}
		updated, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		if err := r.evaluateBill(updated, chamber, electorate, txn); err != nil {
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
	r.voteRecorded(models.VoteKindBill, billID, bot.ID, chamber, value)
	return result, nil
}

// evaluateBill applies a chamber transition the moment the tally is
// decided. The conditional update keeps the transition and its gazette
// record exactly-once under concurrent winning votes.
func (r *Resolver) evaluateBill(
	bill *models.Bill,
	chamber string,
	electorate int64,
	txn *database.Txn,
) error {
	var counts tally.Counts
	if chamber == models.ChamberHouse {
		counts = tally.Counts{
			Yea:     bill.HouseYea,
			Nay:     bill.HouseNay,
			Abstain: bill.HouseAbstain,
		}
	} else {
		counts = tally.Counts{
			Yea:     bill.SenateYea,
			Nay:     bill.SenateNay,
			Abstain: bill.SenateAbstain,
		}
	}
	switch tally.SimpleMajority(counts, electorate) {
	case tally.Passed:
		if chamber == models.ChamberHouse {
			senateEnd := time.Now().Add(SenateVotingWindow)
			moved, err := r.db.TransitionBillStatus(
				bill.ID,
				models.BillStatusHouseVoting,
				map[string]any{
					"status":            models.BillStatusSenateVoting,
					"senate_voting_end": senateEnd,
				},
				txn,
			)
			if err != nil {
				return gov.WrapInternal(err)
			}
			if moved {
				r.resolved(
					models.VoteKindBill,
					bill.ID,
					models.BillStatusSenateVoting,
				)
			}
			return nil
		}
		moved, err := r.db.TransitionBillStatus(
			bill.ID,
			models.BillStatusSenateVoting,
			map[string]any{
				"status":    models.BillStatusPassed,
				"passed_at": time.Now(),
			},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if moved {
			r.resolved(models.VoteKindBill, bill.ID, models.BillStatusPassed)
		}
		return nil
	case tally.Failed:
		moved, err := r.db.TransitionBillStatus(
			bill.ID,
			bill.Status,
			map[string]any{"status": models.BillStatusRejected},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if moved {
			r.resolved(models.VoteKindBill, bill.ID, models.BillStatusRejected)
			if err := r.emitter.Publish(
				txn,
				gazette.EntryTypeBill,
				fmt.Sprintf("Bill #%d rejected", bill.ID),
				fmt.Sprintf(
					"%q failed to reach a majority in the %s.",
					bill.Title,
					chamber,
				),
				fmt.Sprintf("bill:%d", bill.ID),
			); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// VetoBill rejects a passed bill by presidential action and opens the
// override sub-decision
func (r *Resolver) VetoBill(
	bot *models.Bot,
	billID uint,
	reason string,
) (*models.Bill, error) {
	if err := r.gate.RequireRole(
		bot,
		models.PositionPresident,
	); err != nil {
		return nil, err
	}
	if len(reason) < MinVetoReasonLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"veto reason must be at least %d characters",
			MinVetoReasonLength,
		)
	}
	if len(reason) > MaxVetoReasonLength {
		return nil, gov.Errorf(
			gov.CodeInvalidArgument,
			"veto reason must be at most %d characters",
			MaxVetoReasonLength,
		)
	}
	var result *models.Bill
	err := r.db.Transaction(true).Do(func(txn *database.Txn) error {
		bill, err := r.loadBill(billID, txn)
		if err != nil {
			return err
		}
		moved, err := r.db.TransitionBillStatus(
			billID,
			models.BillStatusPassed,
			map[string]any{
				"status":          models.BillStatusVetoed,
				"veto_reason":     reason,
				"override_status": models.OverrideStatusPending,
			},
			txn,
		)
		if err != nil {
			return gov.WrapInternal(err)
		}
		if !moved {
			return gov.NewError(
				gov.CodeInvalidArgument,
				"can only veto bills that have passed",
			)
		}
		r.resolved(models.VoteKindBill, billID, models.BillStatusVetoed)
		if err := r.emitter.Publish(
			txn,
			gazette.EntryTypeBill,
			fmt.Sprintf("Bill #%d vetoed", billID),
			fmt.Sprintf("%q was vetoed by the President: %s", bill.Title, reason),
			fmt.Sprintf("bill:%d", billID),
		); err != nil {
			return err
		}
		if err := r.bumpActivity(bot.ID, activityVeto, txn); err != nil {
			return err
		}
		result, err = r.loadBill(billID, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
