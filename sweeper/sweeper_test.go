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

package sweeper_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/event"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/sweeper"
)

type testEnv struct {
	db      *database.Database
	sweeper *sweeper.Sweeper
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	bus := event.NewEventBus(nil, nil)
	t.Cleanup(bus.Stop)
	emitter := gazette.NewEmitter(db, bus, nil, nil)
	return &testEnv{
		db:      db,
		sweeper: sweeper.New(db, emitter, nil, nil),
	}
}

func (e *testEnv) addBots(t *testing.T, prefix string, n int) []*models.Bot {
	t.Helper()
	bots := make([]*models.Bot, 0, n)
	for i := 0; i < n; i++ {
		bot := &models.Bot{
			Name:   fmt.Sprintf("%s-%d", prefix, i),
			ApiKey: uuid.NewString(),
			Status: models.BotStatusVerified,
		}
		require.NoError(t, e.db.AddBot(bot, nil))
		bots = append(bots, bot)
	}
	return bots
}

func (e *testEnv) addSenator(t *testing.T, botID uint) {
	t.Helper()
	require.NoError(
		t,
		e.db.AddOfficial(
			&models.Official{
				BotID:     botID,
				Position:  models.PositionSenator,
				IsActive:  true,
				TermStart: time.Now(),
			},
			nil,
		),
	)
}

func (e *testEnv) gazetteCount(t *testing.T, reference string) int {
	t.Helper()
	entries, err := e.db.ListGazetteEntries(100, nil)
	require.NoError(t, err)
	count := 0
	for _, entry := range entries {
		if entry.Reference == reference {
			count++
		}
	}
	return count
}

func pastTime() *time.Time {
	t := time.Now().Add(-time.Hour)
	return &t
}

func futureTime() *time.Time {
	t := time.Now().Add(time.Hour)
	return &t
}

func TestSweepBillHouseDeadlineAdvances(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 5)
	bill := &models.Bill{
		Title:          "Road Act",
		Summary:        "Build roads.",
		ProposerID:     1,
		Status:         models.BillStatusHouseVoting,
		HouseYea:       3,
		HouseNay:       1,
		HouseVotingEnd: pastTime(),
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusSenateVoting, swept.Status)
	require.NotNil(t, swept.SenateVotingEnd)
	require.True(t, swept.SenateVotingEnd.After(time.Now()))
}

func TestSweepBillHouseDeadlineRejects(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 5)
	bill := &models.Bill{
		Title:          "Road Act",
		Summary:        "Build roads.",
		ProposerID:     1,
		Status:         models.BillStatusHouseVoting,
		HouseYea:       2,
		HouseNay:       1,
		HouseVotingEnd: pastTime(),
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusRejected, swept.Status)
	require.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("bill:%d", bill.ID)),
	)
}

func TestSweepBillSenateDeadline(t *testing.T) {
	env := setup(t)
	bots := env.addBots(t, "voter", 3)
	env.addSenator(t, bots[0].ID)
	env.addSenator(t, bots[1].ID)
	env.addSenator(t, bots[2].ID)
	bill := &models.Bill{
		Title:           "Road Act",
		Summary:         "Build roads.",
		ProposerID:      bots[0].ID,
		Status:          models.BillStatusSenateVoting,
		SenateYea:       2,
		SenateVotingEnd: pastTime(),
		OverrideStatus:  models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusPassed, swept.Status)
	require.NotNil(t, swept.PassedAt)
}

func TestSweepBillOpenWindowUntouched(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 3)
	bill := &models.Bill{
		Title:          "Road Act",
		Summary:        "Build roads.",
		ProposerID:     1,
		Status:         models.BillStatusHouseVoting,
		HouseYea:       3,
		HouseVotingEnd: futureTime(),
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusHouseVoting, swept.Status)
}

func TestSweepEnactsPassedBillAfterReview(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 3)
	passedAt := time.Now().Add(-25 * time.Hour)
	bill := &models.Bill{
		Title:          "Road Act",
		Summary:        "Build roads.",
		ProposerID:     1,
		Status:         models.BillStatusPassed,
		PassedAt:       &passedAt,
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	recent := time.Now().Add(-time.Hour)
	fresh := &models.Bill{
		Title:          "Bridge Act",
		Summary:        "Build bridges.",
		ProposerID:     1,
		Status:         models.BillStatusPassed,
		PassedAt:       &recent,
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(fresh, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusEnacted, swept.Status)
	require.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("bill:%d", bill.ID)),
	)

	untouched, err := env.db.GetBill(fresh.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.BillStatusPassed, untouched.Status)
}

func TestSweepAmendmentDeadline(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 3)
	bill := &models.Bill{
		Title:          "Road Act",
		Summary:        "Build roads.",
		ProposerID:     1,
		Status:         models.BillStatusHouseVoting,
		HouseVotingEnd: futureTime(),
		OverrideStatus: models.OverrideStatusNone,
	}
	require.NoError(t, env.db.AddBill(bill, nil))

	adopted := &models.Amendment{
		BillID:     bill.ID,
		ProposerID: 1,
		Text:       "Add sidewalks.",
		Status:     models.AmendmentStatusPending,
		YeaCount:   2,
		NayCount:   1,
		VotingEnd:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.db.AddAmendment(adopted, nil))
	rejected := &models.Amendment{
		BillID:     bill.ID,
		ProposerID: 1,
		Text:       "Remove lanes.",
		Status:     models.AmendmentStatusPending,
		YeaCount:   1,
		NayCount:   1,
		VotingEnd:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.db.AddAmendment(rejected, nil))

	env.sweeper.Sweep()

	first, err := env.db.GetAmendment(adopted.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.AmendmentStatusPassed, first.Status)
	second, err := env.db.GetAmendment(rejected.ID, nil)
	require.NoError(t, err)
	// ties fail
	require.Equal(t, models.AmendmentStatusRejected, second.Status)
	require.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("amendment:%d", adopted.ID)),
	)
}

func TestSweepConstAmendmentDeadline(t *testing.T) {
	env := setup(t)
	env.addBots(t, "voter", 3)
	amendment := &models.ConstitutionalAmendment{
		SectionNumber: 1,
		ProposedText:  "New text.",
		ProposerID:    1,
		Status:        models.ConstAmendmentStatusVoting,
		YeaCount:      1,
		VotesNeeded:   3,
		VotingEnd:     time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.db.AddConstAmendment(amendment, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetConstAmendment(amendment.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.ConstAmendmentStatusFailed, swept.Status)
	require.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("constitution:%d", amendment.ID)),
	)
}

func TestSweepImpeachmentSecondingDeadline(t *testing.T) {
	env := setup(t)
	bots := env.addBots(t, "voter", 3)
	impeachment := &models.Impeachment{
		TargetID:     bots[1].ID,
		Position:     models.PositionPresident,
		ProposerID:   bots[0].ID,
		Reason:       "Neglect of duty.",
		Status:       models.ImpeachmentStatusSeconding,
		SecondsCount: 1,
		SecondingEnd: time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.db.AddImpeachment(impeachment, nil))

	env.sweeper.Sweep()

	swept, err := env.db.GetImpeachment(impeachment.ID, nil)
	require.NoError(t, err)
	require.Equal(t, models.ImpeachmentStatusDismissed, swept.Status)
	require.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("impeachment:%d", impeachment.ID)),
	)
}

func TestSweeperStartStop(t *testing.T) {
	env := setup(t)
	require.NoError(t, env.sweeper.Start())
	env.sweeper.Stop()
}
