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

package decision_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gov"
)

func TestProposeAmendment(t *testing.T) {
	env := setup(t)
	proposer := env.addBot(t, "proposer", 10)
	env.addBots(t, "filler", 4)
	bill, err := env.resolver.ProposeBill(proposer, "A Bill", "Summary.")
	require.NoError(t, err)

	amendment, err := env.resolver.ProposeAmendment(
		proposer,
		bill.ID,
		"Strike section 2.",
	)
	require.NoError(t, err)
	assert.Equal(t, models.AmendmentStatusPending, amendment.Status)
	assert.WithinDuration(
		t,
		time.Now().Add(24*time.Hour),
		amendment.VotingEnd,
		time.Minute,
	)

	// The parent bill's own window is untouched
	reloaded, err := env.db.GetBill(bill.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, reloaded.HouseVotingEnd)
	assert.Equal(
		t,
		bill.HouseVotingEnd.Unix(),
		reloaded.HouseVotingEnd.Unix(),
	)
}

func TestProposeAmendmentWrongBillStatus(t *testing.T) {
	env := setup(t)
	bill, proposer, _, _ := passBill(t, env)
	_, err := env.resolver.ProposeAmendment(
		proposer,
		bill.ID,
		"Strike section 2.",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeInvalidArgument, gov.CodeOf(err))
}

func TestCastAmendmentVote(t *testing.T) {
	env := setup(t)
	proposer := env.addBot(t, "proposer", 10)
	voters := env.addBots(t, "voter", 4)
	bill, err := env.resolver.ProposeBill(proposer, "A Bill", "Summary.")
	require.NoError(t, err)
	amendment, err := env.resolver.ProposeAmendment(
		proposer,
		bill.ID,
		"Strike section 2.",
	)
	require.NoError(t, err)

	updated, err := env.resolver.CastAmendmentVote(
		voters[0],
		amendment.ID,
		models.VoteYea,
		"Section 2 is redundant",
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.YeaCount)
	// No eager resolution: amendments wait for their deadline
	assert.Equal(t, models.AmendmentStatusPending, updated.Status)

	_, err = env.resolver.CastAmendmentVote(
		voters[0],
		amendment.ID,
		models.VoteNay,
		"",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}

func TestCastAmendmentVoteExpiredWindow(t *testing.T) {
	env := setup(t)
	proposer := env.addBot(t, "proposer", 10)
	voter := env.addBot(t, "voter", 0)
	bill, err := env.resolver.ProposeBill(proposer, "A Bill", "Summary.")
	require.NoError(t, err)
	amendment, err := env.resolver.ProposeAmendment(
		proposer,
		bill.ID,
		"Strike section 2.",
	)
	require.NoError(t, err)

	// Push the window into the past
	result := env.db.Metadata().DB().Model(&models.Amendment{}).
		Where("id = ?", amendment.ID).
		Update("voting_end", time.Now().Add(-time.Hour))
	require.NoError(t, result.Error)

	_, err = env.resolver.CastAmendmentVote(
		voter,
		amendment.ID,
		models.VoteYea,
		"",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeInvalidArgument, gov.CodeOf(err))
}
