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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gov"
)

// impeachmentEnv seeds ten verified bots; the first is the president
// under fire and the next three are senators.
func impeachmentEnv(t *testing.T) (*testEnv, []*models.Bot) {
	t.Helper()
	env := setup(t)
	bots := env.addBots(t, "citizen", 10)
	env.addOfficial(t, bots[0].ID, models.PositionPresident)
	for _, senator := range bots[1:4] {
		env.addOfficial(t, senator.ID, models.PositionSenator)
	}
	return env, bots
}

func TestProposeImpeachmentValidation(t *testing.T) {
	env, bots := impeachmentEnv(t)

	// Target must actually hold the office
	_, err := env.resolver.ProposeImpeachment(
		bots[5],
		bots[6].ID,
		models.PositionPresident,
		"Abuse of power",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeNotFound, gov.CodeOf(err))

	impeachment, err := env.resolver.ProposeImpeachment(
		bots[5],
		bots[0].ID,
		models.PositionPresident,
		"Abuse of power",
	)
	require.NoError(t, err)
	assert.Equal(t, models.ImpeachmentStatusSeconding, impeachment.Status)
	assert.Equal(t, int64(1), impeachment.SecondsCount)

	// Only one impeachment per target and position at a time
	_, err = env.resolver.ProposeImpeachment(
		bots[6],
		bots[0].ID,
		models.PositionPresident,
		"Also abuse of power",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}

func TestImpeachmentFullLifecycle(t *testing.T) {
	env, bots := impeachmentEnv(t)

	impeachment, err := env.resolver.ProposeImpeachment(
		bots[5],
		bots[0].ID,
		models.PositionPresident,
		"Abuse of power",
	)
	require.NoError(t, err)
	require.Equal(t, models.ImpeachmentStatusSeconding, impeachment.Status)

	// The proposer cannot second their own proposal again
	_, err = env.resolver.SecondImpeachment(bots[5], impeachment.ID)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))

	// Ten verified bots need ceil(0.2*10)=2 seconds; the proposer was
	// the first, so one more opens house voting
	updated, err := env.resolver.SecondImpeachment(bots[6], impeachment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ImpeachmentStatusHouseVoting, updated.Status)
	assert.Equal(t, int64(2), updated.SecondsCount)

	// House majority of 10 verified bots needs 6 yea votes
	for i := range 5 {
		updated, err = env.resolver.CastImpeachmentVote(
			bots[i],
			impeachment.ID,
			models.VoteYea,
		)
		require.NoError(t, err)
		assert.Equal(t, models.ImpeachmentStatusHouseVoting, updated.Status)
	}
	updated, err = env.resolver.CastImpeachmentVote(
		bots[5],
		impeachment.ID,
		models.VoteYea,
	)
	require.NoError(t, err)
	require.Equal(t, models.ImpeachmentStatusSenateVoting, updated.Status)

	// Senate: three senators, two thirds needs 2 to convict
	_, err = env.resolver.CastImpeachmentVote(
		bots[9],
		impeachment.ID,
		models.VoteYea,
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))

	updated, err = env.resolver.CastImpeachmentVote(
		bots[1],
		impeachment.ID,
		models.VoteYea,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ImpeachmentStatusSenateVoting, updated.Status)

	updated, err = env.resolver.CastImpeachmentVote(
		bots[2],
		impeachment.ID,
		models.VoteYea,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ImpeachmentStatusConvicted, updated.Status)

	// Conviction removes the official
	holds, err := env.db.HasActiveOfficial(
		bots[0].ID,
		models.PositionPresident,
		nil,
	)
	require.NoError(t, err)
	assert.False(t, holds)
	assert.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("impeachment:%d", impeachment.ID)),
	)
}

func TestImpeachmentAcquittedInSenate(t *testing.T) {
	env, bots := impeachmentEnv(t)

	impeachment, err := env.resolver.ProposeImpeachment(
		bots[5],
		bots[0].ID,
		models.PositionPresident,
		"Abuse of power",
	)
	require.NoError(t, err)
	_, err = env.resolver.SecondImpeachment(bots[6], impeachment.ID)
	require.NoError(t, err)
	for i := range 6 {
		_, err = env.resolver.CastImpeachmentVote(
			bots[i],
			impeachment.ID,
			models.VoteYea,
		)
		require.NoError(t, err)
	}

	// Three senators, two thirds needs 2: two nays make it unreachable
	_, err = env.resolver.CastImpeachmentVote(
		bots[1],
		impeachment.ID,
		models.VoteNay,
	)
	require.NoError(t, err)
	updated, err := env.resolver.CastImpeachmentVote(
		bots[2],
		impeachment.ID,
		models.VoteNay,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ImpeachmentStatusAcquitted, updated.Status)

	// The official keeps their seat
	holds, err := env.db.HasActiveOfficial(
		bots[0].ID,
		models.PositionPresident,
		nil,
	)
	require.NoError(t, err)
	assert.True(t, holds)
}
