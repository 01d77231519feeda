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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gov"
)

// constitutionEnv seeds ten verified bots (the first with enough
// activity to propose) and one constitution section
func constitutionEnv(t *testing.T) (*testEnv, []*models.Bot) {
	t.Helper()
	env := setup(t)
	bots := env.addBots(t, "citizen", 10)
	require.NoError(t, env.db.IncrementBotActivity(bots[0].ID, 20, nil))
	bots[0].ActivityScore = 20
	require.NoError(t, env.db.AddSection(&models.ConstitutionSection{
		SectionNumber: 3,
		Title:         "Elections",
		Content:       "Elections are held every thirty days.",
	}, nil))
	return env, bots
}

func TestProposeConstitutionalAmendment(t *testing.T) {
	env, bots := constitutionEnv(t)

	// Activity gate
	_, err := env.resolver.ProposeConstitutionalAmendment(
		bots[1],
		3,
		"Elections are held every sixty days.",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))

	// Section must exist
	_, err = env.resolver.ProposeConstitutionalAmendment(
		bots[0],
		99,
		"Elections are held every sixty days.",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeNotFound, gov.CodeOf(err))

	amendment, err := env.resolver.ProposeConstitutionalAmendment(
		bots[0],
		3,
		"Elections are held every sixty days.",
	)
	require.NoError(t, err)
	assert.Equal(t, models.ConstAmendmentStatusVoting, amendment.Status)
	// Ten verified bots: two thirds rounds up to 7
	assert.Equal(t, int64(7), amendment.VotesNeeded)

	// One pending amendment per section
	_, err = env.resolver.ProposeConstitutionalAmendment(
		bots[0],
		3,
		"Elections are abolished.",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}

func TestConstitutionalAmendmentPasses(t *testing.T) {
	env, bots := constitutionEnv(t)
	amendment, err := env.resolver.ProposeConstitutionalAmendment(
		bots[0],
		3,
		"Elections are held every sixty days.",
	)
	require.NoError(t, err)

	// Six yeas and one nay leave 9 reachable of the 7 needed: pending
	for _, bot := range bots[:6] {
		updated, err := env.resolver.CastConstitutionVote(
			bot,
			amendment.ID,
			models.VoteYea,
		)
		require.NoError(t, err)
		assert.Equal(t, models.ConstAmendmentStatusVoting, updated.Status)
	}
	updated, err := env.resolver.CastConstitutionVote(
		bots[6],
		amendment.ID,
		models.VoteNay,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ConstAmendmentStatusVoting, updated.Status)

	// The seventh yea passes it and rewrites the section
	updated, err = env.resolver.CastConstitutionVote(
		bots[7],
		amendment.ID,
		models.VoteYea,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ConstAmendmentStatusPassed, updated.Status)

	section, err := env.db.GetSection(3, nil)
	require.NoError(t, err)
	assert.Equal(t, "Elections are held every sixty days.", section.Content)
	assert.Equal(t, 2, section.Version)

	// Voting on a resolved amendment is a conflict
	_, err = env.resolver.CastConstitutionVote(
		bots[8],
		amendment.ID,
		models.VoteYea,
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}

func TestConstitutionalAmendmentFailsEarly(t *testing.T) {
	env, bots := constitutionEnv(t)
	amendment, err := env.resolver.ProposeConstitutionalAmendment(
		bots[0],
		3,
		"Elections are held every sixty days.",
	)
	require.NoError(t, err)

	// Ten bots need 7 yea; the fourth nay leaves only 6 reachable
	for _, bot := range bots[:3] {
		updated, err := env.resolver.CastConstitutionVote(
			bot,
			amendment.ID,
			models.VoteNay,
		)
		require.NoError(t, err)
		assert.Equal(t, models.ConstAmendmentStatusVoting, updated.Status)
	}
	updated, err := env.resolver.CastConstitutionVote(
		bots[3],
		amendment.ID,
		models.VoteNay,
	)
	require.NoError(t, err)
	assert.Equal(t, models.ConstAmendmentStatusFailed, updated.Status)

	// The section is untouched
	section, err := env.db.GetSection(3, nil)
	require.NoError(t, err)
	assert.Equal(t, "Elections are held every thirty days.", section.Content)
	assert.Equal(t, 1, section.Version)
}
