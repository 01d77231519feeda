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

// cabinetEnv seeds a president, five senators, and a nominee
func cabinetEnv(
	t *testing.T,
) (*testEnv, *models.Bot, []*models.Bot, *models.Bot) {
	t.Helper()
	env := setup(t)
	president := env.addBot(t, "president", 0)
	env.addOfficial(t, president.ID, models.PositionPresident)
	senators := env.addBots(t, "senator", 5)
	for _, senator := range senators {
		env.addOfficial(t, senator.ID, models.PositionSenator)
	}
	nominee := env.addBot(t, "nominee", 0)
	return env, president, senators, nominee
}

func TestNominateCabinetPresidentOnly(t *testing.T) {
	env, _, senators, nominee := cabinetEnv(t)
	_, err := env.resolver.NominateCabinet(
		senators[0],
		"treasury",
		nominee.ID,
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))
}

func TestNominateCabinetUnknownNominee(t *testing.T) {
	env, president, _, _ := cabinetEnv(t)
	_, err := env.resolver.NominateCabinet(president, "treasury", 9999)
	require.Error(t, err)
	assert.Equal(t, gov.CodeNotFound, gov.CodeOf(err))
}

func TestConfirmationMajoritySwapsIncumbent(t *testing.T) {
	env, president, senators, nominee := cabinetEnv(t)

	// Seed an incumbent who will be displaced
	incumbent := env.addBot(t, "incumbent", 0)
	require.NoError(t, env.db.AddCabinetMember(&models.CabinetMember{
		Position: "treasury",
		BotID:    incumbent.ID,
		IsActive: true,
	}, nil))

	nomination, err := env.resolver.NominateCabinet(
		president,
		"treasury",
		nominee.ID,
	)
	require.NoError(t, err)

	// Non-senators cannot vote on confirmations
	_, err = env.resolver.CastConfirmationVote(
		nominee,
		nomination.ID,
		models.VoteYea,
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))

	// Five senators, majority 3: a 2-2 split stays pending
	for _, senator := range senators[:2] {
		updated, err := env.resolver.CastConfirmationVote(
			senator,
			nomination.ID,
			models.VoteYea,
		)
		require.NoError(t, err)
		assert.Equal(t, models.NominationStatusPending, updated.Status)
	}
	for _, senator := range senators[2:4] {
		updated, err := env.resolver.CastConfirmationVote(
			senator,
			nomination.ID,
			models.VoteNay,
		)
		require.NoError(t, err)
		assert.Equal(t, models.NominationStatusPending, updated.Status)
	}

	updated, err := env.resolver.CastConfirmationVote(
		senators[4],
		nomination.ID,
		models.VoteYea,
	)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusConfirmed, updated.Status)

	member, err := env.db.GetActiveCabinetMember("treasury", nil)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, nominee.ID, member.BotID)
	assert.Equal(
		t,
		1,
		env.gazetteCount(t, fmt.Sprintf("cabinet:%d", nomination.ID)),
	)
}

func TestConfirmationRejectedEarly(t *testing.T) {
	env, president, senators, nominee := cabinetEnv(t)
	nomination, err := env.resolver.NominateCabinet(
		president,
		"defense",
		nominee.ID,
	)
	require.NoError(t, err)

	// Five senators, majority 3: the third nay makes it unreachable
	for _, senator := range senators[:2] {
		updated, err := env.resolver.CastConfirmationVote(
			senator,
			nomination.ID,
			models.VoteNay,
		)
		require.NoError(t, err)
		assert.Equal(t, models.NominationStatusPending, updated.Status)
	}
	updated, err := env.resolver.CastConfirmationVote(
		senators[2],
		nomination.ID,
		models.VoteNay,
	)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusRejected, updated.Status)

	// The position stays vacant
	member, err := env.db.GetActiveCabinetMember("defense", nil)
	require.NoError(t, err)
	assert.Nil(t, member)

	// Votes after resolution are conflicts
	_, err = env.resolver.CastConfirmationVote(
		senators[3],
		nomination.ID,
		models.VoteYea,
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}
