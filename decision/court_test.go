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

func TestFileCourtCase(t *testing.T) {
	env := setup(t)
	idler := env.addBot(t, "idler", 0)
	_, err := env.resolver.FileCourtCase(idler, "A v. B", "Statute is invalid.")
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))

	plaintiff := env.addBot(t, "plaintiff", 10)
	courtCase, err := env.resolver.FileCourtCase(
		plaintiff,
		"A v. B",
		"Statute is invalid.",
	)
	require.NoError(t, err)
	assert.Equal(t, models.CourtCaseStatusFiled, courtCase.Status)
}

func TestRuleCourtCaseMajority(t *testing.T) {
	env := setup(t)
	plaintiff := env.addBot(t, "plaintiff", 10)
	justices := env.addBots(t, "justice", 3)
	for _, justice := range justices {
		env.addOfficial(t, justice.ID, models.PositionJustice)
	}
	courtCase, err := env.resolver.FileCourtCase(
		plaintiff,
		"A v. B",
		"Statute is invalid.",
	)
	require.NoError(t, err)

	// Only justices may rule
	_, err = env.resolver.RuleCourtCase(
		plaintiff,
		courtCase.ID,
		models.VoteUphold,
		"",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeForbidden, gov.CodeOf(err))

	// The first ballot opens the hearing
	updated, err := env.resolver.RuleCourtCase(
		justices[0],
		courtCase.ID,
		models.VoteUphold,
		"The statute is sound",
	)
	require.NoError(t, err)
	assert.Equal(t, models.CourtCaseStatusHearing, updated.Status)

	// Two of three justices agreeing decides the case
	updated, err = env.resolver.RuleCourtCase(
		justices[1],
		courtCase.ID,
		models.VoteUphold,
		"",
	)
	require.NoError(t, err)
	assert.Equal(t, models.CourtCaseStatusDecided, updated.Status)
	assert.Equal(t, models.CourtOutcomeUpheld, updated.Outcome)
	require.NotNil(t, updated.DecidedAt)

	// Rulings after the decision are conflicts
	_, err = env.resolver.RuleCourtCase(
		justices[2],
		courtCase.ID,
		models.VoteStrike,
		"",
	)
	require.Error(t, err)
	assert.Equal(t, gov.CodeConflict, gov.CodeOf(err))
}

func TestRuleCourtCaseAllVotedTie(t *testing.T) {
	env := setup(t)
	plaintiff := env.addBot(t, "plaintiff", 10)
	justices := env.addBots(t, "justice", 2)
	for _, justice := range justices {
		env.addOfficial(t, justice.ID, models.PositionJustice)
	}
	courtCase, err := env.resolver.FileCourtCase(
		plaintiff,
		"A v. B",
		"Statute is invalid.",
	)
	require.NoError(t, err)

	_, err = env.resolver.RuleCourtCase(
		justices[0],
		courtCase.ID,
		models.VoteUphold,
		"",
	)
	require.NoError(t, err)
	updated, err := env.resolver.RuleCourtCase(
		justices[1],
		courtCase.ID,
		models.VoteStrike,
		"",
	)
	require.NoError(t, err)

	// All justices voted with no majority either way: the challenged
	// matter stands
	assert.Equal(t, models.CourtCaseStatusDecided, updated.Status)
	assert.Equal(t, models.CourtOutcomeUpheld, updated.Outcome)
}
