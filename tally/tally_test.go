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

package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMajorityNeeded(t *testing.T) {
	assert.Equal(t, int64(1), MajorityNeeded(1))
	assert.Equal(t, int64(2), MajorityNeeded(2))
	assert.Equal(t, int64(3), MajorityNeeded(5))
	assert.Equal(t, int64(8), MajorityNeeded(15))
	assert.Equal(t, int64(51), MajorityNeeded(100))
}

func TestTwoThirdsNeeded(t *testing.T) {
	assert.Equal(t, int64(1), TwoThirdsNeeded(1))
	assert.Equal(t, int64(2), TwoThirdsNeeded(3))
	assert.Equal(t, int64(6), TwoThirdsNeeded(9))
	assert.Equal(t, int64(7), TwoThirdsNeeded(10))
	assert.Equal(t, int64(10), TwoThirdsNeeded(15))
	assert.Equal(t, int64(67), TwoThirdsNeeded(100))
}

func TestSecondsNeeded(t *testing.T) {
	// Floor of one second even with no verified bots
	assert.Equal(t, int64(1), SecondsNeeded(0))
	assert.Equal(t, int64(1), SecondsNeeded(1))
	assert.Equal(t, int64(1), SecondsNeeded(5))
	assert.Equal(t, int64(2), SecondsNeeded(6))
	assert.Equal(t, int64(3), SecondsNeeded(15))
	assert.Equal(t, int64(20), SecondsNeeded(100))
}

func TestSimpleMajority(t *testing.T) {
	tests := []struct {
		name       string
		counts     Counts
		electorate int64
		want       Outcome
	}{
		{
			name:       "empty tally stays pending",
			counts:     Counts{},
			electorate: 15,
			want:       Pending,
		},
		{
			name:       "one short of majority stays pending",
			counts:     Counts{Yea: 7, Nay: 1},
			electorate: 15,
			want:       Pending,
		},
		{
			// 15 verified bots, majority = 8: the 8th yea flips it
			name:       "eighth yea of fifteen passes",
			counts:     Counts{Yea: 8, Nay: 1},
			electorate: 15,
			want:       Passed,
		},
		{
			// 5 senators, needed = 3: 2 yea 2 nay is still winnable
			name:       "two-two of five stays pending",
			counts:     Counts{Yea: 2, Nay: 2},
			electorate: 5,
			want:       Pending,
		},
		{
			// Final senator votes nay: nay(3) > 5-3, majority dead
			name:       "third nay of five fails early",
			counts:     Counts{Yea: 2, Nay: 3},
			electorate: 5,
			want:       Failed,
		},
		{
			name:       "zero electorate never passes",
			counts:     Counts{Yea: 100},
			electorate: 0,
			want:       Pending,
		},
		{
			name:       "single voter electorate",
			counts:     Counts{Yea: 1},
			electorate: 1,
			want:       Passed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(
				t,
				tt.want,
				SimpleMajority(tt.counts, tt.electorate),
			)
		})
	}
}

func TestTwoThirds(t *testing.T) {
	tests := []struct {
		name       string
		counts     Counts
		electorate int64
		want       Outcome
	}{
		{
			// 10 verified bots, needed = ceil(20/3) = 7.
			// 6 yea, 1 nay: remaining = 3, 6+3 = 9 >= 7, winnable.
			name:       "six of seven needed stays pending",
			counts:     Counts{Yea: 6, Nay: 1},
			electorate: 10,
			want:       Pending,
		},
		{
			name:       "seventh yea of ten passes",
			counts:     Counts{Yea: 7, Nay: 1},
			electorate: 10,
			want:       Passed,
		},
		{
			// needed = 7, nay = 4: yea can reach at most
			// 0 + (10-4) = 6 < 7. Fails before all votes are cast.
			name:       "fourth nay of ten fails early",
			counts:     Counts{Yea: 0, Nay: 4},
			electorate: 10,
			want:       Failed,
		},
		{
			// Abstentions consume the remaining pool: 3 yea,
			// 2 nay, 2 abstain of 10 leaves 3 remaining,
			// 3+3 = 6 < 7
			name:       "abstentions shrink the reachable yea",
			counts:     Counts{Yea: 3, Nay: 2, Abstain: 2},
			electorate: 10,
			want:       Failed,
		},
		{
			name:       "zero electorate never passes",
			counts:     Counts{Yea: 5},
			electorate: 0,
			want:       Pending,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(
				t,
				tt.want,
				TwoThirds(tt.counts, tt.electorate),
			)
		})
	}
}

func TestCourtRuling(t *testing.T) {
	// 5 justices, majority = 3
	outcome, upheld := CourtRuling(Counts{Yea: 2, Nay: 2}, 5)
	assert.Equal(t, Pending, outcome)

	outcome, upheld = CourtRuling(Counts{Yea: 3, Nay: 2}, 5)
	assert.Equal(t, Passed, outcome)
	assert.True(t, upheld)

	outcome, upheld = CourtRuling(Counts{Yea: 1, Nay: 3}, 5)
	assert.Equal(t, Passed, outcome)
	assert.False(t, upheld)

	// All five voted without a majority for either side; a strike
	// needs a majority, so the act stands
	outcome, upheld = CourtRuling(Counts{Yea: 2, Nay: 2, Abstain: 1}, 5)
	assert.Equal(t, Passed, outcome)
	assert.True(t, upheld)

	outcome, _ = CourtRuling(Counts{Yea: 3}, 0)
	assert.Equal(t, Pending, outcome)
}
