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

// Package tally evaluates vote counts against threshold rules. Rules
// are evaluated eagerly after every vote, so a decision resolves the
// instant it becomes mathematically certain — either the winning count
// is reached, or the losing side can no longer be caught even if every
// remaining eligible voter votes the other way.
package tally

// Counts holds the running tally buckets for one decision
type Counts struct {
	Yea     int64
	Nay     int64
	Abstain int64
}

// Cast returns the total number of votes recorded so far. Abstentions
// consume eligibility, so they reduce the remaining voter pool.
func (c Counts) Cast() int64 {
	return c.Yea + c.Nay + c.Abstain
}

// Remaining returns how many eligible voters have not voted yet
func (c Counts) Remaining(electorate int64) int64 {
	r := electorate - c.Cast()
	if r < 0 {
		return 0
	}
	return r
}

// Outcome is the result of evaluating a threshold rule
type Outcome int

const (
	Pending Outcome = iota
	Passed
	Failed
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// MajorityNeeded returns the simple-majority threshold for an
// electorate of n: floor(n/2) + 1
func MajorityNeeded(n int64) int64 {
	return n/2 + 1
}

// TwoThirdsNeeded returns the supermajority threshold for an electorate
// of n: ceil(2n/3)
func TwoThirdsNeeded(n int64) int64 {
	return (2*n + 2) / 3
}

// SecondsNeeded returns the impeachment seconding threshold:
// ceil(0.2n), with a floor of 1 so an empty electorate still requires
// at least one second rather than zero
func SecondsNeeded(n int64) int64 {
	needed := (n + 4) / 5
	if needed < 1 {
		return 1
	}
	return needed
}

// SimpleMajority evaluates a simple-majority rule over the electorate.
// Passes once yea reaches floor(n/2)+1; fails early once nay exceeds
// n − needed, at which point a majority is impossible to reach. A zero
// electorate never passes.
func SimpleMajority(c Counts, electorate int64) Outcome {
	if electorate <= 0 {
		return Pending
	}
	needed := MajorityNeeded(electorate)
	if c.Yea >= needed {
		return Passed
	}
	if c.Nay > electorate-needed {
		return Failed
	}
	return Pending
}

// TwoThirds evaluates a two-thirds supermajority over the electorate.
// Passes once yea reaches ceil(2n/3); fails early once the yea side can
// no longer reach the threshold even if every remaining voter votes
// yea. A zero electorate never passes.
func TwoThirds(c Counts, electorate int64) Outcome {
	if electorate <= 0 {
		return Pending
	}
	needed := TwoThirdsNeeded(electorate)
	if c.Yea >= needed {
		return Passed
	}
	if c.Yea+c.Remaining(electorate) < needed {
		return Failed
	}
	return Pending
}

// CourtRuling evaluates a court decision over the active justices.
// Treats Yea as uphold and Nay as strike. The case is decided once
// either side reaches a simple majority, or once every justice has
// voted. Upheld reports the outcome and is only meaningful when the
// returned Outcome is not Pending.
func CourtRuling(c Counts, justices int64) (Outcome, bool) {
	if justices <= 0 {
		return Pending, false
	}
	needed := MajorityNeeded(justices)
	if c.Yea >= needed {
		return Passed, true
	}
	if c.Nay >= needed {
		return Passed, false
	}
	if c.Cast() >= justices {
		// All justices voted without a majority for either side
		// (abstentions). A strike requires a majority, so the
		// challenged act stands.
		return Passed, c.Nay <= c.Yea
	}
	return Pending, false
}
