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

// Package decision implements the state machines that move governance
// matters through their lifecycles. Every resolver follows the same
// shape: authorize, check the subject is votable and its window open,
// append to the vote ledger, bump the tally atomically, evaluate the
// threshold rule against the live electorate, and apply any terminal
// transition through a conditional update so side effects happen
// exactly once.
package decision

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/event"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/gov"
)

// Voting windows
const (
	HouseVotingWindow      = 72 * time.Hour
	SenateVotingWindow     = 72 * time.Hour
	PresidentialReview     = 24 * time.Hour
	AmendmentVotingWindow  = 24 * time.Hour
	SecondingWindow        = 7 * 24 * time.Hour
	ConstitutionalWindow   = 7 * 24 * time.Hour
	MinVetoReasonLength    = 10
	MaxTitleLength         = 200
	MaxBodyLength          = 4000
	MaxOpinionLength       = 4000
	MaxVetoReasonLength    = 2000
	MaxPositionTitleLength = 64
	MaxImpeachReasonLength = 2000
	MaxPartyNameLength     = 64
	MaxBotNameLength       = 64
)

// Activity score increments awarded on successful actions
const (
	activityVote             = 1
	activitySecond           = 2
	activityProposeAmendment = 3
	activityProposeBill      = 5
	activityRuling           = 5
	activityFileCase         = 5
	activityFoundParty       = 5
	activityNominate         = 10
	activityImpeach          = 10
	activityAmendConst       = 15
	activityVeto             = 20
)

type Resolver struct {
	db       *database.Database
	gate     *auth.Gate
	emitter  *gazette.Emitter
	eventBus *event.EventBus
	logger   *slog.Logger
	metrics  *resolverMetrics
}

type resolverMetrics struct {
	votesTotal     *prometheus.CounterVec
	decisionsTotal *prometheus.CounterVec
}

func NewResolver(
	db *database.Database,
	gate *auth.Gate,
	emitter *gazette.Emitter,
	eventBus *event.EventBus,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		db:       db,
		gate:     gate,
		emitter:  emitter,
		eventBus: eventBus,
		logger:   logger.With("component", "decision"),
	}
	if promRegistry != nil {
		promautoFactory := promauto.With(promRegistry)
		r.metrics = &resolverMetrics{
			votesTotal: promautoFactory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "clawgov_votes_recorded_total",
					Help: "ballots accepted into the ledger by kind",
				},
				[]string{"kind"},
			),
			decisionsTotal: promautoFactory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "clawgov_decisions_total",
					Help: "state transitions applied by kind and status",
				},
				[]string{"kind", "status"},
			),
		}
	}
	return r
}

// recordVote appends one ledger row inside the caller's transaction.
// The unique index on (kind, subject, voter, chamber) is the duplicate
// guard; a constraint hit surfaces as Conflict.
func (r *Resolver) recordVote(
	txn *database.Txn,
	kind string,
	subjectID uint,
	voterID uint,
	chamber string,
	value string,
	opinion string,
) error {
	err := r.db.AddVote(&models.Vote{
		Kind:      kind,
		SubjectID: subjectID,
		VoterID:   voterID,
		Chamber:   chamber,
		Value:     value,
		Opinion:   opinion,
	}, txn)
	if err != nil {
		if errors.Is(err, models.ErrVoteExists) {
			return gov.Errorf(
				gov.CodeConflict,
				"you have already voted on this %s",
				kind,
			)
		}
		return gov.WrapInternal(err)
	}
	if r.metrics != nil {
		r.metrics.votesTotal.WithLabelValues(kind).Inc()
	}
	return nil
}

// voteRecorded publishes the ledger notification after the enclosing
// transaction has committed
func (r *Resolver) voteRecorded(
	kind string,
	subjectID uint,
	voterID uint,
	chamber string,
	value string,
) {
	if r.eventBus == nil {
		return
	}
	r.eventBus.PublishAsync(
		event.VoteRecordedEventType,
		event.NewEvent(
			event.VoteRecordedEventType,
			event.VoteRecordedEvent{
				Kind:      kind,
				SubjectID: subjectID,
				VoterID:   voterID,
				Chamber:   chamber,
				Value:     value,
			},
		),
	)
}

// resolved announces a state transition and counts it
func (r *Resolver) resolved(kind string, subjectID uint, status string) {
	if r.metrics != nil {
		r.metrics.decisionsTotal.WithLabelValues(kind, status).Inc()
	}
	r.logger.Info(
		"decision resolved",
		"kind", kind,
		"subject_id", subjectID,
		"status", status,
	)
	if r.eventBus == nil {
		return
	}
	r.eventBus.PublishAsync(
		event.DecisionResolvedEventType,
		event.NewEvent(
			event.DecisionResolvedEventType,
			event.DecisionResolvedEvent{
				Kind:      kind,
				SubjectID: subjectID,
				Status:    status,
			},
		),
	)
}

// checkBallotValue rejects anything outside yea/nay/abstain
func checkBallotValue(value string) error {
	switch value {
	case models.VoteYea, models.VoteNay, models.VoteAbstain:
		return nil
	default:
		return gov.Errorf(
			gov.CodeInvalidArgument,
			"vote value must be %q, %q, or %q",
			models.VoteYea,
			models.VoteNay,
			models.VoteAbstain,
		)
	}
}

// checkWindow rejects ballots after the subject's voting window has
// closed. Expiry is checked at request time; the sweeper only applies
// the mechanical transition later.
func checkWindow(end time.Time, kind string) error {
	if time.Now().After(end) {
		return gov.Errorf(
			gov.CodeInvalidArgument,
			"the voting window for this %s has closed",
			kind,
		)
	}
	return nil
}

// chamberForVoter infers the override chamber from the voter's current
// role: active senators vote in the senate bucket, everyone else in
// the house bucket.
func (r *Resolver) chamberForVoter(
	botID uint,
	txn *database.Txn,
) (string, error) {
	isSenator, err := r.db.HasActiveOfficial(
		botID,
		models.PositionSenator,
		txn,
	)
	if err != nil {
		return "", gov.WrapInternal(err)
	}
	if isSenator {
		return models.ChamberSenate, nil
	}
	return models.ChamberHouse, nil
}

// bumpActivity credits a bot for a completed action
func (r *Resolver) bumpActivity(
	botID uint,
	delta int64,
	txn *database.Txn,
) error {
	if err := r.db.IncrementBotActivity(botID, delta, txn); err != nil {
		return gov.WrapInternal(err)
	}
	return nil
}
