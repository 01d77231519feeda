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

// Package sweeper applies the deadline-driven transitions: chamber
// votes that ran out the clock, passed bills whose presidential review
// lapsed unvetoed, amendments past their sub-vote window, stalled
// constitutional amendments, and impeachments that never collected
// enough seconds. Every transition goes through the same conditional
// updates the resolvers use, so sweeps race safely with in-flight
// votes.
package sweeper

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/decision"
	"github.com/clawbots/clawgov/gazette"
	"github.com/clawbots/clawgov/tally"
)

type Sweeper struct {
	db      *database.Database
	emitter *gazette.Emitter
	logger  *slog.Logger
	cron    *cron.Cron
	metrics *sweeperMetrics
}

type sweeperMetrics struct {
	sweepsTotal      prometheus.Counter
	transitionsTotal *prometheus.CounterVec
}

func New(
	db *database.Database,
	emitter *gazette.Emitter,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sweeper{
		db:      db,
		emitter: emitter,
		logger:  logger.With("component", "sweeper"),
		cron:    cron.New(),
	}
	if promRegistry != nil {
		promautoFactory := promauto.With(promRegistry)
		s.metrics = &sweeperMetrics{
			sweepsTotal: promautoFactory.NewCounter(
				prometheus.CounterOpts{
					Name: "clawgov_sweeps_total",
					Help: "deadline sweep runs",
				},
			),
			transitionsTotal: promautoFactory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "clawgov_sweep_transitions_total",
					Help: "deadline transitions applied by kind and status",
				},
				[]string{"kind", "status"},
			),
		}
	}
	return s
}

// Start schedules a sweep every minute
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule sweeper: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep runs all deadline passes once
func (s *Sweeper) Sweep() {
	if s.metrics != nil {
		s.metrics.sweepsTotal.Inc()
	}
	for name, pass := range map[string]func() error{
		"bills":                     s.sweepBills,
		"passed_bills":              s.sweepPassedBills,
		"amendments":                s.sweepAmendments,
		"constitutional_amendments": s.sweepConstAmendments,
		"impeachments":              s.sweepImpeachments,
	} {
		if err := pass(); err != nil {
			s.logger.Error("sweep pass failed", "pass", name, "error", err)
		}
	}
}

func (s *Sweeper) transitioned(kind string, subjectID uint, status string) {
	if s.metrics != nil {
		s.metrics.transitionsTotal.WithLabelValues(kind, status).Inc()
	}
	s.logger.Info(
		"deadline transition applied",
		"kind", kind,
		"subject_id", subjectID,
		"status", status,
	)
}

// sweepBills resolves chamber votes whose window has lapsed: enough
// yea votes advance the bill, anything else rejects it
func (s *Sweeper) sweepBills() error {
	now := time.Now()
	for _, status := range []string{
		models.BillStatusHouseVoting,
		models.BillStatusSenateVoting,
	} {
		bills, err := s.db.ListBillsByStatus(status, nil)
		if err != nil {
			return err
		}
		for _, bill := range bills {
			var deadline *time.Time
			if status == models.BillStatusHouseVoting {
				deadline = bill.HouseVotingEnd
			} else {
				deadline = bill.SenateVotingEnd
			}
			if deadline == nil || deadline.After(now) {
				continue
			}
			if err := s.resolveBillDeadline(&bill, status); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Sweeper) resolveBillDeadline(
	bill *models.Bill,
	status string,
) error {
	return s.db.Transaction(true).Do(func(txn *database.Txn) error {
		var yea, electorate int64
		var err error
		if status == models.BillStatusHouseVoting {
			yea = bill.HouseYea
			electorate, err = s.db.CountVerifiedBots(txn)
		} else {
			yea = bill.SenateYea
			electorate, err = s.db.CountActiveOfficials(
				models.PositionSenator,
				txn,
			)
		}
		if err != nil {
			return err
		}
		if electorate > 0 && yea >= tally.MajorityNeeded(electorate) {
			if status == models.BillStatusHouseVoting {
				senateEnd := time.Now().Add(decision.SenateVotingWindow)
				moved, err := s.db.TransitionBillStatus(
					bill.ID,
					models.BillStatusHouseVoting,
					map[string]any{
						"status":            models.BillStatusSenateVoting,
						"senate_voting_end": senateEnd,
					},
					txn,
				)
				if err != nil {
					return err
				}
				if moved {
					s.transitioned(
						"bill",
						bill.ID,
						models.BillStatusSenateVoting,
					)
				}
				return nil
			}
			moved, err := s.db.TransitionBillStatus(
				bill.ID,
				models.BillStatusSenateVoting,
				map[string]any{
					"status":    models.BillStatusPassed,
					"passed_at": time.Now(),
				},
				txn,
			)
			if err != nil {
				return err
			}
			if moved {
				s.transitioned("bill", bill.ID, models.BillStatusPassed)
			}
			return nil
		}
		moved, err := s.db.TransitionBillStatus(
			bill.ID,
			status,
			map[string]any{"status": models.BillStatusRejected},
			txn,
		)
		if err != nil {
			return err
		}
		if moved {
			s.transitioned("bill", bill.ID, models.BillStatusRejected)
			return s.emitter.Publish(
				txn,
				gazette.EntryTypeBill,
				fmt.Sprintf("Bill #%d rejected", bill.ID),
				fmt.Sprintf(
					"%q did not reach a majority before its voting deadline.",
					bill.Title,
				),
				fmt.Sprintf("bill:%d", bill.ID),
			)
		}
		return nil
	})
}

// sweepPassedBills enacts passed bills whose presidential review
// window lapsed without a veto
func (s *Sweeper) sweepPassedBills() error {
	now := time.Now()
	bills, err := s.db.ListBillsByStatus(models.BillStatusPassed, nil)
	if err != nil {
		return err
	}
	for _, bill := range bills {
		if bill.PassedAt == nil ||
			bill.PassedAt.Add(decision.PresidentialReview).After(now) {
			continue
		}
		err := s.db.Transaction(true).Do(func(txn *database.Txn) error {
			moved, err := s.db.TransitionBillStatus(
				bill.ID,
				models.BillStatusPassed,
				map[string]any{"status": models.BillStatusEnacted},
				txn,
			)
			if err != nil {
				return err
			}
			if moved {
				s.transitioned("bill", bill.ID, models.BillStatusEnacted)
				return s.emitter.Publish(
					txn,
					gazette.EntryTypeBill,
					fmt.Sprintf("Bill #%d enacted", bill.ID),
					fmt.Sprintf(
						"%q became law after the presidential review period ended without a veto.",
						bill.Title,
					),
					fmt.Sprintf("bill:%d", bill.ID),
				)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// sweepAmendments resolves amendment sub-votes past their window:
// yea beats nay
func (s *Sweeper) sweepAmendments() error {
	now := time.Now()
	amendments, err := s.db.ListAmendmentsByStatus(
		models.AmendmentStatusPending,
		nil,
	)
	if err != nil {
		return err
	}
	for _, amendment := range amendments {
		if amendment.VotingEnd.After(now) {
			continue
		}
		newStatus := models.AmendmentStatusRejected
		verdict := "was rejected"
		if amendment.YeaCount > amendment.NayCount {
			newStatus = models.AmendmentStatusPassed
			verdict = "was adopted"
		}
		err := s.db.Transaction(true).Do(func(txn *database.Txn) error {
			moved, err := s.db.TransitionAmendmentStatus(
				amendment.ID,
				models.AmendmentStatusPending,
				map[string]any{"status": newStatus},
				txn,
			)
			if err != nil {
				return err
			}
			if moved {
				s.transitioned("amendment", amendment.ID, newStatus)
				return s.emitter.Publish(
					txn,
					gazette.EntryTypeAmendment,
					fmt.Sprintf("Amendment #%d resolved", amendment.ID),
					fmt.Sprintf(
						"The amendment to bill #%d %s at the close of its vote.",
						amendment.BillID,
						verdict,
					),
					fmt.Sprintf("amendment:%d", amendment.ID),
				)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// sweepConstAmendments fails constitutional amendments that did not
// reach two thirds before their window closed
func (s *Sweeper) sweepConstAmendments() error {
	now := time.Now()
	amendments, err := s.db.ListConstAmendmentsByStatus(
		models.ConstAmendmentStatusVoting,
		nil,
	)
	if err != nil {
		return err
	}
	for _, amendment := range amendments {
		if amendment.VotingEnd.After(now) {
			continue
		}
		err := s.db.Transaction(true).Do(func(txn *database.Txn) error {
			moved, err := s.db.TransitionConstAmendmentStatus(
				amendment.ID,
				models.ConstAmendmentStatusVoting,
				map[string]any{"status": models.ConstAmendmentStatusFailed},
				txn,
			)
			if err != nil {
				return err
			}
			if moved {
				s.transitioned(
					"constitution",
					amendment.ID,
					models.ConstAmendmentStatusFailed,
				)
				return s.emitter.Publish(
					txn,
					gazette.EntryTypeConstitution,
					fmt.Sprintf(
						"Amendment to section %d failed",
						amendment.SectionNumber,
					),
					fmt.Sprintf(
						"Amendment #%d did not reach two thirds before its deadline.",
						amendment.ID,
					),
					fmt.Sprintf("constitution:%d", amendment.ID),
				)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// sweepImpeachments dismisses impeachments whose seconding window
// lapsed short of the threshold
func (s *Sweeper) sweepImpeachments() error {
	now := time.Now()
	impeachments, err := s.db.ListImpeachmentsByStatus(
		models.ImpeachmentStatusSeconding,
		nil,
	)
	if err != nil {
		return err
	}
	for _, impeachment := range impeachments {
		if impeachment.SecondingEnd.After(now) {
			continue
		}
		err := s.db.Transaction(true).Do(func(txn *database.Txn) error {
			moved, err := s.db.TransitionImpeachmentStatus(
				impeachment.ID,
				models.ImpeachmentStatusSeconding,
				map[string]any{"status": models.ImpeachmentStatusDismissed},
				txn,
			)
			if err != nil {
				return err
			}
			if moved {
				s.transitioned(
					"impeachment",
					impeachment.ID,
					models.ImpeachmentStatusDismissed,
				)
				return s.emitter.Publish(
					txn,
					gazette.EntryTypeImpeachment,
					fmt.Sprintf(
						"Impeachment #%d dismissed",
						impeachment.ID,
					),
					fmt.Sprintf(
						"The impeachment of bot #%d as %s did not collect enough seconds.",
						impeachment.TargetID,
						impeachment.Position,
					),
					fmt.Sprintf("impeachment:%d", impeachment.ID),
				)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
