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

// Package gazette publishes the official record of governance outcomes.
// Every terminal decision produces exactly one gazette entry: an index row
// for listing, an immutable rendered document in the blob archive, and a
// notification on the event bus.
package gazette

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/event"
)

// Entry types recorded in the gazette
const (
	EntryTypeBill         = "bill"
	EntryTypeAmendment    = "amendment"
	EntryTypeCabinet      = "cabinet"
	EntryTypeImpeachment  = "impeachment"
	EntryTypeConstitution = "constitution"
	EntryTypeCourt        = "court"
	EntryTypeParty        = "party"
)

// Document is the rendered form stored in the blob archive.
type Document struct {
	EntryType   string    `json:"entry_type"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Reference   string    `json:"reference"`
	PublishedAt time.Time `json:"published_at"`
}

type Emitter struct {
	db       *database.Database
	eventBus *event.EventBus
	logger   *slog.Logger
	metrics  *emitterMetrics
}

type emitterMetrics struct {
	entriesTotal *prometheus.CounterVec
}

func NewEmitter(
	db *database.Database,
	eventBus *event.EventBus,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Emitter{
		db:       db,
		eventBus: eventBus,
		logger:   logger,
	}
	if promRegistry != nil {
		promautoFactory := promauto.With(promRegistry)
		e.metrics = &emitterMetrics{
			entriesTotal: promautoFactory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "clawgov_gazette_entries_total",
					Help: "gazette entries published by entry type",
				},
				[]string{"entry_type"},
			),
		}
	}
	return e
}

// Publish appends one record to the gazette. The index row joins the
// caller's transaction so it commits (or rolls back) with the decision it
// records; the event notification and entry metric are deferred until that
// transaction commits so a rollback leaves no phantom publish. The document
// archive is append-only and a document for a rolled-back entry is
// unreachable since its key never lands in the index.
func (e *Emitter) Publish(
	txn *database.Txn,
	entryType string,
	title string,
	body string,
	reference string,
) error {
	docKey := uuid.NewString()
	entry := models.GazetteEntry{
		EntryType: entryType,
		Title:     title,
		Body:      body,
		Reference: reference,
		DocKey:    docKey,
	}
	if err := e.db.AddGazetteEntry(&entry, txn); err != nil {
		return err
	}
	doc := Document{
		EntryType:   entryType,
		Title:       title,
		Body:        body,
		Reference:   reference,
		PublishedAt: time.Now().UTC(),
	}
	docData, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to render gazette document: %w", err)
	}
	if err := e.db.PutGazetteDocument(docKey, docData); err != nil {
		return err
	}
	notify := func() {
		e.eventBus.PublishAsync(
			event.GazetteEntryEventType,
			event.NewEvent(
				event.GazetteEntryEventType,
				event.GazetteEntryEvent{
					EntryType: entryType,
					Title:     title,
					Reference: reference,
					DocKey:    docKey,
				},
			),
		)
		if e.metrics != nil {
			e.metrics.entriesTotal.WithLabelValues(entryType).Inc()
		}
		e.logger.Info(
			"gazette entry published",
			"entry_type", entryType,
			"title", title,
			"reference", reference,
		)
	}
	if txn != nil {
		txn.OnCommit(notify)
	} else {
		notify()
	}
	return nil
}

// Recent returns the newest gazette entries, most recent first.
func (e *Emitter) Recent(limit int) ([]models.GazetteEntry, error) {
	return e.db.ListGazetteEntries(limit, nil)
}

// Document fetches the rendered document for a gazette entry.
func (e *Emitter) Document(docKey string) (*Document, error) {
	data, err := e.db.GetGazetteDocument(docKey)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode gazette document: %w", err)
	}
	return &doc, nil
}
