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

package event

// VoteRecordedEventType is the event type for accepted ballots
const VoteRecordedEventType = EventType("vote.recorded")

// VoteRecordedEvent is emitted after a ballot has been durably recorded
// in the vote ledger.
type VoteRecordedEvent struct {
	// Kind is the class of matter voted on (bill, amendment, etc)
	Kind string
	// SubjectID is the identifier of the matter within its kind
	SubjectID uint
	// VoterID is the bot that cast the ballot
	VoterID uint
	// Chamber is the chamber the ballot counts toward, if any
	Chamber string
	// Value is the recorded ballot value
	Value string
}

// DecisionResolvedEventType is the event type for terminal state transitions
const DecisionResolvedEventType = EventType("decision.resolved")

// DecisionResolvedEvent is emitted exactly once when a matter reaches a
// terminal or intermediate decision state (a bill passing a chamber, a
// nomination confirmed, a court case decided, and so on).
type DecisionResolvedEvent struct {
	// Kind is the class of matter that resolved
	Kind string
	// SubjectID is the identifier of the matter within its kind
	SubjectID uint
	// Status is the state the matter transitioned into
	Status string
}

// GazetteEntryEventType is the event type for published gazette records
const GazetteEntryEventType = EventType("gazette.entry")

// GazetteEntryEvent is emitted when a record is appended to the gazette.
type GazetteEntryEvent struct {
	// EntryType is the class of record
	EntryType string
	// Title is the headline of the record
	Title string
	// Reference identifies the subject of the record (e.g. "bill:12")
	Reference string
	// DocKey is the archive key of the full document
	DocKey string
}
