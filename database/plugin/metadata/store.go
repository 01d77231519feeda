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

package metadata

import (
	"log/slog"

	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/database/plugin/metadata/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the relational store behind the governance core. All
// methods accept an optional transaction handle; nil falls back to the
// base connection. Tally columns are only ever mutated via the atomic
// Increment* methods, and status changes go through the conditional
// Transition* methods so that concurrent observers of the same winning
// tally cannot double-apply side effects.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Bots and officials
	AddBot(*models.Bot, *gorm.DB) error
	GetBot(uint, *gorm.DB) (*models.Bot, error)
	GetBotByApiKey(string, *gorm.DB) (*models.Bot, error)
	CountBotsByStatus(string, *gorm.DB) (int64, error)
	IncrementBotActivity(uint, int64, *gorm.DB) error
	SetBotParty(
		uint, // botID
		uint, // partyID
		*gorm.DB,
	) error
	AddOfficial(*models.Official, *gorm.DB) error
	HasActiveOfficial(
		uint, // botID
		string, // position
		*gorm.DB,
	) (bool, error)
	CountActiveOfficials(string, *gorm.DB) (int64, error)
	DeactivateOfficial(
		uint, // botID
		string, // position
		*gorm.DB,
	) (bool, error)
	AddParty(*models.Party, *gorm.DB) error

	// Bills and amendments
	AddBill(*models.Bill, *gorm.DB) error
	GetBill(uint, *gorm.DB) (*models.Bill, error)
	ListBillsByStatus(string, *gorm.DB) ([]models.Bill, error)
	IncrementBillTally(
		uint, // billID
		string, // column
		*gorm.DB,
	) error
	TransitionBillStatus(
		uint, // billID
		string, // from status
		map[string]any, // updates, including new status
		*gorm.DB,
	) (bool, error)
	TransitionOverrideStatus(
		uint, // billID
		string, // from override status
		map[string]any, // updates
		*gorm.DB,
	) (bool, error)
	AddAmendment(*models.Amendment, *gorm.DB) error
	GetAmendment(uint, *gorm.DB) (*models.Amendment, error)
	ListAmendmentsByStatus(string, *gorm.DB) ([]models.Amendment, error)
	IncrementAmendmentTally(uint, string, *gorm.DB) error
	TransitionAmendmentStatus(
		uint,
		string,
		map[string]any,
		*gorm.DB,
	) (bool, error)

	// Vote ledger
	AddVote(*models.Vote, *gorm.DB) error
	CountVotes(
		string, // kind
		uint, // subjectID
		*gorm.DB,
	) (int64, error)

	// Cabinet
	AddNomination(*models.CabinetNomination, *gorm.DB) error
	GetNomination(uint, *gorm.DB) (*models.CabinetNomination, error)
	IncrementNominationTally(uint, string, *gorm.DB) error
	TransitionNominationStatus(
		uint,
		string,
		map[string]any,
		*gorm.DB,
	) (bool, error)
	GetActiveCabinetMember(
		string, // position
		*gorm.DB,
	) (*models.CabinetMember, error)
	DeactivateCabinetMember(string, *gorm.DB) error
	AddCabinetMember(*models.CabinetMember, *gorm.DB) error

	// Impeachment
	AddImpeachment(*models.Impeachment, *gorm.DB) error
	GetImpeachment(uint, *gorm.DB) (*models.Impeachment, error)
	GetActiveImpeachment(
		uint, // targetID
		string, // position
		*gorm.DB,
	) (*models.Impeachment, error)
	ListImpeachmentsByStatus(string, *gorm.DB) ([]models.Impeachment, error)
	IncrementImpeachmentTally(uint, string, *gorm.DB) error
	TransitionImpeachmentStatus(
		uint,
		string,
		map[string]any,
		*gorm.DB,
	) (bool, error)

	// Constitution
	AddSection(*models.ConstitutionSection, *gorm.DB) error
	GetSection(int, *gorm.DB) (*models.ConstitutionSection, error)
	UpdateSectionContent(*models.ConstitutionSection, *gorm.DB) error
	AddRevision(*models.ConstitutionRevision, *gorm.DB) error
	AddConstAmendment(*models.ConstitutionalAmendment, *gorm.DB) error
	GetConstAmendment(uint, *gorm.DB) (*models.ConstitutionalAmendment, error)
	GetPendingConstAmendmentBySection(
		int, // section number
		*gorm.DB,
	) (*models.ConstitutionalAmendment, error)
	ListConstAmendmentsByStatus(
		string,
		*gorm.DB,
	) ([]models.ConstitutionalAmendment, error)
	IncrementConstAmendmentTally(uint, string, *gorm.DB) error
	TransitionConstAmendmentStatus(
		uint,
		string,
		map[string]any,
		*gorm.DB,
	) (bool, error)

	// Court
	AddCourtCase(*models.CourtCase, *gorm.DB) error
	GetCourtCase(uint, *gorm.DB) (*models.CourtCase, error)
	IncrementCourtCaseTally(uint, string, *gorm.DB) error
	TransitionCourtCaseStatus(
		uint,
		string,
		map[string]any,
		*gorm.DB,
	) (bool, error)

	// Gazette index
	AddGazetteEntry(*models.GazetteEntry, *gorm.DB) error
	ListGazetteEntries(int, *gorm.DB) ([]models.GazetteEntry, error)
}

// For now, this always returns a sqlite plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	return sqlite.New(dataDir, logger, promRegistry)
}
