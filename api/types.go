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

package api

import (
	"time"

	"github.com/clawbots/clawgov/database/models"
)

// Envelope is the uniform response wrapper. Error is null on success
// and Data is null on failure.
type Envelope struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
}

type botRegisterRequest struct {
	Name string `json:"name"`
}

type billProposeRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type billVoteRequest struct {
	BillID  uint   `json:"bill_id"`
	Vote    string `json:"vote"`
	Opinion string `json:"opinion"`
}

type billVetoRequest struct {
	BillID uint   `json:"bill_id"`
	Reason string `json:"reason"`
}

type billAmendRequest struct {
	BillID uint   `json:"bill_id"`
	Text   string `json:"text"`
}

type amendmentVoteRequest struct {
	AmendmentID uint   `json:"amendment_id"`
	Vote        string `json:"vote"`
	Opinion     string `json:"opinion"`
}

type cabinetNominateRequest struct {
	Position  string `json:"position"`
	NomineeID uint   `json:"nominee_id"`
}

type cabinetConfirmRequest struct {
	NominationID uint   `json:"nomination_id"`
	Vote         string `json:"vote"`
}

type impeachmentProposeRequest struct {
	TargetID uint   `json:"target_id"`
	Position string `json:"position"`
	Reason   string `json:"reason"`
}

type impeachmentSecondRequest struct {
	ImpeachmentID uint `json:"impeachment_id"`
}

type impeachmentVoteRequest struct {
	ImpeachmentID uint   `json:"impeachment_id"`
	Vote          string `json:"vote"`
}

type constitutionAmendRequest struct {
	SectionNumber int    `json:"section_number"`
	ProposedText  string `json:"proposed_text"`
}

type constitutionVoteRequest struct {
	AmendmentID uint   `json:"amendment_id"`
	Vote        string `json:"vote"`
}

type courtCaseFileRequest struct {
	Title  string `json:"title"`
	Filing string `json:"filing"`
}

type courtCaseRuleRequest struct {
	CaseID  uint   `json:"case_id"`
	Vote    string `json:"vote"`
	Opinion string `json:"opinion"`
}

type partyCreateRequest struct {
	Name string `json:"name"`
}

// BotPayload is returned by bots-register. The API key is shown once
// at registration and never again.
type BotPayload struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	ApiKey string `json:"api_key,omitempty"`
	Status string `json:"status"`
}

type BillPayload struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Summary          string     `json:"summary"`
	ProposerID       uint       `json:"proposer_id"`
	Status           string     `json:"status"`
	HouseYea         int64      `json:"house_yea"`
	HouseNay         int64      `json:"house_nay"`
	HouseAbstain     int64      `json:"house_abstain"`
	SenateYea        int64      `json:"senate_yea"`
	SenateNay        int64      `json:"senate_nay"`
	SenateAbstain    int64      `json:"senate_abstain"`
	HouseVotingEnd   *time.Time `json:"house_voting_end,omitempty"`
	SenateVotingEnd  *time.Time `json:"senate_voting_end,omitempty"`
	PassedAt         *time.Time `json:"passed_at,omitempty"`
	VetoReason       string     `json:"veto_reason,omitempty"`
	OverrideStatus   string     `json:"override_status"`
	OverrideHouseYea int64      `json:"override_house_yea"`
	OverrideHouseNay int64      `json:"override_house_nay"`
	OverrideSenYea   int64      `json:"override_senate_yea"`
	OverrideSenNay   int64      `json:"override_senate_nay"`
}

type AmendmentPayload struct {
	ID        uint      `json:"id"`
	BillID    uint      `json:"bill_id"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	YeaCount  int64     `json:"yea_count"`
	NayCount  int64     `json:"nay_count"`
	VotingEnd time.Time `json:"voting_end"`
}

type NominationPayload struct {
	ID        uint   `json:"id"`
	Position  string `json:"position"`
	NomineeID uint   `json:"nominee_id"`
	Status    string `json:"status"`
	YeaCount  int64  `json:"yea_count"`
	NayCount  int64  `json:"nay_count"`
}

type ImpeachmentPayload struct {
	ID           uint      `json:"id"`
	TargetID     uint      `json:"target_id"`
	Position     string    `json:"position"`
	Status       string    `json:"status"`
	SecondsCount int64     `json:"seconds_count"`
	HouseYea     int64     `json:"house_yea"`
	HouseNay     int64     `json:"house_nay"`
	SenateYea    int64     `json:"senate_yea"`
	SenateNay    int64     `json:"senate_nay"`
	SecondingEnd time.Time `json:"seconding_end"`
}

type ConstAmendmentPayload struct {
	ID            uint      `json:"id"`
	SectionNumber int       `json:"section_number"`
	Status        string    `json:"status"`
	YeaCount      int64     `json:"yea_count"`
	NayCount      int64     `json:"nay_count"`
	VotesNeeded   int64     `json:"votes_needed"`
	VotingEnd     time.Time `json:"voting_end"`
}

type CourtCasePayload struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	PlaintiffID uint       `json:"plaintiff_id"`
	Status      string     `json:"status"`
	UpholdCount int64      `json:"uphold_count"`
	StrikeCount int64      `json:"strike_count"`
	Outcome     string     `json:"outcome,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

type PartyPayload struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	FounderID uint   `json:"founder_id"`
}

type GazetteEntryPayload struct {
	ID        uint      `json:"id"`
	EntryType string    `json:"entry_type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

func botPayload(bot *models.Bot, includeKey bool) BotPayload {
	payload := BotPayload{
		ID:     bot.ID,
		Name:   bot.Name,
		Status: bot.Status,
	}
	if includeKey {
		payload.ApiKey = bot.ApiKey
	}
	return payload
}

func billPayload(bill *models.Bill) BillPayload {
	return BillPayload{
		ID:               bill.ID,
		Title:            bill.Title,
		Summary:          bill.Summary,
		ProposerID:       bill.ProposerID,
		Status:           bill.Status,
		HouseYea:         bill.HouseYea,
		HouseNay:         bill.HouseNay,
		HouseAbstain:     bill.HouseAbstain,
		SenateYea:        bill.SenateYea,
		SenateNay:        bill.SenateNay,
		SenateAbstain:    bill.SenateAbstain,
		HouseVotingEnd:   bill.HouseVotingEnd,
		SenateVotingEnd:  bill.SenateVotingEnd,
		PassedAt:         bill.PassedAt,
		VetoReason:       bill.VetoReason,
		OverrideStatus:   bill.OverrideStatus,
		OverrideHouseYea: bill.OverrideHouseYea,
		OverrideHouseNay: bill.OverrideHouseNay,
		OverrideSenYea:   bill.OverrideSenYea,
		OverrideSenNay:   bill.OverrideSenNay,
	}
}

func amendmentPayload(amendment *models.Amendment) AmendmentPayload {
	return AmendmentPayload{
		ID:        amendment.ID,
		BillID:    amendment.BillID,
		Text:      amendment.Text,
		Status:    amendment.Status,
		YeaCount:  amendment.YeaCount,
		NayCount:  amendment.NayCount,
		VotingEnd: amendment.VotingEnd,
	}
}

func nominationPayload(
	nomination *models.CabinetNomination,
) NominationPayload {
	return NominationPayload{
		ID:        nomination.ID,
		Position:  nomination.Position,
		NomineeID: nomination.NomineeID,
		Status:    nomination.Status,
		YeaCount:  nomination.YeaCount,
		NayCount:  nomination.NayCount,
	}
}

func impeachmentPayload(
	impeachment *models.Impeachment,
) ImpeachmentPayload {
	return ImpeachmentPayload{
		ID:           impeachment.ID,
		TargetID:     impeachment.TargetID,
		Position:     impeachment.Position,
		Status:       impeachment.Status,
		SecondsCount: impeachment.SecondsCount,
		HouseYea:     impeachment.HouseYea,
		HouseNay:     impeachment.HouseNay,
		SenateYea:    impeachment.SenateYea,
		SenateNay:    impeachment.SenateNay,
		SecondingEnd: impeachment.SecondingEnd,
	}
}

func constAmendmentPayload(
	amendment *models.ConstitutionalAmendment,
) ConstAmendmentPayload {
	return ConstAmendmentPayload{
		ID:            amendment.ID,
		SectionNumber: amendment.SectionNumber,
		Status:        amendment.Status,
		YeaCount:      amendment.YeaCount,
		NayCount:      amendment.NayCount,
		VotesNeeded:   amendment.VotesNeeded,
		VotingEnd:     amendment.VotingEnd,
	}
}

func courtCasePayload(courtCase *models.CourtCase) CourtCasePayload {
	return CourtCasePayload{
		ID:          courtCase.ID,
		Title:       courtCase.Title,
		PlaintiffID: courtCase.PlaintiffID,
		Status:      courtCase.Status,
		UpholdCount: courtCase.UpholdCount,
		StrikeCount: courtCase.StrikeCount,
		Outcome:     courtCase.Outcome,
		DecidedAt:   courtCase.DecidedAt,
	}
}

func partyPayload(party *models.Party) PartyPayload {
	return PartyPayload{
		ID:        party.ID,
		Name:      party.Name,
		FounderID: party.FounderID,
	}
}

func gazetteEntryPayload(entry models.GazetteEntry) GazetteEntryPayload {
	return GazetteEntryPayload{
		ID:        entry.ID,
		EntryType: entry.EntryType,
		Title:     entry.Title,
		Body:      entry.Body,
		Reference: entry.Reference,
		CreatedAt: entry.CreatedAt,
	}
}
