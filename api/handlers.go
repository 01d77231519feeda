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
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/gov"
)

const maxRequestBody = 64 * 1024

func httpStatus(code gov.Code) int {
	switch code {
	case gov.CodeUnauthenticated:
		return http.StatusUnauthorized
	case gov.CodeForbidden:
		return http.StatusForbidden
	case gov.CodeNotFound:
		return http.StatusNotFound
	case gov.CodeConflict:
		return http.StatusConflict
	case gov.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Content-Type, Authorization, apikey",
	)
}

func (s *Server) writeEnvelope(
	w http.ResponseWriter,
	endpoint string,
	status int,
	data any,
	errMsg *string,
) {
	if s.metrics != nil {
		s.metrics.requestsTotal.WithLabelValues(
			endpoint,
			strconv.Itoa(status),
		).Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(Envelope{
		Success:   errMsg == nil,
		Data:      data,
		Error:     errMsg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeSuccess(
	w http.ResponseWriter,
	endpoint string,
	data any,
) {
	s.writeEnvelope(w, endpoint, http.StatusOK, data, nil)
}

func (s *Server) writeFailure(
	w http.ResponseWriter,
	endpoint string,
	err error,
) {
	code := gov.CodeOf(err)
	if code == gov.CodeInternal {
		s.logger.Error(
			"request failed",
			"endpoint", endpoint,
			"error", err,
		)
	}
	message := gov.MessageOf(err)
	s.writeEnvelope(w, endpoint, httpStatus(code), nil, &message)
}

func (s *Server) writeRejection(
	w http.ResponseWriter,
	endpoint string,
	status int,
	message string,
) {
	s.writeEnvelope(w, endpoint, status, nil, &message)
}

// credentialFrom extracts the caller's API key: Authorization Bearer
// header first, then the legacy api_key body field, then the apikey
// header.
func credentialFrom(r *http.Request, body []byte) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if key, found := strings.CutPrefix(header, "Bearer "); found {
			return strings.TrimSpace(key)
		}
	}
	if len(body) > 0 {
		var legacy struct {
			ApiKey string `json:"api_key"`
		}
		if err := json.Unmarshal(body, &legacy); err == nil &&
			legacy.ApiKey != "" {
			return legacy.ApiKey
		}
	}
	return r.Header.Get("apikey")
}

// prepare answers CORS preflight, enforces POST, applies the rate
// limiter, and decodes the body into req. A false return means the
// response has already been written.
func (s *Server) prepare(
	w http.ResponseWriter,
	r *http.Request,
	endpoint string,
	req any,
) ([]byte, bool) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return nil, false
	}
	if r.Method != http.MethodPost {
		s.writeRejection(
			w,
			endpoint,
			http.StatusMethodNotAllowed,
			"method not allowed",
		)
		return nil, false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.writeRejection(
			w,
			endpoint,
			http.StatusBadRequest,
			"failed to read request body",
		)
		return nil, false
	}
	limitKey := credentialFrom(r, body)
	if limitKey == "" {
		limitKey = r.RemoteAddr
	}
	allowed, err := s.limiter.Allow(limitKey)
	if err != nil {
		// fail open: a broken limiter must not block votes
		s.logger.Warn(
			"rate limiter check failed, allowing request",
			"endpoint", endpoint,
			"error", err,
		)
		allowed = true
	}
	if !allowed {
		s.writeRejection(
			w,
			endpoint,
			http.StatusTooManyRequests,
			"rate limit exceeded",
		)
		return nil, false
	}
	if req != nil && len(body) > 0 {
		if err := json.Unmarshal(body, req); err != nil {
			s.writeRejection(
				w,
				endpoint,
				http.StatusBadRequest,
				"invalid JSON request body",
			)
			return nil, false
		}
	}
	return body, true
}

func (s *Server) authorize(
	w http.ResponseWriter,
	r *http.Request,
	endpoint string,
	body []byte,
) (*models.Bot, bool) {
	bot, err := s.gate.Authenticate(credentialFrom(r, body))
	if err != nil {
		s.writeFailure(w, endpoint, err)
		return nil, false
	}
	return bot, true
}

func (s *Server) handleBotsRegister(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req botRegisterRequest
	if _, ok := s.prepare(w, r, "bots-register", &req); !ok {
		return
	}
	bot, err := s.resolver.RegisterBot(req.Name)
	if err != nil {
		s.writeFailure(w, "bots-register", err)
		return
	}
	s.writeSuccess(w, "bots-register", botPayload(bot, true))
}

func (s *Server) handleBillsPropose(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req billProposeRequest
	body, ok := s.prepare(w, r, "bills-propose", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "bills-propose", body)
	if !ok {
		return
	}
	bill, err := s.resolver.ProposeBill(bot, req.Title, req.Summary)
	if err != nil {
		s.writeFailure(w, "bills-propose", err)
		return
	}
	s.writeSuccess(w, "bills-propose", billPayload(bill))
}

func (s *Server) handleBillsVote(w http.ResponseWriter, r *http.Request) {
	var req billVoteRequest
	body, ok := s.prepare(w, r, "bills-vote", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "bills-vote", body)
	if !ok {
		return
	}
	bill, err := s.resolver.CastBillVote(
		bot,
		req.BillID,
		req.Vote,
		req.Opinion,
	)
	if err != nil {
		s.writeFailure(w, "bills-vote", err)
		return
	}
	s.writeSuccess(w, "bills-vote", billPayload(bill))
}

func (s *Server) handleBillsVeto(w http.ResponseWriter, r *http.Request) {
	var req billVetoRequest
	body, ok := s.prepare(w, r, "bills-veto", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "bills-veto", body)
	if !ok {
		return
	}
	bill, err := s.resolver.VetoBill(bot, req.BillID, req.Reason)
	if err != nil {
		s.writeFailure(w, "bills-veto", err)
		return
	}
	s.writeSuccess(w, "bills-veto", billPayload(bill))
}

func (s *Server) handleVetoOverride(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req billVoteRequest
	body, ok := s.prepare(w, r, "veto-override", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "veto-override", body)
	if !ok {
		return
	}
	bill, err := s.resolver.CastOverrideVote(bot, req.BillID, req.Vote)
	if err != nil {
		s.writeFailure(w, "veto-override", err)
		return
	}
	s.writeSuccess(w, "veto-override", billPayload(bill))
}

func (s *Server) handleBillsAmend(w http.ResponseWriter, r *http.Request) {
	var req billAmendRequest
	body, ok := s.prepare(w, r, "bills-amend", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "bills-amend", body)
	if !ok {
		return
	}
	amendment, err := s.resolver.ProposeAmendment(bot, req.BillID, req.Text)
	if err != nil {
		s.writeFailure(w, "bills-amend", err)
		return
	}
	s.writeSuccess(w, "bills-amend", amendmentPayload(amendment))
}

func (s *Server) handleAmendmentsVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req amendmentVoteRequest
	body, ok := s.prepare(w, r, "amendments-vote", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "amendments-vote", body)
	if !ok {
		return
	}
	amendment, err := s.resolver.CastAmendmentVote(
		bot,
		req.AmendmentID,
		req.Vote,
		req.Opinion,
	)
	if err != nil {
		s.writeFailure(w, "amendments-vote", err)
		return
	}
	s.writeSuccess(w, "amendments-vote", amendmentPayload(amendment))
}

func (s *Server) handleCabinetNominate(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req cabinetNominateRequest
	body, ok := s.prepare(w, r, "cabinet-nominate", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "cabinet-nominate", body)
	if !ok {
		return
	}
	nomination, err := s.resolver.NominateCabinet(
		bot,
		req.Position,
		req.NomineeID,
	)
	if err != nil {
		s.writeFailure(w, "cabinet-nominate", err)
		return
	}
	s.writeSuccess(w, "cabinet-nominate", nominationPayload(nomination))
}

func (s *Server) handleCabinetConfirm(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req cabinetConfirmRequest
	body, ok := s.prepare(w, r, "cabinet-confirm", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "cabinet-confirm", body)
	if !ok {
		return
	}
	nomination, err := s.resolver.CastConfirmationVote(
		bot,
		req.NominationID,
		req.Vote,
	)
	if err != nil {
		s.writeFailure(w, "cabinet-confirm", err)
		return
	}
	s.writeSuccess(w, "cabinet-confirm", nominationPayload(nomination))
}

func (s *Server) handleImpeachmentPropose(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req impeachmentProposeRequest
	body, ok := s.prepare(w, r, "impeachment-propose", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "impeachment-propose", body)
	if !ok {
		return
	}
	impeachment, err := s.resolver.ProposeImpeachment(
		bot,
		req.TargetID,
		req.Position,
		req.Reason,
	)
	if err != nil {
		s.writeFailure(w, "impeachment-propose", err)
		return
	}
	s.writeSuccess(
		w,
		"impeachment-propose",
		impeachmentPayload(impeachment),
	)
}

func (s *Server) handleImpeachmentSecond(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req impeachmentSecondRequest
	body, ok := s.prepare(w, r, "impeachment-second", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "impeachment-second", body)
	if !ok {
		return
	}
	impeachment, err := s.resolver.SecondImpeachment(
		bot,
		req.ImpeachmentID,
	)
	if err != nil {
		s.writeFailure(w, "impeachment-second", err)
		return
	}
	s.writeSuccess(
		w,
		"impeachment-second",
		impeachmentPayload(impeachment),
	)
}

func (s *Server) handleImpeachmentVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req impeachmentVoteRequest
	body, ok := s.prepare(w, r, "impeachment-vote", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "impeachment-vote", body)
	if !ok {
		return
	}
	impeachment, err := s.resolver.CastImpeachmentVote(
		bot,
		req.ImpeachmentID,
		req.Vote,
	)
	if err != nil {
		s.writeFailure(w, "impeachment-vote", err)
		return
	}
	s.writeSuccess(w, "impeachment-vote", impeachmentPayload(impeachment))
}

func (s *Server) handleConstitutionAmend(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req constitutionAmendRequest
	body, ok := s.prepare(w, r, "constitution-amend", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "constitution-amend", body)
	if !ok {
		return
	}
	amendment, err := s.resolver.ProposeConstitutionalAmendment(
		bot,
		req.SectionNumber,
		req.ProposedText,
	)
	if err != nil {
		s.writeFailure(w, "constitution-amend", err)
		return
	}
	s.writeSuccess(
		w,
		"constitution-amend",
		constAmendmentPayload(amendment),
	)
}

func (s *Server) handleConstitutionVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req constitutionVoteRequest
	body, ok := s.prepare(w, r, "constitution-vote", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "constitution-vote", body)
	if !ok {
		return
	}
	amendment, err := s.resolver.CastConstitutionVote(
		bot,
		req.AmendmentID,
		req.Vote,
	)
	if err != nil {
		s.writeFailure(w, "constitution-vote", err)
		return
	}
	s.writeSuccess(
		w,
		"constitution-vote",
		constAmendmentPayload(amendment),
	)
}

func (s *Server) handleCourtCasesFile(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req courtCaseFileRequest
	body, ok := s.prepare(w, r, "court-cases-file", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "court-cases-file", body)
	if !ok {
		return
	}
	courtCase, err := s.resolver.FileCourtCase(bot, req.Title, req.Filing)
	if err != nil {
		s.writeFailure(w, "court-cases-file", err)
		return
	}
	s.writeSuccess(w, "court-cases-file", courtCasePayload(courtCase))
}

func (s *Server) handleCourtCasesRule(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req courtCaseRuleRequest
	body, ok := s.prepare(w, r, "court-cases-rule", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "court-cases-rule", body)
	if !ok {
		return
	}
	courtCase, err := s.resolver.RuleCourtCase(
		bot,
		req.CaseID,
		req.Vote,
		req.Opinion,
	)
	if err != nil {
		s.writeFailure(w, "court-cases-rule", err)
		return
	}
	s.writeSuccess(w, "court-cases-rule", courtCasePayload(courtCase))
}

func (s *Server) handlePartiesCreate(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req partyCreateRequest
	body, ok := s.prepare(w, r, "parties-create", &req)
	if !ok {
		return
	}
	bot, ok := s.authorize(w, r, "parties-create", body)
	if !ok {
		return
	}
	party, err := s.resolver.CreateParty(bot, req.Name)
	if err != nil {
		s.writeFailure(w, "parties-create", err)
		return
	}
	s.writeSuccess(w, "parties-create", partyPayload(party))
}

const defaultGazetteLimit = 20

func (s *Server) handleGazette(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	limit := defaultGazetteLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			s.writeRejection(
				w,
				"gazette",
				http.StatusBadRequest,
				"limit must be an integer between 1 and 100",
			)
			return
		}
		limit = parsed
	}
	entries, err := s.emitter.Recent(limit)
	if err != nil {
		s.writeFailure(w, "gazette", gov.WrapInternal(err))
		return
	}
	payload := make([]GazetteEntryPayload, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, gazetteEntryPayload(entry))
	}
	s.writeSuccess(w, "gazette", payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeSuccess(w, "health", map[string]bool{"healthy": true})
}
