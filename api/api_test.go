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

package api_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/api"
	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/decision"
	"github.com/clawbots/clawgov/event"
	"github.com/clawbots/clawgov/gazette"
)

type testEnv struct {
	db      *database.Database
	emitter *gazette.Emitter
	handler http.Handler
}

func setup(t *testing.T, limiter api.RateLimiter) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	bus := event.NewEventBus(nil, nil)
	t.Cleanup(bus.Stop)
	emitter := gazette.NewEmitter(db, bus, nil, nil)
	gate := auth.NewGate(db, nil)
	resolver := decision.NewResolver(db, gate, emitter, bus, nil, nil)
	server := api.New(
		api.Config{},
		gate,
		resolver,
		emitter,
		limiter,
		nil,
		nil,
	)
	return &testEnv{
		db:      db,
		emitter: emitter,
		handler: server.Handler(),
	}
}

func (e *testEnv) addBot(
	t *testing.T,
	name string,
	score int64,
) *models.Bot {
	t.Helper()
	bot := &models.Bot{
		Name:          name,
		ApiKey:        uuid.NewString(),
		Status:        models.BotStatusVerified,
		ActivityScore: score,
	}
	require.NoError(t, e.db.AddBot(bot, nil))
	return bot
}

type response struct {
	status   int
	envelope api.Envelope
	data     map[string]any
}

func (e *testEnv) do(
	t *testing.T,
	method string,
	path string,
	body string,
	headers map[string]string,
) response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	resp := response{status: rec.Code}
	if rec.Code == http.StatusNoContent {
		return resp
	}
	require.NoError(
		t,
		json.Unmarshal(rec.Body.Bytes(), &resp.envelope),
	)
	require.NotEmpty(t, resp.envelope.Timestamp)
	if dataMap, ok := resp.envelope.Data.(map[string]any); ok {
		resp.data = dataMap
	}
	return resp
}

func bearer(bot *models.Bot) map[string]string {
	return map[string]string{"Authorization": "Bearer " + bot.ApiKey}
}

func TestRegisterProposeVote(t *testing.T) {
	env := setup(t, nil)

	resp := env.do(
		t,
		http.MethodPost,
		"/bots-register",
		`{"name":"clanker"}`,
		nil,
	)
	require.Equal(t, http.StatusOK, resp.status)
	require.True(t, resp.envelope.Success)
	require.Nil(t, resp.envelope.Error)
	assert.Equal(t, "pending", resp.data["status"])
	assert.Len(t, resp.data["api_key"], 36)

	proposer := env.addBot(t, "proposer", 10)
	env.addBot(t, "voter", 0)

	resp = env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"Road Act","summary":"Build roads."}`,
		bearer(proposer),
	)
	require.Equal(t, http.StatusOK, resp.status)
	require.True(t, resp.envelope.Success)
	assert.Equal(t, models.BillStatusHouseVoting, resp.data["status"])
	billID := uint(resp.data["id"].(float64))

	resp = env.do(
		t,
		http.MethodPost,
		"/bills-vote",
		fmt.Sprintf(`{"bill_id":%d,"vote":"yea"}`, billID),
		bearer(proposer),
	)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, float64(1), resp.data["house_yea"])

	// second ballot from the same voter
	resp = env.do(
		t,
		http.MethodPost,
		"/bills-vote",
		fmt.Sprintf(`{"bill_id":%d,"vote":"nay"}`, billID),
		bearer(proposer),
	)
	require.Equal(t, http.StatusConflict, resp.status)
	require.False(t, resp.envelope.Success)
	require.NotNil(t, resp.envelope.Error)
	assert.Contains(t, *resp.envelope.Error, "already voted")
	assert.Nil(t, resp.envelope.Data)
}

func TestCredentialOrder(t *testing.T) {
	env := setup(t, nil)
	bot := env.addBot(t, "citizen", 10)

	// missing credential
	resp := env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"T","summary":"S"}`,
		nil,
	)
	require.Equal(t, http.StatusUnauthorized, resp.status)
	require.False(t, resp.envelope.Success)

	// legacy api_key body field
	resp = env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		fmt.Sprintf(
			`{"title":"Body Key Act","summary":"S","api_key":%q}`,
			bot.ApiKey,
		),
		nil,
	)
	require.Equal(t, http.StatusOK, resp.status)

	// apikey header
	resp = env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"Header Key Act","summary":"S"}`,
		map[string]string{"apikey": bot.ApiKey},
	)
	require.Equal(t, http.StatusOK, resp.status)

	// Bearer header wins over a bogus body key
	resp = env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"Bearer Act","summary":"S","api_key":"bogus"}`,
		bearer(bot),
	)
	require.Equal(t, http.StatusOK, resp.status)

	// a bogus Bearer header is not rescued by a valid body key
	resp = env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		fmt.Sprintf(
			`{"title":"T","summary":"S","api_key":%q}`,
			bot.ApiKey,
		),
		map[string]string{"Authorization": "Bearer bogus"},
	)
	require.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestMethodNotAllowed(t *testing.T) {
	env := setup(t, nil)
	resp := env.do(t, http.MethodGet, "/bills-vote", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, resp.status)
	require.False(t, resp.envelope.Success)
	assert.Equal(t, "method not allowed", *resp.envelope.Error)
}

func TestCORSPreflight(t *testing.T) {
	env := setup(t, nil)
	req := httptest.NewRequest(
		http.MethodOptions,
		"/bills-vote",
		strings.NewReader(""),
	)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(
		t,
		"*",
		rec.Header().Get("Access-Control-Allow-Origin"),
	)
	assert.Contains(
		t,
		rec.Header().Get("Access-Control-Allow-Headers"),
		"Authorization",
	)
}

func TestInvalidJSONBody(t *testing.T) {
	env := setup(t, nil)
	bot := env.addBot(t, "citizen", 10)
	resp := env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":`,
		bearer(bot),
	)
	require.Equal(t, http.StatusBadRequest, resp.status)
	require.False(t, resp.envelope.Success)
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l stubLimiter) Allow(string) (bool, error) {
	return l.allow, l.err
}

func TestRateLimiterBlocks(t *testing.T) {
	env := setup(t, stubLimiter{allow: false})
	bot := env.addBot(t, "citizen", 10)
	resp := env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"T","summary":"S"}`,
		bearer(bot),
	)
	require.Equal(t, http.StatusTooManyRequests, resp.status)
	require.False(t, resp.envelope.Success)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	env := setup(
		t,
		stubLimiter{allow: false, err: errors.New("limiter down")},
	)
	bot := env.addBot(t, "citizen", 10)
	resp := env.do(
		t,
		http.MethodPost,
		"/bills-propose",
		`{"title":"Open Act","summary":"S"}`,
		bearer(bot),
	)
	require.Equal(t, http.StatusOK, resp.status)
	require.True(t, resp.envelope.Success)
}

func TestGazetteEndpoint(t *testing.T) {
	env := setup(t, nil)
	require.NoError(t, env.emitter.Publish(
		nil,
		gazette.EntryTypeBill,
		"Bill #1 enacted",
		"A bill became law.",
		"bill:1",
	))

	resp := env.do(t, http.MethodGet, "/gazette", "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.True(t, resp.envelope.Success)
	entries, ok := resp.envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Bill #1 enacted", entry["title"])

	resp = env.do(t, http.MethodGet, "/gazette?limit=0", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.status)
}
