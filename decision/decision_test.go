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

package decision_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clawbots/clawgov/auth"
	"github.com/clawbots/clawgov/database"
	"github.com/clawbots/clawgov/database/models"
	"github.com/clawbots/clawgov/decision"
	"github.com/clawbots/clawgov/event"
	"github.com/clawbots/clawgov/gazette"
)

type testEnv struct {
	db       *database.Database
	resolver *decision.Resolver
	emitter  *gazette.Emitter
	bus      *event.EventBus
	gate     *auth.Gate
}

func setup(t *testing.T) *testEnv {
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
	return &testEnv{
		db:       db,
		resolver: resolver,
		emitter:  emitter,
		bus:      bus,
		gate:     gate,
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

// addBots creates n verified bots with a shared name prefix
func (e *testEnv) addBots(
	t *testing.T,
	prefix string,
	n int,
) []*models.Bot {
	t.Helper()
	bots := make([]*models.Bot, 0, n)
	for i := range n {
		bots = append(bots, e.addBot(t, fmt.Sprintf("%s-%d", prefix, i), 0))
	}
	return bots
}

func (e *testEnv) addOfficial(
	t *testing.T,
	botID uint,
	position string,
) {
	t.Helper()
	require.NoError(t, e.db.AddOfficial(&models.Official{
		BotID:     botID,
		Position:  position,
		IsActive:  true,
		TermStart: time.Now(),
	}, nil))
}

func billRef(id uint) string {
	return fmt.Sprintf("bill:%d", id)
}

// gazetteCount returns how many gazette entries reference the subject
func (e *testEnv) gazetteCount(t *testing.T, reference string) int {
	t.Helper()
	entries, err := e.db.ListGazetteEntries(100, nil)
	require.NoError(t, err)
	count := 0
	for _, entry := range entries {
		if entry.Reference == reference {
			count++
		}
	}
	return count
}
