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

package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/clawbots/clawgov/event"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventBusSingleSubscriber(t *testing.T) {
	var testEvtType event.EventType = "test.event"
	testEvtData := event.VoteRecordedEvent{
		Kind:      "bill",
		SubjectID: 7,
		VoterID:   42,
		Chamber:   "house",
		Value:     "yea",
	}
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	_, subCh := eb.Subscribe(testEvtType)
	eb.Publish(testEvtType, event.NewEvent(testEvtType, testEvtData))
	select {
	case evt, ok := <-subCh:
		require.True(t, ok, "event channel closed unexpectedly")
		got, ok := evt.Data.(event.VoteRecordedEvent)
		require.True(
			t,
			ok,
			"event data was not of expected type, got %T",
			evt.Data,
		)
		require.Equal(t, testEvtData, got)
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	var testEvtType event.EventType = "test.event"
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	_, sub1Ch := eb.Subscribe(testEvtType)
	_, sub2Ch := eb.Subscribe(testEvtType)
	eb.Publish(testEvtType, event.NewEvent(testEvtType, 999))
	for _, subCh := range []<-chan event.Event{sub1Ch, sub2Ch} {
		select {
		case evt, ok := <-subCh:
			require.True(t, ok, "event channel closed unexpectedly")
			require.Equal(t, 999, evt.Data)
		case <-time.After(1 * time.Second):
			t.Fatalf("timeout waiting for event")
		}
	}
}

func TestEventBusSubscribeFunc(t *testing.T) {
	var testEvtType event.EventType = "test.event"
	var callCount atomic.Int64
	eb := event.NewEventBus(nil, nil)
	eb.SubscribeFunc(testEvtType, func(evt event.Event) {
		callCount.Add(1)
	})
	eb.Publish(testEvtType, event.NewEvent(testEvtType, nil))
	eb.Publish(testEvtType, event.NewEvent(testEvtType, nil))
	require.Eventually(
		t,
		func() bool { return callCount.Load() == 2 },
		1*time.Second,
		10*time.Millisecond,
	)
	// Stop closes the subscriber channel so the handler goroutine exits
	eb.Stop()
}

func TestEventBusUnsubscribe(t *testing.T) {
	var testEvtType event.EventType = "test.event"
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	subId, subCh := eb.Subscribe(testEvtType)
	eb.Unsubscribe(testEvtType, subId)
	_, ok := <-subCh
	require.False(t, ok, "expected channel to be closed after unsubscribe")
	// Publishing after unsubscribe must not block or panic
	eb.Publish(testEvtType, event.NewEvent(testEvtType, nil))
}

func TestEventBusPublishAsync(t *testing.T) {
	var testEvtType event.EventType = "test.event"
	var callCount atomic.Int64
	eb := event.NewEventBus(nil, nil)
	eb.SubscribeFunc(testEvtType, func(evt event.Event) {
		callCount.Add(1)
	})
	require.True(t, eb.PublishAsync(testEvtType, event.NewEvent(testEvtType, nil)))
	require.Eventually(
		t,
		func() bool { return callCount.Load() == 1 },
		1*time.Second,
		10*time.Millisecond,
	)
	eb.Stop()
	// A stopped bus refuses async publishes
	require.False(t, eb.PublishAsync(testEvtType, event.NewEvent(testEvtType, nil)))
}
