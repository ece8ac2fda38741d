package notify

import (
	"encoding/json"
	"errors"
	"testing"

	"restaurant_manager/constants"
)

type fakeListener struct {
	messages  [][]byte
	failWrite bool
	closed    bool
}

func (f *fakeListener) WriteMessage(messageType int, data []byte) error {
	if f.failWrite {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeListener) Close() error {
	f.closed = true
	return nil
}

func TestValidChannel(t *testing.T) {
	hub := NewHub()

	for _, channel := range []string{constants.CHANNEL_KITCHEN, constants.CHANNEL_WAITERS, constants.CHANNEL_ADMIN} {
		if !hub.ValidChannel(channel) {
			t.Errorf("channel %q should be valid", channel)
		}
	}
	if hub.ValidChannel("bar") {
		t.Error("unknown channel accepted")
	}
}

func TestPublishReachesOnlyItsAudience(t *testing.T) {
	hub := NewHub()
	kitchen := &fakeListener{}
	waiter := &fakeListener{}
	admin := &fakeListener{}
	hub.Connect(constants.CHANNEL_KITCHEN, kitchen)
	hub.Connect(constants.CHANNEL_WAITERS, waiter)
	hub.Connect(constants.CHANNEL_ADMIN, admin)

	hub.Publish(constants.CHANNEL_KITCHEN, map[string]any{
		"tipo":      constants.EVENT_NEW_ORDER,
		"pedido_id": 12,
		"mesa":      4,
	})

	if len(kitchen.messages) != 1 {
		t.Fatalf("kitchen should have 1 message, got %d", len(kitchen.messages))
	}
	if len(waiter.messages) != 0 || len(admin.messages) != 0 {
		t.Error("event leaked to other audiences")
	}

	var event map[string]any
	if err := json.Unmarshal(kitchen.messages[0], &event); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if event["tipo"] != constants.EVENT_NEW_ORDER {
		t.Errorf("unexpected tipo %v", event["tipo"])
	}
}

func TestPublishToEveryListenerOfChannel(t *testing.T) {
	hub := NewHub()
	first := &fakeListener{}
	second := &fakeListener{}
	hub.Connect(constants.CHANNEL_ADMIN, first)
	hub.Connect(constants.CHANNEL_ADMIN, second)

	hub.Publish(constants.CHANNEL_ADMIN, map[string]any{"tipo": constants.EVENT_NEW_RESERVATION})

	if len(first.messages) != 1 || len(second.messages) != 1 {
		t.Error("every listener of the audience should receive the event")
	}
}

func TestFailingListenerIsDropped(t *testing.T) {
	hub := NewHub()
	healthy := &fakeListener{}
	broken := &fakeListener{failWrite: true}
	hub.Connect(constants.CHANNEL_KITCHEN, healthy)
	hub.Connect(constants.CHANNEL_KITCHEN, broken)

	hub.Publish(constants.CHANNEL_KITCHEN, map[string]any{"tipo": constants.EVENT_ORDER_UPDATE})

	if !broken.closed {
		t.Error("failed listener should be closed")
	}
	if hub.Count(constants.CHANNEL_KITCHEN) != 1 {
		t.Errorf("failed listener should be removed, count = %d", hub.Count(constants.CHANNEL_KITCHEN))
	}
	if len(healthy.messages) != 1 {
		t.Error("healthy listener should still receive the event")
	}

	// The next publish only reaches the survivor.
	hub.Publish(constants.CHANNEL_KITCHEN, map[string]any{"tipo": constants.EVENT_ORDER_UPDATE})
	if len(healthy.messages) != 2 {
		t.Error("survivor should keep receiving events")
	}
}

func TestDisconnect(t *testing.T) {
	hub := NewHub()
	l := &fakeListener{}
	hub.Connect(constants.CHANNEL_WAITERS, l)
	if hub.Count(constants.CHANNEL_WAITERS) != 1 {
		t.Fatal("listener not registered")
	}

	hub.Disconnect(constants.CHANNEL_WAITERS, l)
	if hub.Count(constants.CHANNEL_WAITERS) != 0 {
		t.Error("listener not removed")
	}

	hub.Publish(constants.CHANNEL_WAITERS, map[string]any{"tipo": constants.EVENT_ORDER_UPDATE})
	if len(l.messages) != 0 {
		t.Error("disconnected listener still received an event")
	}
}

func TestPublishToUnknownChannelIsNoop(t *testing.T) {
	hub := NewHub()
	l := &fakeListener{}
	hub.Connect(constants.CHANNEL_KITCHEN, l)

	hub.Publish("bar", map[string]any{"tipo": "x"})
	if len(l.messages) != 0 {
		t.Error("event on unknown channel must go nowhere")
	}
}
