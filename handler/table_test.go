package handler

import (
	"encoding/json"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/notify"
)

type recordedListener struct {
	messages [][]byte
}

func (l *recordedListener) WriteMessage(messageType int, data []byte) error {
	l.messages = append(l.messages, data)
	return nil
}

func (l *recordedListener) Close() error { return nil }

func TestTableClosedEventReachesAdmins(t *testing.T) {
	h := notify.NewHub()
	admin := &recordedListener{}
	kitchen := &recordedListener{}
	h.Connect(constants.CHANNEL_ADMIN, admin)
	h.Connect(constants.CHANNEL_KITCHEN, kitchen)
	UseHub(h)
	defer UseHub(nil)

	bill := &model.Bill{Total: 42.5}
	bill.ID = 7
	broadcast(constants.CHANNEL_ADMIN, tableClosedEvent(3, bill))

	if len(admin.messages) != 1 {
		t.Fatalf("admin received %d messages, want 1", len(admin.messages))
	}
	if len(kitchen.messages) != 0 {
		t.Fatalf("kitchen received %d messages, want 0", len(kitchen.messages))
	}

	var event map[string]any
	if err := json.Unmarshal(admin.messages[0], &event); err != nil {
		t.Fatalf("event is not valid JSON: %v", err)
	}
	if event["tipo"] != constants.EVENT_TABLE_CLOSED {
		t.Errorf("tipo = %v, want %q", event["tipo"], constants.EVENT_TABLE_CLOSED)
	}
	if event["mesa"] != float64(3) {
		t.Errorf("mesa = %v, want 3", event["mesa"])
	}
	if event["cuenta_id"] != float64(7) {
		t.Errorf("cuenta_id = %v, want 7", event["cuenta_id"])
	}
	if event["total"] != 42.5 {
		t.Errorf("total = %v, want 42.5", event["total"])
	}
}
