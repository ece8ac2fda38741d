package helper

import (
	"testing"

	"restaurant_manager/constants"
)

func TestAllowsByRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		op      Operation
		allowed bool
	}{
		{"admin manages users", constants.ROLE_ADMIN, OpUserManage, true},
		{"admin deletes bills", constants.ROLE_ADMIN, OpBillDelete, true},
		{"waiter creates orders", constants.ROLE_WAITER, OpOrderCreate, true},
		{"waiter cannot create tables", constants.ROLE_WAITER, OpTableCreate, false},
		{"waiter cannot manage menu", constants.ROLE_WAITER, OpMenuManage, false},
		{"waiter cannot see summary", constants.ROLE_WAITER, OpBillSummary, false},
		{"cook updates orders", constants.ROLE_COOK, OpOrderUpdate, true},
		{"cook cannot create orders", constants.ROLE_COOK, OpOrderCreate, false},
		{"cook cannot manage lines", constants.ROLE_COOK, OpOrderItemsManage, false},
		{"cook flips line states", constants.ROLE_COOK, OpOrderItemStatus, true},
		{"waiter manages lines", constants.ROLE_WAITER, OpOrderItemsManage, true},
		{"admin manages lines", constants.ROLE_ADMIN, OpOrderItemsManage, true},
		{"cook cannot view bills", constants.ROLE_COOK, OpBillView, false},
		{"cook creates reservations", constants.ROLE_COOK, OpReservationCreate, true},
		{"unknown role", "recepcionista", OpOrderCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := Allows(tt.role, tt.op); got != tt.allowed {
				t.Errorf("Allows(%q, %q) = %v, want %v", tt.role, tt.op, got, tt.allowed)
			}
		})
	}
}

func TestAllowsOrderState(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		state   string
		allowed bool
	}{
		{"cook sets preparing", constants.ROLE_COOK, constants.ORDER_PREPARING, true},
		{"cook sets ready", constants.ROLE_COOK, constants.ORDER_READY, true},
		{"cook cannot deliver", constants.ROLE_COOK, constants.ORDER_DELIVERED, false},
		{"cook cannot cancel", constants.ROLE_COOK, constants.ORDER_CANCELED, false},
		{"cook cannot reset to received", constants.ROLE_COOK, constants.ORDER_RECEIVED, false},
		{"waiter delivers", constants.ROLE_WAITER, constants.ORDER_DELIVERED, true},
		{"waiter cancels", constants.ROLE_WAITER, constants.ORDER_CANCELED, true},
		{"admin delivers", constants.ROLE_ADMIN, constants.ORDER_DELIVERED, true},
		{"unknown role", "recepcionista", constants.ORDER_READY, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowsOrderState(tt.role, tt.state); got != tt.allowed {
				t.Errorf("AllowsOrderState(%q, %q) = %v, want %v", tt.role, tt.state, got, tt.allowed)
			}
		})
	}
}

// The kitchen console may only move a line between cooking states. Adding,
// editing, or removing lines stays with the waiter who owns the order and the
// admin.
func TestCookLimitedToLineStates(t *testing.T) {
	if _, ok := Allows(constants.ROLE_COOK, OpOrderItemsManage); ok {
		t.Error("cook must not pass the line-management gate")
	}

	cap, ok := Allows(constants.ROLE_COOK, OpOrderItemStatus)
	if !ok {
		t.Fatal("cook should be allowed to update line states")
	}
	if len(cap.OrderStates) != 2 {
		t.Errorf("cook line states = %v, want en_preparacion and listo only", cap.OrderStates)
	}

	tests := []struct {
		name    string
		role    string
		state   string
		allowed bool
	}{
		{"cook marks line preparing", constants.ROLE_COOK, constants.ORDER_PREPARING, true},
		{"cook marks line ready", constants.ROLE_COOK, constants.ORDER_READY, true},
		{"cook cannot deliver line", constants.ROLE_COOK, constants.ORDER_DELIVERED, false},
		{"cook cannot cancel line", constants.ROLE_COOK, constants.ORDER_CANCELED, false},
		{"waiter delivers line", constants.ROLE_WAITER, constants.ORDER_DELIVERED, true},
		{"admin cancels line", constants.ROLE_ADMIN, constants.ORDER_CANCELED, true},
		{"unknown role", "recepcionista", constants.ORDER_READY, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowsOrderItemState(tt.role, tt.state); got != tt.allowed {
				t.Errorf("AllowsOrderItemState(%q, %q) = %v, want %v", tt.role, tt.state, got, tt.allowed)
			}
		})
	}
}

func TestAllowsTableField(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		field   string
		allowed bool
	}{
		{"waiter changes status", constants.ROLE_WAITER, "status", true},
		{"waiter sets payment method", constants.ROLE_WAITER, "paymentMethod", true},
		{"waiter cannot renumber", constants.ROLE_WAITER, "number", false},
		{"waiter cannot resize", constants.ROLE_WAITER, "capacity", false},
		{"admin renumbers", constants.ROLE_ADMIN, "number", true},
		{"cook cannot touch tables", constants.ROLE_COOK, "status", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowsTableField(tt.role, tt.field); got != tt.allowed {
				t.Errorf("AllowsTableField(%q, %q) = %v, want %v", tt.role, tt.field, got, tt.allowed)
			}
		})
	}
}

func TestWaiterScopedToOwnOrdersAndBills(t *testing.T) {
	for _, op := range []Operation{OpOrderUpdate, OpOrderItemsManage, OpOrderItemStatus, OpBillView, OpBillUpdate} {
		cap, ok := Allows(constants.ROLE_WAITER, op)
		if !ok {
			t.Fatalf("waiter should be allowed %q", op)
		}
		if !cap.OwnOnly {
			t.Errorf("waiter capability for %q should be own-only", op)
		}
	}

	cap, ok := Allows(constants.ROLE_ADMIN, OpOrderUpdate)
	if !ok || cap.OwnOnly {
		t.Error("admin order updates must not be own-only")
	}
}
