package helper

import "restaurant_manager/constants"

// Operation names a mutating action gated by the role matrix.
type Operation string

const (
	OpTableCreate       Operation = "table.create"
	OpTableUpdate       Operation = "table.update"
	OpTableDelete       Operation = "table.delete"
	OpOrderCreate       Operation = "order.create"
	OpOrderUpdate       Operation = "order.update"
	OpOrderItemsManage  Operation = "order.items.manage"
	OpOrderItemStatus   Operation = "order.items.status"
	OpReservationCreate Operation = "reservation.create"
	OpReservationManage Operation = "reservation.manage"
	OpMenuManage        Operation = "menu.manage"
	OpUserManage        Operation = "user.manage"
	OpBillView          Operation = "bill.view"
	OpBillUpdate        Operation = "bill.update"
	OpBillDelete        Operation = "bill.delete"
	OpBillSummary       Operation = "bill.summary"
)

// Capability describes what a role may do within one operation. Empty
// OrderStates/TableFields means unrestricted; OwnOnly scopes the operation to
// entities the actor owns.
type Capability struct {
	OrderStates []string
	TableFields []string
	OwnOnly     bool
}

// capabilities is the single role matrix every mutating operation consults.
var capabilities = map[string]map[Operation]Capability{
	constants.ROLE_ADMIN: {
		OpTableCreate:       {},
		OpTableUpdate:       {},
		OpTableDelete:       {},
		OpOrderCreate:       {},
		OpOrderUpdate:       {},
		OpOrderItemsManage:  {},
		OpOrderItemStatus:   {},
		OpReservationCreate: {},
		OpReservationManage: {},
		OpMenuManage:        {},
		OpUserManage:        {},
		OpBillView:          {},
		OpBillUpdate:        {},
		OpBillDelete:        {},
		OpBillSummary:       {},
	},
	constants.ROLE_WAITER: {
		OpTableUpdate:       {TableFields: []string{"status", "paymentMethod"}},
		OpOrderCreate:       {},
		OpOrderUpdate:       {OwnOnly: true},
		OpOrderItemsManage:  {OwnOnly: true},
		OpOrderItemStatus:   {OwnOnly: true},
		OpReservationCreate: {},
		OpReservationManage: {},
		OpBillView:          {OwnOnly: true},
		OpBillUpdate:        {OwnOnly: true},
	},
	// The kitchen never adds, edits, or removes lines; its only line power is
	// flipping the cooking state.
	constants.ROLE_COOK: {
		OpOrderUpdate:       {OrderStates: []string{constants.ORDER_PREPARING, constants.ORDER_READY}},
		OpOrderItemStatus:   {OrderStates: []string{constants.ORDER_PREPARING, constants.ORDER_READY}},
		OpReservationCreate: {},
	},
}

// Allows reports whether the role may perform the operation at all, and with
// which restrictions.
func Allows(role string, op Operation) (Capability, bool) {
	ops, ok := capabilities[role]
	if !ok {
		return Capability{}, false
	}
	cap, ok := ops[op]
	return cap, ok
}

// AllowsOrderState reports whether the role may move an order or line to the
// given target state.
func AllowsOrderState(role, state string) bool {
	cap, ok := Allows(role, OpOrderUpdate)
	if !ok {
		return false
	}
	if len(cap.OrderStates) == 0 {
		return true
	}
	for _, s := range cap.OrderStates {
		if s == state {
			return true
		}
	}
	return false
}

// AllowsOrderItemState reports whether the role may move an order line to the
// given target state.
func AllowsOrderItemState(role, state string) bool {
	cap, ok := Allows(role, OpOrderItemStatus)
	if !ok {
		return false
	}
	if len(cap.OrderStates) == 0 {
		return true
	}
	for _, s := range cap.OrderStates {
		if s == state {
			return true
		}
	}
	return false
}

// AllowsTableField reports whether the role may change the given table field.
func AllowsTableField(role, field string) bool {
	cap, ok := Allows(role, OpTableUpdate)
	if !ok {
		return false
	}
	if len(cap.TableFields) == 0 {
		return true
	}
	for _, f := range cap.TableFields {
		if f == field {
			return true
		}
	}
	return false
}
