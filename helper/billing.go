package helper

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuildBillItems flattens the lines of the given orders into a billing
// snapshot and returns it with the summed total. Orders without lines are
// skipped. Product names are snapshotted so the items survive product
// deletion; lines whose product is already gone fall back to their annotation.
func BuildBillItems(orders []model.Order) ([]model.BillItem, float64) {
	items := []model.BillItem{}
	total := 0.0

	for _, order := range orders {
		for _, line := range order.Items {
			item := model.BillItem{
				OrderId:   order.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  line.Subtotal,
				Notes:     line.Notes,
			}
			if line.Product != nil {
				item.ProductId = line.Product.ID
				item.ProductName = line.Product.Name
			} else if line.Notes != "" {
				item.ProductName = line.Notes
			} else {
				item.ProductName = "producto eliminado"
			}
			items = append(items, item)
			total += line.Subtotal
		}
	}

	return items, total
}

// EncodeBillItems serializes a snapshot for storage.
func EncodeBillItems(items []model.BillItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBillItems turns whatever the store returns for a bill snapshot into a
// valid item list: nil becomes empty, an already-structured list is returned
// as is, a JSON-encoded string is parsed, a single JSON object becomes a
// one-element list, and anything else (including malformed JSON) decodes to an
// empty list.
func DecodeBillItems(raw any) []model.BillItem {
	switch v := raw.(type) {
	case nil:
		return []model.BillItem{}
	case []model.BillItem:
		return v
	case string:
		return decodeItemsJSON([]byte(v))
	case []byte:
		return decodeItemsJSON(v)
	case []any:
		data, err := json.Marshal(v)
		if err != nil {
			return []model.BillItem{}
		}
		return decodeItemsJSON(data)
	default:
		return []model.BillItem{}
	}
}

func decodeItemsJSON(data []byte) []model.BillItem {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return []model.BillItem{}
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []model.BillItem
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			log.Printf("failed to decode bill snapshot: %v", err)
			return []model.BillItem{}
		}
		if items == nil {
			items = []model.BillItem{}
		}
		return items
	}

	if strings.HasPrefix(trimmed, "{") {
		var item model.BillItem
		if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
			log.Printf("failed to decode bill snapshot: %v", err)
			return []model.BillItem{}
		}
		return []model.BillItem{item}
	}

	return []model.BillItem{}
}

// CloseTable is the single orchestration path for the OCCUPIED→FREE
// transition, whether it is driven by an explicit table update or by the last
// order on the table going terminal. Inside one transaction it re-reads the
// table row with a row lock, gathers every non-canceled order still bound to
// the table, marks them delivered and detaches them, and frees the table. The
// bill is written after commit; a billing failure is logged and never undoes
// the closure. Returns the closed orders and the bill, nil when no bill was
// due or when the table was no longer occupied.
func CloseTable(db *gorm.DB, tableID uint, actor model.User, paymentMethod string) ([]model.Order, *model.Bill, error) {
	var table model.Table
	var orders []model.Order
	var items []model.BillItem
	var total float64
	closed := false

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, tableID).Error; err != nil {
			return err
		}
		if table.Status != constants.TABLE_OCCUPIED {
			return nil
		}

		if err := tx.Preload("Items.Product").
			Where("table_id = ? AND status <> ?", table.ID, constants.ORDER_CANCELED).
			Find(&orders).Error; err != nil {
			return err
		}
		items, total = BuildBillItems(orders)

		for i := range orders {
			if err := tx.Model(&model.Order{}).Where("id = ?", orders[i].ID).
				Updates(map[string]any{"status": constants.ORDER_DELIVERED, "table_id": nil}).Error; err != nil {
				return err
			}
			orders[i].Status = constants.ORDER_DELIVERED
			orders[i].TableId = nil
		}

		if err := tx.Model(&table).Update("status", constants.TABLE_FREE).Error; err != nil {
			return err
		}
		closed = true
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !closed || total <= 0 {
		return orders, nil, nil
	}

	details, err := EncodeBillItems(items)
	if err != nil {
		log.Printf("billing failed for table %d: %v", table.Number, err)
		return orders, nil, nil
	}
	bill := model.Bill{
		TableId:       &table.ID,
		TableNumber:   table.Number,
		WaiterId:      &actor.ID,
		WaiterName:    actor.FullName(),
		ChargedAt:     time.Now().UTC(),
		Total:         total,
		PaymentMethod: paymentMethod,
		Details:       details,
	}
	if err := db.Create(&bill).Error; err != nil {
		log.Printf("billing failed for table %d: %v", table.Number, err)
		return orders, nil, nil
	}
	return orders, &bill, nil
}
