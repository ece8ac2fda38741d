package helper

import (
	"testing"

	"restaurant_manager/model"
	"restaurant_manager/utils"
)

func sampleOrders() []model.Order {
	beer := model.Product{DTO: model.DTO{ID: 7}, Name: "Cerveza", Price: 2.5}
	paella := model.Product{DTO: model.DTO{ID: 3}, Name: "Paella", Price: 12.0}

	return []model.Order{
		{
			DTO: model.DTO{ID: 1},
			Items: []model.OrderItem{
				{ProductId: utils.Ptr(beer.ID), Product: &beer, Quantity: 2, UnitPrice: 2.5, Subtotal: 5.0},
				{ProductId: utils.Ptr(paella.ID), Product: &paella, Quantity: 1, UnitPrice: 12.0, Subtotal: 12.0, Notes: "sin marisco"},
			},
		},
		{
			DTO: model.DTO{ID: 2},
			Items: []model.OrderItem{
				{Product: nil, Quantity: 1, UnitPrice: 3.0, Subtotal: 3.0, Notes: "Tarta de queso"},
			},
		},
	}
}

func TestBuildBillItems(t *testing.T) {
	items, total := BuildBillItems(sampleOrders())

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if total != 20.0 {
		t.Errorf("expected total 20.0, got %v", total)
	}
	if items[0].ProductName != "Cerveza" || items[0].OrderId != 1 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	// A line whose product is gone falls back to its annotation.
	if items[2].ProductName != "Tarta de queso" {
		t.Errorf("expected annotation fallback, got %q", items[2].ProductName)
	}
	if items[2].ProductId != 0 {
		t.Errorf("deleted product should keep zero id, got %d", items[2].ProductId)
	}
}

func TestBuildBillItemsEmpty(t *testing.T) {
	items, total := BuildBillItems(nil)
	if len(items) != 0 || total != 0 {
		t.Errorf("expected empty snapshot, got %d items, total %v", len(items), total)
	}

	items, total = BuildBillItems([]model.Order{{DTO: model.DTO{ID: 9}}})
	if len(items) != 0 || total != 0 {
		t.Errorf("order without lines should produce nothing, got %d items", len(items))
	}
}

func TestBuildBillItemsDeletedProductWithoutNotes(t *testing.T) {
	orders := []model.Order{{
		DTO:   model.DTO{ID: 4},
		Items: []model.OrderItem{{Quantity: 1, UnitPrice: 1.5, Subtotal: 1.5}},
	}}
	items, _ := BuildBillItems(orders)
	if items[0].ProductName != "producto eliminado" {
		t.Errorf("expected placeholder name, got %q", items[0].ProductName)
	}
}

func TestDecodeBillItems(t *testing.T) {
	structured := []model.BillItem{{OrderId: 1, ProductName: "Cerveza", Quantity: 2, Subtotal: 5.0}}

	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"nil", nil, 0},
		{"already structured", structured, 1},
		{"empty string", "", 0},
		{"null literal", "null", 0},
		{"json array", `[{"pedido_id":1,"nombre_producto":"Cerveza","cantidad":2,"subtotal":5}]`, 1},
		{"single object", `{"pedido_id":1,"nombre_producto":"Cerveza","cantidad":2}`, 1},
		{"byte slice", []byte(`[{"pedido_id":2,"cantidad":1}]`), 1},
		{"malformed json", `[{"pedido_id":`, 0},
		{"scalar", `42`, 0},
		{"unsupported type", 3.14, 0},
		{"generic slice", []any{map[string]any{"pedido_id": float64(1), "cantidad": float64(2)}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeBillItems(tt.raw)
			if got == nil {
				t.Fatal("decode must never return nil")
			}
			if len(got) != tt.want {
				t.Errorf("got %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDecodeBillItemsRoundTrip(t *testing.T) {
	items, total := BuildBillItems(sampleOrders())

	encoded, err := EncodeBillItems(items)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := DecodeBillItems(encoded)
	if len(decoded) != len(items) {
		t.Fatalf("round trip lost items: %d != %d", len(decoded), len(items))
	}

	sum := 0.0
	for i, item := range decoded {
		if item != items[i] {
			t.Errorf("item %d changed in round trip: %+v != %+v", i, item, items[i])
		}
		sum += item.Subtotal
	}
	if sum != total {
		t.Errorf("snapshot total drifted: %v != %v", sum, total)
	}
}
