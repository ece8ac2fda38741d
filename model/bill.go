package model

import "time"

// Bill is the immutable charge snapshot produced when an occupied table closes.
// Table and waiter references are nullable so the record survives their deletion;
// the number and name columns keep the historical values.
type Bill struct {
	DTO
	TableId     *uint     `json:"tableId"`
	TableNumber uint      `gorm:"not null" json:"tableNumber"`
	WaiterId    *uint     `json:"waiterId"`
	WaiterName  string    `gorm:"not null" json:"waiterName"`
	ChargedAt   time.Time `gorm:"not null;index" json:"chargedAt"`
	Total       float64   `gorm:"not null" json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
	// Serialized line-item snapshot, decoded tolerantly on read.
	Details string `gorm:"type:text;not null" json:"-"`

	Table  *Table `gorm:"foreignKey:TableId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Waiter *User  `gorm:"foreignKey:WaiterId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// BillItem is one flattened order line inside a bill snapshot. The field names
// are the persisted wire format and must stay stable across releases.
type BillItem struct {
	OrderId     uint    `json:"pedido_id"`
	ProductId   uint    `json:"producto_id"`
	ProductName string  `json:"nombre_producto"`
	Quantity    int     `json:"cantidad"`
	UnitPrice   float64 `json:"precio_unitario"`
	Subtotal    float64 `json:"subtotal"`
	Notes       string  `json:"observaciones"`
}

// BillResponse is a Bill with its snapshot decoded for API consumers.
type BillResponse struct {
	Bill
	Items []BillItem `json:"items"`
}

type UpdateBillInput struct {
	PaymentMethod *string `json:"paymentMethod" validate:"required"`
}

type FilterBill struct {
	Pagination
	DateFrom *time.Time `query:"dateFrom"`
	DateTo   *time.Time `query:"dateTo"`
	TableId  *uint      `query:"tableId"`
	WaiterId *uint      `query:"waiterId"`
}

// BillSummary is the admin revenue report over a period.
type BillSummary struct {
	DateFrom     time.Time                  `json:"dateFrom"`
	DateTo       time.Time                  `json:"dateTo"`
	TotalRevenue float64                    `json:"totalRevenue"`
	TotalBills   int64                      `json:"totalBills"`
	AveragePerBill float64                  `json:"averagePerBill"`
	ByWaiter     map[string]WaiterBreakdown `json:"byWaiter"`
}

type WaiterBreakdown struct {
	Total   float64 `json:"total"`
	Bills   int64   `json:"bills"`
	Average float64 `json:"average"`
}
