package model

import "time"

type Order struct {
	DTO
	PublicCode string  `gorm:"unique;size:20" json:"publicCode"`
	TableId    *uint   `json:"tableId"`
	Table      *Table  `gorm:"foreignKey:TableId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	WaiterId   uint    `json:"waiterId"`
	Waiter     User    `gorm:"foreignKey:WaiterId" json:"waiter"`
	Status     string  `gorm:"not null;default:recibido" json:"status"`
	Total      float64 `gorm:"not null;default:0" json:"total"`
	Notes      string  `json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	DTO
	OrderId   uint    `gorm:"not null;index" json:"orderId"`
	ProductId *uint   `json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`
	Subtotal  float64 `gorm:"not null" json:"subtotal"`
	Status    string  `gorm:"not null;default:recibido" json:"status"`
	Notes     string  `json:"notes"`
}

type CreateOrderItemInput struct {
	ProductId uint   `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

type CreateOrderInput struct {
	TableId uint                   `json:"tableId" validate:"required"`
	Notes   string                 `json:"notes"`
	Items   []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	Status *string `json:"status" validate:"omitempty,oneof=recibido en_preparacion listo entregado cancelado"`
	Notes  *string `json:"notes"`
}

type UpdateOrderItemInput struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"`
	Status   *string `json:"status" validate:"omitempty,oneof=recibido en_preparacion listo entregado cancelado"`
	Notes    *string `json:"notes"`
}

type FilterOrder struct {
	Pagination
	Status    *string    `query:"status"`
	DateFrom  *time.Time `query:"dateFrom"`
	DateTo    *time.Time `query:"dateTo"`
	TableId   *uint      `query:"tableId"`
	WaiterId  *uint      `query:"waiterId"`
	OnlyOpen  *bool      `query:"onlyOpen"`
}
