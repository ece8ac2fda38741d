package model

type Table struct {
	DTO
	Number   uint   `gorm:"uniqueIndex;not null" validate:"required,min=1" json:"number"`
	Capacity int    `gorm:"not null" validate:"required,min=1" json:"capacity"`
	Location string `json:"location"`
	Status   string `gorm:"not null;default:libre" json:"status"`

	Orders       []Order       `gorm:"foreignKey:TableId" json:"-"`
	Reservations []Reservation `gorm:"foreignKey:TableId" json:"-"`
}

type CreateTableInput struct {
	Number   uint   `json:"number" validate:"required,min=1"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Location string `json:"location"`
}

type UpdateTableInput struct {
	Number   *uint   `json:"number" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Location *string `json:"location"`
	Status   *string `json:"status" validate:"omitempty,oneof=libre ocupada reservada mantenimiento"`
	// Payment method for the bill generated when the update closes the table.
	PaymentMethod *string `json:"paymentMethod"`
}

type FilterTable struct {
	Pagination
	Status *string `query:"status"`
}
