package model

import "time"

type Reservation struct {
	DTO
	CustomerFirstName string    `gorm:"not null" json:"customerFirstName"`
	CustomerLastName  string    `gorm:"not null" json:"customerLastName"`
	CustomerPhone     string    `gorm:"not null" json:"customerPhone"`
	CustomerEmail     string    `json:"customerEmail"`
	Date              time.Time `gorm:"not null;index" json:"date"`
	Duration          int       `gorm:"not null;default:120" json:"duration"`
	PartySize         int       `gorm:"not null" json:"partySize"`
	Status            string    `gorm:"not null;default:pendiente" json:"status"`
	TableId           *uint     `json:"tableId"`
	Table             *Table    `gorm:"foreignKey:TableId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Notes             string    `json:"notes"`
}

// CustomerName is the display form used in event payloads.
func (r Reservation) CustomerName() string {
	return r.CustomerFirstName + " " + r.CustomerLastName
}

type CreateReservationInput struct {
	CustomerFirstName string    `json:"customerFirstName" validate:"required"`
	CustomerLastName  string    `json:"customerLastName" validate:"required"`
	CustomerPhone     string    `json:"customerPhone" validate:"required"`
	CustomerEmail     string    `json:"customerEmail" validate:"omitempty,email"`
	Date              time.Time `json:"date" validate:"required"`
	Duration          int       `json:"duration"`
	PartySize         int       `json:"partySize" validate:"required"`
	TableId           *uint     `json:"tableId"`
	Notes             string    `json:"notes"`
}

type UpdateReservationInput struct {
	CustomerFirstName *string    `json:"customerFirstName"`
	CustomerLastName  *string    `json:"customerLastName"`
	CustomerPhone     *string    `json:"customerPhone"`
	CustomerEmail     *string    `json:"customerEmail" validate:"omitempty,email"`
	Date              *time.Time `json:"date"`
	Duration          *int       `json:"duration"`
	PartySize         *int       `json:"partySize"`
	Status            *string    `json:"status" validate:"omitempty,oneof=pendiente confirmada cancelada completada cliente_llego cliente_no_llego"`
	TableId           *uint      `json:"tableId"`
	Notes             *string    `json:"notes"`
}

type FilterReservation struct {
	Pagination
	Status   *string    `query:"status"`
	DateFrom *time.Time `query:"dateFrom"`
	DateTo   *time.Time `query:"dateTo"`
	TableId  *uint      `query:"tableId"`
}
