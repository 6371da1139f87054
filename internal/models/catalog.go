package models

import "github.com/shopspring/decimal"

// ProductService is a catalog row: a bookable service or a sellable product.
type ProductService struct {
	ServiceID           string          `db:"service_id"`
	Name                string          `db:"name"`
	Kind                string          `db:"kind"`
	SalePrice           decimal.Decimal `db:"sale_price"`
	DurationMinutes     int             `db:"duration_minutes"`
	IsActive            bool            `db:"is_active"`
	AvailableForBooking bool            `db:"available_for_booking"`
	AuditFields
}

// Patient represents a person receiving care.
type Patient struct {
	PatientID string `db:"patient_id"`
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// Room is a physical space appointments can be assigned to.
type Room struct {
	RoomID   string `db:"room_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
