package domain

import "github.com/shopspring/decimal"

// ServiceKind distinguishes bookable services from retail products.
type ServiceKind string

const (
	KindService ServiceKind = "SERVICE"
	KindProduct ServiceKind = "PRODUCT"
)

// ProductService is a bookable service or sellable product in the clinic
// catalog.
type ProductService struct {
	ServiceID           string          `json:"serviceID"`
	Name                string          `json:"name"`
	Kind                ServiceKind     `json:"kind"`
	SalePrice           decimal.Decimal `json:"salePrice"`
	DurationMinutes     int             `json:"durationMinutes"`
	IsActive            bool            `json:"isActive"`
	AvailableForBooking bool            `json:"availableForBooking"`
	AuditFields
}

// Patient is a person receiving care.
type Patient struct {
	PatientID string `json:"patientID"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Room is a physical space appointments can be assigned to.
type Room struct {
	RoomID   string `json:"roomID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
