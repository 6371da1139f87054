package dto

import (
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest defines the data needed to register a new partner.
type CreatePartnerRequest struct {
	Name             string                 `json:"name" binding:"required"`
	PartnershipType  domain.PartnershipType `json:"partnershipType" binding:"required,partnershiptype"`
	PercentageRate   *decimal.Decimal       `json:"percentageRate"`
	PercentageAmount *decimal.Decimal       `json:"percentageAmount"`
}

// WeeklyAvailabilityRequest is one weekday's working window.
type WeeklyAvailabilityRequest struct {
	Weekday    time.Weekday `json:"weekday" binding:"min=0,max=6"`
	StartTime  string       `json:"startTime" binding:"required,hhmm"`
	EndTime    string       `json:"endTime" binding:"required,hhmm"`
	BreakStart *string      `json:"breakStart" binding:"omitempty,hhmm"`
	BreakEnd   *string      `json:"breakEnd" binding:"omitempty,hhmm"`
}

// ReplaceAvailabilityRequest swaps a partner's whole weekly availability.
type ReplaceAvailabilityRequest struct {
	Entries []WeeklyAvailabilityRequest `json:"entries" binding:"required,dive"`
}

// BlockedDateRequest marks a day (or a window of it) as unavailable.
type BlockedDateRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	StartTime *string   `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string   `json:"endTime" binding:"omitempty,hhmm"`
	Reason    string    `json:"reason"`
}

// WeeklyAvailabilityResponse mirrors domain.WeeklyAvailability.
type WeeklyAvailabilityResponse struct {
	AvailabilityID string       `json:"availabilityID"`
	Weekday        time.Weekday `json:"weekday"`
	StartTime      string       `json:"startTime"`
	EndTime        string       `json:"endTime"`
	BreakStart     *string      `json:"breakStart,omitempty"`
	BreakEnd       *string      `json:"breakEnd,omitempty"`
	IsActive       bool         `json:"isActive"`
}

// BlockedDateResponse mirrors domain.BlockedDate.
type BlockedDateResponse struct {
	BlockedDateID string    `json:"blockedDateID"`
	Date          time.Time `json:"date"`
	StartTime     *string   `json:"startTime,omitempty"`
	EndTime       *string   `json:"endTime,omitempty"`
	Reason        string    `json:"reason"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID        string                       `json:"partnerID"`
	Name             string                       `json:"name"`
	PartnershipType  domain.PartnershipType       `json:"partnershipType"`
	PercentageRate   *decimal.Decimal             `json:"percentageRate,omitempty"`
	PercentageAmount *decimal.Decimal             `json:"percentageAmount,omitempty"`
	IsActive         bool                         `json:"isActive"`
	Availability     []WeeklyAvailabilityResponse `json:"availability,omitempty"`
	BlockedDates     []BlockedDateResponse        `json:"blockedDates,omitempty"`
	CreatedAt        time.Time                    `json:"createdAt"`
}

// ToBlockedDateResponse converts a domain.BlockedDate to its DTO.
func ToBlockedDateResponse(b *domain.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		BlockedDateID: b.BlockedDateID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Reason:        b.Reason,
	}
}

// ToPartnerResponse converts a domain.Partner to its response DTO.
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	availability := make([]WeeklyAvailabilityResponse, len(p.WeeklyAvailability))
	for i, w := range p.WeeklyAvailability {
		availability[i] = WeeklyAvailabilityResponse{
			AvailabilityID: w.AvailabilityID,
			Weekday:        w.Weekday,
			StartTime:      w.StartTime,
			EndTime:        w.EndTime,
			BreakStart:     w.BreakStart,
			BreakEnd:       w.BreakEnd,
			IsActive:       w.IsActive,
		}
	}
	blocked := make([]BlockedDateResponse, len(p.BlockedDates))
	for i := range p.BlockedDates {
		blocked[i] = ToBlockedDateResponse(&p.BlockedDates[i])
	}
	return PartnerResponse{
		PartnerID:        p.PartnerID,
		Name:             p.Name,
		PartnershipType:  p.PartnershipType,
		PercentageRate:   p.PercentageRate,
		PercentageAmount: p.PercentageAmount,
		IsActive:         p.IsActive,
		Availability:     availability,
		BlockedDates:     blocked,
		CreatedAt:        p.CreatedAt,
	}
}

// ToPartnerResponses converts a slice of partners.
func ToPartnerResponses(partners []domain.Partner) []PartnerResponse {
	res := make([]PartnerResponse, len(partners))
	for i := range partners {
		res[i] = ToPartnerResponse(&partners[i])
	}
	return res
}
