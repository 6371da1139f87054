package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// defaultClinicShare is the clinic's cut for PERCENTAGE_WITH_PRODUCTS
// partners that have no rate configured.
var defaultClinicShare = decimal.NewFromInt(30)

var oneHundred = decimal.NewFromInt(100)

// CommissionResult is the outcome of computing a partner's commission for a
// completed appointment.
type CommissionResult struct {
	// Amount is what the partner is owed for this appointment.
	Amount decimal.Decimal `json:"amount"`
	// ClinicShare is what the clinic keeps. Only meaningful for
	// PERCENTAGE_WITH_PRODUCTS partners.
	ClinicShare decimal.Decimal `json:"clinicShare"`
	// CreatesExpenseEntry reports whether the commission should be posted
	// as an EXPENSE ledger entry. Sublease partners and
	// percentage-with-products remainders are reported only.
	CreatesExpenseEntry bool `json:"createsExpenseEntry"`
}

// ComputeCommission derives the partner's commission from the final checkout
// amount, branching once per partnership type.
func (p *Partner) ComputeCommission(finalAmount decimal.Decimal) (CommissionResult, error) {
	switch p.PartnershipType {
	case PartnershipSublease:
		// Fixed sublease fee is collected outside the checkout flow.
		return CommissionResult{Amount: decimal.Zero, ClinicShare: finalAmount}, nil

	case PartnershipPercentage:
		amount := decimal.Zero
		if p.PercentageRate != nil && p.PercentageRate.IsPositive() {
			amount = finalAmount.Mul(*p.PercentageRate).Div(oneHundred)
		} else if p.PercentageAmount != nil && p.PercentageAmount.IsPositive() {
			amount = *p.PercentageAmount
		}
		return CommissionResult{
			Amount:              amount,
			ClinicShare:         finalAmount.Sub(amount),
			CreatesExpenseEntry: amount.IsPositive(),
		}, nil

	case PartnershipPercentageWithProducts:
		rate := defaultClinicShare
		if p.PercentageRate != nil && p.PercentageRate.IsPositive() {
			rate = *p.PercentageRate
		}
		clinicShare := finalAmount.Mul(rate).Div(oneHundred)
		// The partner's remainder is reported, not posted: settlement for
		// product-selling partners happens in a separate monthly flow.
		return CommissionResult{
			Amount:      finalAmount.Sub(clinicShare),
			ClinicShare: clinicShare,
		}, nil

	default:
		return CommissionResult{}, fmt.Errorf("unknown partnership type %q for partner %s", p.PartnershipType, p.PartnerID)
	}
}
