package domain_test

import (
	"testing"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestComputeCommission_Sublease(t *testing.T) {
	p := domain.Partner{PartnerID: "p1", PartnershipType: domain.PartnershipSublease}

	res, err := p.ComputeCommission(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, res.Amount.IsZero())
	assert.False(t, res.CreatesExpenseEntry)
}

func TestComputeCommission_PercentageRate(t *testing.T) {
	p := domain.Partner{
		PartnerID:       "p1",
		PartnershipType: domain.PartnershipPercentage,
		PercentageRate:  decimalPtr(decimal.NewFromInt(20)),
	}

	res, err := p.ComputeCommission(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(20)), "got %s", res.Amount)
	assert.True(t, res.ClinicShare.Equal(decimal.NewFromInt(80)))
	assert.True(t, res.CreatesExpenseEntry)
}

func TestComputeCommission_PercentageFlatAmount(t *testing.T) {
	p := domain.Partner{
		PartnerID:        "p1",
		PartnershipType:  domain.PartnershipPercentage,
		PercentageAmount: decimalPtr(decimal.NewFromInt(35)),
	}

	res, err := p.ComputeCommission(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(35)))
	assert.True(t, res.CreatesExpenseEntry)
}

func TestComputeCommission_PercentageNothingConfigured(t *testing.T) {
	p := domain.Partner{PartnerID: "p1", PartnershipType: domain.PartnershipPercentage}

	res, err := p.ComputeCommission(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, res.Amount.IsZero())
	assert.False(t, res.CreatesExpenseEntry)
}

func TestComputeCommission_PercentageWithProducts(t *testing.T) {
	p := domain.Partner{
		PartnerID:       "p1",
		PartnershipType: domain.PartnershipPercentageWithProducts,
		PercentageRate:  decimalPtr(decimal.NewFromInt(40)),
	}

	res, err := p.ComputeCommission(decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, res.ClinicShare.Equal(decimal.NewFromInt(80)))
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(120)))
	// Remainder is reported only, never posted as an expense entry.
	assert.False(t, res.CreatesExpenseEntry)
}

func TestComputeCommission_PercentageWithProductsDefaultShare(t *testing.T) {
	p := domain.Partner{PartnerID: "p1", PartnershipType: domain.PartnershipPercentageWithProducts}

	res, err := p.ComputeCommission(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, res.ClinicShare.Equal(decimal.NewFromInt(30)), "default clinic share is 30%%, got %s", res.ClinicShare)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(70)))
}

func TestComputeCommission_UnknownType(t *testing.T) {
	p := domain.Partner{PartnerID: "p1", PartnershipType: "FRANCHISE"}

	_, err := p.ComputeCommission(decimal.NewFromInt(100))
	assert.Error(t, err)
}
