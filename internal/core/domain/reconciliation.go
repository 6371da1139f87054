package domain

import "github.com/shopspring/decimal"

// CheckoutResult is the outcome of processing an appointment checkout: the
// revenue entry that was posted, the commission computation, and the expense
// entry when one was created.
type CheckoutResult struct {
	RevenueEntry    FinancialEntry   `json:"revenueEntry"`
	Commission      CommissionResult `json:"commission"`
	CommissionEntry *FinancialEntry  `json:"commissionEntry,omitempty"`
	FinalAmount     decimal.Decimal  `json:"finalAmount"`
	// Warnings carries non-fatal issues (e.g. no active bank account for
	// the commission entry). The checkout itself still succeeded.
	Warnings []string `json:"warnings,omitempty"`
}

// CancellationResult summarises a best-effort cancellation sweep over an
// appointment's financial entries. Partial success is reported through the
// counts, not through an error.
type CancellationResult struct {
	CancelledCount int             `json:"cancelledCount"`
	FailedCount    int             `json:"failedCount"`
	TotalReversed  decimal.Decimal `json:"totalReversed"`
}
