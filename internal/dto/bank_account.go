package dto

import (
	"time"

	"github.com/praxisdesk/clinic_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to open a bank account.
type CreateBankAccountRequest struct {
	Name           string           `json:"name" binding:"required"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

// RecalculateBalanceRequest optionally resets the initial balance before the
// full recompute.
type RecalculateBalanceRequest struct {
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  a.BankAccountID,
		Name:           a.Name,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// ToBankAccountResponses converts a slice of accounts.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
