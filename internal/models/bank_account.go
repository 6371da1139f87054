package models

import "github.com/shopspring/decimal"

// BankAccount holds a cached balance derived from its paid entries.
type BankAccount struct {
	BankAccountID  string          `db:"bank_account_id"`
	Name           string          `db:"name"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
