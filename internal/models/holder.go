package models

import "github.com/shopspring/decimal"

// Account is a row of the accounts table.
type Account struct {
	ID       int64           `db:"id"`
	UserID   int64           `db:"user_id"`
	Name     string          `db:"name"`
	BankName *string         `db:"bank_name"`
	Balance  decimal.Decimal `db:"balance"`
	Active   bool            `db:"active"`
	AuditFields
}

// CreditCard is a row of the credit_cards table.
type CreditCard struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Name        string          `db:"name"`
	CreditLimit decimal.Decimal `db:"credit_limit"`
	ClosingDay  *int32          `db:"closing_day"`
	DueDay      *int32          `db:"due_day"`
	Balance     decimal.Decimal `db:"balance"`
	Active      bool            `db:"active"`
	AuditFields
}
