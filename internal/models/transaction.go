package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
// Nullable columns are pointers; exactly one of AccountID and CreditCardID is set.
type Transaction struct {
	ID                int64           `db:"id"`
	UserID            int64           `db:"user_id"`
	Value             decimal.Decimal `db:"value"` // NUMERIC(14,2)
	Date              time.Time       `db:"date"`
	TransactionType   string          `db:"transaction_type"`
	TransactionSource string          `db:"transaction_source"`
	AccountID         *int64          `db:"account_id"`
	CreditCardID      *int64          `db:"credit_card_id"`
	CategoryID        *int64          `db:"category_id"`
	SubcategoryID     *int64          `db:"subcategory_id"`
	IsInstallment     bool            `db:"is_installment"`
	TotalMonths       *int32          `db:"total_months"`
	IsRecurring       bool            `db:"is_recurring"`
	PaymentDay        *int32          `db:"payment_day"`
	Observation       *string         `db:"observation"`
	Active            bool            `db:"active"`
	AuditFields
}
