package accounting

import (
	"math"
	"strings"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the sign a transaction contributes to its holder's balance.
//
//	ACCOUNT:     INCOME -> +amount, EXPENSE -> -amount
//	CREDIT_CARD: EXPENSE -> +amount (charge raises debt), INCOME -> -amount (payment lowers it)
//
// Unknown source/type combinations contribute zero so the function stays total.
func SignedAmount(source domain.TransactionSource, txType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch source {
	case domain.SourceAccount:
		switch txType {
		case domain.Income:
			return amount
		case domain.Expense:
			return amount.Neg()
		}
	case domain.SourceCreditCard:
		switch txType {
		case domain.Expense:
			return amount
		case domain.Income:
			return amount.Neg()
		}
	}
	return decimal.Zero
}

// Contribution is the delta an existing transaction currently contributes to
// its holder. Inactive transactions contribute nothing.
func Contribution(txn domain.Transaction) decimal.Decimal {
	if !txn.Active {
		return decimal.Zero
	}
	return SignedAmount(txn.TransactionSource, txn.TransactionType, RoundCents(txn.Value))
}

// RoundCents rounds to two fractional digits, ties away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatAmount renders amount with exactly two fractional digits.
func FormatAmount(amount decimal.Decimal) string {
	return RoundCents(amount).StringFixed(2)
}

// NormalizeAmount turns loosely typed numeric input into a rounded decimal.
// Missing or unparseable input becomes zero.
func NormalizeAmount(raw any) decimal.Decimal {
	var amount decimal.Decimal
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		amount = *v
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		amount = parsed
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		amount = decimal.NewFromFloat(v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero
		}
		amount = decimal.NewFromFloat32(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	case int32:
		amount = decimal.NewFromInt32(v)
	default:
		return decimal.Zero
	}
	return RoundCents(amount)
}
