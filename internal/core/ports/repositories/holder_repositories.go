package repositories

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceHolderWriter is the only path through which a holder balance changes.
type BalanceHolderWriter interface {
	// ApplyBalanceDeltaInTx adds delta to the stored balance, rounded to cents.
	// It returns apperrors.ErrBalanceInvariant when the holder row does not exist.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, holderID int64, delta decimal.Decimal) error
}

// AccountRepository reads accounts and mutates their balance.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, id int64) (*domain.Account, error)
	BalanceHolderWriter
}

// CreditCardRepository reads credit cards and mutates their balance.
type CreditCardRepository interface {
	FindCreditCardByID(ctx context.Context, id int64) (*domain.CreditCard, error)
	BalanceHolderWriter
}
