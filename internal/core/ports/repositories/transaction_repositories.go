package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionFilter narrows list and count reads. UserID is always applied.
type TransactionFilter struct {
	UserID            int64
	AccountID         *int64
	CreditCardID      *int64
	CategoryID        *int64
	SubcategoryID     *int64
	TransactionType   *domain.TransactionType
	TransactionSource *domain.TransactionSource
	From              *time.Time
	To                *time.Time
	Active            *bool
}

// TransactionReader defines read operations on ledger rows outside any scope.
type TransactionReader interface {
	// FindTransactionByID returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns one page ordered by date then id, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CountTransactions counts rows matching filter.
	CountTransactions(ctx context.Context, filter TransactionFilter) (int64, error)
}

// TransactionWriter defines writes that must run inside a caller-owned pgx.Tx.
type TransactionWriter interface {
	// InsertTransactionInTx stores a new row and returns its generated id.
	InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (int64, error)

	// UpdateTransactionInTx overwrites the mutable columns and bumps the version.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes the row; apperrors.ErrNotFound when nothing was deleted.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, id int64) error

	// FindTransactionByIDForUpdate reads and row-locks a transaction until tx ends.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error)
}

// TransactionRepositoryWithTx is the ledger row store together with the atomic scope it drives.
type TransactionRepositoryWithTx interface {
	TransactionManager
	TransactionReader
	TransactionWriter
}
