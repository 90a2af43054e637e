package services

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TagAssociationSvc owns the transaction <-> tag links.
type TagAssociationSvc interface {
	// ReplaceTags swaps every link of transactionID for the deduplicated tagIDs
	// inside the caller's tx, returning the set that was stored.
	ReplaceTags(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) ([]int64, error)

	// RemoveTags drops every link of transactionID inside the caller's tx.
	RemoveTags(ctx context.Context, tx pgx.Tx, transactionID int64) error

	// AttachTags resolves tags for txns in one batched read. Transactions
	// without tags get an empty, non-nil slice.
	AttachTags(ctx context.Context, txns []domain.Transaction) ([]domain.Transaction, error)
}
