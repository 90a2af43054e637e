package repositories

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
}

type SubcategoryRepository interface {
	FindSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error)
}

type TagRepository interface {
	// FindActiveTagsByIDs returns the subset of ids that are active and owned by userID.
	FindActiveTagsByIDs(ctx context.Context, userID int64, ids []int64) ([]domain.Tag, error)
}

// TransactionTagRepository owns the transaction <-> tag link table.
type TransactionTagRepository interface {
	DeleteTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64) error
	InsertTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) error

	// FindTagsByTransactionIDs batches the read-side join; missing keys mean no tags.
	FindTagsByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Tag, error)
}
