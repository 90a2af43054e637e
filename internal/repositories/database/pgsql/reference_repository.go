package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/money_tracker/internal/models"
	"github.com/SscSPs/money_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, user_id, name, active, created_at, created_by, updated_at, updated_by, version
		FROM categories
		WHERE id = $1;
	`
	var m models.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Active,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %d: %w", id, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

type PgxSubcategoryRepository struct {
	pool *pgxpool.Pool
}

func newPgxSubcategoryRepository(pool *pgxpool.Pool) portsrepo.SubcategoryRepository {
	return &PgxSubcategoryRepository{pool: pool}
}

var _ portsrepo.SubcategoryRepository = (*PgxSubcategoryRepository)(nil)

func (r *PgxSubcategoryRepository) FindSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error) {
	query := `
		SELECT id, user_id, category_id, name, active, created_at, created_by, updated_at, updated_by, version
		FROM subcategories
		WHERE id = $1;
	`
	var m models.Subcategory
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.CategoryID, &m.Name, &m.Active,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subcategory by ID %d: %w", id, err)
	}
	sub := mapping.ToDomainSubcategory(m)
	return &sub, nil
}

type PgxTagRepository struct {
	pool *pgxpool.Pool
}

func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepository {
	return &PgxTagRepository{pool: pool}
}

var _ portsrepo.TagRepository = (*PgxTagRepository)(nil)

// FindActiveTagsByIDs returns the subset of ids that are active tags of userID.
func (r *PgxTagRepository) FindActiveTagsByIDs(ctx context.Context, userID int64, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	query := `
		SELECT id, user_id, name, active
		FROM tags
		WHERE user_id = $1 AND id = ANY($2) AND active
		ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for user %d: %w", userID, err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0, len(ids))
	for rows.Next() {
		var m models.Tag
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, mapping.ToDomainTag(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

type PgxTransactionTagRepository struct {
	pool *pgxpool.Pool
}

func newPgxTransactionTagRepository(pool *pgxpool.Pool) portsrepo.TransactionTagRepository {
	return &PgxTransactionTagRepository{pool: pool}
}

var _ portsrepo.TransactionTagRepository = (*PgxTransactionTagRepository)(nil)

func (r *PgxTransactionTagRepository) DeleteTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete tags of transaction %d: %w", transactionID, err)
	}
	return nil
}

// InsertTransactionTagsInTx links every tag in one batch round trip.
func (r *PgxTransactionTagRepository) InsertTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2);`, transactionID, tagID)
	}

	br := tx.SendBatch(ctx, batch)
	// Close the batch results to surface errors from any queued insert.
	if err := br.Close(); err != nil {
		return mapPgError(err, "failed to link tags to transaction %d", transactionID)
	}
	return nil
}

// FindTagsByTransactionIDs loads the tags of many transactions in one query.
func (r *PgxTransactionTagRepository) FindTagsByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Tag, error) {
	if len(transactionIDs) == 0 {
		return map[int64][]domain.Tag{}, nil
	}
	query := `
		SELECT tt.transaction_id, t.id, t.user_id, t.name, t.active
		FROM transaction_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.transaction_id = ANY($1)
		ORDER BY tt.transaction_id, t.id;
	`
	rows, err := r.pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction tags: %w", err)
	}
	defer rows.Close()

	var links []models.TransactionTag
	for rows.Next() {
		var m models.TransactionTag
		if err := rows.Scan(&m.TransactionID, &m.ID, &m.UserID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan transaction tag row: %w", err)
		}
		links = append(links, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction tag rows: %w", err)
	}
	return mapping.GroupTagsByTransaction(links), nil
}
