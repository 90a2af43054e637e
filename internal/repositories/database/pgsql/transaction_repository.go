package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/money_tracker/internal/models"
	"github.com/SscSPs/money_tracker/internal/utils/mapping"
	"github.com/SscSPs/money_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, user_id, value, date, transaction_type, transaction_source,
	account_id, credit_card_id, category_id, subcategory_id,
	is_installment, total_months, is_recurring, payment_day, observation, active,
	created_at, created_by, updated_at, updated_by, version`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger rows.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Value,
		&m.Date,
		&m.TransactionType,
		&m.TransactionSource,
		&m.AccountID,
		&m.CreditCardID,
		&m.CategoryID,
		&m.SubcategoryID,
		&m.IsInstallment,
		&m.TotalMonths,
		&m.IsRecurring,
		&m.PaymentDay,
		&m.Observation,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction row without tags.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByIDForUpdate reads the row and holds its lock until tx ends.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE;`

	m, err := scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %d: %w", id, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// filterClause renders the WHERE conditions for filter, numbering
// placeholders from $1.
func filterClause(filter portsrepo.TransactionFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{filter.UserID}
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.AccountID != nil {
		add("account_id = $%d", *filter.AccountID)
	}
	if filter.CreditCardID != nil {
		add("credit_card_id = $%d", *filter.CreditCardID)
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		add("subcategory_id = $%d", *filter.SubcategoryID)
	}
	if filter.TransactionType != nil {
		add("transaction_type = $%d", string(*filter.TransactionType))
	}
	if filter.TransactionSource != nil {
		add("transaction_source = $%d", string(*filter.TransactionSource))
	}
	if filter.From != nil {
		add("date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("date <= $%d", *filter.To)
	}
	if filter.Active != nil {
		add("active = $%d", *filter.Active)
	}
	return strings.Join(conds, " AND "), args
}

// ListTransactions retrieves one page using keyset pagination on (date, id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.ClampLimit(limit)
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	where, args := filterClause(filter)
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastDate, lastID)
		where += fmt.Sprintf(" AND (date, id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where +
		` ORDER BY date DESC, id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for user %d: %w", filter.UserID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.ID)
		nextTokenVal = &token
	}
	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// CountTransactions counts rows matching filter.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	where, args := filterClause(filter)
	query := `SELECT COUNT(*) FROM transactions WHERE ` + where + `;`

	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for user %d: %w", filter.UserID, err)
	}
	return count, nil
}

// InsertTransactionInTx inserts a new row and returns the generated id.
func (r *PgxTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			user_id, value, date, transaction_type, transaction_source,
			account_id, credit_card_id, category_id, subcategory_id,
			is_installment, total_months, is_recurring, payment_day, observation, active,
			created_at, created_by, updated_at, updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id;
	`
	var id int64
	err := tx.QueryRow(ctx, query,
		m.UserID,
		m.Value,
		m.Date,
		m.TransactionType,
		m.TransactionSource,
		m.AccountID,
		m.CreditCardID,
		m.CategoryID,
		m.SubcategoryID,
		m.IsInstallment,
		m.TotalMonths,
		m.IsRecurring,
		m.PaymentDay,
		m.Observation,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err, "failed to insert transaction for user %d", m.UserID)
	}
	return id, nil
}

// UpdateTransactionInTx overwrites the mutable columns and bumps the version.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions SET
			user_id = $2, value = $3, date = $4, transaction_type = $5, transaction_source = $6,
			account_id = $7, credit_card_id = $8, category_id = $9, subcategory_id = $10,
			is_installment = $11, total_months = $12, is_recurring = $13, payment_day = $14,
			observation = $15, active = $16, updated_at = $17, updated_by = $18,
			version = version + 1
		WHERE id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Value,
		m.Date,
		m.TransactionType,
		m.TransactionSource,
		m.AccountID,
		m.CreditCardID,
		m.CategoryID,
		m.SubcategoryID,
		m.IsInstallment,
		m.TotalMonths,
		m.IsRecurring,
		m.PaymentDay,
		m.Observation,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update transaction %d", m.ID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionInTx removes the row. Tag links go with it via ON DELETE CASCADE.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, id int64) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
