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
	"github.com/shopspring/decimal"
)

// applyBalanceDelta is shared by both holder tables. The rounding happens in
// SQL so concurrent deltas compose on the stored value, not on a stale read.
func applyBalanceDelta(ctx context.Context, tx pgx.Tx, table string, holderID int64, delta decimal.Decimal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance = ROUND(balance + $2, 2), updated_at = NOW()
		WHERE id = $1;
	`, table)

	cmdTag, err := tx.Exec(ctx, query, holderID, delta)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta to %s %d: %w", table, holderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d does not exist", apperrors.ErrBalanceInvariant, table, holderID)
	}
	return nil
}

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `
		SELECT id, user_id, name, bank_name, balance, active, created_at, created_by, updated_at, updated_by, version
		FROM accounts
		WHERE id = $1;
	`
	var m models.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.BankName,
		&m.Balance,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", id, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *PgxAccountRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, holderID int64, delta decimal.Decimal) error {
	return applyBalanceDelta(ctx, tx, "accounts", holderID, delta)
}

type PgxCreditCardRepository struct {
	pool *pgxpool.Pool
}

// newPgxCreditCardRepository creates a new repository for credit card data.
func newPgxCreditCardRepository(pool *pgxpool.Pool) portsrepo.CreditCardRepository {
	return &PgxCreditCardRepository{pool: pool}
}

var _ portsrepo.CreditCardRepository = (*PgxCreditCardRepository)(nil)

// FindCreditCardByID retrieves a credit card by its ID.
func (r *PgxCreditCardRepository) FindCreditCardByID(ctx context.Context, id int64) (*domain.CreditCard, error) {
	query := `
		SELECT id, user_id, name, credit_limit, closing_day, due_day, balance, active,
		       created_at, created_by, updated_at, updated_by, version
		FROM credit_cards
		WHERE id = $1;
	`
	var m models.CreditCard
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.CreditLimit,
		&m.ClosingDay,
		&m.DueDay,
		&m.Balance,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit card by ID %d: %w", id, err)
	}

	card := mapping.ToDomainCreditCard(m)
	return &card, nil
}

func (r *PgxCreditCardRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, holderID int64, delta decimal.Decimal) error {
	return applyBalanceDelta(ctx, tx, "credit_cards", holderID, delta)
}
