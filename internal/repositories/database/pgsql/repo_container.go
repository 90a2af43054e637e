package pgsql

import (
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		AccountRepo:        newPgxAccountRepository(dbPool),
		CreditCardRepo:     newPgxCreditCardRepository(dbPool),
		CategoryRepo:       newPgxCategoryRepository(dbPool),
		SubcategoryRepo:    newPgxSubcategoryRepository(dbPool),
		TagRepo:            newPgxTagRepository(dbPool),
		TransactionTagRepo: newPgxTransactionTagRepository(dbPool),
	}
}
