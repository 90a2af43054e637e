package services

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
// Reads run outside any atomic scope.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction owned by userID with its tags.
	GetTransactionByID(ctx context.Context, userID int64, id int64) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a page of the user's transactions.
	ListTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByAccount retrieves a page of transactions recorded against an account.
	ListTransactionsByAccount(ctx context.Context, userID int64, accountID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByCreditCard retrieves a page of transactions recorded against a credit card.
	ListTransactionsByCreditCard(ctx context.Context, userID int64, creditCardID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// CountTransactionsByUser counts the user's transactions matching params filters.
	CountTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (int64, error)
}

// TransactionWriterSvc defines balance-affecting operations. Each runs in one
// atomic scope covering the row, the holder balance and the tag links.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID int64, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID int64, id int64) (*domain.DeletedTransaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
