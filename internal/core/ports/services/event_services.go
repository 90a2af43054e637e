package services

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
)

// LedgerEventPublisher announces committed ledger changes to other systems.
type LedgerEventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error
	Close() error
}
