package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/SscSPs/money_tracker/internal/middleware"
)

// LogPublisher stands in for a broker when none is configured and records
// each event at debug level.
type LogPublisher struct{}

var _ portssvc.LedgerEventPublisher = LogPublisher{}

func (LogPublisher) PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error {
	middleware.GetLoggerFromCtx(ctx).Debug("Ledger event",
		slog.String("event_type", string(event.Type)),
		slog.Int64("transaction_id", event.TransactionID),
		slog.Int("balance_changes", len(event.Changes)))
	return nil
}

func (LogPublisher) Close() error { return nil }
