package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionEventType names a committed ledger change.
type TransactionEventType string

const (
	TransactionCreated TransactionEventType = "transaction.created"
	TransactionUpdated TransactionEventType = "transaction.updated"
	TransactionDeleted TransactionEventType = "transaction.deleted"
)

// BalanceChange records the delta applied to one holder in a ledger operation.
type BalanceChange struct {
	Source TransactionSource `json:"source"`
	ID     int64             `json:"id"`
	Delta  decimal.Decimal   `json:"delta"`
}

// TransactionEvent is emitted after a ledger operation commits.
type TransactionEvent struct {
	Type          TransactionEventType `json:"type"`
	TransactionID int64                `json:"transactionId"`
	UserID        int64                `json:"userId"`
	Changes       []BalanceChange      `json:"changes"`
	OccurredAt    time.Time            `json:"occurredAt"`
}
