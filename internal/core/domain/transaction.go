package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// TransactionSource identifies which kind of balance holder owns a transaction.
type TransactionSource string

const (
	SourceAccount    TransactionSource = "ACCOUNT"
	SourceCreditCard TransactionSource = "CREDIT_CARD"
)

// IsValid reports whether s is a known transaction source.
func (s TransactionSource) IsValid() bool {
	return s == SourceAccount || s == SourceCreditCard
}

// Transaction is a single money movement against one balance holder.
type Transaction struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"userId"` // owner of the referenced holder
	Value             decimal.Decimal   `json:"value"`  // positive, two fractional digits
	Date              time.Time         `json:"date"`
	TransactionType   TransactionType   `json:"transactionType"`
	TransactionSource TransactionSource `json:"transactionSource"`
	AccountID         *int64            `json:"accountId"`    // set iff source is ACCOUNT
	CreditCardID      *int64            `json:"creditCardId"` // set iff source is CREDIT_CARD
	CategoryID        *int64            `json:"categoryId"`
	SubcategoryID     *int64            `json:"subcategoryId"`
	IsInstallment     bool              `json:"isInstallment"`
	TotalMonths       *int              `json:"totalMonths"`
	IsRecurring       bool              `json:"isRecurring"`
	PaymentDay        *int              `json:"paymentDay"`
	Observation       *string           `json:"observation"`
	Active            bool              `json:"active"`
	Tags              []Tag             `json:"tags"`
	AuditFields
}

// HolderRef points at the balance holder a transaction contributes to.
type HolderRef struct {
	Source TransactionSource
	ID     int64
}

// Holder resolves the holder reference implied by the transaction source.
// The second return is false when the id matching the source is absent.
func (t Transaction) Holder() (HolderRef, bool) {
	switch t.TransactionSource {
	case SourceAccount:
		if t.AccountID != nil {
			return HolderRef{Source: SourceAccount, ID: *t.AccountID}, true
		}
	case SourceCreditCard:
		if t.CreditCardID != nil {
			return HolderRef{Source: SourceCreditCard, ID: *t.CreditCardID}, true
		}
	}
	return HolderRef{}, false
}

// TagIDs returns the ids of the resolved tags.
func (t Transaction) TagIDs() []int64 {
	ids := make([]int64, len(t.Tags))
	for i, tag := range t.Tags {
		ids[i] = tag.ID
	}
	return ids
}

// DeletedTransaction is the result of a successful delete.
type DeletedTransaction struct {
	ID int64 `json:"id"`
}

// NormalizeTagIDs removes duplicates and sorts ascending. It never returns nil.
func NormalizeTagIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
