package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Cross-field rules (holder matches source, category or subcategory present,
// installment and recurrence details) are enforced by the service.
type CreateTransactionRequest struct {
	Value             *decimal.Decimal `json:"value" binding:"required"`
	Date              string           `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	TransactionType   string           `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	TransactionSource string           `json:"transactionSource" binding:"required,oneof=ACCOUNT CREDIT_CARD"`
	AccountID         *int64           `json:"accountId,omitempty" binding:"omitempty,gt=0"`
	CreditCardID      *int64           `json:"creditCardId,omitempty" binding:"omitempty,gt=0"`
	CategoryID        *int64           `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	SubcategoryID     *int64           `json:"subcategoryId,omitempty" binding:"omitempty,gt=0"`
	IsInstallment     bool             `json:"isInstallment"`
	TotalMonths       *int             `json:"totalMonths,omitempty"`
	IsRecurring       bool             `json:"isRecurring"`
	PaymentDay        *int             `json:"paymentDay,omitempty"`
	Observation       *string          `json:"observation,omitempty" binding:"omitempty,max=500"`
	Tags              []int64          `json:"tags,omitempty" binding:"omitempty,dive,gt=0"`
	Active            *bool            `json:"active,omitempty"`
}

// UpdateTransactionRequest is a partial update. Absent fields keep their current value.
// A present Tags (even empty) replaces every tag association.
type UpdateTransactionRequest struct {
	Value             *decimal.Decimal `json:"value,omitempty"`
	Date              *string          `json:"date,omitempty"`
	TransactionType   *string          `json:"transactionType,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
	TransactionSource *string          `json:"transactionSource,omitempty" binding:"omitempty,oneof=ACCOUNT CREDIT_CARD"`
	AccountID         *int64           `json:"accountId,omitempty" binding:"omitempty,gt=0"`
	CreditCardID      *int64           `json:"creditCardId,omitempty" binding:"omitempty,gt=0"`
	CategoryID        *int64           `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	SubcategoryID     *int64           `json:"subcategoryId,omitempty" binding:"omitempty,gt=0"`
	IsInstallment     *bool            `json:"isInstallment,omitempty"`
	TotalMonths       *int             `json:"totalMonths,omitempty"`
	IsRecurring       *bool            `json:"isRecurring,omitempty"`
	PaymentDay        *int             `json:"paymentDay,omitempty"`
	Observation       *string          `json:"observation,omitempty" binding:"omitempty,max=500"`
	Tags              *[]int64         `json:"tags,omitempty" binding:"omitempty,dive,gt=0"`
	Active            *bool            `json:"active,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit             int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken         *string `form:"nextToken"`
	From              string  `form:"from"`
	To                string  `form:"to"`
	TransactionType   string  `form:"transactionType" binding:"omitempty,oneof=INCOME EXPENSE"`
	TransactionSource string  `form:"transactionSource" binding:"omitempty,oneof=ACCOUNT CREDIT_CARD"`
	CategoryID        *int64  `form:"categoryId" binding:"omitempty,gt=0"`
	SubcategoryID     *int64  `form:"subcategoryId" binding:"omitempty,gt=0"`
	Active            *bool   `form:"active"`
}

// TagResponse defines the data returned for a tag attached to a transaction.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID                int64         `json:"id"`
	Value             string        `json:"value"`
	Date              time.Time     `json:"date"`
	TransactionType   string        `json:"transactionType"`
	TransactionSource string        `json:"transactionSource"`
	AccountID         *int64        `json:"accountId"`
	CreditCardID      *int64        `json:"creditCardId"`
	CategoryID        *int64        `json:"categoryId"`
	SubcategoryID     *int64        `json:"subcategoryId"`
	IsInstallment     bool          `json:"isInstallment"`
	TotalMonths       *int          `json:"totalMonths"`
	IsRecurring       bool          `json:"isRecurring"`
	PaymentDay        *int          `json:"paymentDay"`
	Observation       *string       `json:"observation"`
	Active            bool          `json:"active"`
	Tags              []TagResponse `json:"tags"`
	CreatedAt         time.Time     `json:"createdAt"`
	LastUpdatedAt     time.Time     `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CountTransactionsResponse is returned by the count endpoint.
type CountTransactionsResponse struct {
	Count int64 `json:"count"`
}

// DeleteTransactionResponse echoes the id of the removed transaction.
type DeleteTransactionResponse struct {
	ID int64 `json:"id"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	tags := make([]TagResponse, len(txn.Tags))
	for i, tag := range txn.Tags {
		tags[i] = TagResponse{ID: tag.ID, Name: tag.Name}
	}
	return TransactionResponse{
		ID:                txn.ID,
		Value:             accounting.FormatAmount(txn.Value),
		Date:              txn.Date,
		TransactionType:   string(txn.TransactionType),
		TransactionSource: string(txn.TransactionSource),
		AccountID:         txn.AccountID,
		CreditCardID:      txn.CreditCardID,
		CategoryID:        txn.CategoryID,
		SubcategoryID:     txn.SubcategoryID,
		IsInstallment:     txn.IsInstallment,
		TotalMonths:       txn.TotalMonths,
		IsRecurring:       txn.IsRecurring,
		PaymentDay:        txn.PaymentDay,
		Observation:       txn.Observation,
		Active:            txn.Active,
		Tags:              tags,
		CreatedAt:         txn.CreatedAt,
		LastUpdatedAt:     txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts an RFC3339 timestamp or a plain calendar date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
