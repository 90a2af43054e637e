package mapping

import (
	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Tags live in the link table and are not part of the row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:                d.ID,
		UserID:            d.UserID,
		Value:             d.Value,
		Date:              d.Date,
		TransactionType:   string(d.TransactionType),
		TransactionSource: string(d.TransactionSource),
		AccountID:         d.AccountID,
		CreditCardID:      d.CreditCardID,
		CategoryID:        d.CategoryID,
		SubcategoryID:     d.SubcategoryID,
		IsInstallment:     d.IsInstallment,
		TotalMonths:       toInt32Ptr(d.TotalMonths),
		IsRecurring:       d.IsRecurring,
		PaymentDay:        toInt32Ptr(d.PaymentDay),
		Observation:       d.Observation,
		Active:            d.Active,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Value:             m.Value,
		Date:              m.Date.UTC(),
		TransactionType:   domain.TransactionType(m.TransactionType),
		TransactionSource: domain.TransactionSource(m.TransactionSource),
		AccountID:         m.AccountID,
		CreditCardID:      m.CreditCardID,
		CategoryID:        m.CategoryID,
		SubcategoryID:     m.SubcategoryID,
		IsInstallment:     m.IsInstallment,
		TotalMonths:       toIntPtr(m.TotalMonths),
		IsRecurring:       m.IsRecurring,
		PaymentDay:        toIntPtr(m.PaymentDay),
		Observation:       m.Observation,
		Active:            m.Active,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	if ms == nil {
		return nil
	}
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
