package mapping

import (
	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/models"
)

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		BankName:    m.BankName,
		Balance:     m.Balance,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCreditCard(m models.CreditCard) domain.CreditCard {
	return domain.CreditCard{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Limit:       m.CreditLimit,
		ClosingDay:  toIntPtr(m.ClosingDay),
		DueDay:      toIntPtr(m.DueDay),
		Balance:     m.Balance,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
