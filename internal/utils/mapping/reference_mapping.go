package mapping

import (
	"github.com/SscSPs/money_tracker/internal/core/domain"
	"github.com/SscSPs/money_tracker/internal/models"
)

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSubcategory(m models.Subcategory) domain.Subcategory {
	return domain.Subcategory{
		ID:          m.ID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTag(m models.Tag) domain.Tag {
	return domain.Tag{
		ID:     m.ID,
		UserID: m.UserID,
		Name:   m.Name,
		Active: m.Active,
	}
}

// GroupTagsByTransaction folds joined link rows into per-transaction tag lists.
func GroupTagsByTransaction(rows []models.TransactionTag) map[int64][]domain.Tag {
	grouped := make(map[int64][]domain.Tag)
	for _, row := range rows {
		grouped[row.TransactionID] = append(grouped[row.TransactionID], ToDomainTag(row.Tag))
	}
	return grouped
}
