package services

import (
	"context"

	"github.com/SscSPs/money_tracker/internal/core/domain"
)

// ReferenceValidatorSvc confirms referenced entities exist and are active.
// Missing or inactive entities come back as *apperrors.AppError with the
// resource specific not-found code.
type ReferenceValidatorSvc interface {
	FindActiveAccount(ctx context.Context, id int64) (*domain.Account, error)
	FindActiveCreditCard(ctx context.Context, id int64) (*domain.CreditCard, error)
	FindActiveCategory(ctx context.Context, id int64) (*domain.Category, error)
	FindActiveSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error)

	// FindTagsOwnedByUser returns the subset of ids that are active and owned by userID.
	FindTagsOwnedByUser(ctx context.Context, userID int64, ids []int64) ([]domain.Tag, error)
}
