package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
)

type referenceValidatorService struct {
	BaseService
	accountRepo     portsrepo.AccountRepository
	creditCardRepo  portsrepo.CreditCardRepository
	categoryRepo    portsrepo.CategoryRepository
	subcategoryRepo portsrepo.SubcategoryRepository
	tagRepo         portsrepo.TagRepository
}

// NewReferenceValidatorService creates the lookups the ledger uses to check references.
func NewReferenceValidatorService(
	accountRepo portsrepo.AccountRepository,
	creditCardRepo portsrepo.CreditCardRepository,
	categoryRepo portsrepo.CategoryRepository,
	subcategoryRepo portsrepo.SubcategoryRepository,
	tagRepo portsrepo.TagRepository,
) portssvc.ReferenceValidatorSvc {
	return &referenceValidatorService{
		accountRepo:     accountRepo,
		creditCardRepo:  creditCardRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		tagRepo:         tagRepo,
	}
}

var _ portssvc.ReferenceValidatorSvc = (*referenceValidatorService)(nil)

func (s *referenceValidatorService) FindActiveAccount(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, apperrors.CodeAccountNotFound, "account", id)
	}
	if !acc.Active {
		return nil, apperrors.NewNotFoundError(apperrors.CodeAccountNotFound, fmt.Sprintf("account %d is inactive", id))
	}
	return acc, nil
}

func (s *referenceValidatorService) FindActiveCreditCard(ctx context.Context, id int64) (*domain.CreditCard, error) {
	card, err := s.creditCardRepo.FindCreditCardByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, apperrors.CodeCreditCardNotFound, "credit card", id)
	}
	if !card.Active {
		return nil, apperrors.NewNotFoundError(apperrors.CodeCreditCardNotFound, fmt.Sprintf("credit card %d is inactive", id))
	}
	return card, nil
}

func (s *referenceValidatorService) FindActiveCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, apperrors.CodeCategoryNotFound, "category", id)
	}
	if !category.Active {
		return nil, apperrors.NewNotFoundError(apperrors.CodeCategoryNotFound, fmt.Sprintf("category %d is inactive", id))
	}
	return category, nil
}

func (s *referenceValidatorService) FindActiveSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error) {
	sub, err := s.subcategoryRepo.FindSubcategoryByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, apperrors.CodeSubcategoryNotFound, "subcategory", id)
	}
	if !sub.Active {
		return nil, apperrors.NewNotFoundError(apperrors.CodeSubcategoryNotFound, fmt.Sprintf("subcategory %d is inactive", id))
	}
	return sub, nil
}

func (s *referenceValidatorService) FindTagsOwnedByUser(ctx context.Context, userID int64, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	tags, err := s.tagRepo.FindActiveTagsByIDs(ctx, userID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up tags", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to look up tags for user %d: %w", userID, err)
	}
	return tags, nil
}

// lookupError turns a repository miss into the resource specific not-found code
// and passes any other failure through untouched.
func (s *referenceValidatorService) lookupError(ctx context.Context, err error, code apperrors.ErrorCode, resource string, id int64) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(code, fmt.Sprintf("%s %d not found", resource, id))
	}
	s.LogError(ctx, err, "Reference lookup failed", slog.String("resource", resource), slog.Int64("id", id))
	return fmt.Errorf("failed to look up %s %d: %w", resource, id, err)
}
