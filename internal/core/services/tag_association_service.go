package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

type tagAssociationService struct {
	BaseService
	linkRepo portsrepo.TransactionTagRepository
}

// NewTagAssociationService creates the manager for transaction tag links.
func NewTagAssociationService(linkRepo portsrepo.TransactionTagRepository) portssvc.TagAssociationSvc {
	return &tagAssociationService{linkRepo: linkRepo}
}

var _ portssvc.TagAssociationSvc = (*tagAssociationService)(nil)

func (s *tagAssociationService) ReplaceTags(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) ([]int64, error) {
	normalized := domain.NormalizeTagIDs(tagIDs)

	if err := s.linkRepo.DeleteTransactionTagsInTx(ctx, tx, transactionID); err != nil {
		return nil, fmt.Errorf("failed to clear tags of transaction %d: %w", transactionID, err)
	}
	if len(normalized) > 0 {
		if err := s.linkRepo.InsertTransactionTagsInTx(ctx, tx, transactionID, normalized); err != nil {
			return nil, fmt.Errorf("failed to link tags to transaction %d: %w", transactionID, err)
		}
	}

	s.LogDebug(ctx, "Replaced transaction tags", slog.Int64("transaction_id", transactionID), slog.Int("tag_count", len(normalized)))
	return normalized, nil
}

func (s *tagAssociationService) RemoveTags(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	if err := s.linkRepo.DeleteTransactionTagsInTx(ctx, tx, transactionID); err != nil {
		return fmt.Errorf("failed to remove tags of transaction %d: %w", transactionID, err)
	}
	return nil
}

func (s *tagAssociationService) AttachTags(ctx context.Context, txns []domain.Transaction) ([]domain.Transaction, error) {
	if len(txns) == 0 {
		return txns, nil
	}

	ids := make([]int64, len(txns))
	for i, txn := range txns {
		ids[i] = txn.ID
	}

	tagsByTxn, err := s.linkRepo.FindTagsByTransactionIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tags for transactions", slog.Int("transaction_count", len(ids)))
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	for i := range txns {
		tags, ok := tagsByTxn[txns[i].ID]
		if !ok || tags == nil {
			tags = []domain.Tag{}
		}
		txns[i].Tags = tags
	}
	return txns, nil
}
