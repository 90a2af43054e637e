package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/money_tracker/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock TransactionTagRepository ---
type MockTransactionTagRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionTagRepository = (*MockTransactionTagRepository)(nil)

func (m *MockTransactionTagRepository) DeleteTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionTagRepository) InsertTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) error {
	args := m.Called(ctx, tx, transactionID, tagIDs)
	return args.Error(0)
}

func (m *MockTransactionTagRepository) FindTagsByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Tag, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.Tag), args.Error(1)
}

func TestReplaceTags_NormalizesBeforeInsert(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	repo := new(MockTransactionTagRepository)
	repo.On("DeleteTransactionTagsInTx", ctx, tx, int64(7)).Return(nil).Once()
	repo.On("InsertTransactionTagsInTx", ctx, tx, int64(7), []int64{1, 2, 5}).Return(nil).Once()

	stored, err := services.NewTagAssociationService(repo).ReplaceTags(ctx, tx, 7, []int64{5, 1, 2, 1})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 5}, stored)
	repo.AssertExpectations(t)
}

func TestReplaceTags_EmptySetOnlyClears(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	repo := new(MockTransactionTagRepository)
	repo.On("DeleteTransactionTagsInTx", ctx, tx, int64(7)).Return(nil).Once()

	stored, err := services.NewTagAssociationService(repo).ReplaceTags(ctx, tx, 7, nil)

	require.NoError(t, err)
	assert.Empty(t, stored)
	repo.AssertNotCalled(t, "InsertTransactionTagsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReplaceTags_PropagatesClearFailure(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	cause := errors.New("lock timeout")
	repo := new(MockTransactionTagRepository)
	repo.On("DeleteTransactionTagsInTx", ctx, tx, int64(7)).Return(cause).Once()

	_, err := services.NewTagAssociationService(repo).ReplaceTags(ctx, tx, 7, []int64{1})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	repo.AssertNotCalled(t, "InsertTransactionTagsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachTags_FillsMissingWithEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionTagRepository)
	repo.On("FindTagsByTransactionIDs", ctx, []int64{1, 2}).Return(map[int64][]domain.Tag{
		1: {{ID: 9, Name: "rent"}},
	}, nil).Once()

	txns, err := services.NewTagAssociationService(repo).AttachTags(ctx, []domain.Transaction{{ID: 1}, {ID: 2}})

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, []int64{9}, txns[0].TagIDs())
	assert.NotNil(t, txns[1].Tags)
	assert.Empty(t, txns[1].Tags)
}

func TestAttachTags_NoTransactionsSkipsLookup(t *testing.T) {
	repo := new(MockTransactionTagRepository)

	txns, err := services.NewTagAssociationService(repo).AttachTags(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, txns)
	repo.AssertNotCalled(t, "FindTagsByTransactionIDs", mock.Anything, mock.Anything)
}
