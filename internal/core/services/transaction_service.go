package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/SscSPs/money_tracker/internal/dto"
	"github.com/SscSPs/money_tracker/internal/platform/metrics"
	"github.com/SscSPs/money_tracker/internal/utils/accounting"
	"github.com/SscSPs/money_tracker/internal/utils/pagination"
	"github.com/SscSPs/money_tracker/internal/utils/validation"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const dateOnly = "2006-01-02"

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// transactionService orchestrates every balance-affecting ledger operation.
type transactionService struct {
	BaseService
	txRepo         portsrepo.TransactionRepositoryWithTx
	accountRepo    portsrepo.AccountRepository
	creditCardRepo portsrepo.CreditCardRepository
	refs           portssvc.ReferenceValidatorSvc
	tags           portssvc.TagAssociationSvc
	publisher      portssvc.LedgerEventPublisher
	validate       *validator.Validate
	now            func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithEventPublisher announces committed changes through p.
func WithEventPublisher(p portssvc.LedgerEventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = p
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates the ledger orchestrator.
func NewTransactionService(
	txRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepository,
	creditCardRepo portsrepo.CreditCardRepository,
	refs portssvc.ReferenceValidatorSvc,
	tags portssvc.TagAssociationSvc,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txRepo:         txRepo,
		accountRepo:    accountRepo,
		creditCardRepo: creditCardRepo,
		refs:           refs,
		tags:           tags,
		validate:       newLedgerValidator(),
		now:            time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// --- Writes ---

func (s *transactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	start := time.Now()
	txn, err := s.createTransaction(ctx, userID, req)
	return txn, s.finish(ctx, opCreate, start, err)
}

func (s *transactionService) createTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.ToAppError(err)
	}
	candidate, err := transactionFromCreate(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkRules(candidate); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, userID, candidate); err != nil {
		return nil, err
	}

	tagIDs := domain.NormalizeTagIDs(req.Tags)
	tags, err := s.resolveTags(ctx, candidate.UserID, tagIDs)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	candidate.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
		Version:       1,
	}

	var created *domain.Transaction
	var changes []domain.BalanceChange
	err = s.withTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.txRepo.InsertTransactionInTx(ctx, tx, *candidate)
		if err != nil {
			return err
		}
		stored, err := s.reloadInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		change, err := s.applyDelta(ctx, tx, *stored, accounting.Contribution(*stored))
		if err != nil {
			return err
		}
		changes = appendChange(changes, change)
		if _, err := s.tags.ReplaceTags(ctx, tx, id, tagIDs); err != nil {
			return err
		}
		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.Tags = tags
	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", created.ID),
		slog.String("source", string(created.TransactionSource)),
		slog.String("value", accounting.FormatAmount(created.Value)))
	s.publish(ctx, domain.TransactionCreated, *created, changes)
	return created, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID int64, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	start := time.Now()
	txn, err := s.updateTransaction(ctx, userID, id, req)
	return txn, s.finish(ctx, opUpdate, start, err)
}

func (s *transactionService) updateTransaction(ctx context.Context, userID int64, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.ToAppError(err)
	}
	current, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.prepareUpdate(ctx, userID, *current, req)
	if err != nil {
		return nil, err
	}

	replaceTags := req.Tags != nil
	var tagIDs []int64
	var tags []domain.Tag
	if replaceTags {
		tagIDs = domain.NormalizeTagIDs(*req.Tags)
		if tags, err = s.resolveTags(ctx, updated.UserID, tagIDs); err != nil {
			return nil, err
		}
	}

	var result *domain.Transaction
	var changes []domain.BalanceChange
	err = s.withTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.lockForWrite(ctx, tx, id)
		if err != nil {
			return err
		}

		next := updated
		if locked.Version != current.Version {
			// Someone else wrote the row after it was validated; merge the
			// patch over what is actually stored now.
			s.LogWarn(ctx, "Transaction changed concurrently, revalidating", slog.Int64("transaction_id", id))
			if next, err = s.prepareUpdate(ctx, userID, *locked, req); err != nil {
				return err
			}
		}

		if changes, err = s.reconcile(ctx, tx, *locked, *next); err != nil {
			return err
		}

		next.ID = id
		next.LastUpdatedAt = s.now().UTC()
		next.LastUpdatedBy = userID
		next.Version = locked.Version
		if err := s.txRepo.UpdateTransactionInTx(ctx, tx, *next); err != nil {
			return err
		}
		stored, err := s.reloadInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if replaceTags {
			if _, err := s.tags.ReplaceTags(ctx, tx, id, tagIDs); err != nil {
				return err
			}
		}
		result = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replaceTags {
		result.Tags = tags
	} else {
		withTags, err := s.tags.AttachTags(ctx, []domain.Transaction{*result})
		if err != nil {
			return nil, err
		}
		result = &withTags[0]
	}

	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", id), slog.Int("holders_touched", len(changes)))
	s.publish(ctx, domain.TransactionUpdated, *result, changes)
	return result, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID int64, id int64) (*domain.DeletedTransaction, error) {
	start := time.Now()
	deleted, err := s.deleteTransaction(ctx, userID, id)
	return deleted, s.finish(ctx, opDelete, start, err)
}

func (s *transactionService) deleteTransaction(ctx context.Context, userID int64, id int64) (*domain.DeletedTransaction, error) {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	var removed domain.Transaction
	var changes []domain.BalanceChange
	err := s.withTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.lockForWrite(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.tags.RemoveTags(ctx, tx, id); err != nil {
			return err
		}
		if err := s.txRepo.DeleteTransactionInTx(ctx, tx, id); err != nil {
			return err
		}
		change, err := s.applyDelta(ctx, tx, *locked, accounting.Contribution(*locked).Neg())
		if err != nil {
			return err
		}
		changes = appendChange(changes, change)
		removed = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id))
	s.publish(ctx, domain.TransactionDeleted, removed, changes)
	return &domain.DeletedTransaction{ID: id}, nil
}

// --- Reads ---

func (s *transactionService) GetTransactionByID(ctx context.Context, userID int64, id int64) (*domain.Transaction, error) {
	txn, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, s.callerError(ctx, "get", err)
	}
	withTags, err := s.tags.AttachTags(ctx, []domain.Transaction{*txn})
	if err != nil {
		return nil, s.callerError(ctx, "get", err)
	}
	return &withTags[0], nil
}

func (s *transactionService) ListTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := filterFromParams(userID, params)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter, params)
}

func (s *transactionService) ListTransactionsByAccount(ctx context.Context, userID int64, accountID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := filterFromParams(userID, params)
	if err != nil {
		return nil, err
	}
	source := domain.SourceAccount
	filter.AccountID = &accountID
	filter.TransactionSource = &source
	return s.list(ctx, filter, params)
}

func (s *transactionService) ListTransactionsByCreditCard(ctx context.Context, userID int64, creditCardID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := filterFromParams(userID, params)
	if err != nil {
		return nil, err
	}
	source := domain.SourceCreditCard
	filter.CreditCardID = &creditCardID
	filter.TransactionSource = &source
	return s.list(ctx, filter, params)
}

func (s *transactionService) CountTransactionsByUser(ctx context.Context, userID int64, params dto.ListTransactionsParams) (int64, error) {
	filter, err := filterFromParams(userID, params)
	if err != nil {
		return 0, err
	}
	count, err := s.txRepo.CountTransactions(ctx, filter)
	if err != nil {
		return 0, s.callerError(ctx, "count", err)
	}
	return count, nil
}

func (s *transactionService) list(ctx context.Context, filter portsrepo.TransactionFilter, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := pagination.ClampLimit(params.Limit)
	txns, nextToken, err := s.txRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, apperrors.NewValidationError("request validation failed",
				apperrors.FieldError{Field: "nextToken", Tag: "token", Message: "is not a valid pagination token"})
		}
		return nil, s.callerError(ctx, "list", err)
	}

	txns, err = s.tags.AttachTags(ctx, txns)
	if err != nil {
		return nil, s.callerError(ctx, "list", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// --- Helpers ---

func (s *transactionService) checkRules(txn *domain.Transaction) error {
	if err := s.validate.Struct(*txn); err != nil {
		return validation.ToAppError(err)
	}
	return nil
}

// prepareUpdate merges the patch over base and validates the result and its references.
func (s *transactionService) prepareUpdate(ctx context.Context, userID int64, base domain.Transaction, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	next, err := applyPatch(base, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkRules(next); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// resolveReferences validates the holder and categories and stamps the owner on txn.
func (s *transactionService) resolveReferences(ctx context.Context, userID int64, txn *domain.Transaction) error {
	holder, err := s.resolveHolder(ctx, userID, *txn)
	if err != nil {
		return err
	}
	if err := s.resolveCategories(ctx, holder.UserID, *txn); err != nil {
		return err
	}
	txn.UserID = holder.UserID
	return nil
}

func (s *transactionService) resolveHolder(ctx context.Context, userID int64, txn domain.Transaction) (domain.BalanceHolder, error) {
	ref, ok := txn.Holder()
	if !ok {
		return domain.BalanceHolder{}, apperrors.NewValidationError("request validation failed",
			validation.NewFieldError("transactionSource", "oneof", "ACCOUNT CREDIT_CARD"))
	}

	switch ref.Source {
	case domain.SourceAccount:
		acc, err := s.refs.FindActiveAccount(ctx, ref.ID)
		if err != nil {
			return domain.BalanceHolder{}, err
		}
		if acc.UserID != userID {
			return domain.BalanceHolder{}, apperrors.NewNotFoundError(apperrors.CodeAccountNotFound, fmt.Sprintf("account %d not found", ref.ID))
		}
		return acc.AsHolder(), nil
	default:
		card, err := s.refs.FindActiveCreditCard(ctx, ref.ID)
		if err != nil {
			return domain.BalanceHolder{}, err
		}
		if card.UserID != userID {
			return domain.BalanceHolder{}, apperrors.NewNotFoundError(apperrors.CodeCreditCardNotFound, fmt.Sprintf("credit card %d not found", ref.ID))
		}
		return card.AsHolder(), nil
	}
}

func (s *transactionService) resolveCategories(ctx context.Context, ownerID int64, txn domain.Transaction) error {
	if txn.CategoryID != nil {
		category, err := s.refs.FindActiveCategory(ctx, *txn.CategoryID)
		if err != nil {
			return err
		}
		if category.UserID != ownerID {
			return apperrors.NewNotFoundError(apperrors.CodeCategoryNotFound, fmt.Sprintf("category %d not found", *txn.CategoryID))
		}
	}
	if txn.SubcategoryID != nil {
		sub, err := s.refs.FindActiveSubcategory(ctx, *txn.SubcategoryID)
		if err != nil {
			return err
		}
		if sub.UserID != ownerID {
			return apperrors.NewNotFoundError(apperrors.CodeSubcategoryNotFound, fmt.Sprintf("subcategory %d not found", *txn.SubcategoryID))
		}
		if txn.CategoryID != nil && sub.CategoryID != *txn.CategoryID {
			return apperrors.NewNotFoundError(apperrors.CodeSubcategoryNotFound,
				fmt.Sprintf("subcategory %d does not belong to category %d", *txn.SubcategoryID, *txn.CategoryID))
		}
	}
	return nil
}

// resolveTags is all-or-nothing: every id must be an active tag of ownerID.
func (s *transactionService) resolveTags(ctx context.Context, ownerID int64, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	found, err := s.refs.FindTagsOwnedByUser(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Tag, len(found))
	for _, tag := range found {
		byID[tag.ID] = tag
	}
	ordered := make([]domain.Tag, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		tag, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, tag)
	}
	if len(missing) > 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeTagNotFound, fmt.Sprintf("tags not found or inactive: %v", missing))
	}
	return ordered, nil
}

func (s *transactionService) loadOwned(ctx context.Context, userID int64, id int64) (*domain.Transaction, error) {
	txn, err := s.txRepo.FindTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, transactionNotFound(id)
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, transactionNotFound(id)
	}
	return txn, nil
}

func (s *transactionService) lockForWrite(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error) {
	locked, err := s.txRepo.FindTransactionByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, transactionNotFound(id)
		}
		return nil, err
	}
	return locked, nil
}

func transactionNotFound(id int64) error {
	return apperrors.NewNotFoundError(apperrors.CodeNotFound, fmt.Sprintf("transaction %d not found", id))
}

// reloadInTx reads back a row this scope just wrote.
func (s *transactionService) reloadInTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error) {
	stored, err := s.txRepo.FindTransactionByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %d not readable after write", apperrors.ErrRepositoryInvariant, id)
		}
		return nil, err
	}
	return stored, nil
}

// reconcile moves the holder contributions from before to after. The same
// holder receives only the difference; a holder move reverses the old one in
// full and applies the new delta to the new one.
func (s *transactionService) reconcile(ctx context.Context, tx pgx.Tx, before, after domain.Transaction) ([]domain.BalanceChange, error) {
	currentDelta := accounting.Contribution(before)
	updatedDelta := accounting.Contribution(after)

	oldRef, oldOK := before.Holder()
	newRef, newOK := after.Holder()

	var changes []domain.BalanceChange
	if oldOK && newOK && oldRef == newRef {
		change, err := s.applyDelta(ctx, tx, after, updatedDelta.Sub(currentDelta))
		if err != nil {
			return nil, err
		}
		return appendChange(changes, change), nil
	}

	reversal, err := s.applyDelta(ctx, tx, before, currentDelta.Neg())
	if err != nil {
		return nil, err
	}
	changes = appendChange(changes, reversal)

	applied, err := s.applyDelta(ctx, tx, after, updatedDelta)
	if err != nil {
		return nil, err
	}
	return appendChange(changes, applied), nil
}

// applyDelta is the single place holder balances change.
func (s *transactionService) applyDelta(ctx context.Context, tx pgx.Tx, txn domain.Transaction, delta decimal.Decimal) (*domain.BalanceChange, error) {
	if delta.IsZero() {
		return nil, nil
	}
	ref, ok := txn.Holder()
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d has source %q without a holder id", apperrors.ErrBalanceInvariant, txn.ID, txn.TransactionSource)
	}

	var writer portsrepo.BalanceHolderWriter
	switch ref.Source {
	case domain.SourceAccount:
		writer = s.accountRepo
	case domain.SourceCreditCard:
		writer = s.creditCardRepo
	default:
		return nil, fmt.Errorf("%w: unknown holder kind %q", apperrors.ErrBalanceInvariant, ref.Source)
	}

	if err := writer.ApplyBalanceDeltaInTx(ctx, tx, ref.ID, delta); err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Applied balance delta",
		slog.String("source", string(ref.Source)),
		slog.Int64("holder_id", ref.ID),
		slog.String("delta", delta.StringFixed(2)))
	return &domain.BalanceChange{Source: ref.Source, ID: ref.ID, Delta: delta}, nil
}

func appendChange(changes []domain.BalanceChange, change *domain.BalanceChange) []domain.BalanceChange {
	if change == nil {
		return changes
	}
	return append(changes, *change)
}

// withTransaction runs fn inside one database transaction, committing only if
// fn succeeds. Any error or panic rolls every write back.
func (s *transactionService) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.txRepo.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.txRepo.Rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := s.txRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back ledger scope")
		}
		return err
	}
	return s.txRepo.Commit(ctx, tx)
}

// callerError keeps typed validation and not-found errors and hides everything
// else behind INTERNAL_SERVER_ERROR.
func (s *transactionService) callerError(ctx context.Context, op string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	s.LogError(ctx, err, "Ledger operation failed", slog.String("operation", op))
	return apperrors.NewInternalError(err)
}

func (s *transactionService) finish(ctx context.Context, op string, start time.Time, err error) error {
	if err == nil {
		metrics.ObserveLedgerOperation(op, metrics.OutcomeSuccess, time.Since(start))
		return nil
	}
	err = s.callerError(ctx, op, err)
	outcome := metrics.OutcomeRejected
	if apperrors.CodeOf(err) == apperrors.CodeInternal {
		outcome = metrics.OutcomeFailed
	}
	metrics.ObserveLedgerOperation(op, outcome, time.Since(start))
	return err
}

func (s *transactionService) publish(ctx context.Context, eventType domain.TransactionEventType, txn domain.Transaction, changes []domain.BalanceChange) {
	if s.publisher == nil {
		return
	}
	if changes == nil {
		changes = []domain.BalanceChange{}
	}
	event := domain.TransactionEvent{
		Type:          eventType,
		TransactionID: txn.ID,
		UserID:        txn.UserID,
		Changes:       changes,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		metrics.IncEventPublishFailure()
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", string(eventType)),
			slog.Int64("transaction_id", txn.ID))
	}
}

func filterFromParams(userID int64, params dto.ListTransactionsParams) (portsrepo.TransactionFilter, error) {
	filter := portsrepo.TransactionFilter{
		UserID:        userID,
		CategoryID:    params.CategoryID,
		SubcategoryID: params.SubcategoryID,
		Active:        params.Active,
	}
	if params.TransactionType != "" {
		t := domain.TransactionType(params.TransactionType)
		filter.TransactionType = &t
	}
	if params.TransactionSource != "" {
		src := domain.TransactionSource(params.TransactionSource)
		filter.TransactionSource = &src
	}
	if params.From != "" {
		from, err := dto.ParseDate(params.From)
		if err != nil {
			return filter, apperrors.NewValidationError("request validation failed", validation.NewFieldError("from", "date", ""))
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := dto.ParseDate(params.To)
		if err != nil {
			return filter, apperrors.NewValidationError("request validation failed", validation.NewFieldError("to", "date", ""))
		}
		if len(strings.TrimSpace(params.To)) == len(dateOnly) {
			// a bare date covers the whole day
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}
	return filter, nil
}
