package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/money_tracker/internal/apperrors"
	"github.com/SscSPs/money_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/money_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_tracker/internal/core/ports/services"
	"github.com/SscSPs/money_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx.Tx; the in-memory store never calls through it.
type fakeTx struct {
	pgx.Tx
	seq int
}

type ledgerState struct {
	transactions  map[int64]domain.Transaction
	accounts      map[int64]domain.Account
	cards         map[int64]domain.CreditCard
	categories    map[int64]domain.Category
	subcategories map[int64]domain.Subcategory
	tags          map[int64]domain.Tag
	links         map[int64][]int64
	nextID        int64
}

func (s ledgerState) clone() ledgerState {
	out := ledgerState{
		transactions:  make(map[int64]domain.Transaction, len(s.transactions)),
		accounts:      make(map[int64]domain.Account, len(s.accounts)),
		cards:         make(map[int64]domain.CreditCard, len(s.cards)),
		categories:    make(map[int64]domain.Category, len(s.categories)),
		subcategories: make(map[int64]domain.Subcategory, len(s.subcategories)),
		tags:          make(map[int64]domain.Tag, len(s.tags)),
		links:         make(map[int64][]int64, len(s.links)),
		nextID:        s.nextID,
	}
	for k, v := range s.transactions {
		out.transactions[k] = v
	}
	for k, v := range s.accounts {
		out.accounts[k] = v
	}
	for k, v := range s.cards {
		out.cards[k] = v
	}
	for k, v := range s.categories {
		out.categories[k] = v
	}
	for k, v := range s.subcategories {
		out.subcategories[k] = v
	}
	for k, v := range s.tags {
		out.tags[k] = v
	}
	for k, v := range s.links {
		out.links[k] = append([]int64(nil), v...)
	}
	return out
}

// memoryLedger is an in-memory implementation of every repository the ledger
// uses. Begin snapshots the whole state and Rollback restores it.
type memoryLedger struct {
	mu       sync.Mutex
	state    ledgerState
	snapshot *ledgerState
	txSeq    int

	commits   int
	rollbacks int

	// failures makes the named repository method return the given error.
	failures map[string]error
	// hideWrites makes FindTransactionByIDForUpdate miss rows written in the open scope.
	hideWrites bool
	// beforeLock runs once, inside the scope, before the next row lock is taken.
	beforeLock func(state *ledgerState)
}

var (
	_ portsrepo.TransactionRepositoryWithTx = (*memoryLedger)(nil)
	_ portsrepo.CategoryRepository          = (*memoryLedger)(nil)
	_ portsrepo.SubcategoryRepository       = (*memoryLedger)(nil)
	_ portsrepo.TagRepository               = (*memoryLedger)(nil)
	_ portsrepo.TransactionTagRepository    = (*memoryLedger)(nil)
	_ portsrepo.AccountRepository           = accountStore{}
	_ portsrepo.CreditCardRepository        = creditCardStore{}
)

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		state: ledgerState{
			transactions:  map[int64]domain.Transaction{},
			accounts:      map[int64]domain.Account{},
			cards:         map[int64]domain.CreditCard{},
			categories:    map[int64]domain.Category{},
			subcategories: map[int64]domain.Subcategory{},
			tags:          map[int64]domain.Tag{},
			links:         map[int64][]int64{},
			nextID:        1000,
		},
		failures: map[string]error{},
	}
}

func (m *memoryLedger) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    m,
		AccountRepo:        accountStore{m},
		CreditCardRepo:     creditCardStore{m},
		CategoryRepo:       m,
		SubcategoryRepo:    m,
		TagRepo:            m,
		TransactionTagRepo: m,
	}
}

func (m *memoryLedger) fail(op string) error {
	if err, ok := m.failures[op]; ok {
		return err
	}
	return nil
}

// --- seeding and inspection ---

func (m *memoryLedger) addAccount(a domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.accounts[a.ID] = a
}

func (m *memoryLedger) addCard(c domain.CreditCard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.cards[c.ID] = c
}

func (m *memoryLedger) addCategory(c domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.categories[c.ID] = c
}

func (m *memoryLedger) addSubcategory(s domain.Subcategory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.subcategories[s.ID] = s
}

func (m *memoryLedger) addTag(t domain.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.tags[t.ID] = t
}

func (m *memoryLedger) accountBalance(id int64) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.accounts[id].Balance
}

func (m *memoryLedger) cardBalance(id int64) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.cards[id].Balance
}

func (m *memoryLedger) storedTransactions() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, 0, len(m.state.transactions))
	for _, txn := range m.state.transactions {
		out = append(out, txn)
	}
	return out
}

func (m *memoryLedger) linkedTags(txnID int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.state.links[txnID]...)
}

// --- TransactionManager ---

func (m *memoryLedger) Begin(ctx context.Context) (pgx.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Begin"); err != nil {
		return nil, err
	}
	snap := m.state.clone()
	m.snapshot = &snap
	m.txSeq++
	return &fakeTx{seq: m.txSeq}, nil
}

func (m *memoryLedger) Commit(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Commit"); err != nil {
		if m.snapshot != nil {
			m.state = *m.snapshot
			m.snapshot = nil
		}
		return err
	}
	m.snapshot = nil
	m.commits++
	return nil
}

func (m *memoryLedger) Rollback(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot != nil {
		m.state = *m.snapshot
		m.snapshot = nil
		m.rollbacks++
	}
	return nil
}

// --- TransactionReader ---

func (m *memoryLedger) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindTransactionByID"); err != nil {
		return nil, err
	}
	txn, ok := m.state.transactions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (m *memoryLedger) matching(filter portsrepo.TransactionFilter) []domain.Transaction {
	var out []domain.Transaction
	for _, txn := range m.state.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		if filter.AccountID != nil && (txn.AccountID == nil || *txn.AccountID != *filter.AccountID) {
			continue
		}
		if filter.CreditCardID != nil && (txn.CreditCardID == nil || *txn.CreditCardID != *filter.CreditCardID) {
			continue
		}
		if filter.CategoryID != nil && (txn.CategoryID == nil || *txn.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.SubcategoryID != nil && (txn.SubcategoryID == nil || *txn.SubcategoryID != *filter.SubcategoryID) {
			continue
		}
		if filter.TransactionType != nil && txn.TransactionType != *filter.TransactionType {
			continue
		}
		if filter.TransactionSource != nil && txn.TransactionSource != *filter.TransactionSource {
			continue
		}
		if filter.From != nil && txn.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && txn.Date.After(*filter.To) {
			continue
		}
		if filter.Active != nil && txn.Active != *filter.Active {
			continue
		}
		out = append(out, txn)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *memoryLedger) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListTransactions"); err != nil {
		return nil, nil, err
	}

	rows := m.matching(filter)
	if nextToken != nil && *nextToken != "" {
		date, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(rows)
		for i, txn := range rows {
			if txn.Date.Before(date) || (txn.Date.Equal(date) && txn.ID < id) {
				start = i
				break
			}
		}
		rows = rows[start:]
	}

	var token *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeToken(last.Date, last.ID)
		token = &encoded
	}
	return rows, token, nil
}

func (m *memoryLedger) CountTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CountTransactions"); err != nil {
		return 0, err
	}
	return int64(len(m.matching(filter))), nil
}

// --- TransactionWriter ---

func (m *memoryLedger) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertTransactionInTx"); err != nil {
		return 0, err
	}
	m.state.nextID++
	txn.ID = m.state.nextID
	txn.Tags = nil
	m.state.transactions[txn.ID] = txn
	return txn.ID, nil
}

func (m *memoryLedger) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateTransactionInTx"); err != nil {
		return err
	}
	existing, ok := m.state.transactions[txn.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	txn.CreatedAt = existing.CreatedAt
	txn.CreatedBy = existing.CreatedBy
	txn.Version = existing.Version + 1
	txn.Tags = nil
	m.state.transactions[txn.ID] = txn
	return nil
}

func (m *memoryLedger) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteTransactionInTx"); err != nil {
		return err
	}
	if _, ok := m.state.transactions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.state.transactions, id)
	delete(m.state.links, id)
	return nil
}

func (m *memoryLedger) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hook := m.beforeLock; hook != nil {
		m.beforeLock = nil
		hook(&m.state)
	}
	if err := m.fail("FindTransactionByIDForUpdate"); err != nil {
		return nil, err
	}
	if m.hideWrites {
		return nil, apperrors.ErrNotFound
	}
	txn, ok := m.state.transactions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

// --- reference repositories ---

func (m *memoryLedger) FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.state.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memoryLedger) FindSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.subcategories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (m *memoryLedger) FindActiveTagsByIDs(ctx context.Context, userID int64, ids []int64) ([]domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Tag
	for _, id := range ids {
		if tag, ok := m.state.tags[id]; ok && tag.UserID == userID && tag.Active {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (m *memoryLedger) DeleteTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteTransactionTagsInTx"); err != nil {
		return err
	}
	delete(m.state.links, transactionID)
	return nil
}

func (m *memoryLedger) InsertTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID int64, tagIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertTransactionTagsInTx"); err != nil {
		return err
	}
	m.state.links[transactionID] = append(m.state.links[transactionID], tagIDs...)
	return nil
}

func (m *memoryLedger) FindTagsByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindTagsByTransactionIDs"); err != nil {
		return nil, err
	}
	out := make(map[int64][]domain.Tag)
	for _, txnID := range transactionIDs {
		for _, tagID := range m.state.links[txnID] {
			out[txnID] = append(out[txnID], m.state.tags[tagID])
		}
	}
	return out, nil
}

// --- holder stores ---

type accountStore struct{ m *memoryLedger }

func (s accountStore) FindAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	acc, ok := s.m.state.accounts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s accountStore) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, holderID int64, delta decimal.Decimal) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("ApplyBalanceDeltaInTx:ACCOUNT"); err != nil {
		return err
	}
	acc, ok := s.m.state.accounts[holderID]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrBalanceInvariant, holderID)
	}
	acc.Balance = acc.Balance.Add(delta).Round(2)
	s.m.state.accounts[holderID] = acc
	return nil
}

type creditCardStore struct{ m *memoryLedger }

func (s creditCardStore) FindCreditCardByID(ctx context.Context, id int64) (*domain.CreditCard, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	card, ok := s.m.state.cards[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &card, nil
}

func (s creditCardStore) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, holderID int64, delta decimal.Decimal) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail("ApplyBalanceDeltaInTx:CREDIT_CARD"); err != nil {
		return err
	}
	card, ok := s.m.state.cards[holderID]
	if !ok {
		return fmt.Errorf("%w: credit card %d", apperrors.ErrBalanceInvariant, holderID)
	}
	card.Balance = card.Balance.Add(delta).Round(2)
	s.m.state.cards[holderID] = card
	return nil
}

// --- Mock LedgerEventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.LedgerEventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
