package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

// MockAccountRepository is an in-memory implementation of
// usecase.AccountRepository. Every method can be overridden through its
// Func field; the default behavior mimics the real store, including the
// conditional debit.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	GetByIDFunc        func(ctx context.Context, id string) (*domain.Account, error)
	ExistsFunc         func(ctx context.Context, id string) (bool, error)
	CreateIfAbsentFunc func(ctx context.Context, account *domain.Account) (*domain.Account, bool, error)
	DebitBalanceFunc   func(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	CreditBalanceFunc  func(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)

	ExistsCalls int
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing the provisioning path.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
}

// Balance returns the current stored balance for id.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Decimal{}
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (m *MockAccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	m.ExistsCalls++
	m.mu.Unlock()
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.accounts[id]
	return ok, nil
}

func (m *MockAccountRepository) CreateIfAbsent(ctx context.Context, account *domain.Account) (*domain.Account, bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.accounts[account.ID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	cp := *account
	m.accounts[account.ID] = &cp
	out := cp
	return &out, true, nil
}

func (m *MockAccountRepository) DebitBalance(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if m.DebitBalanceFunc != nil {
		return m.DebitBalanceFunc(ctx, tx, id, amount, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok || acc.Balance.LessThan(amount) {
		// same verdict as UPDATE ... WHERE balance >= amount matching no row
		return decimal.Decimal{}, domain.ErrInsufficientFunds
	}
	acc.Balance = acc.Balance.Sub(amount)
	acc.UpdatedAt = at
	return acc.Balance, nil
}

func (m *MockAccountRepository) CreditBalance(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if m.CreditBalanceFunc != nil {
		return m.CreditBalanceFunc(ctx, tx, id, amount, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return decimal.Decimal{}, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(amount)
	acc.UpdatedAt = at
	return acc.Balance, nil
}

// MockTransactionRepository is an in-memory usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.Mutex
	records []*domain.TransactionRecord

	CreateFunc func(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records = append(m.records, &cp)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.TransactionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if (r.FromID != nil && *r.FromID == userID) || (r.ToID != nil && *r.ToID == userID) {
			cp := *r
			out = append(out, &cp)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// All returns every stored record.
func (m *MockTransactionRepository) All() []*domain.TransactionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.TransactionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// MockTransaction is a no-op usecase.Transaction that records its fate.
type MockTransaction struct {
	mu         sync.Mutex
	committed  bool
	rolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *MockTransaction) Committed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committed
}

func (t *MockTransaction) RolledBack() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rolledBack
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu           sync.Mutex
	transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.transactions = append(m.transactions, tx)
	return tx, nil
}

// Transactions returns every transaction handed out so far.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockTransaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// MockIDGenerator yields sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("txn-%04d", m.next)
}

// MockBalanceCache is an in-memory usecase.BalanceCache.
type MockBalanceCache struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal

	SetCalls int
}

func NewMockBalanceCache() *MockBalanceCache {
	return &MockBalanceCache{balances: make(map[string]decimal.Decimal)}
}

func (m *MockBalanceCache) GetBalance(_ context.Context, userID string) (decimal.Decimal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[userID]
	return b, ok
}

func (m *MockBalanceCache) SetBalance(_ context.Context, userID string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.balances[userID] = balance
}

// Forget drops a cached balance.
func (m *MockBalanceCache) Forget(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.balances, userID)
}

// MockRetrier runs the operation once without retries.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
