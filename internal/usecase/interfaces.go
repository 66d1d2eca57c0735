package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Exists(ctx context.Context, id string) (bool, error)
	// CreateIfAbsent inserts the account unless one with the same id
	// already exists. It returns the persisted row and whether this
	// call created it; losing a creation race is not an error.
	CreateIfAbsent(ctx context.Context, account *domain.Account) (*domain.Account, bool, error)
	// DebitBalance decrements the balance inside tx only if the result
	// stays non-negative, returning the new balance. It returns
	// domain.ErrInsufficientFunds when the condition does not hold.
	DebitBalance(ctx context.Context, tx Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	// CreditBalance increments the balance inside tx and returns the
	// new balance.
	CreditBalance(ctx context.Context, tx Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
}

// TransactionRepository defines data access for the transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.TransactionRecord) error
	GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// BalanceCache is the balance read/write-through cache consumed by the
// coordinator and executor. Implementations never return errors; a
// failed backend is a miss.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, bool)
	SetBalance(ctx context.Context, userID string, balance decimal.Decimal)
}
