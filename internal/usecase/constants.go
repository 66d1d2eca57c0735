package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a transfer's storage transaction.
	// A timed-out transaction rolls back; nothing partial is ever visible.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultInitialBalance is granted to newly provisioned accounts.
	DefaultInitialBalance = "1000.00"

	// ExistenceCacheTTL is how long a user-existence verdict stays cached.
	ExistenceCacheTTL = 5 * time.Minute

	// DefaultHistoryLimit caps transaction history pages.
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
