package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one economy account per external user identity.
// Accounts are created exactly once by the provisioner and mutated only
// by the transfer executor.
type Account struct {
	ID          string
	DisplayName string
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceView is the read model returned to balance queries.
type BalanceView struct {
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// CanCover reports whether the account balance covers amount.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
