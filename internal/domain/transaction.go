package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded in the ledger.
const (
	TransactionTypeTransfer = "transfer"
)

// TransactionRecord is one immutable ledger row. FromID and ToID are
// pointers because system credits and debits have only one party.
type TransactionRecord struct {
	ID        string
	FromID    *string
	ToID      *string
	Amount    decimal.Decimal
	Type      string
	CreatedAt time.Time
}

// Validate checks record invariants before it is written.
func (t *TransactionRecord) Validate() error {
	if t.ID == "" {
		return ErrInvalidTransaction
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransaction
	}

	if t.Type == "" {
		return ErrInvalidTransaction
	}

	return nil
}
