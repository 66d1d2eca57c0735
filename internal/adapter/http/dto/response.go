package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Balance     decimal.Decimal `json:"balance"`
	Created     bool            `json:"created"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AccountFromResult converts a provisioning result to a response.
func AccountFromResult(r *usecase.EnsureAccountResult) *AccountResponse {
	return &AccountResponse{
		ID:          r.Account.ID,
		DisplayName: r.Account.DisplayName,
		Balance:     r.Account.Balance,
		Created:     r.Created,
		CreatedAt:   r.Account.CreatedAt,
	}
}

// BalanceResponse represents a balance view in API responses.
type BalanceResponse struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// BalanceFromDomain converts a balance view to a response.
func BalanceFromDomain(v *domain.BalanceView) *BalanceResponse {
	return &BalanceResponse{
		UserID:    v.UserID,
		Balance:   v.Balance,
		CreatedAt: v.CreatedAt,
	}
}

// TransferResponse represents a transfer attempt in API responses.
type TransferResponse struct {
	Success       bool            `json:"success"`
	TransactionID string          `json:"transaction_id,omitempty"`
	FromBalance   decimal.Decimal `json:"from_balance"`
	ToBalance     decimal.Decimal `json:"to_balance"`
	Message       string          `json:"message"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(r usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Success:       r.Success,
		TransactionID: r.TransactionID,
		FromBalance:   r.FromBalance,
		ToBalance:     r.ToBalance,
		Message:       r.Message,
	}
}

// TransactionResponse represents a transaction record in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	FromID    *string         `json:"from_id,omitempty"`
	ToID      *string         `json:"to_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a transaction record to a response.
func TransactionFromDomain(t *domain.TransactionRecord) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		FromID:    t.FromID,
		ToID:      t.ToID,
		Amount:    t.Amount,
		Type:      t.Type,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts transaction records to responses.
func TransactionsFromDomain(records []*domain.TransactionRecord) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t)
	}
	return result
}
