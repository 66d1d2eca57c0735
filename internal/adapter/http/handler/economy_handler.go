package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/coinbank/internal/adapter/http/dto"
	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

// EconomyService is the slice of the coordinator the HTTP layer needs.
type EconomyService interface {
	EnsureAccount(ctx context.Context, userID, displayName string) (*usecase.EnsureAccountResult, error)
	GetBalance(ctx context.Context, userID string) (*domain.BalanceView, error)
	Transfer(ctx context.Context, fromID, toID, amountStr string) usecase.TransferResult
	TransactionHistory(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error)
}

// EconomyHandler handles economy-related HTTP requests.
type EconomyHandler struct {
	economy EconomyService
}

// NewEconomyHandler creates a new EconomyHandler.
func NewEconomyHandler(economy EconomyService) *EconomyHandler {
	return &EconomyHandler{economy: economy}
}

// EnsureAccount provisions an account for a user.
func (h *EconomyHandler) EnsureAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.EnsureAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	result, err := h.economy.EnsureAccount(r.Context(), req.UserID, req.DisplayName)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to provision account", err.Error())

		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	writeJSON(w, status, dto.AccountFromResult(result))
}

// GetBalance returns the balance for a user.
func (h *EconomyHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	view, err := h.economy.GetBalance(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(view))
}

// Transfer moves coins between two users. A domain-level rejection is
// still a 200: the outcome is in the body, the way a bot command
// reports it to the user.
func (h *EconomyHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.FromID == "" || req.ToID == "" {
		writeError(w, http.StatusBadRequest, "missing sender or receiver ID", "")
		return
	}

	result := h.economy.Transfer(r.Context(), req.FromID, req.ToID, req.Amount)

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}

// TransactionHistory lists transactions for a user, newest first.
func (h *EconomyHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", usecase.DefaultHistoryLimit)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.economy.TransactionHistory(r.Context(), userID, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}
