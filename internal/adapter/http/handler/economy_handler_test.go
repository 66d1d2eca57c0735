package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/coinbank/internal/adapter/http/dto"
	"github.com/iho/coinbank/internal/adapter/http/handler"
	"github.com/iho/coinbank/internal/adapter/http/handler/mocks"
	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

func newEconomyHandler(t *testing.T) (*handler.EconomyHandler, *mocks.MockEconomyService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockEconomyService(ctrl)

	return handler.NewEconomyHandler(service), service
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestEconomyHandler_EnsureAccount(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			EnsureAccount(gomock.Any(), "user-1", "Alice").
			Return(&usecase.EnsureAccountResult{
				Account: &domain.Account{
					ID:          "user-1",
					DisplayName: "Alice",
					Balance:     decimal.RequireFromString("1000.00"),
					CreatedAt:   time.Now().UTC(),
				},
				Created: true,
			}, nil)

		body, _ := json.Marshal(dto.EnsureAccountRequest{UserID: "user-1", DisplayName: "Alice"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.EnsureAccount(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var resp dto.AccountResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Created || resp.ID != "user-1" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("already exists", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			EnsureAccount(gomock.Any(), "user-1", "Alice").
			Return(&usecase.EnsureAccountResult{
				Account: &domain.Account{ID: "user-1", DisplayName: "Alice"},
				Created: false,
			}, nil)

		body, _ := json.Marshal(dto.EnsureAccountRequest{UserID: "user-1", DisplayName: "Alice"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.EnsureAccount(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for an existing account, got %d", rec.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		h, _ := newEconomyHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.EnsureAccount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		h, _ := newEconomyHandler(t)

		body, _ := json.Marshal(dto.EnsureAccountRequest{DisplayName: "Alice"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.EnsureAccount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejected display name", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			EnsureAccount(gomock.Any(), "user-1", "<script>").
			Return(nil, domain.ErrForbiddenInput)

		body, _ := json.Marshal(dto.EnsureAccountRequest{UserID: "user-1", DisplayName: "<script>"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.EnsureAccount(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEconomyHandler_GetBalance(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			GetBalance(gomock.Any(), "user-1").
			Return(&domain.BalanceView{
				UserID:  "user-1",
				Balance: decimal.RequireFromString("750.00"),
			}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/user-1/balance", nil), "id", "user-1")
		rec := httptest.NewRecorder()

		h.GetBalance(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.BalanceResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Balance.Equal(decimal.RequireFromString("750.00")) {
			t.Fatalf("balance = %s, want 750.00", resp.Balance)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			GetBalance(gomock.Any(), "ghost").
			Return(nil, domain.ErrAccountNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/ghost/balance", nil), "id", "ghost")
		rec := httptest.NewRecorder()

		h.GetBalance(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestEconomyHandler_Transfer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			Transfer(gomock.Any(), "alice", "bob", "200.00").
			Return(usecase.TransferResult{
				Success:       true,
				TransactionID: "txn-1",
				FromBalance:   decimal.RequireFromString("300.00"),
				ToBalance:     decimal.RequireFromString("200.00"),
				Message:       "transferred 200 coins to bob, your balance is now 300 coins",
			})

		body, _ := json.Marshal(dto.TransferRequest{FromID: "alice", ToID: "bob", Amount: "200.00"})
		req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Transfer(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.TransferResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success || resp.TransactionID != "txn-1" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("domain rejection still responds 200", func(t *testing.T) {
		h, service := newEconomyHandler(t)

		service.EXPECT().
			Transfer(gomock.Any(), "alice", "alice", "10.00").
			Return(usecase.TransferResult{Message: "you cannot transfer coins to yourself"})

		body, _ := json.Marshal(dto.TransferRequest{FromID: "alice", ToID: "alice", Amount: "10.00"})
		req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Transfer(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.TransferResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Success {
			t.Fatal("expected success=false")
		}
		if resp.Message != "you cannot transfer coins to yourself" {
			t.Fatalf("unexpected message: %q", resp.Message)
		}
	})

	t.Run("missing parties", func(t *testing.T) {
		h, _ := newEconomyHandler(t)

		body, _ := json.Marshal(dto.TransferRequest{Amount: "10.00"})
		req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Transfer(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEconomyHandler_TransactionHistory(t *testing.T) {
	h, service := newEconomyHandler(t)

	from := "alice"
	to := "bob"
	service.EXPECT().
		TransactionHistory(gomock.Any(), "alice", 5, 10).
		Return([]*domain.TransactionRecord{
			{
				ID:     "txn-1",
				FromID: &from,
				ToID:   &to,
				Amount: decimal.RequireFromString("10.00"),
				Type:   domain.TransactionTypeTransfer,
			},
		}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/alice/transactions?limit=5&offset=10", nil), "id", "alice")
	rec := httptest.NewRecorder()

	h.TransactionHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.TransactionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "txn-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
