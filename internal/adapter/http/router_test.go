package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/coinbank/internal/adapter/http/handler"
	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users/",
		"GET /api/v1/users/{id}/balance",
		"GET /api/v1/users/{id}/transactions",
		"POST /api/v1/transfers",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig() RouterConfig {
	return RouterConfig{
		EconomyHandler: handler.NewEconomyHandler(&stubEconomyService{}),
		HealthHandler:  &handler.HealthHandler{},
	}
}

type stubEconomyService struct{}

func (stubEconomyService) EnsureAccount(ctx context.Context, userID, displayName string) (*usecase.EnsureAccountResult, error) {
	return &usecase.EnsureAccountResult{Account: &domain.Account{ID: userID}}, nil
}

func (stubEconomyService) GetBalance(ctx context.Context, userID string) (*domain.BalanceView, error) {
	return &domain.BalanceView{UserID: userID}, nil
}

func (stubEconomyService) Transfer(ctx context.Context, fromID, toID, amountStr string) usecase.TransferResult {
	return usecase.TransferResult{}
}

func (stubEconomyService) TransactionHistory(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	return []*domain.TransactionRecord{}, nil
}
