package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/coinbank/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"malformed amount", domain.ErrMalformedAmount, http.StatusBadRequest},
		{"amount out of range", domain.ErrAmountOutOfRange, http.StatusBadRequest},
		{"forbidden input", domain.ErrForbiddenInput, http.StatusBadRequest},
		{"rule failure", domain.NewRuleError("test", domain.CodeSelfTransfer, "no"), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Fatalf("expected default for unparseable value, got %d", got)
	}
}
