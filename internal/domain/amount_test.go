package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "100", want: "100"},
		{input: "100.50", want: "100.5"},
		{input: "0.01", want: "0.01"},
		{input: " 25.00 ", want: "25"},
		{input: "1000000", want: "1000000"},
		{input: "", wantErr: ErrEmptyInput},
		{input: "   ", wantErr: ErrEmptyInput},
		{input: "0", wantErr: ErrMalformedAmount},
		{input: "-5", wantErr: ErrMalformedAmount},
		{input: "+5", wantErr: ErrMalformedAmount},
		{input: "1e9", wantErr: ErrMalformedAmount},
		{input: "10.123", wantErr: ErrMalformedAmount},
		{input: "10,00", wantErr: ErrMalformedAmount},
		{input: "abc", wantErr: ErrMalformedAmount},
		{input: "100; DROP TABLE accounts", wantErr: ErrMalformedAmount},
		{input: "1000000.01", wantErr: ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestSanitizeDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain name", input: "Alice", want: "Alice"},
		{name: "trims whitespace", input: "  Bob  ", want: "Bob"},
		{name: "strips control characters", input: "Ca\x00rol\x1b", want: "Carol"},
		{name: "unicode allowed", input: "Dvøåk", want: "Dvøåk"},
		{name: "empty rejected", input: "", wantErr: ErrEmptyInput},
		{name: "whitespace only rejected", input: "   ", wantErr: ErrEmptyInput},
		{name: "too long rejected", input: strings.Repeat("a", MaxDisplayNameLength+1), wantErr: ErrInputTooLong},
		{name: "sql comment rejected", input: "bob--", wantErr: ErrForbiddenInput},
		{name: "quote rejected", input: "o'brien", wantErr: ErrForbiddenInput},
		{name: "script tag rejected", input: "<script>x", wantErr: ErrForbiddenInput},
		{name: "template injection rejected", input: "${name}", wantErr: ErrForbiddenInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeDisplayName(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTransactionRecordValidate(t *testing.T) {
	from, to := "user-1", "user-2"

	valid := TransactionRecord{
		ID:     "txn-1",
		FromID: &from,
		ToID:   &to,
		Amount: mustDecimal(t, "10.00"),
		Type:   TransactionTypeTransfer,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missingID := valid
	missingID.ID = ""
	if err := missingID.Validate(); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("expected ErrInvalidTransaction for missing ID, got %v", err)
	}

	zeroAmount := valid
	zeroAmount.Amount = mustDecimal(t, "0")
	if err := zeroAmount.Validate(); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("expected ErrInvalidTransaction for zero amount, got %v", err)
	}
}
