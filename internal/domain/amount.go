package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Input contract limits.
const (
	MaxDisplayNameLength = 32

	// MaxParsedAmount is the hard cap applied at the parsing boundary.
	// The per-transaction transfer ceiling is separate and configurable.
	MaxParsedAmount = "1000000"
)

// amountPattern accepts positive numbers with at most two decimal places.
// Anything else (signs, exponents, separators, injection payloads) is
// rejected before the value reaches the store.
var amountPattern = regexp.MustCompile(`^\d{1,13}(\.\d{1,2})?$`)

// Patterns that must never survive sanitization of free-text fields.
var forbiddenFragments = []string{
	"--", "/*", "*/", ";", "'", "\"", "\\",
	"<script", "</script", "${", "$(",
}

// ParseAmount validates and parses a user-supplied amount string.
// This is the validate_amount contract consumed by the transfer and
// provisioning paths: it runs before any store I/O.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return decimal.Decimal{}, ErrEmptyInput
	}

	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, ErrMalformedAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrMalformedAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrMalformedAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxParsedAmount)
	if amount.GreaterThan(maxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: maximum is %s", ErrAmountOutOfRange, MaxParsedAmount)
	}

	return amount, nil
}

// SanitizeDisplayName cleans a free-text display name: trims whitespace,
// enforces the length limit, rejects injection fragments and strips
// control characters.
func SanitizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return "", ErrEmptyInput
	}

	if len(name) > MaxDisplayNameLength {
		return "", fmt.Errorf("%w: maximum is %d characters", ErrInputTooLong, MaxDisplayNameLength)
	}

	lower := strings.ToLower(name)
	for _, fragment := range forbiddenFragments {
		if strings.Contains(lower, fragment) {
			return "", ErrForbiddenInput
		}
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}

		b.WriteRune(r)
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "", ErrEmptyInput
	}

	return cleaned, nil
}
