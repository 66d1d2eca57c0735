package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transaction errors
	ErrInvalidTransaction  = errors.New("invalid transaction record")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Amount contract errors
	ErrMalformedAmount   = errors.New("amount must be a positive number with at most two decimal places")
	ErrAmountOutOfRange  = errors.New("amount exceeds the maximum accepted value")
	ErrEmptyInput        = errors.New("input must not be empty")
	ErrInputTooLong      = errors.New("input exceeds the maximum length")
	ErrForbiddenInput    = errors.New("input contains forbidden characters")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// RuleCode identifies which validation rule rejected a transfer.
type RuleCode string

const (
	CodeSelfTransfer        RuleCode = "self_transfer"
	CodeInvalidAmount       RuleCode = "invalid_amount"
	CodeInsufficientBalance RuleCode = "insufficient_balance"
	CodeAmountExceedsLimit  RuleCode = "amount_exceeds_limit"
)

// RuleError is a typed validation failure carrying a message that is safe
// to show to the end user verbatim.
type RuleError struct {
	Rule    string
	Code    RuleCode
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// NewRuleError creates a RuleError for the given rule and code.
func NewRuleError(rule string, code RuleCode, format string, args ...any) *RuleError {
	return &RuleError{
		Rule:    rule,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsRuleError unwraps err into a RuleError if possible.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}

// PersistenceError wraps a store failure with the operation and account
// that triggered it. The cause is preserved for logs; the caller may retry.
type PersistenceError struct {
	Op        string
	AccountID string
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("%s for account %s: %v", e.Op, e.AccountID, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with operation and account context.
func NewPersistenceError(op, accountID string, err error) *PersistenceError {
	return &PersistenceError{Op: op, AccountID: accountID, Err: err}
}
