package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Limits holds the transfer validation configuration.
type Limits struct {
	// MaxSingleTransfer is the inclusive per-transaction ceiling.
	MaxSingleTransfer decimal.Decimal
	// MinTransferAmount is the smallest accepted transfer unit.
	MinTransferAmount decimal.Decimal
}

// DefaultLimits returns the standard transfer limits.
func DefaultLimits() Limits {
	maxSingle, _ := decimal.NewFromString("10000.00")
	minAmount, _ := decimal.NewFromString("0.01")

	return Limits{
		MaxSingleTransfer: maxSingle,
		MinTransferAmount: minAmount,
	}
}

// ValidationContext carries the account snapshots and amount a rule
// decides on. It is built per validation call and discarded after.
type ValidationContext struct {
	From   *Account
	To     *Account
	Amount decimal.Decimal
	Limits Limits
}

// Rule is a single transfer validation check. Rules with a lower
// priority run earlier.
type Rule interface {
	Name() string
	Priority() int
	Validate(vc *ValidationContext) error
}

// RuleChain runs rules in ascending priority order and returns the
// first failure. The chain is built once and treated as immutable:
// it holds no mutable state and is safe for concurrent use.
type RuleChain struct {
	rules []Rule
}

// NewRuleChain builds a chain with the built-in rules plus any extras,
// sorted by priority.
func NewRuleChain(extra ...Rule) *RuleChain {
	rules := []Rule{
		SelfTransferRule{},
		AmountValidityRule{},
		BalanceSufficiencyRule{},
		LargeTransferLimitRule{},
	}
	rules = append(rules, extra...)

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority() < rules[j].Priority()
	})

	return &RuleChain{rules: rules}
}

// Validate runs every rule in order. It returns nil only if all pass.
func (c *RuleChain) Validate(vc *ValidationContext) error {
	for _, rule := range c.rules {
		if err := rule.Validate(vc); err != nil {
			return err
		}
	}

	return nil
}

// Rules returns the rule names in execution order.
func (c *RuleChain) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, rule := range c.rules {
		names = append(names, rule.Name())
	}

	return names
}

// SelfTransferRule rejects transfers where sender and receiver are the
// same account.
type SelfTransferRule struct{}

func (SelfTransferRule) Name() string  { return "self_transfer_protection" }
func (SelfTransferRule) Priority() int { return 10 }

func (SelfTransferRule) Validate(vc *ValidationContext) error {
	if vc.From.ID == vc.To.ID {
		return NewRuleError("self_transfer_protection", CodeSelfTransfer,
			"you cannot transfer coins to yourself")
	}

	return nil
}

// AmountValidityRule rejects non-positive amounts and amounts below the
// minimum transfer unit.
type AmountValidityRule struct{}

func (AmountValidityRule) Name() string  { return "amount_validity" }
func (AmountValidityRule) Priority() int { return 20 }

func (AmountValidityRule) Validate(vc *ValidationContext) error {
	if vc.Amount.LessThanOrEqual(decimal.Zero) {
		return NewRuleError("amount_validity", CodeInvalidAmount,
			"amount must be positive")
	}

	if vc.Amount.LessThan(vc.Limits.MinTransferAmount) {
		return NewRuleError("amount_validity", CodeInvalidAmount,
			"amount is too small, the minimum transfer is %s coins", vc.Limits.MinTransferAmount)
	}

	return nil
}

// BalanceSufficiencyRule rejects transfers the sender cannot cover.
// This is a fast pre-check on the snapshot balance; the authoritative
// check is the conditional update inside the storage transaction.
type BalanceSufficiencyRule struct{}

func (BalanceSufficiencyRule) Name() string  { return "balance_sufficiency" }
func (BalanceSufficiencyRule) Priority() int { return 30 }

func (BalanceSufficiencyRule) Validate(vc *ValidationContext) error {
	if !vc.From.CanCover(vc.Amount) {
		return NewRuleError("balance_sufficiency", CodeInsufficientBalance,
			"insufficient balance, current balance is %s coins", vc.From.Balance)
	}

	return nil
}

// LargeTransferLimitRule rejects amounts above the per-transaction
// ceiling. The boundary itself is allowed.
type LargeTransferLimitRule struct{}

func (LargeTransferLimitRule) Name() string  { return "large_transfer_limit" }
func (LargeTransferLimitRule) Priority() int { return 40 }

func (LargeTransferLimitRule) Validate(vc *ValidationContext) error {
	if vc.Amount.GreaterThan(vc.Limits.MaxSingleTransfer) {
		return NewRuleError("large_transfer_limit", CodeAmountExceedsLimit,
			"amount exceeds the single transfer limit of %s coins", vc.Limits.MaxSingleTransfer)
	}

	return nil
}
