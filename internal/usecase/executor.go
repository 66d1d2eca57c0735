package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/infrastructure/metrics"
)

// TransferExecutor moves currency between two accounts with
// all-or-nothing, at-most-once semantics. Serialization of transfers
// sharing an account comes from the store's conditional update; the
// cache and the validation chain provide no mutual exclusion.
type TransferExecutor struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	chain           *domain.RuleChain
	limits          domain.Limits
	idGen           IDGenerator
	retrier         Retrier
	cache           BalanceCache
	txTimeout       time.Duration
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewTransferExecutor creates a TransferExecutor. retrier, cache and
// metrics may be nil; the executor then runs without conflict retries,
// cache write-through or instrumentation.
func NewTransferExecutor(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	limits domain.Limits,
	idGen IDGenerator,
	retrier Retrier,
	cache BalanceCache,
	txTimeout time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TransferExecutor {
	if txTimeout <= 0 {
		txTimeout = DefaultTransactionTimeout
	}

	return &TransferExecutor{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		chain:           domain.NewRuleChain(),
		limits:          limits,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
		txTimeout:       txTimeout,
		metrics:         m,
		logger:          logger,
	}
}

// TransferOutcome is a committed transfer: the ledger row plus both
// parties' post-transfer balances.
type TransferOutcome struct {
	Record      *domain.TransactionRecord
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// Execute performs one transfer. Both accounts must already exist; the
// executor never auto-provisions. On success the cached balances of
// both parties are overwritten with their committed values.
func (e *TransferExecutor) Execute(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*TransferOutcome, error) {
	start := time.Now()

	from, err := e.accountRepo.GetByID(ctx, fromID)
	if err != nil {
		return nil, e.resolveErr(fromID, err)
	}

	to, err := e.accountRepo.GetByID(ctx, toID)
	if err != nil {
		return nil, e.resolveErr(toID, err)
	}

	vc := &domain.ValidationContext{
		From:   from,
		To:     to,
		Amount: amount,
		Limits: e.limits,
	}
	if err := e.chain.Validate(vc); err != nil {
		e.countRejection(err)

		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.txTimeout)
	defer cancel()

	var outcome *TransferOutcome

	run := func() error {
		var txErr error

		outcome, txErr = e.runTransaction(ctx, fromID, toID, amount)

		return txErr
	}

	if e.retrier != nil {
		err = e.retrier.Retry(ctx, run)
	} else {
		err = run()
	}

	if err != nil {
		err = e.classify(fromID, toID, err)
		e.countRejection(err)

		return nil, err
	}

	if e.cache != nil {
		// overwrite, not invalidate: the next read must not miss
		e.cache.SetBalance(ctx, fromID, outcome.FromBalance)
		e.cache.SetBalance(ctx, toID, outcome.ToBalance)
	}

	if e.metrics != nil {
		e.metrics.TransfersCompleted.Inc()
		e.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		e.metrics.TransferAmount.Observe(amount.InexactFloat64())
	}

	e.logger.Info().
		Str("transaction_id", outcome.Record.ID).
		Str("from_id", fromID).
		Str("to_id", toID).
		Str("amount", amount.String()).
		Msg("transfer committed")

	return outcome, nil
}

func (e *TransferExecutor) countRejection(err error) {
	if e.metrics == nil {
		return
	}

	e.metrics.TransfersRejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	if ruleErr, ok := domain.AsRuleError(err); ok {
		return string(ruleErr.Code)
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "storage"
	}
}

// runTransaction executes the debit, credit and log insert as one
// storage transaction. Any failure rolls the whole transaction back.
func (e *TransferExecutor) runTransaction(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*TransferOutcome, error) {
	tx, err := e.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	fromBalance, err := e.accountRepo.DebitBalance(ctx, tx, fromID, amount, now)
	if err != nil {
		return nil, err
	}

	toBalance, err := e.accountRepo.CreditBalance(ctx, tx, toID, amount, now)
	if err != nil {
		return nil, err
	}

	record := &domain.TransactionRecord{
		ID:        e.idGen.Generate(),
		FromID:    &fromID,
		ToID:      &toID,
		Amount:    amount,
		Type:      domain.TransactionTypeTransfer,
		CreatedAt: now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := e.transactionRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer transaction: %w", err)
	}

	return &TransferOutcome{
		Record:      record,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

func (e *TransferExecutor) resolveErr(accountID string, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("account %s: %w", accountID, domain.ErrAccountNotFound)
	}

	return domain.NewPersistenceError("resolve account", accountID, err)
}

// classify maps a transaction failure onto the executor's error
// taxonomy: insufficient funds and validation errors pass through,
// deadline expiry stays recognizable as a timeout, everything else
// becomes a PersistenceError the caller may retry.
func (e *TransferExecutor) classify(fromID, toID string, err error) error {
	if errors.Is(err, domain.ErrInsufficientFunds) {
		return err
	}

	if _, ok := domain.AsRuleError(err); ok {
		return err
	}

	if errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		e.logger.Error().Err(err).Str("from_id", fromID).Str("to_id", toID).Msg("transfer timed out, transaction rolled back")
		return fmt.Errorf("transfer %s -> %s: %w", fromID, toID, context.DeadlineExceeded)
	}

	e.logger.Error().Err(err).Str("from_id", fromID).Str("to_id", toID).Msg("transfer failed")

	return domain.NewPersistenceError("execute transfer", fromID, err)
}
