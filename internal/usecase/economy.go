package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/infrastructure/metrics"
)

// EconomyService is the façade consumed by the command-handling layer.
// It exposes balance queries and transfers, converting every internal
// failure into a uniform result with one human-readable sentence.
type EconomyService struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	executor        *TransferExecutor
	provisioner     *AccountProvisioner
	cache           BalanceCache
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewEconomyService wires the coordinator. The service owns the cache
// and executor references; neither holds a reference back. m may be nil.
func NewEconomyService(
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	executor *TransferExecutor,
	provisioner *AccountProvisioner,
	cache BalanceCache,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *EconomyService {
	return &EconomyService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		executor:        executor,
		provisioner:     provisioner,
		cache:           cache,
		metrics:         m,
		logger:          logger,
	}
}

// TransferResult is the caller-friendly outcome of a transfer attempt.
// Message is always safe to show to the end user.
type TransferResult struct {
	Success       bool
	TransactionID string
	FromBalance   decimal.Decimal
	ToBalance     decimal.Decimal
	Message       string
}

// GetBalance returns the balance view for userID. The cache is
// consulted first; a miss verifies the account against the store and
// repopulates the cache. This path never creates an account.
func (s *EconomyService) GetBalance(ctx context.Context, userID string) (*domain.BalanceView, error) {
	if s.metrics != nil {
		s.metrics.BalanceQueries.Inc()
	}

	if balance, ok := s.cache.GetBalance(ctx, userID); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}

		account, err := s.accountRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, domain.ErrAccountNotFound
			}

			return nil, domain.NewPersistenceError("load account", userID, err)
		}

		return &domain.BalanceView{
			UserID:    userID,
			Balance:   balance,
			CreatedAt: account.CreatedAt,
		}, nil
	}

	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, domain.NewPersistenceError("load account", userID, err)
	}

	s.cache.SetBalance(ctx, userID, account.Balance)

	return &domain.BalanceView{
		UserID:    userID,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}, nil
}

// EnsureAccount provisions an account for userID if needed.
func (s *EconomyService) EnsureAccount(ctx context.Context, userID, displayName string) (*EnsureAccountResult, error) {
	return s.provisioner.EnsureAccount(ctx, userID, displayName)
}

// Transfer parses amountStr, verifies both parties exist, and delegates
// to the executor. Failures never propagate as errors: they come back
// as a result with Success=false and a displayable message.
func (s *EconomyService) Transfer(ctx context.Context, fromID, toID, amountStr string) TransferResult {
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return TransferResult{Message: amountMessage(err)}
	}

	if _, err := s.accountRepo.GetByID(ctx, fromID); err != nil {
		return s.failureResult(fromID, toID, "the sender has no account yet", err)
	}

	to, err := s.accountRepo.GetByID(ctx, toID)
	if err != nil {
		return s.failureResult(fromID, toID, "the receiver has no account yet", err)
	}

	outcome, err := s.executor.Execute(ctx, fromID, toID, amount)
	if err != nil {
		return TransferResult{Message: s.transferMessage(err)}
	}

	return TransferResult{
		Success:       true,
		TransactionID: outcome.Record.ID,
		FromBalance:   outcome.FromBalance,
		ToBalance:     outcome.ToBalance,
		Message: fmt.Sprintf("transferred %s coins to %s, your balance is now %s coins",
			amount, to.DisplayName, outcome.FromBalance),
	}
}

// TransactionHistory lists transactions touching userID, newest first.
func (s *EconomyService) TransactionHistory(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	if _, err := s.accountRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, domain.NewPersistenceError("load account", userID, err)
	}

	records, err := s.transactionRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.NewPersistenceError("list transactions", userID, err)
	}

	return records, nil
}

func (s *EconomyService) failureResult(fromID, toID, notFoundMsg string, err error) TransferResult {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return TransferResult{Message: notFoundMsg}
	}

	s.logger.Error().Err(err).Str("from_id", fromID).Str("to_id", toID).Msg("transfer aborted before execution")

	return TransferResult{Message: "the transfer could not be processed, please try again later"}
}

// transferMessage renders an executor failure as one sentence for the
// end user. Store-level details stay in the logs.
func (s *EconomyService) transferMessage(err error) string {
	if re, ok := domain.AsRuleError(err); ok {
		return re.Message
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient balance for this transfer"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "one of the accounts does not exist"
	case errors.Is(err, context.DeadlineExceeded):
		return "the transfer timed out, nothing was charged"
	default:
		return "the transfer could not be processed, please try again later"
	}
}

func amountMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "please provide an amount"
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return fmt.Sprintf("the amount is too large, the maximum is %s coins", domain.MaxParsedAmount)
	default:
		return "the amount must be a positive number with at most two decimal places"
	}
}
