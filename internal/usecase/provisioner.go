package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/cache"
	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/infrastructure/metrics"
)

// AccountProvisioner guarantees exactly one persisted account per
// external identity. Uniqueness is enforced by the store's constraint
// on the account id, never by an in-process lock; the existence cache
// only saves round-trips.
type AccountProvisioner struct {
	accountRepo    AccountRepository
	existsCache    *cache.Memory[bool]
	initialBalance decimal.Decimal
	metrics        *metrics.Metrics
	logger         zerolog.Logger
}

// NewAccountProvisioner creates an AccountProvisioner with the given
// initial balance for new accounts. m may be nil.
func NewAccountProvisioner(accountRepo AccountRepository, initialBalance decimal.Decimal, m *metrics.Metrics, logger zerolog.Logger) *AccountProvisioner {
	return &AccountProvisioner{
		accountRepo:    accountRepo,
		existsCache:    cache.NewMemory[bool](ExistenceCacheTTL),
		initialBalance: initialBalance,
		metrics:        m,
		logger:         logger,
	}
}

// EnsureAccountResult reports the provisioned account and whether this
// call created it.
type EnsureAccountResult struct {
	Account *domain.Account
	Created bool
}

// EnsureAccount returns the account for id, creating it with the
// default initial balance when absent. Calling it concurrently for the
// same id yields exactly one persisted account; the loser of the
// creation race reads back the winner's row.
func (p *AccountProvisioner) EnsureAccount(ctx context.Context, id, displayName string) (*EnsureAccountResult, error) {
	name, err := domain.SanitizeDisplayName(displayName)
	if err != nil {
		return nil, fmt.Errorf("invalid display name: %w", err)
	}

	exists, err := p.checkExists(ctx, id)
	if err != nil {
		return nil, err
	}

	if exists {
		account, err := p.accountRepo.GetByID(ctx, id)
		if err != nil {
			return nil, domain.NewPersistenceError("load account", id, err)
		}

		return &EnsureAccountResult{Account: account, Created: false}, nil
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:          id,
		DisplayName: name,
		Balance:     p.initialBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	persisted, created, err := p.accountRepo.CreateIfAbsent(ctx, account)
	if err != nil {
		return nil, domain.NewPersistenceError("create account", id, err)
	}

	p.existsCache.Set(id, true)

	if created {
		if p.metrics != nil {
			p.metrics.AccountsProvisioned.Inc()
		}

		p.logger.Info().Str("user_id", id).Str("balance", persisted.Balance.String()).Msg("account provisioned")
	} else {
		p.logger.Debug().Str("user_id", id).Msg("account already provisioned by a concurrent creator")
	}

	return &EnsureAccountResult{Account: persisted, Created: created}, nil
}

// CheckExists reports whether an account exists for id, using the
// existence cache before hitting the store.
func (p *AccountProvisioner) CheckExists(ctx context.Context, id string) (bool, error) {
	return p.checkExists(ctx, id)
}

func (p *AccountProvisioner) checkExists(ctx context.Context, id string) (bool, error) {
	if exists, ok := p.existsCache.Get(id); ok {
		return exists, nil
	}

	exists, err := p.accountRepo.Exists(ctx, id)
	if err != nil {
		return false, domain.NewPersistenceError("check account existence", id, err)
	}

	p.existsCache.Set(id, exists)

	return exists, nil
}

// InvalidateExistence drops the cached verdict for id. Passing the
// empty string clears the whole cache.
func (p *AccountProvisioner) InvalidateExistence(id string) {
	if id == "" {
		p.existsCache.Clear()
		return
	}

	p.existsCache.Remove(id)
}
