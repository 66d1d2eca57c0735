package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBalanceTTL is how long a cached balance stays valid.
const DefaultBalanceTTL = 5 * time.Minute

// Mode selects the balance cache backend.
type Mode string

const (
	// ModeMemory uses only the in-process tier.
	ModeMemory Mode = "memory"
	// ModeRemote reads the remote tier first, falling back to memory
	// when the remote is unreachable.
	ModeRemote Mode = "remote"
	// ModeHybrid uses memory as L1 and the remote as L2 with
	// read-through promotion.
	ModeHybrid Mode = "hybrid"
)

// Remote is the remote cache tier contract. Implementations live in the
// redis adapter.
type Remote interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// BalanceCache is the tiered balance read path. Remote failures are
// logged and downgraded to misses; the cache never returns an error to
// its callers, and it never provides mutual exclusion — correctness
// under concurrent transfers belongs to the store.
type BalanceCache struct {
	memory *Memory[decimal.Decimal]
	remote Remote
	mode   Mode
	logger zerolog.Logger
}

// NewBalanceCache creates a memory-only balance cache.
func NewBalanceCache(ttl time.Duration, logger zerolog.Logger) *BalanceCache {
	return &BalanceCache{
		memory: NewMemory[decimal.Decimal](ttl),
		mode:   ModeMemory,
		logger: logger,
	}
}

// NewBalanceCacheWithRemote creates a balance cache backed by a remote
// tier in the given mode. The memory tier is always kept as fallback.
func NewBalanceCacheWithRemote(remote Remote, mode Mode, ttl time.Duration, logger zerolog.Logger) *BalanceCache {
	if remote == nil {
		mode = ModeMemory
	}

	return &BalanceCache{
		memory: NewMemory[decimal.Decimal](ttl),
		remote: remote,
		mode:   mode,
		logger: logger,
	}
}

// BalanceKey builds the cache key for a user's balance.
func BalanceKey(userID string) string {
	return "balance:" + userID
}

// GetBalance returns the cached balance for userID, if present and not
// expired.
func (c *BalanceCache) GetBalance(ctx context.Context, userID string) (decimal.Decimal, bool) {
	key := BalanceKey(userID)

	switch c.mode {
	case ModeRemote:
		value, ok, err := c.remote.Get(ctx, key)
		if err != nil {
			c.logger.Error().Err(err).Str("user_id", userID).Msg("remote cache get failed, falling back to memory")
			return c.memory.Get(key)
		}

		if !ok {
			return decimal.Decimal{}, false
		}

		balance, perr := decimal.NewFromString(value)
		if perr != nil {
			c.logger.Error().Err(perr).Str("user_id", userID).Msg("cached balance is not a decimal")
			return decimal.Decimal{}, false
		}

		return balance, true

	case ModeHybrid:
		if balance, ok := c.memory.Get(key); ok {
			return balance, true
		}

		value, ok, err := c.remote.Get(ctx, key)
		if err != nil {
			c.logger.Error().Err(err).Str("user_id", userID).Msg("remote cache get failed")
			return decimal.Decimal{}, false
		}

		if !ok {
			return decimal.Decimal{}, false
		}

		balance, perr := decimal.NewFromString(value)
		if perr != nil {
			c.logger.Error().Err(perr).Str("user_id", userID).Msg("cached balance is not a decimal")
			return decimal.Decimal{}, false
		}

		// promote the L2 hit into L1
		c.memory.Set(key, balance)

		return balance, true

	default:
		return c.memory.Get(key)
	}
}

// SetBalance overwrites the cached balance for userID in every
// configured tier using the default TTL.
func (c *BalanceCache) SetBalance(ctx context.Context, userID string, balance decimal.Decimal) {
	c.SetBalanceWithTTL(ctx, userID, balance, c.memory.defaultTTL)
}

// SetBalanceWithTTL overwrites the cached balance with an explicit TTL.
// A remote write failure leaves the value cached in memory only.
func (c *BalanceCache) SetBalanceWithTTL(ctx context.Context, userID string, balance decimal.Decimal, ttl time.Duration) {
	key := BalanceKey(userID)

	c.memory.SetWithTTL(key, balance, ttl)

	if c.remote == nil {
		return
	}

	if err := c.remote.Set(ctx, key, balance.String(), ttl); err != nil {
		c.logger.Error().Err(err).Str("user_id", userID).Msg("remote cache set failed, balance cached in memory only")
	}
}

// RemoveBalance drops the cached balance from every tier and returns
// the value removed from memory, if any.
func (c *BalanceCache) RemoveBalance(ctx context.Context, userID string) (decimal.Decimal, bool) {
	key := BalanceKey(userID)

	balance, ok := c.memory.Remove(key)

	if c.remote != nil {
		if _, err := c.remote.Remove(ctx, key); err != nil {
			c.logger.Error().Err(err).Str("user_id", userID).Msg("remote cache remove failed")
		}
	}

	return balance, ok
}

// CleanupExpired sweeps expired memory entries. The remote tier expires
// keys on its own.
func (c *BalanceCache) CleanupExpired() int {
	return c.memory.CleanupExpired()
}

// Stats reports the memory tier state.
func (c *BalanceCache) Stats() Stats {
	return c.memory.Stats()
}

// HealthCheck pings the remote tier when one is configured. A
// memory-only cache is always healthy.
func (c *BalanceCache) HealthCheck(ctx context.Context) error {
	if c.remote == nil {
		return nil
	}

	return c.remote.Ping(ctx)
}
