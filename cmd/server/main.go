package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/coinbank/internal/adapter/http"
	"github.com/iho/coinbank/internal/adapter/http/handler"
	"github.com/iho/coinbank/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/coinbank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/coinbank/internal/adapter/repository/redis"
	"github.com/iho/coinbank/internal/cache"
	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/infrastructure/config"
	"github.com/iho/coinbank/internal/infrastructure/logger"
	"github.com/iho/coinbank/internal/infrastructure/metrics"
	"github.com/iho/coinbank/internal/infrastructure/postgres"
	"github.com/iho/coinbank/internal/infrastructure/redis"
	"github.com/iho/coinbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	initialBalance, err := decimal.NewFromString(cfg.InitialBalance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.InitialBalance).Msg("invalid INITIAL_BALANCE")
	}

	limits, err := parseLimits(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid transfer limits")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when configured
	var remote cache.Remote

	redisClient, err := newRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		remote = redisRepo.NewCache(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Balance cache
	balanceCache := cache.NewBalanceCacheWithRemote(remote, cache.Mode(cfg.CacheMode), cfg.CacheTTL, log)

	// Prometheus metrics
	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	provisioner := usecase.NewAccountProvisioner(accountRepo, initialBalance, m, log)
	executor := usecase.NewTransferExecutor(
		txManager,
		accountRepo,
		transactionRepo,
		limits,
		idGen,
		retrier,
		balanceCache,
		cfg.TransferTimeout,
		m,
		log,
	)
	economy := usecase.NewEconomyService(accountRepo, transactionRepo, executor, provisioner, balanceCache, m, log)

	// Handlers and router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EconomyHandler: handler.NewEconomyHandler(economy),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logging:        middleware.NewLoggingMiddleware(log),
		Metrics:        middleware.NewMetricsMiddleware(m),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func parseLimits(cfg *config.Config) (domain.Limits, error) {
	max, err := decimal.NewFromString(cfg.TransferMaxAmount)
	if err != nil {
		return domain.Limits{}, fmt.Errorf("invalid TRANSFER_MAX_AMOUNT: %w", err)
	}

	min, err := decimal.NewFromString(cfg.TransferMinAmount)
	if err != nil {
		return domain.Limits{}, fmt.Errorf("invalid TRANSFER_MIN_AMOUNT: %w", err)
	}

	return domain.Limits{MaxSingleTransfer: max, MinTransferAmount: min}, nil
}

func newRedisClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, nil
	}

	return redis.NewClient(ctx, redisURL)
}
