package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/snitin/walletd/internal/adapter/http"
	"github.com/snitin/walletd/internal/adapter/http/handler"
	"github.com/snitin/walletd/internal/adapter/http/middleware"
	postgresRepo "github.com/snitin/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/snitin/walletd/internal/adapter/repository/redis"
	"github.com/snitin/walletd/internal/infrastructure/config"
	"github.com/snitin/walletd/internal/infrastructure/logger"
	"github.com/snitin/walletd/internal/infrastructure/metrics"
	"github.com/snitin/walletd/internal/infrastructure/postgres"
	"github.com/snitin/walletd/internal/infrastructure/redis"
	"github.com/snitin/walletd/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	txnCache := redisRepo.NewTransactionCache(redisClient, cfg.TransactionCacheTTL)

	ledgerMetrics := metrics.New(prometheus.DefaultRegisterer)

	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, transactionRepo, idGen, cfg.MutateMaxAttempts).
		WithTransactionCache(txnCache).
		WithMetrics(ledgerMetrics)

	walletHandler := handler.NewWalletHandler(ledgerUC)
	transactionHandler := handler.NewTransactionHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
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

	if rateLimiter != nil {
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				rateLimiter.Cleanup()
			}
		}()
	}

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

func listenAddr(port string) string {
	return ":" + port
}
