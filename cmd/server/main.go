package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/condorpay/banking/internal/adapter/http"
	"github.com/condorpay/banking/internal/adapter/http/handler"
	"github.com/condorpay/banking/internal/adapter/http/middleware"
	postgresRepo "github.com/condorpay/banking/internal/adapter/repository/postgres"
	redisRepo "github.com/condorpay/banking/internal/adapter/repository/redis"
	"github.com/condorpay/banking/internal/infrastructure/auth"
	"github.com/condorpay/banking/internal/infrastructure/config"
	"github.com/condorpay/banking/internal/infrastructure/eventpublisher"
	"github.com/condorpay/banking/internal/infrastructure/logger"
	"github.com/condorpay/banking/internal/infrastructure/metrics"
	"github.com/condorpay/banking/internal/infrastructure/postgres"
	"github.com/condorpay/banking/internal/infrastructure/redis"
	"github.com/condorpay/banking/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	dailyLimit, err := decimal.NewFromString(cfg.DailyMovementLimit)
	if err != nil {
		appLogger.Fatal().Err(err).Str("value", cfg.DailyMovementLimit).Msg("invalid daily movement limit")
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	topUpRepo := postgresRepo.NewTopUpRepository(pool)
	aliasRepo := postgresRepo.NewAliasRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	refGen := postgresRepo.NewCodeGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	// Use cases
	aliasUC := usecase.NewAliasUseCase(aliasRepo, accountRepo)
	limits := usecase.NewLimitValidator(transactionRepo, dailyLimit)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, transactionRepo, topUpRepo,
		aliasUC, limits, auditRepo, outboxRepo, idGen, refGen, m,
	)
	accountUC := usecase.NewAccountUseCase(accountRepo, clientRepo, idGen)
	authUC := usecase.NewAuthUseCase(clientRepo, accountRepo, auditRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	transactionHandler := handler.NewTransactionHandler(transactionUC, retrier)
	accountHandler := handler.NewAccountHandler(accountUC)
	aliasHandler := handler.NewAliasHandler(aliasUC)
	carrierHandler := handler.NewCarrierHandler(cache)
	authHandler := handler.NewAuthHandler(authUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		AliasHandler:       aliasHandler,
		CarrierHandler:     carrierHandler,
		AuthHandler:        authHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled,
		RateLimiter:        middleware.NewRateLimiter(50, 100),
		RequestLogger:      middleware.NewLoggingMiddleware(appLogger),
	})

	// Outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			appLogger.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
