package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/condorpay/banking/internal/adapter/http"
	"github.com/condorpay/banking/internal/adapter/http/handler"
	"github.com/condorpay/banking/internal/adapter/repository/postgres"
	redisrepo "github.com/condorpay/banking/internal/adapter/repository/redis"
	"github.com/condorpay/banking/internal/infrastructure/auth"
	infraredis "github.com/condorpay/banking/internal/infrastructure/redis"
	"github.com/condorpay/banking/internal/usecase"
	"github.com/condorpay/banking/tests/testutil"
)

// testStack wires the full HTTP stack against real Postgres and Redis.
type testStack struct {
	DB          *testutil.TestDB
	Router      http.Handler
	AccountRepo *postgres.AccountRepository
	OutboxRepo  *postgres.OutboxRepository
	AuditRepo   *postgres.AuditRepository
}

func newTestStack(t *testing.T, dailyLimit decimal.Decimal) *testStack {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	topUpRepo := postgres.NewTopUpRepository(pool)
	aliasRepo := postgres.NewAliasRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	refGen := postgres.NewCodeGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())

	resolver := usecase.NewAliasUseCase(aliasRepo, accountRepo)
	limits := usecase.NewLimitValidator(transactionRepo, dailyLimit)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, transactionRepo, topUpRepo,
		resolver, limits, auditRepo, outboxRepo, idGen, refGen, nil)
	accountUC := usecase.NewAccountUseCase(accountRepo, clientRepo, idGen)
	authUC := usecase.NewAuthUseCase(clientRepo, accountRepo, auditRepo, idGen)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	jwtManager := auth.NewJWTManager("integration-test-secret", time.Hour)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, retrier),
		AliasHandler:       handler.NewAliasHandler(resolver),
		CarrierHandler:     handler.NewCarrierHandler(redisrepo.NewCache(redisClient)),
		AuthHandler:        handler.NewAuthHandler(authUC, jwtManager),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		JWTManager:         jwtManager,
	})

	return &testStack{
		DB:          testDB,
		Router:      router,
		AccountRepo: accountRepo,
		OutboxRepo:  outboxRepo,
		AuditRepo:   auditRepo,
	}
}
