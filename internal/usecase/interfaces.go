package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByNumberTx(ctx context.Context, tx Transaction, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateAvailableBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error)
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByAccountNumber(ctx context.Context, number string) (*domain.Client, error)
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	AccountID string
	Type      domain.TransactionType
	Status    domain.TransactionStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
	// DailyConfirmedTotal sums confirmed movement amounts for the account on
	// the given day. Evaluated under the caller's row locks.
	DailyConfirmedTotal(ctx context.Context, tx Transaction, accountID string, day time.Time) (decimal.Decimal, error)
	TopUpStatsByCarrier(ctx context.Context, accountID string, from, to *time.Time) ([]*CarrierStats, error)
}

// CarrierStats aggregates confirmed top-ups per carrier.
type CarrierStats struct {
	Carrier          string
	Count            int64
	TotalAmount      decimal.Decimal
	AverageAmount    decimal.Decimal
	TotalCommissions decimal.Decimal
}

// TopUpRepository defines data access for top-up detail rows.
type TopUpRepository interface {
	Create(ctx context.Context, tx Transaction, detail *domain.TopUpDetail) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.TopUpDetail, error)
}

// AliasRepository defines data access for payment aliases.
type AliasRepository interface {
	GetActiveByValue(ctx context.Context, value string) (*domain.Alias, error)
	GetActiveByValueTx(ctx context.Context, tx Transaction, value string) (*domain.Alias, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Alias, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator produces the human-facing codes attached to
// transactions. Suffixes carry random entropy; the store's uniqueness
// constraint is the final arbiter.
type ReferenceGenerator interface {
	NewReference(kind domain.TransactionType) string
	NewTopUpCode(carrier domain.Carrier) string
	NewConfirmationCode(carrier domain.Carrier) string
}

// Retrier re-runs an operation on retryable store errors. Used by the HTTP
// layer, never inside an atomic unit.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
