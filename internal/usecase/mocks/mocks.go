package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                 func(ctx context.Context, account *domain.Account) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTxFunc              func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByNumberFunc            func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc       func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateAvailableBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumberTx(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	return m.GetByNumber(ctx, number)
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateAvailableBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateAvailableBalanceFunc != nil {
		return m.UpdateAvailableBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.AvailableBalance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.ClientID == clientID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Transaction, error)
	UpdateStatusFunc        func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	DailyConfirmedTotalFunc func(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (decimal.Decimal, error)
	TopUpStatsFunc          func(ctx context.Context, accountID string, from, to *time.Time) ([]*usecase.CarrierStats, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

// Seed stores a transaction directly, bypassing any override.
func (m *MockTransactionRepository) Seed(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.IdempotencyKey != nil && *t.IdempotencyKey == key {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.transactions[id]; ok {
		t.Status = status
		t.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if matchesFilter(t, filter) {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter usecase.TransactionFilter) (int64, error) {
	transactions, _ := m.List(ctx, filter)
	return int64(len(transactions)), nil
}

func (m *MockTransactionRepository) DailyConfirmedTotal(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (decimal.Decimal, error) {
	if m.DailyConfirmedTotalFunc != nil {
		return m.DailyConfirmedTotalFunc(ctx, tx, accountID, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, t := range m.transactions {
		if t.SourceAccountID == accountID &&
			t.Status == domain.TransactionStatusConfirmed &&
			sameDay(t.CreatedAt, day) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) TopUpStatsByCarrier(ctx context.Context, accountID string, from, to *time.Time) ([]*usecase.CarrierStats, error) {
	if m.TopUpStatsFunc != nil {
		return m.TopUpStatsFunc(ctx, accountID, from, to)
	}
	return nil, nil
}

func matchesFilter(t *domain.Transaction, filter usecase.TransactionFilter) bool {
	if filter.AccountID != "" {
		if t.SourceAccountID != filter.AccountID &&
			(t.DestinationAccountID == nil || *t.DestinationAccountID != filter.AccountID) {
			return false
		}
	}
	if filter.Type != "" && t.Type != filter.Type {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	return true
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Truncate(24*time.Hour) == b.UTC().Truncate(24*time.Hour)
}

// MockTopUpRepository is a mock implementation of TopUpRepository.
type MockTopUpRepository struct {
	mu      sync.RWMutex
	details map[string]*domain.TopUpDetail

	CreateFunc func(ctx context.Context, tx usecase.Transaction, detail *domain.TopUpDetail) error
}

func NewMockTopUpRepository() *MockTopUpRepository {
	return &MockTopUpRepository{
		details: make(map[string]*domain.TopUpDetail),
	}
}

func (m *MockTopUpRepository) Create(ctx context.Context, tx usecase.Transaction, detail *domain.TopUpDetail) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, detail)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[detail.TransactionID] = detail
	return nil
}

func (m *MockTopUpRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.TopUpDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.details[transactionID]; ok {
		return d, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// MockAliasRepository is a mock implementation of AliasRepository.
type MockAliasRepository struct {
	mu      sync.RWMutex
	aliases map[string]*domain.Alias

	GetActiveByValueFunc func(ctx context.Context, value string) (*domain.Alias, error)
}

func NewMockAliasRepository() *MockAliasRepository {
	return &MockAliasRepository{
		aliases: make(map[string]*domain.Alias),
	}
}

// Seed stores an alias keyed by its value.
func (m *MockAliasRepository) Seed(alias *domain.Alias) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aliases[alias.Value] = alias
}

func (m *MockAliasRepository) GetActiveByValue(ctx context.Context, value string) (*domain.Alias, error) {
	if m.GetActiveByValueFunc != nil {
		return m.GetActiveByValueFunc(ctx, value)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.aliases[value]; ok && a.Active {
		return a, nil
	}
	return nil, domain.ErrAliasNotFound
}

func (m *MockAliasRepository) GetActiveByValueTx(ctx context.Context, tx usecase.Transaction, value string) (*domain.Alias, error) {
	return m.GetActiveByValue(ctx, value)
}

func (m *MockAliasRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var aliases []*domain.Alias
	for _, a := range m.aliases {
		if a.ClientID == clientID {
			aliases = append(aliases, a)
		}
	}
	return aliases, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	logs []*domain.AuditLog

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.logs...), nil
}

// Logs returns all recorded entries.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
			if len(events) == limit {
				break
			}
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published || !e.CreatedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	mu           sync.Mutex
	counter      int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("test-id-%d", m.counter)
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	NewReferenceFunc func(kind domain.TransactionType) string
	mu               sync.Mutex
	counter          int
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) NewReference(kind domain.TransactionType) string {
	if m.NewReferenceFunc != nil {
		return m.NewReferenceFunc(kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	prefix := "TRF"
	if kind == domain.TransactionTypeTopUp {
		prefix = "RCG"
	}
	return fmt.Sprintf("%s-2026-TEST%04d", prefix, m.counter)
}

func (m *MockReferenceGenerator) NewTopUpCode(carrier domain.Carrier) string {
	return carrier.ShortCode() + "-RCG-2026-TESTCODE"
}

func (m *MockReferenceGenerator) NewConfirmationCode(carrier domain.Carrier) string {
	return "CONF-2026-" + carrier.Code + "-TESTCODE"
}

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client

	GetByAccountNumberFunc func(ctx context.Context, number string) (*domain.Client, error)
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]*domain.Client),
	}
}

// Seed stores a client directly.
func (m *MockClientRepository) Seed(client *domain.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClientNotFound
}

func (m *MockClientRepository) GetByAccountNumber(ctx context.Context, number string) (*domain.Client, error) {
	if m.GetByAccountNumberFunc != nil {
		return m.GetByAccountNumberFunc(ctx, number)
	}
	return nil, domain.ErrClientNotFound
}
