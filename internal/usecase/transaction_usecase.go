package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/infrastructure/metrics"
)

// TransactionUseCase orchestrates money movements: it creates transaction
// records, advances them PENDING -> CONFIRMED with the balance deltas
// applied in the same atomic unit, and reverses confirmed transfers.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	topUpRepo       TopUpRepository
	resolver        *AliasUseCase
	limits          *LimitValidator
	auditRepo       AuditRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	refGen          ReferenceGenerator
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	topUpRepo TopUpRepository,
	resolver *AliasUseCase,
	limits *LimitValidator,
	auditRepo AuditRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	refGen ReferenceGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		topUpRepo:       topUpRepo,
		resolver:        resolver,
		limits:          limits,
		auditRepo:       auditRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		refGen:          refGen,
		metrics:         m,
	}
}

// InitiateTransferInput represents input for creating a transfer.
type InitiateTransferInput struct {
	SourceAccountID       string
	DestinationIdentifier string
	Amount                decimal.Decimal
	Description           string
	OriginIP              string
	Device                string
	IdempotencyKey        string
}

// InitiateTopUpInput represents input for creating a top-up.
type InitiateTopUpInput struct {
	SourceAccountID string
	PhoneNumber     string
	Carrier         string
	Amount          decimal.Decimal
	Type            domain.TopUpType
	OriginIP        string
	Device          string
	IdempotencyKey  string
}

// MovementResult is a finalized transaction joined with the refreshed
// source balance. TopUp is set for TOP_UP transactions only.
type MovementResult struct {
	Transaction   *domain.Transaction
	TopUp         *domain.TopUpDetail
	SourceBalance decimal.Decimal
}

// InitiateTransfer moves amount plus commission from the source account to
// the account resolved from the destination identifier, all-or-nothing.
func (uc *TransactionUseCase) InitiateTransfer(ctx context.Context, input InitiateTransferInput) (result *MovementResult, err error) {
	defer func() { uc.recordMovementError(err) }()

	if err := domain.ValidateTransferAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if prior, err := uc.replayIdempotent(ctx, input.IdempotencyKey); prior != nil || err != nil {
		return prior, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	destination, err := uc.resolver.Resolve(txCtx, tx, input.DestinationIdentifier)
	if err != nil {
		return nil, err
	}

	if destination.ID == input.SourceAccountID {
		return nil, domain.ErrSameAccount
	}

	source, destination, err := uc.lockPair(txCtx, tx, input.SourceAccountID, destination.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	commission := domain.Commission(domain.TransactionTypeTransfer, input.Amount)
	total := input.Amount.Add(commission)

	if err := uc.limits.Check(txCtx, tx, source, input.Amount, total, now); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Transfer"
	}

	destID := destination.ID
	txn := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		Type:                 domain.TransactionTypeTransfer,
		SourceAccountID:      source.ID,
		DestinationAccountID: &destID,
		Amount:               input.Amount,
		Commission:           commission,
		Total:                total,
		Description:          description,
		Status:               domain.TransactionStatusPending,
		OriginIP:             input.OriginIP,
		Device:               input.Device,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.insertWithReference(txCtx, tx, txn); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return uc.replayDuplicate(ctx, input.IdempotencyKey, err)
		}

		return nil, err
	}

	sourceBalance, err := uc.confirm(txCtx, tx, txn, source, destination, now)
	if err != nil {
		return nil, err
	}

	if err := uc.emitEvent(txCtx, tx, txn, domain.EventTypeTransactionConfirmed, now); err != nil {
		return nil, err
	}

	if err := uc.writeAudit(txCtx, tx, ctx, domain.AuditActionTransferCreate, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		amount, _ := input.Amount.Float64()
		uc.metrics.MovementAmount.Observe(amount)
	}

	return uc.reload(ctx, txn.ID, sourceBalance)
}

// InitiateTopUp debits amount plus commission from the source account for an
// external telco credit. There is no destination leg.
func (uc *TransactionUseCase) InitiateTopUp(ctx context.Context, input InitiateTopUpInput) (result *MovementResult, err error) {
	defer func() { uc.recordMovementError(err) }()

	if err := domain.ValidateTopUpAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidatePhoneNumber(input.PhoneNumber); err != nil {
		return nil, err
	}

	topUpType := input.Type
	if topUpType == "" {
		topUpType = domain.TopUpTypePrepaid
	}
	if err := domain.ValidateTopUpType(topUpType); err != nil {
		return nil, err
	}

	carrier, ok := domain.CarrierByCode(input.Carrier)
	if !ok {
		return nil, domain.ErrInvalidCarrier
	}

	if prior, err := uc.replayIdempotent(ctx, input.IdempotencyKey); prior != nil || err != nil {
		return prior, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	source, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.SourceAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidAccount
		}

		return nil, err
	}

	if !source.IsActive() {
		return nil, domain.ErrInvalidAccount
	}

	now := time.Now().UTC()
	commission := domain.Commission(domain.TransactionTypeTopUp, input.Amount)
	total := input.Amount.Add(commission)

	if err := uc.limits.Check(txCtx, tx, source, input.Amount, total, now); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Type:            domain.TransactionTypeTopUp,
		SourceAccountID: source.ID,
		Amount:          input.Amount,
		Commission:      commission,
		Total:           total,
		Description:     "Top-up " + carrier.Code + " - " + input.PhoneNumber,
		Status:          domain.TransactionStatusPending,
		OriginIP:        input.OriginIP,
		Device:          input.Device,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.insertWithReference(txCtx, tx, txn); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return uc.replayDuplicate(ctx, input.IdempotencyKey, err)
		}

		return nil, err
	}

	detail := &domain.TopUpDetail{
		TransactionID:    txn.ID,
		PhoneNumber:      input.PhoneNumber,
		Carrier:          carrier.Code,
		Type:             topUpType,
		TopUpCode:        uc.refGen.NewTopUpCode(carrier),
		ConfirmationCode: uc.refGen.NewConfirmationCode(carrier),
	}

	if err := uc.topUpRepo.Create(txCtx, tx, detail); err != nil {
		return nil, err
	}

	sourceBalance, err := uc.confirm(txCtx, tx, txn, source, nil, now)
	if err != nil {
		return nil, err
	}

	if err := uc.emitEvent(txCtx, tx, txn, domain.EventTypeTransactionConfirmed, now); err != nil {
		return nil, err
	}

	if err := uc.writeAudit(txCtx, tx, ctx, domain.AuditActionTopUpCreate, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TopUpsCreated.Inc()
		amount, _ := input.Amount.Float64()
		uc.metrics.MovementAmount.Observe(amount)
	}

	return uc.reload(ctx, txn.ID, sourceBalance)
}

// ReverseInput represents input for reversing a transaction.
type ReverseInput struct {
	TransactionID string
	OriginIP      string
	Device        string
}

// Reverse inverts a confirmed transfer exactly: total back to the source,
// amount back from the destination, status to REVERSED. Top-ups and
// non-confirmed transactions are rejected.
func (uc *TransactionUseCase) Reverse(ctx context.Context, input ReverseInput) (reversed *domain.Transaction, err error) {
	defer func() { uc.recordMovementError(err) }()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	txn, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	if !txn.CanReverse() {
		return nil, domain.ErrNotReversible
	}

	source, destination, err := uc.lockPair(txCtx, tx, txn.SourceAccountID, *txn.DestinationAccountID)
	if err != nil {
		return nil, err
	}

	// The destination must still hold the credited amount. A reversal
	// never drives its balance below zero.
	if err := destination.ValidateDebit(txn.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateAvailableBalance(txCtx, tx, source.ID, source.ApplyCredit(txn.Total), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateAvailableBalance(txCtx, tx, destination.ID, destination.ApplyDebit(txn.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.UpdateStatus(txCtx, tx, txn.ID, domain.TransactionStatusReversed, now); err != nil {
		return nil, err
	}

	txn.Status = domain.TransactionStatusReversed
	txn.UpdatedAt = now

	if err := uc.emitEvent(txCtx, tx, txn, domain.EventTypeTransactionReversed, now); err != nil {
		return nil, err
	}

	if err := uc.writeAudit(txCtx, tx, ctx, domain.AuditActionTransactionRevert, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsReversed.Inc()
	}

	return txn, nil
}

// GetTransaction retrieves a transaction, with its top-up detail when
// applicable.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, *domain.TopUpDetail, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if txn.Type != domain.TransactionTypeTopUp {
		return txn, nil, nil
	}

	detail, err := uc.topUpRepo.GetByTransactionID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return txn, detail, nil
}

// ListTransactions lists transactions with filters and pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	transactions, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.transactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// TopUpStats aggregates a source account's confirmed top-ups per carrier.
func (uc *TransactionUseCase) TopUpStats(ctx context.Context, accountID string, from, to *time.Time) ([]*CarrierStats, error) {
	return uc.transactionRepo.TopUpStatsByCarrier(ctx, accountID, from, to)
}

// replayIdempotent returns the prior result for a known idempotency key, or
// (nil, nil) when the key is new.
func (uc *TransactionUseCase) replayIdempotent(ctx context.Context, key string) (*MovementResult, error) {
	if key == "" {
		return nil, nil
	}

	txn, err := uc.transactionRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, nil
		}

		return nil, err
	}

	source, err := uc.accountRepo.GetByID(ctx, txn.SourceAccountID)
	if err != nil {
		return nil, err
	}

	result := &MovementResult{Transaction: txn, SourceBalance: source.AvailableBalance}
	if txn.Type == domain.TransactionTypeTopUp {
		detail, err := uc.topUpRepo.GetByTransactionID(ctx, txn.ID)
		if err != nil {
			return nil, err
		}

		result.TopUp = detail
	}

	return result, nil
}

// replayDuplicate resolves a race on a fresh idempotency key. The losing
// insert only fails once the winner has committed, so the winner's result is
// readable outside the losing transaction.
func (uc *TransactionUseCase) replayDuplicate(ctx context.Context, key string, cause error) (*MovementResult, error) {
	prior, err := uc.replayIdempotent(ctx, key)
	if err != nil {
		return nil, err
	}

	if prior == nil {
		return nil, cause
	}

	return prior, nil
}

// lockPair locks both accounts in ascending ID order to prevent
// lock-ordering deadlocks between opposing transfers.
func (uc *TransactionUseCase) lockPair(ctx context.Context, tx Transaction, sourceID, destinationID string) (*domain.Account, *domain.Account, error) {
	ids := []string{sourceID, destinationID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, nil, err
	}

	var source, destination *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case sourceID:
			source = a
		case destinationID:
			destination = a
		}
	}

	if source == nil || !source.IsActive() {
		return nil, nil, domain.ErrInvalidAccount
	}

	if destination == nil || !destination.IsActive() {
		return nil, nil, domain.ErrDestinationNotFound
	}

	return source, destination, nil
}

// insertWithReference inserts the transaction, regenerating the reference on
// a uniqueness conflict.
func (uc *TransactionUseCase) insertWithReference(ctx context.Context, tx Transaction, txn *domain.Transaction) error {
	var err error
	for attempt := 0; attempt < referenceInsertAttempts; attempt++ {
		txn.Reference = uc.refGen.NewReference(txn.Type)

		err = uc.transactionRepo.Create(ctx, tx, txn)
		if err == nil || !errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}
	}

	return err
}

// confirm flips the transaction to CONFIRMED and applies the balance deltas
// in the same atomic unit. Returns the new source balance.
func (uc *TransactionUseCase) confirm(ctx context.Context, tx Transaction, txn *domain.Transaction, source, destination *domain.Account, now time.Time) (decimal.Decimal, error) {
	if err := source.ValidateDebit(txn.Total); err != nil {
		return decimal.Zero, err
	}

	newSourceBalance := source.ApplyDebit(txn.Total)
	if err := uc.accountRepo.UpdateAvailableBalance(ctx, tx, source.ID, newSourceBalance, now); err != nil {
		return decimal.Zero, err
	}

	if destination != nil {
		if err := uc.accountRepo.UpdateAvailableBalance(ctx, tx, destination.ID, destination.ApplyCredit(txn.Amount), now); err != nil {
			return decimal.Zero, err
		}
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, domain.TransactionStatusConfirmed, now); err != nil {
		return decimal.Zero, err
	}

	txn.Status = domain.TransactionStatusConfirmed
	txn.UpdatedAt = now

	return newSourceBalance, nil
}

func (uc *TransactionUseCase) emitEvent(ctx context.Context, tx Transaction, txn *domain.Transaction, eventType string, now time.Time) error {
	if uc.outboxRepo == nil {
		return nil
	}

	payload := map[string]any{
		"transaction_id": txn.ID,
		"type":           string(txn.Type),
		"source_account": txn.SourceAccountID,
		"amount":         txn.Amount.String(),
		"commission":     txn.Commission.String(),
		"total":          txn.Total.String(),
		"reference":      txn.Reference,
	}
	if txn.DestinationAccountID != nil {
		payload["destination_account"] = *txn.DestinationAccountID
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	})
}

// writeAudit records the action inside the atomic unit. callerCtx carries
// the authenticated client, txCtx the transaction deadline.
func (uc *TransactionUseCase) writeAudit(txCtx context.Context, tx Transaction, callerCtx context.Context, action domain.AuditAction, txn *domain.Transaction) error {
	if uc.auditRepo == nil {
		return nil
	}

	clientID := "system"
	if client, ok := domain.ClientFromContext(callerCtx); ok {
		clientID = client.ID
	}

	return uc.auditRepo.CreateTx(txCtx, tx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ClientID:     clientID,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   txn.ID,
		IPAddress:    txn.OriginIP,
		UserAgent:    txn.Device,
		AfterState:   domain.MarshalState(txn),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

func (uc *TransactionUseCase) recordMovementError(err error) {
	if err == nil || uc.metrics == nil {
		return
	}

	uc.metrics.MovementErrors.WithLabelValues(movementErrorLabel(err)).Inc()
}

func movementErrorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, domain.ErrDestinationNotFound):
		return "destination_not_found"
	case errors.Is(err, domain.ErrInvalidAccount):
		return "invalid_account"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrNotReversible):
		return "not_reversible"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrBusy):
		return "busy"
	default:
		return "other"
	}
}

// reload re-reads the finalized transaction after commit.
func (uc *TransactionUseCase) reload(ctx context.Context, id string, sourceBalance decimal.Decimal) (*MovementResult, error) {
	txn, detail, err := uc.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	return &MovementResult{
		Transaction:   txn,
		TopUp:         detail,
		SourceBalance: sourceBalance,
	}, nil
}
