package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

const transactionColumns = `id, type, source_account_id, destination_account_id, amount, commission, total, reference, description, status, origin_ip, device, idempotency_key, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction inside the given unit. Unique-constraint
// violations on reference or idempotency key surface as domain errors.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions
		(id, type, source_account_id, destination_account_id, amount, commission, total,
		 reference, description, status, origin_ip, device, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		transaction.ID,
		string(transaction.Type),
		transaction.SourceAccountID,
		transaction.DestinationAccountID,
		decimalToNumeric(transaction.Amount),
		decimalToNumeric(transaction.Commission),
		decimalToNumeric(transaction.Total),
		transaction.Reference,
		transaction.Description,
		string(transaction.Status),
		transaction.OriginIP,
		transaction.Device,
		transaction.IdempotencyKey,
		timeToPgTimestamptz(transaction.CreatedAt),
		timeToPgTimestamptz(transaction.UpdatedAt),
	)
	if err != nil {
		return mapBusy(mapUniqueViolation(err))
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// GetByIDForUpdate retrieves a transaction with a FOR UPDATE lock, guarding
// the status transition against concurrent reversals.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
	return scanTransaction(row)
}

// GetByIdempotencyKey retrieves a transaction by its idempotency key.
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE idempotency_key = $1`, key)
	return scanTransaction(row)
}

// UpdateStatus flips the transaction status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE transactions SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt))

	return mapBusy(err)
}

// List lists transactions matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	query, args := buildFilterQuery(`SELECT `+transactionColumns+` FROM transactions`, filter)

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Count counts transactions matching the filter.
func (r *TransactionRepository) Count(ctx context.Context, filter usecase.TransactionFilter) (int64, error) {
	query, args := buildFilterQuery(`SELECT COUNT(*) FROM transactions`, filter)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// DailyConfirmedTotal sums confirmed movement amounts for the account on the
// given day, under the caller's locks.
func (r *TransactionRepository) DailyConfirmedTotal(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var total pgtype.Numeric
	err := pgxTx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE source_account_id = $1
		  AND status = $2
		  AND created_at >= $3
		  AND created_at < $4`,
		accountID,
		string(domain.TransactionStatusConfirmed),
		timeToPgTimestamptz(dayStart),
		timeToPgTimestamptz(dayEnd),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, mapBusy(err)
	}

	return numericToDecimal(total), nil
}

// TopUpStatsByCarrier aggregates confirmed top-ups of an account per carrier.
func (r *TransactionRepository) TopUpStatsByCarrier(ctx context.Context, accountID string, from, to *time.Time) ([]*usecase.CarrierStats, error) {
	query := `
		SELECT u.carrier,
		       COUNT(*),
		       COALESCE(SUM(t.amount), 0),
		       COALESCE(AVG(t.amount), 0),
		       COALESCE(SUM(t.commission), 0)
		FROM transactions t
		JOIN top_ups u ON u.transaction_id = t.id
		WHERE t.type = $1
		  AND t.status = $2
		  AND t.source_account_id = $3`

	args := []any{
		string(domain.TransactionTypeTopUp),
		string(domain.TransactionStatusConfirmed),
		accountID,
	}

	if from != nil {
		args = append(args, timeToPgTimestamptz(*from))
		query += fmt.Sprintf(` AND t.created_at >= $%d`, len(args))
	}

	if to != nil {
		args = append(args, timeToPgTimestamptz(*to))
		query += fmt.Sprintf(` AND t.created_at <= $%d`, len(args))
	}

	query += ` GROUP BY u.carrier ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*usecase.CarrierStats
	for rows.Next() {
		var (
			s           usecase.CarrierStats
			totalAmount pgtype.Numeric
			avgAmount   pgtype.Numeric
			commissions pgtype.Numeric
		)

		if err := rows.Scan(&s.Carrier, &s.Count, &totalAmount, &avgAmount, &commissions); err != nil {
			return nil, err
		}

		s.TotalAmount = numericToDecimal(totalAmount)
		s.AverageAmount = numericToDecimal(avgAmount)
		s.TotalCommissions = numericToDecimal(commissions)
		stats = append(stats, &s)
	}

	return stats, rows.Err()
}

func buildFilterQuery(base string, filter usecase.TransactionFilter) (string, []any) {
	query := base + ` WHERE 1=1`

	var args []any

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(` AND (source_account_id = $%d OR destination_account_id = $%d)`, len(args), len(args))
	}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	if filter.From != nil {
		args = append(args, timeToPgTimestamptz(*filter.From))
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}

	if filter.To != nil {
		args = append(args, timeToPgTimestamptz(*filter.To))
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}

	return query, args
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction     domain.Transaction
		transactionType string
		status          string
		amount          pgtype.Numeric
		commission      pgtype.Numeric
		total           pgtype.Numeric
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&transactionType,
		&transaction.SourceAccountID,
		&transaction.DestinationAccountID,
		&amount,
		&commission,
		&total,
		&transaction.Reference,
		&transaction.Description,
		&status,
		&transaction.OriginIP,
		&transaction.Device,
		&transaction.IdempotencyKey,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, mapBusy(err)
	}

	transaction.Type = domain.TransactionType(transactionType)
	transaction.Status = domain.TransactionStatus(status)
	transaction.Amount = numericToDecimal(amount)
	transaction.Commission = numericToDecimal(commission)
	transaction.Total = numericToDecimal(total)
	transaction.CreatedAt = createdAt.Time
	transaction.UpdatedAt = updatedAt.Time

	return &transaction, nil
}
