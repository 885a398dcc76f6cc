package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

// TopUpRepository implements usecase.TopUpRepository.
type TopUpRepository struct {
	pool *pgxpool.Pool
}

// NewTopUpRepository creates a new TopUpRepository.
func NewTopUpRepository(pool *pgxpool.Pool) *TopUpRepository {
	return &TopUpRepository{pool: pool}
}

// Create inserts the top-up detail row alongside its parent transaction.
func (r *TopUpRepository) Create(ctx context.Context, tx usecase.Transaction, detail *domain.TopUpDetail) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO top_ups
		(transaction_id, phone_number, carrier, type, top_up_code, confirmation_code)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		detail.TransactionID,
		detail.PhoneNumber,
		detail.Carrier,
		string(detail.Type),
		detail.TopUpCode,
		detail.ConfirmationCode,
	)

	return mapBusy(err)
}

// GetByTransactionID retrieves the detail row for a TOP_UP transaction.
func (r *TopUpRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.TopUpDetail, error) {
	var (
		detail    domain.TopUpDetail
		topUpType string
	)

	err := r.pool.QueryRow(ctx, `
		SELECT transaction_id, phone_number, carrier, type, top_up_code, confirmation_code
		FROM top_ups WHERE transaction_id = $1`, transactionID,
	).Scan(
		&detail.TransactionID,
		&detail.PhoneNumber,
		&detail.Carrier,
		&topUpType,
		&detail.TopUpCode,
		&detail.ConfirmationCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	detail.Type = domain.TopUpType(topUpType)

	return &detail, nil
}
