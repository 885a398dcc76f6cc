package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

const aliasColumns = `id, value, account_id, client_id, active, created_at`

// AliasRepository implements usecase.AliasRepository.
type AliasRepository struct {
	pool *pgxpool.Pool
}

// NewAliasRepository creates a new AliasRepository.
func NewAliasRepository(pool *pgxpool.Pool) *AliasRepository {
	return &AliasRepository{pool: pool}
}

// GetActiveByValue retrieves an active alias by its value.
func (r *AliasRepository) GetActiveByValue(ctx context.Context, value string) (*domain.Alias, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+aliasColumns+` FROM aliases WHERE value = $1 AND active`, value)
	return scanAlias(row)
}

// GetActiveByValueTx retrieves an active alias inside the given unit.
func (r *AliasRepository) GetActiveByValueTx(ctx context.Context, tx usecase.Transaction, value string) (*domain.Alias, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+aliasColumns+` FROM aliases WHERE value = $1 AND active`, value)
	return scanAlias(row)
}

// ListByClient lists all aliases owned by a client.
func (r *AliasRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Alias, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+aliasColumns+` FROM aliases WHERE client_id = $1 ORDER BY created_at`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []*domain.Alias
	for rows.Next() {
		alias, err := scanAlias(rows)
		if err != nil {
			return nil, err
		}

		aliases = append(aliases, alias)
	}

	return aliases, rows.Err()
}

func scanAlias(row pgx.Row) (*domain.Alias, error) {
	var (
		alias     domain.Alias
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&alias.ID,
		&alias.Value,
		&alias.AccountID,
		&alias.ClientID,
		&alias.Active,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAliasNotFound
		}

		return nil, mapBusy(err)
	}

	alias.CreatedAt = createdAt.Time

	return &alias, nil
}
