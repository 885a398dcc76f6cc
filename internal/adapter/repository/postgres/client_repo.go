package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorpay/banking/internal/domain"
)

const clientColumns = `id, first_names, last_names, document_number, email, phone, hashed_password, created_at, updated_at`

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create creates a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (id, first_names, last_names, document_number, email, phone, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		client.ID,
		client.FirstNames,
		client.LastNames,
		client.DocumentNumber,
		client.Email,
		client.Phone,
		client.HashedPassword,
		timeToPgTimestamptz(client.CreatedAt),
		timeToPgTimestamptz(client.UpdatedAt),
	)

	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

// GetByAccountNumber retrieves the client that owns the given account.
func (r *ClientRepository) GetByAccountNumber(ctx context.Context, number string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.first_names, c.last_names, c.document_number, c.email, c.phone, c.hashed_password, c.created_at, c.updated_at
		FROM clients c
		JOIN accounts a ON a.client_id = c.id
		WHERE a.number = $1`, number)

	return scanClient(row)
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		client    domain.Client
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&client.ID,
		&client.FirstNames,
		&client.LastNames,
		&client.DocumentNumber,
		&client.Email,
		&client.Phone,
		&client.HashedPassword,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}

		return nil, err
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
