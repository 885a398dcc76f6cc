package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

const auditInsert = `
	INSERT INTO audit_logs
	(id, client_id, action, resource_type, resource_id,
	 ip_address, user_agent, request_id, after_state, status, error_message, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts an audit log entry outside any unit of work.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args, err := auditArgs(log)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, auditInsert, args...)

	return err
}

// CreateTx inserts an audit log entry inside the given unit, so the trail
// commits or rolls back with the operation it records.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	args, err := auditArgs(log)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, auditInsert, args...)

	return mapBusy(err)
}

// List retrieves audit log entries matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, client_id, action, resource_type, resource_id,
		       ip_address, user_agent, request_id, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE 1=1`

	var args []any

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(` AND action = $%d`, len(args))
	}

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		query += fmt.Sprintf(` AND resource_type = $%d`, len(args))
	}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += fmt.Sprintf(` AND resource_id = $%d`, len(args))
	}

	if filter.StartDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.StartDate))
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}

	if filter.EndDate != nil {
		args = append(args, timeToPgTimestamptz(*filter.EndDate))
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func auditArgs(log *domain.AuditLog) ([]any, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var afterState []byte
	if log.AfterState != nil {
		var err error
		afterState, err = json.Marshal(log.AfterState)
		if err != nil {
			return nil, err
		}
	}

	return []any{
		log.ID,
		log.ClientID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.IPAddress,
		log.UserAgent,
		log.RequestID,
		afterState,
		log.Status,
		log.ErrorMessage,
		timeToPgTimestamptz(log.CreatedAt),
	}, nil
}

func scanAuditLog(row pgx.Row) (*domain.AuditLog, error) {
	var (
		log        domain.AuditLog
		afterState []byte
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&log.ID,
		&log.ClientID,
		&log.Action,
		&log.ResourceType,
		&log.ResourceID,
		&log.IPAddress,
		&log.UserAgent,
		&log.RequestID,
		&afterState,
		&log.Status,
		&log.ErrorMessage,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if afterState != nil {
		_ = json.Unmarshal(afterState, &log.AfterState)
	}

	log.CreatedAt = createdAt.Time

	return &log, nil
}
