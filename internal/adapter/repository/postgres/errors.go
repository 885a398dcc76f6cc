package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/condorpay/banking/internal/domain"
)

// PostgreSQL error codes surfaced by the store.
const (
	pgErrUniqueViolation      = "23505"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014"
)

// mapBusy converts lock-contention and timeout errors into domain.ErrBusy,
// the one retryable condition exposed to callers.
func mapBusy(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable, pgErrQueryCanceled:
			return domain.ErrBusy
		}
	}

	return err
}

// mapUniqueViolation converts a unique-constraint violation into the domain
// error matching the constraint that fired.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrUniqueViolation {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "reference"):
		return domain.ErrDuplicateReference
	case strings.Contains(pgErr.ConstraintName, "idempotency"):
		return domain.ErrDuplicateKey
	default:
		return err
	}
}
