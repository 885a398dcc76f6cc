package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. Prevents long-running units from holding row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// referenceInsertAttempts bounds regeneration when a reference collides
	// with the uniqueness constraint.
	referenceInsertAttempts = 3
)
