package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the two money movements.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeTopUp    TransactionType = "TOP_UP"
)

// TransactionStatus is the state of a transaction on its lifecycle.
// PENDING -> CONFIRMED happens exactly once, together with the balance
// deltas. CONFIRMED -> REVERSED happens at most once.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusReversed  TransactionStatus = "REVERSED"
)

// Transaction is a money movement record. DestinationAccountID is nil for
// top-ups, whose destination is an external telco.
type Transaction struct {
	ID                   string
	Type                 TransactionType
	SourceAccountID      string
	DestinationAccountID *string
	Amount               decimal.Decimal
	Commission           decimal.Decimal
	Total                decimal.Decimal
	Reference            string
	Description          string
	Status               TransactionStatus
	OriginIP             string
	Device               string
	IdempotencyKey       *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks structural invariants at creation time.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Type == TransactionTypeTransfer {
		if t.DestinationAccountID == nil {
			return ErrDestinationNotFound
		}

		if *t.DestinationAccountID == t.SourceAccountID {
			return ErrSameAccount
		}
	}

	if !t.Total.Equal(t.Amount.Add(t.Commission)) {
		return ErrInvalidAmount
	}

	return nil
}

// CanConfirm reports whether the transaction may advance to CONFIRMED.
func (t *Transaction) CanConfirm() bool {
	return t.Status == TransactionStatusPending
}

// CanReverse reports whether the transaction may be reversed. Top-ups have
// no credit leg to invert against the telco and are never reversible.
func (t *Transaction) CanReverse() bool {
	return t.Status == TransactionStatusConfirmed && t.Type == TransactionTypeTransfer
}
