package domain

import "time"

// Event types
const (
	EventTypeTransactionConfirmed = "transaction.confirmed"
	EventTypeTransactionReversed  = "transaction.reversed"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent is an event written in the same atomic unit as the state it
// describes, drained later by the publisher.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
