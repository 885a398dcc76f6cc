package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is a compliance trail entry for mutating operations.
type AuditLog struct {
	ID           string
	ClientID     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	RequestID    string
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data.
type JSON map[string]any

// AuditAction names an auditable operation.
type AuditAction string

const (
	AuditActionTransferCreate    AuditAction = "transfer.create"
	AuditActionTopUpCreate       AuditAction = "topup.create"
	AuditActionTransactionRevert AuditAction = "transaction.reverse"
	AuditActionClientLogin       AuditAction = "client.login"
)

// AuditStatus is the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs.
type AuditFilter struct {
	ClientID     string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
