package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

// InitiateTransferRequest represents a request to create a transfer.
type InitiateTransferRequest struct {
	SourceAccountID string          `json:"source_account_id"`
	Destination     string          `json:"destination"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *InitiateTransferRequest) ToUseCaseInput(originIP, device, idempotencyKey string) usecase.InitiateTransferInput {
	return usecase.InitiateTransferInput{
		SourceAccountID:       r.SourceAccountID,
		DestinationIdentifier: r.Destination,
		Amount:                r.Amount,
		Description:           r.Description,
		OriginIP:              originIP,
		Device:                device,
		IdempotencyKey:        idempotencyKey,
	}
}

// InitiateTopUpRequest represents a request to create a phone top-up.
type InitiateTopUpRequest struct {
	SourceAccountID string          `json:"source_account_id"`
	PhoneNumber     string          `json:"phone_number"`
	Carrier         string          `json:"carrier"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *InitiateTopUpRequest) ToUseCaseInput(originIP, device, idempotencyKey string) usecase.InitiateTopUpInput {
	return usecase.InitiateTopUpInput{
		SourceAccountID: r.SourceAccountID,
		PhoneNumber:     r.PhoneNumber,
		Carrier:         r.Carrier,
		Amount:          r.Amount,
		Type:            domain.TopUpType(r.Type),
		OriginIP:        originIP,
		Device:          device,
		IdempotencyKey:  idempotencyKey,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	ClientID       string          `json:"client_id"`
	Number         string          `json:"number"`
	Type           string          `json:"type,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ClientID:       r.ClientID,
		Number:         r.Number,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
	}
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

// ListTransactionsQuery carries the supported listing filters.
type ListTransactionsQuery struct {
	AccountID string
	Type      string
	Status    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ToFilter converts to a repository filter.
func (q ListTransactionsQuery) ToFilter() usecase.TransactionFilter {
	return usecase.TransactionFilter{
		AccountID: q.AccountID,
		Type:      domain.TransactionType(q.Type),
		Status:    domain.TransactionStatus(q.Status),
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
}
