package domain

import "errors"

var (
	// Account errors
	ErrInvalidAccount      = errors.New("source account not found or inactive")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDestinationNotFound = errors.New("destination account not found")
	ErrSameAccount         = errors.New("cannot transfer to the same account")

	// Funds and limit errors
	ErrInsufficientFunds = errors.New("insufficient available balance")
	ErrLimitExceeded     = errors.New("movement exceeds the configured daily limit")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotReversible       = errors.New("transaction is not in a reversible state")
	ErrDuplicateReference  = errors.New("reference code already exists")
	ErrDuplicateKey        = errors.New("idempotency key already used")

	// Alias errors
	ErrAliasNotFound = errors.New("alias not found")

	// Client errors
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidCredentials = errors.New("invalid account number or password")

	// Input errors
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidCarrier     = errors.New("carrier is not supported")
	ErrInvalidPhoneNumber = errors.New("phone number must have 10 digits")
	ErrInvalidTopUpType   = errors.New("top-up type must be PREPAID or POSTPAID")
	ErrInvalidDescription = errors.New("description is too long")

	// ErrBusy signals lock contention or a store timeout. It is the only
	// error a caller may safely retry with the same input.
	ErrBusy = errors.New("operation is busy, retry later")
)
