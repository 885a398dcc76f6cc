package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusBlocked  AccountStatus = "BLOCKED"
)

// AccountType distinguishes checking from savings accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// Account is a balance-holding record owned by a client. Balance mutations
// happen only when a transaction reaches CONFIRMED or is reversed.
type Account struct {
	ID               string
	ClientID         string
	Number           string
	Type             AccountType
	AvailableBalance decimal.Decimal
	BlockedBalance   decimal.Decimal
	Status           AccountStatus
	OpenedAt         time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the account can participate in movements.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// TotalBalance is available plus blocked funds.
func (a *Account) TotalBalance() decimal.Decimal {
	return a.AvailableBalance.Add(a.BlockedBalance)
}

// ValidateDebit checks that total can be taken from the available balance.
func (a *Account) ValidateDebit(total decimal.Decimal) error {
	if a.AvailableBalance.LessThan(total) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the available balance after debiting total.
func (a *Account) ApplyDebit(total decimal.Decimal) decimal.Decimal {
	return a.AvailableBalance.Sub(total)
}

// ApplyCredit returns the available balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.AvailableBalance.Add(amount)
}
