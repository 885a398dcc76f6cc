package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
)

// LimitValidator gates movements on available balance and the configured
// daily ceiling. Both checks run under the same row locks as the mutation
// they gate; there is no window between check and use.
type LimitValidator struct {
	transactionRepo TransactionRepository
	dailyLimit      decimal.Decimal
}

// NewLimitValidator creates a new LimitValidator. A non-positive dailyLimit
// disables the limit check.
func NewLimitValidator(transactionRepo TransactionRepository, dailyLimit decimal.Decimal) *LimitValidator {
	return &LimitValidator{
		transactionRepo: transactionRepo,
		dailyLimit:      dailyLimit,
	}
}

// HasSufficientBalance reports whether the account's available balance
// covers total.
func (v *LimitValidator) HasSufficientBalance(account *domain.Account, total decimal.Decimal) bool {
	return account.AvailableBalance.GreaterThanOrEqual(total)
}

// WithinLimits reports whether the day's confirmed movement plus amount
// stays under the daily ceiling.
func (v *LimitValidator) WithinLimits(ctx context.Context, tx Transaction, accountID string, amount decimal.Decimal, now time.Time) (bool, error) {
	if v.dailyLimit.LessThanOrEqual(decimal.Zero) {
		return true, nil
	}

	used, err := v.transactionRepo.DailyConfirmedTotal(ctx, tx, accountID, now)
	if err != nil {
		return false, err
	}

	return used.Add(amount).LessThanOrEqual(v.dailyLimit), nil
}

// Check applies both gates and returns the matching domain error.
func (v *LimitValidator) Check(ctx context.Context, tx Transaction, account *domain.Account, amount, total decimal.Decimal, now time.Time) error {
	if !v.HasSufficientBalance(account, total) {
		return domain.ErrInsufficientFunds
	}

	ok, err := v.WithinLimits(ctx, tx, account.ID, amount, now)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrLimitExceeded
	}

	return nil
}
