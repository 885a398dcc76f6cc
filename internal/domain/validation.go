package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Top-up amount bounds enforced before any store access.
var (
	MinTopUpAmount = decimal.NewFromInt(1)
	MaxTopUpAmount = decimal.NewFromInt(100)
)

const MaxDescriptionLength = 255

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateTransferAmount checks an amount for a transfer request.
func ValidateTransferAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateTopUpAmount checks that a top-up amount is positive and within the
// policy range.
func ValidateTopUpAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(MinTopUpAmount) || amount.GreaterThan(MaxTopUpAmount) {
		return fmt.Errorf("%w: must be between %s and %s",
			ErrInvalidAmount, MinTopUpAmount, MaxTopUpAmount)
	}

	return nil
}

// ValidatePhoneNumber checks the 10-digit local phone format.
func ValidatePhoneNumber(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// ValidateTopUpType checks the billing mode value.
func ValidateTopUpType(t TopUpType) error {
	if t != TopUpTypePrepaid && t != TopUpTypePostpaid {
		return ErrInvalidTopUpType
	}
	return nil
}

// ValidateDescription bounds the free-text description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}
	return nil
}
