package domain

import "github.com/shopspring/decimal"

// Commission bands. Amounts at a band boundary take the lower band's fee.
var (
	topUpFlatBand     = decimal.NewFromInt(20)
	topUpMidBand      = decimal.NewFromInt(50)
	topUpFlatFee      = decimal.NewFromFloat(0.30)
	topUpMidFee       = decimal.NewFromFloat(0.50)
	topUpHighRate     = decimal.NewFromFloat(0.02)
	transferFreeBand  = decimal.NewFromInt(100)
	transferMidBand   = decimal.NewFromInt(500)
	transferMidRate   = decimal.NewFromFloat(0.005)
	transferMidFixed  = decimal.NewFromFloat(0.50)
	transferHighRate  = decimal.NewFromFloat(0.01)
	transferHighFixed = decimal.NewFromInt(1)
)

// Commission returns the fee charged for moving amount under the given
// transaction type, rounded to the currency's minor unit. Deterministic and
// side-effect free.
func Commission(kind TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch kind {
	case TransactionTypeTopUp:
		return topUpCommission(amount)
	case TransactionTypeTransfer:
		return transferCommission(amount)
	default:
		return decimal.Zero
	}
}

func topUpCommission(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.LessThanOrEqual(topUpFlatBand):
		return topUpFlatFee
	case amount.LessThanOrEqual(topUpMidBand):
		return topUpMidFee
	default:
		return amount.Mul(topUpHighRate).Round(2)
	}
}

func transferCommission(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.LessThanOrEqual(transferFreeBand):
		return decimal.Zero
	case amount.LessThanOrEqual(transferMidBand):
		return amount.Mul(transferMidRate).Add(transferMidFixed).Round(2)
	default:
		return amount.Mul(transferHighRate).Add(transferHighFixed).Round(2)
	}
}
