package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TopUpType is the billing mode of the destination phone line.
type TopUpType string

const (
	TopUpTypePrepaid  TopUpType = "PREPAID"
	TopUpTypePostpaid TopUpType = "POSTPAID"
)

// TopUpDetail extends a TOP_UP transaction with telco-specific fields.
// It is created together with its parent transaction and immutable after.
type TopUpDetail struct {
	TransactionID    string
	PhoneNumber      string
	Carrier          string
	Type             TopUpType
	TopUpCode        string
	ConfirmationCode string
}

// Carrier describes a supported telecom operator.
type Carrier struct {
	Code             string
	Name             string
	AvailableAmounts []int64
	BaseCommission   decimal.Decimal
}

// ShortCode is the 3-letter prefix embedded in top-up codes.
func (c Carrier) ShortCode() string {
	return strings.ToUpper(c.Code[:3])
}

// Carriers is the catalog of supported operators.
var Carriers = []Carrier{
	{
		Code:             "CLARO",
		Name:             "Claro Ecuador",
		AvailableAmounts: []int64{5, 10, 15, 20, 25, 30, 50, 100},
		BaseCommission:   decimal.NewFromFloat(0.30),
	},
	{
		Code:             "MOVISTAR",
		Name:             "Movistar Ecuador",
		AvailableAmounts: []int64{5, 10, 15, 20, 25, 30, 50, 100},
		BaseCommission:   decimal.NewFromFloat(0.30),
	},
	{
		Code:             "CNT",
		Name:             "CNT Ecuador",
		AvailableAmounts: []int64{5, 10, 15, 20, 25, 30, 50, 100},
		BaseCommission:   decimal.NewFromFloat(0.30),
	},
	{
		Code:             "TUENTI",
		Name:             "Tuenti Ecuador",
		AvailableAmounts: []int64{5, 10, 15, 20, 25, 30, 50},
		BaseCommission:   decimal.NewFromFloat(0.30),
	},
}

// CarrierByCode finds a carrier by its code, case-insensitively.
func CarrierByCode(code string) (Carrier, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Carriers {
		if c.Code == code {
			return c, true
		}
	}

	return Carrier{}, false
}
