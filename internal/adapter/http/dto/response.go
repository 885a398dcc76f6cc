package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                   string          `json:"id"`
	Type                 string          `json:"type"`
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Commission           decimal.Decimal `json:"commission"`
	Total                decimal.Decimal `json:"total"`
	Reference            string          `json:"reference"`
	Description          string          `json:"description"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		Type:                 string(t.Type),
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Amount:               t.Amount,
		Commission:           t.Commission,
		Total:                t.Total,
		Reference:            t.Reference,
		Description:          t.Description,
		Status:               string(t.Status),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TopUpDetailResponse represents the telco fields of a TOP_UP transaction.
type TopUpDetailResponse struct {
	PhoneNumber      string `json:"phone_number"`
	Carrier          string `json:"carrier"`
	Type             string `json:"type"`
	TopUpCode        string `json:"top_up_code"`
	ConfirmationCode string `json:"confirmation_code"`
}

// TopUpDetailFromDomain converts a domain top-up detail to a response.
func TopUpDetailFromDomain(d *domain.TopUpDetail) *TopUpDetailResponse {
	if d == nil {
		return nil
	}

	return &TopUpDetailResponse{
		PhoneNumber:      d.PhoneNumber,
		Carrier:          d.Carrier,
		Type:             string(d.Type),
		TopUpCode:        d.TopUpCode,
		ConfirmationCode: d.ConfirmationCode,
	}
}

// MovementResponse is the body returned by transfer and top-up creation.
type MovementResponse struct {
	Transaction   *TransactionResponse `json:"transaction"`
	TopUp         *TopUpDetailResponse `json:"top_up,omitempty"`
	SourceBalance decimal.Decimal      `json:"source_balance"`
}

// MovementFromResult converts a use case movement result to a response.
func MovementFromResult(result *usecase.MovementResult) *MovementResponse {
	return &MovementResponse{
		Transaction:   TransactionFromDomain(result.Transaction),
		TopUp:         TopUpDetailFromDomain(result.TopUp),
		SourceBalance: result.SourceBalance,
	}
}

// TransactionListResponse is a paginated transaction listing.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string          `json:"id"`
	ClientID         string          `json:"client_id"`
	Number           string          `json:"number"`
	Type             string          `json:"type"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	BlockedBalance   decimal.Decimal `json:"blocked_balance"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	Status           string          `json:"status"`
	OpenedAt         time.Time       `json:"opened_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		ClientID:         a.ClientID,
		Number:           a.Number,
		Type:             string(a.Type),
		AvailableBalance: a.AvailableBalance,
		BlockedBalance:   a.BlockedBalance,
		TotalBalance:     a.TotalBalance(),
		Status:           string(a.Status),
		OpenedAt:         a.OpenedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:             c.ID,
		FullName:       c.FullName(),
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
	}
}

// LoginResponse is the body returned on successful authentication.
type LoginResponse struct {
	Token   string           `json:"token"`
	Client  *ClientResponse  `json:"client"`
	Account *AccountResponse `json:"account"`
}

// CarrierResponse represents a supported carrier in API responses.
type CarrierResponse struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	AvailableAmounts []int64 `json:"available_amounts"`
}

// CarriersFromDomain converts the carrier catalog to responses.
func CarriersFromDomain(carriers []domain.Carrier) []*CarrierResponse {
	result := make([]*CarrierResponse, len(carriers))
	for i, c := range carriers {
		result[i] = &CarrierResponse{
			Code:             c.Code,
			Name:             c.Name,
			AvailableAmounts: c.AvailableAmounts,
		}
	}
	return result
}

// CarrierStatsResponse aggregates an account's confirmed top-ups per carrier.
type CarrierStatsResponse struct {
	Carrier          string          `json:"carrier"`
	Count            int64           `json:"count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
}

// CarrierStatsFromUseCase converts carrier stats to responses.
func CarrierStatsFromUseCase(stats []*usecase.CarrierStats) []*CarrierStatsResponse {
	result := make([]*CarrierStatsResponse, len(stats))
	for i, s := range stats {
		result[i] = &CarrierStatsResponse{
			Carrier:          s.Carrier,
			Count:            s.Count,
			TotalAmount:      s.TotalAmount,
			AverageAmount:    s.AverageAmount,
			TotalCommissions: s.TotalCommissions,
		}
	}
	return result
}

// AliasResponse represents a payment alias in API responses.
type AliasResponse struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	AccountID string `json:"account_id"`
	Active    bool   `json:"active"`
}

// AliasFromDomain converts a domain alias to a response.
func AliasFromDomain(a *domain.Alias) *AliasResponse {
	return &AliasResponse{
		ID:        a.ID,
		Value:     a.Value,
		AccountID: a.AccountID,
		Active:    a.Active,
	}
}

// AliasesFromDomain converts domain aliases to responses.
func AliasesFromDomain(aliases []*domain.Alias) []*AliasResponse {
	result := make([]*AliasResponse, len(aliases))
	for i, a := range aliases {
		result[i] = AliasFromDomain(a)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
