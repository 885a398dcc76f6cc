package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
)

// AccountUseCase handles account reads and creation.
type AccountUseCase struct {
	accountRepo AccountRepository
	clientRepo  ClientRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, clientRepo ClientRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	ClientID       string
	Number         string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount opens a new active account for a client.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	accountType := input.Type
	if accountType == "" {
		accountType = domain.AccountTypeChecking
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:               uc.idGen.Generate(),
		ClientID:         input.ClientID,
		Number:           input.Number,
		Type:             accountType,
		AvailableBalance: input.InitialBalance,
		BlockedBalance:   decimal.Zero,
		Status:           domain.AccountStatusActive,
		OpenedAt:         now,
		UpdatedAt:        now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account with its owner.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, *domain.Client, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	client, err := uc.clientRepo.GetByID(ctx, account.ClientID)
	if err != nil {
		return nil, nil, err
	}

	return account, client, nil
}

// GetBalance retrieves the balance breakdown of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListByClient lists a client's accounts.
func (uc *AccountUseCase) ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByClient(ctx, clientID)
}
