package usecase

import (
	"context"
	"errors"

	"github.com/condorpay/banking/internal/domain"
)

// AliasUseCase resolves destination identifiers and serves alias lookups.
type AliasUseCase struct {
	aliasRepo   AliasRepository
	accountRepo AccountRepository
}

// NewAliasUseCase creates a new AliasUseCase.
func NewAliasUseCase(aliasRepo AliasRepository, accountRepo AccountRepository) *AliasUseCase {
	return &AliasUseCase{
		aliasRepo:   aliasRepo,
		accountRepo: accountRepo,
	}
}

// Resolve maps an account number or active alias to an active account,
// inside the caller's atomic unit. Account numbers take precedence over
// aliases with the same value.
func (uc *AliasUseCase) Resolve(ctx context.Context, tx Transaction, identifier string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByNumberTx(ctx, tx, identifier)
	if err == nil {
		if !account.IsActive() {
			return nil, domain.ErrDestinationNotFound
		}

		return account, nil
	}

	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	alias, err := uc.aliasRepo.GetActiveByValueTx(ctx, tx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrAliasNotFound) {
			return nil, domain.ErrDestinationNotFound
		}

		return nil, err
	}

	account, err = uc.accountRepo.GetByIDTx(ctx, tx, alias.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrDestinationNotFound
		}

		return nil, err
	}

	if !account.IsActive() {
		return nil, domain.ErrDestinationNotFound
	}

	return account, nil
}

// Lookup finds an active alias together with its account, for the
// read-only search endpoint.
func (uc *AliasUseCase) Lookup(ctx context.Context, value string) (*domain.Alias, *domain.Account, error) {
	alias, err := uc.aliasRepo.GetActiveByValue(ctx, value)
	if err != nil {
		return nil, nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, alias.AccountID)
	if err != nil {
		return nil, nil, err
	}

	return alias, account, nil
}

// ListByClient lists a client's active aliases.
func (uc *AliasUseCase) ListByClient(ctx context.Context, clientID string) ([]*domain.Alias, error) {
	return uc.aliasRepo.ListByClient(ctx, clientID)
}
