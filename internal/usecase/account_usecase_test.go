package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
	"github.com/condorpay/banking/internal/usecase/mocks"
)

func TestCreateAccount(t *testing.T) {
	clientRepo := mocks.NewMockClientRepository()
	clientRepo.Seed(&domain.Client{ID: "client-1"})
	accountRepo := mocks.NewMockAccountRepository()

	uc := usecase.NewAccountUseCase(accountRepo, clientRepo, mocks.NewMockIDGenerator())

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		ClientID:       "client-1",
		Number:         "2200000001",
		InitialBalance: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Status != domain.AccountStatusActive {
		t.Errorf("status = %s, want ACTIVE", account.Status)
	}
	if account.Type != domain.AccountTypeChecking {
		t.Errorf("type defaulted to %s, want CHECKING", account.Type)
	}
	if !account.AvailableBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance = %s, want 500", account.AvailableBalance)
	}

	stored, err := accountRepo.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("account was not persisted: %v", err)
	}
	if stored.Number != "2200000001" {
		t.Errorf("stored number = %s", stored.Number)
	}
}

func TestCreateAccount_Errors(t *testing.T) {
	clientRepo := mocks.NewMockClientRepository()
	clientRepo.Seed(&domain.Client{ID: "client-1"})
	accountRepo := mocks.NewMockAccountRepository()

	uc := usecase.NewAccountUseCase(accountRepo, clientRepo, mocks.NewMockIDGenerator())

	_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		ClientID: "no-such-client",
		Number:   "2200000001",
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("error = %v, want ErrClientNotFound", err)
	}

	_, err = uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		ClientID:       "client-1",
		Number:         "2200000001",
		InitialBalance: decimal.NewFromInt(-1),
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestGetAccount(t *testing.T) {
	clientRepo := mocks.NewMockClientRepository()
	clientRepo.Seed(&domain.Client{ID: "client-1", FirstNames: "Maria", LastNames: "Andrade"})
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: "acc-1", ClientID: "client-1", Number: "2200000001"})

	uc := usecase.NewAccountUseCase(accountRepo, clientRepo, mocks.NewMockIDGenerator())

	account, client, err := uc.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-1" || client.ID != "client-1" {
		t.Errorf("got account %s client %s", account.ID, client.ID)
	}

	_, _, err = uc.GetAccount(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}
