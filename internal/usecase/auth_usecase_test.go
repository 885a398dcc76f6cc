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

func newAuthFixture(t *testing.T, password string) (*usecase.AuthUseCase, *mocks.MockAuditRepository) {
	t.Helper()

	hashed, err := usecase.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	clientRepo := mocks.NewMockClientRepository()
	clientRepo.Seed(&domain.Client{
		ID:             "client-1",
		FirstNames:     "Maria Jose",
		LastNames:      "Andrade",
		HashedPassword: hashed,
	})

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{
		ID:               "acc-1",
		ClientID:         "client-1",
		Number:           "2200000001",
		AvailableBalance: decimal.NewFromInt(100),
		Status:           domain.AccountStatusActive,
	})
	accountRepo.Seed(&domain.Account{
		ID:               "acc-2",
		ClientID:         "client-1",
		Number:           "2200000002",
		AvailableBalance: decimal.Zero,
		Status:           domain.AccountStatusBlocked,
	})

	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewAuthUseCase(clientRepo, accountRepo, auditRepo, mocks.NewMockIDGenerator())

	return uc, auditRepo
}

func TestLogin_Success(t *testing.T) {
	uc, auditRepo := newAuthFixture(t, "s3cret")

	client, account, err := uc.Login(context.Background(), "2200000001", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.ID != "client-1" {
		t.Errorf("client id = %s, want client-1", client.ID)
	}
	if client.HashedPassword != "" {
		t.Error("hashed password must not leave the use case")
	}
	if account.ID != "acc-1" {
		t.Errorf("account id = %s, want acc-1", account.ID)
	}

	logs := auditRepo.Logs()
	if len(logs) != 1 || logs[0].Status != string(domain.AuditStatusSuccess) {
		t.Errorf("unexpected audit entries: %+v", logs)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, auditRepo := newAuthFixture(t, "s3cret")

	_, _, err := uc.Login(context.Background(), "2200000001", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}

	logs := auditRepo.Logs()
	if len(logs) != 1 || logs[0].Status != string(domain.AuditStatusFailure) {
		t.Errorf("failed login must be audited, got %+v", logs)
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	uc, _ := newAuthFixture(t, "s3cret")

	_, _, err := uc.Login(context.Background(), "9999999999", "s3cret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	uc, _ := newAuthFixture(t, "s3cret")

	_, _, err := uc.Login(context.Background(), "2200000002", "s3cret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}
