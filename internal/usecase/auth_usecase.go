package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/condorpay/banking/internal/domain"
)

// AuthUseCase authenticates clients by account number and password.
type AuthUseCase struct {
	clientRepo  ClientRepository
	accountRepo AccountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(clientRepo ClientRepository, accountRepo AccountRepository, auditRepo AuditRepository, idGen IDGenerator) *AuthUseCase {
	return &AuthUseCase{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// Login verifies credentials against the owning client of the account
// number and returns the client with the matched account.
func (uc *AuthUseCase) Login(ctx context.Context, accountNumber, password string) (*domain.Client, *domain.Account, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}

		return nil, nil, err
	}

	if !account.IsActive() {
		return nil, nil, domain.ErrInvalidCredentials
	}

	client, err := uc.clientRepo.GetByID(ctx, account.ClientID)
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.HashedPassword), []byte(password)); err != nil {
		uc.audit(ctx, client.ID, domain.AuditStatusFailure)
		return nil, nil, domain.ErrInvalidCredentials
	}

	uc.audit(ctx, client.ID, domain.AuditStatusSuccess)

	client.HashedPassword = ""

	return client, account, nil
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (uc *AuthUseCase) audit(ctx context.Context, clientID string, status domain.AuditStatus) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ClientID:     clientID,
		Action:       string(domain.AuditActionClientLogin),
		ResourceType: "client",
		ResourceID:   clientID,
		Status:       string(status),
		CreatedAt:    time.Now().UTC(),
	})
}
