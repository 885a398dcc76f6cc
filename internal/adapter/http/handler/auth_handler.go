package handler

import (
	"encoding/json"
	"net/http"

	"github.com/condorpay/banking/internal/adapter/http/dto"
	"github.com/condorpay/banking/internal/infrastructure/auth"
	"github.com/condorpay/banking/internal/usecase"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	authUC     *usecase.AuthUseCase
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC *usecase.AuthUseCase, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		authUC:     authUC,
		jwtManager: jwtManager,
	}
}

// Login authenticates by account number and password and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.AccountNumber == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials", "account_number and password are required")
		return
	}

	client, account, err := h.authUC.Login(r.Context(), req.AccountNumber, req.Password)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "login failed", err.Error())

		return
	}

	token, err := h.jwtManager.Generate(client, account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:   token,
		Client:  dto.ClientFromDomain(client),
		Account: dto.AccountFromDomain(account),
	})
}
