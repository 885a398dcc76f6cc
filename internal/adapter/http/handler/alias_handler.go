package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condorpay/banking/internal/adapter/http/dto"
	"github.com/condorpay/banking/internal/usecase"
)

// AliasHandler handles payment alias HTTP requests.
type AliasHandler struct {
	aliasUC *usecase.AliasUseCase
}

// NewAliasHandler creates a new AliasHandler.
func NewAliasHandler(aliasUC *usecase.AliasUseCase) *AliasHandler {
	return &AliasHandler{aliasUC: aliasUC}
}

// Lookup resolves an alias value to its account.
func (h *AliasHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "value")
	if value == "" {
		writeError(w, http.StatusBadRequest, "missing alias value", "")
		return
	}

	alias, account, err := h.aliasUC.Lookup(r.Context(), value)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to resolve alias", err.Error())

		return
	}

	resp := struct {
		*dto.AliasResponse
		Account *dto.AccountResponse `json:"account"`
	}{
		AliasResponse: dto.AliasFromDomain(alias),
		Account:       dto.AccountFromDomain(account),
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListByClient lists a client's aliases.
func (h *AliasHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "missing client ID", "")
		return
	}

	aliases, err := h.aliasUC.ListByClient(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list aliases", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AliasesFromDomain(aliases))
}
