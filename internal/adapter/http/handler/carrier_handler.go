package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/condorpay/banking/internal/adapter/http/dto"
	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/usecase"
)

const carrierCacheKey = "carriers"

// CarrierHandler serves the catalog of supported telecom operators.
type CarrierHandler struct {
	cache usecase.Cache
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(cache usecase.Cache) *CarrierHandler {
	return &CarrierHandler{cache: cache}
}

// List returns the carrier catalog. The catalog is static per build, so the
// cached copy never goes stale within a deployment.
func (h *CarrierHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), carrierCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)

			return
		}
	}

	body, err := json.Marshal(dto.CarriersFromDomain(domain.Carriers))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode carriers", err.Error())
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(r.Context(), carrierCacheKey, body, time.Hour)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
