package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condorpay/banking/internal/adapter/http/dto"
	"github.com/condorpay/banking/internal/adapter/http/middleware"
	"github.com/condorpay/banking/internal/usecase"
)

// TransactionHandler handles money-movement HTTP requests.
type TransactionHandler struct {
	transactionUC *usecase.TransactionUseCase
	retrier       usecase.Retrier
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC *usecase.TransactionUseCase, retrier usecase.Retrier) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		retrier:       retrier,
	}
}

// Transfer creates and confirms a transfer.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput(clientIP(r), r.UserAgent(), r.Header.Get(middleware.IdempotencyKeyHeader))

	result, err := h.runMovement(r, func() (*usecase.MovementResult, error) {
		return h.transactionUC.InitiateTransfer(r.Context(), input)
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// TopUp creates and confirms a phone top-up.
func (h *TransactionHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiateTopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput(clientIP(r), r.UserAgent(), r.Header.Get(middleware.IdempotencyKeyHeader))

	result, err := h.runMovement(r, func() (*usecase.MovementResult, error) {
		return h.transactionUC.InitiateTopUp(r.Context(), input)
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create top-up", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// Reverse reverses a confirmed transfer.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	input := usecase.ReverseInput{
		TransactionID: id,
		OriginIP:      clientIP(r),
		Device:        r.UserAgent(),
	}

	transaction, err := h.transactionUC.Reverse(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reverse transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	transaction, detail, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	resp := struct {
		*dto.TransactionResponse
		TopUp *dto.TopUpDetailResponse `json:"top_up,omitempty"`
	}{
		TransactionResponse: dto.TransactionFromDomain(transaction),
		TopUp:               dto.TopUpDetailFromDomain(detail),
	}

	writeJSON(w, http.StatusOK, resp)
}

// List lists transactions with filters and pagination.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := dto.ListTransactionsQuery{
		AccountID: r.URL.Query().Get("account_id"),
		Type:      r.URL.Query().Get("type"),
		Status:    r.URL.Query().Get("status"),
		From:      parseTimeQuery(r, "from"),
		To:        parseTimeQuery(r, "to"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	transactions, total, err := h.transactionUC.ListTransactions(r.Context(), query.ToFilter())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionListResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        total,
		Limit:        query.Limit,
		Offset:       query.Offset,
	})
}

// TopUpStats aggregates an account's confirmed top-ups per carrier.
func (h *TransactionHandler) TopUpStats(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	stats, err := h.transactionUC.TopUpStats(r.Context(), accountID, parseTimeQuery(r, "from"), parseTimeQuery(r, "to"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get top-up stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CarrierStatsFromUseCase(stats))
}

// runMovement executes a movement, retrying on lock contention. Each attempt
// reruns the whole atomic unit; a failed attempt leaves no state behind.
func (h *TransactionHandler) runMovement(r *http.Request, op func() (*usecase.MovementResult, error)) (*usecase.MovementResult, error) {
	if h.retrier == nil {
		return op()
	}

	var result *usecase.MovementResult
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})

	return result, err
}
