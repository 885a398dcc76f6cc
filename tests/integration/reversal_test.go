package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/adapter/http/dto"
	"github.com/condorpay/banking/internal/domain"
)

func TestReversalIntegration(t *testing.T) {
	stack := newTestStack(t, decimal.Zero)
	ctx := context.Background()

	t.Run("reversal restores both balances exactly", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		client := stack.DB.CreateTestClient(ctx, "1714345678", "s3cret")
		source := stack.DB.CreateTestAccount(ctx, client.ID, "2220000001", decimal.NewFromInt(1000))
		dest := stack.DB.CreateTestAccount(ctx, client.ID, "2220000002", decimal.NewFromInt(200))

		w := postJSON(t, stack.Router, "/api/v1/transfers", dto.InitiateTransferRequest{
			SourceAccountID: source.ID,
			Destination:     dest.Number,
			Amount:          decimal.NewFromInt(300),
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created dto.MovementResponse
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+created.Transaction.ID+"/reverse", nil)
		rec := httptest.NewRecorder()
		stack.Router.ServeHTTP(rec, r)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var reversed dto.TransactionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &reversed); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if reversed.Status != string(domain.TransactionStatusReversed) {
			t.Errorf("expected REVERSED, got %s", reversed.Status)
		}

		// The commission returns to the source with the amount.
		sourceAfter, _ := stack.AccountRepo.GetByID(ctx, source.ID)
		if !sourceAfter.AvailableBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected source balance 1000, got %s", sourceAfter.AvailableBalance)
		}
		destAfter, _ := stack.AccountRepo.GetByID(ctx, dest.ID)
		if !destAfter.AvailableBalance.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected destination balance 200, got %s", destAfter.AvailableBalance)
		}
	})

	t.Run("second reversal is rejected", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		client := stack.DB.CreateTestClient(ctx, "1714345679", "s3cret")
		source := stack.DB.CreateTestAccount(ctx, client.ID, "2220000003", decimal.NewFromInt(100))
		dest := stack.DB.CreateTestAccount(ctx, client.ID, "2220000004", decimal.Zero)

		w := postJSON(t, stack.Router, "/api/v1/transfers", dto.InitiateTransferRequest{
			SourceAccountID: source.ID,
			Destination:     dest.Number,
			Amount:          decimal.NewFromInt(10),
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created dto.MovementResponse
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		path := "/api/v1/transactions/" + created.Transaction.ID + "/reverse"

		rec := httptest.NewRecorder()
		stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("first reversal failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on second reversal, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("top-ups cannot be reversed", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		client := stack.DB.CreateTestClient(ctx, "1714345680", "s3cret")
		source := stack.DB.CreateTestAccount(ctx, client.ID, "2220000005", decimal.NewFromInt(100))

		w := postJSON(t, stack.Router, "/api/v1/topups", dto.InitiateTopUpRequest{
			SourceAccountID: source.ID,
			PhoneNumber:     "0991234567",
			Carrier:         "CLARO",
			Amount:          decimal.NewFromInt(10),
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created dto.MovementResponse
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		rec := httptest.NewRecorder()
		stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
			"/api/v1/transactions/"+created.Transaction.ID+"/reverse", nil))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}

		sourceAfter, _ := stack.AccountRepo.GetByID(ctx, source.ID)
		if !sourceAfter.AvailableBalance.Equal(decimal.RequireFromString("89.70")) {
			t.Errorf("rejected reversal must not move funds, balance %s", sourceAfter.AvailableBalance)
		}
	})
}
