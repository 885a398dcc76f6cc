package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/condorpay/banking/internal/adapter/http/dto"
)

func TestAuthIntegration(t *testing.T) {
	stack := newTestStack(t, decimal.Zero)
	ctx := context.Background()

	t.Run("login returns token and profile", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		client := stack.DB.CreateTestClient(ctx, "1716345678", "s3cret")
		account := stack.DB.CreateTestAccount(ctx, client.ID, "2240000001", decimal.NewFromInt(50))

		w := postJSON(t, stack.Router, "/api/v1/auth/login", dto.LoginRequest{
			AccountNumber: account.Number,
			Password:      "s3cret",
		}, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.Client == nil || resp.Client.ID != client.ID {
			t.Errorf("unexpected client: %+v", resp.Client)
		}
		if resp.Account == nil || resp.Account.Number != account.Number {
			t.Errorf("unexpected account: %+v", resp.Account)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		client := stack.DB.CreateTestClient(ctx, "1716345679", "s3cret")
		account := stack.DB.CreateTestAccount(ctx, client.ID, "2240000002", decimal.Zero)

		w := postJSON(t, stack.Router, "/api/v1/auth/login", dto.LoginRequest{
			AccountNumber: account.Number,
			Password:      "wrong",
		}, nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown account rejected", func(t *testing.T) {
		stack.DB.TruncateAll(ctx)

		w := postJSON(t, stack.Router, "/api/v1/auth/login", dto.LoginRequest{
			AccountNumber: "9999999999",
			Password:      "s3cret",
		}, nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}
