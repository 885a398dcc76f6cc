package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateTransferAmount(t *testing.T) {
	if err := ValidateTransferAmount(decimal.NewFromFloat(0.01)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateTransferAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateTransferAmount(decimal.NewFromInt(-10)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestValidateTopUpAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"minimum", "1", false},
		{"maximum", "100", false},
		{"mid range", "25.50", false},
		{"zero", "0", true},
		{"negative", "-5", true},
		{"below minimum", "0.50", true},
		{"above maximum", "100.01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopUpAmount(decimal.RequireFromString(tt.amount))

			if tt.wantErr && !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"valid", "0991234567", false},
		{"too short", "099123456", true},
		{"too long", "09912345678", true},
		{"letters", "09912345ab", true},
		{"empty", "", true},
		{"spaces", "099 123 45", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoneNumber(tt.phone)

			if tt.wantErr && !errors.Is(err, ErrInvalidPhoneNumber) {
				t.Errorf("expected ErrInvalidPhoneNumber, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateTopUpType(t *testing.T) {
	if err := ValidateTopUpType(TopUpTypePrepaid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateTopUpType(TopUpTypePostpaid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateTopUpType(TopUpType("HYBRID")); !errors.Is(err, ErrInvalidTopUpType) {
		t.Errorf("expected ErrInvalidTopUpType, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)); !errors.Is(err, ErrInvalidDescription) {
		t.Errorf("expected ErrInvalidDescription, got %v", err)
	}
}

func TestCarrierByCode(t *testing.T) {
	carrier, ok := CarrierByCode("claro")
	if !ok || carrier.Code != "CLARO" {
		t.Errorf("expected CLARO, got %+v ok=%v", carrier, ok)
	}

	carrier, ok = CarrierByCode(" Movistar ")
	if !ok || carrier.Code != "MOVISTAR" {
		t.Errorf("expected MOVISTAR, got %+v ok=%v", carrier, ok)
	}

	if _, ok := CarrierByCode("VODAFONE"); ok {
		t.Error("expected unknown carrier to be rejected")
	}
}

func TestCarrier_ShortCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"CLARO", "CLA"},
		{"MOVISTAR", "MOV"},
		{"CNT", "CNT"},
		{"TUENTI", "TUE"},
	}

	for _, tt := range tests {
		carrier, ok := CarrierByCode(tt.code)
		if !ok {
			t.Fatalf("carrier %s not found", tt.code)
		}
		if got := carrier.ShortCode(); got != tt.want {
			t.Errorf("ShortCode(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
}
