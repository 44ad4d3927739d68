package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/model"
)

// TestMoney_Arithmetic tests addition and subtraction of monetary amounts.
//
// WHY: Every net-worth figure in the system is built from these operations.
// Mixing currencies without an explicit conversion must fail loudly instead
// of silently producing a wrong total.
func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds amounts with matching currency", func(t *testing.T) {
		a := model.NewMoney(150000, "EUR")
		b := model.NewMoney(25050, "EUR")

		sum, err := a.Add(b)
		if err != nil {
			t.Fatalf("Add() returned unexpected error: %v", err)
		}

		if sum.Amount != 175050 {
			t.Errorf("Expected 175050, got %d", sum.Amount)
		}
		if sum.Currency != "EUR" {
			t.Errorf("Expected currency EUR, got %s", sum.Currency)
		}
	})

	t.Run("subtracts into negative amounts", func(t *testing.T) {
		a := model.NewMoney(10000, "EUR")
		b := model.NewMoney(25000, "EUR")

		diff, err := a.Sub(b)
		if err != nil {
			t.Fatalf("Sub() returned unexpected error: %v", err)
		}

		if diff.Amount != -15000 {
			t.Errorf("Expected -15000, got %d", diff.Amount)
		}
		if !diff.IsNegative() {
			t.Error("Expected IsNegative() to be true")
		}
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		a := model.NewMoney(10000, "EUR")
		b := model.NewMoney(10000, "USD")

		_, err := a.Add(b)
		if !errors.Is(err, apperrors.ErrCurrencyMismatch) {
			t.Errorf("Expected ErrCurrencyMismatch adding EUR to USD, got %v", err)
		}

		_, err = a.Sub(b)
		if !errors.Is(err, apperrors.ErrCurrencyMismatch) {
			t.Errorf("Expected ErrCurrencyMismatch subtracting USD from EUR, got %v", err)
		}
	})

	t.Run("multiplies by integer factor", func(t *testing.T) {
		monthly := model.NewMoney(50000, "EUR")

		annual := monthly.MulInt(12)

		if annual.Amount != 600000 {
			t.Errorf("Expected 600000, got %d", annual.Amount)
		}
	})
}

// TestMoney_Scale tests rational scaling with half-away-from-zero rounding.
//
// WHY: Scenario multipliers (0.70 and 1.30) are applied with Scale. Rounding
// direction decides the exact projected values, so it must be deterministic
// for positive and negative rates alike.
func TestMoney_Scale(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		multiplier string
		expected   int64
	}{
		{"scales down by 0.70", 50000, "0.70", 35000},
		{"identity multiplier", 50000, "1.00", 50000},
		{"scales up by 1.30", 50000, "1.30", 65000},
		{"rounds half away from zero", 5, "0.70", 4},
		{"rounds exact half up", 15, "0.50", 8},
		{"negative rounds half away from zero", -15, "0.50", -8},
		{"negative amount scales", -50000, "1.30", -65000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.NewMoney(tt.amount, "EUR")
			scaled := m.Scale(decimal.RequireFromString(tt.multiplier))

			if scaled.Amount != tt.expected {
				t.Errorf("Scale(%d, %s) = %d, expected %d", tt.amount, tt.multiplier, scaled.Amount, tt.expected)
			}
		})
	}
}

// TestMoney_JSON tests the wire representation round-trip.
//
// WHY: Amounts travel as minor-unit integer strings so clients never see
// floating point. A round-trip must preserve the amount exactly.
func TestMoney_JSON(t *testing.T) {
	t.Run("marshals with formatted display value", func(t *testing.T) {
		m := model.NewMoney(5600000, "USD")

		data, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}

		var wire map[string]string
		if err := json.Unmarshal(data, &wire); err != nil {
			t.Fatalf("Failed to decode wire format: %v", err)
		}

		if wire["amount"] != "5600000" {
			t.Errorf("Expected amount \"5600000\", got %q", wire["amount"])
		}
		if wire["currency"] != "USD" {
			t.Errorf("Expected currency USD, got %q", wire["currency"])
		}
		if wire["formatted"] == "" {
			t.Error("Expected a non-empty formatted value")
		}
	})

	t.Run("round-trips exactly", func(t *testing.T) {
		original := model.NewMoney(-123456789, "EUR")

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}

		var decoded model.Money
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}

		if decoded.Amount != original.Amount || decoded.Currency != original.Currency {
			t.Errorf("Round-trip changed value: got %+v, expected %+v", decoded, original)
		}
	})

	t.Run("rejects non-integer amount", func(t *testing.T) {
		var m model.Money
		if err := json.Unmarshal([]byte(`{"amount":"12.5","currency":"EUR"}`), &m); err == nil {
			t.Error("Expected error for fractional amount, got nil")
		}
	})
}

// TestMoney_MinorUnitsPerMajor checks the minor-unit factor per currency.
func TestMoney_MinorUnitsPerMajor(t *testing.T) {
	if got := model.NewMoney(0, "EUR").MinorUnitsPerMajor(); got != 100 {
		t.Errorf("Expected 100 minor units per EUR, got %d", got)
	}
	if got := model.NewMoney(0, "JPY").MinorUnitsPerMajor(); got != 1 {
		t.Errorf("Expected 1 minor unit per JPY, got %d", got)
	}
}
