package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/apperrors"
)

// Money represents a monetary amount as an integer count of the currency's
// minor unit (cents for EUR/USD) tagged with its ISO 4217 currency code.
// Amounts are never stored as floating point; arithmetic is only defined
// between matching currencies and conversion between currencies is an
// explicit step owned by the currency package.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney creates a Money value from an amount in minor units and a currency code.
func NewMoney(minorUnits int64, currency string) Money {
	return Money{Amount: minorUnits, Currency: currency}
}

func (m Money) asGoMoney() *money.Money {
	return money.New(m.Amount, m.Currency)
}

// Add returns m + n. Both amounts must carry the same currency; mixing
// currencies fails with apperrors.ErrCurrencyMismatch.
func (m Money) Add(n Money) (Money, error) {
	if m.Currency != n.Currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", apperrors.ErrCurrencyMismatch, n.Currency, m.Currency)
	}
	result, err := m.asGoMoney().Add(n.asGoMoney())
	if err != nil {
		return Money{}, fmt.Errorf("failed to add amounts: %w", err)
	}
	return Money{Amount: result.Amount(), Currency: m.Currency}, nil
}

// Sub returns m - n. Both amounts must carry the same currency; mixing
// currencies fails with apperrors.ErrCurrencyMismatch.
func (m Money) Sub(n Money) (Money, error) {
	if m.Currency != n.Currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", apperrors.ErrCurrencyMismatch, n.Currency, m.Currency)
	}
	result, err := m.asGoMoney().Subtract(n.asGoMoney())
	if err != nil {
		return Money{}, fmt.Errorf("failed to subtract amounts: %w", err)
	}
	return Money{Amount: result.Amount(), Currency: m.Currency}, nil
}

// MulInt returns m multiplied by an integer factor.
func (m Money) MulInt(factor int64) Money {
	return Money{Amount: m.Amount * factor, Currency: m.Currency}
}

// Scale multiplies the minor-unit amount by a rational multiplier and
// rounds the result to the nearest minor unit (half away from zero).
func (m Money) Scale(multiplier decimal.Decimal) Money {
	scaled := decimal.NewFromInt(m.Amount).Mul(multiplier).Round(0)
	return Money{Amount: scaled.IntPart(), Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// MinorUnitsPerMajor returns how many minor units make up one major unit
// of the currency (100 for EUR/USD, 1 for JPY).
func (m Money) MinorUnitsPerMajor() int64 {
	fraction := m.asGoMoney().Currency().Fraction
	factor := int64(1)
	for i := 0; i < fraction; i++ {
		factor *= 10
	}
	return factor
}

// Formatted returns the amount formatted for display, e.g. "€1,234.56".
func (m Money) Formatted() string {
	return m.asGoMoney().Display()
}

// moneyJSON is the wire representation of a monetary amount. The amount is
// serialized as a minor-unit integer string so round-trips are exact.
type moneyJSON struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:    strconv.FormatInt(m.Amount, 10),
		Currency:  m.Currency,
		Formatted: m.Formatted(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. The formatted field is
// display-only and ignored on the way in.
func (m *Money) UnmarshalJSON(data []byte) error {
	var wire moneyJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	amount, err := strconv.ParseInt(wire.Amount, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse minor-unit amount %q: %w", wire.Amount, err)
	}
	m.Amount = amount
	m.Currency = wire.Currency
	return nil
}
