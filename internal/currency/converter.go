// Package currency converts monetary amounts between currencies using the
// operator-maintained fx_rate table. Conversion is an explicit, fallible
// step: amounts in different currencies are never combined implicitly.
package currency

import (
	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/repository"
)

// Converter converts amounts into a target currency.
type Converter struct {
	rates *repository.FxRateRepository
}

// NewConverter creates a Converter backed by the stored rate table.
func NewConverter(rates *repository.FxRateRepository) *Converter {
	return &Converter{rates: rates}
}

// Convert returns the amount expressed in toCurrency. Same-currency
// conversion is the identity. Returns apperrors.ErrExchangeRateNotFound
// (wrapped) when no rate is stored for the pair.
func (c *Converter) Convert(amount model.Money, toCurrency string) (model.Money, error) {
	if amount.Currency == toCurrency {
		return amount, nil
	}

	rate, err := c.rates.GetRate(amount.Currency, toCurrency)
	if err != nil {
		return model.Money{}, err
	}

	converted := decimal.NewFromInt(amount.Amount).Mul(rate).Round(0)
	return model.NewMoney(converted.IntPart(), toCurrency), nil
}
