package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/apperrors"
)

// FxRateRepository provides data access methods for the fx_rate table.
// Rates are stored as decimal strings to avoid floating-point drift.
type FxRateRepository struct {
	db *sql.DB
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// GetRate retrieves the conversion rate from one currency to another.
// Returns apperrors.ErrExchangeRateNotFound when no rate is stored for the pair.
func (r *FxRateRepository) GetRate(fromCurrency, toCurrency string) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM fx_rate
		WHERE from_currency = ? AND to_currency = ?
	`

	var rateStr string
	err := r.db.QueryRow(query, fromCurrency, toCurrency).Scan(&rateStr)
	if err == sql.ErrNoRows {
		return decimal.Decimal{}, fmt.Errorf("%w: %s/%s", apperrors.ErrExchangeRateNotFound, fromCurrency, toCurrency)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to query fx_rate table: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse stored rate %q: %w", rateStr, err)
	}

	return rate, nil
}

// UpsertRate inserts or replaces the conversion rate for a currency pair.
func (r *FxRateRepository) UpsertRate(fromCurrency, toCurrency string, rate decimal.Decimal) error {
	query := `
		INSERT INTO fx_rate (from_currency, to_currency, rate, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(from_currency, to_currency) DO UPDATE SET
			rate = excluded.rate,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, fromCurrency, toCurrency, rate.String()); err != nil {
		return fmt.Errorf("failed to upsert fx_rate: %w", err)
	}

	return nil
}
