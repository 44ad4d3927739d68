package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/model"
)

// FamilyBuilder provides a fluent interface for creating test families.
//
// Example usage:
//
//	// Simple creation with defaults
//	family := testutil.NewFamily().Build(t, db)
//
//	// Customized family
//	family := testutil.NewFamily().
//	    WithName("The Does").
//	    WithBaseCurrency("USD").
//	    Build(t, db)
type FamilyBuilder struct {
	ID           string
	Name         string
	BaseCurrency string
}

// NewFamily creates a FamilyBuilder with sensible defaults.
func NewFamily() *FamilyBuilder {
	return &FamilyBuilder{
		ID:           MakeID(),
		Name:         MakeFamilyName("Test Family"),
		BaseCurrency: "EUR",
	}
}

// WithID sets a custom ID.
func (b *FamilyBuilder) WithID(id string) *FamilyBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FamilyBuilder) WithName(name string) *FamilyBuilder {
	b.Name = name
	return b
}

// WithBaseCurrency sets the reporting currency.
func (b *FamilyBuilder) WithBaseCurrency(currency string) *FamilyBuilder {
	b.BaseCurrency = currency
	return b
}

// Build creates the family in the database and returns it.
func (b *FamilyBuilder) Build(t *testing.T, db *sql.DB) model.Family {
	t.Helper()

	query := `
		INSERT INTO family (id, name, base_currency)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.BaseCurrency)
	if err != nil {
		t.Fatalf("Failed to create test family: %v", err)
	}

	return model.Family{
		ID:           b.ID,
		Name:         b.Name,
		BaseCurrency: b.BaseCurrency,
	}
}

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	account := testutil.NewAccount(family.ID).
//	    WithType(model.AccountTypeLiability).
//	    WithCurrency("USD").
//	    Build(t, db)
type AccountBuilder struct {
	ID       string
	FamilyID string
	Name     string
	Type     model.AccountType
	Currency string
	IsHidden bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount(familyID string) *AccountBuilder {
	return &AccountBuilder{
		ID:       MakeID(),
		FamilyID: familyID,
		Name:     MakeAccountName("Test Account"),
		Type:     model.AccountTypeAsset,
		Currency: "EUR",
		IsHidden: false,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithType sets the account classification.
func (b *AccountBuilder) WithType(accountType model.AccountType) *AccountBuilder {
	b.Type = accountType
	return b
}

// WithCurrency sets the account currency.
func (b *AccountBuilder) WithCurrency(currency string) *AccountBuilder {
	b.Currency = currency
	return b
}

// Hidden marks the account as excluded from net-worth calculations.
func (b *AccountBuilder) Hidden() *AccountBuilder {
	b.IsHidden = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, family_id, name, type, currency, is_hidden)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FamilyID, b.Name, string(b.Type), b.Currency, b.IsHidden)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:       b.ID,
		FamilyID: b.FamilyID,
		Name:     b.Name,
		Type:     b.Type,
		Currency: b.Currency,
		IsHidden: b.IsHidden,
	}
}

// Convenience functions

// CreateBalance records a balance for an account on a date.
//
// Example usage:
//
//	testutil.CreateBalance(t, db, account.ID, "2025-03-31", 1000000, "EUR")
func CreateBalance(t *testing.T, db *sql.DB, accountID, date string, amountMinor int64, currency string) {
	t.Helper()

	query := `
		INSERT INTO account_balance (id, account_id, date, amount_minor, currency)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), accountID, date, amountMinor, currency)
	if err != nil {
		t.Fatalf("Failed to create test balance: %v", err)
	}
}

// CreateMonthlyBalances records one balance per month-end, walking backward
// from the most recent month-end before today. Values are applied oldest
// first, so values[0] is the oldest month.
func CreateMonthlyBalances(t *testing.T, db *sql.DB, accountID string, today time.Time, currency string, values []int64) {
	t.Helper()

	for i, v := range values {
		monthsBack := len(values) - 1 - i
		date := time.Date(today.Year(), today.Month()-time.Month(monthsBack)+1, 0, 0, 0, 0, 0, time.UTC)
		CreateBalance(t, db, accountID, date.Format("2006-01-02"), v, currency)
	}
}

// CreateFxRate stores a conversion rate for a currency pair.
//
// Example usage:
//
//	testutil.CreateFxRate(t, db, "USD", "EUR", "0.92")
func CreateFxRate(t *testing.T, db *sql.DB, from, to, rate string) {
	t.Helper()

	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		t.Fatalf("Failed to parse test fx rate %q: %v", rate, err)
	}

	query := `
		INSERT INTO fx_rate (from_currency, to_currency, rate)
		VALUES (?, ?, ?)
	`

	if _, err := db.Exec(query, from, to, parsed.String()); err != nil {
		t.Fatalf("Failed to create test fx rate: %v", err)
	}
}

// CreateSnapshot stores a materialized net-worth snapshot.
func CreateSnapshot(t *testing.T, db *sql.DB, familyID, date string, assetsMinor, liabilitiesMinor, netMinor int64, currency string) {
	t.Helper()

	query := `
		INSERT INTO networth_snapshot (id, family_id, date, assets_minor, liabilities_minor, net_minor, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), familyID, date, assetsMinor, liabilitiesMinor, netMinor, currency)
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}
}
