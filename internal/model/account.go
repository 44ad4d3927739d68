package model

import "time"

// AccountType classifies an account as an asset or a liability.
// Liability balances are subtracted when computing net worth.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
)

// Account represents a single tracked account from the database.
// Hidden accounts are excluded from net-worth calculations.
type Account struct {
	ID       string      `json:"id"`
	FamilyID string      `json:"family_id"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Currency string      `json:"currency"`
	IsHidden bool        `json:"is_hidden"`
}

// Balance is a point-in-time balance snapshot for an account.
// Snapshots are stored time-ordered; the balance of an account as of a
// date is the most recent snapshot at or before that date.
type Balance struct {
	AccountID string
	Date      time.Time
	Amount    Money
}

// AccountFilter controls which accounts are loaded for a family.
type AccountFilter struct {
	IncludeHidden bool
}
