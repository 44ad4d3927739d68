package model

// Family represents a household whose accounts are tracked together.
// All net-worth figures for a family are expressed in its base currency.
type Family struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}
