package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFamilyNotFound indicates that a family with the given ID does not exist.
	ErrFamilyNotFound = errors.New("family not found")

	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrExchangeRateNotFound indicates no conversion rate is stored for a currency pair.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency pair not found")

	// ErrSettingNotFound indicates that a requested application setting has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidTimeframe indicates a projection horizon outside the supported set.
	ErrInvalidTimeframe = errors.New("invalid timeframe")

	// ErrInvalidInterval indicates an unsupported projection interval.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidGrowthMethod indicates an unsupported growth calculation method.
	ErrInvalidGrowthMethod = errors.New("invalid growth method")

	// ErrCurrencyMismatch indicates arithmetic was attempted between different
	// currencies without an explicit conversion step.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)
