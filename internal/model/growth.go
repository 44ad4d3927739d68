package model

import (
	"fmt"
	"time"
)

// GrowthMethod selects how month-over-month deltas are reduced to a single
// representative monthly growth amount.
type GrowthMethod string

const (
	// GrowthMethodMean averages all deltas.
	GrowthMethodMean GrowthMethod = "mean"
	// GrowthMethodMedian takes the middle delta of the sorted series.
	GrowthMethodMedian GrowthMethod = "median"
	// GrowthMethodWeighted weights deltas linearly, most recent heaviest.
	GrowthMethodWeighted GrowthMethod = "weighted"
)

// ParseGrowthMethod validates and converts a growth method string.
func ParseGrowthMethod(s string) (GrowthMethod, error) {
	switch GrowthMethod(s) {
	case GrowthMethodMean, GrowthMethodMedian, GrowthMethodWeighted:
		return GrowthMethod(s), nil
	}
	return "", fmt.Errorf("invalid growth method %q: must be one of mean, median, weighted", s)
}

// Volatility classifies how dispersed the monthly deltas are around the
// computed growth rate, based on the coefficient of variation.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// ClassifyVolatility maps a coefficient of variation to a volatility bucket.
func ClassifyVolatility(cv float64) Volatility {
	switch {
	case cv < 0.5:
		return VolatilityLow
	case cv < 1.5:
		return VolatilityMedium
	default:
		return VolatilityHigh
	}
}

// GrowthDataError identifies why historical data was unusable for a growth
// calculation. These travel inside the result rather than as Go errors so
// callers can render a guided message.
type GrowthDataError string

const (
	GrowthErrorInsufficientHistory GrowthDataError = "insufficient_history"
	GrowthErrorPoorDataQuality     GrowthDataError = "poor_data_quality"
)

// HistoricalPoint is one month-end net-worth sample.
type HistoricalPoint struct {
	Date  time.Time
	Value Money
}

// Period is the date span covered by a growth calculation, ISO dates.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GrowthResult is the immutable outcome of a single growth calculation.
// It is recomputed on every call and never cached by the core.
type GrowthResult struct {
	Sufficient         bool            `json:"sufficient"`
	MonthlyRate        Money           `json:"monthly_rate"`
	MonthlyRatePercent float64         `json:"monthly_rate_percent"`
	Volatility         Volatility      `json:"volatility,omitempty"`
	Warning            string          `json:"warning,omitempty"`
	DataPointsUsed     int             `json:"data_points_used"`
	Period             Period          `json:"period"`
	Error              GrowthDataError `json:"error,omitempty"`
	Message            string          `json:"message,omitempty"`
}
