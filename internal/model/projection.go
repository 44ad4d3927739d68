package model

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// AvailableTimeframes lists the projection horizons, in years, that the
// engine accepts. Any other value is rejected before computation.
var AvailableTimeframes = []int{1, 2, 3, 5, 10, 20}

// IsAvailableTimeframe reports whether years is a supported horizon.
func IsAvailableTimeframe(years int) bool {
	return slices.Contains(AvailableTimeframes, years)
}

// Interval is the step size used when generating projection points.
type Interval string

const (
	IntervalMonthly   Interval = "monthly"
	IntervalQuarterly Interval = "quarterly"
	IntervalYearly    Interval = "yearly"
)

// ParseInterval validates and converts an interval string.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalMonthly, IntervalQuarterly, IntervalYearly:
		return Interval(s), nil
	}
	return "", fmt.Errorf("invalid interval %q: must be one of monthly, quarterly, yearly", s)
}

// StepMonths returns the number of months between consecutive projection points.
func (i Interval) StepMonths() int {
	switch i {
	case IntervalQuarterly:
		return 3
	case IntervalYearly:
		return 12
	default:
		return 1
	}
}

// Scenario pairs a scenario name with the fixed multiplier applied to the
// base monthly growth rate.
type Scenario struct {
	Name       string
	Multiplier decimal.Decimal
}

// Scenarios returns the fixed scenario set. The multipliers are constants
// of the system, not configuration.
func Scenarios() [3]Scenario {
	return [3]Scenario{
		{Name: "conservative", Multiplier: decimal.RequireFromString("0.70")},
		{Name: "realistic", Multiplier: decimal.RequireFromString("1.00")},
		{Name: "optimistic", Multiplier: decimal.RequireFromString("1.30")},
	}
}

// ProjectionPoint is one projected value on the date sequence.
type ProjectionPoint struct {
	Date          string `json:"date"`
	Value         Money  `json:"value"`
	MonthsFromNow int    `json:"months_from_now"`
}

// Milestone is the projected point closest to a requested year offset.
type Milestone struct {
	Date              string `json:"date"`
	Value             Money  `json:"value"`
	GrowthFromCurrent Money  `json:"growth_from_current"`
}

// ScenarioProjection holds the full projected series and milestones for one scenario.
type ScenarioProjection struct {
	Values         []ProjectionPoint `json:"values"`
	Milestones     map[int]Milestone `json:"milestones"`
	FinalValue     Money             `json:"final_value"`
	TotalGrowth    Money             `json:"total_growth"`
	YearsProjected int               `json:"years_projected"`
}

// GrowthRateSummary condenses the computed growth rate for the document header.
type GrowthRateSummary struct {
	Monthly    Money   `json:"monthly"`
	Annualized Money   `json:"annualized"`
	Percent    float64 `json:"percent"`
}

// DataQuality reports how trustworthy the underlying historical data is.
// Volatility is unset in partial documents, where no rate was computed,
// and is omitted from the JSON rather than sent outside its enum.
type DataQuality struct {
	Sufficient     bool       `json:"sufficient"`
	DataPointsUsed int        `json:"data_points_used"`
	Volatility     Volatility `json:"volatility,omitempty"`
	Warning        string     `json:"warning,omitempty"`
}

// ProjectionDocument is the top-level projection result. It is constructed
// fresh per request and has no persisted identity.
type ProjectionDocument struct {
	CurrentNetWorth Money                         `json:"current_net_worth"`
	GrowthRate      *GrowthRateSummary            `json:"growth_rate,omitempty"`
	DataQuality     DataQuality                   `json:"data_quality"`
	Scenarios       map[string]ScenarioProjection `json:"scenarios,omitempty"`
	Timeframes      []int                         `json:"timeframes"`
	Error           GrowthDataError               `json:"error,omitempty"`
	Message         string                        `json:"message,omitempty"`
}
