package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/model"
)

// ValidateTimeframes checks that the requested projection horizons are
// non-empty and all members of the supported set. The error names every
// offending value so the caller can surface it directly.
func ValidateTimeframes(years []int) error {
	if len(years) == 0 {
		return fmt.Errorf("%w: at least one timeframe is required", apperrors.ErrInvalidTimeframe)
	}

	var invalid []int
	for _, y := range years {
		if !model.IsAvailableTimeframe(y) {
			invalid = append(invalid, y)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: %v (available: %v)", apperrors.ErrInvalidTimeframe, invalid, model.AvailableTimeframes)
	}

	return nil
}

// ParseTimeframes parses a comma-separated list of timeframe years, e.g.
// "1,5,10", and validates each against the supported set.
func ParseTimeframes(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: at least one timeframe is required", apperrors.ErrInvalidTimeframe)
	}

	parts := strings.Split(raw, ",")
	years := make([]int, 0, len(parts))
	for _, part := range parts {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", apperrors.ErrInvalidTimeframe, strings.TrimSpace(part))
		}
		years = append(years, year)
	}

	if err := ValidateTimeframes(years); err != nil {
		return nil, err
	}

	return years, nil
}

// ParseInterval validates a projection interval, defaulting to monthly
// when the value is empty.
func ParseInterval(raw string) (model.Interval, error) {
	if raw == "" {
		return model.IntervalMonthly, nil
	}
	interval, err := model.ParseInterval(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: monthly, quarterly, yearly)", apperrors.ErrInvalidInterval, raw)
	}
	return interval, nil
}

// ParseGrowthMethod validates a growth method, defaulting to mean when
// the value is empty.
func ParseGrowthMethod(raw string) (model.GrowthMethod, error) {
	if raw == "" {
		return model.GrowthMethodMean, nil
	}
	method, err := model.ParseGrowthMethod(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: mean, median, weighted)", apperrors.ErrInvalidGrowthMethod, raw)
	}
	return method, nil
}
