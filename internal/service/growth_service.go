package service

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/model"
)

// DefaultMinimumMonths is the minimum number of month-end points required
// before a growth rate is considered meaningful.
const DefaultMinimumMonths = 6

// maxZeroPointsPercent is the share of zero-valued points above which the
// historical data is classified as poor quality.
const maxZeroPointsPercent = 30

// GrowthService turns the historical net-worth series into a single
// representative monthly growth amount plus quality metadata. Results are
// recomputed on every call and never cached here; callers may memoize.
type GrowthService struct {
	historyService *HistoryService
	minimumMonths  int
}

// NewGrowthService creates a new GrowthService. A non-positive minimumMonths
// falls back to DefaultMinimumMonths.
func NewGrowthService(historyService *HistoryService, minimumMonths int) *GrowthService {
	if minimumMonths <= 0 {
		minimumMonths = DefaultMinimumMonths
	}
	return &GrowthService{
		historyService: historyService,
		minimumMonths:  minimumMonths,
	}
}

// Calculate computes the family's representative monthly growth rate using
// the given reduction method.
//
// Data-quality problems (too little history, too many empty months) are
// reported inside the returned GrowthResult so the caller can render a
// guided message; a Go error is returned only for invalid arguments or
// storage failures.
func (s *GrowthService) Calculate(family model.Family, today time.Time, method model.GrowthMethod) (model.GrowthResult, error) {
	switch method {
	case model.GrowthMethodMean, model.GrowthMethodMedian, model.GrowthMethodWeighted:
	default:
		return model.GrowthResult{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidGrowthMethod, method)
	}

	points, err := s.historyService.BuildSeries(family, today, s.minimumMonths)
	if err != nil {
		return model.GrowthResult{}, err
	}

	if result, ok := s.gateDataQuality(family, points); !ok {
		return result, nil
	}

	deltas := monthlyDeltas(points)
	rate := model.NewMoney(reduceDeltas(deltas, method), family.BaseCurrency)

	volatility := classifyDeltaVolatility(deltas, rate.Amount)

	return model.GrowthResult{
		Sufficient:         true,
		MonthlyRate:        rate,
		MonthlyRatePercent: percentRate(rate.Amount, points),
		Volatility:         volatility,
		Warning:            growthWarnings(deltas, volatility, rate.MinorUnitsPerMajor()),
		DataPointsUsed:     len(points),
		Period:             seriesPeriod(points),
	}, nil
}

// SufficientData reports whether the family's history passes the
// sufficiency and data-quality gates.
func (s *GrowthService) SufficientData(family model.Family, today time.Time) (bool, error) {
	points, err := s.historyService.BuildSeries(family, today, s.minimumMonths)
	if err != nil {
		return false, err
	}
	_, ok := s.gateDataQuality(family, points)
	return ok, nil
}

// gateDataQuality applies the sufficiency gates. When the data is unusable
// it returns the fully-formed insufficient result and false.
func (s *GrowthService) gateDataQuality(family model.Family, points []model.HistoricalPoint) (model.GrowthResult, bool) {
	if len(points) < s.minimumMonths {
		return model.GrowthResult{
			Sufficient:     false,
			MonthlyRate:    model.NewMoney(0, family.BaseCurrency),
			DataPointsUsed: len(points),
			Period:         seriesPeriod(points),
			Error:          model.GrowthErrorInsufficientHistory,
			Message:        fmt.Sprintf("need at least %d months of history, found %d", s.minimumMonths, len(points)),
		}, false
	}

	zeroCount := 0
	for _, p := range points {
		if p.Value.IsZero() {
			zeroCount++
		}
	}
	if zeroCount*100 > len(points)*maxZeroPointsPercent {
		return model.GrowthResult{
			Sufficient:     false,
			MonthlyRate:    model.NewMoney(0, family.BaseCurrency),
			DataPointsUsed: len(points),
			Period:         seriesPeriod(points),
			Error:          model.GrowthErrorPoorDataQuality,
			Message:        fmt.Sprintf("more than %d%% of historical months have no recorded balances", maxZeroPointsPercent),
		}, false
	}

	return model.GrowthResult{}, true
}

// monthlyDeltas computes the n-1 month-over-month changes, in minor units.
func monthlyDeltas(points []model.HistoricalPoint) []int64 {
	deltas := make([]int64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		deltas = append(deltas, points[i].Value.Amount-points[i-1].Value.Amount)
	}
	return deltas
}

// reduceDeltas collapses the delta series to one representative monthly
// amount. All arithmetic stays on minor-unit integers.
func reduceDeltas(deltas []int64, method model.GrowthMethod) int64 {
	if len(deltas) == 0 {
		return 0
	}

	switch method {
	case model.GrowthMethodMedian:
		sorted := slices.Clone(deltas)
		slices.Sort(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		// even count: floor of the average of the two middle values
		return floorDiv(sorted[mid-1]+sorted[mid], 2)

	case model.GrowthMethodWeighted:
		// linear weights 1..n, oldest lightest, most recent heaviest
		var weightedSum, weightTotal int64
		for i, d := range deltas {
			weight := int64(i + 1)
			weightedSum += weight * d
			weightTotal += weight
		}
		return weightedSum / weightTotal

	default: // mean
		var sum int64
		for _, d := range deltas {
			sum += d
		}
		return sum / int64(len(deltas))
	}
}

// percentRate expresses the monthly rate as a percentage of the average
// net worth over the period, rounded to two decimals. Returns 0.0 when the
// average is zero.
func percentRate(rateMinor int64, points []model.HistoricalPoint) float64 {
	var sum int64
	for _, p := range points {
		sum += p.Value.Amount
	}
	average := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(points))))
	if average.IsZero() {
		return 0.0
	}

	percent := decimal.NewFromInt(rateMinor).
		Div(average).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	result, _ := percent.Float64()
	return result
}

// classifyDeltaVolatility classifies the dispersion of the deltas around
// the computed rate via the coefficient of variation. A zero rate is
// classified low unconditionally.
func classifyDeltaVolatility(deltas []int64, rateMinor int64) model.Volatility {
	if rateMinor == 0 {
		return model.VolatilityLow
	}

	var sumSquares float64
	for _, d := range deltas {
		diff := float64(d - rateMinor)
		sumSquares += diff * diff
	}
	stdDev := math.Sqrt(sumSquares / float64(len(deltas)))

	cv := stdDev / math.Abs(float64(rateMinor))
	return model.ClassifyVolatility(cv)
}

// growthWarnings collects all applicable data warnings into a single
// space-separated string. Empty when none apply.
func growthWarnings(deltas []int64, volatility model.Volatility, minorPerMajor int64) string {
	var warnings []string

	if n := len(deltas); n >= 3 && deltas[n-1] < 0 && deltas[n-2] < 0 && deltas[n-3] < 0 {
		warnings = append(warnings, "Net worth has declined over each of the last 3 months.")
	}

	if volatility == model.VolatilityHigh {
		warnings = append(warnings, "Growth rate is highly volatile; projections are rough estimates.")
	}

	minimal := true
	for _, d := range deltas {
		if absInt64(d) >= minorPerMajor {
			minimal = false
			break
		}
	}
	if minimal && len(deltas) > 0 {
		warnings = append(warnings, "Monthly changes are minimal; the growth rate may not be meaningful.")
	}

	return strings.Join(warnings, " ")
}

// seriesPeriod returns the ISO date span covered by the series.
func seriesPeriod(points []model.HistoricalPoint) model.Period {
	if len(points) == 0 {
		return model.Period{}
	}
	return model.Period{
		Start: points[0].Date.Format("2006-01-02"),
		End:   points[len(points)-1].Date.Format("2006-01-02"),
	}
}
