package service

import (
	"slices"
	"time"

	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/validation"
)

// ProjectionService generates multi-scenario net-worth projections from the
// current net worth and the computed monthly growth rate. Projections are
// pure functions of their inputs; nothing is persisted.
type ProjectionService struct {
	growthService  *GrowthService
	historyService *HistoryService
	overrideRate   *model.Money
}

// NewProjectionService creates a ProjectionService that derives the base
// growth rate from historical data.
func NewProjectionService(growthService *GrowthService, historyService *HistoryService) *ProjectionService {
	return &ProjectionService{
		growthService:  growthService,
		historyService: historyService,
	}
}

// NewProjectionServiceWithRate creates a ProjectionService that projects
// from a caller-supplied monthly rate instead of computing one. The rate is
// taken as-is, so the document carries no volatility or period metadata.
func NewProjectionServiceWithRate(historyService *HistoryService, rate model.Money) *ProjectionService {
	return &ProjectionService{
		historyService: historyService,
		overrideRate:   &rate,
	}
}

// Generate builds the full projection document for the requested horizons.
//
// Invalid timeframes or intervals fail fast with an error. Insufficient or
// poor-quality history does not: it yields a partial document carrying the
// current net worth and the reason, with no scenarios.
func (s *ProjectionService) Generate(
	family model.Family,
	today time.Time,
	timeframes []int,
	interval model.Interval,
) (model.ProjectionDocument, error) {
	if err := validation.ValidateTimeframes(timeframes); err != nil {
		return model.ProjectionDocument{}, err
	}
	if _, err := model.ParseInterval(string(interval)); err != nil {
		return model.ProjectionDocument{}, err
	}

	today = truncateToDate(today)

	current, err := s.historyService.NetWorthAt(family, today)
	if err != nil {
		return model.ProjectionDocument{}, err
	}

	timeframes = slices.Clone(timeframes)
	slices.Sort(timeframes)
	timeframes = slices.Compact(timeframes)

	growth, err := s.baseGrowth(family, today)
	if err != nil {
		return model.ProjectionDocument{}, err
	}

	if !growth.Sufficient {
		return model.ProjectionDocument{
			CurrentNetWorth: current,
			DataQuality: model.DataQuality{
				Sufficient:     false,
				DataPointsUsed: growth.DataPointsUsed,
				Volatility:     growth.Volatility,
			},
			Timeframes: timeframes,
			Error:      growth.Error,
			Message:    growth.Message,
		}, nil
	}

	maxYears := timeframes[len(timeframes)-1]

	scenarios := make(map[string]model.ScenarioProjection, 3)
	for _, scenario := range model.Scenarios() {
		rate := growth.MonthlyRate.Scale(scenario.Multiplier)
		scenarios[scenario.Name] = projectScenario(current, rate, today, timeframes, maxYears, interval)
	}

	return model.ProjectionDocument{
		CurrentNetWorth: current,
		GrowthRate: &model.GrowthRateSummary{
			Monthly:    growth.MonthlyRate,
			Annualized: growth.MonthlyRate.MulInt(12),
			Percent:    growth.MonthlyRatePercent,
		},
		DataQuality: model.DataQuality{
			Sufficient:     true,
			DataPointsUsed: growth.DataPointsUsed,
			Volatility:     growth.Volatility,
			Warning:        growth.Warning,
		},
		Scenarios:  scenarios,
		Timeframes: timeframes,
	}, nil
}

// baseGrowth resolves the monthly rate that scenarios scale from, either
// the override or a fresh calculation using the mean method.
func (s *ProjectionService) baseGrowth(family model.Family, today time.Time) (model.GrowthResult, error) {
	if s.overrideRate != nil {
		return model.GrowthResult{
			Sufficient:  true,
			MonthlyRate: *s.overrideRate,
			Volatility:  model.VolatilityLow,
		}, nil
	}
	return s.growthService.Calculate(family, today, model.GrowthMethodMean)
}

// projectScenario walks the date sequence for one scenario. Each point is
// positioned by calendar-month offset from today with the day-of-month
// clamped, so months_from_now is exact and dates never drift across month
// boundaries.
func projectScenario(
	current model.Money,
	monthlyRate model.Money,
	today time.Time,
	timeframes []int,
	maxYears int,
	interval model.Interval,
) model.ScenarioProjection {
	step := interval.StepMonths()

	values := make([]model.ProjectionPoint, 0, maxYears*12/step+1)
	for m := 0; m <= maxYears*12; m += step {
		values = append(values, model.ProjectionPoint{
			Date:          addMonthsClamped(today, m).Format("2006-01-02"),
			Value:         model.NewMoney(current.Amount+monthlyRate.Amount*int64(m), current.Currency),
			MonthsFromNow: m,
		})
	}

	milestones := make(map[int]model.Milestone, len(timeframes))
	for _, years := range timeframes {
		point := closestPoint(values, addMonthsClamped(today, years*12))
		milestones[years] = model.Milestone{
			Date:              point.Date,
			Value:             point.Value,
			GrowthFromCurrent: model.NewMoney(point.Value.Amount-current.Amount, current.Currency),
		}
	}

	final := values[len(values)-1]

	return model.ScenarioProjection{
		Values:         values,
		Milestones:     milestones,
		FinalValue:     final.Value,
		TotalGrowth:    model.NewMoney(final.Value.Amount-current.Amount, current.Currency),
		YearsProjected: maxYears,
	}
}

// closestPoint returns the projection point nearest to the target date.
// On an exact tie the earlier point wins.
func closestPoint(values []model.ProjectionPoint, target time.Time) model.ProjectionPoint {
	best := values[0]
	bestDistance := dateDistance(best.Date, target)

	for _, p := range values[1:] {
		if d := dateDistance(p.Date, target); d < bestDistance {
			best = p
			bestDistance = d
		}
	}

	return best
}

// dateDistance is the absolute gap in days between an ISO date string and
// a target date.
func dateDistance(isoDate string, target time.Time) int64 {
	t, _ := time.Parse("2006-01-02", isoDate)
	return absInt64(int64(t.Sub(target).Hours() / 24))
}
