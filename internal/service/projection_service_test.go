package service_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/service"
	"github.com/famfin/networth-backend/internal/testutil"
)

// TestProjectionService_Generate tests the multi-scenario projection engine.
//
// WHY: The projected figures are the product the frontend charts. The
// scenario arithmetic is pinned with exact values so a change in rounding
// or scaling semantics fails loudly.
func TestProjectionService_Generate(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	steadyValues := []int64{4600000, 4650000, 4700000, 4750000, 4800000, 4850000, 4900000, 4950000, 5000000}

	t.Run("projects exact scenario values over one year", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", steadyValues)

		// Execute
		doc, err := svc.Generate(family, today, []int{1}, model.IntervalMonthly)

		// Assert
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if doc.CurrentNetWorth.Amount != 5000000 {
			t.Fatalf("Expected current net worth 5000000, got %d", doc.CurrentNetWorth.Amount)
		}
		if doc.GrowthRate == nil {
			t.Fatal("Expected a growth rate summary")
		}
		if doc.GrowthRate.Monthly.Amount != 50000 {
			t.Errorf("Expected monthly rate 50000, got %d", doc.GrowthRate.Monthly.Amount)
		}
		if doc.GrowthRate.Annualized.Amount != 600000 {
			t.Errorf("Expected annualized rate 600000, got %d", doc.GrowthRate.Annualized.Amount)
		}

		// Base rate 50000/month over 12 months, scaled per scenario
		expected := map[string]int64{
			"conservative": 5420000, // 50000 * 0.70 = 35000/month
			"realistic":    5600000,
			"optimistic":   5780000, // 50000 * 1.30 = 65000/month
		}

		for name, want := range expected {
			scenario, ok := doc.Scenarios[name]
			if !ok {
				t.Fatalf("Missing scenario %q", name)
			}
			if scenario.FinalValue.Amount != want {
				t.Errorf("Scenario %s: expected final value %d, got %d", name, want, scenario.FinalValue.Amount)
			}
			if scenario.TotalGrowth.Amount != want-5000000 {
				t.Errorf("Scenario %s: expected total growth %d, got %d", name, want-5000000, scenario.TotalGrowth.Amount)
			}
			if scenario.YearsProjected != 1 {
				t.Errorf("Scenario %s: expected 1 year projected, got %d", name, scenario.YearsProjected)
			}
			if len(scenario.Values) != 13 {
				t.Errorf("Scenario %s: expected 13 monthly points, got %d", name, len(scenario.Values))
			}
		}
	})

	t.Run("scenario ordering holds at every point", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", steadyValues)

		// Execute
		doc, err := svc.Generate(family, today, []int{5}, model.IntervalMonthly)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		conservative := doc.Scenarios["conservative"].Values
		realistic := doc.Scenarios["realistic"].Values
		optimistic := doc.Scenarios["optimistic"].Values

		for i := range realistic {
			if conservative[i].Value.Amount > realistic[i].Value.Amount {
				t.Fatalf("Point %d: conservative %d exceeds realistic %d", i, conservative[i].Value.Amount, realistic[i].Value.Amount)
			}
			if realistic[i].Value.Amount > optimistic[i].Value.Amount {
				t.Fatalf("Point %d: realistic %d exceeds optimistic %d", i, realistic[i].Value.Amount, optimistic[i].Value.Amount)
			}
		}
	})

	t.Run("milestones land on the requested year boundaries", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", steadyValues)

		// Execute
		doc, err := svc.Generate(family, today, []int{1, 3, 5}, model.IntervalMonthly)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		realistic := doc.Scenarios["realistic"]

		if len(realistic.Milestones) != 3 {
			t.Fatalf("Expected 3 milestones, got %d", len(realistic.Milestones))
		}

		// Monthly stepping hits each year boundary exactly
		for _, years := range []int{1, 3, 5} {
			milestone, ok := realistic.Milestones[years]
			if !ok {
				t.Fatalf("Missing milestone for %d years", years)
			}

			expectedValue := int64(5000000 + 50000*12*years)
			if milestone.Value.Amount != expectedValue {
				t.Errorf("Milestone %dy: expected value %d, got %d", years, expectedValue, milestone.Value.Amount)
			}
			if milestone.GrowthFromCurrent.Amount != expectedValue-5000000 {
				t.Errorf("Milestone %dy: expected growth %d, got %d", years, expectedValue-5000000, milestone.GrowthFromCurrent.Amount)
			}
		}

		// Milestones grow monotonically with the horizon
		if realistic.Milestones[1].Value.Amount >= realistic.Milestones[3].Value.Amount ||
			realistic.Milestones[3].Value.Amount >= realistic.Milestones[5].Value.Amount {
			t.Error("Expected milestone values to increase with the horizon")
		}
	})

	t.Run("quarterly interval steps three months at a time", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", steadyValues)

		// Execute
		doc, err := svc.Generate(family, today, []int{2}, model.IntervalQuarterly)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		values := doc.Scenarios["realistic"].Values
		if len(values) != 9 {
			t.Fatalf("Expected 9 quarterly points over 2 years, got %d", len(values))
		}

		for i, p := range values {
			if p.MonthsFromNow != i*3 {
				t.Errorf("Point %d: expected months_from_now %d, got %d", i, i*3, p.MonthsFromNow)
			}
		}
	})

	t.Run("sorts and deduplicates requested timeframes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", steadyValues)

		doc, err := svc.Generate(family, today, []int{10, 1, 5, 1}, model.IntervalMonthly)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		expected := []int{1, 5, 10}
		if len(doc.Timeframes) != len(expected) {
			t.Fatalf("Expected timeframes %v, got %v", expected, doc.Timeframes)
		}
		for i, y := range expected {
			if doc.Timeframes[i] != y {
				t.Fatalf("Expected timeframes %v, got %v", expected, doc.Timeframes)
			}
		}

		if doc.Scenarios["realistic"].YearsProjected != 10 {
			t.Errorf("Expected projection out to 10 years, got %d", doc.Scenarios["realistic"].YearsProjected)
		}
	})

	t.Run("rejects unsupported timeframes before computing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)

		_, err := svc.Generate(family, today, []int{7}, model.IntervalMonthly)
		if !errors.Is(err, apperrors.ErrInvalidTimeframe) {
			t.Errorf("Expected ErrInvalidTimeframe, got %v", err)
		}

		_, err = svc.Generate(family, today, nil, model.IntervalMonthly)
		if !errors.Is(err, apperrors.ErrInvalidTimeframe) {
			t.Errorf("Expected ErrInvalidTimeframe for empty list, got %v", err)
		}
	})

	t.Run("returns a partial document on insufficient history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		// Only 2 months of balances
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", []int64{4950000, 5000000})

		// Execute
		doc, err := svc.Generate(family, today, []int{1, 5}, model.IntervalMonthly)

		// Assert
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if doc.Error != model.GrowthErrorInsufficientHistory {
			t.Errorf("Expected insufficient_history, got %s", doc.Error)
		}
		if doc.CurrentNetWorth.Amount != 5000000 {
			t.Errorf("Expected current net worth 5000000 in partial document, got %d", doc.CurrentNetWorth.Amount)
		}
		if doc.Scenarios != nil {
			t.Error("Expected no scenarios in partial document")
		}
		if doc.GrowthRate != nil {
			t.Error("Expected no growth rate in partial document")
		}
		if doc.DataQuality.Sufficient {
			t.Error("Expected data quality to report insufficient")
		}

		// No rate was computed, so no volatility bucket may appear on the wire.
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}
		if strings.Contains(string(raw), `"volatility"`) {
			t.Errorf("Expected no volatility field in partial document, got %s", raw)
		}
	})

	t.Run("projection dates clamp instead of drifting across months", func(t *testing.T) {
		// Setup: today is the 31st, so shorter months must clamp
		endOfJanuary := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectionService(t, db, 6)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateMonthlyBalances(t, db, account.ID, endOfJanuary, "EUR", steadyValues)

		// Execute
		doc, err := svc.Generate(family, endOfJanuary, []int{1}, model.IntervalMonthly)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		values := doc.Scenarios["realistic"].Values
		if values[1].Date != "2025-02-28" {
			t.Errorf("Expected 2025-02-28 one month after Jan 31, got %s", values[1].Date)
		}
		if values[2].Date != "2025-03-31" {
			t.Errorf("Expected 2025-03-31 two months after Jan 31, got %s", values[2].Date)
		}
	})
}

// TestProjectionService_OverrideRate tests projecting from a fixed rate.
func TestProjectionService_OverrideRate(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("uses the supplied rate without historical gates", func(t *testing.T) {
		// Setup: only one balance, far too little for a computed rate
		db := testutil.SetupTestDB(t)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)
		testutil.CreateBalance(t, db, account.ID, "2025-06-30", 5000000, "EUR")

		historyService := testutil.NewTestHistoryService(t, db)
		svc := service.NewProjectionServiceWithRate(historyService, model.NewMoney(50000, "EUR"))

		// Execute
		doc, err := svc.Generate(family, today, []int{1}, model.IntervalMonthly)

		// Assert
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}
		if doc.Error != "" {
			t.Fatalf("Expected a full document, got error %s", doc.Error)
		}
		if doc.Scenarios["realistic"].FinalValue.Amount != 5600000 {
			t.Errorf("Expected final value 5600000, got %d", doc.Scenarios["realistic"].FinalValue.Amount)
		}
	})
}
