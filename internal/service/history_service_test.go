package service_test

import (
	"testing"
	"time"

	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/testutil"
)

// TestHistoryService_BuildSeries tests month-end sampling of net worth.
//
// WHY: The series is the raw material for growth and projections. Sampling
// dates, carry-forward of stale balances, and trimming of months before the
// first recorded balance all change the computed rate downstream.
func TestHistoryService_BuildSeries(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("samples minimumMonths plus three month-ends", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		values := []int64{100000, 110000, 120000, 130000, 140000, 150000, 160000, 170000, 180000}
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", values)

		// Execute
		points, err := svc.BuildSeries(family, today, 6)

		// Assert
		if err != nil {
			t.Fatalf("BuildSeries() returned unexpected error: %v", err)
		}
		if len(points) != 9 {
			t.Fatalf("Expected 9 points, got %d", len(points))
		}

		if points[0].Date.Format("2006-01-02") != "2024-10-31" {
			t.Errorf("Expected first point on 2024-10-31, got %s", points[0].Date.Format("2006-01-02"))
		}
		if points[8].Date.Format("2006-01-02") != "2025-06-30" {
			t.Errorf("Expected last point on 2025-06-30, got %s", points[8].Date.Format("2006-01-02"))
		}

		for i, p := range points {
			if p.Value.Amount != values[i] {
				t.Errorf("Point %d: expected %d, got %d", i, values[i], p.Value.Amount)
			}
		}
	})

	t.Run("carries the last balance forward through silent months", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		// One balance recorded eight months ago, nothing since
		testutil.CreateBalance(t, db, account.ID, "2024-10-31", 250000, "EUR")

		// Execute
		points, err := svc.BuildSeries(family, today, 6)

		// Assert
		if err != nil {
			t.Fatalf("BuildSeries() returned unexpected error: %v", err)
		}
		if len(points) != 9 {
			t.Fatalf("Expected 9 points, got %d", len(points))
		}

		for i, p := range points {
			if p.Value.Amount != 250000 {
				t.Errorf("Point %d: expected carried-forward 250000, got %d", i, p.Value.Amount)
			}
		}
	})

	t.Run("trims months before the first recorded balance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		// Balances begin only four months ago
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", []int64{100000, 110000, 120000, 130000})

		// Execute
		points, err := svc.BuildSeries(family, today, 6)

		// Assert
		if err != nil {
			t.Fatalf("BuildSeries() returned unexpected error: %v", err)
		}
		if len(points) != 4 {
			t.Fatalf("Expected 4 points after trimming, got %d", len(points))
		}
		if points[0].Date.Format("2006-01-02") != "2025-03-31" {
			t.Errorf("Expected first point on 2025-03-31, got %s", points[0].Date.Format("2006-01-02"))
		}
	})

	t.Run("returns empty series when the family has no balances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		testutil.NewAccount(family.ID).Build(t, db)

		points, err := svc.BuildSeries(family, today, 6)
		if err != nil {
			t.Fatalf("BuildSeries() returned unexpected error: %v", err)
		}
		if len(points) != 0 {
			t.Errorf("Expected empty series, got %d points", len(points))
		}
	})

	t.Run("prefers materialized snapshots over recomputation", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		values := []int64{100000, 110000, 120000, 130000, 140000, 150000, 160000, 170000, 180000}
		testutil.CreateMonthlyBalances(t, db, account.ID, today, "EUR", values)

		// A snapshot that deliberately disagrees with the balances proves
		// the stored value is used
		testutil.CreateSnapshot(t, db, family.ID, "2025-01-31", 999999, 0, 999999, "EUR")

		// Execute
		points, err := svc.BuildSeries(family, today, 6)
		if err != nil {
			t.Fatalf("BuildSeries() returned unexpected error: %v", err)
		}

		found := false
		for _, p := range points {
			if p.Date.Format("2006-01-02") == "2025-01-31" {
				found = true
				if p.Value.Amount != 999999 {
					t.Errorf("Expected snapshot value 999999, got %d", p.Value.Amount)
				}
			}
		}
		if !found {
			t.Error("Expected a point on 2025-01-31")
		}
	})
}

// TestHistoryService_NetWorth tests point-in-time valuation.
//
// WHY: Assets add, liabilities subtract, hidden accounts are ignored, and
// foreign currency converts through the stored rate table. Each of these
// rules changes the headline number users see.
func TestHistoryService_NetWorth(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("subtracts liabilities from assets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		checking := testutil.NewAccount(family.ID).Build(t, db)
		mortgage := testutil.NewAccount(family.ID).WithType(model.AccountTypeLiability).Build(t, db)

		testutil.CreateBalance(t, db, checking.ID, "2025-06-01", 30000000, "EUR")
		testutil.CreateBalance(t, db, mortgage.ID, "2025-06-01", 20000000, "EUR")

		// Execute
		assets, liabilities, net, err := svc.NetWorthBreakdownAt(family, today)

		// Assert
		if err != nil {
			t.Fatalf("NetWorthBreakdownAt() returned unexpected error: %v", err)
		}
		if assets.Amount != 30000000 {
			t.Errorf("Expected assets 30000000, got %d", assets.Amount)
		}
		if liabilities.Amount != 20000000 {
			t.Errorf("Expected liabilities 20000000, got %d", liabilities.Amount)
		}
		if net.Amount != 10000000 {
			t.Errorf("Expected net 10000000, got %d", net.Amount)
		}
	})

	t.Run("net worth can be negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		loan := testutil.NewAccount(family.ID).WithType(model.AccountTypeLiability).Build(t, db)
		testutil.CreateBalance(t, db, loan.ID, "2025-06-01", 5000000, "EUR")

		net, err := svc.NetWorthAt(family, today)
		if err != nil {
			t.Fatalf("NetWorthAt() returned unexpected error: %v", err)
		}
		if net.Amount != -5000000 {
			t.Errorf("Expected net -5000000, got %d", net.Amount)
		}
	})

	t.Run("excludes hidden accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		visible := testutil.NewAccount(family.ID).Build(t, db)
		hidden := testutil.NewAccount(family.ID).Hidden().Build(t, db)

		testutil.CreateBalance(t, db, visible.ID, "2025-06-01", 100000, "EUR")
		testutil.CreateBalance(t, db, hidden.ID, "2025-06-01", 900000, "EUR")

		net, err := svc.NetWorthAt(family, today)
		if err != nil {
			t.Fatalf("NetWorthAt() returned unexpected error: %v", err)
		}
		if net.Amount != 100000 {
			t.Errorf("Expected hidden account excluded, net 100000, got %d", net.Amount)
		}
	})

	t.Run("converts foreign balances into the base currency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().WithBaseCurrency("EUR").Build(t, db)
		usdAccount := testutil.NewAccount(family.ID).WithCurrency("USD").Build(t, db)

		testutil.CreateBalance(t, db, usdAccount.ID, "2025-06-01", 100000, "USD")
		testutil.CreateFxRate(t, db, "USD", "EUR", "0.92")

		// Execute
		net, err := svc.NetWorthAt(family, today)

		// Assert
		if err != nil {
			t.Fatalf("NetWorthAt() returned unexpected error: %v", err)
		}
		if net.Amount != 92000 {
			t.Errorf("Expected converted net 92000, got %d", net.Amount)
		}
		if net.Currency != "EUR" {
			t.Errorf("Expected base currency EUR, got %s", net.Currency)
		}
	})

	t.Run("fails when a conversion rate is missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().WithBaseCurrency("EUR").Build(t, db)
		usdAccount := testutil.NewAccount(family.ID).WithCurrency("USD").Build(t, db)
		testutil.CreateBalance(t, db, usdAccount.ID, "2025-06-01", 100000, "USD")

		if _, err := svc.NetWorthAt(family, today); err == nil {
			t.Error("Expected error for missing USD/EUR rate, got nil")
		}
	})

	t.Run("uses the most recent balance on or before the date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHistoryService(t, db)

		family := testutil.NewFamily().Build(t, db)
		account := testutil.NewAccount(family.ID).Build(t, db)

		testutil.CreateBalance(t, db, account.ID, "2025-05-01", 100000, "EUR")
		testutil.CreateBalance(t, db, account.ID, "2025-06-10", 200000, "EUR")
		testutil.CreateBalance(t, db, account.ID, "2025-07-01", 300000, "EUR")

		net, err := svc.NetWorthAt(family, today)
		if err != nil {
			t.Fatalf("NetWorthAt() returned unexpected error: %v", err)
		}
		if net.Amount != 200000 {
			t.Errorf("Expected balance from 2025-06-10, got %d", net.Amount)
		}
	})
}
