package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/famfin/networth-backend/internal/currency"
	"github.com/famfin/networth-backend/internal/repository"
	"github.com/famfin/networth-backend/internal/service"
)

func NewTestHistoryService(t *testing.T, db *sql.DB) *service.HistoryService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	converter := currency.NewConverter(repository.NewFxRateRepository(db))

	return service.NewHistoryService(accountRepo, snapshotRepo, converter)
}

func NewTestGrowthService(t *testing.T, db *sql.DB, minimumMonths int) *service.GrowthService {
	t.Helper()

	return service.NewGrowthService(NewTestHistoryService(t, db), minimumMonths)
}

func NewTestProjectionService(t *testing.T, db *sql.DB, minimumMonths int) *service.ProjectionService {
	t.Helper()

	historyService := NewTestHistoryService(t, db)
	growthService := service.NewGrowthService(historyService, minimumMonths)

	return service.NewProjectionService(growthService, historyService)
}

func NewTestNetWorthService(t *testing.T, db *sql.DB, minimumMonths int) *service.NetWorthService {
	t.Helper()

	familyRepo := repository.NewFamilyRepository(db)
	historyService := NewTestHistoryService(t, db)
	growthService := service.NewGrowthService(historyService, minimumMonths)
	projectionService := service.NewProjectionService(growthService, historyService)

	return service.NewNetWorthService(familyRepo, historyService, growthService, projectionService)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	familyRepo := repository.NewFamilyRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(familyRepo, snapshotRepo, NewTestHistoryService(t, db), logger)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFamilyName generates a unique family name for testing.
//
// Example usage:
//
//	name := testutil.MakeFamilyName("The Does")
//	// Returns: "The Does ABC123"
func MakeFamilyName(base string) string {
	if base == "" {
		base = "Family"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeAccountName generates a unique account name for testing.
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
