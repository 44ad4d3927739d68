package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/repository"
)

// materializeConcurrency caps how many families are materialized at once.
const materializeConcurrency = 4

// SnapshotService materializes month-end net-worth snapshots so the
// history series can be served from pre-calculated rows instead of
// replaying balance history on every request. It runs from the scheduled
// job and can also be invoked manually after a bulk balance import.
type SnapshotService struct {
	familyRepo     *repository.FamilyRepository
	snapshotRepo   *repository.SnapshotRepository
	historyService *HistoryService
	logger         *logrus.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	familyRepo *repository.FamilyRepository,
	snapshotRepo *repository.SnapshotRepository,
	historyService *HistoryService,
	logger *logrus.Logger,
) *SnapshotService {
	return &SnapshotService{
		familyRepo:     familyRepo,
		snapshotRepo:   snapshotRepo,
		historyService: historyService,
		logger:         logger,
	}
}

// MaterializeMonthEnds recomputes and stores month-end snapshots for every
// family, covering the lookbackMonths most recent month-ends up to asOf.
// Families are processed concurrently; the first failure cancels the rest.
func (s *SnapshotService) MaterializeMonthEnds(ctx context.Context, asOf time.Time, lookbackMonths int) error {
	families, err := s.familyRepo.GetFamilies()
	if err != nil {
		return fmt.Errorf("failed to list families for snapshot run: %w", err)
	}

	asOf = truncateToDate(asOf)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(materializeConcurrency)

	for _, family := range families {
		family := family
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.materializeFamily(family, asOf, lookbackMonths)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"families": len(families),
		"months":   lookbackMonths,
		"as_of":    asOf.Format("2006-01-02"),
	}).Info("Month-end snapshot materialization complete")

	return nil
}

func (s *SnapshotService) materializeFamily(family model.Family, asOf time.Time, lookbackMonths int) error {
	for i := lookbackMonths - 1; i >= 0; i-- {
		date := endOfMonth(addMonthsClamped(asOf, -i))
		// the running month's end is still in the future; it is computed
		// on demand until the month closes
		if date.After(asOf) {
			continue
		}

		assets, liabilities, net, err := s.historyService.NetWorthBreakdownAt(family, date)
		if err != nil {
			return fmt.Errorf("failed to compute net worth for family %s on %s: %w",
				family.ID, date.Format("2006-01-02"), err)
		}

		if err := s.snapshotRepo.UpsertSnapshot(family.ID, date, assets, liabilities, net); err != nil {
			return fmt.Errorf("failed to store snapshot for family %s: %w", family.ID, err)
		}
	}

	return nil
}
