package service

import (
	"time"

	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/repository"
)

// NetWorthService is the single entry point the API layer talks to. It
// resolves the family and delegates to the history, growth, and projection
// services; it owns no computation of its own.
type NetWorthService struct {
	familyRepo        *repository.FamilyRepository
	historyService    *HistoryService
	growthService     *GrowthService
	projectionService *ProjectionService
}

// NewNetWorthService creates a new NetWorthService with the provided dependencies.
func NewNetWorthService(
	familyRepo *repository.FamilyRepository,
	historyService *HistoryService,
	growthService *GrowthService,
	projectionService *ProjectionService,
) *NetWorthService {
	return &NetWorthService{
		familyRepo:        familyRepo,
		historyService:    historyService,
		growthService:     growthService,
		projectionService: projectionService,
	}
}

// CurrentNetWorthResult is the response shape for the current-value lookup.
type CurrentNetWorthResult struct {
	NetWorth    model.Money `json:"net_worth"`
	Assets      model.Money `json:"assets"`
	Liabilities model.Money `json:"liabilities"`
	AsOf        string      `json:"as_of"`
}

// CurrentNetWorth returns the family's net worth as of today, split into
// assets and liabilities.
func (s *NetWorthService) CurrentNetWorth(familyID string, today time.Time) (CurrentNetWorthResult, error) {
	family, err := s.familyRepo.GetFamilyOnID(familyID)
	if err != nil {
		return CurrentNetWorthResult{}, err
	}

	assets, liabilities, net, err := s.historyService.NetWorthBreakdownAt(family, today)
	if err != nil {
		return CurrentNetWorthResult{}, err
	}

	return CurrentNetWorthResult{
		NetWorth:    net,
		Assets:      assets,
		Liabilities: liabilities,
		AsOf:        truncateToDate(today).Format("2006-01-02"),
	}, nil
}

// GrowthSummary computes the family's growth rate with the given method.
func (s *NetWorthService) GrowthSummary(familyID string, today time.Time, method model.GrowthMethod) (model.GrowthResult, error) {
	family, err := s.familyRepo.GetFamilyOnID(familyID)
	if err != nil {
		return model.GrowthResult{}, err
	}

	return s.growthService.Calculate(family, today, method)
}

// CanProject reports whether the family's history is good enough to
// generate projections.
func (s *NetWorthService) CanProject(familyID string, today time.Time) (bool, error) {
	family, err := s.familyRepo.GetFamilyOnID(familyID)
	if err != nil {
		return false, err
	}

	return s.growthService.SufficientData(family, today)
}

// Projections generates the multi-scenario projection document.
func (s *NetWorthService) Projections(
	familyID string,
	today time.Time,
	timeframes []int,
	interval model.Interval,
) (model.ProjectionDocument, error) {
	family, err := s.familyRepo.GetFamilyOnID(familyID)
	if err != nil {
		return model.ProjectionDocument{}, err
	}

	return s.projectionService.Generate(family, today, timeframes, interval)
}
