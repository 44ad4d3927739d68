package service

import (
	"sort"
	"time"

	"github.com/famfin/networth-backend/internal/currency"
	"github.com/famfin/networth-backend/internal/model"
	"github.com/famfin/networth-backend/internal/repository"
)

// HistoryService builds the historical month-end net-worth series for a
// family. It is a pure read over the account and balance tables: no side
// effects, recomputed per call.
type HistoryService struct {
	accountRepo  *repository.AccountRepository
	snapshotRepo *repository.SnapshotRepository
	converter    *currency.Converter
}

// NewHistoryService creates a new HistoryService with the provided dependencies.
func NewHistoryService(
	accountRepo *repository.AccountRepository,
	snapshotRepo *repository.SnapshotRepository,
	converter *currency.Converter,
) *HistoryService {
	return &HistoryService{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		converter:    converter,
	}
}

// BuildSeries samples month-end net worth over a lookback window ending at
// the reference date. The window spans minimumMonths + 3 months: month-over-
// month deltas consume one point each, so the padding keeps at least
// minimumMonths usable deltas downstream.
//
// Sample dates from before the family's earliest recorded balance are
// dropped entirely; later months with no balance activity still produce a
// point (carrying the last known balances forward), and months where no
// account contributes produce a zero-valued point.
//
// Data Loading Strategy:
// Materialized month-end snapshots (maintained by the scheduled snapshot
// job) are used where available; only the sample dates missing from the
// snapshot table are recomputed on demand, from a single batched balance-
// history query resolved in memory.
func (s *HistoryService) BuildSeries(family model.Family, today time.Time, minimumMonths int) ([]model.HistoricalPoint, error) {
	today = truncateToDate(today)

	sampleCount := minimumMonths + 3
	dates := make([]time.Time, 0, sampleCount)
	for i := sampleCount - 1; i >= 0; i-- {
		dates = append(dates, endOfMonth(addMonthsClamped(today, -i)))
	}

	earliest, hasData, err := s.accountRepo.GetEarliestBalanceDate(family.ID)
	if err != nil {
		return nil, err
	}
	if !hasData {
		return []model.HistoricalPoint{}, nil
	}

	inRange := dates[:0]
	for _, d := range dates {
		if !d.Before(earliest) {
			inRange = append(inRange, d)
		}
	}
	dates = inRange

	// Fast path: pre-materialized snapshots. A failed lookup falls back to
	// full on-demand computation rather than failing the request.
	snapshots, err := s.snapshotRepo.GetSnapshotsOnDates(family.ID, dates)
	if err != nil {
		snapshots = map[string]model.Money{}
	}

	var missing []time.Time
	for _, d := range dates {
		if _, ok := snapshots[d.Format("2006-01-02")]; !ok {
			missing = append(missing, d)
		}
	}

	computed := make(map[string]model.Money, len(missing))
	if len(missing) > 0 {
		accounts, histories, err := s.loadBalances(family, dates[len(dates)-1])
		if err != nil {
			return nil, err
		}
		for _, d := range missing {
			_, _, net, err := s.netWorthFromHistories(accounts, histories, d, family.BaseCurrency)
			if err != nil {
				return nil, err
			}
			computed[d.Format("2006-01-02")] = net
		}
	}

	points := make([]model.HistoricalPoint, 0, len(dates))
	for _, d := range dates {
		key := d.Format("2006-01-02")
		value, ok := snapshots[key]
		if !ok {
			value = computed[key]
		}
		points = append(points, model.HistoricalPoint{Date: d, Value: value})
	}

	return points, nil
}

// NetWorthAt computes the family's net worth as of the given date, in the
// family's base currency.
func (s *HistoryService) NetWorthAt(family model.Family, asOf time.Time) (model.Money, error) {
	_, _, net, err := s.NetWorthBreakdownAt(family, asOf)
	return net, err
}

// NetWorthBreakdownAt computes total assets, total liabilities, and net
// worth (assets minus liabilities) as of the given date.
func (s *HistoryService) NetWorthBreakdownAt(family model.Family, asOf time.Time) (assets, liabilities, net model.Money, err error) {
	asOf = truncateToDate(asOf)

	accounts, histories, err := s.loadBalances(family, asOf)
	if err != nil {
		return model.Money{}, model.Money{}, model.Money{}, err
	}

	return s.netWorthFromHistories(accounts, histories, asOf, family.BaseCurrency)
}

// loadBalances fetches the family's visible accounts and every account's
// balance history up to endDate in one batched query.
func (s *HistoryService) loadBalances(family model.Family, endDate time.Time) ([]model.Account, map[string][]model.Balance, error) {
	accounts, err := s.accountRepo.GetAccountsOnFamilyID(family.ID, model.AccountFilter{})
	if err != nil {
		return nil, nil, err
	}

	accountIDs := make([]string, len(accounts))
	for i, a := range accounts {
		accountIDs[i] = a.ID
	}

	histories, err := s.accountRepo.GetBalanceHistories(accountIDs, endDate)
	if err != nil {
		return nil, nil, err
	}

	return accounts, histories, nil
}

// netWorthFromHistories resolves each account's balance as of the given
// date in memory, converts it to the base currency, and splits the total
// into assets and liabilities by account classification. An account with
// no balance on or before the date contributes nothing.
func (s *HistoryService) netWorthFromHistories(
	accounts []model.Account,
	histories map[string][]model.Balance,
	date time.Time,
	baseCurrency string,
) (assets, liabilities, net model.Money, err error) {
	assets = model.NewMoney(0, baseCurrency)
	liabilities = model.NewMoney(0, baseCurrency)

	for _, account := range accounts {
		balance, ok := balanceAsOf(histories[account.ID], date)
		if !ok {
			continue
		}

		converted, convErr := s.converter.Convert(balance.Amount, baseCurrency)
		if convErr != nil {
			return model.Money{}, model.Money{}, model.Money{}, convErr
		}

		if account.Type == model.AccountTypeLiability {
			liabilities, err = liabilities.Add(converted)
		} else {
			assets, err = assets.Add(converted)
		}
		if err != nil {
			return model.Money{}, model.Money{}, model.Money{}, err
		}
	}

	net, err = assets.Sub(liabilities)
	if err != nil {
		return model.Money{}, model.Money{}, model.Money{}, err
	}

	return assets, liabilities, net, nil
}

// balanceAsOf returns the most recent balance at or before the given date.
// The history slice is ordered by date ascending.
func balanceAsOf(history []model.Balance, date time.Time) (model.Balance, bool) {
	// first index strictly after the date
	idx := sort.Search(len(history), func(i int) bool {
		return history[i].Date.After(date)
	})
	if idx == 0 {
		return model.Balance{}, false
	}
	return history[idx-1], true
}
