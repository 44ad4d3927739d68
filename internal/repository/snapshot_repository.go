package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/famfin/networth-backend/internal/model"
)

// SnapshotRepository provides data access methods for the networth_snapshot
// table, which holds pre-calculated month-end net-worth values per family.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshotsOnDates retrieves materialized net-worth values for the given
// sample dates, keyed by date in YYYY-MM-DD form. Dates with no snapshot are
// simply absent from the result; the caller computes those on demand.
func (r *SnapshotRepository) GetSnapshotsOnDates(familyID string, dates []time.Time) (map[string]model.Money, error) {
	if len(dates) == 0 {
		return map[string]model.Money{}, nil
	}

	placeholders := make([]string, len(dates))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT date, net_minor, currency
		FROM networth_snapshot
		WHERE family_id = ?
		AND date IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, 0, len(dates)+1)
	args = append(args, familyID)
	for _, d := range dates {
		args = append(args, d.Format("2006-01-02"))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query networth_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := make(map[string]model.Money)

	for rows.Next() {
		var dateStr string
		var netMinor int64
		var currency string

		if err := rows.Scan(&dateStr, &netMinor, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan networth_snapshot results: %w", err)
		}

		date, err := ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}

		snapshots[date.Format("2006-01-02")] = model.NewMoney(netMinor, currency)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating networth_snapshot table: %w", err)
	}

	return snapshots, nil
}

// UpsertSnapshot inserts or replaces the materialized snapshot for a family
// and date. Re-materializing an existing date overwrites the previous row.
func (r *SnapshotRepository) UpsertSnapshot(familyID string, date time.Time, assets, liabilities, net model.Money) error {
	query := `
		INSERT INTO networth_snapshot (id, family_id, date, assets_minor, liabilities_minor, net_minor, currency, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(family_id, date) DO UPDATE SET
			assets_minor = excluded.assets_minor,
			liabilities_minor = excluded.liabilities_minor,
			net_minor = excluded.net_minor,
			currency = excluded.currency,
			calculated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(
		query,
		uuid.NewString(),
		familyID,
		date.Format("2006-01-02"),
		assets.Amount,
		liabilities.Amount,
		net.Amount,
		net.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert networth_snapshot: %w", err)
	}

	return nil
}
