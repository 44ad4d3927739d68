package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/famfin/networth-backend/internal/model"
)

// AccountRepository provides data access methods for the account and
// account_balance tables.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccountsOnFamilyID retrieves a family's accounts. Hidden accounts are
// filtered out unless the filter includes them.
func (r *AccountRepository) GetAccountsOnFamilyID(familyID string, filter model.AccountFilter) ([]model.Account, error) {
	query := `
          SELECT id, family_id, name, type, currency, is_hidden
          FROM account
          WHERE family_id = ?
      `
	args := []any{familyID}

	if !filter.IncludeHidden {
		query += " AND is_hidden = ?"
		args = append(args, 0)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		var a model.Account

		err := rows.Scan(
			&a.ID,
			&a.FamilyID,
			&a.Name,
			&a.Type,
			&a.Currency,
			&a.IsHidden,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetBalanceHistories retrieves the full balance history up to endDate for
// every given account in a single batched query. Histories are returned
// grouped by account ID, ordered by date ascending, so "balance as-of date"
// can be resolved in memory instead of issuing one query per account per date.
func (r *AccountRepository) GetBalanceHistories(accountIDs []string, endDate time.Time) (map[string][]model.Balance, error) {
	if len(accountIDs) == 0 {
		return map[string][]model.Balance{}, nil
	}

	placeholders := make([]string, len(accountIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT account_id, date, amount_minor, currency
		FROM account_balance
		WHERE account_id IN (` + strings.Join(placeholders, ",") + `)
		AND date <= ?
		ORDER BY account_id, date ASC
	`

	args := make([]any, 0, len(accountIDs)+1)
	for _, id := range accountIDs {
		args = append(args, id)
	}
	args = append(args, endDate.Format("2006-01-02"))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account_balance table: %w", err)
	}
	defer rows.Close()

	histories := make(map[string][]model.Balance)

	for rows.Next() {
		var b model.Balance
		var dateStr string
		var amountMinor int64
		var currency string

		err := rows.Scan(
			&b.AccountID,
			&dateStr,
			&amountMinor,
			&currency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account_balance table results: %w", err)
		}

		b.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance date: %w", err)
		}
		b.Amount = model.NewMoney(amountMinor, currency)

		histories[b.AccountID] = append(histories[b.AccountID], b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account_balance table: %w", err)
	}

	return histories, nil
}

// GetEarliestBalanceDate returns the date of the family's oldest recorded
// balance. The second return value is false when the family has no
// balances at all.
func (r *AccountRepository) GetEarliestBalanceDate(familyID string) (time.Time, bool, error) {
	query := `
		SELECT MIN(ab.date)
		FROM account_balance ab
		JOIN account a ON a.id = ab.account_id
		WHERE a.family_id = ?
	`

	var dateStr sql.NullString
	if err := r.db.QueryRow(query, familyID).Scan(&dateStr); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query earliest balance date: %w", err)
	}
	if !dateStr.Valid {
		return time.Time{}, false, nil
	}

	date, err := ParseTime(dateStr.String)
	if err != nil {
		return time.Time{}, false, err
	}

	return date, true, nil
}
