package repository

import (
	"database/sql"
	"fmt"

	"github.com/famfin/networth-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the app_setting table.
// Values holding credentials are stored already encrypted by the caller.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value by key.
// Returns apperrors.ErrSettingNotFound when the key has never been stored.
func (r *SettingRepository) Get(key string) (string, error) {
	query := `
		SELECT value
		FROM app_setting
		WHERE key = ?
	`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", apperrors.ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query app_setting table: %w", err)
	}

	return value, nil
}

// Set inserts or replaces a setting value.
func (r *SettingRepository) Set(key, value string) error {
	query := `
		INSERT INTO app_setting (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert app_setting: %w", err)
	}

	return nil
}
