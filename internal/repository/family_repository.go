package repository

import (
	"database/sql"
	"fmt"

	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/model"
)

// FamilyRepository provides data access methods for the family table.
type FamilyRepository struct {
	db *sql.DB
}

// NewFamilyRepository creates a new FamilyRepository with the provided database connection.
func NewFamilyRepository(db *sql.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// GetFamilies retrieves all families.
// Returns an empty slice if no families exist.
func (r *FamilyRepository) GetFamilies() ([]model.Family, error) {
	query := `
          SELECT id, name, base_currency
          FROM family
          ORDER BY name
      `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query family table: %w", err)
	}
	defer rows.Close()

	families := []model.Family{}

	for rows.Next() {
		var f model.Family

		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.BaseCurrency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family table results: %w", err)
		}

		families = append(families, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating family table: %w", err)
	}

	return families, nil
}

// GetFamilyOnID retrieves a single family by its ID.
func (r *FamilyRepository) GetFamilyOnID(familyID string) (model.Family, error) {
	query := `
          SELECT id, name, base_currency
          FROM family
          WHERE id = ?
      `
	var f model.Family

	err := r.db.QueryRow(query, familyID).Scan(
		&f.ID,
		&f.Name,
		&f.BaseCurrency,
	)
	if err == sql.ErrNoRows {
		return model.Family{}, apperrors.ErrFamilyNotFound
	}
	if err != nil {
		return model.Family{}, fmt.Errorf("failed to query family: %w", err)
	}

	return f, nil
}
