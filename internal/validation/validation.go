package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/famfin/networth-backend/internal/apperrors"
)

// ValidateUUID checks that an ID is present and is a valid UUID. Failures
// carry the apperrors sentinels so callers can map them to HTTP statuses
// with errors.Is.
func ValidateUUID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}
