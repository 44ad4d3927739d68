package handlers

import (
	"errors"
	"net/http"

	"github.com/famfin/networth-backend/internal/api/response"
	"github.com/famfin/networth-backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondDomainError maps domain errors to HTTP statuses: missing entities
// become 404, invalid arguments become 400, everything else is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrFamilyNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrInvalidTimeframe),
		errors.Is(err, apperrors.ErrInvalidInterval),
		errors.Is(err, apperrors.ErrInvalidGrowthMethod),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID):
		response.RespondError(w, http.StatusBadRequest, "invalid_argument", err.Error())

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
