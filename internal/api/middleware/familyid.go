// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/famfin/networth-backend/internal/api/response"
	"github.com/famfin/networth-backend/internal/validation"
)

// ValidateFamilyIDMiddleware validates that the familyId URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{familyId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateFamilyIDMiddleware)
//	    r.Get("/current", handler.Current)
//	})
func ValidateFamilyIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := validation.ValidateUUID(chi.URLParam(r, "familyId")); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid family ID", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
