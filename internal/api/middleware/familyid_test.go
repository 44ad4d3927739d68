package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/famfin/networth-backend/internal/api/middleware"
	"github.com/famfin/networth-backend/internal/testutil"
)

// TestValidateFamilyIDMiddleware tests familyId URL parameter validation.
//
// WHY: Every net-worth route keys on the family ID. Rejecting malformed IDs
// at the middleware keeps the handlers free of repetitive checks.
func TestValidateFamilyIDMiddleware(t *testing.T) {
	newRouter := func() (*chi.Mux, *bool) {
		reached := false
		r := chi.NewRouter()
		r.Route("/api/networth/{familyId}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateFamilyIDMiddleware)
			r.Get("/current", func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})
		})
		return r, &reached
	}

	t.Run("passes a valid UUID through", func(t *testing.T) {
		router, reached := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/networth/"+testutil.MakeID()+"/current", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if !*reached {
			t.Error("Expected the handler to be reached")
		}
	})

	t.Run("rejects a malformed ID with 400", func(t *testing.T) {
		router, reached := newRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/networth/not-a-uuid/current", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		if *reached {
			t.Error("Expected the handler to be skipped")
		}
	})
}
