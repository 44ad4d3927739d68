package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/famfin/networth-backend/internal/service"
	"github.com/famfin/networth-backend/internal/validation"
)

// NetWorthHandler handles net-worth, growth, and projection HTTP requests.
type NetWorthHandler struct {
	netWorthService *service.NetWorthService
}

// NewNetWorthHandler creates a new NetWorthHandler
func NewNetWorthHandler(netWorthService *service.NetWorthService) *NetWorthHandler {
	return &NetWorthHandler{
		netWorthService: netWorthService,
	}
}

// Current handles GET requests for the family's current net worth.
//
// Endpoint: GET /api/networth/{familyId}/current
// Response: 200 OK with net worth, assets, and liabilities
func (h *NetWorthHandler) Current(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	result, err := h.netWorthService.CurrentNetWorth(familyID, time.Now())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Growth handles GET requests for the family's monthly growth rate.
//
// Endpoint: GET /api/networth/{familyId}/growth?method=mean|median|weighted
// Response: 200 OK with the growth result
// Error: 422 Unprocessable Entity with a partial result when the
// historical data is insufficient or of poor quality
func (h *NetWorthHandler) Growth(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	method, err := validation.ParseGrowthMethod(r.URL.Query().Get("method"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result, err := h.netWorthService.GrowthSummary(familyID, time.Now(), method)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if result.Error != "" {
		respondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CanProjectResponse reports whether projections can be generated.
type CanProjectResponse struct {
	CanProject bool `json:"can_project"`
}

// CanProject handles GET requests checking projection eligibility.
//
// Endpoint: GET /api/networth/{familyId}/can-project
// Response: 200 OK with {"can_project": true|false}
func (h *NetWorthHandler) CanProject(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	ok, err := h.netWorthService.CanProject(familyID, time.Now())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CanProjectResponse{CanProject: ok})
}

// Projection handles GET requests for multi-scenario projections.
//
// Endpoint: GET /api/networth/{familyId}/projection?timeframes=1,5,10&interval=monthly
// Response: 200 OK with the full projection document
// Error: 400 Bad Request for unsupported timeframes or intervals
// Error: 422 Unprocessable Entity with a partial document when the
// historical data is insufficient or of poor quality
func (h *NetWorthHandler) Projection(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	timeframes, err := validation.ParseTimeframes(r.URL.Query().Get("timeframes"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	interval, err := validation.ParseInterval(r.URL.Query().Get("interval"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	doc, err := h.netWorthService.Projections(familyID, time.Now(), timeframes, interval)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if doc.Error != "" {
		respondJSON(w, http.StatusUnprocessableEntity, doc)
		return
	}

	respondJSON(w, http.StatusOK, doc)
}
