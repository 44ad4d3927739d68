package handlers

import (
	"net/http"

	"github.com/famfin/networth-backend/internal/repository"
)

// FamilyHandler handles family-related HTTP requests
type FamilyHandler struct {
	familyRepo *repository.FamilyRepository
}

// NewFamilyHandler creates a new FamilyHandler
func NewFamilyHandler(familyRepo *repository.FamilyRepository) *FamilyHandler {
	return &FamilyHandler{
		familyRepo: familyRepo,
	}
}

// FamilyResponse represents a family in API responses.
type FamilyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}

// Families handles GET requests listing all families.
//
// Endpoint: GET /api/family
func (h *FamilyHandler) Families(w http.ResponseWriter, r *http.Request) {
	families, err := h.familyRepo.GetFamilies()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result := make([]FamilyResponse, len(families))
	for i, f := range families {
		result[i] = FamilyResponse{
			ID:           f.ID,
			Name:         f.Name,
			BaseCurrency: f.BaseCurrency,
		}
	}

	respondJSON(w, http.StatusOK, result)
}
