package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/famfin/networth-backend/internal/api/response"
	"github.com/famfin/networth-backend/internal/apperrors"
	"github.com/famfin/networth-backend/internal/repository"
	"github.com/famfin/networth-backend/internal/secrets"
)

// ProviderKeySetting is the app_setting key holding the encrypted
// exchange-rate provider API key.
const ProviderKeySetting = "rate_provider_api_key"

// RatesHandler handles exchange-rate administration requests.
type RatesHandler struct {
	fxRateRepo  *repository.FxRateRepository
	settingRepo *repository.SettingRepository
	codec       *secrets.Codec
}

// NewRatesHandler creates a new RatesHandler. The codec may be nil when no
// encryption key is configured; the provider-key endpoint then responds 503.
func NewRatesHandler(
	fxRateRepo *repository.FxRateRepository,
	settingRepo *repository.SettingRepository,
	codec *secrets.Codec,
) *RatesHandler {
	return &RatesHandler{
		fxRateRepo:  fxRateRepo,
		settingRepo: settingRepo,
		codec:       codec,
	}
}

// UpsertRateRequest is the body for storing a conversion rate.
type UpsertRateRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Rate         string `json:"rate"`
}

// UpsertRate handles PUT requests storing a conversion rate for a pair.
//
// Endpoint: PUT /api/rates
// Response: 204 No Content
func (h *RatesHandler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	var req UpsertRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.FromCurrency == "" || req.ToCurrency == "" {
		response.RespondError(w, http.StatusBadRequest, "from_currency and to_currency are required", "")
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid rate", err.Error())
		return
	}
	if !rate.IsPositive() {
		response.RespondError(w, http.StatusBadRequest, "rate must be positive", "")
		return
	}

	if err := h.fxRateRepo.UpsertRate(req.FromCurrency, req.ToCurrency, rate); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ProviderKeyRequest is the body for storing the rate provider API key.
type ProviderKeyRequest struct {
	APIKey string `json:"api_key"`
}

// SetProviderKey handles PUT requests storing the exchange-rate provider
// API key. The key is encrypted before it touches the database.
//
// Endpoint: PUT /api/rates/provider-key
// Response: 204 No Content
func (h *RatesHandler) SetProviderKey(w http.ResponseWriter, r *http.Request) {
	if h.codec == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "secret storage is not configured", "")
		return
	}

	var req ProviderKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.APIKey == "" {
		response.RespondError(w, http.StatusBadRequest, "api_key is required", "")
		return
	}

	encrypted, err := h.codec.Encrypt(req.APIKey)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to encrypt key", err.Error())
		return
	}

	if err := h.settingRepo.Set(ProviderKeySetting, encrypted); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ProviderKeyStatusResponse reports whether a usable provider key is stored.
type ProviderKeyStatusResponse struct {
	Configured bool `json:"configured"`
}

// ProviderKeyStatus handles GET requests checking the stored provider key.
// The stored token is decrypted to prove it is usable with the current
// encryption key; the key itself is never returned.
//
// Endpoint: GET /api/rates/provider-key
// Response: 200 OK with ProviderKeyStatusResponse
func (h *RatesHandler) ProviderKeyStatus(w http.ResponseWriter, r *http.Request) {
	if h.codec == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "secret storage is not configured", "")
		return
	}

	stored, err := h.settingRepo.Get(ProviderKeySetting)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		respondJSON(w, http.StatusOK, ProviderKeyStatusResponse{Configured: false})
		return
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if _, err := h.codec.Decrypt(stored); err != nil {
		// Stored under a previous encryption key; the operator must re-store it.
		respondJSON(w, http.StatusOK, ProviderKeyStatusResponse{Configured: false})
		return
	}

	respondJSON(w, http.StatusOK, ProviderKeyStatusResponse{Configured: true})
}
