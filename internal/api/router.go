package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/famfin/networth-backend/internal/api/handlers"
	custommiddleware "github.com/famfin/networth-backend/internal/api/middleware"
	"github.com/famfin/networth-backend/internal/config"
	"github.com/famfin/networth-backend/internal/repository"
	"github.com/famfin/networth-backend/internal/secrets"
	"github.com/famfin/networth-backend/internal/service"
)

// Dependencies bundles everything the router needs to wire the handlers.
type Dependencies struct {
	DB              *sql.DB
	FamilyRepo      *repository.FamilyRepository
	FxRateRepo      *repository.FxRateRepository
	SettingRepo     *repository.SettingRepository
	NetWorthService *service.NetWorthService
	SecretCodec     *secrets.Codec
	Logger          *logrus.Logger
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.NewLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.DB)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/family", func(r chi.Router) {
			familyHandler := handlers.NewFamilyHandler(deps.FamilyRepo)
			r.Get("/", familyHandler.Families)
		})

		r.Route("/networth/{familyId}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateFamilyIDMiddleware)

			netWorthHandler := handlers.NewNetWorthHandler(deps.NetWorthService)
			r.Get("/current", netWorthHandler.Current)
			r.Get("/growth", netWorthHandler.Growth)
			r.Get("/can-project", netWorthHandler.CanProject)
			r.Get("/projection", netWorthHandler.Projection)
		})

		r.Route("/rates", func(r chi.Router) {
			ratesHandler := handlers.NewRatesHandler(deps.FxRateRepo, deps.SettingRepo, deps.SecretCodec)
			r.Put("/", ratesHandler.UpsertRate)
			r.Put("/provider-key", ratesHandler.SetProviderKey)
			r.Get("/provider-key", ratesHandler.ProviderKeyStatus)
		})
	})

	return r
}
