package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/famfin/networth-backend/internal/api"
	"github.com/famfin/networth-backend/internal/config"
	"github.com/famfin/networth-backend/internal/currency"
	"github.com/famfin/networth-backend/internal/database"
	"github.com/famfin/networth-backend/internal/repository"
	"github.com/famfin/networth-backend/internal/secrets"
	"github.com/famfin/networth-backend/internal/service"
)

// snapshotLookbackMonths is how far back the scheduled job re-materializes
// month-end snapshots. Generous enough to absorb late balance corrections.
const snapshotLookbackMonths = 13

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	logger.Infof("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	familyRepo := repository.NewFamilyRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	fxRateRepo := repository.NewFxRateRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	converter := currency.NewConverter(fxRateRepo)
	historyService := service.NewHistoryService(accountRepo, snapshotRepo, converter)
	growthService := service.NewGrowthService(historyService, cfg.Growth.MinimumMonths)
	projectionService := service.NewProjectionService(growthService, historyService)
	netWorthService := service.NewNetWorthService(familyRepo, historyService, growthService, projectionService)
	snapshotService := service.NewSnapshotService(familyRepo, snapshotRepo, historyService, logger)

	var secretCodec *secrets.Codec
	if cfg.Secrets.FernetKey != "" {
		secretCodec, err = secrets.NewCodec(cfg.Secrets.FernetKey)
		if err != nil {
			logger.Fatalf("Failed to initialize secret codec: %v", err)
		}
	}

	// Schedule the month-end snapshot job
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Snapshot.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := snapshotService.MaterializeMonthEnds(ctx, time.Now(), snapshotLookbackMonths); err != nil {
			logger.WithError(err).Error("Snapshot materialization failed")
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule snapshot job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Dependencies{
		DB:              db,
		FamilyRepo:      familyRepo,
		FxRateRepo:      fxRateRepo,
		SettingRepo:     settingRepo,
		NetWorthService: netWorthService,
		SecretCodec:     secretCodec,
		Logger:          logger,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
