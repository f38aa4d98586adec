package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/api"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository/postgres"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/storage"
	"github.com/omarembaby39-afk/UMQASR-RO/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.Migrate(startupCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	archive, err := storage.Open(startupCtx, cfg.Storage, cfg.Report.OutputDir)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize report archive")
	}

	// Initialize services
	repos := postgres.NewRepositories(db)
	services := &api.Services{
		Readings:     service.NewReadingService(repos.Readings, dashboardCache),
		Cartridges:   service.NewCartridgeService(repos.Cartridges, dashboardCache),
		Chemicals:    service.NewChemicalService(repos.Chemicals, dashboardCache, cfg.Plant.MonthlyReset()),
		Production:   service.NewProductionService(repos.Flowmeter, repos.Production, dashboardCache),
		Maintenance:  service.NewMaintenanceService(repos.Maintenance, dashboardCache),
		Todos:        service.NewTodoService(repos.Todos, dashboardCache, cfg.Plant.Operators),
		WaterQuality: service.NewWaterQualityService(repos.WaterQuality, dashboardCache),
		Dashboard: service.NewDashboardService(service.DashboardSources{
			Readings:    repos.Readings,
			Cartridges:  repos.Cartridges,
			Chemicals:   repos.Chemicals,
			Production:  repos.Production,
			Maintenance: repos.Maintenance,
			Todos:       repos.Todos,
		}, dashboardCache, cfg.Plant),
		Reports: service.NewReportService(service.ReportSources{
			Readings:   repos.Readings,
			Cartridges: repos.Cartridges,
			Chemicals:  repos.Chemicals,
			Production: repos.Production,
		}, dashboardCache, archive, cfg.Plant.Name),
		ScheduleDaysAhead: cfg.Plant.ScheduleDaysAhead,
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("plant", cfg.Plant.Name).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
