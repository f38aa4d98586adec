package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/cache"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/config"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/ingest"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/repository/postgres"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
	"github.com/omarembaby39-afk/UMQASR-RO/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("schema migration failed")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("redis unavailable, dashboard cache will not be invalidated")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	repos := postgres.NewRepositories(db)
	production := service.NewProductionService(repos.Flowmeter, repos.Production, dashboardCache)

	subscriber := ingest.NewSubscriber(cfg.MQTT, production)
	if err := subscriber.Run(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("ingestor failed")
	}
}
