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

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/api"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/cache"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/report"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository/memory"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository/postgres"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/storage"
	"github.com/Unkn0wN1499/HackSmiths.AI/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, alerts, closeRepos, err := buildRepositories(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to initialize repositories")
	}
	defer closeRepos()

	summaryCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache disabled")
		summaryCache = cache.NewNoopDashboardCache()
	}
	listCache, err := cache.NewProductListCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Product list cache disabled")
		listCache = cache.NewNoopProductListCache()
	}

	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		if err := client.EnsureBucket(ctx); err != nil {
			logger.Log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("Failed to prepare report bucket")
		}
		store = client
	}

	generator := simulation.NewGenerator(simulationOptions(cfg.Simulation))

	opts := service.OptionsFromConfig(cfg.Engine)
	opts.SeedProducts = cfg.Simulation.StoreProducts

	inventory, err := service.NewInventoryService(ctx, service.Deps{
		Products:  products,
		Alerts:    alerts,
		Source:    generator,
		Summaries: summaryCache,
		Lists:     listCache,
		Exporter:  report.NewExporter(cfg.Storage.ReportDir, store),
	}, opts)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize inventory service")
	}

	router := api.NewRouter(&api.Services{Inventory: inventory}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("db", cfg.Database.Driver).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildRepositories(ctx context.Context, cfg *config.Config) (repository.ProductRepository, repository.AlertRepository, func(), error) {
	if cfg.Database.Driver != "postgres" {
		return memory.NewProductRepository(), memory.NewAlertRepository(), func() {}, nil
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to close database")
		}
	}
	return postgres.NewProductRepository(db), postgres.NewAlertRepository(db), closeFn, nil
}

func simulationOptions(cfg config.SimulationConfig) simulation.Options {
	opts := simulation.DefaultOptions()
	opts.Seed = cfg.Seed
	if cfg.ProductCount > 0 {
		opts.ProductCount = cfg.ProductCount
	}
	if cfg.HistoryDays > 0 {
		opts.HistoryDays = cfg.HistoryDays
	}
	if cfg.ForecastDays > 0 {
		opts.ForecastDays = cfg.ForecastDays
	}
	if cfg.WeatherDays > 0 {
		opts.WeatherDays = cfg.WeatherDays
	}
	if cfg.SentimentDays > 0 {
		opts.SentimentDays = cfg.SentimentDays
	}
	return opts
}
