package main

// @title Landsat Viewer API
// @version 1.0.0
// @description Finds the most recent Landsat overpass for a location, lists the imagery assets captured that day and emails them as CSV.
// @description
// @description Main features:
// @description - Location by map click, coordinates, place name or IP address
// @description - Latest overpass date from the NASA Earth assets API
// @description - Landsat Collection 2 Level-2 assets from the USGS STAC server
// @description - CSV download and email delivery

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/landsat-viewer/docs/swagger"
	"github.com/landsat-viewer/internal/config"
	httpDelivery "github.com/landsat-viewer/internal/delivery/http"
	"github.com/landsat-viewer/internal/delivery/http/handler"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/infrastructure/geocoder"
	"github.com/landsat-viewer/internal/infrastructure/mailer"
	"github.com/landsat-viewer/internal/infrastructure/nasa"
	"github.com/landsat-viewer/internal/infrastructure/stac"
	"github.com/landsat-viewer/internal/pkg/logger"
	"github.com/landsat-viewer/internal/repository/cache"
	"github.com/landsat-viewer/internal/repository/postgres"
	"github.com/landsat-viewer/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Landsat Viewer")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("delivery_log", cfg.Database.Enabled),
	)
	if cfg.SMTP.Username == "" {
		log.Warn("SMTP_USERNAME is empty, report delivery will fail")
	}

	// 3. Connect to Redis (session store)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	checks := map[string]handler.HealthChecker{"redis": redisClient}

	// 4. Optional delivery log
	var (
		db           *postgres.DB
		deliveryRepo repository.DeliveryRepository
	)
	if cfg.Database.Enabled {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		deliveryRepo = postgres.NewDeliveryRepository(db)
		checks["postgres"] = db
	}

	// 5. Initialize repositories
	overpassRepo := nasa.NewOverpassClient(&cfg.NASA, &cfg.HTTP, log)
	searchRepo := stac.NewSearchClient(&cfg.Search, &cfg.HTTP, log)
	geocoderRepo := geocoder.NewGeocoderClient(&cfg.Geocoder, &cfg.HTTP, log)
	mailerRepo := mailer.NewSMTPMailer(&cfg.SMTP, log)
	sessionRepo := cache.NewSessionRepository(redisClient)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	landsatUC := usecase.NewLandsatUseCase(overpassRepo, searchRepo, log)
	locationUC := usecase.NewLocationUseCase(geocoderRepo, log)
	reportUC := usecase.NewReportUseCase(mailerRepo, deliveryRepo, searchRepo.Collections(), log)
	sessionUC := usecase.NewSessionUseCase(sessionRepo, locationUC, landsatUC, reportUC, cfg.Session.TTL, log)

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewHealthHandler(checks, log),
		handler.NewLocationHandler(locationUC, log),
		handler.NewImageryHandler(landsatUC, log),
		handler.NewSessionHandler(sessionUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
