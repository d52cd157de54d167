package main

import (
	"fmt"
	"os"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/infrastructure/geocoder"
	"github.com/landsat-viewer/internal/infrastructure/mailer"
	"github.com/landsat-viewer/internal/infrastructure/nasa"
	"github.com/landsat-viewer/internal/infrastructure/stac"
	"github.com/landsat-viewer/internal/pkg/logger"
	"github.com/landsat-viewer/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithOutput(cfg.Log.Level, "stderr")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	app := createCliApp(newServices(cfg, log))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Sync()
		os.Exit(1)
	}
}

func newServices(cfg *config.Config, log *zap.Logger) *services {
	searchRepo := stac.NewSearchClient(&cfg.Search, &cfg.HTTP, log)
	return &services{
		landsat: usecase.NewLandsatUseCase(
			nasa.NewOverpassClient(&cfg.NASA, &cfg.HTTP, log),
			searchRepo,
			log,
		),
		location: usecase.NewLocationUseCase(
			geocoder.NewGeocoderClient(&cfg.Geocoder, &cfg.HTTP, log),
			log,
		),
		report: usecase.NewReportUseCase(
			mailer.NewSMTPMailer(&cfg.SMTP, log),
			nil,
			searchRepo.Collections(),
			log,
		),
	}
}
