package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/delivery/http/handler"
	"github.com/landsat-viewer/internal/delivery/http/middleware"
	"github.com/landsat-viewer/internal/pkg/metrics"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	healthHandler   *handler.HealthHandler
	locationHandler *handler.LocationHandler
	imageryHandler  *handler.ImageryHandler
	sessionHandler  *handler.SessionHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	locationHandler *handler.LocationHandler,
	imageryHandler *handler.ImageryHandler,
	sessionHandler *handler.SessionHandler,
) *Server {
	// Upstream calls have no timeout by default, so the write timeout is
	// left open as well.
	app := fiber.New(fiber.Config{
		AppName:      "Landsat Viewer",
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		healthHandler:   healthHandler,
		locationHandler: locationHandler,
		imageryHandler:  imageryHandler,
		sessionHandler:  sessionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Location lookups
	api.Get("/geocode", s.locationHandler.Geocode)
	api.Get("/geocode/ip", s.locationHandler.LocateIP)

	// Stateless imagery lookups
	api.Get("/overpass", s.imageryHandler.Overpass)
	api.Post("/assets/search", s.imageryHandler.SearchAssets)

	// Sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.sessionHandler.Create)
	sessions.Get("/:id", s.sessionHandler.Get)
	sessions.Put("/:id/location", s.sessionHandler.SetLocation)
	sessions.Post("/:id/query", s.sessionHandler.RunQuery)
	sessions.Get("/:id/assets.csv", s.sessionHandler.ExportCSV)
	sessions.Post("/:id/report", s.sessionHandler.Report)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escaped the handlers, such as
// unknown routes and recovered panics.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
