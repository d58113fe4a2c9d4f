package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/albums"
	"soundvault/src/features/auth"
	"soundvault/src/features/config"
	"soundvault/src/features/metrics"
	"soundvault/src/features/tracks"
	"soundvault/src/features/users"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, usersService *users.Service, authService *auth.Service, albumsService *albums.Service, tracksService *tracks.Service, tokens catalog.TokenIssuer) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Soundvault",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
		BodyLimit:             cfg.Get().Server.BodyLimitMB * 1024 * 1024,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Static("/uploads", cfg.Get().UploadsPath)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	users.RegisterRoutes(app, usersService, tokens)
	auth.RegisterRoutes(app, authService)
	albums.RegisterRoutes(app, albumsService, tokens)
	tracks.RegisterRoutes(app, tracksService, tokens)
	metrics.RegisterRoutes(app)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
