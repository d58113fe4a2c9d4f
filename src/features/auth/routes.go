package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the auth feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	group := app.Group("/auth")
	group.Post("/login", handler.Login)
}
