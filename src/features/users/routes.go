package users

import (
	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
)

// RegisterRoutes registers the routes for the users feature.
func RegisterRoutes(app *fiber.App, service *Service, tokens catalog.TokenIssuer) {
	handler := NewHandler(service)
	authed := auth.RequireAuth(tokens)

	group := app.Group("/user")
	group.Post("/", handler.Register)
	group.Get("/profile", authed, handler.GetProfile)
	group.Get("/profile/:id", handler.GetPublicProfile)
	group.Get("/sets/:set", authed, handler.ListSet)
	group.Patch("/", authed, handler.UpdateProfile)
}
