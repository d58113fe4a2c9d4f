package tracks

import (
	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
)

// RegisterRoutes wires the track endpoints into the app.
func RegisterRoutes(app *fiber.App, service *Service, tokens catalog.TokenIssuer) {
	h := NewHandlers(service)
	authed := auth.RequireAuth(tokens)

	group := app.Group("/tracks")
	group.Get("/", h.GetAll)
	group.Get("/user", authed, h.GetUserTracks)
	group.Get("/filter", authed, h.ListFiltered)
	group.Get("/search", h.Search)
	group.Post("/multiple", h.GetMultiple)
	group.Post("/", authed, h.Create)
	group.Post("/listen/:id", h.Listen)
	group.Post("/comment/:id", authed, h.AddComment)
	group.Get("/favorite/me", authed, h.GetFavorites)
	group.Get("/favorite/:id", h.GetFavorites)
	group.Post("/favorite/:id", authed, h.AddFavorite)
	group.Delete("/favorite/:id", authed, h.RemoveFavorite)
	group.Get("/:id", h.GetOne)
	group.Patch("/:id", authed, h.Update)
	group.Delete("/:id", authed, h.Delete)
}
