package albums

import (
	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
)

// RegisterRoutes wires the album endpoints into the app.
func RegisterRoutes(app *fiber.App, service *Service, tokens catalog.TokenIssuer) {
	h := NewHandlers(service)
	authed := auth.RequireAuth(tokens)

	group := app.Group("/album")
	group.Get("/", h.GetAll)
	group.Get("/user", authed, h.GetUserAlbums)
	group.Get("/filter", authed, h.ListFiltered)
	group.Post("/multiple", h.GetMultiple)
	group.Post("/", authed, h.Create)
	group.Get("/favorite/me", authed, h.GetFavorites)
	group.Get("/favorite/:id", h.GetFavorites)
	group.Post("/favorite/:id", authed, h.AddFavorite)
	group.Delete("/favorite/:id", authed, h.RemoveFavorite)
	group.Get("/:id", h.GetByID)
	group.Patch("/:id", authed, h.Update)
	group.Delete("/:albumId/tracks/:trackId", authed, h.DetachTrack)
	group.Delete("/:id", authed, h.Delete)
}
