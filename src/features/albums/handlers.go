package albums

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
	"soundvault/src/features/users"
)

// Handlers exposes the albums feature over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates new album handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

type multipleRequest struct {
	IDs []string `json:"ids"`
}

// Create handles POST /album.
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	in := CreateInput{
		Title:  c.FormValue("title"),
		Genre:  c.FormValue("genre"),
		Artist: c.FormValue("artist"),
	}
	picture, err := users.ReadUpload(c, "picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	album, err := h.service.Create(c.Context(), userID, in, picture)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(album)
}

// Update handles PATCH /album/:id.
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	var in UpdateInput
	in.Title = optionalFormValue(c, "title")
	in.Genre = optionalFormValue(c, "genre")
	in.Artist = optionalFormValue(c, "artist")
	if form, err := c.MultipartForm(); err == nil {
		in.Tracks = form.Value["tracks"]
	}
	picture, err := users.ReadUpload(c, "picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	album, err := h.service.Update(c.Context(), c.Params("id"), userID, in, picture)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(album)
}

// GetAll handles GET /album.
func (h *Handlers) GetAll(c *fiber.Ctx) error {
	albums, err := h.service.GetAll(c.Context(), c.QueryInt("count", 10), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

// GetByID handles GET /album/:id.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	album, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(album)
}

// GetUserAlbums handles GET /album/user.
func (h *Handlers) GetUserAlbums(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	albums, err := h.service.GetUserAlbums(c.Context(), userID, c.QueryInt("count", 10), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

// GetMultiple handles POST /album/multiple.
func (h *Handlers) GetMultiple(c *fiber.Ctx) error {
	var req multipleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	albums, err := h.service.GetMultiple(c.Context(), req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

// AddFavorite handles POST /album/favorite/:id.
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if err := h.service.AddFavorite(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": c.Params("id")})
}

// RemoveFavorite handles DELETE /album/favorite/:id.
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if err := h.service.RemoveFavorite(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": c.Params("id")})
}

// GetFavorites handles GET /album/favorite/me and GET /album/favorite/:id.
func (h *Handlers) GetFavorites(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" || userID == "me" {
		userID = auth.UserID(c)
	}
	ids, err := h.service.FavoriteIDs(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ids)
}

// ListFiltered handles GET /album/filter.
func (h *Handlers) ListFiltered(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	scope := catalog.ParseScope(c.Query("scope", "all"))
	titleOrder := catalog.ParseOrder(c.Query("title"), catalog.OrderAsc)
	dateOrder := catalog.ParseOrder(c.Query("date"), catalog.OrderDesc)
	albums, err := h.service.ListFiltered(c.Context(), userID, scope, titleOrder, dateOrder)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

// Delete handles DELETE /album/:id.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	id, err := h.service.Delete(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": id})
}

// DetachTrack handles DELETE /album/:albumId/tracks/:trackId.
func (h *Handlers) DetachTrack(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	id, err := h.service.DetachTrack(c.Context(), c.Params("albumId"), c.Params("trackId"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": id})
}

func optionalFormValue(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrAlreadyFavored):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("Album handler failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
