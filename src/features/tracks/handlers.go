package tracks

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
	"soundvault/src/features/users"
)

// Handlers exposes the tracks feature over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates new track handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

type multipleRequest struct {
	IDs []string `json:"ids"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// Create handles POST /tracks.
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	in := CreateInput{
		Name:    c.FormValue("name"),
		Artist:  c.FormValue("artist"),
		Text:    c.FormValue("text"),
		AlbumID: c.FormValue("albumId"),
	}
	picture, err := users.ReadUpload(c, "picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	audio, err := users.ReadUpload(c, "audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if audio == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "audio file is required"})
	}
	track, err := h.service.Create(c.Context(), userID, in, picture, audio)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(track)
}

// Update handles PATCH /tracks/:id.
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	in := UpdateInput{
		Name:    optionalFormValue(c, "name"),
		Artist:  optionalFormValue(c, "artist"),
		Text:    optionalFormValue(c, "text"),
		AlbumID: optionalFormValue(c, "albumId"),
	}
	picture, err := users.ReadUpload(c, "picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	track, err := h.service.Update(c.Context(), c.Params("id"), userID, in, picture)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(track)
}

// GetAll handles GET /tracks.
func (h *Handlers) GetAll(c *fiber.Ctx) error {
	tracks, err := h.service.GetAll(c.Context(), c.QueryInt("count", 10), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

// GetUserTracks handles GET /tracks/user.
func (h *Handlers) GetUserTracks(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	tracks, err := h.service.GetUserTracks(c.Context(), userID, c.QueryInt("count", 10), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

// GetOne handles GET /tracks/:id.
func (h *Handlers) GetOne(c *fiber.Ctx) error {
	track, err := h.service.GetOne(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(track)
}

// GetMultiple handles POST /tracks/multiple.
func (h *Handlers) GetMultiple(c *fiber.Ctx) error {
	var req multipleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	tracks, err := h.service.GetMultiple(c.Context(), req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

// Delete handles DELETE /tracks/:id.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	id, err := h.service.Delete(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": id})
}

// AddComment handles POST /tracks/comment/:id.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	comment, err := h.service.AddComment(c.Context(), c.Params("id"), userID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Listen handles POST /tracks/listen/:id.
func (h *Handlers) Listen(c *fiber.Ctx) error {
	if err := h.service.Listen(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": c.Params("id")})
}

// AddFavorite handles POST /tracks/favorite/:id.
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if err := h.service.AddFavorite(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": c.Params("id")})
}

// RemoveFavorite handles DELETE /tracks/favorite/:id.
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if err := h.service.RemoveFavorite(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"_id": c.Params("id")})
}

// GetFavorites handles GET /tracks/favorite/me and GET /tracks/favorite/:id.
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

// ListFiltered handles GET /tracks/filter.
func (h *Handlers) ListFiltered(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	scope := catalog.ParseScope(c.Query("scope", "all"))
	nameOrder := catalog.ParseOrder(c.Query("name"), catalog.OrderAsc)
	artistOrder := catalog.ParseOrder(c.Query("artist"), catalog.OrderAsc)
	tracks, err := h.service.ListFiltered(c.Context(), userID, scope, nameOrder, artistOrder)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

// Search handles GET /tracks/search.
func (h *Handlers) Search(c *fiber.Ctx) error {
	result, err := h.service.Search(c.Context(), c.Query("text"), ParseSearchScope(c.Query("scope")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
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
		slog.Error("Track handler failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
