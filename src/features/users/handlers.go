package users

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
	"soundvault/src/features/auth"
)

var validate = validator.New()

// Handler is the handler for the users feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the users feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=4"`
}

// Register is the handler for account creation.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "malformed body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	reg, err := h.service.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reg)
}

// GetProfile is the handler for the authenticated user's own profile.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetPublicProfile is the handler for any user's public profile.
func (h *Handler) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile is the handler for profile edits, optionally carrying a new
// avatar as a multipart file.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	update := ProfileUpdate{
		Name:     optionalFormValue(c, "name"),
		Email:    optionalFormValue(c, "email"),
		Password: optionalFormValue(c, "password"),
	}
	avatar, err := ReadUpload(c, "avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unreadable avatar upload"})
	}

	profile, err := h.service.UpdateProfile(c.Context(), auth.UserID(c), update, avatar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ListSet is the handler for one of the user's membership sets.
func (h *Handler) ListSet(c *fiber.Ctx) error {
	set := catalog.UserSet(c.Params("set"))
	switch set {
	case catalog.SetFavoredTracks, catalog.SetFavoredAlbums, catalog.SetMyTracks, catalog.SetMyAlbums:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown membership set"})
	}
	ids, err := h.service.ListSet(c.Context(), auth.UserID(c), set)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ids)
}

func optionalFormValue(c *fiber.Ctx, key string) *string {
	if v := c.FormValue(key); v != "" {
		return &v
	}
	return nil
}

// ReadUpload pulls one multipart file off the request, or nil when the field
// is absent.
func ReadUpload(c *fiber.Ctx, field string) (*catalog.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil // field absent
	}
	return readUploadHeader(header)
}

func readUploadHeader(header *multipart.FileHeader) (*catalog.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &catalog.Upload{Filename: header.Filename, Data: data}, nil
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case errors.Is(err, catalog.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": catalog.ErrEmailTaken.Error()})
	default:
		slog.Error("users handler error", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
	}
}
