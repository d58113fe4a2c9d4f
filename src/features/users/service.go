package users

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"soundvault/src/catalog"
	"soundvault/src/features/metrics"
)

// Service is the domain service for the users feature: registration,
// profiles, and the membership-set surface.
type Service struct {
	store  catalog.Store
	files  catalog.FileStore
	hasher catalog.PasswordHasher
	tokens catalog.TokenIssuer
}

// NewService creates a new users service.
func NewService(store catalog.Store, files catalog.FileStore, hasher catalog.PasswordHasher, tokens catalog.TokenIssuer) *Service {
	return &Service{store: store, files: files, hasher: hasher, tokens: tokens}
}

// Registration is what a successful register call hands back to the client.
type Registration struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Profile is the public shape of a user.
type Profile struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// Register creates an account. The email must not already have one.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Registration, error) {
	slog.Debug("Register service called", "email", email)
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, catalog.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &catalog.User{Name: name, Email: email, Password: hash}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.InsertUser(ctx, user)
	if err != nil {
		slog.Error("Register failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.tokens.Issue(id, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	slog.Debug("Register completed", "id", id)
	return &Registration{ID: id, Email: email, Token: token}, nil
}

// GetProfile returns the public profile of the user.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	slog.Debug("GetProfile service called", "id", id)
	if !catalog.IsValidID(id) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInvalidID, id)
	}
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: user.ID, Name: user.Name, Email: user.Email, Avatar: user.Avatar}, nil
}

// UpdateProfile mutates the user's own profile. A new avatar releases the old
// blob before the new reference is stored; a new password is re-hashed.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate, avatar *catalog.Upload) (*Profile, error) {
	slog.Debug("UpdateProfile service called", "id", userID)
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := catalog.UserUpdate{Name: update.Name, Email: update.Email}
	if avatar != nil {
		if user.Avatar != "" {
			if err := s.files.Remove(ctx, user.Avatar); err != nil {
				return nil, err
			}
		}
		ref, err := s.files.Create(ctx, catalog.FileImage, avatar.Filename, bytes.NewReader(avatar.Data))
		if err != nil {
			return nil, err
		}
		metrics.TotalUploads.Inc()
		fields.Avatar = &ref
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields.Password = &hash
	}

	if err := s.store.UpdateUser(ctx, userID, fields); err != nil {
		slog.Error("UpdateProfile failed", "id", userID, "error", err)
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ListSet returns one of the user's membership sets in insertion order.
func (s *Service) ListSet(ctx context.Context, userID string, set catalog.UserSet) ([]string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Set(set), nil
}
