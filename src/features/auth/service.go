package auth

import (
	"context"
	"errors"
	"log/slog"

	"soundvault/src/catalog"
)

// ErrBadCredentials is returned when the email exists but the password does
// not match.
var ErrBadCredentials = errors.New("wrong email or password")

// Service validates credentials and mints session tokens.
type Service struct {
	store  catalog.Store
	hasher catalog.PasswordHasher
	tokens catalog.TokenIssuer
}

// NewService creates a new auth service.
func NewService(store catalog.Store, hasher catalog.PasswordHasher, tokens catalog.TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Session is what a successful login hands back to the client.
type Session struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Login checks the credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	slog.Debug("Login service called", "email", email)
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, catalog.ErrNotFound
	}
	ok, err := s.hasher.Verify(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBadCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{ID: user.ID, Email: user.Email, Token: token}, nil
}
