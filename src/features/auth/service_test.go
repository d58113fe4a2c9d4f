package auth

import (
	"context"
	"errors"
	"testing"

	"soundvault/src/catalog"
)

// MockStore backs the login tests with a single lookup method; everything
// else panics via the embedded interface.
type MockStore struct {
	catalog.Store
	users map[string]*catalog.User
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*catalog.User, error) {
	if user, ok := m.users[email]; ok {
		return user, nil
	}
	return nil, nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Verify(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(id, email string) (string, error) { return "token:" + id, nil }
func (stubIssuer) Verify(token string) (string, error)    { return "", errors.New("not implemented") }

func TestLogin_Succeeds(t *testing.T) {
	store := &MockStore{users: map[string]*catalog.User{
		"donald@test.io": {ID: "u1", Email: "donald@test.io", Password: "hashed:s3cret"},
	}}
	service := NewService(store, stubHasher{}, stubIssuer{})

	session, err := service.Login(context.Background(), "donald@test.io", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Token != "token:u1" {
		t.Errorf("expected a token for the user, got %q", session.Token)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := NewService(&MockStore{users: map[string]*catalog.User{}}, stubHasher{}, stubIssuer{})

	if _, err := service.Login(context.Background(), "nobody@test.io", "s3cret"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := &MockStore{users: map[string]*catalog.User{
		"donald@test.io": {ID: "u1", Email: "donald@test.io", Password: "hashed:s3cret"},
	}}
	service := NewService(store, stubHasher{}, stubIssuer{})

	if _, err := service.Login(context.Background(), "donald@test.io", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}
