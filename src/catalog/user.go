package catalog

import (
	"fmt"
	"strings"
)

// UserSet names one of the per-user membership sets. Sets keep insertion
// order and never contain a duplicate identifier.
type UserSet string

const (
	SetFavoredTracks UserSet = "favoredTracks"
	SetFavoredAlbums UserSet = "favoredAlbums"
	SetMyTracks      UserSet = "myTracks"
	SetMyAlbums      UserSet = "myAlbums"
)

// User is an account that owns and favors albums and tracks.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string // argon2id hash, never the plaintext
	Avatar   string // file store reference, may be empty

	FavoredTracks []string
	FavoredAlbums []string
	MyTracks      []string
	MyAlbums      []string
}

// Validate validates the user fields.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email cannot be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email: %s", u.Email)
	}
	if u.Password == "" {
		return fmt.Errorf("user password hash cannot be empty")
	}
	return nil
}

// Set returns the named membership set in insertion order.
func (u *User) Set(name UserSet) []string {
	switch name {
	case SetFavoredTracks:
		return u.FavoredTracks
	case SetFavoredAlbums:
		return u.FavoredAlbums
	case SetMyTracks:
		return u.MyTracks
	case SetMyAlbums:
		return u.MyAlbums
	}
	return nil
}

// UserUpdate is a partial update of a user document. Nil fields are left
// untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
}
