package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Album is a collection of track references owned by a user. The Tracks
// list holds identifiers only; deleting an album must detach its tracks,
// never delete them.
type Album struct {
	ID        string
	Title     string
	Genre     string
	Artist    string
	Year      int
	CreatedAt time.Time
	Picture   string // file store reference, may be empty
	Tracks    []string
	UserID    string
}

// Validate validates the album fields.
func (a *Album) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("album title cannot be empty")
	}
	if len(a.Title) > 500 {
		return fmt.Errorf("album title cannot exceed 500 characters")
	}
	if a.Genre != "" && len(a.Genre) > 100 {
		return fmt.Errorf("genre cannot exceed 100 characters")
	}
	if a.Year < 0 {
		return fmt.Errorf("year cannot be negative, got %d", a.Year)
	}
	if a.UserID == "" {
		return fmt.Errorf("album must have an owner")
	}
	return nil
}

// AlbumUpdate is a partial update of an album document. Nil fields are left
// untouched.
type AlbumUpdate struct {
	Title   *string
	Genre   *string
	Artist  *string
	Year    *int
	Picture *string
	Tracks  *[]string
}
