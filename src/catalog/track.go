package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Track is a single uploaded audio item. AlbumID is optional; when set, the
// referenced album's Tracks list is expected to contain this track's id.
type Track struct {
	ID        string
	Name      string
	Artist    string
	Text      string // lyrics, optional
	Listens   int
	CreatedAt time.Time
	Picture   string // file store reference, may be empty
	Audio     string // file store reference
	Comments  []string
	UserID    string
	AlbumID   string
}

// Validate validates the track fields.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("track name cannot be empty")
	}
	if len(t.Name) > 500 {
		return fmt.Errorf("track name cannot exceed 500 characters")
	}
	if t.Listens < 0 {
		return fmt.Errorf("listens cannot be negative, got %d", t.Listens)
	}
	if len(t.Text) > 15000 {
		return fmt.Errorf("lyrics cannot exceed 15000 characters, got %d", len(t.Text))
	}
	if t.UserID == "" {
		return fmt.Errorf("track must have an owner")
	}
	return nil
}

// TrackUpdate is a partial update of a track document. Nil fields are left
// untouched.
type TrackUpdate struct {
	Name    *string
	Artist  *string
	Text    *string
	Picture *string
	AlbumID *string
}
