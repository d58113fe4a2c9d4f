package catalog

import (
	"fmt"
	"strings"
)

// Comment is attached to a track by reference. Its lifecycle is independent
// of the track: deleting a track does not delete its comments.
type Comment struct {
	ID      string
	Text    string
	TrackID string
	UserID  string
}

// Validate validates the comment fields.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("comment text cannot be empty")
	}
	if c.TrackID == "" {
		return fmt.Errorf("comment must reference a track")
	}
	if c.UserID == "" {
		return fmt.Errorf("comment must have an author")
	}
	return nil
}
