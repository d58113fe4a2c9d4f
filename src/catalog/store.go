package catalog

import (
	"context"
)

// Store is the repository interface for the catalog. It gives typed access to
// the four collections plus the document-store primitives the cascade and
// membership logic depend on (conditional set insert, pull, sweep pull,
// scoped field clears, counter increment, substring search).
//
// The store enforces no cross-collection referential integrity; keeping
// denormalized references consistent is the services' job.
type Store interface {
	// User methods
	InsertUser(ctx context.Context, user *User) (string, error)
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error) // nil, nil when absent
	UpdateUser(ctx context.Context, id string, update UserUpdate) error

	// Membership methods. AddToSet is an atomic insert-if-absent and fails
	// with ErrAlreadyFavored when the id is already present. PullFromSet is
	// idempotent and succeeds whether or not the id is present.
	// PullFromAllSets strips the id from the named set of every user.
	AddToSet(ctx context.Context, userID string, set UserSet, id string) error
	PullFromSet(ctx context.Context, userID string, set UserSet, id string) error
	PullFromAllSets(ctx context.Context, set UserSet, id string) error

	// Album methods
	InsertAlbum(ctx context.Context, album *Album) (string, error)
	GetAlbum(ctx context.Context, id string) (*Album, error)
	GetOwnedAlbum(ctx context.Context, id string, userID string) (*Album, error)
	GetAlbums(ctx context.Context, limit, offset int) ([]*Album, error)
	GetUserAlbums(ctx context.Context, userID string, limit, offset int) ([]*Album, error)
	GetAlbumsByIDs(ctx context.Context, ids []string) ([]*Album, error)
	SearchAlbums(ctx context.Context, text string) ([]*Album, error)
	UpdateAlbum(ctx context.Context, id string, update AlbumUpdate) error
	PushAlbumTrack(ctx context.Context, albumID, trackID string) error
	DeleteAlbum(ctx context.Context, id string) error

	// Track methods
	InsertTrack(ctx context.Context, track *Track) (string, error)
	GetTrack(ctx context.Context, id string) (*Track, error)
	GetOwnedTrack(ctx context.Context, id string, userID string) (*Track, error)
	GetTracks(ctx context.Context, limit, offset int) ([]*Track, error)
	GetUserTracks(ctx context.Context, userID string, limit, offset int) ([]*Track, error)
	GetTracksByIDs(ctx context.Context, ids []string) ([]*Track, error)
	SearchTracks(ctx context.Context, text string) ([]*Track, error)
	UpdateTrack(ctx context.Context, id string, update TrackUpdate) error
	PushTrackComment(ctx context.Context, trackID, commentID string) error
	IncrementListens(ctx context.Context, id string) error
	ClearTrackPicturesByAlbum(ctx context.Context, albumID string) error
	DeleteTrack(ctx context.Context, id string) error

	// Comment methods
	InsertComment(ctx context.Context, comment *Comment) (string, error)
	GetCommentsByIDs(ctx context.Context, ids []string) ([]*Comment, error)
}
