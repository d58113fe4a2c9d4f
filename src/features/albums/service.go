package albums

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"soundvault/src/catalog"
	"soundvault/src/features/metrics"
)

// Service is the domain service for the albums feature. It owns the album
// side of the delete cascade: album deletion detaches tracks, it never
// deletes them.
type Service struct {
	store catalog.Store
	files catalog.FileStore
}

// NewService creates a new albums service.
func NewService(store catalog.Store, files catalog.FileStore) *Service {
	return &Service{store: store, files: files}
}

// CreateInput carries the album creation fields.
type CreateInput struct {
	Title  string
	Genre  string
	Artist string
}

// UpdateInput carries the mutable album fields. Nil fields are left
// untouched; Tracks is merged into the existing list, not replaced.
type UpdateInput struct {
	Title  *string
	Genre  *string
	Artist *string
	Tracks []string
}

// WithTracks is an album with its track references resolved.
type WithTracks struct {
	catalog.Album
	Tracks []*catalog.Track `json:"tracks"`
}

// Create stores a new album owned by userID and appends its id to the
// owner's album list. The year is stamped with the current year.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput, picture *catalog.Upload) (*catalog.Album, error) {
	slog.Debug("Create album service called", "user", userID, "title", in.Title)
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var pictureRef string
	if picture != nil {
		ref, err := s.files.Create(ctx, catalog.FileImage, picture.Filename, bytes.NewReader(picture.Data))
		if err != nil {
			return nil, err
		}
		metrics.TotalUploads.Inc()
		pictureRef = ref
	}

	album := &catalog.Album{
		Title:     in.Title,
		Genre:     in.Genre,
		Artist:    in.Artist,
		Year:      time.Now().Year(),
		CreatedAt: time.Now(),
		Picture:   pictureRef,
		Tracks:    []string{},
		UserID:    userID,
	}
	if err := album.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.InsertAlbum(ctx, album)
	if err != nil {
		slog.Error("Create album failed", "error", err)
		return nil, err
	}
	album.ID = id

	if err := s.store.AddToSet(ctx, userID, catalog.SetMyAlbums, id); err != nil {
		return nil, err
	}
	return album, nil
}

// Update mutates an album owned by userID. An ownership mismatch reports the
// same not-found as a missing album. A new picture releases the old blob
// first; incoming track ids are merged into the existing list without
// duplicates, preserving order.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput, picture *catalog.Upload) (*catalog.Album, error) {
	slog.Debug("Update album service called", "id", id, "user", userID)
	album, err := s.store.GetOwnedAlbum(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	update := catalog.AlbumUpdate{Title: in.Title, Genre: in.Genre, Artist: in.Artist}
	if picture != nil {
		if album.Picture != "" {
			if err := s.files.Remove(ctx, album.Picture); err != nil {
				return nil, err
			}
		}
		ref, err := s.files.Create(ctx, catalog.FileImage, picture.Filename, bytes.NewReader(picture.Data))
		if err != nil {
			return nil, err
		}
		metrics.TotalUploads.Inc()
		update.Picture = &ref
	}
	if len(in.Tracks) > 0 {
		merged := mergeIDs(album.Tracks, in.Tracks)
		update.Tracks = &merged
	}

	if err := s.store.UpdateAlbum(ctx, id, update); err != nil {
		slog.Error("Update album failed", "id", id, "error", err)
		return nil, err
	}
	return s.store.GetAlbum(ctx, id)
}

// GetAll returns albums newest first.
func (s *Service) GetAll(ctx context.Context, count, offset int) ([]*catalog.Album, error) {
	if count <= 0 {
		count = 10
	}
	return s.store.GetAlbums(ctx, count, offset)
}

// GetByID returns one album with its tracks resolved in list order.
func (s *Service) GetByID(ctx context.Context, id string) (*WithTracks, error) {
	slog.Debug("GetByID album service called", "id", id)
	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	tracks, err := s.resolveTracks(ctx, album.Tracks)
	if err != nil {
		return nil, err
	}
	return &WithTracks{Album: *album, Tracks: tracks}, nil
}

// GetUserAlbums returns the albums owned by userID with tracks resolved.
func (s *Service) GetUserAlbums(ctx context.Context, userID string, count, offset int) ([]*WithTracks, error) {
	if count <= 0 {
		count = 10
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	albums, err := s.store.GetUserAlbums(ctx, userID, count, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*WithTracks, 0, len(albums))
	for _, album := range albums {
		tracks, err := s.resolveTracks(ctx, album.Tracks)
		if err != nil {
			return nil, err
		}
		out = append(out, &WithTracks{Album: *album, Tracks: tracks})
	}
	return out, nil
}

// GetMultiple batch-resolves album ids.
func (s *Service) GetMultiple(ctx context.Context, ids []string) ([]*catalog.Album, error) {
	return s.store.GetAlbumsByIDs(ctx, ids)
}

// AddFavorite inserts the album into the user's favorites. Adding an album
// that is already favored reports a conflict.
func (s *Service) AddFavorite(ctx context.Context, albumID, userID string) error {
	slog.Debug("AddFavorite album service called", "album", albumID, "user", userID)
	if _, err := s.store.GetAlbum(ctx, albumID); err != nil {
		return err
	}
	if err := s.store.AddToSet(ctx, userID, catalog.SetFavoredAlbums, albumID); err != nil {
		return err
	}
	metrics.TotalFavoriteAdds.Inc()
	return nil
}

// RemoveFavorite removes the album from the user's favorites. Removing an
// album that is not favored succeeds; retried removals are not errors.
func (s *Service) RemoveFavorite(ctx context.Context, albumID, userID string) error {
	slog.Debug("RemoveFavorite album service called", "album", albumID, "user", userID)
	return s.store.PullFromSet(ctx, userID, catalog.SetFavoredAlbums, albumID)
}

// FavoriteIDs returns the user's favored album ids in insertion order.
func (s *Service) FavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.FavoredAlbums, nil
}

// ListFiltered resolves the user's album view for the scope and sorts it:
// title first, creation time only to break title ties. The full view is the
// concatenation of favored and owned ids, duplicates kept.
func (s *Service) ListFiltered(ctx context.Context, userID string, scope catalog.Scope, titleOrder, dateOrder catalog.Order) ([]*catalog.Album, error) {
	slog.Debug("ListFiltered album service called", "user", userID, "scope", scope)
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := catalog.ViewIDs(user.FavoredAlbums, user.MyAlbums, scope)
	albums, err := s.resolveAlbums(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(albums, func(i, j int) bool {
		cmp := strings.Compare(albums[i].Title, albums[j].Title)
		if titleOrder == catalog.OrderDesc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		if dateOrder == catalog.OrderDesc {
			return albums[i].CreatedAt.After(albums[j].CreatedAt)
		}
		return albums[i].CreatedAt.Before(albums[j].CreatedAt)
	})
	return albums, nil
}

// Delete runs the album delete cascade, owner-scoped. Steps are
// best-effort in a fixed order; a failing step leaves the earlier ones
// committed and surfaces its error unmodified. Tracks are detached, not
// deleted: only their picture is cleared, the albumId back-reference stays.
func (s *Service) Delete(ctx context.Context, id, userID string) (string, error) {
	slog.Debug("Delete album service called", "id", id, "user", userID)
	album, err := s.store.GetOwnedAlbum(ctx, id, userID)
	if err != nil {
		return "", err
	}

	if err := s.store.PullFromSet(ctx, userID, catalog.SetMyAlbums, id); err != nil {
		return "", err
	}
	if err := s.store.PullFromAllSets(ctx, catalog.SetFavoredAlbums, id); err != nil {
		return "", err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return "", err
	}
	if album.Picture != "" {
		if err := s.files.Remove(ctx, album.Picture); err != nil {
			return "", err
		}
	}
	if err := s.store.ClearTrackPicturesByAlbum(ctx, id); err != nil {
		return "", err
	}

	metrics.TotalAlbumCascades.Inc()
	slog.Debug("Delete album cascade completed", "id", id)
	return album.ID, nil
}

// DetachTrack removes the first occurrence of trackID from the album's track
// list. The track record itself is untouched.
func (s *Service) DetachTrack(ctx context.Context, albumID, trackID, userID string) (string, error) {
	slog.Debug("DetachTrack service called", "album", albumID, "track", trackID, "user", userID)
	album, err := s.store.GetOwnedAlbum(ctx, albumID, userID)
	if err != nil {
		return "", err
	}
	idx := slices.Index(album.Tracks, trackID)
	if idx == -1 {
		return "", fmt.Errorf("track not found in album: %w", catalog.ErrNotFound)
	}
	var tracks []string
	tracks = append(tracks, album.Tracks[:idx]...)
	tracks = append(tracks, album.Tracks[idx+1:]...)
	if err := s.store.UpdateAlbum(ctx, albumID, catalog.AlbumUpdate{Tracks: &tracks}); err != nil {
		return "", err
	}
	return album.ID, nil
}

// resolveAlbums expands an id sequence into records, preserving the
// sequence's order and duplicates. Ids with no record are skipped.
func (s *Service) resolveAlbums(ctx context.Context, ids []string) ([]*catalog.Album, error) {
	fetched, err := s.store.GetAlbumsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*catalog.Album, len(fetched))
	for _, album := range fetched {
		byID[album.ID] = album
	}
	out := make([]*catalog.Album, 0, len(ids))
	for _, id := range ids {
		if album, ok := byID[id]; ok {
			out = append(out, album)
		}
	}
	return out, nil
}

func (s *Service) resolveTracks(ctx context.Context, ids []string) ([]*catalog.Track, error) {
	fetched, err := s.store.GetTracksByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*catalog.Track, len(fetched))
	for _, track := range fetched {
		byID[track.ID] = track
	}
	out := make([]*catalog.Track, 0, len(ids))
	for _, id := range ids {
		if track, ok := byID[id]; ok {
			out = append(out, track)
		}
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mergeIDs unions two id lists, keeping first-seen order.
func mergeIDs(existing, incoming []string) []string {
	return uniqueIDs(append(append([]string{}, existing...), incoming...))
}
