package tracks

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"

	"soundvault/src/catalog"
	"soundvault/src/features/metrics"
)

// Service is the domain service for the tracks feature.
type Service struct {
	store catalog.Store
	files catalog.FileStore
}

// NewService creates a new tracks service.
func NewService(store catalog.Store, files catalog.FileStore) *Service {
	return &Service{store: store, files: files}
}

// CreateInput carries the track creation fields. Name and Artist left empty
// are filled from the audio file's embedded tags when present.
type CreateInput struct {
	Name    string
	Artist  string
	Text    string
	AlbumID string
}

// UpdateInput carries the mutable track fields. Nil fields are left
// untouched.
type UpdateInput struct {
	Name    *string
	Artist  *string
	Text    *string
	AlbumID *string
}

// WithComments is a track with its comment references resolved.
type WithComments struct {
	catalog.Track
	Comments []*catalog.Comment `json:"comments"`
}

// SearchResult holds both halves of a cross-collection search.
type SearchResult struct {
	Tracks []*catalog.Track `json:"tracks"`
	Albums []*catalog.Album `json:"albums"`
}

// Create stores a new track owned by userID. The audio file is required; a
// missing picture falls back to the parent album's picture. The new id is
// appended to the owner's track list and, when an album is given, to the
// album's track list.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput, picture, audio *catalog.Upload) (*catalog.Track, error) {
	slog.Debug("Create track service called", "user", userID, "name", in.Name)
	if audio == nil {
		return nil, errors.New("audio file is required")
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var album *catalog.Album
	if in.AlbumID != "" {
		var err error
		album, err = s.store.GetAlbum(ctx, in.AlbumID)
		if err != nil {
			return nil, err
		}
	}

	probeTags(audio, &in)

	audioRef, err := s.files.Create(ctx, catalog.FileAudio, audio.Filename, bytes.NewReader(audio.Data))
	if err != nil {
		return nil, err
	}
	metrics.TotalUploads.Inc()

	var pictureRef string
	if picture != nil {
		pictureRef, err = s.files.Create(ctx, catalog.FileImage, picture.Filename, bytes.NewReader(picture.Data))
		if err != nil {
			return nil, err
		}
		metrics.TotalUploads.Inc()
	} else if album != nil {
		pictureRef = album.Picture
	}

	track := &catalog.Track{
		Name:      in.Name,
		Artist:    in.Artist,
		Text:      in.Text,
		CreatedAt: time.Now(),
		Picture:   pictureRef,
		Audio:     audioRef,
		Comments:  []string{},
		UserID:    userID,
		AlbumID:   in.AlbumID,
	}
	if err := track.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.InsertTrack(ctx, track)
	if err != nil {
		slog.Error("Create track failed", "error", err)
		return nil, err
	}
	track.ID = id

	if err := s.store.AddToSet(ctx, userID, catalog.SetMyTracks, id); err != nil {
		return nil, err
	}
	if album != nil {
		if err := s.store.PushAlbumTrack(ctx, album.ID, id); err != nil {
			return nil, err
		}
	}
	return track, nil
}

// Update mutates a track owned by userID. Ownership mismatch reports the
// same not-found as a missing track. A new picture releases the old blob
// first.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput, picture *catalog.Upload) (*catalog.Track, error) {
	slog.Debug("Update track service called", "id", id, "user", userID)
	track, err := s.store.GetOwnedTrack(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	update := catalog.TrackUpdate{Name: in.Name, Artist: in.Artist, Text: in.Text, AlbumID: in.AlbumID}
	if picture != nil {
		if track.Picture != "" {
			if err := s.files.Remove(ctx, track.Picture); err != nil {
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

	if err := s.store.UpdateTrack(ctx, id, update); err != nil {
		slog.Error("Update track failed", "id", id, "error", err)
		return nil, err
	}
	return s.store.GetTrack(ctx, id)
}

// GetAll returns tracks newest first.
func (s *Service) GetAll(ctx context.Context, count, offset int) ([]*catalog.Track, error) {
	if count <= 0 {
		count = 10
	}
	return s.store.GetTracks(ctx, count, offset)
}

// GetUserTracks returns the tracks owned by userID, newest first.
func (s *Service) GetUserTracks(ctx context.Context, userID string, count, offset int) ([]*catalog.Track, error) {
	if count <= 0 {
		count = 10
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetUserTracks(ctx, userID, count, offset)
}

// GetOne returns one track with its comments resolved in list order.
func (s *Service) GetOne(ctx context.Context, id string) (*WithComments, error) {
	track, err := s.store.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.GetCommentsByIDs(ctx, track.Comments)
	if err != nil {
		return nil, err
	}
	return &WithComments{Track: *track, Comments: comments}, nil
}

// GetMultiple batch-resolves track ids.
func (s *Service) GetMultiple(ctx context.Context, ids []string) ([]*catalog.Track, error) {
	return s.store.GetTracksByIDs(ctx, ids)
}

// Delete runs the track delete cascade, owner-scoped. The parent album's
// track list is left as is; a dangling id there is expected after this call.
func (s *Service) Delete(ctx context.Context, id, userID string) (string, error) {
	slog.Debug("Delete track service called", "id", id, "user", userID)
	track, err := s.store.GetOwnedTrack(ctx, id, userID)
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteTrack(ctx, id); err != nil {
		return "", err
	}
	if track.Audio != "" {
		if err := s.files.Remove(ctx, track.Audio); err != nil {
			return "", err
		}
	}
	if track.Picture != "" {
		if err := s.files.Remove(ctx, track.Picture); err != nil {
			return "", err
		}
	}
	if err := s.store.PullFromSet(ctx, userID, catalog.SetMyTracks, id); err != nil {
		return "", err
	}
	if err := s.store.PullFromAllSets(ctx, catalog.SetFavoredTracks, id); err != nil {
		return "", err
	}

	metrics.TotalTrackCascades.Inc()
	slog.Debug("Delete track cascade completed", "id", id)
	return track.ID, nil
}

// AddComment stores a comment and appends its id to the track.
func (s *Service) AddComment(ctx context.Context, trackID, userID, text string) (*catalog.Comment, error) {
	slog.Debug("AddComment service called", "track", trackID, "user", userID)
	if _, err := s.store.GetTrack(ctx, trackID); err != nil {
		return nil, err
	}
	comment := &catalog.Comment{Text: text, TrackID: trackID, UserID: userID}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	id, err := s.store.InsertComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	if err := s.store.PushTrackComment(ctx, trackID, id); err != nil {
		return nil, err
	}
	return comment, nil
}

// Listen bumps the track's listen counter.
func (s *Service) Listen(ctx context.Context, id string) error {
	if err := s.store.IncrementListens(ctx, id); err != nil {
		return err
	}
	metrics.TotalListens.Inc()
	return nil
}

// AddFavorite inserts the track into the user's favorites. Adding a track
// that is already favored reports a conflict.
func (s *Service) AddFavorite(ctx context.Context, trackID, userID string) error {
	slog.Debug("AddFavorite track service called", "track", trackID, "user", userID)
	if _, err := s.store.GetTrack(ctx, trackID); err != nil {
		return err
	}
	if err := s.store.AddToSet(ctx, userID, catalog.SetFavoredTracks, trackID); err != nil {
		return err
	}
	metrics.TotalFavoriteAdds.Inc()
	return nil
}

// RemoveFavorite removes the track from the user's favorites. Retried
// removals are not errors.
func (s *Service) RemoveFavorite(ctx context.Context, trackID, userID string) error {
	slog.Debug("RemoveFavorite track service called", "track", trackID, "user", userID)
	return s.store.PullFromSet(ctx, userID, catalog.SetFavoredTracks, trackID)
}

// FavoriteIDs returns the user's favored track ids in insertion order.
func (s *Service) FavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.FavoredTracks, nil
}

// ListFiltered resolves the user's track view for the scope and sorts it:
// name first, artist only to break name ties. The full view is the
// concatenation of favored and owned ids, duplicates kept.
func (s *Service) ListFiltered(ctx context.Context, userID string, scope catalog.Scope, nameOrder, artistOrder catalog.Order) ([]*catalog.Track, error) {
	slog.Debug("ListFiltered track service called", "user", userID, "scope", scope)
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := catalog.ViewIDs(user.FavoredTracks, user.MyTracks, scope)
	tracks, err := s.resolveTracks(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		cmp := strings.Compare(tracks[i].Name, tracks[j].Name)
		if nameOrder == catalog.OrderDesc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		cmp = strings.Compare(tracks[i].Artist, tracks[j].Artist)
		if artistOrder == catalog.OrderDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return tracks, nil
}

// SearchScope selects which collections a search hits.
type SearchScope string

const (
	SearchAll    SearchScope = "all"
	SearchTracks SearchScope = "tracks"
	SearchAlbums SearchScope = "albums"
)

// ParseSearchScope maps a query value to a SearchScope. Anything other than
// the single-collection scopes means the dual query.
func ParseSearchScope(s string) SearchScope {
	switch SearchScope(s) {
	case SearchTracks, SearchAlbums:
		return SearchScope(s)
	}
	return SearchAll
}

// Search matches text as a case-insensitive substring against track
// name/artist and album title/artist. An empty text returns empty results
// without touching the store. Scope all issues both queries concurrently.
func (s *Service) Search(ctx context.Context, text string, scope SearchScope) (*SearchResult, error) {
	result := &SearchResult{Tracks: []*catalog.Track{}, Albums: []*catalog.Album{}}
	if text == "" {
		return result, nil
	}
	metrics.TotalSearches.Inc()

	switch scope {
	case SearchTracks:
		tracks, err := s.store.SearchTracks(ctx, text)
		if err != nil {
			return nil, err
		}
		result.Tracks = tracks
	case SearchAlbums:
		albums, err := s.store.SearchAlbums(ctx, text)
		if err != nil {
			return nil, err
		}
		result.Albums = albums
	default:
		var wg sync.WaitGroup
		var trackErr, albumErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			result.Tracks, trackErr = s.store.SearchTracks(ctx, text)
		}()
		go func() {
			defer wg.Done()
			result.Albums, albumErr = s.store.SearchAlbums(ctx, text)
		}()
		wg.Wait()
		if trackErr != nil {
			return nil, trackErr
		}
		if albumErr != nil {
			return nil, albumErr
		}
	}
	if result.Tracks == nil {
		result.Tracks = []*catalog.Track{}
	}
	if result.Albums == nil {
		result.Albums = []*catalog.Album{}
	}
	return result, nil
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

// probeTags fills empty name/artist fields from the audio file's embedded
// metadata. Unreadable tags are ignored.
func probeTags(audio *catalog.Upload, in *CreateInput) {
	if in.Name != "" && in.Artist != "" {
		return
	}
	meta, err := tag.ReadFrom(bytes.NewReader(audio.Data))
	if err != nil {
		return
	}
	if in.Name == "" {
		in.Name = meta.Title()
	}
	if in.Artist == "" {
		in.Artist = meta.Artist()
	}
}
