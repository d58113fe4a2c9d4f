package albums

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"testing"
	"time"

	"soundvault/src/catalog"
)

// MockStore is a map-backed catalog.Store for service tests. Methods not
// implemented here panic via the embedded interface.
type MockStore struct {
	catalog.Store
	users  map[string]*catalog.User
	albums map[string]*catalog.Album
	tracks map[string]*catalog.Track
	nextID int
}

func NewMockStore() *MockStore {
	return &MockStore{
		users:  make(map[string]*catalog.User),
		albums: make(map[string]*catalog.Album),
		tracks: make(map[string]*catalog.Track),
	}
}

func (m *MockStore) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *MockStore) GetUser(ctx context.Context, id string) (*catalog.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, catalog.ErrNotFound
}

func (m *MockStore) setSlot(user *catalog.User, set catalog.UserSet) *[]string {
	switch set {
	case catalog.SetFavoredTracks:
		return &user.FavoredTracks
	case catalog.SetFavoredAlbums:
		return &user.FavoredAlbums
	case catalog.SetMyTracks:
		return &user.MyTracks
	}
	return &user.MyAlbums
}

func (m *MockStore) AddToSet(ctx context.Context, userID string, set catalog.UserSet, id string) error {
	user, ok := m.users[userID]
	if !ok {
		return catalog.ErrNotFound
	}
	slot := m.setSlot(user, set)
	if slices.Contains(*slot, id) {
		return catalog.ErrAlreadyFavored
	}
	*slot = append(*slot, id)
	return nil
}

func (m *MockStore) PullFromSet(ctx context.Context, userID string, set catalog.UserSet, id string) error {
	user, ok := m.users[userID]
	if !ok {
		return catalog.ErrNotFound
	}
	slot := m.setSlot(user, set)
	*slot = slices.DeleteFunc(*slot, func(s string) bool { return s == id })
	return nil
}

func (m *MockStore) PullFromAllSets(ctx context.Context, set catalog.UserSet, id string) error {
	for _, user := range m.users {
		slot := m.setSlot(user, set)
		*slot = slices.DeleteFunc(*slot, func(s string) bool { return s == id })
	}
	return nil
}

func (m *MockStore) InsertAlbum(ctx context.Context, album *catalog.Album) (string, error) {
	id := m.id()
	album.ID = id
	m.albums[id] = album
	return id, nil
}

func (m *MockStore) GetAlbum(ctx context.Context, id string) (*catalog.Album, error) {
	if album, ok := m.albums[id]; ok {
		return album, nil
	}
	return nil, catalog.ErrNotFound
}

func (m *MockStore) GetOwnedAlbum(ctx context.Context, id, userID string) (*catalog.Album, error) {
	album, ok := m.albums[id]
	if !ok || album.UserID != userID {
		return nil, catalog.ErrNotFound
	}
	return album, nil
}

func (m *MockStore) GetAlbumsByIDs(ctx context.Context, ids []string) ([]*catalog.Album, error) {
	var out []*catalog.Album
	for _, id := range ids {
		if album, ok := m.albums[id]; ok {
			out = append(out, album)
		}
	}
	return out, nil
}

func (m *MockStore) GetTracksByIDs(ctx context.Context, ids []string) ([]*catalog.Track, error) {
	var out []*catalog.Track
	for _, id := range ids {
		if track, ok := m.tracks[id]; ok {
			out = append(out, track)
		}
	}
	return out, nil
}

func (m *MockStore) UpdateAlbum(ctx context.Context, id string, update catalog.AlbumUpdate) error {
	album, ok := m.albums[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if update.Title != nil {
		album.Title = *update.Title
	}
	if update.Tracks != nil {
		album.Tracks = *update.Tracks
	}
	return nil
}

func (m *MockStore) DeleteAlbum(ctx context.Context, id string) error {
	if _, ok := m.albums[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.albums, id)
	return nil
}

func (m *MockStore) ClearTrackPicturesByAlbum(ctx context.Context, albumID string) error {
	for _, track := range m.tracks {
		if track.AlbumID == albumID {
			track.Picture = ""
		}
	}
	return nil
}

// MockFileStore records created and removed blob references.
type MockFileStore struct {
	created []string
	removed []string
	nextRef int
}

func (m *MockFileStore) Create(ctx context.Context, kind catalog.FileKind, filename string, r io.Reader) (string, error) {
	m.nextRef++
	ref := fmt.Sprintf("%s/ref-%d", kind, m.nextRef)
	m.created = append(m.created, ref)
	return ref, nil
}

func (m *MockFileStore) Remove(ctx context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	return nil
}

func addUser(store *MockStore, id string) *catalog.User {
	user := &catalog.User{ID: id, Name: id, Email: id + "@test.io", Password: "x"}
	store.users[id] = user
	return user
}

func addAlbum(store *MockStore, title, userID string, createdAt time.Time) *catalog.Album {
	album := &catalog.Album{
		Title:     title,
		Artist:    "someone",
		CreatedAt: createdAt,
		Tracks:    []string{},
		UserID:    userID,
	}
	id, _ := store.InsertAlbum(context.Background(), album)
	album.ID = id
	return album
}

func TestDeleteAlbum_Cascade(t *testing.T) {
	store := NewMockStore()
	files := &MockFileStore{}
	service := NewService(store, files)
	ctx := context.Background()

	owner := addUser(store, "owner")
	fan := addUser(store, "fan")
	album := addAlbum(store, "Kind of Blue", owner.ID, time.Now())
	album.Picture = "image/cover"
	owner.MyAlbums = []string{album.ID}
	fan.FavoredAlbums = []string{album.ID}

	track := &catalog.Track{ID: "t1", Name: "So What", Artist: "someone", Picture: "image/cover", AlbumID: album.ID, UserID: owner.ID}
	store.tracks[track.ID] = track
	album.Tracks = []string{track.ID}

	id, err := service.Delete(ctx, album.ID, owner.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != album.ID {
		t.Errorf("expected deleted id %s, got %s", album.ID, id)
	}
	if _, ok := store.albums[album.ID]; ok {
		t.Error("album record was not deleted")
	}
	if len(owner.MyAlbums) != 0 {
		t.Errorf("album id still in owner's list: %v", owner.MyAlbums)
	}
	if len(fan.FavoredAlbums) != 0 {
		t.Errorf("album id still in fan's favorites: %v", fan.FavoredAlbums)
	}
	if !slices.Contains(files.removed, "image/cover") {
		t.Errorf("album picture was not released: %v", files.removed)
	}

	// Tracks are detached, not deleted: the record survives with its
	// albumId intact and only the picture cleared.
	survivor, ok := store.tracks[track.ID]
	if !ok {
		t.Fatal("track was deleted by the album cascade")
	}
	if survivor.Picture != "" {
		t.Errorf("track picture not cleared, got %q", survivor.Picture)
	}
	if survivor.AlbumID != album.ID {
		t.Errorf("track albumId changed, got %q", survivor.AlbumID)
	}
}

func TestDeleteAlbum_NotOwner(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	owner := addUser(store, "owner")
	addUser(store, "intruder")
	album := addAlbum(store, "Blue Train", owner.ID, time.Now())

	if _, err := service.Delete(ctx, album.ID, "intruder"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := store.albums[album.ID]; !ok {
		t.Error("album was deleted despite ownership mismatch")
	}
}

func TestDetachTrack_AbsentTrack(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	owner := addUser(store, "owner")
	album := addAlbum(store, "Giant Steps", owner.ID, time.Now())
	album.Tracks = []string{"t1"}

	if _, err := service.DetachTrack(ctx, album.ID, "t2", owner.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDetachTrack_RemovesFirstOccurrence(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	owner := addUser(store, "owner")
	album := addAlbum(store, "Giant Steps", owner.ID, time.Now())
	album.Tracks = []string{"t1", "t2", "t1"}

	if _, err := service.DetachTrack(ctx, album.ID, "t1", owner.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"t2", "t1"}
	if !slices.Equal(store.albums[album.ID].Tracks, want) {
		t.Errorf("expected tracks %v, got %v", want, store.albums[album.ID].Tracks)
	}
}

func TestAddFavorite_SecondAddConflicts(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	fan := addUser(store, "fan")
	album := addAlbum(store, "Aja", "someone-else", time.Now())

	if err := service.AddFavorite(ctx, album.ID, fan.ID); err != nil {
		t.Fatalf("first add: expected no error, got %v", err)
	}
	if err := service.AddFavorite(ctx, album.ID, fan.ID); !errors.Is(err, catalog.ErrAlreadyFavored) {
		t.Fatalf("second add: expected ErrAlreadyFavored, got %v", err)
	}
}

func TestRemoveFavorite_Idempotent(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	fan := addUser(store, "fan")
	album := addAlbum(store, "Aja", "someone-else", time.Now())
	fan.FavoredAlbums = []string{album.ID}

	if err := service.RemoveFavorite(ctx, album.ID, fan.ID); err != nil {
		t.Fatalf("first remove: expected no error, got %v", err)
	}
	if err := service.RemoveFavorite(ctx, album.ID, fan.ID); err != nil {
		t.Fatalf("second remove: expected no error, got %v", err)
	}
}

func TestListFiltered_AllKeepsDuplicates(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	user := addUser(store, "u1")
	album := addAlbum(store, "Nightfly", user.ID, time.Now())
	user.FavoredAlbums = []string{album.ID}
	user.MyAlbums = []string{album.ID}

	albums, err := service.ListFiltered(ctx, user.ID, catalog.ScopeAll, catalog.OrderAsc, catalog.OrderDesc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("expected the album twice, got %d results", len(albums))
	}
	if albums[0].ID != album.ID || albums[1].ID != album.ID {
		t.Errorf("unexpected ids: %s, %s", albums[0].ID, albums[1].ID)
	}
}

func TestListFiltered_TitleThenDateTieBreak(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	user := addUser(store, "u1")
	b := addAlbum(store, "B", user.ID, t1)
	a2 := addAlbum(store, "A", user.ID, t2)
	a1 := addAlbum(store, "A", user.ID, t1)
	user.MyAlbums = []string{b.ID, a2.ID, a1.ID}

	albums, err := service.ListFiltered(ctx, user.ID, catalog.ScopeMine, catalog.OrderAsc, catalog.OrderDesc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := []string{albums[0].ID, albums[1].ID, albums[2].ID}
	want := []string{a2.ID, a1.ID, b.ID}
	if !slices.Equal(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestUpdate_MergesTracksWithoutDuplicates(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	owner := addUser(store, "owner")
	album := addAlbum(store, "Kamakiriad", owner.ID, time.Now())
	album.Tracks = []string{"t1", "t2"}

	if _, err := service.Update(ctx, album.ID, owner.ID, UpdateInput{Tracks: []string{"t2", "t3"}}, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"t1", "t2", "t3"}
	if !slices.Equal(store.albums[album.ID].Tracks, want) {
		t.Errorf("expected tracks %v, got %v", want, store.albums[album.ID].Tracks)
	}
}
