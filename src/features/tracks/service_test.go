package tracks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"

	"soundvault/src/catalog"
)

// MockStore is a map-backed catalog.Store for service tests. Methods not
// implemented here panic via the embedded interface. The mutex covers the
// search path, which the service hits from two goroutines at once.
type MockStore struct {
	catalog.Store
	mu          sync.Mutex
	users       map[string]*catalog.User
	albums      map[string]*catalog.Album
	tracks      map[string]*catalog.Track
	comments    map[string]*catalog.Comment
	searchCalls int
	nextID      int
}

func NewMockStore() *MockStore {
	return &MockStore{
		users:    make(map[string]*catalog.User),
		albums:   make(map[string]*catalog.Album),
		tracks:   make(map[string]*catalog.Track),
		comments: make(map[string]*catalog.Comment),
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

func (m *MockStore) GetAlbum(ctx context.Context, id string) (*catalog.Album, error) {
	if album, ok := m.albums[id]; ok {
		return album, nil
	}
	return nil, catalog.ErrNotFound
}

func (m *MockStore) PushAlbumTrack(ctx context.Context, albumID, trackID string) error {
	album, ok := m.albums[albumID]
	if !ok {
		return catalog.ErrNotFound
	}
	album.Tracks = append(album.Tracks, trackID)
	return nil
}

func (m *MockStore) InsertTrack(ctx context.Context, track *catalog.Track) (string, error) {
	id := m.id()
	track.ID = id
	m.tracks[id] = track
	return id, nil
}

func (m *MockStore) GetTrack(ctx context.Context, id string) (*catalog.Track, error) {
	if track, ok := m.tracks[id]; ok {
		return track, nil
	}
	return nil, catalog.ErrNotFound
}

func (m *MockStore) GetOwnedTrack(ctx context.Context, id, userID string) (*catalog.Track, error) {
	track, ok := m.tracks[id]
	if !ok || track.UserID != userID {
		return nil, catalog.ErrNotFound
	}
	return track, nil
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

func (m *MockStore) DeleteTrack(ctx context.Context, id string) error {
	if _, ok := m.tracks[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.tracks, id)
	return nil
}

func (m *MockStore) IncrementListens(ctx context.Context, id string) error {
	track, ok := m.tracks[id]
	if !ok {
		return catalog.ErrNotFound
	}
	track.Listens++
	return nil
}

func (m *MockStore) InsertComment(ctx context.Context, comment *catalog.Comment) (string, error) {
	id := m.id()
	comment.ID = id
	m.comments[id] = comment
	return id, nil
}

func (m *MockStore) PushTrackComment(ctx context.Context, trackID, commentID string) error {
	track, ok := m.tracks[trackID]
	if !ok {
		return catalog.ErrNotFound
	}
	track.Comments = append(track.Comments, commentID)
	return nil
}

func (m *MockStore) SearchTracks(ctx context.Context, text string) ([]*catalog.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	var out []*catalog.Track
	for _, track := range m.tracks {
		if containsFold(track.Name, text) || containsFold(track.Artist, text) {
			out = append(out, track)
		}
	}
	return out, nil
}

func (m *MockStore) SearchAlbums(ctx context.Context, text string) ([]*catalog.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	var out []*catalog.Album
	for _, album := range m.albums {
		if containsFold(album.Title, text) || containsFold(album.Artist, text) {
			out = append(out, album)
		}
	}
	return out, nil
}

func (m *MockStore) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
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

func addTrack(store *MockStore, name, artist, userID string) *catalog.Track {
	track := &catalog.Track{Name: name, Artist: artist, UserID: userID}
	id, _ := store.InsertTrack(context.Background(), track)
	track.ID = id
	return track
}

func TestDeleteTrack_LeavesDanglingAlbumReference(t *testing.T) {
	store := NewMockStore()
	files := &MockFileStore{}
	service := NewService(store, files)
	ctx := context.Background()

	owner := addUser(store, "owner")
	fan := addUser(store, "fan")
	track := addTrack(store, "Peg", "someone", owner.ID)
	track.Audio = "audio/peg"
	track.Picture = "image/peg"
	owner.MyTracks = []string{track.ID}
	fan.FavoredTracks = []string{track.ID}

	album := &catalog.Album{ID: "a1", Title: "Aja", UserID: owner.ID, Tracks: []string{track.ID}}
	store.albums[album.ID] = album
	track.AlbumID = album.ID

	if _, err := service.Delete(ctx, track.ID, owner.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := store.tracks[track.ID]; ok {
		t.Error("track record was not deleted")
	}
	if len(owner.MyTracks) != 0 {
		t.Errorf("track id still in owner's list: %v", owner.MyTracks)
	}
	if len(fan.FavoredTracks) != 0 {
		t.Errorf("track id still in fan's favorites: %v", fan.FavoredTracks)
	}
	if !slices.Contains(files.removed, "audio/peg") || !slices.Contains(files.removed, "image/peg") {
		t.Errorf("blob references not released: %v", files.removed)
	}

	// The parent album keeps the now-dangling track id.
	if !slices.Contains(album.Tracks, track.ID) {
		t.Errorf("album track list was modified: %v", album.Tracks)
	}
}

func TestDeleteTrack_NotOwner(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	owner := addUser(store, "owner")
	addUser(store, "intruder")
	track := addTrack(store, "Peg", "someone", owner.ID)

	if _, err := service.Delete(ctx, track.ID, "intruder"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch_EmptyTextSkipsStore(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})

	result, err := service.Search(context.Background(), "", SearchAll)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Tracks) != 0 || len(result.Albums) != 0 {
		t.Errorf("expected empty result, got %d tracks, %d albums", len(result.Tracks), len(result.Albums))
	}
	if store.searchCount() != 0 {
		t.Errorf("expected no store calls, got %d", store.searchCount())
	}
}

func TestSearch_ScopeAllHitsBothCollections(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})

	addTrack(store, "Deacon Blues", "someone", "u1")
	store.albums["a1"] = &catalog.Album{ID: "a1", Title: "Deacon's Hits", Artist: "someone"}

	result, err := service.Search(context.Background(), "deacon", SearchAll)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Tracks) != 1 || len(result.Albums) != 1 {
		t.Errorf("expected 1 track and 1 album, got %d and %d", len(result.Tracks), len(result.Albums))
	}
	if store.searchCount() != 2 {
		t.Errorf("expected 2 store calls, got %d", store.searchCount())
	}
}

func TestParseSearchScope_UnknownMeansAll(t *testing.T) {
	cases := map[string]SearchScope{
		"tracks":  SearchTracks,
		"albums":  SearchAlbums,
		"all":     SearchAll,
		"":        SearchAll,
		"garbage": SearchAll,
	}
	for in, want := range cases {
		if got := ParseSearchScope(in); got != want {
			t.Errorf("ParseSearchScope(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSearch_UnknownScopeRunsDualQuery(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})

	addTrack(store, "Deacon Blues", "someone", "u1")
	store.albums["a1"] = &catalog.Album{ID: "a1", Title: "Deacon's Hits", Artist: "someone"}

	result, err := service.Search(context.Background(), "deacon", ParseSearchScope("garbage"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Tracks) != 1 || len(result.Albums) != 1 {
		t.Errorf("expected 1 track and 1 album, got %d and %d", len(result.Tracks), len(result.Albums))
	}
	if store.searchCount() != 2 {
		t.Errorf("expected 2 store calls, got %d", store.searchCount())
	}
}

func TestSearch_ScopeTracksOnly(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})

	addTrack(store, "Deacon Blues", "someone", "u1")
	store.albums["a1"] = &catalog.Album{ID: "a1", Title: "Deacon's Hits", Artist: "someone"}

	result, err := service.Search(context.Background(), "deacon", SearchTracks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Tracks) != 1 {
		t.Errorf("expected 1 track, got %d", len(result.Tracks))
	}
	if len(result.Albums) != 0 {
		t.Errorf("expected no albums, got %d", len(result.Albums))
	}
	if store.searchCount() != 1 {
		t.Errorf("expected 1 store call, got %d", store.searchCount())
	}
}

func TestAddComment_AppendsToTrack(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	addUser(store, "fan")
	track := addTrack(store, "Peg", "someone", "owner")

	comment, err := service.AddComment(ctx, track.ID, "fan", "great solo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if comment.ID == "" {
		t.Fatal("expected comment id to be set")
	}
	if !slices.Contains(track.Comments, comment.ID) {
		t.Errorf("comment id not appended to track: %v", track.Comments)
	}
}

func TestListen_IncrementsCounter(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	track := addTrack(store, "Peg", "someone", "owner")

	if err := service.Listen(ctx, track.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := service.Listen(ctx, track.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if track.Listens != 2 {
		t.Errorf("expected 2 listens, got %d", track.Listens)
	}
}

func TestListFiltered_AllKeepsDuplicates(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	user := addUser(store, "u1")
	track := addTrack(store, "Peg", "someone", user.ID)
	user.FavoredTracks = []string{track.ID}
	user.MyTracks = []string{track.ID}

	tracks, err := service.ListFiltered(ctx, user.ID, catalog.ScopeAll, catalog.OrderAsc, catalog.OrderAsc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected the track twice, got %d results", len(tracks))
	}
}

func TestListFiltered_NameThenArtistTieBreak(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	user := addUser(store, "u1")
	tb := addTrack(store, "B", "x", user.ID)
	ta2 := addTrack(store, "A", "z", user.ID)
	ta1 := addTrack(store, "A", "y", user.ID)
	user.MyTracks = []string{tb.ID, ta2.ID, ta1.ID}

	tracks, err := service.ListFiltered(ctx, user.ID, catalog.ScopeMine, catalog.OrderAsc, catalog.OrderDesc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := []string{tracks[0].ID, tracks[1].ID, tracks[2].ID}
	want := []string{ta2.ID, ta1.ID, tb.ID}
	if !slices.Equal(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
}

func TestCreate_RequiresAudio(t *testing.T) {
	store := NewMockStore()
	service := NewService(store, &MockFileStore{})
	ctx := context.Background()

	addUser(store, "owner")

	if _, err := service.Create(ctx, "owner", CreateInput{Name: "Peg", Artist: "someone"}, nil, nil); err == nil {
		t.Fatal("expected an error for missing audio")
	}
}

func TestCreate_LinksAlbumAndOwner(t *testing.T) {
	store := NewMockStore()
	files := &MockFileStore{}
	service := NewService(store, files)
	ctx := context.Background()

	owner := addUser(store, "owner")
	album := &catalog.Album{ID: "a1", Title: "Aja", UserID: owner.ID, Picture: "image/aja", Tracks: []string{}}
	store.albums[album.ID] = album

	audio := &catalog.Upload{Filename: "peg.mp3", Data: []byte("not really audio")}
	track, err := service.Create(ctx, owner.ID, CreateInput{Name: "Peg", Artist: "someone", AlbumID: album.ID}, nil, audio)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Contains(owner.MyTracks, track.ID) {
		t.Errorf("track id not in owner's list: %v", owner.MyTracks)
	}
	if !slices.Contains(album.Tracks, track.ID) {
		t.Errorf("track id not in album's list: %v", album.Tracks)
	}
	// No picture given: the album's picture is inherited.
	if track.Picture != album.Picture {
		t.Errorf("expected inherited picture %q, got %q", album.Picture, track.Picture)
	}
}
