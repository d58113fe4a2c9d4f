package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"soundvault/src/catalog"
)

// MongoStore is a MongoDB implementation of the catalog.Store interface.
// It enforces no cross-collection integrity; cascades live in the services.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and prepares the catalog collections.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close disconnects from the store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"albums": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"tracks": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "albumId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "trackId", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// --- Collection accessors ---

func (s *MongoStore) users() *mongo.Collection    { return s.db.Collection("users") }
func (s *MongoStore) albums() *mongo.Collection   { return s.db.Collection("albums") }
func (s *MongoStore) tracks() *mongo.Collection   { return s.db.Collection("tracks") }
func (s *MongoStore) comments() *mongo.Collection { return s.db.Collection("comments") }

// --- Document types ---

type userDoc struct {
	ID            bson.ObjectID   `bson:"_id"`
	Name          string          `bson:"name"`
	Email         string          `bson:"email"`
	Password      string          `bson:"password"`
	Avatar        string          `bson:"avatar"`
	FavoredTracks []bson.ObjectID `bson:"favoredTracks"`
	FavoredAlbums []bson.ObjectID `bson:"favoredAlbums"`
	MyTracks      []bson.ObjectID `bson:"myTracks"`
	MyAlbums      []bson.ObjectID `bson:"myAlbums"`
}

type albumDoc struct {
	ID        bson.ObjectID   `bson:"_id"`
	Title     string          `bson:"title"`
	Genre     string          `bson:"genre"`
	Artist    string          `bson:"artist"`
	Year      int             `bson:"year"`
	CreatedAt time.Time       `bson:"createdAt"`
	Picture   string          `bson:"picture"`
	Tracks    []bson.ObjectID `bson:"tracks"`
	UserID    bson.ObjectID   `bson:"userId"`
}

type trackDoc struct {
	ID        bson.ObjectID   `bson:"_id"`
	Name      string          `bson:"name"`
	Artist    string          `bson:"artist"`
	Text      string          `bson:"text"`
	Listens   int             `bson:"listens"`
	CreatedAt time.Time       `bson:"createdAt"`
	Picture   string          `bson:"picture"`
	Audio     string          `bson:"audio"`
	Comments  []bson.ObjectID `bson:"comments"`
	UserID    bson.ObjectID   `bson:"userId"`
	AlbumID   *bson.ObjectID  `bson:"albumId,omitempty"`
}

type commentDoc struct {
	ID      bson.ObjectID `bson:"_id"`
	Text    string        `bson:"text"`
	TrackID bson.ObjectID `bson:"trackId"`
	UserID  bson.ObjectID `bson:"userId"`
}

// --- ID helpers ---

func oid(id string) (bson.ObjectID, error) {
	parsed, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %s", catalog.ErrInvalidID, id)
	}
	return parsed, nil
}

func oids(ids []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		parsed, err := oid(id)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func hexList(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// --- Converters ---

func (d *userDoc) toCatalog() *catalog.User {
	return &catalog.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Password:      d.Password,
		Avatar:        d.Avatar,
		FavoredTracks: hexList(d.FavoredTracks),
		FavoredAlbums: hexList(d.FavoredAlbums),
		MyTracks:      hexList(d.MyTracks),
		MyAlbums:      hexList(d.MyAlbums),
	}
}

func (d *albumDoc) toCatalog() *catalog.Album {
	return &catalog.Album{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Genre:     d.Genre,
		Artist:    d.Artist,
		Year:      d.Year,
		CreatedAt: d.CreatedAt,
		Picture:   d.Picture,
		Tracks:    hexList(d.Tracks),
		UserID:    d.UserID.Hex(),
	}
}

func (d *trackDoc) toCatalog() *catalog.Track {
	t := &catalog.Track{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Artist:    d.Artist,
		Text:      d.Text,
		Listens:   d.Listens,
		CreatedAt: d.CreatedAt,
		Picture:   d.Picture,
		Audio:     d.Audio,
		Comments:  hexList(d.Comments),
		UserID:    d.UserID.Hex(),
	}
	if d.AlbumID != nil {
		t.AlbumID = d.AlbumID.Hex()
	}
	return t
}

func (d *commentDoc) toCatalog() *catalog.Comment {
	return &catalog.Comment{
		ID:      d.ID.Hex(),
		Text:    d.Text,
		TrackID: d.TrackID.Hex(),
		UserID:  d.UserID.Hex(),
	}
}

// substringFilter builds a case-insensitive substring match. The text is
// quoted so regex metacharacters in user input match literally.
func substringFilter(field, text string) bson.M {
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}}
}

// --- User methods ---

func (s *MongoStore) InsertUser(ctx context.Context, user *catalog.User) (string, error) {
	doc := userDoc{
		ID:            bson.NewObjectID(),
		Name:          user.Name,
		Email:         user.Email,
		Password:      user.Password,
		Avatar:        user.Avatar,
		FavoredTracks: []bson.ObjectID{},
		FavoredAlbums: []bson.ObjectID{},
		MyTracks:      []bson.ObjectID{},
		MyAlbums:      []bson.ObjectID{},
	}
	if _, err := s.users().InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*catalog.User, error) {
	parsed, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := s.users().FindOne(ctx, bson.M{"_id": parsed}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*catalog.User, error) {
	var doc userDoc
	if err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id string, update catalog.UserUpdate) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": parsed}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// --- Membership methods ---

// AddToSet is atomic: a concurrent duplicate add loses at the store rather
// than surviving a read-modify-write race.
func (s *MongoStore) AddToSet(ctx context.Context, userID string, set catalog.UserSet, id string) error {
	uid, err := oid(userID)
	if err != nil {
		return err
	}
	ref, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$addToSet": bson.M{string(set): ref}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return catalog.ErrAlreadyFavored
	}
	return nil
}

func (s *MongoStore) PullFromSet(ctx context.Context, userID string, set catalog.UserSet, id string) error {
	uid, err := oid(userID)
	if err != nil {
		return err
	}
	ref, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$pull": bson.M{string(set): ref}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MongoStore) PullFromAllSets(ctx context.Context, set catalog.UserSet, id string) error {
	ref, err := oid(id)
	if err != nil {
		return err
	}
	_, err = s.users().UpdateMany(ctx,
		bson.M{string(set): ref},
		bson.M{"$pull": bson.M{string(set): ref}})
	return err
}

// --- Album methods ---

func (s *MongoStore) InsertAlbum(ctx context.Context, album *catalog.Album) (string, error) {
	owner, err := oid(album.UserID)
	if err != nil {
		return "", err
	}
	trackIDs, err := oids(album.Tracks)
	if err != nil {
		return "", err
	}
	doc := albumDoc{
		ID:        bson.NewObjectID(),
		Title:     album.Title,
		Genre:     album.Genre,
		Artist:    album.Artist,
		Year:      album.Year,
		CreatedAt: album.CreatedAt,
		Picture:   album.Picture,
		Tracks:    trackIDs,
		UserID:    owner,
	}
	if doc.Tracks == nil {
		doc.Tracks = []bson.ObjectID{}
	}
	if _, err := s.albums().InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) GetAlbum(ctx context.Context, id string) (*catalog.Album, error) {
	parsed, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc albumDoc
	if err := s.albums().FindOne(ctx, bson.M{"_id": parsed}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

// GetOwnedAlbum is the owner-scoped lookup: a missing album and an album
// owned by someone else are indistinguishable.
func (s *MongoStore) GetOwnedAlbum(ctx context.Context, id string, userID string) (*catalog.Album, error) {
	parsed, err := oid(id)
	if err != nil {
		return nil, err
	}
	owner, err := oid(userID)
	if err != nil {
		return nil, err
	}
	var doc albumDoc
	if err := s.albums().FindOne(ctx, bson.M{"_id": parsed, "userId": owner}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

func (s *MongoStore) GetAlbums(ctx context.Context, limit, offset int) ([]*catalog.Album, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.albums().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAlbums(ctx, cur)
}

func (s *MongoStore) GetUserAlbums(ctx context.Context, userID string, limit, offset int) ([]*catalog.Album, error) {
	owner, err := oid(userID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	cur, err := s.albums().Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAlbums(ctx, cur)
}

func (s *MongoStore) GetAlbumsByIDs(ctx context.Context, ids []string) ([]*catalog.Album, error) {
	if len(ids) == 0 {
		return []*catalog.Album{}, nil
	}
	parsed, err := oids(ids)
	if err != nil {
		return nil, err
	}
	cur, err := s.albums().Find(ctx, bson.M{"_id": bson.M{"$in": parsed}})
	if err != nil {
		return nil, err
	}
	return decodeAlbums(ctx, cur)
}

func (s *MongoStore) SearchAlbums(ctx context.Context, text string) ([]*catalog.Album, error) {
	filter := bson.M{"$or": bson.A{
		substringFilter("title", text),
		substringFilter("artist", text),
	}}
	cur, err := s.albums().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeAlbums(ctx, cur)
}

func (s *MongoStore) UpdateAlbum(ctx context.Context, id string, update catalog.AlbumUpdate) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Genre != nil {
		set["genre"] = *update.Genre
	}
	if update.Artist != nil {
		set["artist"] = *update.Artist
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.Picture != nil {
		set["picture"] = *update.Picture
	}
	if update.Tracks != nil {
		trackIDs, err := oids(*update.Tracks)
		if err != nil {
			return err
		}
		if trackIDs == nil {
			trackIDs = []bson.ObjectID{}
		}
		set["tracks"] = trackIDs
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.albums().UpdateOne(ctx, bson.M{"_id": parsed}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MongoStore) PushAlbumTrack(ctx context.Context, albumID, trackID string) error {
	album, err := oid(albumID)
	if err != nil {
		return err
	}
	track, err := oid(trackID)
	if err != nil {
		return err
	}
	res, err := s.albums().UpdateOne(ctx, bson.M{"_id": album}, bson.M{"$addToSet": bson.M{"tracks": track}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteAlbum(ctx context.Context, id string) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.albums().DeleteOne(ctx, bson.M{"_id": parsed})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// --- Track methods ---

func (s *MongoStore) InsertTrack(ctx context.Context, track *catalog.Track) (string, error) {
	owner, err := oid(track.UserID)
	if err != nil {
		return "", err
	}
	doc := trackDoc{
		ID:        bson.NewObjectID(),
		Name:      track.Name,
		Artist:    track.Artist,
		Text:      track.Text,
		Listens:   track.Listens,
		CreatedAt: track.CreatedAt,
		Picture:   track.Picture,
		Audio:     track.Audio,
		Comments:  []bson.ObjectID{},
		UserID:    owner,
	}
	if track.AlbumID != "" {
		album, err := oid(track.AlbumID)
		if err != nil {
			return "", err
		}
		doc.AlbumID = &album
	}
	if _, err := s.tracks().InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) GetTrack(ctx context.Context, id string) (*catalog.Track, error) {
	parsed, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc trackDoc
	if err := s.tracks().FindOne(ctx, bson.M{"_id": parsed}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

func (s *MongoStore) GetOwnedTrack(ctx context.Context, id string, userID string) (*catalog.Track, error) {
	parsed, err := oid(id)
	if err != nil {
		return nil, err
	}
	owner, err := oid(userID)
	if err != nil {
		return nil, err
	}
	var doc trackDoc
	if err := s.tracks().FindOne(ctx, bson.M{"_id": parsed, "userId": owner}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return doc.toCatalog(), nil
}

func (s *MongoStore) GetTracks(ctx context.Context, limit, offset int) ([]*catalog.Track, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.tracks().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeTracks(ctx, cur)
}

func (s *MongoStore) GetUserTracks(ctx context.Context, userID string, limit, offset int) ([]*catalog.Track, error) {
	owner, err := oid(userID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.tracks().Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, err
	}
	return decodeTracks(ctx, cur)
}

func (s *MongoStore) GetTracksByIDs(ctx context.Context, ids []string) ([]*catalog.Track, error) {
	if len(ids) == 0 {
		return []*catalog.Track{}, nil
	}
	parsed, err := oids(ids)
	if err != nil {
		return nil, err
	}
	cur, err := s.tracks().Find(ctx, bson.M{"_id": bson.M{"$in": parsed}})
	if err != nil {
		return nil, err
	}
	return decodeTracks(ctx, cur)
}

func (s *MongoStore) SearchTracks(ctx context.Context, text string) ([]*catalog.Track, error) {
	filter := bson.M{"$or": bson.A{
		substringFilter("name", text),
		substringFilter("artist", text),
	}}
	cur, err := s.tracks().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeTracks(ctx, cur)
}

func (s *MongoStore) UpdateTrack(ctx context.Context, id string, update catalog.TrackUpdate) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Artist != nil {
		set["artist"] = *update.Artist
	}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Picture != nil {
		set["picture"] = *update.Picture
	}
	if update.AlbumID != nil {
		album, err := oid(*update.AlbumID)
		if err != nil {
			return err
		}
		set["albumId"] = album
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.tracks().UpdateOne(ctx, bson.M{"_id": parsed}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MongoStore) PushTrackComment(ctx context.Context, trackID, commentID string) error {
	track, err := oid(trackID)
	if err != nil {
		return err
	}
	comment, err := oid(commentID)
	if err != nil {
		return err
	}
	res, err := s.tracks().UpdateOne(ctx, bson.M{"_id": track}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// IncrementListens bumps the listen counter atomically instead of
// load-increment-save, so concurrent listens cannot lose updates.
func (s *MongoStore) IncrementListens(ctx context.Context, id string) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.tracks().UpdateOne(ctx, bson.M{"_id": parsed}, bson.M{"$inc": bson.M{"listens": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// ClearTrackPicturesByAlbum blanks the picture of every track referencing the
// album. The albumId reference itself is left in place.
func (s *MongoStore) ClearTrackPicturesByAlbum(ctx context.Context, albumID string) error {
	album, err := oid(albumID)
	if err != nil {
		return err
	}
	_, err = s.tracks().UpdateMany(ctx,
		bson.M{"albumId": album},
		bson.M{"$set": bson.M{"picture": ""}})
	return err
}

func (s *MongoStore) DeleteTrack(ctx context.Context, id string) error {
	parsed, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.tracks().DeleteOne(ctx, bson.M{"_id": parsed})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// --- Comment methods ---

func (s *MongoStore) InsertComment(ctx context.Context, comment *catalog.Comment) (string, error) {
	track, err := oid(comment.TrackID)
	if err != nil {
		return "", err
	}
	author, err := oid(comment.UserID)
	if err != nil {
		return "", err
	}
	doc := commentDoc{
		ID:      bson.NewObjectID(),
		Text:    comment.Text,
		TrackID: track,
		UserID:  author,
	}
	if _, err := s.comments().InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) GetCommentsByIDs(ctx context.Context, ids []string) ([]*catalog.Comment, error) {
	if len(ids) == 0 {
		return []*catalog.Comment{}, nil
	}
	parsed, err := oids(ids)
	if err != nil {
		return nil, err
	}
	cur, err := s.comments().Find(ctx, bson.M{"_id": bson.M{"$in": parsed}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*catalog.Comment
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toCatalog())
	}
	return out, cur.Err()
}

// --- Cursor decoding ---

func decodeAlbums(ctx context.Context, cur *mongo.Cursor) ([]*catalog.Album, error) {
	defer cur.Close(ctx)
	var out []*catalog.Album
	for cur.Next(ctx) {
		var doc albumDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toCatalog())
	}
	return out, cur.Err()
}

func decodeTracks(ctx context.Context, cur *mongo.Cursor) ([]*catalog.Track, error) {
	defer cur.Close(ctx)
	var out []*catalog.Track
	for cur.Next(ctx) {
		var doc trackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toCatalog())
	}
	return out, cur.Err()
}
