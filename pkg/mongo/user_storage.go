package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/JhonRainbow6/WebProject/pkg/auth"
)

// UsersCollection is the collection UserStorage reads and writes.
const UsersCollection = "users"

// Index names. duplicateField maps them back to document fields.
const (
	indexEmail    = "email_unique"
	indexGoogleID = "googleId_unique_sparse"
	indexSteamID  = "steamId_unique_sparse"
)

var indexFields = map[string]string{
	indexEmail:    auth.FieldEmail,
	indexGoogleID: auth.FieldGoogleID,
	indexSteamID:  auth.FieldSteamID,
}

var (
	indexNamePattern = regexp.MustCompile(`index: (\S+)`)
	dupKeyPattern    = regexp.MustCompile(`dup key: \{ ?"?(\w+)"?\s*:`)
)

// userDoc is the stored shape of auth.User. Provider ids are omitted when
// empty so the sparse unique indexes ignore unlinked accounts.
type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password,omitempty"`
	GoogleID     string    `bson:"googleId,omitempty"`
	SteamID      string    `bson:"steamId,omitempty"`
	ProfileImage string    `bson:"profileImage,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toDoc(u *auth.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleID:     u.GoogleID,
		SteamID:      u.SteamID,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toUser() *auth.User {
	return &auth.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		GoogleID:     d.GoogleID,
		SteamID:      d.SteamID,
		ProfileImage: d.ProfileImage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserStorage implements auth.Storage on a MongoDB collection.
type UserStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ auth.Storage = (*UserStorage)(nil)

func NewUserStorage(db *mongo.Database) *UserStorage {
	return &UserStorage{
		coll: db.Collection(UsersCollection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the unique email index and the sparse unique
// googleId and steamId indexes. It is safe to call on every start.
func (s *UserStorage) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(indexEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetName(indexGoogleID).SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "steamId", Value: 1}},
			Options: options.Index().SetName(indexSteamID).SetUnique(true).SetSparse(true),
		},
	}

	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("mongo: create user indexes: %w", err)
	}
	return nil
}

func (s *UserStorage) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *UserStorage) FindByGoogleID(ctx context.Context, googleID string) (*auth.User, error) {
	if googleID == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "googleId", Value: googleID}})
}

func (s *UserStorage) FindBySteamID(ctx context.Context, steamID string) (*auth.User, error) {
	if steamID == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "steamId", Value: steamID}})
}

func (s *UserStorage) findOne(ctx context.Context, filter bson.D) (*auth.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("mongo: find user: %w", err)
	}
	return doc.toUser(), nil
}

// Create inserts user, filling zero timestamps.
func (s *UserStorage) Create(ctx context.Context, user *auth.User) error {
	now := s.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	if _, err := s.coll.InsertOne(ctx, toDoc(user)); err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Update applies upd atomically and returns the stored result.
func (s *UserStorage) Update(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	if upd.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, buildUpdate(upd, s.now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, translateWriteError(err)
	}
	return doc.toUser(), nil
}

// buildUpdate turns set fields into $set and empty strings into $unset,
// keeping cleared provider ids out of the sparse indexes.
func buildUpdate(upd auth.UserUpdate, now time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: now}}
	unset := bson.D{}

	add := func(field string, v *string) {
		switch {
		case v == nil:
		case *v == "":
			unset = append(unset, bson.E{Key: field, Value: ""})
		default:
			set = append(set, bson.E{Key: field, Value: *v})
		}
	}
	add("password", upd.PasswordHash)
	add("googleId", upd.GoogleID)
	add("steamId", upd.SteamID)
	add("profileImage", upd.ProfileImage)

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

// translateWriteError maps E11000 to *auth.DuplicateKeyError so callers never
// see driver text.
func translateWriteError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongo: write user: %w", err)
	}
	return &auth.DuplicateKeyError{Field: duplicateField(err)}
}

// duplicateField extracts the colliding field from a duplicate key error,
// first by index name and then from the "dup key" document.
func duplicateField(err error) string {
	msg := err.Error()

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				msg = e.Message
				break
			}
		}
	}

	if m := indexNamePattern.FindStringSubmatch(msg); m != nil {
		if field, ok := indexFields[m[1]]; ok {
			return field
		}
	}
	if m := dupKeyPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	for _, field := range []string{auth.FieldGoogleID, auth.FieldSteamID, auth.FieldEmail} {
		if strings.Contains(msg, field) {
			return field
		}
	}
	return ""
}
