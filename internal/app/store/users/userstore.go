package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/scholarhub/internal/app/system/normalize"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errMissingName    = errors.New("full name is required")
	errMissingEmail   = errors.New("email is required")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. The caller supplies
// the password hash; this store never sees plaintext credentials.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)

	if u.FullName == "" {
		return models.User{}, errMissingName
	}
	if u.Email == "" {
		return models.User{}, errMissingEmail
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateRoles replaces the user's role flags. Role mutation happens only
// through this path; nothing else writes the roles field.
// Returns mongo.ErrNoDocuments if the user does not exist.
func (s *Store) UpdateRoles(ctx context.Context, id primitive.ObjectID, roles models.Roles) (*models.User, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"roles": roles, "updated_at": time.Now().UTC()}},
	)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// FindEditorInChief returns one user holding the editor-in-chief role, or
// mongo.ErrNoDocuments when none exists. The notification path treats the
// latter as a non-error.
func (s *Store) FindEditorInChief(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"roles.editor_in_chief": true}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleCounts holds per-role user totals for the dashboard.
type RoleCounts struct {
	Total     int64
	Authors   int64
	Reviewers int64
	Editors   int64
}

// CountByRoles computes dashboard user totals.
func (s *Store) CountByRoles(ctx context.Context) (RoleCounts, error) {
	var rc RoleCounts
	var err error

	if rc.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return RoleCounts{}, err
	}
	if rc.Authors, err = s.c.CountDocuments(ctx, bson.M{"roles.author": true}); err != nil {
		return RoleCounts{}, err
	}
	if rc.Reviewers, err = s.c.CountDocuments(ctx, bson.M{"roles.reviewer": true}); err != nil {
		return RoleCounts{}, err
	}
	if rc.Editors, err = s.c.CountDocuments(ctx, bson.M{"roles.editor": true}); err != nil {
		return RoleCounts{}, err
	}
	return rc, nil
}
