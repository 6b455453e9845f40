// internal/app/store/manuscripts/manuscriptstore.go
package manuscriptstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/scholarhub/internal/app/system/charges"
	"github.com/dalemusser/scholarhub/internal/app/system/normalize"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("manuscripts")}
}

var (
	errMissingTitle    = errors.New("title is required")
	errMissingAbstract = errors.New("abstract is required")
	errMissingDomain   = errors.New("domain is required")
	errMissingFile     = errors.New("manuscript file is required")
)

// NewSubmission holds the validated inputs for creating a manuscript.
type NewSubmission struct {
	Title    string
	Abstract string
	Keywords []string
	Domain   string
	File     models.FileDescriptor
	// SubmittedBy becomes the sole, corresponding author.
	SubmittedBy primitive.ObjectID
}

// Create inserts a manuscript in status submitted. The submitting user
// becomes the single corresponding author with order 1, and the charge
// breakdown is derived from the file's page count.
func (s *Store) Create(ctx context.Context, sub NewSubmission) (models.Manuscript, error) {
	title := normalize.Name(sub.Title)
	if title == "" {
		return models.Manuscript{}, errMissingTitle
	}
	if normalize.Name(sub.Abstract) == "" {
		return models.Manuscript{}, errMissingAbstract
	}
	if normalize.Name(sub.Domain) == "" {
		return models.Manuscript{}, errMissingDomain
	}
	if sub.File.Key == "" {
		return models.Manuscript{}, errMissingFile
	}

	now := time.Now().UTC()
	m := models.Manuscript{
		ID:       primitive.NewObjectID(),
		Title:    title,
		TitleCI:  text.Fold(title),
		Abstract: sub.Abstract,
		Keywords: sub.Keywords,
		Domain:   sub.Domain,
		Authors: []models.ManuscriptAuthor{
			{UserID: sub.SubmittedBy, IsCorresponding: true, Order: 1},
		},
		CorrespondingAuthor: sub.SubmittedBy,
		File:                sub.File,
		Charges:             charges.Compute(sub.File.Pages),
		Status:              models.StatusSubmitted,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Manuscript{}, err
	}
	return m, nil
}

// GetByID loads a manuscript. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Manuscript, error) {
	var m models.Manuscript
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByAuthor returns manuscripts where the user appears in the author
// list, most recently created first.
func (s *Store) ListByAuthor(ctx context.Context, userID primitive.ObjectID) ([]models.Manuscript, error) {
	return s.list(ctx, bson.M{"authors.user_id": userID})
}

// ListAll returns every manuscript, most recently created first. Editorial
// roles use this for their accessible-manuscripts view.
func (s *Store) ListAll(ctx context.Context) ([]models.Manuscript, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Manuscript, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Manuscript
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StatusCounts holds per-status manuscript totals for the dashboard.
type StatusCounts struct {
	Total       int64
	Submitted   int64
	UnderReview int64
}

// CountByStatus computes dashboard manuscript totals.
func (s *Store) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var sc StatusCounts
	var err error

	if sc.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return StatusCounts{}, err
	}
	if sc.Submitted, err = s.c.CountDocuments(ctx, bson.M{"status": models.StatusSubmitted}); err != nil {
		return StatusCounts{}, err
	}
	if sc.UnderReview, err = s.c.CountDocuments(ctx, bson.M{"status": models.StatusUnderReview}); err != nil {
		return StatusCounts{}, err
	}
	return sc, nil
}

// MarkUnderReview transitions a manuscript from submitted to under_review.
// Idempotent: a manuscript already under review is left untouched and is
// not an error (later assignments for other reviewers hit this path).
func (s *Store) MarkUnderReview(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": []string{models.StatusSubmitted, models.StatusUnderReview}}},
		bson.M{"$set": bson.M{"status": models.StatusUnderReview, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
