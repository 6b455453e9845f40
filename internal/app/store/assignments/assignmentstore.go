// internal/app/store/assignments/assignmentstore.go
package assignmentstore

// The assignment store is the sole writer of assignment lifecycle fields.
// The one-active-assignment-per-(manuscript,reviewer) invariant is
// enforced by the partial unique index uniq_assign_pair_active (see
// internal/app/system/indexes), not by a check-then-insert in request
// code: two concurrent creates for the same pair both reach InsertOne and
// the index rejects the loser with a duplicate-key error.

import (
	"context"
	"errors"
	"time"

	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	"github.com/dalemusser/scholarhub/internal/app/system/txn"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c           *mongo.Collection
	manuscripts *manuscriptstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("assignments"),
		manuscripts: manuscriptstore.New(db),
	}
}

var (
	// ErrDuplicateAssignment is returned when the (manuscript, reviewer)
	// pair already has a pending or accepted assignment.
	ErrDuplicateAssignment = errors.New("reviewer already assigned to this manuscript")
	// ErrNotPending is returned when accept/decline targets an assignment
	// that has already left the pending state.
	ErrNotPending = errors.New("assignment is not pending")
	// ErrNotActive is returned when cancel targets an assignment that is
	// neither pending nor accepted.
	ErrNotActive = errors.New("assignment is not active")
	// ErrManuscriptClosed is returned when Assign targets a manuscript
	// that is in a terminal status and cannot enter review.
	ErrManuscriptClosed = errors.New("manuscript is not open for review")
)

// GetByID loads an assignment. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindActive returns the active (pending or accepted) assignment for the
// pair, or mongo.ErrNoDocuments.
func (s *Store) FindActive(ctx context.Context, manuscriptID, reviewerID primitive.ObjectID) (*models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{
		"manuscript_id": manuscriptID,
		"reviewer_id":   reviewerID,
		"active":        true,
	}).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CountActive returns how many active assignments exist for the pair.
// Test hook for the exclusivity invariant.
func (s *Store) CountActive(ctx context.Context, manuscriptID, reviewerID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"manuscript_id": manuscriptID,
		"reviewer_id":   reviewerID,
		"active":        true,
	})
}

// ListByReviewer returns a reviewer's assignments, newest first.
func (s *Store) ListByReviewer(ctx context.Context, reviewerID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"reviewer_id": reviewerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOverduePending returns active pending assignments whose due date has
// passed. Used by the reminder sweep job.
func (s *Store) ListOverduePending(ctx context.Context, asOf time.Time) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"status":   models.AssignmentPending,
		"due_date": bson.M{"$lt": asOf},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Assign creates a pending assignment for the pair and transitions the
// manuscript to under_review, both-or-neither.
//
// On replica sets the two writes share a multi-document transaction. On
// deployments without transaction support the writes run sequentially and
// a failed status transition is compensated by deleting the just-created
// assignment, so no half-applied state survives either way. The manuscript
// transition is idempotent, so a second reviewer on an already-under-review
// manuscript goes through the same path.
func (s *Store) Assign(ctx context.Context, manuscriptID, reviewerID, editorID primitive.ObjectID, dueDate time.Time) (models.Assignment, error) {
	now := time.Now().UTC()
	a := models.Assignment{
		ID:           primitive.NewObjectID(),
		ManuscriptID: manuscriptID,
		ReviewerID:   reviewerID,
		AssignedBy:   editorID,
		DueDate:      dueDate,
		Status:       models.AssignmentPending,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	insertAndTransition := func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, a); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateAssignment
			}
			return err
		}
		if err := s.manuscripts.MarkUnderReview(ctx, manuscriptID); err != nil {
			// MatchedCount 0: the manuscript is absent or in a terminal
			// status, so it cannot enter review.
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrManuscriptClosed
			}
			return err
		}
		return nil
	}

	fallback := func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, a); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateAssignment
			}
			return err
		}
		if err := s.manuscripts.MarkUnderReview(ctx, manuscriptID); err != nil {
			// Compensate so the assignment does not exist without the
			// status transition.
			_, _ = s.c.DeleteOne(ctx, bson.M{"_id": a.ID})
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrManuscriptClosed
			}
			return err
		}
		return nil
	}

	client := s.c.Database().Client()
	if err := txn.WithTransaction(ctx, client, insertAndTransition, fallback); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// Accept transitions pending → accepted. The assignment stays active and
// continues to occupy the pair slot.
func (s *Store) Accept(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return s.transition(ctx, id,
		bson.M{"status": models.AssignmentPending},
		models.AssignmentAccepted, true, ErrNotPending)
}

// Decline transitions pending → declined and frees the pair slot so the
// editor can assign a different (or the same) reviewer again.
func (s *Store) Decline(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return s.transition(ctx, id,
		bson.M{"status": models.AssignmentPending},
		models.AssignmentDeclined, false, ErrNotPending)
}

// Cancel transitions pending|accepted → cancelled and frees the pair slot.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return s.transition(ctx, id,
		bson.M{"status": bson.M{"$in": []string{models.AssignmentPending, models.AssignmentAccepted}}},
		models.AssignmentCancelled, false, ErrNotActive)
}

// Complete transitions accepted → completed and frees the pair slot.
func (s *Store) Complete(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return s.transition(ctx, id,
		bson.M{"status": models.AssignmentAccepted},
		models.AssignmentCompleted, false, ErrNotActive)
}

func (s *Store) transition(ctx context.Context, id primitive.ObjectID, statusFilter bson.M, to string, active bool, wrongState error) (*models.Assignment, error) {
	filter := bson.M{"_id": id}
	for k, v := range statusFilter {
		filter[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Assignment
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{"status": to, "active": active, "updated_at": time.Now().UTC()},
	}, opts).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Distinguish "no such assignment" from "wrong state".
	if _, getErr := s.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, wrongState
}
