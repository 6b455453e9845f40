package reviews_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/scholarhub/internal/app/features/reviews"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/scholarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reviews.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return reviews.NewHandler(db, zap.NewNop(), true), db
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func respond(t *testing.T, h *reviews.Handler, verb, id string, actor *auth.Actor) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.NewAuthenticatedRequest("POST", "/api/reviews/assignments/"+id+"/"+verb, actor)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()
	switch verb {
	case "accept":
		h.Accept(rec.ResponseRecorder, req)
	case "decline":
		h.Decline(rec.ResponseRecorder, req)
	default:
		t.Fatalf("unknown verb %q", verb)
	}
	return rec
}

func TestListAssignments(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	author := f.CreateAuthor(ctx, "List Author", "rl-author@test.com")
	reviewer := f.CreateReviewer(ctx, "List Reviewer", "rl-reviewer@test.com")
	other := f.CreateReviewer(ctx, "Other Reviewer", "rl-other@test.com")
	eicID := primitive.NewObjectID()
	due := time.Now().UTC().AddDate(0, 0, 7)

	msA := f.CreateManuscript(ctx, "Paper A", author.ID, 5)
	msB := f.CreateManuscript(ctx, "Paper B", author.ID, 5)
	f.CreateAssignment(ctx, msA.ID, reviewer.ID, eicID, models.AssignmentPending, due)
	f.CreateAssignment(ctx, msB.ID, reviewer.ID, eicID, models.AssignmentAccepted, due)
	f.CreateAssignment(ctx, msA.ID, other.ID, eicID, models.AssignmentPending, due)

	rec := testutil.NewRecorder()
	h.ListAssignments(rec.ResponseRecorder, testutil.NewAuthenticatedRequest("GET", "/api/reviews/assignments", testutil.Actor(reviewer)))

	rec.AssertStatus(t, http.StatusOK)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	var list []models.Assignment
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("failed to parse assignments: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 assignments for reviewer, got %d", len(list))
	}
	for _, a := range list {
		if a.ReviewerID != reviewer.ID {
			t.Errorf("listed assignment for wrong reviewer: %s", a.ReviewerID.Hex())
		}
	}
}

func TestAcceptAndDecline(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	author := f.CreateAuthor(ctx, "AD Author", "ad-author@test.com")
	reviewer := f.CreateReviewer(ctx, "AD Reviewer", "ad-reviewer@test.com")
	eicID := primitive.NewObjectID()
	due := time.Now().UTC().AddDate(0, 0, 7)

	t.Run("accept keeps the assignment active", func(t *testing.T) {
		ms := f.CreateManuscript(ctx, "Accept Paper", author.ID, 5)
		a := f.CreateAssignment(ctx, ms.ID, reviewer.ID, eicID, models.AssignmentPending, due)

		rec := respond(t, h, "accept", a.ID.Hex(), testutil.Actor(reviewer))
		rec.AssertStatus(t, http.StatusOK)

		var stored models.Assignment
		if err := db.Collection("assignments").FindOne(ctx, map[string]any{"_id": a.ID}).Decode(&stored); err != nil {
			t.Fatalf("failed to reload assignment: %v", err)
		}
		if stored.Status != models.AssignmentAccepted || !stored.Active {
			t.Errorf("got status %q active %v, want accepted active", stored.Status, stored.Active)
		}
	})

	t.Run("decline frees the pair", func(t *testing.T) {
		ms := f.CreateManuscript(ctx, "Decline Paper", author.ID, 5)
		a := f.CreateAssignment(ctx, ms.ID, reviewer.ID, eicID, models.AssignmentPending, due)

		rec := respond(t, h, "decline", a.ID.Hex(), testutil.Actor(reviewer))
		rec.AssertStatus(t, http.StatusOK)

		var stored models.Assignment
		if err := db.Collection("assignments").FindOne(ctx, map[string]any{"_id": a.ID}).Decode(&stored); err != nil {
			t.Fatalf("failed to reload assignment: %v", err)
		}
		if stored.Status != models.AssignmentDeclined || stored.Active {
			t.Errorf("got status %q active %v, want declined inactive", stored.Status, stored.Active)
		}
	})

	t.Run("only the assigned reviewer may respond", func(t *testing.T) {
		ms := f.CreateManuscript(ctx, "Foreign Paper", author.ID, 5)
		a := f.CreateAssignment(ctx, ms.ID, reviewer.ID, eicID, models.AssignmentPending, due)

		rec := respond(t, h, "accept", a.ID.Hex(), testutil.ReviewerActor())
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("responding twice is rejected", func(t *testing.T) {
		ms := f.CreateManuscript(ctx, "Twice Paper", author.ID, 5)
		a := f.CreateAssignment(ctx, ms.ID, reviewer.ID, eicID, models.AssignmentPending, due)

		respond(t, h, "decline", a.ID.Hex(), testutil.Actor(reviewer)).AssertStatus(t, http.StatusOK)
		respond(t, h, "accept", a.ID.Hex(), testutil.Actor(reviewer)).AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("404 for unknown assignment", func(t *testing.T) {
		rec := respond(t, h, "accept", primitive.NewObjectID().Hex(), testutil.Actor(reviewer))
		rec.AssertStatus(t, http.StatusNotFound)
	})
}
