package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/scholarhub/internal/app/system/charges"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role flags.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, roles models.Roles) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		Affiliation:  "Test University",
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAuthor creates a test user holding only the author role.
func (f *Fixtures) CreateAuthor(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.Roles{Author: true})
}

// CreateReviewer creates a test user holding the reviewer role.
func (f *Fixtures) CreateReviewer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.Roles{Author: true, Reviewer: true})
}

// CreateEditorInChief creates a test user holding the editor-in-chief role.
func (f *Fixtures) CreateEditorInChief(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.Roles{Editor: true, EditorInChief: true})
}

// CreateManuscript creates a submitted test manuscript authored by authorID.
func (f *Fixtures) CreateManuscript(ctx context.Context, title string, authorID primitive.ObjectID, pages int) models.Manuscript {
	f.t.Helper()

	now := time.Now().UTC()
	ms := models.Manuscript{
		ID:       primitive.NewObjectID(),
		Title:    title,
		TitleCI:  text.Fold(title),
		Abstract: "Test abstract for " + title,
		Keywords: []string{"testing", "fixtures"},
		Domain:   "Computer Science",
		Authors: []models.ManuscriptAuthor{
			{UserID: authorID, IsCorresponding: true, Order: 1},
		},
		CorrespondingAuthor: authorID,
		File: models.FileDescriptor{
			Key:   "manuscripts/test-" + primitive.NewObjectID().Hex() + ".pdf",
			URL:   "http://localhost/files/test.pdf",
			Pages: pages,
			Size:  1024,
		},
		Charges:   charges.Compute(pages),
		Status:    models.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("manuscripts").InsertOne(ctx, ms)
	if err != nil {
		f.t.Fatalf("failed to create test manuscript: %v", err)
	}

	return ms
}

// CreateAssignment creates a test assignment in the given status.
func (f *Fixtures) CreateAssignment(ctx context.Context, manuscriptID, reviewerID, editorID primitive.ObjectID, status string, dueDate time.Time) models.Assignment {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Assignment{
		ID:           primitive.NewObjectID(),
		ManuscriptID: manuscriptID,
		ReviewerID:   reviewerID,
		AssignedBy:   editorID,
		DueDate:      dueDate,
		Status:       status,
		Active:       models.IsActiveStatus(status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("assignments").InsertOne(ctx, a)
	if err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}

	return a
}
