package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor builds an auth.Actor from a user record for request contexts.
func Actor(u models.User) *auth.Actor {
	return &auth.Actor{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Roles: u.Roles,
	}
}

// AuthorActor returns an actor holding only the author role.
func AuthorActor() *auth.Actor {
	return &auth.Actor{
		ID:    primitive.NewObjectID(),
		Name:  "Test Author",
		Email: "author@test.com",
		Roles: models.Roles{Author: true},
	}
}

// ReviewerActor returns an actor holding the reviewer role.
func ReviewerActor() *auth.Actor {
	return &auth.Actor{
		ID:    primitive.NewObjectID(),
		Name:  "Test Reviewer",
		Email: "reviewer@test.com",
		Roles: models.Roles{Author: true, Reviewer: true},
	}
}

// EditorInChiefActor returns an actor holding the editor-in-chief role.
func EditorInChiefActor() *auth.Actor {
	return &auth.Actor{
		ID:    primitive.NewObjectID(),
		Name:  "Test Editor In Chief",
		Email: "eic@test.com",
		Roles: models.Roles{Editor: true, EditorInChief: true},
	}
}

// WithActor adds an actor to the request context for testing authenticated
// handlers, bypassing the bearer-token middleware.
func WithActor(r *http.Request, a *auth.Actor) *http.Request {
	return auth.WithTestActor(r, a)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request carrying a JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with an actor in context.
func NewAuthenticatedRequest(method, target string, a *auth.Actor) *http.Request {
	return WithActor(httptest.NewRequest(method, target, nil), a)
}

// NewAuthenticatedJSONRequest creates a JSON request with an actor in context.
func NewAuthenticatedJSONRequest(method, target, body string, a *auth.Actor) *http.Request {
	return WithActor(NewJSONRequest(method, target, body), a)
}

// ReadBody drains and returns the response body as a string.
func ReadBody(res *httptest.ResponseRecorder) string {
	b, _ := io.ReadAll(res.Body)
	return string(b)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
