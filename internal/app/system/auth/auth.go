package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Actor context                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// Actor is the authenticated identity injected into r.Context() by
// LoadTokenUser. Roles is a per-request snapshot taken from the identity
// store when the request began; authorization decisions read only this
// snapshot, never a target user's role flags.
type Actor struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Roles models.Roles
}

type ctxKey string

const currentActorKey ctxKey = "currentActor"

// CurrentActor returns the actor and a "found?" flag.
func CurrentActor(r *http.Request) (*Actor, bool) {
	a, ok := r.Context().Value(currentActorKey).(*Actor)
	return a, ok
}

func withActor(r *http.Request, a *Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentActorKey, a))
}

// WithTestActor injects an actor directly, bypassing token verification.
// For handler tests only.
func WithTestActor(r *http.Request, a *Actor) *http.Request {
	return withActor(r, a)
}
