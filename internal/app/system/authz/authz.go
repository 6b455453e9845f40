// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActorCtx returns the actor's role snapshot, name, ID, and a found flag.
// If no actor is present in context it returns zero roles, "", NilObjectID,
// false, so callers can trust that ok=true means a valid authenticated
// actor. Role flags come from the snapshot taken at request start, never
// from a live store read.
func ActorCtx(r *http.Request) (roles models.Roles, name string, userID primitive.ObjectID, ok bool) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		return models.Roles{}, "", primitive.NilObjectID, false
	}
	return actor.Roles, actor.Name, actor.ID, true
}

// IsEditorInChief reports whether the current request's actor holds the
// editor-in-chief role.
func IsEditorInChief(r *http.Request) bool {
	roles, _, _, ok := ActorCtx(r)
	return ok && roles.EditorInChief
}

// IsEditor reports whether the actor holds the editor role.
// Note: the editor-in-chief is also considered an editor for access
// purposes.
func IsEditor(r *http.Request) bool {
	roles, _, _, ok := ActorCtx(r)
	return ok && (roles.Editor || roles.EditorInChief)
}

// IsReviewer reports whether the actor holds the reviewer role.
func IsReviewer(r *http.Request) bool {
	roles, _, _, ok := ActorCtx(r)
	return ok && roles.Reviewer
}

// IsAuthor reports whether the actor holds the author role.
func IsAuthor(r *http.Request) bool {
	roles, _, _, ok := ActorCtx(r)
	return ok && roles.Author
}
