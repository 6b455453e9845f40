// internal/app/policy/manuscriptpolicy/manuscriptpolicy.go
package manuscriptpolicy

import (
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation names the workflow actions the gate decides on.
type Operation string

const (
	OpViewDashboard    Operation = "view_dashboard"
	OpAssignReviewer   Operation = "assign_reviewer"
	OpCancelAssignment Operation = "cancel_assignment"
	OpUpdateUserRoles  Operation = "update_user_roles"
	OpSubmitManuscript Operation = "submit_manuscript"
	OpViewOwn          Operation = "view_own_manuscripts"
)

// CanPerform is the stateless whitelist for operations that need only the
// actor's role snapshot. Anything not explicitly allowed is denied.
// It never consults a target's role flags, so a request cannot gain access
// by manipulating some other user's record.
func CanPerform(roles models.Roles, op Operation) bool {
	switch op {
	case OpViewDashboard, OpAssignReviewer, OpCancelAssignment, OpUpdateUserRoles:
		return roles.EditorInChief
	case OpSubmitManuscript, OpViewOwn:
		// Any authenticated actor; the caller established authentication
		// before consulting the gate.
		return true
	default:
		return false
	}
}

// CanViewManuscript reports whether the actor may read a specific
// manuscript: listed authors and editorial roles only.
func CanViewManuscript(roles models.Roles, actorID primitive.ObjectID, m *models.Manuscript) bool {
	if roles.Editor || roles.EditorInChief {
		return true
	}
	return m.HasAuthor(actorID)
}

// CanActOnAssignment reports whether the actor may accept or decline an
// assignment: only the reviewer it binds.
func CanActOnAssignment(actorID primitive.ObjectID, a *models.Assignment) bool {
	return a.ReviewerID == actorID
}
