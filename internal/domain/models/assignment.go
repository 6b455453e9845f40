// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment status lifecycle. Pending and accepted assignments are
// "active": they occupy the (manuscript, reviewer) slot and block a second
// assignment for the same pair. Declined, completed, and cancelled
// assignments free the slot.
const (
	AssignmentPending   = "pending"
	AssignmentAccepted  = "accepted"
	AssignmentDeclined  = "declined"
	AssignmentCompleted = "completed"
	AssignmentCancelled = "cancelled"
)

// Assignment binds a reviewer to a manuscript for one review cycle.
// It is a standalone document referencing Manuscript and User by ID.
// The assignment store is the sole writer of its lifecycle fields.
//
// Active mirrors status: true iff status is pending or accepted. It exists
// so the collection can carry a partial unique index on
// {manuscript_id, reviewer_id} where active=true, which is what enforces
// the one-active-assignment-per-pair invariant under concurrency.
type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ManuscriptID primitive.ObjectID `bson:"manuscript_id" json:"manuscript"`
	ReviewerID   primitive.ObjectID `bson:"reviewer_id" json:"reviewer"`
	AssignedBy   primitive.ObjectID `bson:"assigned_by" json:"assignedBy"`
	DueDate      time.Time          `bson:"due_date" json:"dueDate"`
	Status       string             `bson:"status" json:"status"`
	Active       bool               `bson:"active" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActiveStatus reports whether status occupies the pair slot.
func IsActiveStatus(status string) bool {
	return status == AssignmentPending || status == AssignmentAccepted
}
