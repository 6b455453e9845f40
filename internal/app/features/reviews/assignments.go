// internal/app/features/reviews/assignments.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/policy/manuscriptpolicy"
	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ListAssignments handles GET /api/reviews/assignments. It returns the
// signed-in reviewer's own assignments, most recent first.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Assignments.ListByReviewer(ctx, actor.ID)
	if err != nil {
		h.ErrLog.Log("list assignments", err, zap.String("reviewer_id", actor.ID.Hex()))
		apierrors.RenderServerError(w, "Failed to load assignments.", err, h.Expose)
		return
	}

	apierrors.RenderOK(w, "Assignments retrieved.", list)
}

// Accept handles POST /api/reviews/assignments/{id}/accept.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Assignments.Accept, "Assignment accepted.", "accept assignment")
}

// Decline handles POST /api/reviews/assignments/{id}/decline. Declining
// releases the (manuscript, reviewer) pair so the editor can reassign.
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Assignments.Decline, "Assignment declined.", "decline assignment")
}

func (h *Handler) respond(
	w http.ResponseWriter,
	r *http.Request,
	mutate func(context.Context, primitive.ObjectID) (*models.Assignment, error),
	okMessage, operation string,
) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderNotFound(w, "Assignment not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	assignment, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderNotFound(w, "Assignment not found.")
			return
		}
		h.ErrLog.Log(operation+": load", err, zap.String("assignment_id", id.Hex()))
		apierrors.RenderServerError(w, "Failed to update assignment.", err, h.Expose)
		return
	}

	if !manuscriptpolicy.CanActOnAssignment(actor.ID, assignment) {
		apierrors.RenderForbidden(w, "Only the assigned reviewer can respond to this assignment.")
		return
	}

	updated, err := mutate(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			apierrors.RenderNotFound(w, "Assignment not found.")
		case errors.Is(err, assignmentstore.ErrNotPending):
			apierrors.RenderValidation(w, "Assignment is no longer pending.")
		default:
			h.ErrLog.Log(operation, err, zap.String("assignment_id", id.Hex()))
			apierrors.RenderServerError(w, "Failed to update assignment.", err, h.Expose)
		}
		return
	}

	h.Log.Info(operation,
		zap.String("assignment_id", id.Hex()),
		zap.String("reviewer_id", actor.ID.Hex()),
		zap.String("status", updated.Status))

	apierrors.RenderOK(w, okMessage, updated)
}
