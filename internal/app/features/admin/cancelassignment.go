// internal/app/features/admin/cancelassignment.go
package admin

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CancelAssignment handles DELETE /api/admin/assignments/{id}.
//
// Cancelling frees the (manuscript, reviewer) pair for reassignment; the
// record stays in the collection for the audit trail.
func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderNotFound(w, "Assignment not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	assignment, err := h.Assignments.Cancel(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			apierrors.RenderNotFound(w, "Assignment not found.")
		case errors.Is(err, assignmentstore.ErrNotActive):
			apierrors.RenderValidation(w, "Only pending or accepted assignments can be cancelled.")
		default:
			h.ErrLog.Log("cancel assignment", err, zap.String("assignment_id", id.Hex()))
			apierrors.RenderServerError(w, "Failed to cancel assignment.", err, h.Expose)
		}
		return
	}

	h.Log.Info("assignment cancelled", zap.String("assignment_id", id.Hex()))

	apierrors.RenderOK(w, "Assignment cancelled.", assignment)
}
