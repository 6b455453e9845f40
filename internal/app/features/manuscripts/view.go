// internal/app/features/manuscripts/view.go
package manuscripts

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/policy/manuscriptpolicy"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// View handles GET /api/manuscripts/{id}.
//
// 404 before 403: a caller probing for IDs learns nothing about
// manuscripts that exist but are off-limits only after proving the ID.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderNotFound(w, "Manuscript not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ms, err := h.Manuscripts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderNotFound(w, "Manuscript not found.")
			return
		}
		h.ErrLog.Log("view manuscript", err, zap.String("manuscript_id", id.Hex()))
		apierrors.RenderServerError(w, "Failed to load manuscript.", err, h.Expose)
		return
	}

	if !manuscriptpolicy.CanViewManuscript(actor.Roles, actor.ID, ms) {
		apierrors.RenderForbidden(w, "You do not have access to this manuscript.")
		return
	}

	apierrors.RenderOK(w, "Manuscript retrieved.", ms)
}
