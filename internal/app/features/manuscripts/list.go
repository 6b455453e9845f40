// internal/app/features/manuscripts/list.go
package manuscripts

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/authz"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.uber.org/zap"
)

// List handles GET /api/manuscripts.
//
// Editors and the editor-in-chief see every manuscript; everyone else sees
// manuscripts where they appear in the author list. Most recent first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Manuscript
		err  error
	)
	if authz.IsEditor(r) {
		list, err = h.Manuscripts.ListAll(ctx)
	} else {
		list, err = h.Manuscripts.ListByAuthor(ctx, actor.ID)
	}
	if err != nil {
		h.ErrLog.Log("list manuscripts", err, zap.String("user_id", actor.ID.Hex()))
		apierrors.RenderServerError(w, "Failed to load manuscripts.", err, h.Expose)
		return
	}

	apierrors.RenderOK(w, "Manuscripts retrieved.", list)
}
