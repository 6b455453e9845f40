// internal/app/features/manuscripts/download.go
package manuscripts

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/policy/manuscriptpolicy"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Download handles GET /api/manuscripts/{id}/file.
//
// Access follows the same rule as View. Local storage serves the file
// directly; other backends redirect to a short-lived signed URL. Files
// carrying a local_ fallback key are served from the fallback store.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
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
		h.ErrLog.Log("download manuscript", err, zap.String("manuscript_id", id.Hex()))
		apierrors.RenderServerError(w, "Failed to load manuscript.", err, h.Expose)
		return
	}

	if !manuscriptpolicy.CanViewManuscript(actor.Roles, actor.ID, ms) {
		apierrors.RenderForbidden(w, "You do not have access to this manuscript.")
		return
	}

	contentDisposition := "attachment; filename=\"manuscript.pdf\""
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	// A local_ key means the primary upload failed at submission time and
	// the payload was spilled to the fallback store. Serve that copy.
	if strings.HasPrefix(ms.File.Key, "local_") {
		fullPath, err := h.Fallback.GetFullPath(ms.File.Key)
		if err != nil {
			apierrors.RenderNotFound(w, "Manuscript file is not available.")
			return
		}
		if _, err := os.Stat(fullPath); err != nil {
			apierrors.RenderNotFound(w, "Manuscript file is not available.")
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	if localStorage, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(ms.File.Key)
		if err != nil {
			h.ErrLog.Log("download: resolve file path", err, zap.String("key", ms.File.Key))
			apierrors.RenderServerError(w, "Failed to locate file.", err, h.Expose)
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(ctx, ms.File.Key, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: contentDisposition,
	})
	if err != nil {
		h.ErrLog.Log("download: sign url", err, zap.String("key", ms.File.Key))
		apierrors.RenderServerError(w, "Failed to generate download link.", err, h.Expose)
		return
	}
	http.Redirect(w, r, signedURL, http.StatusFound)
}
