// internal/app/features/admin/userroles.go
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// rolesRequest carries optional flags; only flags present in the body are
// applied, so granting reviewer does not silently clear author.
type rolesRequest struct {
	Author        *bool `json:"author"`
	Reviewer      *bool `json:"reviewer"`
	Editor        *bool `json:"editor"`
	EditorInChief *bool `json:"editorInChief"`
}

// UpdateUserRoles handles PATCH /api/admin/users/{id}/roles.
func (h *Handler) UpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderNotFound(w, "User not found.")
		return
	}

	var req rolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderValidation(w, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderNotFound(w, "User not found.")
			return
		}
		h.ErrLog.Log("update roles: load user", err, zap.String("user_id", id.Hex()))
		apierrors.RenderServerError(w, "Failed to update roles.", err, h.Expose)
		return
	}

	roles := mergeRoles(user.Roles, req)

	updated, err := h.Users.UpdateRoles(ctx, id, roles)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderNotFound(w, "User not found.")
			return
		}
		h.ErrLog.Log("update roles: write", err, zap.String("user_id", id.Hex()))
		apierrors.RenderServerError(w, "Failed to update roles.", err, h.Expose)
		return
	}

	h.Log.Info("user roles updated",
		zap.String("user_id", id.Hex()),
		zap.Bool("author", roles.Author),
		zap.Bool("reviewer", roles.Reviewer),
		zap.Bool("editor", roles.Editor),
		zap.Bool("editor_in_chief", roles.EditorInChief))

	apierrors.RenderOK(w, "User roles updated.", updated)
}

func mergeRoles(current models.Roles, req rolesRequest) models.Roles {
	if req.Author != nil {
		current.Author = *req.Author
	}
	if req.Reviewer != nil {
		current.Reviewer = *req.Reviewer
	}
	if req.Editor != nil {
		current.Editor = *req.Editor
	}
	if req.EditorInChief != nil {
		current.EditorInChief = *req.EditorInChief
	}
	return current
}
