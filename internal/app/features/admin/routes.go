// internal/app/features/admin/routes.go
package admin

import (
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/policy/manuscriptpolicy"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the editorial endpoints. Each route is
// gated by the workflow policy for its operation; this will be mounted
// under /api/admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.With(requireOp(manuscriptpolicy.OpViewDashboard)).Get("/dashboard", h.Dashboard)
	r.With(requireOp(manuscriptpolicy.OpAssignReviewer)).Post("/assignments", h.AssignReviewer)
	r.With(requireOp(manuscriptpolicy.OpCancelAssignment)).Delete("/assignments/{id}", h.CancelAssignment)
	r.With(requireOp(manuscriptpolicy.OpUpdateUserRoles)).Patch("/users/{id}/roles", h.UpdateUserRoles)
	return r
}

// requireOp rejects actors the workflow policy does not allow to
// perform op. RequireSignedIn runs first, so a missing actor here means
// a misordered middleware chain; answer 401 rather than panic.
func requireOp(op manuscriptpolicy.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.CurrentActor(r)
			if !ok {
				apierrors.RenderUnauthorized(w)
				return
			}
			if !manuscriptpolicy.CanPerform(actor.Roles, op) {
				apierrors.RenderForbidden(w, "Editor-in-chief access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
