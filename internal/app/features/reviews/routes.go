// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for reviewer assignment endpoints. All
// routes require a signed-in actor; this will be mounted under /api/reviews.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/assignments", h.ListAssignments)
	r.Post("/assignments/{id}/accept", h.Accept)
	r.Post("/assignments/{id}/decline", h.Decline)
	return r
}
