// internal/app/features/manuscripts/routes.go
package manuscripts

import (
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the manuscript endpoints. All routes
// require a signed-in actor; this will be mounted under /api/manuscripts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/", h.Submit)
	r.Get("/", h.List)
	r.Get("/{id}", h.View)
	r.Get("/{id}/file", h.Download)
	return r
}
