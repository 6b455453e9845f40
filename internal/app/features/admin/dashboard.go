// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
)

// dashboardStats is the data payload for the editorial dashboard.
type dashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	Authors          int64 `json:"authors"`
	Reviewers        int64 `json:"reviewers"`
	Editors          int64 `json:"editors"`
	TotalManuscripts int64 `json:"totalManuscripts"`
	Submitted        int64 `json:"submitted"`
	UnderReview      int64 `json:"underReview"`
}

// Dashboard handles GET /api/admin/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	roleCounts, err := h.Users.CountByRoles(ctx)
	if err != nil {
		h.ErrLog.Log("dashboard: count users", err)
		apierrors.RenderServerError(w, "Failed to load dashboard.", err, h.Expose)
		return
	}

	statusCounts, err := h.Manuscripts.CountByStatus(ctx)
	if err != nil {
		h.ErrLog.Log("dashboard: count manuscripts", err)
		apierrors.RenderServerError(w, "Failed to load dashboard.", err, h.Expose)
		return
	}

	apierrors.RenderOK(w, "Dashboard stats retrieved.", dashboardStats{
		TotalUsers:       roleCounts.Total,
		Authors:          roleCounts.Authors,
		Reviewers:        roleCounts.Reviewers,
		Editors:          roleCounts.Editors,
		TotalManuscripts: statusCounts.Total,
		Submitted:        statusCounts.Submitted,
		UnderReview:      statusCounts.UnderReview,
	})
}
