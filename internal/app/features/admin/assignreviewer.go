// internal/app/features/admin/assignreviewer.go
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type assignRequest struct {
	ManuscriptID string `json:"manuscriptId"`
	ReviewerID   string `json:"reviewerId"`
	DueDate      string `json:"dueDate"`
}

// AssignReviewer handles POST /api/admin/assignments.
//
// Order of checks: manuscript existence (404), reviewer validity (400),
// then the insert. Pair exclusivity is decided by the store's unique
// index, so two concurrent requests for the same pair resolve to exactly
// one 201 and one 400 without any retry.
func (h *Handler) AssignReviewer(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderValidation(w, "Invalid request body.")
		return
	}

	manuscriptID, err := primitive.ObjectIDFromHex(req.ManuscriptID)
	if err != nil {
		apierrors.RenderValidation(w, "Invalid manuscript id.")
		return
	}
	reviewerID, err := primitive.ObjectIDFromHex(req.ReviewerID)
	if err != nil {
		apierrors.RenderValidation(w, "Invalid reviewer id.")
		return
	}
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		// Accept a bare calendar date as well.
		dueDate, err = time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			apierrors.RenderValidation(w, "Due date must be an ISO-8601 date.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ms, err := h.Manuscripts.GetByID(ctx, manuscriptID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderNotFound(w, "Manuscript not found.")
			return
		}
		h.ErrLog.Log("assign: load manuscript", err, zap.String("manuscript_id", manuscriptID.Hex()))
		apierrors.RenderServerError(w, "Failed to assign reviewer.", err, h.Expose)
		return
	}

	reviewer, err := h.Users.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderValidation(w, "Selected user is not a valid reviewer.")
			return
		}
		h.ErrLog.Log("assign: load reviewer", err, zap.String("reviewer_id", reviewerID.Hex()))
		apierrors.RenderServerError(w, "Failed to assign reviewer.", err, h.Expose)
		return
	}
	if !reviewer.Roles.Reviewer {
		apierrors.RenderValidation(w, "Selected user is not a valid reviewer.")
		return
	}

	assignment, err := h.Assignments.Assign(ctx, manuscriptID, reviewerID, actor.ID, dueDate)
	if err != nil {
		if errors.Is(err, assignmentstore.ErrDuplicateAssignment) {
			apierrors.RenderValidation(w, "This reviewer is already assigned to the manuscript.")
			return
		}
		if errors.Is(err, assignmentstore.ErrManuscriptClosed) {
			apierrors.RenderValidation(w, "Manuscript is not open for review.")
			return
		}
		h.ErrLog.Log("assign: create assignment", err,
			zap.String("manuscript_id", manuscriptID.Hex()),
			zap.String("reviewer_id", reviewerID.Hex()))
		apierrors.RenderServerError(w, "Failed to assign reviewer.", err, h.Expose)
		return
	}

	h.Log.Info("reviewer assigned",
		zap.String("assignment_id", assignment.ID.Hex()),
		zap.String("manuscript_id", manuscriptID.Hex()),
		zap.String("reviewer_id", reviewerID.Hex()),
		zap.String("assigned_by", actor.ID.Hex()))

	go h.notifyReviewer(reviewer.Email, ms, dueDate)

	apierrors.RenderCreated(w, "Reviewer assigned successfully.", assignment)
}

// notifyReviewer emails the reviewer about a new assignment. Runs after
// the workflow outcome is decided; failures are logged, never surfaced.
func (h *Handler) notifyReviewer(to string, ms *models.Manuscript, dueDate time.Time) {
	email := mailer.BuildAssignmentEmail(mailer.AssignmentEmailData{
		SiteName:   h.SiteName,
		Manuscript: ms,
		DueDate:    dueDate,
	})
	email.To = to
	h.Mailer.SendAsync(email)
}
