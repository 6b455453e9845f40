// internal/app/features/manuscripts/submit.go
package manuscripts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Submit handles POST /api/manuscripts.
//
// Multipart form: title, abstract, keywords (comma separated), domain,
// pages, file. The submitter becomes the sole corresponding author.
// A blob-storage failure spills the file to the local fallback store
// rather than failing the submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentActor(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return
	}

	// 32MB max, matching the upload size limit enforced at the proxy
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apierrors.RenderValidation(w, "Invalid form data.")
		return
	}

	title := htmlsanitize.Text(r.FormValue("title"))
	abstract := htmlsanitize.Text(r.FormValue("abstract"))
	domain := htmlsanitize.Text(r.FormValue("domain"))
	keywords := htmlsanitize.TextSlice(splitKeywords(r.FormValue("keywords")))

	switch {
	case title == "":
		apierrors.RenderValidation(w, "Title is required.")
		return
	case abstract == "":
		apierrors.RenderValidation(w, "Abstract is required.")
		return
	case domain == "":
		apierrors.RenderValidation(w, "Domain is required.")
		return
	}

	pages := 1
	if raw := strings.TrimSpace(r.FormValue("pages")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			apierrors.RenderValidation(w, "Pages must be a positive number.")
			return
		}
		pages = n
	}

	file, header, err := r.FormFile("file")
	if err != nil || header == nil || header.Size == 0 {
		apierrors.RenderValidation(w, "Manuscript file is required.")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	contentType := header.Header.Get("Content-Type")
	descriptor := models.FileDescriptor{
		Pages: pages,
		Size:  header.Size,
	}

	key, upErr := uploadFile(ctx, h.Storage, header.Filename, file, contentType)
	if upErr != nil {
		// Spill the payload to the local fallback store; the submission
		// must not be lost because the blob backend is down, and the file
		// must stay retrievable until it is reconciled.
		key = localFallbackKey(header.Filename)
		h.Log.Warn("manuscript upload fell back to local storage",
			zap.String("filename", header.Filename),
			zap.String("fallback_key", key),
			zap.Error(upErr))
		if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
			h.ErrLog.Log("submit: rewind upload for fallback", seekErr,
				zap.String("fallback_key", key))
		} else if spillErr := h.Fallback.Put(ctx, key, file, &storage.PutOptions{ContentType: contentType}); spillErr != nil {
			h.ErrLog.Log("submit: write fallback copy", spillErr,
				zap.String("fallback_key", key))
		}
		descriptor.Key = key
	} else {
		descriptor.Key = key
		descriptor.URL = h.Storage.URL(key)
	}

	ms, err := h.Manuscripts.Create(ctx, manuscriptstore.NewSubmission{
		Title:       title,
		Abstract:    abstract,
		Keywords:    keywords,
		Domain:      domain,
		File:        descriptor,
		SubmittedBy: actor.ID,
	})
	if err != nil {
		h.ErrLog.Log("submit: create manuscript", err, zap.String("user_id", actor.ID.Hex()))
		apierrors.RenderServerError(w, "Failed to submit manuscript.", err, h.Expose)
		return
	}

	h.Log.Info("manuscript submitted",
		zap.String("manuscript_id", ms.ID.Hex()),
		zap.String("user_id", actor.ID.Hex()),
		zap.Int("pages", pages),
		zap.Int("total_charges", ms.Charges.TotalAmount))

	go h.notifyEditorInChief(ms, actor.Name)

	apierrors.RenderCreated(w, "Manuscript submitted successfully.", ms)
}

// notifyEditorInChief emails the editor-in-chief about a new submission.
// Runs after the write commits, on its own deadline; the absence of an
// editor-in-chief account and delivery failures are logged only.
func (h *Handler) notifyEditorInChief(ms models.Manuscript, authorName string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	defer cancel()

	eic, err := h.Users.FindEditorInChief(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Info("no editor-in-chief account, skipping submission notice",
				zap.String("manuscript_id", ms.ID.Hex()))
			return
		}
		h.Log.Warn("editor-in-chief lookup failed, skipping submission notice",
			zap.String("manuscript_id", ms.ID.Hex()),
			zap.Error(err))
		return
	}

	email := mailer.BuildSubmissionEmail(mailer.SubmissionEmailData{
		SiteName:   h.SiteName,
		Title:      ms.Title,
		Domain:     ms.Domain,
		AuthorName: authorName,
	})
	email.To = eic.Email
	h.Mailer.SendAsync(email)
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
