package manuscripts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/scholarhub/internal/app/features/manuscripts"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/scholarhub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*manuscripts.Handler, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	store := newLocalStore(t, "/files/manuscripts")
	fallback := newLocalStore(t, "/files/fallback")
	mail := mailer.New(mailer.Config{}, zap.NewNop()) // host empty, sending disabled
	h := manuscripts.NewHandler(db, store, fallback, mail, "ScholarHub", zap.NewNop(), true)
	return h, db
}

func newLocalStore(t *testing.T, baseURL string) *storage.Local {
	t.Helper()

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  baseURL,
	})
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}
	return store
}

// unavailableStore fails every upload, standing in for an unreachable
// blob backend. Only Put is ever reached on the failure path.
type unavailableStore struct {
	storage.Store
}

func (s *unavailableStore) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	return errors.New("blob backend unavailable")
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func submitRequest(t *testing.T, actor *auth.Actor, fields map[string]string, withFile bool) *http.Request {
	t.Helper()

	fileField := ""
	if withFile {
		fileField = "file"
	}
	body, contentType := multipartBody(t, fields, fileField, "paper.pdf", []byte("%PDF-1.4 test"))
	req := httptest.NewRequest("POST", "/api/manuscripts", body)
	req.Header.Set("Content-Type", contentType)
	return testutil.WithActor(req, actor)
}

func validFields() map[string]string {
	return map[string]string{
		"title":    "Adaptive Mesh Refinement",
		"abstract": "We study adaptive mesh refinement strategies.",
		"keywords": "meshes, refinement, numerics",
		"domain":   "Applied Mathematics",
		"pages":    "12",
	}
}

func TestSubmit(t *testing.T) {
	h, _ := newTestHandler(t)
	author := testutil.AuthorActor()

	t.Run("creates manuscript with charges and sole corresponding author", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, author, validFields(), true))

		rec.AssertStatus(t, http.StatusCreated)
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}

		var ms models.Manuscript
		if err := json.Unmarshal(env.Data, &ms); err != nil {
			t.Fatalf("failed to parse manuscript: %v", err)
		}
		if ms.Status != models.StatusSubmitted {
			t.Errorf("status: got %q, want %q", ms.Status, models.StatusSubmitted)
		}
		if len(ms.Authors) != 1 || ms.Authors[0].UserID != author.ID || !ms.Authors[0].IsCorresponding || ms.Authors[0].Order != 1 {
			t.Errorf("authors: got %+v, want sole corresponding author order 1", ms.Authors)
		}
		// 12 pages: base 50, 6 extra pages at 10 each
		if ms.Charges.TotalAmount != 110 {
			t.Errorf("total charges: got %d, want 110", ms.Charges.TotalAmount)
		}
		if ms.File.Pages != 12 {
			t.Errorf("pages: got %d, want 12", ms.File.Pages)
		}
		if ms.File.Key == "" {
			t.Error("expected a stored file key")
		}
	})

	t.Run("succeeds when no editor-in-chief exists", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, testutil.AuthorActor(), validFields(), true))
		rec.AssertStatus(t, http.StatusCreated)
	})

	t.Run("defaults pages to 1", func(t *testing.T) {
		fields := validFields()
		delete(fields, "pages")
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, author, fields, true))

		rec.AssertStatus(t, http.StatusCreated)
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}
		var ms models.Manuscript
		if err := json.Unmarshal(env.Data, &ms); err != nil {
			t.Fatalf("failed to parse manuscript: %v", err)
		}
		if ms.File.Pages != 1 {
			t.Errorf("pages: got %d, want 1", ms.File.Pages)
		}
		if ms.Charges.TotalAmount != 0 {
			t.Errorf("charges for 1 page: got %d, want 0", ms.Charges.TotalAmount)
		}
	})

	t.Run("strips markup from metadata", func(t *testing.T) {
		fields := validFields()
		fields["title"] = `<script>alert(1)</script>Robust <b>Estimators</b>`
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, author, fields, true))

		rec.AssertStatus(t, http.StatusCreated)
		if bytes.Contains(rec.Body.Bytes(), []byte("<script>")) || bytes.Contains(rec.Body.Bytes(), []byte("<b>")) {
			t.Error("markup survived sanitization")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		for _, missing := range []string{"title", "abstract", "domain"} {
			t.Run("missing "+missing, func(t *testing.T) {
				fields := validFields()
				delete(fields, missing)
				rec := testutil.NewRecorder()
				h.Submit(rec.ResponseRecorder, submitRequest(t, author, fields, true))
				rec.AssertStatus(t, http.StatusBadRequest)
			})
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, author, validFields(), false))
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("rejects invalid page count", func(t *testing.T) {
		fields := validFields()
		fields["pages"] = "-3"
		rec := testutil.NewRecorder()
		h.Submit(rec.ResponseRecorder, submitRequest(t, author, fields, true))
		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestSubmitStorageOutage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fallback := newLocalStore(t, "/files/fallback")
	mail := mailer.New(mailer.Config{}, zap.NewNop())
	h := manuscripts.NewHandler(db, &unavailableStore{}, fallback, mail, "ScholarHub", zap.NewNop(), true)

	author := testutil.AuthorActor()
	rec := testutil.NewRecorder()
	h.Submit(rec.ResponseRecorder, submitRequest(t, author, validFields(), true))

	rec.AssertStatus(t, http.StatusCreated)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	var ms models.Manuscript
	if err := json.Unmarshal(env.Data, &ms); err != nil {
		t.Fatalf("failed to parse manuscript: %v", err)
	}
	if !strings.HasPrefix(ms.File.Key, "local_") {
		t.Errorf("file key: got %q, want local_ fallback key", ms.File.Key)
	}
	if ms.File.URL != "" {
		t.Errorf("file url: got %q, want empty for a fallback copy", ms.File.URL)
	}

	// The payload must stay retrievable through the download endpoint.
	req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/"+ms.ID.Hex()+"/file", author)
	req = testutil.WithChiURLParam(req, "id", ms.ID.Hex())
	dl := testutil.NewRecorder()
	h.Download(dl.ResponseRecorder, req)

	dl.AssertStatus(t, http.StatusOK)
	if !bytes.Contains(dl.Body.Bytes(), []byte("%PDF-1.4 test")) {
		t.Error("downloaded content does not match the submitted file")
	}
}

func TestDownloadMissingFallbackCopy(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	authorUser := f.CreateAuthor(ctx, "Spill Author", "spill-author@test.com")
	ms := f.CreateManuscript(ctx, "Spill Paper", authorUser.ID, 4)

	// A fallback key with no spilled file behind it, as left by a failed
	// spill write.
	_, err := db.Collection("manuscripts").UpdateOne(ctx,
		bson.M{"_id": ms.ID},
		bson.M{"$set": bson.M{"file.key": "local_deadbeef-gone.pdf"}})
	if err != nil {
		t.Fatalf("failed to set fallback key: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/"+ms.ID.Hex()+"/file", testutil.Actor(authorUser))
	req = testutil.WithChiURLParam(req, "id", ms.ID.Hex())
	rec := testutil.NewRecorder()
	h.Download(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestListAndView(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)

	authorUser := f.CreateAuthor(ctx, "List Author", "list-author@test.com")
	otherUser := f.CreateAuthor(ctx, "Other Author", "other-author@test.com")
	ms := f.CreateManuscript(ctx, "Visible Paper", authorUser.ID, 8)
	f.CreateManuscript(ctx, "Other Paper", otherUser.ID, 4)

	t.Run("author sees only own manuscripts", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.List(rec.ResponseRecorder, testutil.NewAuthenticatedRequest("GET", "/api/manuscripts", testutil.Actor(authorUser)))

		rec.AssertStatus(t, http.StatusOK)
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}
		var list []models.Manuscript
		if err := json.Unmarshal(env.Data, &list); err != nil {
			t.Fatalf("failed to parse list: %v", err)
		}
		if len(list) != 1 || list[0].Title != "Visible Paper" {
			t.Errorf("expected only the author's manuscript, got %d entries", len(list))
		}
	})

	t.Run("editor-in-chief sees all manuscripts", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.List(rec.ResponseRecorder, testutil.NewAuthenticatedRequest("GET", "/api/manuscripts", testutil.EditorInChiefActor()))

		rec.AssertStatus(t, http.StatusOK)
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}
		var list []models.Manuscript
		if err := json.Unmarshal(env.Data, &list); err != nil {
			t.Fatalf("failed to parse list: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("expected 2 manuscripts, got %d", len(list))
		}
	})

	t.Run("view returns 404 for unknown id", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/000000000000000000000000", testutil.Actor(authorUser))
		req = testutil.WithChiURLParam(req, "id", "000000000000000000000000")
		rec := testutil.NewRecorder()
		h.View(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusNotFound)
	})

	t.Run("view denies non-author without editorial role", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/"+ms.ID.Hex(), testutil.Actor(otherUser))
		req = testutil.WithChiURLParam(req, "id", ms.ID.Hex())
		rec := testutil.NewRecorder()
		h.View(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("view allows listed author", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/"+ms.ID.Hex(), testutil.Actor(authorUser))
		req = testutil.WithChiURLParam(req, "id", ms.ID.Hex())
		rec := testutil.NewRecorder()
		h.View(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusOK)
	})

	t.Run("view allows editor", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/api/manuscripts/"+ms.ID.Hex(), testutil.EditorInChiefActor())
		req = testutil.WithChiURLParam(req, "id", ms.ID.Hex())
		rec := testutil.NewRecorder()
		h.View(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusOK)
	})
}
