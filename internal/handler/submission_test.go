package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/ctxkeys"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/repository"
	"github.com/paramparahq/parampara/internal/service"
	"github.com/paramparahq/parampara/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySubmissionRepository struct {
	created []*model.Submission
}

func (m *memorySubmissionRepository) Create(s *model.Submission) error {
	m.created = append(m.created, s)
	return nil
}

func (m *memorySubmissionRepository) ByID(string) (*model.Submission, error) {
	return nil, repository.ErrSubmissionNotFound
}

func (m *memorySubmissionRepository) ByUser(userID string) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range m.created {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memorySubmissionRepository) All() ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range m.created {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memorySubmissionRepository) Delete(string) error { return nil }

func (m *memorySubmissionRepository) Stats() (*model.Stats, error) {
	return &model.Stats{Total: int64(len(m.created))}, nil
}

type memoryLocationRepository struct{}

func (memoryLocationRepository) Create(*model.Location) error { return nil }

func (memoryLocationRepository) LatestByUser(string) (*model.Location, error) {
	return nil, repository.ErrLocationNotFound
}

func (memoryLocationRepository) ByUser(string, int) ([]model.Location, error) { return nil, nil }

func newTestSubmissionHandler(t *testing.T) (*SubmissionHandler, *memorySubmissionRepository) {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	cfg := &config.Config{
		MaxUploadSize: 1 << 20,
		Regions:       []string{"Tamil Nadu"},
		Languages:     map[string]string{"ta": "Tamil"},
	}

	repo := &memorySubmissionRepository{}
	ingest := service.NewIngestService(repo, memoryLocationRepository{}, store, nil, nil, cfg)
	submissions := service.NewSubmissionService(repo)
	return NewSubmissionHandler(ingest, submissions, cfg), repo
}

func TestSubmissionHandlerCreateMultipart(t *testing.T) {
	h, repo := newTestSubmissionHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Pongal"))
	require.NoError(t, mw.WriteField("description", "a festival rice dish"))
	require.NoError(t, mw.WriteField("category", "Food"))
	require.NoError(t, mw.WriteField("content_type", "Image"))
	require.NoError(t, mw.WriteField("language", "ta"))
	require.NoError(t, mw.WriteField("region", "Tamil Nadu"))
	fw, err := mw.CreateFormFile("file", "dish.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, repo.created, 1)

	var resp struct {
		Submission model.Submission `json:"submission"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pongal", resp.Submission.Title)
	assert.Equal(t, model.ContentImage, resp.Submission.ContentType)
	require.NotNil(t, resp.Submission.FilePath)
}

func TestSubmissionHandlerCreateValidationError(t *testing.T) {
	h, repo := newTestSubmissionHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Pongal"))
	require.NoError(t, mw.WriteField("category", "Sports"))
	require.NoError(t, mw.WriteField("content_type", "Text"))
	require.NoError(t, mw.WriteField("description", "something"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category")
	assert.Empty(t, repo.created)
}

func TestSubmissionHandlerList(t *testing.T) {
	h, repo := newTestSubmissionHandler(t)
	repo.created = append(repo.created,
		&model.Submission{ID: "s1", UserID: "u1", Title: "Mine"},
		&model.Submission{ID: "s2", UserID: "u2", Title: "Theirs"},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Submissions []model.Submission `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, "s1", resp.Submissions[0].ID)
}

func TestSubmissionHandlerExportHeaders(t *testing.T) {
	h, _ := newTestSubmissionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "id,user_id,title")
}
