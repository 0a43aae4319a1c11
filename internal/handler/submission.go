package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/ctxkeys"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/service"
)

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to temp files. Uploads can reach several GiB, so this
// stays small.
const multipartMemoryLimit = 32 << 20 // 32 MiB

type SubmissionHandler struct {
	ingestService     *service.IngestService
	submissionService *service.SubmissionService
	cfg               *config.Config
}

func NewSubmissionHandler(ingestService *service.IngestService, submissionService *service.SubmissionService, cfg *config.Config) *SubmissionHandler {
	return &SubmissionHandler{
		ingestService:     ingestService,
		submissionService: submissionService,
		cfg:               cfg,
	}
}

type ingestResponse struct {
	Submission  *model.Submission `json:"submission"`
	Translation string            `json:"translation,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Cap the request body a little above the upload limit so the form
	// fields still fit alongside a maximum-size file.
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize+multipartMemoryLimit)

	err := r.ParseMultipartForm(multipartMemoryLimit)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds the %s limit", service.HumanSize(h.cfg.MaxUploadSize)))
			return
		}
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	input := service.SubmissionInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
		ContentType: model.ContentType(r.FormValue("content_type")),
		Language:    r.FormValue("language"),
		Region:      r.FormValue("region"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		input.File = &service.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		respondError(w, http.StatusBadRequest, "invalid file field")
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), user.ID, input)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("submission ingestion failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create submission")
		return
	}

	respondJSON(w, http.StatusCreated, ingestResponse{
		Submission:  result.Submission,
		Translation: result.Translation,
		Warnings:    result.Warnings,
	})
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	submissions, err := h.submissionService.ByUser(user.ID)
	if err != nil {
		slog.Error("failed to list submissions", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
}

func (h *SubmissionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.submissionService.Stats()
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Export streams the whole corpus as CSV. Admin only.
func (h *SubmissionHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("parampara-export-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err := h.submissionService.ExportCSV(w)
	if err != nil {
		// Headers are already sent; the truncated body is all we can signal.
		slog.Error("export failed", "error", err)
	}
}
