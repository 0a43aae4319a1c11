package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/repository"
	"github.com/paramparahq/parampara/internal/storage"
	"github.com/paramparahq/parampara/internal/validation"
)

const maxTitleLength = 200

// ValidationError reports a rejected submission field. The pipeline stops at
// the first invalid field; nothing is stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Transcriber converts audio to text. It reports failure as a reason string
// rather than an error; transcription is best effort.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.ReadSeeker, languageHint string) (text string, reason string)
}

// Translator renders text in the configured common language.
type Translator interface {
	Translate(ctx context.Context, text, source string) (string, error)
}

// Upload is the raw file attached to a submission. Content must be seekable
// so it can be read once for storage and again for transcription.
type Upload struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

// SubmissionInput carries the fields of one ingestion request.
type SubmissionInput struct {
	Title       string
	Description string
	Category    model.Category
	ContentType model.ContentType
	Language    string
	Region      string
	File        *Upload
}

// IngestResult is what a successful ingestion returns: the persisted
// submission, a transient translation of its text (never stored), and any
// warnings from the best-effort stages.
type IngestResult struct {
	Submission  *model.Submission
	Translation string
	Warnings    []string
}

// IngestService runs the submission pipeline:
// validate -> store file -> transcribe -> translate -> persist.
// Validation failures reject the whole request; transcription and translation
// failures degrade to warnings.
type IngestService struct {
	submissionRepository repository.SubmissionRepository
	locationRepository   repository.LocationRepository
	store                storage.Store
	transcriber          Transcriber
	translator           Translator
	cfg                  *config.Config
}

func NewIngestService(
	submissionRepository repository.SubmissionRepository,
	locationRepository repository.LocationRepository,
	store storage.Store,
	transcriber Transcriber,
	translator Translator,
	cfg *config.Config,
) *IngestService {
	return &IngestService{
		submissionRepository: submissionRepository,
		locationRepository:   locationRepository,
		store:                store,
		transcriber:          transcriber,
		translator:           translator,
		cfg:                  cfg,
	}
}

func (s *IngestService) Ingest(ctx context.Context, userID string, input SubmissionInput) (*IngestResult, error) {
	err := s.validate(input)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		ContentType: input.ContentType,
		CreatedAt:   time.Now(),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		submission.Description = &desc
	}
	if input.Language != "" {
		submission.Language = &input.Language
	}
	if input.Region != "" {
		submission.Region = &input.Region
	}

	// Geotag from the contributor's most recent location fix, if any.
	location, err := s.locationRepository.LatestByUser(userID)
	if err == nil {
		submission.Lat = &location.Lat
		submission.Lon = &location.Lon
	} else if !errors.Is(err, repository.ErrLocationNotFound) {
		slog.Warn("failed to look up location for geotag", "error", err, "user_id", userID)
	}

	result := &IngestResult{Submission: submission}

	// Media submissions without a file are accepted but flagged: the record
	// keeps what it has rather than hard-failing.
	if input.File == nil && input.ContentType != model.ContentText {
		result.Warnings = append(result.Warnings, "no file attached")
	}

	var storedPath string
	if input.File != nil {
		path, size, err := s.store.Save(storage.Artifact{
			OwnerID:      userID,
			OriginalName: input.File.Filename,
			ContentType:  input.ContentType,
			Size:         input.File.Size,
			Content:      input.File.Content,
		})
		if err != nil {
			if errors.Is(err, storage.ErrFileTooLarge) {
				return nil, &ValidationError{Field: "file", Reason: "file exceeds maximum upload size"}
			}
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
		storedPath = path
		submission.FilePath = &path
		submission.FileSize = &size
	}

	if input.ContentType == model.ContentAudio && input.File != nil && s.transcriber != nil {
		_, err = input.File.Content.Seek(0, io.SeekStart)
		if err != nil {
			result.Warnings = append(result.Warnings, "transcription unavailable")
		} else {
			text, reason := s.transcriber.Transcribe(ctx, input.File.Content, input.Language)
			if reason != "" {
				result.Warnings = append(result.Warnings, reason)
			} else {
				submission.Transcript = &text
			}
		}
	}

	err = s.submissionRepository.Create(submission)
	if err != nil {
		// Don't leave an orphaned file behind.
		if storedPath != "" {
			deleteErr := s.store.Delete(storedPath)
			if deleteErr != nil {
				slog.Warn("failed to clean up stored file", "path", storedPath, "error", deleteErr)
			}
		}
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	// Translation is transient: returned to the caller, never persisted, and
	// its failure never fails the submission.
	if s.translator != nil {
		source := submission.Description
		if submission.Transcript != nil {
			source = submission.Transcript
		}
		if source != nil {
			translated, err := s.translator.Translate(ctx, *source, input.Language)
			if err != nil {
				slog.Warn("translation failed", "error", err, "submission_id", submission.ID)
				result.Warnings = append(result.Warnings, "translation unavailable")
			} else {
				result.Translation = translated
			}
		}
	}

	slog.Info("submission ingested",
		"submission_id", submission.ID,
		"user_id", userID,
		"category", submission.Category,
		"content_type", submission.ContentType)
	return result, nil
}

func (s *IngestService) validate(input SubmissionInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("title must be at most %d characters", maxTitleLength)}
	}

	if !input.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("category must be one of: %s", joinCategories())}
	}

	if !input.ContentType.Valid() {
		return &ValidationError{Field: "content_type", Reason: fmt.Sprintf("content type must be one of: %s", joinContentTypes())}
	}

	if input.Language != "" {
		if _, ok := s.cfg.Languages[input.Language]; !ok {
			return &ValidationError{Field: "language", Reason: "unknown language code"}
		}
	}

	if !s.cfg.ValidRegion(input.Region) {
		return &ValidationError{Field: "region", Reason: "unknown region"}
	}

	if input.File != nil {
		allowed := config.AllowedExtensions[string(input.ContentType)]
		err := validation.ValidateFile(input.File.Filename, input.File.Size, allowed, s.cfg.MaxUploadSize)
		if err != nil {
			return &ValidationError{Field: "file", Reason: err.Error()}
		}
	}

	return nil
}

func joinCategories() string {
	out := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}

func joinContentTypes() string {
	out := make([]string, len(model.ContentTypes))
	for i, t := range model.ContentTypes {
		out[i] = string(t)
	}
	return strings.Join(out, ", ")
}
