package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/repository"
	"github.com/paramparahq/parampara/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissionRepository struct {
	created   []*model.Submission
	createErr error
}

func (f *fakeSubmissionRepository) Create(s *model.Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSubmissionRepository) ByID(string) (*model.Submission, error) {
	return nil, repository.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepository) ByUser(userID string) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range f.created {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepository) All() ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range f.created {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSubmissionRepository) Delete(string) error { return nil }

func (f *fakeSubmissionRepository) Stats() (*model.Stats, error) {
	return &model.Stats{}, nil
}

type fakeLocationRepository struct {
	latest *model.Location
}

func (f *fakeLocationRepository) Create(*model.Location) error { return nil }

func (f *fakeLocationRepository) LatestByUser(string) (*model.Location, error) {
	if f.latest == nil {
		return nil, repository.ErrLocationNotFound
	}
	return f.latest, nil
}

func (f *fakeLocationRepository) ByUser(string, int) ([]model.Location, error) {
	return nil, nil
}

type fakeTranscriber struct {
	text   string
	reason string
	lang   string
	calls  int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.ReadSeeker, languageHint string) (string, string) {
	f.calls++
	f.lang = languageHint
	_, _ = io.ReadAll(audio)
	return f.text, f.reason
}

type fakeTranslator struct {
	out   string
	err   error
	input string
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	f.calls++
	f.input = text
	return f.out, f.err
}

type ingestFixture struct {
	svc         *IngestService
	submissions *fakeSubmissionRepository
	locations   *fakeLocationRepository
	transcriber *fakeTranscriber
	translator  *fakeTranslator
	uploadDir   string
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir, 1<<20)
	require.NoError(t, err)

	f := &ingestFixture{
		submissions: &fakeSubmissionRepository{},
		locations:   &fakeLocationRepository{},
		transcriber: &fakeTranscriber{text: "transcribed words"},
		translator:  &fakeTranslator{out: "translated words"},
		uploadDir:   uploadDir,
	}

	cfg := &config.Config{
		MaxUploadSize: 1 << 20,
		Regions:       []string{"Tamil Nadu", "Kerala"},
		Languages:     map[string]string{"ta": "Tamil", "hi": "Hindi"},
	}

	f.svc = NewIngestService(f.submissions, f.locations, store, f.transcriber, f.translator, cfg)
	return f
}

func textInput() SubmissionInput {
	return SubmissionInput{
		Title:       "Pongal",
		Description: "a festival rice dish",
		Category:    model.CategoryFood,
		ContentType: model.ContentText,
		Language:    "ta",
		Region:      "Tamil Nadu",
	}
}

func audioInput(content string) SubmissionInput {
	return SubmissionInput{
		Title:       "Harvest song",
		Category:    model.CategoryCulture,
		ContentType: model.ContentAudio,
		Language:    "ta",
		File: &Upload{
			Filename: "song.mp3",
			Size:     int64(len(content)),
			Content:  strings.NewReader(content),
		},
	}
}

func TestIngestText(t *testing.T) {
	f := newIngestFixture(t)

	result, err := f.svc.Ingest(context.Background(), "u1", textInput())
	require.NoError(t, err)
	require.Len(t, f.submissions.created, 1)

	sub := result.Submission
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "Pongal", sub.Title)
	require.NotNil(t, sub.Description)
	assert.Equal(t, "a festival rice dish", *sub.Description)
	assert.Equal(t, model.CategoryFood, sub.Category)
	require.NotNil(t, sub.Region)
	assert.Equal(t, "Tamil Nadu", *sub.Region)
	assert.Nil(t, sub.FilePath)
	assert.Nil(t, sub.Transcript)

	// Translation of the description comes back but is never persisted.
	assert.Equal(t, "translated words", result.Translation)
	assert.Equal(t, "a festival rice dish", f.translator.input)
	assert.Empty(t, result.Warnings)

	// No transcription for text content.
	assert.Equal(t, 0, f.transcriber.calls)
}

func TestIngestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmissionInput)
		field  string
	}{
		{name: "missing title", mutate: func(in *SubmissionInput) { in.Title = "  " }, field: "title"},
		{name: "long title", mutate: func(in *SubmissionInput) { in.Title = strings.Repeat("x", 201) }, field: "title"},
		{name: "bad category", mutate: func(in *SubmissionInput) { in.Category = "Sports" }, field: "category"},
		{name: "bad content type", mutate: func(in *SubmissionInput) { in.ContentType = "Hologram" }, field: "content_type"},
		{name: "unknown language", mutate: func(in *SubmissionInput) { in.Language = "xx" }, field: "language"},
		{name: "unknown region", mutate: func(in *SubmissionInput) { in.Region = "Atlantis" }, field: "region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIngestFixture(t)
			input := textInput()
			tt.mutate(&input)

			_, err := f.svc.Ingest(context.Background(), "u1", input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, f.submissions.created)
		})
	}
}

func TestIngestMediaWithoutFileIsAWarning(t *testing.T) {
	f := newIngestFixture(t)
	input := audioInput("audio bytes")
	input.File = nil

	result, err := f.svc.Ingest(context.Background(), "u1", input)
	require.NoError(t, err)
	assert.Contains(t, result.Warnings, "no file attached")
	assert.Nil(t, result.Submission.FilePath)
	require.Len(t, f.submissions.created, 1)

	// Nothing to transcribe without a file.
	assert.Equal(t, 0, f.transcriber.calls)
}

func TestIngestRejectsWrongExtension(t *testing.T) {
	f := newIngestFixture(t)
	input := audioInput("audio bytes")
	input.File.Filename = "song.exe"

	_, err := f.svc.Ingest(context.Background(), "u1", input)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "file", validationErr.Field)

	// Rejection happens before any write.
	entries, err := os.ReadDir(filepath.Join(f.uploadDir, "audio"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestRejectsOversizedFile(t *testing.T) {
	f := newIngestFixture(t)
	input := audioInput("audio bytes")
	input.File.Size = 2 << 20

	_, err := f.svc.Ingest(context.Background(), "u1", input)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "file", validationErr.Field)
	assert.Empty(t, f.submissions.created)
}

func TestIngestAudioStoresFileAndTranscribes(t *testing.T) {
	f := newIngestFixture(t)

	result, err := f.svc.Ingest(context.Background(), "u1", audioInput("la la la"))
	require.NoError(t, err)

	sub := result.Submission
	require.NotNil(t, sub.FilePath)
	require.NotNil(t, sub.FileSize)
	assert.Equal(t, int64(len("la la la")), *sub.FileSize)

	data, err := os.ReadFile(*sub.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "la la la", string(data))

	require.NotNil(t, sub.Transcript)
	assert.Equal(t, "transcribed words", *sub.Transcript)
	assert.Equal(t, "ta", f.transcriber.lang)

	// The transcript, not the (empty) description, is what gets translated.
	assert.Equal(t, "transcribed words", f.translator.input)
	assert.Equal(t, "translated words", result.Translation)
}

func TestIngestTranscriptionFailureIsAWarning(t *testing.T) {
	f := newIngestFixture(t)
	f.transcriber.text = ""
	f.transcriber.reason = "transcription unavailable"

	result, err := f.svc.Ingest(context.Background(), "u1", audioInput("la la la"))
	require.NoError(t, err)

	assert.Nil(t, result.Submission.Transcript)
	assert.Contains(t, result.Warnings, "transcription unavailable")
	require.Len(t, f.submissions.created, 1)
}

func TestIngestTranslationFailureIsAWarning(t *testing.T) {
	f := newIngestFixture(t)
	f.translator.err = errors.New("translate service down")

	result, err := f.svc.Ingest(context.Background(), "u1", textInput())
	require.NoError(t, err)

	assert.Empty(t, result.Translation)
	assert.Contains(t, result.Warnings, "translation unavailable")
	require.Len(t, f.submissions.created, 1)
}

func TestIngestGeotagsFromLatestLocation(t *testing.T) {
	f := newIngestFixture(t)
	f.locations.latest = &model.Location{Lat: 13.08, Lon: 80.27}

	result, err := f.svc.Ingest(context.Background(), "u1", textInput())
	require.NoError(t, err)

	require.NotNil(t, result.Submission.Lat)
	require.NotNil(t, result.Submission.Lon)
	assert.Equal(t, 13.08, *result.Submission.Lat)
	assert.Equal(t, 80.27, *result.Submission.Lon)
}

func TestIngestWithoutLocationLeavesCoordsEmpty(t *testing.T) {
	f := newIngestFixture(t)

	result, err := f.svc.Ingest(context.Background(), "u1", textInput())
	require.NoError(t, err)
	assert.Nil(t, result.Submission.Lat)
	assert.Nil(t, result.Submission.Lon)
}

func TestIngestCleansUpFileWhenPersistFails(t *testing.T) {
	f := newIngestFixture(t)
	f.submissions.createErr = errors.New("db is down")

	_, err := f.svc.Ingest(context.Background(), "u1", audioInput("la la la"))
	require.Error(t, err)

	// The stored file must not be orphaned.
	entries, err := os.ReadDir(filepath.Join(f.uploadDir, "audio"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestNoTranslatorConfigured(t *testing.T) {
	f := newIngestFixture(t)
	f.svc.translator = nil

	result, err := f.svc.Ingest(context.Background(), "u1", textInput())
	require.NoError(t, err)
	assert.Empty(t, result.Translation)
	assert.Empty(t, result.Warnings)
}
