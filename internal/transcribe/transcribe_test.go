package transcribe

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text  string
	err   error
	calls int
	lang  string
}

func (f *fakeBackend) Transcribe(_ context.Context, audio io.Reader, languageHint string) (string, error) {
	f.calls++
	f.lang = languageHint
	_, _ = io.ReadAll(audio)
	return f.text, f.err
}

func TestServicePrimarySucceeds(t *testing.T) {
	primary := &fakeBackend{text: "recognized text"}
	fallback := &fakeBackend{text: "should not run"}
	svc := NewService(primary, fallback, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "ta")
	assert.Equal(t, "recognized text", text)
	assert.Empty(t, reason)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
	assert.Equal(t, "ta", primary.lang)
}

func TestServiceFallsBackOnce(t *testing.T) {
	primary := &fakeBackend{err: errors.New("api down")}
	fallback := &fakeBackend{text: "fallback text"}
	svc := NewService(primary, fallback, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "ta")
	assert.Equal(t, "fallback text", text)
	assert.Empty(t, reason)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)

	// The fallback gets a locale-qualified code.
	assert.Equal(t, "ta-IN", fallback.lang)
}

func TestServiceFallsBackOnEmptyPrimaryText(t *testing.T) {
	primary := &fakeBackend{text: ""}
	fallback := &fakeBackend{text: "fallback text"}
	svc := NewService(primary, fallback, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "hi")
	assert.Equal(t, "fallback text", text)
	assert.Empty(t, reason)
}

func TestServiceBothFail(t *testing.T) {
	primary := &fakeBackend{err: errors.New("api down")}
	fallback := &fakeBackend{err: errors.New("also down")}
	svc := NewService(primary, fallback, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "ta")
	assert.Empty(t, text)
	assert.Equal(t, "transcription unavailable", reason)
}

func TestServiceFallbackUnderstandsNothing(t *testing.T) {
	svc := NewService(&fakeBackend{err: errors.New("down")}, &fakeBackend{text: ""}, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "ta")
	assert.Empty(t, text)
	assert.Equal(t, "could not understand audio", reason)
}

func TestServiceNoBackends(t *testing.T) {
	svc := NewService(nil, nil, time.Second)

	text, reason := svc.Transcribe(context.Background(), strings.NewReader("audio"), "ta")
	assert.Empty(t, text)
	assert.Equal(t, "no transcription backend configured", reason)
}

func TestServiceRewindsBetweenAttempts(t *testing.T) {
	primary := &fakeBackend{err: errors.New("down")}
	fallback := &fakeBackend{text: "ok"}
	svc := NewService(primary, fallback, time.Second)

	audio := strings.NewReader("full audio content")
	text, reason := svc.Transcribe(context.Background(), audio, "ta")
	require.Empty(t, reason)
	assert.Equal(t, "ok", text)
}

func TestLocaleQualify(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "ta", want: "ta-IN"},
		{code: "hi", want: "hi-IN"},
		{code: "bn", want: "bn-IN"},
		{code: "en-US", want: "en-US"},
		{code: "", want: ""},
		{code: "not a code", want: "not a code"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, LocaleQualify(tt.code))
		})
	}
}
