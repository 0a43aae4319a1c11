package transcribe

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// Backend turns audio into text in the hinted language. Implementations
// return an error on any failure mode, including "no speech understood".
type Backend interface {
	Transcribe(ctx context.Context, audio io.Reader, languageHint string) (string, error)
}

// Service runs a primary backend with a single fallback hand-off. It never
// fails across its boundary: all failure modes resolve to an empty text plus
// a reason string.
type Service struct {
	primary  Backend
	fallback Backend
	timeout  time.Duration
}

func NewService(primary, fallback Backend, timeout time.Duration) *Service {
	return &Service{primary: primary, fallback: fallback, timeout: timeout}
}

// Transcribe tries the primary backend, then the fallback with a
// locale-qualified language code. The audio reader is rewound between
// attempts. No retries beyond the one hand-off.
func (s *Service) Transcribe(ctx context.Context, audio io.ReadSeeker, languageHint string) (text string, reason string) {
	if s.primary == nil && s.fallback == nil {
		return "", "no transcription backend configured"
	}

	var primaryErr error
	if s.primary != nil {
		text, primaryErr = s.attempt(ctx, s.primary, audio, languageHint)
		if primaryErr == nil && text != "" {
			return text, ""
		}
		if primaryErr != nil {
			slog.Warn("primary transcription backend failed", "error", primaryErr, "language", languageHint)
		}
	}

	if s.fallback == nil {
		return "", "transcription unavailable"
	}

	_, err := audio.Seek(0, io.SeekStart)
	if err != nil {
		return "", "transcription unavailable"
	}

	text, err = s.attempt(ctx, s.fallback, audio, LocaleQualify(languageHint))
	if err != nil {
		slog.Warn("fallback transcription backend failed", "error", err, "language", languageHint)
		return "", "transcription unavailable"
	}
	if text == "" {
		return "", "could not understand audio"
	}
	return text, ""
}

func (s *Service) attempt(ctx context.Context, backend Backend, audio io.Reader, lang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return backend.Transcribe(ctx, audio, lang)
}

// LocaleQualify attaches a region to a bare language code ("ta" -> "ta-IN"),
// as network speech APIs expect locale-qualified codes. Codes that already
// carry a region, and unparseable codes, pass through unchanged.
func LocaleQualify(code string) string {
	if code == "" {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if _, conf := tag.Region(); conf >= language.High {
		return tag.String()
	}
	region, err := language.ParseRegion("IN")
	if err != nil {
		return code
	}
	qualified, err := language.Compose(tag, region)
	if err != nil {
		return code
	}
	return qualified.String()
}
