package transcribe

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Whisper transcribes audio through the OpenAI audio transcription endpoint.
type Whisper struct {
	client openai.Client
	model  string
}

func NewWhisper(apiKey, model string) *Whisper {
	return &Whisper{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audio io.Reader, languageHint string) (string, error) {
	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(w.model),
		File:  audio,
	}
	if languageHint != "" {
		params.Language = openai.String(languageHint)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
