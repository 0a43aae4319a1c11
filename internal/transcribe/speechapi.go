package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SpeechAPI is a thin client for a network speech recognition service that
// accepts raw audio bytes and returns recognized text as JSON. It expects
// locale-qualified language codes ("ta-IN" rather than "ta").
type SpeechAPI struct {
	baseURL string
	client  *http.Client
}

func NewSpeechAPI(baseURL string) *SpeechAPI {
	return &SpeechAPI{baseURL: baseURL, client: &http.Client{}}
}

func (s *SpeechAPI) Transcribe(ctx context.Context, audio io.Reader, languageHint string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid speech API URL: %w", err)
	}
	q := u.Query()
	if languageHint != "" {
		q.Set("lang", languageHint)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), audio)
	if err != nil {
		return "", fmt.Errorf("failed to build speech API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("speech API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode speech API response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
