package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a LibreTranslate-style translation endpoint:
// POST {"q": ..., "source": ..., "target": ...} -> {"translatedText": ...}.
type Client struct {
	baseURL string
	target  string
	client  *http.Client
}

func NewClient(baseURL, target string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		target:  target,
		client:  &http.Client{Timeout: timeout},
	}
}

// Translate renders text in the configured target language. Whitespace-only
// input short-circuits to an empty result without a network call. When the
// source language is unknown, pass "auto".
func (c *Client) Translate(ctx context.Context, text, source string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if source == "" {
		source = "auto"
	}

	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": source,
		"target": c.target,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	return out.TranslatedText, nil
}
