// Package gtx provides a translation adapter using the free Google
// Translate web endpoint. It needs no API key, which keeps the default
// pipeline usable without extra credentials, but the endpoint is
// unofficial and may throttle heavy use.
package gtx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://translate.googleapis.com"
	DefaultTimeout = 15 * time.Second
)

// Config holds configuration for the translator.
type Config struct {
	// BaseURL is the translate endpoint base URL (default: https://translate.googleapis.com).
	BaseURL string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Translator translates text to English via translate_a/single.
type Translator struct {
	client  *http.Client
	baseURL string
}

// New creates a new translator.
func New(cfg Config) *Translator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Translator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Translate translates text from the source language to English.
// An empty source lets the endpoint auto-detect.
func (t *Translator) Translate(ctx context.Context, text, source string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if source == "" {
		source = "auto"
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", "en")
	params.Set("dt", "t")
	params.Set("q", text)

	endpoint := t.baseURL + "/translate_a/single?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate error (status %d): %s", resp.StatusCode, string(body))
	}

	return parseSegments(body)
}

// parseSegments extracts translated text from the endpoint's nested
// array response: [[["translated","original",...],...],...]. Segments
// are concatenated, one per input sentence.
func parseSegments(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var result strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var text string
		if err := json.Unmarshal(segment[0], &text); err != nil {
			continue
		}
		result.WriteString(text)
	}

	if result.Len() == 0 {
		return "", fmt.Errorf("translate: no translated segments in response")
	}
	return result.String(), nil
}

// Ping validates the endpoint is reachable with a minimal translation.
func (t *Translator) Ping(ctx context.Context) error {
	_, err := t.Translate(ctx, "hola", "es")
	if err != nil {
		return fmt.Errorf("gtx: ping failed: %w", err)
	}
	return nil
}
