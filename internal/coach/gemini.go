// Package coach answers free-text fitness questions. A Replier (Gemini) is
// optional; Coach falls back to canned keyword answers when it is missing or fails.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrServiceUnavailable wraps every initialization or call failure of a Replier.
var ErrServiceUnavailable = errors.New("coach service unavailable")

// Replier turns a prompt into a text reply.
type Replier interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiConfig configures NewGeminiClient. BaseURL and Model default when empty.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // overridable for tests
	Model   string
	Timeout time.Duration
}

// GeminiClient calls the generateContent endpoint over plain net/http.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

/* ─── Wire types ─────────────────────────────────────────────────────── */

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient returns ErrServiceUnavailable when no API key is configured.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrServiceUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// GenerateReply sends prompt as a single user turn and returns the first
// candidate's text.
func (g *GeminiClient) GenerateReply(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrServiceUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrServiceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini returned status %d: %s", ErrServiceUnavailable, resp.StatusCode, string(respBytes))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrServiceUnavailable, err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrServiceUnavailable)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// Close releases idle connections. The client must not be used afterwards.
func (g *GeminiClient) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
