package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskpro-api/internal/metrics"
)

// GenerateRequest is the payload sent to the text-generation service.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// GenerateResponse is the text-generation service reply.
type GenerateResponse struct {
	Text string `json:"text"`
}

// TextGenClient defines the interface for the external text generator used
// by the chat auto-reply path.
type TextGenClient interface {
	// Enabled reports whether the generator is configured.
	Enabled() bool
	// Generate submits a prompt and returns the generated text, which may be
	// empty.
	Generate(ctx context.Context, prompt string) (string, error)
}

// textGenClient implements TextGenClient over an HTTP endpoint
type textGenClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewTextGenClient creates a new text-generation client. An empty baseURL
// yields a disabled client and the auto-reply path is skipped.
func NewTextGenClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) TextGenClient {
	return &textGenClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

func (c *textGenClient) Enabled() bool {
	return c.baseURL != ""
}

// Generate posts the prompt and decodes the reply text.
func (c *textGenClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("text-generation service not configured")
	}

	jsonBody, err := json.Marshal(GenerateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordExternalAPICall("textgen", 0, time.Since(start), err)
		}
		return "", fmt.Errorf("failed to call text-generation service: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordExternalAPICall("textgen", resp.StatusCode, time.Since(start), nil)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text-generation service returned status %d", resp.StatusCode)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	c.logger.Debug("Generated text", zap.Int("prompt_len", len(prompt)), zap.Int("reply_len", len(out.Text)))
	return out.Text, nil
}
