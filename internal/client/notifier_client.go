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

// Notification is the payload handed to the external notification sink.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotifierClient defines the interface for the external notification sink.
type NotifierClient interface {
	// Enabled reports whether the sink is configured (permission granted).
	Enabled() bool
	// Notify displays a system notification with the given title and body.
	Notify(ctx context.Context, title, body string) error
}

// notifierClient implements NotifierClient over a webhook URL
type notifierClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotifierClient creates a new notification sink client. An empty baseURL
// yields a disabled client; callers are expected to skip sending.
func NewNotifierClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotifierClient {
	return &notifierClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

func (c *notifierClient) Enabled() bool {
	return c.baseURL != ""
}

// Notify posts the notification to the sink. Failures are reported to the
// caller, who treats them as a logged no-op.
func (c *notifierClient) Notify(ctx context.Context, title, body string) error {
	if !c.Enabled() {
		return fmt.Errorf("notification sink not configured")
	}

	jsonBody, err := json.Marshal(Notification{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordExternalAPICall("notifier", 0, time.Since(start), err)
		}
		return fmt.Errorf("failed to call notification sink: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordExternalAPICall("notifier", resp.StatusCode, time.Since(start), nil)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification sink returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Notification delivered", zap.String("title", title))
	return nil
}
