package service

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/store"
)

// MockTextGenClient is a mock implementation of client.TextGenClient
type MockTextGenClient struct {
	EnabledFunc  func() bool
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockTextGenClient) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

func (m *MockTextGenClient) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// MockNotifierClient is a mock implementation of client.NotifierClient
type MockNotifierClient struct {
	EnabledFunc func() bool
	NotifyFunc  func(ctx context.Context, title, body string) error
}

func (m *MockNotifierClient) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

func (m *MockNotifierClient) Notify(ctx context.Context, title, body string) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, title, body)
	}
	return nil
}

// MockBroadcaster records broadcast messages for assertions.
type MockBroadcaster struct {
	mu       sync.Mutex
	Messages []domain.ChatMessage
}

func (m *MockBroadcaster) BroadcastMessage(conversationID string, message domain.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
}

func (m *MockBroadcaster) Sent() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatMessage(nil), m.Messages...)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

// newSeedStore returns a store over the bundled seed dataset with
// persistence disabled.
func newSeedStore() *store.Store {
	return store.NewWithState(store.SeedState(), nil, zap.NewNop())
}
