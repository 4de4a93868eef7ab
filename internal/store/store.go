package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskpro-api/internal/domain"
)

// Mutation is a pure state transition: it derives a new AppState from the
// snapshot it is given, copying any collection it changes, and must not
// retain or modify the input.
type Mutation func(state domain.AppState) (domain.AppState, error)

// Store holds the current app document and serializes every mutation through
// one lock, so each transition reads and replaces a consistent snapshot.
// After a transition is installed the whole document is rewritten to durable
// storage; a failed write is logged as a warning and not rolled back.
type Store struct {
	mu      sync.Mutex
	state   domain.AppState
	gateway *Gateway
	logger  *zap.Logger
}

// New loads the app document through the gateway and returns a store
// positioned on it.
func New(ctx context.Context, gateway *Gateway, logger *zap.Logger) (*Store, error) {
	state, err := gateway.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{state: state, gateway: gateway, logger: logger}, nil
}

// NewWithState returns a store positioned on the given state. Used by tests
// and by callers that already loaded the document.
func NewWithState(state domain.AppState, gateway *Gateway, logger *zap.Logger) *Store {
	return &Store{state: state, gateway: gateway, logger: logger}
}

// State returns the current snapshot. Callers must treat it as read-only;
// mutations replace collections rather than editing them in place, so a held
// snapshot stays internally consistent forever.
func (s *Store) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Commit applies a mutation to the current snapshot and installs the result
// as the new current state, then persists the whole document. The mutation
// runs under the store lock, so no other transition can interleave with it.
func (s *Store) Commit(ctx context.Context, mutate Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.state)
	if err != nil {
		return err
	}
	s.state = next

	if s.gateway != nil {
		if err := s.gateway.Save(ctx, next); err != nil {
			// Last write wins and there is no in-memory rollback; surface the
			// failed write without failing the mutation.
			s.logger.Warn("Failed to persist app document", zap.Error(err))
		}
	}
	return nil
}
