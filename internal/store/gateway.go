package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/repository"
)

// Durable storage keys. KeyAppData is the single key holding the whole app
// document; the others are independent secondary keys.
const (
	KeyAppData       = "taskAppData"
	KeyUserDirectory = "taskAppUsers"
	KeyCurrentUser   = "taskAppCurrentUser"
	KeyTheme         = "theme"
	KeyAppTheme      = "appTheme"
	KeyVisibleViews  = "visibleViews"
	KeySavedSearches = "savedSearches"
)

// Gateway is the persistence gateway: the only component that touches
// durable storage. It loads the app document (substituting seed data and
// forward-compatibility defaults) and rewrites it wholesale on every save.
type Gateway struct {
	repo   repository.DocumentRepository
	logger *zap.Logger
}

// NewGateway creates a new Gateway instance
func NewGateway(repo repository.DocumentRepository, logger *zap.Logger) *Gateway {
	return &Gateway{repo: repo, logger: logger}
}

// Load reads the app document. An absent key yields the bundled seed
// dataset. A document captured before the automations/documents/conversations
// collections existed gets empty lists for the first two and the seed's
// values for the chat collections.
func (g *Gateway) Load(ctx context.Context) (domain.AppState, error) {
	raw, err := g.repo.Get(ctx, KeyAppData)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		g.logger.Info("No stored app document found, using seed dataset")
		return SeedState(), nil
	}
	if err != nil {
		return domain.AppState{}, fmt.Errorf("failed to load app document: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.AppState{}, fmt.Errorf("failed to decode app document: %w", err)
	}

	seed := SeedState()
	if state.Tasks == nil {
		state.Tasks = map[string]domain.Task{}
	}
	if state.Users == nil {
		state.Users = map[string]domain.User{}
	}
	if state.Columns == nil {
		state.Columns = map[string]domain.Column{}
	}
	if state.Automations == nil {
		state.Automations = []domain.AutomationRule{}
	}
	if state.Documents == nil {
		state.Documents = []domain.Document{}
	}
	if state.Conversations == nil {
		state.Conversations = seed.Conversations
	}
	if state.ChatMessages == nil {
		state.ChatMessages = seed.ChatMessages
	}

	return state, nil
}

// Save overwrites the whole app document under its single key.
func (g *Gateway) Save(ctx context.Context, state domain.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode app document: %w", err)
	}
	if err := g.repo.Put(ctx, KeyAppData, raw); err != nil {
		return fmt.Errorf("failed to write app document: %w", err)
	}
	return nil
}

// LoadUserDirectory reads the credential directory. It is persisted
// separately from the app document so login works before the document loads;
// an empty or absent directory is seeded with the default users.
func (g *Gateway) LoadUserDirectory(ctx context.Context) (map[string]domain.User, error) {
	raw, err := g.repo.Get(ctx, KeyUserDirectory)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		users := SeedState().Users
		if err := g.SaveUserDirectory(ctx, users); err != nil {
			return nil, err
		}
		g.logger.Info("Seeded user directory", zap.Int("users", len(users)))
		return users, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}

	users := map[string]domain.User{}
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user directory: %w", err)
	}
	if len(users) == 0 {
		users = SeedState().Users
		if err := g.SaveUserDirectory(ctx, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// SaveUserDirectory overwrites the credential directory.
func (g *Gateway) SaveUserDirectory(ctx context.Context, users map[string]domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user directory: %w", err)
	}
	return g.repo.Put(ctx, KeyUserDirectory, raw)
}

// GetSetting reads a secondary settings key into out. Returns false when the
// key is absent.
func (g *Gateway) GetSetting(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := g.repo.Get(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return true, nil
}

// PutSetting writes a secondary settings key.
func (g *Gateway) PutSetting(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return g.repo.Put(ctx, key, raw)
}

// DeleteSetting removes a secondary settings key.
func (g *Gateway) DeleteSetting(ctx context.Context, key string) error {
	return g.repo.Delete(ctx, key)
}
