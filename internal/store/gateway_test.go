package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpro-api/internal/database"
	"taskpro-api/internal/domain"
	"taskpro-api/internal/repository"
)

func newTestGateway(t *testing.T) (*Gateway, repository.DocumentRepository) {
	t.Helper()

	db, err := database.New(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repository.NewDocumentRepository(db)
	return NewGateway(repo, zap.NewNop()), repo
}

func TestGateway_LoadSeedsWhenAbsent(t *testing.T) {
	gateway, _ := newTestGateway(t)

	state, err := gateway.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, state.Tasks, 6)
	assert.Len(t, state.Users, 3)
	assert.Equal(t, []string{"col-1", "col-2", "col-5", "col-3", "col-4"}, state.ColumnOrder)
	assert.Len(t, state.Automations, 3)
	assert.Len(t, state.Documents, 3)
	assert.Len(t, state.Conversations, 2)
}

func TestGateway_SaveThenLoadRoundTrip(t *testing.T) {
	gateway, _ := newTestGateway(t)
	ctx := context.Background()

	state := SeedState()
	task := state.Tasks["task-1"]
	task.Title = "Título alterado"
	state.Tasks = state.CloneTasks()
	state.Tasks["task-1"] = task

	require.NoError(t, gateway.Save(ctx, state))

	loaded, err := gateway.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Título alterado", loaded.Tasks["task-1"].Title)
	assert.Len(t, loaded.Tasks, 6)
}

func TestGateway_LoadFillsMissingCollections(t *testing.T) {
	gateway, repo := newTestGateway(t)
	ctx := context.Background()

	// A document captured before the automations, documents and chat
	// collections existed
	legacy := map[string]interface{}{
		"tasks":       map[string]interface{}{},
		"users":       map[string]interface{}{},
		"columns":     map[string]interface{}{},
		"columnOrder": []string{},
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, KeyAppData, raw))

	state, err := gateway.Load(ctx)
	require.NoError(t, err)

	assert.NotNil(t, state.Automations)
	assert.Empty(t, state.Automations)
	assert.NotNil(t, state.Documents)
	assert.Empty(t, state.Documents)
	// Chat collections fall back to the seed threads
	assert.Len(t, state.Conversations, 2)
	assert.Len(t, state.ChatMessages, 3)
}

func TestGateway_UserDirectorySeededOnFirstLoad(t *testing.T) {
	gateway, repo := newTestGateway(t)
	ctx := context.Background()

	users, err := gateway.LoadUserDirectory(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Ana Silva", users["user-1"].Name)

	// The seeded directory is written back so later loads skip the seed path
	raw, err := repo.Get(ctx, KeyUserDirectory)
	require.NoError(t, err)
	stored := map[string]domain.User{}
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, 3)

	users["user-9"] = domain.User{ID: "user-9", Name: "Novo Usuário", Password: "123"}
	require.NoError(t, gateway.SaveUserDirectory(ctx, users))

	reloaded, err := gateway.LoadUserDirectory(ctx)
	require.NoError(t, err)
	assert.Len(t, reloaded, 4)
}

func TestGateway_SettingsRoundTrip(t *testing.T) {
	gateway, _ := newTestGateway(t)
	ctx := context.Background()

	var theme string
	found, err := gateway.GetSetting(ctx, KeyTheme, &theme)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, gateway.PutSetting(ctx, KeyTheme, "dark"))

	found, err = gateway.GetSetting(ctx, KeyTheme, &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", theme)

	require.NoError(t, gateway.DeleteSetting(ctx, KeyTheme))
	found, err = gateway.GetSetting(ctx, KeyTheme, &theme)
	require.NoError(t, err)
	assert.False(t, found)
}
