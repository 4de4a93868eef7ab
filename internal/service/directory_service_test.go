package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpro-api/internal/config"
	"taskpro-api/internal/database"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/repository"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
	"taskpro-api/internal/util"
)

const testJWTSecret = "test-secret"

func newDirectoryFixture(t *testing.T) (DirectoryService, *store.Store, *store.Gateway) {
	t.Helper()

	db, err := database.New(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	logger := zap.NewNop()
	gateway := store.NewGateway(repository.NewDocumentRepository(db), logger)
	st, err := store.New(context.Background(), gateway, logger)
	require.NoError(t, err)

	jwtCfg := config.JWTConfig{Secret: testJWTSecret, ExpiresIn: config.Duration(time.Hour)}
	svc := NewDirectoryService(st, gateway, jwtCfg, newTestMetrics(), logger)
	return svc, st, gateway
}

func TestRegister_DuplicateNameRejected(t *testing.T) {
	svc, _, _ := newDirectoryFixture(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Ana Silva", Password: "segredo"})
	require.Error(t, err)

	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
	assert.Equal(t, "Este nome de usuário já existe.", appErr.Message)

	// Uniqueness is case-insensitive
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Name: "ana silva", Password: "segredo"})
	require.Error(t, err)
}

func TestRegister_ConcurrentDuplicatesAdmitOne(t *testing.T) {
	svc, _, gateway := newDirectoryFixture(t)

	const attempts = 4
	start := make(chan struct{})
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Duplicado", Password: "segredo"})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := err.(*response.AppError)
		require.True(t, ok)
		assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
	}
	assert.Equal(t, 1, succeeded)

	directory, err := gateway.LoadUserDirectory(context.Background())
	require.NoError(t, err)
	named := 0
	for _, u := range directory {
		if u.Name == "Duplicado" {
			named++
		}
	}
	assert.Equal(t, 1, named)
	// The winner was not dropped by a racing save
	assert.Len(t, directory, 4)
}

func TestRegister_CreatesSessionAndDirectoryEntry(t *testing.T) {
	svc, st, gateway := newDirectoryFixture(t)

	session, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Daniel Rocha", Password: "segredo"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "Daniel Rocha", session.User.Name)

	userID, err := util.ParseToken(session.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)

	// Mirrored into the app document
	_, ok := st.State().Users[session.User.ID]
	assert.True(t, ok)

	// Persisted in the credential directory
	directory, err := gateway.LoadUserDirectory(context.Background())
	require.NoError(t, err)
	entry, ok := directory[session.User.ID]
	require.True(t, ok)
	assert.Equal(t, "segredo", entry.Password)
}

func TestLogin_ChecksCredentialsAndRemembersUser(t *testing.T) {
	svc, _, gateway := newDirectoryFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Name: "Ana Silva", Password: "wrong"})
	require.Error(t, err)
	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)

	session, err := svc.Login(context.Background(), &dto.LoginRequest{Name: "Ana Silva", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)
	assert.NotEmpty(t, session.Token)

	var remembered string
	found, err := gateway.GetSetting(context.Background(), store.KeyCurrentUser, &remembered)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "user-1", remembered)

	// Logout forgets the remembered user
	require.NoError(t, svc.Logout(context.Background()))
	found, err = gateway.GetSetting(context.Background(), store.KeyCurrentUser, &remembered)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteUser_SelfDeleteRejected(t *testing.T) {
	svc, _, _ := newDirectoryFixture(t)

	err := svc.DeleteUser(context.Background(), "user-1", "user-1")
	require.Error(t, err)
	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestDeleteUser_PrunesReferencesButKeepsEntities(t *testing.T) {
	svc, st, gateway := newDirectoryFixture(t)

	require.NoError(t, svc.DeleteUser(context.Background(), "user-1", "user-3"))

	state := st.State()
	_, exists := state.Users["user-3"]
	assert.False(t, exists)

	// Assignee reference pruned, task kept
	task1 := state.Tasks["task-1"]
	assert.Equal(t, []string{"user-1"}, task1.AssigneeIDs)
	task4 := state.Tasks["task-4"]
	assert.Empty(t, task4.AssigneeIDs)

	// Share reference pruned, document kept
	for _, doc := range state.Documents {
		for _, id := range doc.SharedWith {
			assert.NotEqual(t, "user-3", id)
		}
	}
	assert.Len(t, state.Documents, 3)

	directory, err := gateway.LoadUserDirectory(context.Background())
	require.NoError(t, err)
	_, exists = directory["user-3"]
	assert.False(t, exists)
}

func TestUpdateUser_SyncsCredentialDirectory(t *testing.T) {
	svc, st, gateway := newDirectoryFixture(t)

	name := "Bruno C."
	password := "novo-segredo"
	updated, err := svc.UpdateUser(context.Background(), "user-2", &dto.UpdateUserRequest{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Bruno C.", updated.Name)

	assert.Equal(t, "Bruno C.", st.State().Users["user-2"].Name)

	directory, err := gateway.LoadUserDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bruno C.", directory["user-2"].Name)
	assert.Equal(t, "novo-segredo", directory["user-2"].Password)
}

func TestListUsers_StripsCredentials(t *testing.T) {
	svc, _, _ := newDirectoryFixture(t)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Ana Silva", users[0].Name)
}
