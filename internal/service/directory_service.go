package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpro-api/internal/config"
	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
	"taskpro-api/internal/util"
)

// DirectoryService defines the interface for the team directory and local
// authentication.
type DirectoryService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}

// directoryServiceImpl is the implementation of DirectoryService
type directoryServiceImpl struct {
	store   *store.Store
	gateway *store.Gateway
	jwtCfg  config.JWTConfig
	metrics *metrics.Metrics
	logger  *zap.Logger

	// directoryMu serializes every load-modify-save of the credential
	// directory; it is persisted outside the app document, so store.Commit
	// cannot order its writes.
	directoryMu sync.Mutex
}

// NewDirectoryService creates a new instance of DirectoryService
func NewDirectoryService(st *store.Store, gateway *store.Gateway, jwtCfg config.JWTConfig, m *metrics.Metrics, logger *zap.Logger) DirectoryService {
	return &directoryServiceImpl{
		store:   st,
		gateway: gateway,
		jwtCfg:  jwtCfg,
		metrics: m,
		logger:  logger,
	}
}

// Register creates an account at the login screen. Names are unique
// case-insensitively across the credential directory.
func (s *directoryServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	s.directoryMu.Lock()
	defer s.directoryMu.Unlock()

	directory, err := s.gateway.LoadUserDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range directory {
		if strings.EqualFold(u.Name, req.Name) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Este nome de usuário já existe.", "")
		}
	}

	user := domain.User{
		ID:        "user-" + uuid.NewString(),
		Name:      req.Name,
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", req.Name),
		Password:  req.Password,
	}

	directory[user.ID] = user
	if err := s.gateway.SaveUserDirectory(ctx, directory); err != nil {
		return nil, err
	}
	if err := s.upsertStateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return s.openSession(ctx, user)
}

// Login checks the local credential directory and opens a session. The
// authenticated user id is remembered under its own settings key so the
// session survives a reload.
func (s *directoryServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	directory, err := s.gateway.LoadUserDirectory(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range directory {
		if strings.EqualFold(u.Name, req.Name) {
			if u.Password != req.Password {
				break
			}
			return s.openSession(ctx, u)
		}
	}
	return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid credentials", "")
}

// Logout clears the remembered session user.
func (s *directoryServiceImpl) Logout(ctx context.Context) error {
	return s.gateway.DeleteSetting(ctx, store.KeyCurrentUser)
}

// ListUsers returns the team directory without credential secrets, ordered
// by name for a stable listing.
func (s *directoryServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	state := s.store.State()
	users := make([]domain.User, 0, len(state.Users))
	for _, u := range state.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].ID < users[j].ID
		}
		return users[i].Name < users[j].Name
	})
	return dto.NewUserResponses(users), nil
}

// GetUser returns one team member by id.
func (s *directoryServiceImpl) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	state := s.store.State()
	user, ok := state.Users[userID]
	if !ok {
		return nil, response.NewNotFoundError("User not found")
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// CreateUser adds a team member from the team view. The same uniqueness rule
// applies as at registration.
func (s *directoryServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	s.directoryMu.Lock()
	defer s.directoryMu.Unlock()

	directory, err := s.gateway.LoadUserDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range directory {
		if strings.EqualFold(u.Name, req.Name) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Este nome de usuário já existe.", "")
		}
	}

	password := req.Password
	if password == "" {
		password = "123"
	}
	user := domain.User{
		ID:        "user-" + uuid.NewString(),
		Name:      req.Name,
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", req.Name),
		Password:  password,
	}

	directory[user.ID] = user
	if err := s.gateway.SaveUserDirectory(ctx, directory); err != nil {
		return nil, err
	}
	if err := s.upsertStateUser(ctx, user); err != nil {
		return nil, err
	}

	out := dto.NewUserResponse(user)
	return &out, nil
}

// UpdateUser applies a partial edit to a team member, keeping the credential
// directory in sync with the app document.
func (s *directoryServiceImpl) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	s.directoryMu.Lock()
	defer s.directoryMu.Unlock()

	directory, err := s.gateway.LoadUserDirectory(ctx)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		for id, u := range directory {
			if id != userID && strings.EqualFold(u.Name, *req.Name) {
				return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Este nome de usuário já existe.", "")
			}
		}
	}

	var updated domain.User
	err = s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		user, ok := state.Users[userID]
		if !ok {
			return state, response.NewNotFoundError("User not found")
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.AvatarURL != nil {
			user.AvatarURL = *req.AvatarURL
		}
		if req.Password != nil {
			user.Password = *req.Password
		}

		next := state
		next.Users = state.CloneUsers()
		next.Users[userID] = user
		updated = user
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if existing, ok := directory[userID]; ok {
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.AvatarURL != nil {
			existing.AvatarURL = *req.AvatarURL
		}
		if req.Password != nil {
			existing.Password = *req.Password
		}
		directory[userID] = existing
		if err := s.gateway.SaveUserDirectory(ctx, directory); err != nil {
			return nil, err
		}
	}

	out := dto.NewUserResponse(updated)
	return &out, nil
}

// DeleteUser removes a team member and prunes every reference to them:
// task assignments and document shares lose the id, the tasks and documents
// themselves stay. Deleting your own account is rejected.
func (s *directoryServiceImpl) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return response.NewAppError(response.ErrCodeValidation, "Cannot delete your own account", "")
	}

	s.directoryMu.Lock()
	defer s.directoryMu.Unlock()

	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		if _, ok := state.Users[userID]; !ok {
			return state, response.NewNotFoundError("User not found")
		}

		next := state
		next.Users = state.CloneUsers()
		delete(next.Users, userID)

		next.Tasks = state.CloneTasks()
		for id, task := range state.Tasks {
			if !containsString(task.AssigneeIDs, userID) {
				continue
			}
			task = task.Clone()
			task.AssigneeIDs = removeString(task.AssigneeIDs, userID)
			next.Tasks[id] = task
		}

		next.Documents = state.CloneDocuments()
		for i, doc := range next.Documents {
			if !containsString(doc.SharedWith, userID) {
				continue
			}
			doc = doc.Clone()
			doc.SharedWith = removeString(doc.SharedWith, userID)
			next.Documents[i] = doc
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	directory, err := s.gateway.LoadUserDirectory(ctx)
	if err != nil {
		return err
	}
	if _, ok := directory[userID]; ok {
		delete(directory, userID)
		if err := s.gateway.SaveUserDirectory(ctx, directory); err != nil {
			return err
		}
	}

	s.metrics.IncrementUserDeleted()
	s.logger.Info("User deleted", zap.String("user_id", userID))
	return nil
}

func (s *directoryServiceImpl) openSession(ctx context.Context, user domain.User) (*dto.LoginResponse, error) {
	token, err := util.GenerateToken(user.ID, user.Name, s.jwtCfg.Secret, s.jwtCfg.ExpiresIn.Std())
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue session token", err.Error())
	}
	if err := s.gateway.PutSetting(ctx, store.KeyCurrentUser, user.ID); err != nil {
		s.logger.Warn("Failed to remember session user", zap.Error(err))
	}
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// upsertStateUser mirrors a directory entry into the app document so the
// team view and the credential directory never disagree.
func (s *directoryServiceImpl) upsertStateUser(ctx context.Context, user domain.User) error {
	return s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Users = state.CloneUsers()
		next.Users[user.ID] = user
		return next, nil
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
