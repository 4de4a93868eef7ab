package dto

import "taskpro-api/internal/domain"

// RegisterRequest is the payload for self-registration at the login screen.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the local credential check payload.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest is the payload for adding a team member.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

// UpdateUserRequest is a partial user edit; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	Password  *string `json:"password"`
}

// UserResponse is a user without the credential secret.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// NewUserResponse strips the credential secret from a user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// NewUserResponses strips the credential secret from a user list.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
