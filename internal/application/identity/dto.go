package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopstream/backend/internal/domain/identity"
)

// RegisterRequest is the command to register a new account
type RegisterRequest struct {
	Username string `json:"userName" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateProfileRequest is the command to change an account's profile
type UpdateProfileRequest struct {
	Username string `json:"userName" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

// AdminUpsertRequest is the administrative command to create or update an
// account, including its admin flag
type AdminUpsertRequest struct {
	Username string `json:"userName" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthenticateRequest is the command to verify credentials
type AuthenticateRequest struct {
	Username string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the read model returned by identity queries.
// The password hash never leaves the service.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"userName"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a user aggregate to its response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
