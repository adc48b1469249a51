package dto

import "github.com/spec-kit/proposal-service/internal/domain"

// CreateUserRequest payload for account creation (admin only).
type CreateUserRequest struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Role     domain.AccessRole `json:"role"`
}

// UserResponse is the outward account projection. The credential hash
// never leaves the service.
type UserResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       domain.AccessRole `json:"role"`
	AvatarURL  string            `json:"avatar_url"`
	MFAEnabled bool              `json:"mfa_enabled"`
}

// AuditLogResponse is one trail entry.
type AuditLogResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Action    string `json:"action"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}
