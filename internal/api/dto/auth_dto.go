package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MFAVerifyRequest redeems a pending MFA challenge.
type MFAVerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MFAChallengeResponse is returned when login requires a second factor.
type MFAChallengeResponse struct {
	MFARequired bool   `json:"mfa_required"`
	ChallengeID string `json:"challenge_id"`
}
