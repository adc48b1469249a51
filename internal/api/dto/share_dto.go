package dto

import "github.com/spec-kit/proposal-service/internal/domain"

// ShareProposalRequest invites an email onto a proposal team.
type ShareProposalRequest struct {
	Email string            `json:"email"`
	Role  domain.AccessRole `json:"role"`
}

// InvitationResponse is the outward invitation projection.
type InvitationResponse struct {
	ID         string                  `json:"id"`
	ProposalID string                  `json:"proposal_id"`
	Email      string                  `json:"email"`
	Role       domain.AccessRole       `json:"role"`
	Status     domain.InvitationStatus `json:"status"`
	CreatedAt  string                  `json:"created_at"`
}
