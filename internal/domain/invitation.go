package domain

import "time"

// InvitationStatus enumerates invitation lifecycle states.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation is a pending offer of proposal access. Once accepted it is
// kept as a historical record; revoking team access does not touch it.
type Invitation struct {
	ID         string
	ProposalID string
	Email      string
	Role       AccessRole
	Status     InvitationStatus
	CreatedAt  time.Time
}
