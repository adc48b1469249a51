package events

import (
	"time"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProposalCreated       EventType = "proposal_created"
	EventProposalStatusChanged EventType = "proposal_status_changed"
	EventProposalShared        EventType = "proposal_shared"
	EventInvitationAccepted    EventType = "invitation_accepted"
	EventAccessRevoked         EventType = "access_revoked"
	EventUserCreated           EventType = "user_created"
)

// Event represents a domain event emitted by services. Actor is the
// email of the user who performed the action.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ProposalID string      `json:"proposal_id,omitempty"`
	Actor      string      `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ProposalCreatedPayload payload.
type ProposalCreatedPayload struct {
	Title    string                  `json:"title"`
	Client   string                  `json:"client"`
	Priority domain.ProposalPriority `json:"priority"`
	Value    float64                 `json:"value"`
}

// ProposalStatusChangedPayload payload.
type ProposalStatusChangedPayload struct {
	OldStatus domain.ProposalStatus `json:"old_status"`
	NewStatus domain.ProposalStatus `json:"new_status"`
}

// ProposalSharedPayload payload.
type ProposalSharedPayload struct {
	InvitationID string            `json:"invitation_id"`
	Email        string            `json:"email"`
	Role         domain.AccessRole `json:"role"`
}

// InvitationAcceptedPayload payload.
type InvitationAcceptedPayload struct {
	InvitationID string            `json:"invitation_id"`
	Email        string            `json:"email"`
	Role         domain.AccessRole `json:"role"`
}

// AccessRevokedPayload payload.
type AccessRevokedPayload struct {
	Email string `json:"email"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Email string            `json:"email"`
	Role  domain.AccessRole `json:"role"`
}
