package domain

import "time"

// ProposalStatus enumerates workflow states for proposals.
type ProposalStatus string

const (
	StatusDraft      ProposalStatus = "Draft"
	StatusInReview   ProposalStatus = "In Review"
	StatusInRevision ProposalStatus = "In Revision"
	StatusApproved   ProposalStatus = "Approved"
	StatusSubmitted  ProposalStatus = "Submitted"
	StatusWon        ProposalStatus = "Won"
	StatusLost       ProposalStatus = "Lost"
)

// ValidStatus reports whether the given value is a known status.
func ValidStatus(status ProposalStatus) bool {
	switch status {
	case StatusDraft, StatusInReview, StatusInRevision, StatusApproved, StatusSubmitted, StatusWon, StatusLost:
		return true
	}
	return false
}

// ProposalPriority enumerates urgency levels.
type ProposalPriority string

const (
	PriorityHigh   ProposalPriority = "High"
	PriorityMedium ProposalPriority = "Medium"
	PriorityLow    ProposalPriority = "Low"
)

// TeamMember is a user's membership on one proposal. The role here is
// scoped to the proposal and may differ from the user's global role.
type TeamMember struct {
	Name      string
	Email     string
	Role      AccessRole
	AvatarURL string
}

// Proposal is the aggregate for sales proposals.
type Proposal struct {
	ID           string
	Title        string
	Client       string
	Status       ProposalStatus
	Priority     ProposalPriority
	Progress     int
	Value        float64
	Region       string
	Industry     string
	Objective    string
	SolutionType string
	Content      string
	Owner        string
	OwnerEmail   string
	// SubmittedBy records who last moved the proposal into review. It is
	// re-stamped on every In Review transition and never cleared.
	SubmittedBy string
	Team        []TeamMember
	LastUpdated time.Time
}

// Clone returns a deep copy so callers can never mutate stored state.
func (p *Proposal) Clone() *Proposal {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Team = make([]TeamMember, len(p.Team))
	copy(copied.Team, p.Team)
	return &copied
}
