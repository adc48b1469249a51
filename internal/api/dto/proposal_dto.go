package dto

import (
	"time"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// CreateProposalRequest payload for new proposals. ClientNeeds doubles
// as the stored objective.
type CreateProposalRequest struct {
	Title        string                  `json:"title"`
	ClientName   string                  `json:"client_name"`
	Value        float64                 `json:"value"`
	Priority     domain.ProposalPriority `json:"priority"`
	ClientNeeds  string                  `json:"client_needs"`
	Industry     string                  `json:"industry"`
	Region       string                  `json:"region"`
	SolutionType string                  `json:"solution_type"`
	DraftContent string                  `json:"draft_content"`
}

// UpdateProposalRequest carries partial field updates.
type UpdateProposalRequest struct {
	Title    *string                  `json:"title"`
	Client   *string                  `json:"client"`
	Value    *float64                 `json:"value"`
	Priority *domain.ProposalPriority `json:"priority"`
	Content  *string                  `json:"content"`
	Status   *domain.ProposalStatus   `json:"status"`
}

// ChangeStatusRequest requests a workflow transition.
type ChangeStatusRequest struct {
	Status domain.ProposalStatus `json:"status"`
}

// TeamMemberResponse is one proposal team entry.
type TeamMemberResponse struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.AccessRole `json:"role"`
	AvatarURL string            `json:"avatar_url"`
}

// ProposalResponse is the outward proposal projection.
type ProposalResponse struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Client       string                  `json:"client"`
	Status       domain.ProposalStatus   `json:"status"`
	Priority     domain.ProposalPriority `json:"priority"`
	Progress     int                     `json:"progress"`
	Value        float64                 `json:"value"`
	Region       string                  `json:"region"`
	Industry     string                  `json:"industry"`
	Objective    string                  `json:"objective"`
	SolutionType string                  `json:"solution_type"`
	Content      string                  `json:"content"`
	Owner        string                  `json:"owner"`
	OwnerEmail   string                  `json:"owner_email"`
	SubmittedBy  string                  `json:"submitted_by,omitempty"`
	Team         []TeamMemberResponse    `json:"team"`
	LastUpdated  time.Time               `json:"last_updated"`
}

// TemplateResponse is one catalog entry.
type TemplateResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UsageCount  int    `json:"usage_count"`
	Author      string `json:"author"`
	SuccessRate int    `json:"success_rate"`
	Content     string `json:"content,omitempty"`
}
