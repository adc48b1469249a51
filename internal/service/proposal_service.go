package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/domain"
	"github.com/spec-kit/proposal-service/internal/events"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// ProposalService coordinates the proposal workflow: creation, content
// updates and the review state machine.
type ProposalService struct {
	proposals  repository.ProposalRepository
	users      repository.UserRepository
	audit      repository.AuditLogRepository
	dispatcher events.Dispatcher
}

// ProposalDependencies bundles repositories for the proposal service.
type ProposalDependencies struct {
	ProposalRepo repository.ProposalRepository
	UserRepo     repository.UserRepository
	AuditRepo    repository.AuditLogRepository
	Dispatcher   events.Dispatcher
}

// ProposalCreateInput describes the creation payload.
type ProposalCreateInput struct {
	Title        string
	Client       string
	Value        float64
	Priority     domain.ProposalPriority
	Objective    string
	Industry     string
	Region       string
	SolutionType string
	Content      string
	OwnerEmail   string
}

// ProposalUpdateInput carries optional field updates. Status is honored
// only for admins; it is the operational path through which Won and
// Lost outcomes are recorded.
type ProposalUpdateInput struct {
	Title    *string
	Client   *string
	Value    *float64
	Priority *domain.ProposalPriority
	Content  *string
	Status   *domain.ProposalStatus
}

// NewProposalService constructs the service.
func NewProposalService(deps ProposalDependencies) *ProposalService {
	return &ProposalService{
		proposals:  deps.ProposalRepo,
		users:      deps.UserRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Workflow transitions reachable through ChangeStatus. Won and Lost are
// operational outcomes; no command transitions into them.
var allowedTransitions = map[domain.ProposalStatus][]domain.ProposalStatus{
	domain.StatusDraft:      {domain.StatusInReview},
	domain.StatusInReview:   {domain.StatusApproved, domain.StatusInRevision},
	domain.StatusInRevision: {domain.StatusInReview},
	domain.StatusApproved:   {domain.StatusSubmitted},
	domain.StatusSubmitted:  {domain.StatusApproved, domain.StatusInRevision},
	domain.StatusWon:        {},
	domain.StatusLost:       {},
}

// Progress shown on the dashboard per workflow state.
var statusProgress = map[domain.ProposalStatus]int{
	domain.StatusDraft:      10,
	domain.StatusInReview:   60,
	domain.StatusInRevision: 30,
	domain.StatusApproved:   100,
	domain.StatusSubmitted:  90,
	domain.StatusWon:        100,
	domain.StatusLost:       100,
}

func isValidTransition(current, next domain.ProposalStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CreateProposal creates a new draft proposal.
func (s *ProposalService) CreateProposal(ctx context.Context, input ProposalCreateInput) (*domain.Proposal, error) {
	ownerName := "Unknown User"
	if owner, err := s.users.GetByEmail(ctx, input.OwnerEmail); err == nil {
		ownerName = owner.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	proposal := &domain.Proposal{
		Title:        strings.TrimSpace(input.Title),
		Client:       strings.TrimSpace(input.Client),
		Status:       domain.StatusDraft,
		Priority:     priority,
		Progress:     statusProgress[domain.StatusDraft],
		Value:        input.Value,
		Region:       input.Region,
		Industry:     input.Industry,
		Objective:    input.Objective,
		SolutionType: input.SolutionType,
		Content:      input.Content,
		Owner:        ownerName,
		OwnerEmail:   input.OwnerEmail,
		Team:         []domain.TeamMember{},
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, input.OwnerEmail, "Proposal Created",
		fmt.Sprintf("Proposal ID: %s, Title: %s", proposal.ID, proposal.Title))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventProposalCreated,
		ProposalID: proposal.ID,
		Actor:      input.OwnerEmail,
		Payload: events.ProposalCreatedPayload{
			Title:    proposal.Title,
			Client:   proposal.Client,
			Priority: proposal.Priority,
			Value:    proposal.Value,
		},
	})
	return proposal, nil
}

// ListProposals returns the full pipeline, most recent first.
func (s *ProposalService) ListProposals(ctx context.Context) ([]domain.Proposal, error) {
	return s.proposals.List(ctx)
}

// GetProposal fetches a single proposal.
func (s *ProposalService) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("proposal", map[string]any{"proposal_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}

// ChangeStatus applies a workflow transition on behalf of the actor.
// The self-approval rule is enforced here regardless of role: it is a
// correctness invariant, not a UI affordance, and denied attempts are
// audited before the error surfaces.
func (s *ProposalService) ChangeStatus(ctx context.Context, actor *domain.User, proposalID string, newStatus domain.ProposalStatus) (*domain.Proposal, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	proposal, err := s.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if (newStatus == domain.StatusApproved || newStatus == domain.StatusInRevision) &&
		proposal.SubmittedBy != "" && strings.EqualFold(actor.Email, proposal.SubmittedBy) {
		s.logAction(ctx, actor.Email, "Self-Approval Denied",
			fmt.Sprintf("Proposal ID: %s, Attempted status: %s", proposal.ID, newStatus))
		return nil, apperrors.NewForbidden("you cannot approve or reject a proposal you submitted yourself")
	}

	if !auth.CanTransition(actor.Role, newStatus) {
		return nil, apperrors.NewForbidden("role may not perform this transition")
	}
	if !isValidTransition(proposal.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": proposal.Status,
			"to":   newStatus,
		})
	}

	oldStatus := proposal.Status
	proposal.Status = newStatus
	proposal.Progress = statusProgress[newStatus]
	if newStatus == domain.StatusInReview {
		proposal.SubmittedBy = actor.Email
	}

	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, actor.Email, "Status Changed",
		fmt.Sprintf("Proposal ID: %s, Status: %s", proposal.ID, newStatus))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventProposalStatusChanged,
		ProposalID: proposal.ID,
		Actor:      actor.Email,
		Payload: events.ProposalStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return proposal, nil
}

// UpdateProposal merges field updates into a proposal. Only admins may
// set the status directly; that path records operational outcomes such
// as Won or Lost without going through the review workflow.
func (s *ProposalService) UpdateProposal(ctx context.Context, actor *domain.User, proposalID string, input ProposalUpdateInput) (*domain.Proposal, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if !auth.CanEditContent(actor.Role) {
		return nil, apperrors.NewForbidden("role may not edit proposals")
	}

	proposal, err := s.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		proposal.Title = strings.TrimSpace(*input.Title)
	}
	if input.Client != nil {
		proposal.Client = strings.TrimSpace(*input.Client)
	}
	if input.Value != nil {
		proposal.Value = *input.Value
	}
	if input.Priority != nil {
		proposal.Priority = *input.Priority
	}
	if input.Content != nil {
		proposal.Content = *input.Content
	}
	if input.Status != nil {
		if !auth.CanManageUsers(actor.Role) {
			return nil, apperrors.NewForbidden("only admins may set status directly")
		}
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		proposal.Status = *input.Status
		proposal.Progress = statusProgress[*input.Status]
	}

	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, actor.Email, "Proposal Updated", "Proposal ID: "+proposal.ID)
	return proposal, nil
}

func (s *ProposalService) logAction(ctx context.Context, userEmail, action, details string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, userEmail, action, details)
}

func (s *ProposalService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
