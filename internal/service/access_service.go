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

const teamMemberAvatar = "https://placehold.co/32x32.png"

// AccessService manages proposal sharing: invitations, acceptance and
// team membership. Invitations are historical records; accepting one
// grants membership, revoking membership never touches the invitation.
type AccessService struct {
	proposals   repository.ProposalRepository
	invitations repository.InvitationRepository
	audit       repository.AuditLogRepository
	dispatcher  events.Dispatcher
}

// AccessDependencies bundles repositories for the access service.
type AccessDependencies struct {
	ProposalRepo   repository.ProposalRepository
	InvitationRepo repository.InvitationRepository
	AuditRepo      repository.AuditLogRepository
	Dispatcher     events.Dispatcher
}

// NewAccessService constructs the service.
func NewAccessService(deps AccessDependencies) *AccessService {
	return &AccessService{
		proposals:   deps.ProposalRepo,
		invitations: deps.InvitationRepo,
		audit:       deps.AuditRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Share invites an email onto a proposal's team. Admin only.
func (s *AccessService) Share(ctx context.Context, inviter *domain.User, proposalID, email string, role domain.AccessRole) (*domain.Invitation, error) {
	if inviter == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if !auth.CanShare(inviter.Role) {
		return nil, apperrors.NewForbidden("only admins may share proposals")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	proposal, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if memberIndex(proposal.Team, email) >= 0 {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("%s already has access to this proposal", email),
			map[string]any{"email": email},
		)
	}

	invitation := &domain.Invitation{
		ProposalID: proposalID,
		Email:      email,
		Role:       role,
	}
	// Pending-invitation uniqueness is enforced by the repository under
	// its write lock, so concurrent shares cannot both get through.
	if err := s.invitations.Create(ctx, invitation); err != nil {
		if errors.Is(err, repository.ErrPendingInvitation) {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("an invitation for %s is already pending for this proposal", email),
				map[string]any{"email": email},
			)
		}
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, inviter.Email, "Proposal Shared",
		fmt.Sprintf("Invited %s as %s to proposal %s", email, role, proposalID))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventProposalShared,
		ProposalID: proposalID,
		Actor:      inviter.Email,
		Payload: events.ProposalSharedPayload{
			InvitationID: invitation.ID,
			Email:        email,
			Role:         role,
		},
	})
	return invitation, nil
}

// Accept actions a pending invitation: the invitee joins the team and
// the invitation becomes a terminal accepted record.
func (s *AccessService) Accept(ctx context.Context, invitationID string) (*domain.Proposal, error) {
	invitation, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("invitation", map[string]any{"invitation_id": invitationID})
		}
		return nil, apperrors.MapError(err)
	}
	if invitation.Status != domain.InvitationPending {
		return nil, apperrors.NewConflict("invitation has already been actioned", map[string]any{
			"invitation_id": invitationID,
		})
	}

	proposal, err := s.GrantAccess(ctx, invitation.ProposalID, invitation.Email, invitation.Role)
	if err != nil {
		return nil, err
	}

	if err := s.invitations.MarkAccepted(ctx, invitation.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, invitation.Email, "Accepted Invite",
		fmt.Sprintf("Joined proposal %s as %s", invitation.ProposalID, invitation.Role))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventInvitationAccepted,
		ProposalID: invitation.ProposalID,
		Actor:      invitation.Email,
		Payload: events.InvitationAcceptedPayload{
			InvitationID: invitation.ID,
			Email:        invitation.Email,
			Role:         invitation.Role,
		},
	})
	return proposal, nil
}

// GrantAccess upserts a team member: an existing member gets the new
// role, otherwise a member is appended with a display name derived from
// the email local-part.
func (s *AccessService) GrantAccess(ctx context.Context, proposalID, email string, role domain.AccessRole) (*domain.Proposal, error) {
	proposal, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if idx := memberIndex(proposal.Team, email); idx >= 0 {
		proposal.Team[idx].Role = role
	} else {
		proposal.Team = append(proposal.Team, domain.TeamMember{
			Name:      displayNameFromEmail(email),
			Email:     email,
			Role:      role,
			AvatarURL: teamMemberAvatar,
		})
	}

	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}

// RevokeAccess removes an email from the team. Removing an email that
// is not on the team is a no-op; the audit entry is written either way.
func (s *AccessService) RevokeAccess(ctx context.Context, revoker *domain.User, proposalID, email string) (*domain.Proposal, error) {
	if revoker == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if !auth.CanShare(revoker.Role) {
		return nil, apperrors.NewForbidden("only admins may revoke access")
	}

	proposal, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	team := make([]domain.TeamMember, 0, len(proposal.Team))
	for _, member := range proposal.Team {
		if strings.EqualFold(member.Email, email) {
			continue
		}
		team = append(team, member)
	}
	proposal.Team = team

	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, revoker.Email, "Access Revoked",
		fmt.Sprintf("Removed %s from proposal %s", email, proposalID))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventAccessRevoked,
		ProposalID: proposalID,
		Actor:      revoker.Email,
		Payload:    events.AccessRevokedPayload{Email: email},
	})
	return proposal, nil
}

// ListInvitations returns all invitations for a proposal.
func (s *AccessService) ListInvitations(ctx context.Context, proposalID string) ([]domain.Invitation, error) {
	if _, err := s.getProposal(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.invitations.ListByProposal(ctx, proposalID)
}

func (s *AccessService) getProposal(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("proposal", map[string]any{"proposal_id": proposalID})
		}
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}

func memberIndex(team []domain.TeamMember, email string) int {
	for i := range team {
		if strings.EqualFold(team[i].Email, email) {
			return i
		}
	}
	return -1
}

// displayNameFromEmail capitalizes the email local-part, e.g.
// "dana@example.com" becomes "Dana".
func displayNameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + local[1:]
}

func (s *AccessService) logAction(ctx context.Context, userEmail, action, details string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, userEmail, action, details)
}

func (s *AccessService) publishEvent(ctx context.Context, event events.Event) {
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
