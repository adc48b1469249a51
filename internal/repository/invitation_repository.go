package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// InvitationRepository defines access to sharing invitations. Create
// enforces at most one pending invitation per (proposal, email) under
// the write lock, so the check and the insert are a single atomic step.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	ListByProposal(ctx context.Context, proposalID string) ([]domain.Invitation, error)
	HasPending(ctx context.Context, proposalID, email string) (bool, error)
	MarkAccepted(ctx context.Context, id string) error
}

type invitationRepository struct {
	mu          sync.RWMutex
	invitations []domain.Invitation
}

// NewInvitationRepository returns an empty memory-backed implementation.
func NewInvitationRepository() InvitationRepository {
	return &invitationRepository{}
}

func (r *invitationRepository) Create(_ context.Context, invitation *domain.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.invitations {
		inv := &r.invitations[i]
		if inv.ProposalID == invitation.ProposalID &&
			strings.EqualFold(inv.Email, invitation.Email) &&
			inv.Status == domain.InvitationPending {
			return ErrPendingInvitation
		}
	}

	if invitation.ID == "" {
		invitation.ID = "INV-" + uuid.NewString()
	}
	invitation.Status = domain.InvitationPending
	invitation.CreatedAt = time.Now()
	r.invitations = append(r.invitations, *invitation)
	return nil
}

func (r *invitationRepository) GetByID(_ context.Context, id string) (*domain.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.invitations {
		if r.invitations[i].ID == id {
			copied := r.invitations[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *invitationRepository) ListByProposal(_ context.Context, proposalID string) ([]domain.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Invitation{}
	for i := range r.invitations {
		if r.invitations[i].ProposalID == proposalID {
			result = append(result, r.invitations[i])
		}
	}
	return result, nil
}

func (r *invitationRepository) HasPending(_ context.Context, proposalID, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.invitations {
		inv := &r.invitations[i]
		if inv.ProposalID == proposalID && strings.EqualFold(inv.Email, email) && inv.Status == domain.InvitationPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *invitationRepository) MarkAccepted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.invitations {
		if r.invitations[i].ID == id {
			r.invitations[i].Status = domain.InvitationAccepted
			return nil
		}
	}
	return ErrNotFound
}
