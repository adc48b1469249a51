package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// ProposalRepository defines access to the proposal collection. The list
// is kept most-recent-first; Create inserts at the head.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	Update(ctx context.Context, proposal *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context) ([]domain.Proposal, error)
}

type proposalRepository struct {
	mu        sync.RWMutex
	proposals []domain.Proposal
	nextSeq   int
}

// NewProposalRepository returns a memory-backed implementation seeded
// with the given proposals.
func NewProposalRepository(seed []domain.Proposal) ProposalRepository {
	proposals := make([]domain.Proposal, len(seed))
	for i := range seed {
		proposals[i] = *seed[i].Clone()
	}
	return &proposalRepository{proposals: proposals, nextSeq: len(seed) + 1}
}

func (r *proposalRepository) Create(_ context.Context, proposal *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal.ID = fmt.Sprintf("PROP-%03d", r.nextSeq)
	r.nextSeq++
	proposal.LastUpdated = time.Now()

	r.proposals = append([]domain.Proposal{*proposal.Clone()}, r.proposals...)
	return nil
}

func (r *proposalRepository) Update(_ context.Context, proposal *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.proposals {
		if r.proposals[i].ID == proposal.ID {
			proposal.LastUpdated = time.Now()
			r.proposals[i] = *proposal.Clone()
			return nil
		}
	}
	return ErrNotFound
}

func (r *proposalRepository) GetByID(_ context.Context, id string) (*domain.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.proposals {
		if r.proposals[i].ID == id {
			return r.proposals[i].Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *proposalRepository) List(_ context.Context) ([]domain.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Proposal, 0, len(r.proposals))
	for i := range r.proposals {
		result = append(result, *r.proposals[i].Clone())
	}
	return result, nil
}
