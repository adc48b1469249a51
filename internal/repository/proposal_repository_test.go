package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/proposal-service/internal/domain"
)

func TestProposalCreateAssignsSequentialIDs(t *testing.T) {
	seed := []domain.Proposal{{ID: "PROP-001"}, {ID: "PROP-002"}}
	repo := NewProposalRepository(seed)

	first := &domain.Proposal{Title: "A"}
	require.NoError(t, repo.Create(context.Background(), first))
	assert.Equal(t, "PROP-003", first.ID)

	second := &domain.Proposal{Title: "B"}
	require.NoError(t, repo.Create(context.Background(), second))
	assert.Equal(t, "PROP-004", second.ID)
}

func TestProposalListNewestFirst(t *testing.T) {
	repo := NewProposalRepository(nil)
	require.NoError(t, repo.Create(context.Background(), &domain.Proposal{Title: "first"}))
	require.NoError(t, repo.Create(context.Background(), &domain.Proposal{Title: "second"}))

	proposals, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "second", proposals[0].Title)
	assert.Equal(t, "first", proposals[1].Title)
}

func TestProposalReadsAreDefensiveCopies(t *testing.T) {
	repo := NewProposalRepository([]domain.Proposal{{
		ID:   "PROP-001",
		Team: []domain.TeamMember{{Name: "Guest", Email: "guest@example.com"}},
	}})

	fetched, err := repo.GetByID(context.Background(), "PROP-001")
	require.NoError(t, err)
	fetched.Team[0].Name = "Mutated"
	fetched.Title = "Mutated"

	again, err := repo.GetByID(context.Background(), "PROP-001")
	require.NoError(t, err)
	assert.Equal(t, "Guest", again.Team[0].Name)
	assert.Empty(t, again.Title)
}

func TestProposalUpdateStampsLastUpdated(t *testing.T) {
	repo := NewProposalRepository([]domain.Proposal{{ID: "PROP-001"}})

	proposal, err := repo.GetByID(context.Background(), "PROP-001")
	require.NoError(t, err)
	proposal.Title = "Updated"
	require.NoError(t, repo.Update(context.Background(), proposal))

	stored, err := repo.GetByID(context.Background(), "PROP-001")
	require.NoError(t, err)
	assert.Equal(t, "Updated", stored.Title)
	assert.False(t, stored.LastUpdated.IsZero())
}

func TestProposalUpdateUnknownID(t *testing.T) {
	repo := NewProposalRepository(nil)

	err := repo.Update(context.Background(), &domain.Proposal{ID: "PROP-999"})
	assert.ErrorIs(t, err, ErrNotFound)
}
