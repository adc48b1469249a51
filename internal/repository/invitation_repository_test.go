package repository

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/proposal-service/internal/domain"
)

func TestInvitationCreateDefaults(t *testing.T) {
	repo := NewInvitationRepository()

	inv := &domain.Invitation{ProposalID: "PROP-001", Email: "guest@example.com", Role: domain.RoleViewer}
	require.NoError(t, repo.Create(context.Background(), inv))

	assert.True(t, strings.HasPrefix(inv.ID, "INV-"))
	assert.Equal(t, domain.InvitationPending, inv.Status)
	assert.False(t, inv.CreatedAt.IsZero())
}

func TestInvitationHasPending(t *testing.T) {
	repo := NewInvitationRepository()
	inv := &domain.Invitation{ProposalID: "PROP-001", Email: "guest@example.com", Role: domain.RoleViewer}
	require.NoError(t, repo.Create(context.Background(), inv))

	pending, err := repo.HasPending(context.Background(), "PROP-001", "GUEST@example.com")
	require.NoError(t, err)
	assert.True(t, pending)

	// A different proposal has no pending invitation for the email.
	pending, err = repo.HasPending(context.Background(), "PROP-002", "guest@example.com")
	require.NoError(t, err)
	assert.False(t, pending)

	require.NoError(t, repo.MarkAccepted(context.Background(), inv.ID))
	pending, err = repo.HasPending(context.Background(), "PROP-001", "guest@example.com")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestInvitationCreateRejectsDuplicatePending(t *testing.T) {
	repo := NewInvitationRepository()
	first := &domain.Invitation{ProposalID: "PROP-001", Email: "guest@example.com", Role: domain.RoleViewer}
	require.NoError(t, repo.Create(context.Background(), first))

	err := repo.Create(context.Background(), &domain.Invitation{
		ProposalID: "PROP-001", Email: "GUEST@example.com", Role: domain.RoleEditor,
	})
	assert.ErrorIs(t, err, ErrPendingInvitation)

	// Once the pending record is actioned a fresh invitation is allowed.
	require.NoError(t, repo.MarkAccepted(context.Background(), first.ID))
	assert.NoError(t, repo.Create(context.Background(), &domain.Invitation{
		ProposalID: "PROP-001", Email: "guest@example.com", Role: domain.RoleViewer,
	}))
}

func TestInvitationCreateUniquenessUnderConcurrency(t *testing.T) {
	repo := NewInvitationRepository()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), &domain.Invitation{
				ProposalID: "PROP-001", Email: "guest@example.com", Role: domain.RoleViewer,
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrPendingInvitation)
		}
	}
	assert.Equal(t, 1, created)

	pending, err := repo.HasPending(context.Background(), "PROP-001", "guest@example.com")
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestInvitationMarkAcceptedUnknownID(t *testing.T) {
	repo := NewInvitationRepository()

	err := repo.MarkAccepted(context.Background(), "INV-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvitationListByProposal(t *testing.T) {
	repo := NewInvitationRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Invitation{ProposalID: "PROP-001", Email: "a@x.com"}))
	require.NoError(t, repo.Create(context.Background(), &domain.Invitation{ProposalID: "PROP-002", Email: "b@x.com"}))

	invitations, err := repo.ListByProposal(context.Background(), "PROP-001")
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, "a@x.com", invitations[0].Email)
}
