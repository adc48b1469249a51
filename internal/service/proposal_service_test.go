package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/proposal-service/internal/domain"
	"github.com/spec-kit/proposal-service/internal/events"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

func testUser(name string, role domain.AccessRole) *domain.User {
	return &domain.User{
		ID:    "user-" + name,
		Name:  name,
		Email: name + "@proposer.ai",
		Role:  role,
	}
}

type proposalFixture struct {
	svc       *ProposalService
	proposals repository.ProposalRepository
	audit     repository.AuditLogRepository
}

func newProposalFixture(seedProposals []domain.Proposal, seedUsers ...*domain.User) *proposalFixture {
	users := make([]domain.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		users = append(users, *u)
	}
	proposalRepo := repository.NewProposalRepository(seedProposals)
	auditRepo := repository.NewAuditLogRepository()
	svc := NewProposalService(ProposalDependencies{
		ProposalRepo: proposalRepo,
		UserRepo:     repository.NewUserRepository(users),
		AuditRepo:    auditRepo,
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
	return &proposalFixture{svc: svc, proposals: proposalRepo, audit: auditRepo}
}

func latestAuditAction(t *testing.T, audit repository.AuditLogRepository) string {
	t.Helper()
	logs, err := audit.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	return logs[0].Action
}

func TestCreateProposalDefaults(t *testing.T) {
	owner := testUser("dana", domain.RoleEditor)
	fx := newProposalFixture(nil, owner)

	proposal, err := fx.svc.CreateProposal(context.Background(), ProposalCreateInput{
		Title:      "Network Upgrade for Acme",
		Client:     "Acme Corp",
		Value:      125000,
		Objective:  "Modernize the branch office network",
		OwnerEmail: owner.Email,
	})
	require.NoError(t, err)

	assert.Equal(t, "PROP-001", proposal.ID)
	assert.Equal(t, domain.StatusDraft, proposal.Status)
	assert.Equal(t, 10, proposal.Progress)
	assert.Equal(t, domain.PriorityMedium, proposal.Priority)
	assert.Equal(t, "dana", proposal.Owner)
	assert.Empty(t, proposal.Team)
	assert.False(t, proposal.LastUpdated.IsZero())

	assert.Equal(t, "Proposal Created", latestAuditAction(t, fx.audit))

	stored, err := fx.svc.GetProposal(context.Background(), proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, proposal.Title, stored.Title)
}

func TestCreateProposalUnknownOwner(t *testing.T) {
	fx := newProposalFixture(nil)

	proposal, err := fx.svc.CreateProposal(context.Background(), ProposalCreateInput{
		Title:      "Unowned",
		Client:     "Acme",
		OwnerEmail: "ghost@proposer.ai",
	})
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", proposal.Owner)
}

func TestChangeStatusTransitions(t *testing.T) {
	cases := []struct {
		name        string
		actor       *domain.User
		from        domain.ProposalStatus
		submittedBy string
		to          domain.ProposalStatus
		wantCode    string
	}{
		{
			name:  "editor submits draft for review",
			actor: testUser("edith", domain.RoleEditor),
			from:  domain.StatusDraft,
			to:    domain.StatusInReview,
		},
		{
			name:        "manager approves another user's submission",
			actor:       testUser("mara", domain.RoleManager),
			from:        domain.StatusInReview,
			submittedBy: "edith@proposer.ai",
			to:          domain.StatusApproved,
		},
		{
			name:        "approver requests revision",
			actor:       testUser("avery", domain.RoleApprover),
			from:        domain.StatusInReview,
			submittedBy: "edith@proposer.ai",
			to:          domain.StatusInRevision,
		},
		{
			name:  "revised proposal goes back to review",
			actor: testUser("mara", domain.RoleManager),
			from:  domain.StatusInRevision,
			to:    domain.StatusInReview,
		},
		{
			name:  "admin marks approved proposal submitted",
			actor: testUser("ada", domain.RoleAdmin),
			from:  domain.StatusApproved,
			to:    domain.StatusSubmitted,
		},
		{
			name:        "submitted proposal can return to revision",
			actor:       testUser("mara", domain.RoleManager),
			from:        domain.StatusSubmitted,
			submittedBy: "edith@proposer.ai",
			to:          domain.StatusInRevision,
		},
		{
			name:        "editor cannot approve",
			actor:       testUser("edith", domain.RoleEditor),
			from:        domain.StatusInReview,
			submittedBy: "other@proposer.ai",
			to:          domain.StatusApproved,
			wantCode:    "FORBIDDEN",
		},
		{
			name:     "viewer cannot submit for review",
			actor:    testUser("vera", domain.RoleViewer),
			from:     domain.StatusDraft,
			to:       domain.StatusInReview,
			wantCode: "FORBIDDEN",
		},
		{
			name:        "draft cannot jump straight to approved",
			actor:       testUser("mara", domain.RoleManager),
			from:        domain.StatusDraft,
			to:          domain.StatusApproved,
			wantCode:    "CONFLICT",
		},
		{
			name:     "no command path into won",
			actor:    testUser("ada", domain.RoleAdmin),
			from:     domain.StatusSubmitted,
			to:       domain.StatusWon,
			wantCode: "FORBIDDEN",
		},
		{
			name:     "no command path into lost",
			actor:    testUser("ada", domain.RoleAdmin),
			from:     domain.StatusSubmitted,
			to:       domain.StatusLost,
			wantCode: "FORBIDDEN",
		},
		{
			name:     "unknown status rejected",
			actor:    testUser("mara", domain.RoleManager),
			from:     domain.StatusDraft,
			to:       domain.ProposalStatus("Archived"),
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seed := []domain.Proposal{{
				ID:          "PROP-100",
				Title:       "Seeded",
				Status:      tc.from,
				SubmittedBy: tc.submittedBy,
			}}
			fx := newProposalFixture(seed, tc.actor)

			proposal, err := fx.svc.ChangeStatus(context.Background(), tc.actor, "PROP-100", tc.to)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, apperrors.CodeOf(err))
				stored, getErr := fx.svc.GetProposal(context.Background(), "PROP-100")
				require.NoError(t, getErr)
				assert.Equal(t, tc.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, proposal.Status)
			assert.Equal(t, statusProgress[tc.to], proposal.Progress)
		})
	}
}

func TestChangeStatusStampsSubmittedBy(t *testing.T) {
	editor := testUser("edith", domain.RoleEditor)
	manager := testUser("mara", domain.RoleManager)
	seed := []domain.Proposal{{ID: "PROP-100", Status: domain.StatusDraft}}
	fx := newProposalFixture(seed, editor, manager)

	proposal, err := fx.svc.ChangeStatus(context.Background(), editor, "PROP-100", domain.StatusInReview)
	require.NoError(t, err)
	assert.Equal(t, editor.Email, proposal.SubmittedBy)

	// A revision cycle re-stamps whoever resubmits.
	_, err = fx.svc.ChangeStatus(context.Background(), manager, "PROP-100", domain.StatusInRevision)
	require.NoError(t, err)
	proposal, err = fx.svc.ChangeStatus(context.Background(), manager, "PROP-100", domain.StatusInReview)
	require.NoError(t, err)
	assert.Equal(t, manager.Email, proposal.SubmittedBy)
}

func TestChangeStatusSelfApprovalDenied(t *testing.T) {
	manager := testUser("mara", domain.RoleManager)
	seed := []domain.Proposal{{
		ID:          "PROP-100",
		Status:      domain.StatusInReview,
		SubmittedBy: manager.Email,
	}}

	for _, target := range []domain.ProposalStatus{domain.StatusApproved, domain.StatusInRevision} {
		t.Run(string(target), func(t *testing.T) {
			fx := newProposalFixture(seed, manager)

			_, err := fx.svc.ChangeStatus(context.Background(), manager, "PROP-100", target)
			require.Error(t, err)
			assert.Equal(t, "FORBIDDEN", apperrors.CodeOf(err))

			stored, err := fx.svc.GetProposal(context.Background(), "PROP-100")
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInReview, stored.Status)

			assert.Equal(t, "Self-Approval Denied", latestAuditAction(t, fx.audit))
		})
	}
}

func TestUpdateProposalStatusIsAdminOnly(t *testing.T) {
	admin := testUser("ada", domain.RoleAdmin)
	manager := testUser("mara", domain.RoleManager)
	seed := []domain.Proposal{{ID: "PROP-100", Status: domain.StatusSubmitted}}
	fx := newProposalFixture(seed, admin, manager)

	won := domain.StatusWon
	_, err := fx.svc.UpdateProposal(context.Background(), manager, "PROP-100", ProposalUpdateInput{Status: &won})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.CodeOf(err))

	proposal, err := fx.svc.UpdateProposal(context.Background(), admin, "PROP-100", ProposalUpdateInput{Status: &won})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWon, proposal.Status)
	assert.Equal(t, 100, proposal.Progress)
}

func TestUpdateProposalFieldMerge(t *testing.T) {
	editor := testUser("edith", domain.RoleEditor)
	viewer := testUser("vera", domain.RoleViewer)
	seed := []domain.Proposal{{
		ID:     "PROP-100",
		Title:  "Old Title",
		Client: "Old Client",
		Status: domain.StatusDraft,
		Value:  1000,
	}}
	fx := newProposalFixture(seed, editor, viewer)

	title := "  New Title  "
	value := 2500.0
	proposal, err := fx.svc.UpdateProposal(context.Background(), editor, "PROP-100", ProposalUpdateInput{
		Title: &title,
		Value: &value,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", proposal.Title)
	assert.Equal(t, 2500.0, proposal.Value)
	assert.Equal(t, "Old Client", proposal.Client)

	_, err = fx.svc.UpdateProposal(context.Background(), viewer, "PROP-100", ProposalUpdateInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.CodeOf(err))
}

func TestGetProposalNotFound(t *testing.T) {
	fx := newProposalFixture(nil)

	_, err := fx.svc.GetProposal(context.Background(), "PROP-999")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.CodeOf(err))
}
