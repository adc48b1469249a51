package auth

import "github.com/spec-kit/proposal-service/internal/domain"

// Permission policy for proposal workflow actions. All role checks live
// here so the HTTP guards and the services consult one table instead of
// repeating role lists at call sites.

var submitRoles = roleSet(domain.RoleAdmin, domain.RoleManager, domain.RoleEditor)
var reviewRoles = roleSet(domain.RoleManager, domain.RoleApprover)
var editRoles = roleSet(domain.RoleAdmin, domain.RoleApprover, domain.RoleManager, domain.RoleEditor)

// CanSubmitForReview reports whether role may move a proposal into review.
func CanSubmitForReview(role domain.AccessRole) bool {
	return submitRoles[role]
}

// CanReview reports whether role may approve or request revision.
// The self-approval guard is separate; it applies regardless of role.
func CanReview(role domain.AccessRole) bool {
	return reviewRoles[role]
}

// CanMarkSubmitted reports whether role may mark an approved proposal as
// submitted to the client.
func CanMarkSubmitted(role domain.AccessRole) bool {
	return submitRoles[role]
}

// CanEditContent reports whether role may change proposal content.
func CanEditContent(role domain.AccessRole) bool {
	return editRoles[role]
}

// CanShare reports whether role may invite or revoke proposal access.
func CanShare(role domain.AccessRole) bool {
	return role == domain.RoleAdmin
}

// CanManageUsers reports whether role may create accounts and read logs.
func CanManageUsers(role domain.AccessRole) bool {
	return role == domain.RoleAdmin
}

// CanUseAssistant reports whether role may call the AI assistant.
func CanUseAssistant(role domain.AccessRole) bool {
	return role != domain.RoleViewer
}

// CanTransition reports whether role may initiate a transition into the
// target status. Won and Lost are operational outcomes with no command
// path, so no role may transition into them here.
func CanTransition(role domain.AccessRole, target domain.ProposalStatus) bool {
	switch target {
	case domain.StatusInReview:
		return CanSubmitForReview(role)
	case domain.StatusApproved, domain.StatusInRevision:
		return CanReview(role)
	case domain.StatusSubmitted:
		return CanMarkSubmitted(role)
	default:
		return false
	}
}

func roleSet(roles ...domain.AccessRole) map[domain.AccessRole]bool {
	set := make(map[domain.AccessRole]bool, len(roles))
	for _, role := range roles {
		set[role] = true
	}
	return set
}
