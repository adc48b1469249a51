package domain

import "time"

// AccessRole enumerates the roles a user can hold, globally or scoped to
// a single proposal's team.
type AccessRole string

const (
	RoleAdmin    AccessRole = "Admin"
	RoleManager  AccessRole = "Manager"
	RoleApprover AccessRole = "Approver"
	RoleReviewer AccessRole = "Reviewer"
	RoleEditor   AccessRole = "Editor"
	RoleViewer   AccessRole = "Viewer"
)

// MaxAdminUsers caps the number of users holding the Admin role.
const MaxAdminUsers = 2

// ValidRole reports whether the given value is a known role.
func ValidRole(role AccessRole) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleApprover, RoleReviewer, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User is the account model. Emails are unique case-insensitively.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         AccessRole
	PasswordHash string
	AvatarURL    string
	MFAEnabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
