package repository

import "errors"

// Sentinel errors returned by the in-memory repositories. Services map
// these onto the user-facing error taxonomy.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrAdminQuota        = errors.New("admin quota reached")
	ErrPendingInvitation = errors.New("invitation already pending")
)
