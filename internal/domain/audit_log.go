package domain

import "time"

// AuditLog is an immutable record of a significant action. Entries are
// held most-recent-first for the lifetime of the process.
type AuditLog struct {
	ID        string
	UserEmail string
	Action    string
	Details   string
	Timestamp time.Time
}
