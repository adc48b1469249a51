package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// AuditLogRepository stores the append-only action trail, newest first.
// Entries are never mutated or deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, userEmail, action, details string) error
	List(ctx context.Context) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	mu   sync.RWMutex
	logs []domain.AuditLog
}

// NewAuditLogRepository returns an empty memory-backed implementation.
func NewAuditLogRepository() AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Append(_ context.Context, userEmail, action, details string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := domain.AuditLog{
		ID:        "log-" + uuid.NewString(),
		UserEmail: userEmail,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	r.logs = append([]domain.AuditLog{entry}, r.logs...)
	return nil
}

func (r *auditLogRepository) List(_ context.Context) ([]domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.AuditLog, len(r.logs))
	copy(result, r.logs)
	return result, nil
}
