package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// TemplateRepository provides read access to the template catalog.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}

type templateRepository struct {
	mu        sync.RWMutex
	templates []domain.Template
}

// NewTemplateRepository returns a memory-backed implementation seeded
// with the given catalog.
func NewTemplateRepository(seed []domain.Template) TemplateRepository {
	templates := make([]domain.Template, len(seed))
	copy(templates, seed)
	return &templateRepository{templates: templates}
}

func (r *templateRepository) GetByID(_ context.Context, id string) (*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.templates {
		if r.templates[i].ID == id {
			copied := r.templates[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *templateRepository) List(_ context.Context) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Template, len(r.templates))
	copy(result, r.templates)
	return result, nil
}
