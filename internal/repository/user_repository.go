package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/proposal-service/internal/domain"
)

// UserRepository defines access to the user collection. Create enforces
// email uniqueness and the admin cap under the write lock, so the check
// and the insert are a single atomic step.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.AccessRole) (int, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository returns a memory-backed implementation seeded with
// the given accounts.
func NewUserRepository(seed []domain.User) UserRepository {
	users := make([]domain.User, len(seed))
	copy(users, seed)
	return &userRepository{users: users}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, user.Email) {
			return ErrDuplicateEmail
		}
	}

	if user.Role == domain.RoleAdmin {
		admins := 0
		for i := range r.users {
			if r.users[i].Role == domain.RoleAdmin {
				admins++
			}
		}
		if admins >= domain.MaxAdminUsers {
			return ErrAdminQuota
		}
	}

	if user.ID == "" {
		user.ID = "user-" + uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			r.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) CountByRole(_ context.Context, role domain.AccessRole) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.users {
		if r.users[i].Role == role {
			count++
		}
	}
	return count, nil
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, len(r.users))
	copy(result, r.users)
	return result, nil
}
