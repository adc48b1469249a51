package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/config"
	"github.com/spec-kit/proposal-service/internal/domain"
	"github.com/spec-kit/proposal-service/internal/events"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

const userAvatar = "https://placehold.co/40x40.png"

// UserService manages accounts and the audit trail read surface.
type UserService struct {
	users      repository.UserRepository
	audit      repository.AuditLogRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	AuditRepo  repository.AuditLogRepository
	Dispatcher events.Dispatcher
}

// UserCreateInput describes the account creation payload.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.AccessRole
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateUser creates an account. The Admin role is capped at
// domain.MaxAdminUsers holders; failed attempts write no audit entry.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, input UserCreateInput) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if !auth.CanManageUsers(actor.Role) {
		return nil, apperrors.NewForbidden("only admins may create users")
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
		AvatarURL:    userAvatar,
	}
	// The repository enforces email uniqueness and the admin cap under
	// its write lock; concurrent creates cannot slip past either.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("a user with this email already exists", map[string]any{
				"email": input.Email,
			})
		}
		if errors.Is(err, repository.ErrAdminQuota) {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("cannot create more than %d admin users", domain.MaxAdminUsers),
				map[string]any{"role": input.Role},
			)
		}
		return nil, apperrors.MapError(err)
	}

	s.logAction(ctx, actor.Email, "User Created",
		fmt.Sprintf("User: %s, Role: %s", user.Email, user.Role))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserCreated,
		Actor:   actor.Email,
		Payload: events.UserCreatedPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListAuditLogs returns the full audit trail, newest first.
func (s *UserService) ListAuditLogs(ctx context.Context) ([]domain.AuditLog, error) {
	return s.audit.List(ctx)
}

func (s *UserService) logAction(ctx context.Context, userEmail, action, details string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, userEmail, action, details)
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
