package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/config"
	"github.com/spec-kit/proposal-service/internal/domain"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

const mfaKeyPrefix = "mfa:"

// AuthService coordinates login, MFA challenges and token issuance.
// MFA codes are one-time six digit values held in Redis with a TTL.
type AuthService struct {
	users    repository.UserRepository
	audit    repository.AuditLogRepository
	redis    *redis.Client
	tokenMgr *auth.TokenManager
	codeTTL  time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AuditRepo repository.AuditLogRepository
	Redis     *redis.Client
}

// LoginResult is either an issued token or a pending MFA challenge.
type LoginResult struct {
	User        *domain.User
	Token       string
	ExpiresAt   time.Time
	MFARequired bool
	ChallengeID string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		audit:    deps.AuditRepo,
		redis:    deps.Redis,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		codeTTL:  cfg.Auth.CodeTTL(),
	}
}

// Login authenticates by email and password. Accounts with MFA enabled
// receive a challenge instead of a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	if user.MFAEnabled {
		challengeID, err := s.issueChallenge(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		return &LoginResult{User: user, MFARequired: true, ChallengeID: challengeID}, nil
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logAction(ctx, user.Email, "Logged In", "")
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// VerifyMFA redeems a challenge code for a token. Codes are single use:
// the challenge is deleted whether or not the code matched.
func (s *AuthService) VerifyMFA(ctx context.Context, challengeID, code string) (*LoginResult, error) {
	if s.redis == nil {
		return nil, apperrors.NewInternalError(errors.New("mfa store not configured"))
	}

	key := mfaKeyPrefix + challengeID
	stored, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, apperrors.NewUnauthorized("challenge expired or unknown")
	}
	if err != nil {
		return nil, apperrors.NewUpstreamError("mfa store unavailable", err)
	}
	_ = s.redis.Del(ctx, key).Err()

	email, want, found := strings.Cut(stored, "|")
	if !found || want != code {
		return nil, apperrors.NewUnauthorized("invalid code")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logAction(ctx, user.Email, "Logged In", "MFA verified")
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// EnableMFA turns on the MFA requirement for the calling user.
func (s *AuthService) EnableMFA(ctx context.Context, actor *domain.User) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user.MFAEnabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logAction(ctx, user.Email, "MFA Enabled", "")
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueChallenge(ctx context.Context, email string) (string, error) {
	if s.redis == nil {
		return "", apperrors.NewInternalError(errors.New("mfa store not configured"))
	}

	code, err := generateCode()
	if err != nil {
		return "", apperrors.MapError(err)
	}
	challengeID := uuid.NewString()

	key := mfaKeyPrefix + challengeID
	if err := s.redis.Set(ctx, key, email+"|"+code, s.codeTTL).Err(); err != nil {
		return "", apperrors.NewUpstreamError("mfa store unavailable", err)
	}

	// Code delivery (email/SMS) is outside this service.
	s.logAction(ctx, email, "MFA Challenge Issued", "Challenge: "+challengeID)
	return challengeID, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *AuthService) logAction(ctx context.Context, userEmail, action, details string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, userEmail, action, details)
}
