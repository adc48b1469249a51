package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/config"
	"github.com/spec-kit/proposal-service/internal/domain"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T, seedUsers ...*domain.User) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	users := make([]domain.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		users = append(users, *u)
	}
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		MFACodeTTLMinutes:     5,
		BcryptCost:            bcrypt.MinCost,
	}}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:  repository.NewUserRepository(users),
		AuditRepo: repository.NewAuditLogRepository(),
		Redis:     client,
	})
	return svc, mr
}

func userWithPassword(t *testing.T, name string, role domain.AccessRole, password string, mfa bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	u := testUser(name, role)
	u.PasswordHash = hash
	u.MFAEnabled = mfa
	return u
}

// challengeCode reads the one-time code straight out of the MFA store.
func challengeCode(t *testing.T, mr *miniredis.Miniredis, challengeID string) string {
	t.Helper()
	stored, err := mr.Get("mfa:" + challengeID)
	require.NoError(t, err)
	_, code, found := strings.Cut(stored, "|")
	require.True(t, found)
	return code
}

func TestLoginIssuesToken(t *testing.T) {
	user := userWithPassword(t, "edith", domain.RoleEditor, "password123", false)
	svc, _ := newAuthFixture(t, user)

	result, err := svc.Login(context.Background(), "edith@proposer.ai", "password123")
	require.NoError(t, err)
	assert.False(t, result.MFARequired)
	assert.NotEmpty(t, result.Token)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleEditor, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := userWithPassword(t, "edith", domain.RoleEditor, "password123", false)
	svc, _ := newAuthFixture(t, user)

	_, err := svc.Login(context.Background(), "edith@proposer.ai", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))

	_, err = svc.Login(context.Background(), "ghost@proposer.ai", "password123")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))
}

func TestLoginWithMFAIssuesChallenge(t *testing.T) {
	user := userWithPassword(t, "ada", domain.RoleAdmin, "password123", true)
	svc, mr := newAuthFixture(t, user)

	result, err := svc.Login(context.Background(), "ada@proposer.ai", "password123")
	require.NoError(t, err)
	assert.True(t, result.MFARequired)
	assert.Empty(t, result.Token)
	require.NotEmpty(t, result.ChallengeID)

	code := challengeCode(t, mr, result.ChallengeID)
	verified, err := svc.VerifyMFA(context.Background(), result.ChallengeID, code)
	require.NoError(t, err)
	assert.NotEmpty(t, verified.Token)

	// Codes are single use.
	_, err = svc.VerifyMFA(context.Background(), result.ChallengeID, code)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))
}

func TestVerifyMFAWrongCodeBurnsChallenge(t *testing.T) {
	user := userWithPassword(t, "ada", domain.RoleAdmin, "password123", true)
	svc, mr := newAuthFixture(t, user)

	result, err := svc.Login(context.Background(), "ada@proposer.ai", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyMFA(context.Background(), result.ChallengeID, "000000")
	if err == nil {
		t.Skip("generated code happened to be 000000")
	}
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))

	// The challenge is gone even though the code was wrong.
	_, getErr := mr.Get("mfa:" + result.ChallengeID)
	assert.Error(t, getErr)
}

func TestVerifyMFAExpiredChallenge(t *testing.T) {
	user := userWithPassword(t, "ada", domain.RoleAdmin, "password123", true)
	svc, mr := newAuthFixture(t, user)

	result, err := svc.Login(context.Background(), "ada@proposer.ai", "password123")
	require.NoError(t, err)
	code := challengeCode(t, mr, result.ChallengeID)

	mr.FastForward(6 * time.Minute)

	_, err = svc.VerifyMFA(context.Background(), result.ChallengeID, code)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))
}

func TestEnableMFA(t *testing.T) {
	user := userWithPassword(t, "edith", domain.RoleEditor, "password123", false)
	svc, _ := newAuthFixture(t, user)

	updated, err := svc.EnableMFA(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, updated.MFAEnabled)

	// The next login goes through the challenge flow.
	result, err := svc.Login(context.Background(), "edith@proposer.ai", "password123")
	require.NoError(t, err)
	assert.True(t, result.MFARequired)
}
