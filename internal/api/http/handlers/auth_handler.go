package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/service"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// AuthHandler manages login and MFA endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if result.MFARequired {
		return c.JSON(fiber.Map{"data": dto.MFAChallengeResponse{
			MFARequired: true,
			ChallengeID: result.ChallengeID,
		}})
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}})
}

// VerifyMFA POST /auth/mfa/verify.
func (h *AuthHandler) VerifyMFA(c *fiber.Ctx) error {
	var req dto.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ChallengeID == "" || req.Code == "" {
		return apperrors.NewValidationError("challenge_id and code required", nil)
	}

	result, err := h.service.VerifyMFA(c.Context(), req.ChallengeID, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}})
}

// EnableMFA POST /auth/mfa/enable. Requires an authenticated user.
func (h *AuthHandler) EnableMFA(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	updated, err := h.service.EnableMFA(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(updated)})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal)})
}
