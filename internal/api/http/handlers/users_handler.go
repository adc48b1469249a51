package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/service"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// UsersHandler manages admin account endpoints and the audit trail.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// CreateUser POST /admin/users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := map[string]any{}
	if len(strings.TrimSpace(req.Name)) < 2 {
		details["name"] = "must be at least 2 characters"
	}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "must be a valid email"
	}
	if len(req.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("user validation failed", details)
	}

	user, err := h.service.CreateUser(c.Context(), principal, service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// ListUsers GET /admin/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAuditLogs GET /admin/logs.
func (h *UsersHandler) ListAuditLogs(c *fiber.Ctx) error {
	logs, err := h.service.ListAuditLogs(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, auditLogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
