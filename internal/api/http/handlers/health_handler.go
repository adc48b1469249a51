package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	redis *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// Live GET /healthz.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /readyz. Fails when Redis is unreachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.redis.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"redis":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
