package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/repository"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// TemplatesHandler serves the read-only template catalog.
type TemplatesHandler struct {
	templates repository.TemplateRepository
}

// NewTemplatesHandler constructs handler.
func NewTemplatesHandler(templates repository.TemplateRepository) *TemplatesHandler {
	return &TemplatesHandler{templates: templates}
}

// ListTemplates GET /templates.
func (h *TemplatesHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templates.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		items = append(items, templateResponse(&templates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTemplate GET /templates/:id.
func (h *TemplatesHandler) GetTemplate(c *fiber.Ctx) error {
	template, err := h.templates.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("template", map[string]any{"template_id": c.Params("id")})
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": templateResponse(template)})
}
