package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/assistant"
	"github.com/spec-kit/proposal-service/internal/auth"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// AssistantHandler fronts the drafting assistant. Every route requires
// a role with assistant access.
type AssistantHandler struct {
	client *assistant.Client
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(client *assistant.Client) *AssistantHandler {
	return &AssistantHandler{client: client}
}

// Draft POST /assistant/draft.
func (h *AssistantHandler) Draft(c *fiber.Ctx) error {
	if err := requireAssistantAccess(c); err != nil {
		return err
	}
	var req dto.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ClientNeeds) == "" {
		return apperrors.NewValidationError("client_needs required", nil)
	}

	draft, err := h.client.Draft(c.Context(), assistant.DraftInput{
		ClientNeeds:  req.ClientNeeds,
		Industry:     req.Industry,
		SolutionType: req.SolutionType,
		Region:       req.Region,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DraftResponse{DraftProposal: draft}})
}

// Summarize POST /assistant/summarize.
func (h *AssistantHandler) Summarize(c *fiber.Ctx) error {
	if err := requireAssistantAccess(c); err != nil {
		return err
	}
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	summary, err := h.client.Summarize(c.Context(), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SummarizeResponse{Summary: summary}})
}

// ComplianceCheck POST /assistant/compliance.
func (h *AssistantHandler) ComplianceCheck(c *fiber.Ctx) error {
	if err := requireAssistantAccess(c); err != nil {
		return err
	}
	var req dto.ComplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ProposalText) == "" {
		return apperrors.NewValidationError("proposal_text required", nil)
	}

	result, err := h.client.ComplianceCheck(c.Context(), req.ProposalText)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplianceResponse{
		MissingTerms: result.MissingTerms,
		IsCompliant:  result.IsCompliant,
		Explanation:  result.Explanation,
	}})
}

// NextBestAction POST /assistant/next-action.
func (h *AssistantHandler) NextBestAction(c *fiber.Ctx) error {
	if err := requireAssistantAccess(c); err != nil {
		return err
	}
	var req dto.NextActionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	result, err := h.client.NextBestAction(c.Context(), assistant.NextBestActionInput{
		Content:   req.Content,
		Objective: req.Objective,
		Industry:  req.Industry,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NextActionResponse{
		NextBestAction: result.Action,
		Reasoning:      result.Reasoning,
	}})
}

func requireAssistantAccess(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if !auth.CanUseAssistant(principal.Role) {
		return apperrors.NewForbidden("role cannot use the assistant")
	}
	return nil
}
