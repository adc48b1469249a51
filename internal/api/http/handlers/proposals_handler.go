package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/service"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// ProposalsHandler manages proposal CRUD, the workflow state machine
// and team sharing endpoints.
type ProposalsHandler struct {
	proposals *service.ProposalService
	access    *service.AccessService
}

// NewProposalsHandler constructs handler.
func NewProposalsHandler(proposalService *service.ProposalService, accessService *service.AccessService) *ProposalsHandler {
	return &ProposalsHandler{proposals: proposalService, access: accessService}
}

// CreateProposal POST /proposals.
func (h *ProposalsHandler) CreateProposal(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if !auth.CanEditContent(principal.Role) {
		return apperrors.NewForbidden("role cannot create proposals")
	}
	var req dto.CreateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateCreateProposal(&req); len(details) > 0 {
		return apperrors.NewValidationError("proposal validation failed", details)
	}

	input := service.ProposalCreateInput{
		Title:        req.Title,
		Client:       req.ClientName,
		Value:        req.Value,
		Priority:     req.Priority,
		Objective:    req.ClientNeeds,
		Industry:     req.Industry,
		Region:       req.Region,
		SolutionType: req.SolutionType,
		Content:      req.DraftContent,
		OwnerEmail:   principal.Email,
	}
	proposal, err := h.proposals.CreateProposal(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// ListProposals GET /proposals.
func (h *ProposalsHandler) ListProposals(c *fiber.Ctx) error {
	proposals, err := h.proposals.ListProposals(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		items = append(items, proposalResponse(&proposals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProposal GET /proposals/:id.
func (h *ProposalsHandler) GetProposal(c *fiber.Ctx) error {
	proposal, err := h.proposals.GetProposal(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// UpdateProposal PATCH /proposals/:id.
func (h *ProposalsHandler) UpdateProposal(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProposalUpdateInput{
		Title:    req.Title,
		Client:   req.Client,
		Value:    req.Value,
		Priority: req.Priority,
		Content:  req.Content,
		Status:   req.Status,
	}
	proposal, err := h.proposals.UpdateProposal(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// ChangeStatus POST /proposals/:id/status.
func (h *ProposalsHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	proposal, err := h.proposals.ChangeStatus(c.Context(), principal, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// Share POST /proposals/:id/share.
func (h *ProposalsHandler) Share(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ShareProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("a valid email is required", nil)
	}

	invitation, err := h.access.Share(c.Context(), principal, c.Params("id"), req.Email, req.Role)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": invitationResponse(invitation)})
}

// ListInvitations GET /proposals/:id/invitations.
func (h *ProposalsHandler) ListInvitations(c *fiber.Ctx) error {
	invitations, err := h.access.ListInvitations(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, invitationResponse(&invitations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RevokeAccess DELETE /proposals/:id/team/:email.
func (h *ProposalsHandler) RevokeAccess(c *fiber.Ctx) error {
	principal, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	// Route parameters arrive percent-encoded; "@" usually comes in as %40.
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return apperrors.NewValidationError("invalid email parameter", nil)
	}
	proposal, err := h.access.RevokeAccess(c.Context(), principal, c.Params("id"), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// AcceptInvitation POST /invitations/:id/accept.
func (h *ProposalsHandler) AcceptInvitation(c *fiber.Ctx) error {
	proposal, err := h.access.Accept(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// Field level checks mirror the creation form contract.
func validateCreateProposal(req *dto.CreateProposalRequest) map[string]any {
	details := map[string]any{}
	if len(strings.TrimSpace(req.Title)) < 5 {
		details["title"] = "must be at least 5 characters"
	}
	if len(strings.TrimSpace(req.ClientName)) < 2 {
		details["client_name"] = "must be at least 2 characters"
	}
	if req.Value < 0 {
		details["value"] = "must not be negative"
	}
	if len(strings.TrimSpace(req.ClientNeeds)) < 10 {
		details["client_needs"] = "must be at least 10 characters"
	}
	if len(strings.TrimSpace(req.Industry)) < 2 {
		details["industry"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(req.Region)) < 2 {
		details["region"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(req.SolutionType)) < 2 {
		details["solution_type"] = "must be at least 2 characters"
	}
	return details
}
