package handlers

import (
	"time"

	"github.com/spec-kit/proposal-service/internal/api/dto"
	"github.com/spec-kit/proposal-service/internal/domain"
)

func proposalResponse(p *domain.Proposal) dto.ProposalResponse {
	team := make([]dto.TeamMemberResponse, 0, len(p.Team))
	for _, member := range p.Team {
		team = append(team, dto.TeamMemberResponse{
			Name:      member.Name,
			Email:     member.Email,
			Role:      member.Role,
			AvatarURL: member.AvatarURL,
		})
	}
	return dto.ProposalResponse{
		ID:           p.ID,
		Title:        p.Title,
		Client:       p.Client,
		Status:       p.Status,
		Priority:     p.Priority,
		Progress:     p.Progress,
		Value:        p.Value,
		Region:       p.Region,
		Industry:     p.Industry,
		Objective:    p.Objective,
		SolutionType: p.SolutionType,
		Content:      p.Content,
		Owner:        p.Owner,
		OwnerEmail:   p.OwnerEmail,
		SubmittedBy:  p.SubmittedBy,
		Team:         team,
		LastUpdated:  p.LastUpdated,
	}
}

func invitationResponse(inv *domain.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:         inv.ID,
		ProposalID: inv.ProposalID,
		Email:      inv.Email,
		Role:       inv.Role,
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt.Format(time.RFC3339),
	}
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		AvatarURL:  u.AvatarURL,
		MFAEnabled: u.MFAEnabled,
	}
}

func auditLogResponse(entry *domain.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:        entry.ID,
		UserEmail: entry.UserEmail,
		Action:    entry.Action,
		Details:   entry.Details,
		Timestamp: entry.Timestamp.Format(time.RFC3339),
	}
}

func templateResponse(t *domain.Template) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		UsageCount:  t.UsageCount,
		Author:      t.Author,
		SuccessRate: t.SuccessRate,
		Content:     t.Content,
	}
}
