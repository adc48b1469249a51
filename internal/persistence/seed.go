package persistence

import (
	"time"

	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/domain"
)

// Demo fixtures loaded into the in-memory repositories at startup. The
// store is process-lifetime only, so every boot starts from this state.

const (
	seedPassword   = "password123"
	seedUserAvatar = "https://placehold.co/40x40.png"
	seedTeamAvatar = "https://placehold.co/32x32.png"
)

// SeedUsers returns the demo accounts, one per role. Passwords are hashed
// at startup with the configured cost.
func SeedUsers(bcryptCost int) ([]domain.User, error) {
	hash, err := auth.HashPassword(seedPassword, bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	accounts := []struct {
		id   string
		name string
		mail string
		role domain.AccessRole
	}{
		{"user-admin", "Admin User", "admin@proposer.ai", domain.RoleAdmin},
		{"user-manager", "Manager User", "manager@proposer.ai", domain.RoleManager},
		{"user-approver", "Approver User", "approver@proposer.ai", domain.RoleApprover},
		{"user-editor", "Editor User", "editor@proposer.ai", domain.RoleEditor},
		{"user-reviewer", "Reviewer User", "reviewer@proposer.ai", domain.RoleReviewer},
		{"user-viewer", "Viewer User", "viewer@proposer.ai", domain.RoleViewer},
	}

	users := make([]domain.User, 0, len(accounts))
	for _, acc := range accounts {
		users = append(users, domain.User{
			ID:           acc.id,
			Name:         acc.name,
			Email:        acc.mail,
			Role:         acc.role,
			PasswordHash: hash,
			AvatarURL:    seedUserAvatar,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return users, nil
}

// SeedProposals returns the demo pipeline, most recent first.
func SeedProposals() []domain.Proposal {
	now := time.Now()
	return []domain.Proposal{
		{
			ID:       "PROP-001",
			Title:    "Project Phoenix - Cloud Migration",
			Client:   "Innovate Corp",
			Status:   domain.StatusSubmitted,
			Priority: domain.PriorityHigh,
			Progress: 90,
			Value:    150000,
			Region:   "North America",
			Industry: "Technology",
			Objective: "Migrate on-premise infrastructure to the cloud to improve scalability, " +
				"reduce operational costs, and enhance security.",
			SolutionType: "Cloud Migration",
			Content: "This proposal outlines a phased approach to migrating Innovate Corp's on-premise " +
				"infrastructure to a secure and scalable cloud environment. The solution focuses on " +
				"minimizing downtime and ensuring data integrity throughout the process.",
			Owner:       "Alex Smith",
			OwnerEmail:  "alex.smith@proposer.ai",
			SubmittedBy: "manager@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Alice", Email: "alice@example.com", Role: domain.RoleEditor, AvatarURL: seedTeamAvatar},
				{Name: "Bob", Email: "bob@example.com", Role: domain.RoleReviewer, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-2 * time.Hour),
		},
		{
			ID:       "PROP-002",
			Title:    "Enterprise AI-Powered Chatbot",
			Client:   "GlobalBank",
			Status:   domain.StatusWon,
			Priority: domain.PriorityHigh,
			Progress: 100,
			Value:    275000,
			Region:   "EMEA",
			Industry: "Finance",
			Objective: "Improve customer service efficiency and reduce response times by implementing " +
				"an AI chatbot.",
			SolutionType: "Conversational AI",
			Content: "This document proposes the development and integration of an enterprise-grade, " +
				"AI-powered chatbot to handle customer support inquiries for GlobalBank. The chatbot " +
				"will be trained on GlobalBank's knowledge base and integrated with existing CRM systems.",
			Owner:      "Brenda Johnson",
			OwnerEmail: "brenda.johnson@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Charlie", Email: "charlie@example.com", Role: domain.RoleManager, AvatarURL: seedTeamAvatar},
				{Name: "Diana", Email: "diana@example.com", Role: domain.RoleViewer, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-24 * time.Hour),
		},
		{
			ID:       "PROP-003",
			Title:    "Supply Chain Optimization Platform",
			Client:   "QuickShip Logistics",
			Status:   domain.StatusApproved,
			Priority: domain.PriorityMedium,
			Progress: 100,
			Value:    450000,
			Region:   "APAC",
			Industry: "Logistics",
			Objective: "Develop a platform to optimize supply chain operations, reducing costs and " +
				"improving delivery times.",
			SolutionType: "Data Platform",
			Content: "We propose a comprehensive supply chain optimization platform for QuickShip " +
				"Logistics. This platform will leverage real-time data analytics and machine learning " +
				"to forecast demand, optimize routes, and manage inventory, leading to significant " +
				"cost savings and efficiency gains.",
			Owner:      "Charles Davis",
			OwnerEmail: "charles.davis@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Eve", Email: "eve@example.com", Role: domain.RoleAdmin, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:       "PROP-004",
			Title:    "Cybersecurity Threat Analysis",
			Client:   "HealthCare Secure",
			Status:   domain.StatusLost,
			Priority: domain.PriorityMedium,
			Progress: 100,
			Value:    80000,
			Region:   "North America",
			Industry: "Healthcare",
			Objective: "Identify and mitigate cybersecurity vulnerabilities to protect sensitive " +
				"patient data.",
			SolutionType: "Security Assessment",
			Content: "A comprehensive cybersecurity threat analysis for HealthCare Secure, including " +
				"vulnerability scanning, penetration testing, and a full report on findings and " +
				"mitigation strategies.",
			Owner:      "Alex Smith",
			OwnerEmail: "alex.smith@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Frank", Email: "frank@example.com", Role: domain.RoleEditor, AvatarURL: seedTeamAvatar},
				{Name: "Grace", Email: "grace@example.com", Role: domain.RoleReviewer, AvatarURL: seedTeamAvatar},
				{Name: "Heidi", Email: "heidi@example.com", Role: domain.RoleViewer, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-7 * 24 * time.Hour),
		},
		{
			ID:           "PROP-005",
			Title:        "Retail Analytics Dashboard",
			Client:       "FashionForward",
			Status:       domain.StatusInReview,
			Priority:     domain.PriorityLow,
			Progress:     60,
			Value:        120000,
			Region:       "EMEA",
			Industry:     "Retail",
			Objective:    "Provide data-driven insights to optimize retail operations.",
			SolutionType: "Analytics",
			Content: "Proposal for a retail analytics dashboard to track sales, inventory, and " +
				"customer behavior in real-time.",
			Owner:       "Brenda Johnson",
			OwnerEmail:  "brenda.johnson@proposer.ai",
			SubmittedBy: "editor@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Ivy", Email: "ivy@example.com", Role: domain.RoleEditor, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:           "PROP-006",
			Title:        "Marketing Automation Setup",
			Client:       "StartupX",
			Status:       domain.StatusDraft,
			Priority:     domain.PriorityLow,
			Progress:     20,
			Value:        50000,
			Region:       "North America",
			Industry:     "SaaS",
			Objective:    "Implement marketing automation to scale customer acquisition.",
			SolutionType: "Marketing Automation",
			Content: "Setting up a full marketing automation suite for StartupX to nurture leads " +
				"and drive conversions.",
			Owner:      "Alex Smith",
			OwnerEmail: "alex.smith@proposer.ai",
			Team: []domain.TeamMember{
				{Name: "Jack", Email: "jack@example.com", Role: domain.RoleEditor, AvatarURL: seedTeamAvatar},
			},
			LastUpdated: now.Add(-5 * time.Hour),
		},
	}
}

// SeedTemplates returns the proposal template catalog.
func SeedTemplates() []domain.Template {
	return []domain.Template{
		{
			ID:          "TPL-01",
			Title:       "Standard SaaS Proposal",
			Description: "A general-purpose template for software-as-a-service offerings.",
			Category:    "Software",
			UsageCount:  125,
			Author:      "Sales Enablement",
			SuccessRate: 68,
			Content: "**1. Executive Summary**\n" +
				"This proposal outlines our Software-as-a-Service (SaaS) solution designed to address " +
				"[Client's Pain Point]. Our platform, [Your Product Name], offers [Key Benefit 1], " +
				"[Key Benefit 2], and [Key Benefit 3].\n\n" +
				"**2. Proposed Solution**\n" +
				"- Feature A: Description of Feature A.\n" +
				"- Feature B: Description of Feature B.\n" +
				"- Feature C: Description of Feature C.\n\n" +
				"**3. Pricing**\n" +
				"- Basic Plan: $X/month\n" +
				"- Pro Plan: $Y/month\n" +
				"- Enterprise Plan: Custom Pricing\n\n" +
				"**4. Next Steps**\n" +
				"We recommend a follow-up call to discuss your specific needs and provide a personalized demo.",
		},
		{
			ID:          "TPL-02",
			Title:       "Professional Services Agreement",
			Description: "Template for consulting, implementation, and other professional services.",
			Category:    "Services",
			UsageCount:  88,
			Author:      "Legal Team",
			SuccessRate: 82,
			Content: "**1. Scope of Services**\n" +
				"This Agreement covers the following professional services: [List of Services, e.g., " +
				"Project Management, Technical Consulting, Training].\n\n" +
				"**2. Deliverables**\n" +
				"- [Deliverable 1]\n" +
				"- [Deliverable 2]\n\n" +
				"**3. Timeline**\n" +
				"The project is estimated to be completed within [Number] weeks, starting from [Start Date].\n\n" +
				"**4. Fees & Payment**\n" +
				"The total cost for these services is [Total Cost], payable as follows: [Payment Schedule].",
		},
		{
			ID:          "TPL-03",
			Title:       "Cloud Infrastructure Proposal (AWS)",
			Description: "A detailed template for proposing AWS-based cloud solutions.",
			Category:    "Infrastructure",
			UsageCount:  72,
			Author:      "Cloud CoE",
			SuccessRate: 75,
			Content: "**1. Introduction**\n" +
				"This document details a proposal for cloud infrastructure hosting on Amazon Web Services " +
				"(AWS) for [Client Name].\n\n" +
				"**2. Architecture Overview**\n" +
				"- Virtual Private Cloud (VPC) design\n" +
				"- EC2 Instance specifications\n" +
				"- S3 for object storage\n" +
				"- RDS for managed databases\n\n" +
				"**3. Security & Compliance**\n" +
				"- IAM Roles and Policies\n" +
				"- Security Group configurations\n" +
				"- Encryption at rest and in transit\n\n" +
				"**4. Cost Estimate**\n" +
				"A detailed breakdown of estimated monthly AWS costs is attached.",
		},
		{
			ID:          "TPL-04",
			Title:       "Enterprise Security Assessment",
			Description: "For cybersecurity assessment and penetration testing services.",
			Category:    "Security",
			UsageCount:  45,
			Author:      "Cybersecurity Team",
			SuccessRate: 61,
			Content: "**1. Engagement Objectives**\n" +
				"- Identify vulnerabilities in the [Client Application/Network].\n" +
				"- Assess the business risk associated with identified vulnerabilities.\n" +
				"- Provide actionable recommendations for remediation.\n\n" +
				"**2. Scope**\n" +
				"The following assets are in scope for this assessment:\n" +
				"- [List of IPs, URLs, applications]\n\n" +
				"**3. Methodology**\n" +
				"Our assessment will follow industry-standard methodologies, including:\n" +
				"- Information Gathering\n" +
				"- Threat Modeling\n" +
				"- Vulnerability Analysis\n" +
				"- Penetration Testing\n" +
				"- Reporting",
		},
	}
}
