package dto

// DraftRequest asks for an initial proposal draft.
type DraftRequest struct {
	ClientNeeds  string `json:"client_needs"`
	Industry     string `json:"industry"`
	SolutionType string `json:"solution_type"`
	Region       string `json:"region"`
}

// DraftResponse carries the generated draft.
type DraftResponse struct {
	DraftProposal string `json:"draft_proposal"`
}

// SummarizeRequest asks for a summary of proposal content.
type SummarizeRequest struct {
	Content string `json:"content"`
}

// SummarizeResponse carries the generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// ComplianceRequest asks for a compliance scan of proposal text.
type ComplianceRequest struct {
	ProposalText string `json:"proposal_text"`
}

// ComplianceResponse reports the scan outcome.
type ComplianceResponse struct {
	MissingTerms []string `json:"missing_terms"`
	IsCompliant  bool     `json:"is_compliant"`
	Explanation  string   `json:"explanation"`
}

// NextActionRequest asks for the next best action on a proposal.
type NextActionRequest struct {
	Content   string `json:"content"`
	Objective string `json:"objective"`
	Industry  string `json:"industry"`
}

// NextActionResponse carries the suggestion and its rationale.
type NextActionResponse struct {
	NextBestAction string `json:"next_best_action"`
	Reasoning      string `json:"reasoning"`
}
