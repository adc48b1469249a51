package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spec-kit/proposal-service/internal/config"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// Client wraps an OpenAI-compatible chat completion endpoint for the
// proposal assistance flows. Calls are fire-once: failures surface to
// the caller, nothing is retried.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New builds a client from configuration. A custom BaseURL lets the
// service talk to any OpenAI-compatible endpoint.
func New(cfg config.AssistantConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout(),
	}
}

// DraftInput describes the client context for an initial draft.
type DraftInput struct {
	ClientNeeds  string
	Industry     string
	SolutionType string
	Region       string
}

// ComplianceResult reports missing legal/security language.
type ComplianceResult struct {
	MissingTerms []string `json:"missingTerms"`
	IsCompliant  bool     `json:"isCompliant"`
	Explanation  string   `json:"explanation"`
}

// NextBestActionInput carries the proposal context for a suggestion.
type NextBestActionInput struct {
	Content   string
	Objective string
	Industry  string
}

// NextBestActionResult is the suggested improvement plus rationale.
type NextBestActionResult struct {
	Action    string `json:"nextBestAction"`
	Reasoning string `json:"reasoning"`
}

// Draft produces an initial proposal draft from the client context.
func (c *Client) Draft(ctx context.Context, input DraftInput) (string, error) {
	prompt := fmt.Sprintf(
		"Write an initial sales proposal draft.\nClient needs: %s\nIndustry: %s\nSolution type: %s\nRegion: %s",
		input.ClientNeeds, input.Industry, input.SolutionType, input.Region,
	)
	return c.complete(ctx, "You are an expert sales proposal writer.", prompt)
}

// Summarize condenses proposal content into a short summary.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	return c.complete(ctx,
		"You summarize sales proposals into a few concise sentences.",
		"Summarize the following proposal content:\n\n"+content,
	)
}

// ComplianceCheck scans proposal text for missing legal terms and
// security disclaimers.
func (c *Client) ComplianceCheck(ctx context.Context, proposalText string) (*ComplianceResult, error) {
	out, err := c.complete(ctx,
		"You are a compliance reviewer for sales proposals. Respond with a JSON object with keys "+
			`"missingTerms" (array of strings), "isCompliant" (boolean) and "explanation" (string). `+
			"Respond with JSON only.",
		"Check this proposal for missing legal terms and security disclaimers:\n\n"+proposalText,
	)
	if err != nil {
		return nil, err
	}

	var result ComplianceResult
	if err := json.Unmarshal([]byte(extractJSON(out)), &result); err != nil {
		return nil, apperrors.NewUpstreamError("assistant returned an unreadable compliance result", err)
	}
	return &result, nil
}

// NextBestAction suggests the single most impactful improvement.
func (c *Client) NextBestAction(ctx context.Context, input NextBestActionInput) (*NextBestActionResult, error) {
	prompt := fmt.Sprintf(
		"Proposal objective: %s\nIndustry: %s\n\nProposal content:\n%s",
		input.Objective, input.Industry, input.Content,
	)
	out, err := c.complete(ctx,
		"You advise on sales proposals. Suggest the single next best action to improve the proposal. "+
			`Respond with a JSON object with keys "nextBestAction" and "reasoning". Respond with JSON only.`,
		prompt,
	)
	if err != nil {
		return nil, err
	}

	var result NextBestActionResult
	if err := json.Unmarshal([]byte(extractJSON(out)), &result); err != nil {
		return nil, apperrors.NewUpstreamError("assistant returned an unreadable suggestion", err)
	}
	return &result, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", apperrors.NewUpstreamError("assistant request failed", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperrors.NewUpstreamError("assistant produced no output", nil)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(out string) string {
	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```json")
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimSuffix(out, "```")
	}
	return strings.TrimSpace(out)
}
