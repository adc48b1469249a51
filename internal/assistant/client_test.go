package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/proposal-service/internal/config"
	apperrors "github.com/spec-kit/proposal-service/pkg/util/errorutil"
)

// fakeCompletionServer answers every chat completion request with the
// given assistant message.
func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return New(config.AssistantConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		TimeoutSeconds: 5,
	})
}

func TestDraft(t *testing.T) {
	srv := fakeCompletionServer(t, "Dear Acme, here is our proposal.")
	client := newTestClient(srv.URL)

	draft, err := client.Draft(context.Background(), DraftInput{
		ClientNeeds:  "Faster invoicing",
		Industry:     "Finance",
		SolutionType: "SaaS",
		Region:       "EMEA",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme, here is our proposal.", draft)
}

func TestSummarize(t *testing.T) {
	srv := fakeCompletionServer(t, "A two sentence summary.")
	client := newTestClient(srv.URL)

	summary, err := client.Summarize(context.Background(), "long proposal content")
	require.NoError(t, err)
	assert.Equal(t, "A two sentence summary.", summary)
}

func TestComplianceCheckParsesFencedJSON(t *testing.T) {
	srv := fakeCompletionServer(t, "```json\n"+
		`{"missingTerms":["limitation of liability"],"isCompliant":false,"explanation":"Liability language missing."}`+
		"\n```")
	client := newTestClient(srv.URL)

	result, err := client.ComplianceCheck(context.Background(), "some proposal text")
	require.NoError(t, err)
	assert.False(t, result.IsCompliant)
	assert.Equal(t, []string{"limitation of liability"}, result.MissingTerms)
	assert.NotEmpty(t, result.Explanation)
}

func TestComplianceCheckUnreadableResult(t *testing.T) {
	srv := fakeCompletionServer(t, "sorry, I cannot do that")
	client := newTestClient(srv.URL)

	_, err := client.ComplianceCheck(context.Background(), "some proposal text")
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILED", apperrors.CodeOf(err))
}

func TestNextBestAction(t *testing.T) {
	srv := fakeCompletionServer(t,
		`{"nextBestAction":"Add a pricing table","reasoning":"The proposal lacks concrete pricing."}`)
	client := newTestClient(srv.URL)

	result, err := client.NextBestAction(context.Background(), NextBestActionInput{
		Content:   "proposal body",
		Objective: "win the deal",
		Industry:  "Finance",
	})
	require.NoError(t, err)
	assert.Equal(t, "Add a pricing table", result.Action)
	assert.NotEmpty(t, result.Reasoning)
}

func TestUpstreamFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	client := newTestClient(srv.URL)

	_, err := client.Summarize(context.Background(), "content")
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILED", apperrors.CodeOf(err))
}

func TestEmptyCompletionIsAnError(t *testing.T) {
	srv := fakeCompletionServer(t, "   ")
	client := newTestClient(srv.URL)

	_, err := client.Summarize(context.Background(), "content")
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILED", apperrors.CodeOf(err))
}
