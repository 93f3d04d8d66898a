package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

func newTestServer(t *testing.T, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, capture))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-5-nano",
			"choices": [{"message": {"content": "The sky is blue."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
}

func TestChat_ReasoningModelParams(t *testing.T) {
	var captured map[string]any
	server := newTestServer(t, &captured)
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-5-nano",
	})
	require.NoError(t, err)

	result, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "What color is the sky?"},
	}, driven.ChatOptions{MaxTokens: 2048, Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, float64(2048), captured["max_completion_tokens"])
	assert.NotContains(t, captured, "max_tokens")
	assert.NotContains(t, captured, "temperature")

	assert.Equal(t, "The sky is blue.", result.Content)
	assert.Equal(t, "gpt-5-nano", result.Model)
	assert.Equal(t, 15, result.Usage.TotalTokens)
}

func TestChat_StandardModelParams(t *testing.T) {
	var captured map[string]any
	server := newTestServer(t, &captured)
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hello"},
	}, driven.ChatOptions{MaxTokens: 512, Temperature: 0})
	require.NoError(t, err)

	assert.Equal(t, float64(512), captured["max_tokens"])
	assert.NotContains(t, captured, "max_completion_tokens")
	// Temperature 0 must still be sent explicitly for deterministic output.
	assert.Equal(t, float64(0), captured["temperature"])
}

func TestUsesCompletionTokenLimit(t *testing.T) {
	assert.True(t, usesCompletionTokenLimit("gpt-5-nano"))
	assert.True(t, usesCompletionTokenLimit("gpt-5-mini"))
	assert.True(t, usesCompletionTokenLimit("o3-mini"))
	assert.False(t, usesCompletionTokenLimit("gpt-4o-mini"))
	assert.False(t, usesCompletionTokenLimit("gpt-4.1"))
}

func TestChat_RateLimitedMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRateLimited))
}

func TestChat_ServerErrorMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)
}
