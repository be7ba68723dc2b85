package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/provider/groq"
)

func testRequest() *domain.SendRequest {
	return &domain.SendRequest{
		Model: "llama-3.1-8b-instant",
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "Hello"},
		},
		Options: domain.SamplingParams{Temperature: 0.7, MaxTokens: 1000, TopP: 0.9},
	}
}

func TestNewAdapter_RequiresKey(t *testing.T) {
	_, err := groq.NewAdapter(groq.Config{})
	require.Error(t, err)
}

func TestSend_Success(t *testing.T) {
	var authorization string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "chatcmpl-123",
			"model": "llama-3.1-8b-instant",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": "Hi there"},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]int{
				"prompt_tokens":     9,
				"completion_tokens": 3,
				"total_tokens":      12,
			},
		})
	}))
	defer server.Close()

	adapter, err := groq.NewAdapter(groq.Config{APIKey: "gsk-test", BaseURL: server.URL})
	require.NoError(t, err)

	completion, err := adapter.Send(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, "Hi there", completion.Content)
	require.NotNil(t, completion.Usage)
	require.Equal(t, 12, completion.Usage.TotalTokens)
	require.Equal(t, "Bearer gsk-test", authorization)
}

func TestSend_UnauthorizedIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "Invalid API Key",
				"type":    "invalid_request_error",
			},
		})
	}))
	defer server.Close()

	adapter, err := groq.NewAdapter(groq.Config{APIKey: "gsk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = adapter.Send(context.Background(), testRequest())
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, domain.UpstreamAuth, upstream.Kind)
	require.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
}

func TestSend_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-456",
			"model":   "llama-3.1-8b-instant",
			"choices": []interface{}{},
		})
	}))
	defer server.Close()

	adapter, err := groq.NewAdapter(groq.Config{APIKey: "gsk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = adapter.Send(context.Background(), testRequest())
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, domain.UpstreamEmptyResponse, upstream.Kind)
}
