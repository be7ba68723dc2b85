package userkey_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/provider/userkey"
)

func TestSend_MissingKey(t *testing.T) {
	adapter := userkey.NewAdapter(userkey.Config{BaseURL: "http://127.0.0.1:1"})

	_, err := adapter.Send(context.Background(), &domain.SendRequest{
		Model:    "gpt-4",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "Hello"}},
	})
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, domain.UpstreamAuth, upstream.Kind)
}

func TestSend_UsesCallerKey(t *testing.T) {
	var authorization string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "chatcmpl-789",
			"model": "gpt-4",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": "Hello from GPT-4"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	adapter := userkey.NewAdapter(userkey.Config{BaseURL: server.URL})

	completion, err := adapter.Send(context.Background(), &domain.SendRequest{
		Model:    "gpt-4",
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: "Hello"}},
		UserKey:  "sk-caller",
	})
	require.NoError(t, err)
	require.Equal(t, "Hello from GPT-4", completion.Content)
	require.Nil(t, completion.Usage)
	require.Equal(t, "Bearer sk-caller", authorization)
}
