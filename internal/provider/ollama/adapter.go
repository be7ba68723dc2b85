// Package ollama provides the adapter for a locally running Ollama
// instance. Unlike the hosted adapters it degrades gracefully: when the
// backend process is unreachable at the transport level, the adapter
// substitutes a canned demo response instead of surfacing a connection
// error, so the caller keeps a functional (if degraded) chat experience.
// Errors reported by a reachable backend are propagated as usual.
package ollama

import (
	"context"
	"errors"
	"math/rand"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/observability"
)

const providerID = "ollama"

// demoResponses is the fixed set of canned replies used when the local
// backend is not reachable.
var demoResponses = []string{
	"Hello! I'm LUMI AI, powered by Llama 3. I'm currently running in demo mode since Ollama isn't connected. To enable full functionality, please install Ollama and run 'ollama pull llama3'.",
	"I'd love to help you with that! However, I'm currently in demo mode. For real AI responses, please set up Ollama with the Llama 3 model on your system.",
	"That's an interesting question! In demo mode, I can't provide full AI responses. To unlock my complete capabilities, please install Ollama and the Llama 3 model.",
	"I understand you want to chat! Right now I'm running in demonstration mode. For actual AI conversations, you'll need to install Ollama and run 'ollama pull llama3'.",
}

// Adapter implements the domain.Provider interface for the local backend.
type Adapter struct {
	client *Client
	pick   func(n int) int
}

// NewAdapter creates a new local backend adapter.
func NewAdapter(config Config) *Adapter {
	return &Adapter{
		client: NewClient(config),
		pick:   rand.Intn,
	}
}

// Descriptor returns the catalogue entry for the local backend.
func Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:          providerID,
		DisplayName: "Ollama (local)",
		Models: []domain.ModelDescriptor{
			{
				ID:            "llama3",
				DisplayName:   "Llama 3",
				Description:   "Meta's Llama 3 running locally via Ollama",
				ContextLength: 8192,
			},
		},
	}
}

// Send issues a single non-streaming chat call against the local backend.
func (a *Adapter) Send(ctx context.Context, req *domain.SendRequest) (*domain.Completion, error) {
	logger := observability.FromContext(ctx)

	messages := make([]chatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	resp, err := a.client.Chat(ctx, chatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   false,
		Options: chatOptions{
			Temperature: req.Options.Temperature,
			NumPredict:  req.Options.MaxTokens,
			TopP:        req.Options.TopP,
		},
	})
	if err != nil {
		if a.backendUnreachable(err) {
			logger.Warn("local backend unreachable, serving demo response",
				observability.Error(err))
			return a.demoCompletion(), nil
		}
		return nil, err
	}

	if resp.Message.Content == "" {
		return nil, &domain.UpstreamError{
			Kind:    domain.UpstreamEmptyResponse,
			Message: "Ollama returned an empty message",
		}
	}

	completion := &domain.Completion{
		Content: resp.Message.Content,
	}
	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		completion.Usage = &domain.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	}

	return completion, nil
}

// ID returns the provider identifier.
func (a *Adapter) ID() string {
	return providerID
}

// backendUnreachable reports whether the failure happened at the transport
// level, which is the only case the demo fallback covers. A zero status
// code means no HTTP response was received; errors reported by a reachable
// backend keep their normal propagation path.
func (a *Adapter) backendUnreachable(err error) bool {
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != 0 {
		return false
	}
	return upstream.Kind == domain.UpstreamConnection || upstream.Kind == domain.UpstreamTimeout
}

func (a *Adapter) demoCompletion() *domain.Completion {
	return &domain.Completion{
		Content: demoResponses[a.pick(len(demoResponses))],
		Demo:    true,
	}
}
