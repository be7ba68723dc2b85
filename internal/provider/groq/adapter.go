// Package groq provides the adapter for Groq's OpenAI-compatible API,
// authenticated with a server-held key.
package groq

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/observability"
	"github.com/lumiai/lumi-router/internal/provider/openaicompat"
)

const providerID = "groq"

// Config contains Groq provider configuration.
type Config struct {
	APIKey  string `env:"GROQ_API_KEY"`
	BaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
}

// Adapter implements the domain.Provider interface for Groq.
type Adapter struct {
	client openai.Client
}

// NewAdapter creates a new Groq adapter.
func NewAdapter(config Config) (*Adapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("Groq API key is required")
	}

	return &Adapter{
		client: openai.NewClient(
			option.WithAPIKey(config.APIKey),
			option.WithBaseURL(config.BaseURL),
			// Failures are classified and surfaced immediately; retry is a
			// caller-level policy.
			option.WithMaxRetries(0),
		),
	}, nil
}

// Descriptor returns the catalogue entry for Groq.
func Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:          providerID,
		DisplayName: "Groq",
		Models: []domain.ModelDescriptor{
			{
				ID:            "llama-3.1-70b-versatile",
				DisplayName:   "Llama 3.1 70B",
				Description:   "Fast inference with Llama 3.1 70B",
				ContextLength: 32768,
			},
			{
				ID:            "llama-3.1-8b-instant",
				DisplayName:   "Llama 3.1 8B",
				Description:   "Ultra-fast inference with Llama 3.1 8B",
				ContextLength: 32768,
			},
			{
				ID:            "mixtral-8x7b-32768",
				DisplayName:   "Mixtral 8x7B",
				Description:   "Fast Mixtral inference",
				ContextLength: 32768,
			},
		},
	}
}

// Send issues a single non-streaming chat completion against Groq.
func (a *Adapter) Send(ctx context.Context, req *domain.SendRequest) (*domain.Completion, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Groq API")

	resp, err := a.client.Chat.Completions.New(ctx, openaicompat.Params(req))
	if err != nil {
		return nil, openaicompat.Classify(err)
	}

	return openaicompat.CompletionFrom(resp)
}

// ID returns the provider identifier.
func (a *Adapter) ID() string {
	return providerID
}
