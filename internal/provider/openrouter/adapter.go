// Package openrouter provides the adapter for OpenRouter's
// OpenAI-compatible API, authenticated with a server-held key. OpenRouter
// asks callers to identify their application via the HTTP-Referer and
// X-Title headers; both are sent on every request.
package openrouter

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/observability"
	"github.com/lumiai/lumi-router/internal/provider/openaicompat"
)

const providerID = "openrouter"

// Config contains OpenRouter provider configuration. AppURL and AppName
// feed the attribution headers.
type Config struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	BaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AppURL  string `env:"APP_URL"             envDefault:"http://localhost:8080"`
	AppName string `env:"APP_NAME"            envDefault:"LUMI AI"`
}

// Adapter implements the domain.Provider interface for OpenRouter.
type Adapter struct {
	client openai.Client
}

// NewAdapter creates a new OpenRouter adapter.
func NewAdapter(config Config) (*Adapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenRouter API key is required")
	}

	return &Adapter{
		client: openai.NewClient(
			option.WithAPIKey(config.APIKey),
			option.WithBaseURL(config.BaseURL),
			option.WithHeader("HTTP-Referer", config.AppURL),
			option.WithHeader("X-Title", config.AppName),
			option.WithMaxRetries(0),
		),
	}, nil
}

// Descriptor returns the catalogue entry for OpenRouter.
func Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:          providerID,
		DisplayName: "OpenRouter",
		Models: []domain.ModelDescriptor{
			{
				ID:            "meta-llama/llama-3.1-405b-instruct",
				DisplayName:   "Llama 3.1 405B",
				Description:   "Meta's most capable model",
				ContextLength: 32768,
			},
			{
				ID:            "anthropic/claude-3.5-sonnet",
				DisplayName:   "Claude 3.5 Sonnet",
				Description:   "Anthropic's latest and most capable model",
				ContextLength: 200000,
			},
			{
				ID:            "openai/gpt-4o",
				DisplayName:   "GPT-4o",
				Description:   "OpenAI's latest multimodal model",
				ContextLength: 128000,
			},
			{
				ID:            "google/gemini-pro-1.5",
				DisplayName:   "Gemini Pro 1.5",
				Description:   "Google's latest multimodal model",
				ContextLength: 1000000,
			},
			{
				ID:            "mistralai/mixtral-8x7b-instruct",
				DisplayName:   "Mixtral 8x7B",
				Description:   "Mistral's mixture of experts model",
				ContextLength: 32768,
			},
		},
	}
}

// Send issues a single non-streaming chat completion against OpenRouter.
func (a *Adapter) Send(ctx context.Context, req *domain.SendRequest) (*domain.Completion, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenRouter API")

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
