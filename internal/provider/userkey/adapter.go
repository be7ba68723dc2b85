// Package userkey provides the adapter for the bring-your-own-key backend:
// the standard OpenAI API authenticated with a key supplied by the caller
// on each request. No credential is ever stored server-side, so the SDK
// client is built per call.
package userkey

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/observability"
	"github.com/lumiai/lumi-router/internal/provider/openaicompat"
)

const providerID = "user-key"

// Config contains user-key backend configuration.
type Config struct {
	BaseURL string `env:"USERKEY_BASE_URL" envDefault:"https://api.openai.com/v1"`
}

// Adapter implements the domain.Provider interface for the user-key
// backend.
type Adapter struct {
	baseURL string
}

// NewAdapter creates a new user-key adapter.
func NewAdapter(config Config) *Adapter {
	return &Adapter{
		baseURL: config.BaseURL,
	}
}

// Descriptor returns the catalogue entry for the user-key backend.
func Descriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:              providerID,
		DisplayName:     "Your API Key",
		RequiresUserKey: true,
		Models: []domain.ModelDescriptor{
			{
				ID:            "gpt-4",
				DisplayName:   "GPT-4 (Your Key)",
				Description:   "Use your own OpenAI API key",
				ContextLength: 8192,
			},
			{
				ID:            "gpt-3.5-turbo",
				DisplayName:   "GPT-3.5 Turbo (Your Key)",
				Description:   "Use your own OpenAI API key",
				ContextLength: 16384,
			},
		},
	}
}

// Send issues a single non-streaming chat completion authenticated with the
// caller-supplied key. The router rejects keyless requests before dispatch;
// the check here guards direct adapter use.
func (a *Adapter) Send(ctx context.Context, req *domain.SendRequest) (*domain.Completion, error) {
	if req.UserKey == "" {
		return nil, &domain.UpstreamError{
			Kind:    domain.UpstreamAuth,
			Message: "no API key supplied for the user-key provider",
		}
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API with caller-supplied key")

	client := openai.NewClient(
		option.WithAPIKey(req.UserKey),
		option.WithBaseURL(a.baseURL),
		option.WithMaxRetries(0),
	)

	resp, err := client.Chat.Completions.New(ctx, openaicompat.Params(req))
	if err != nil {
		return nil, openaicompat.Classify(err)
	}

	return openaicompat.CompletionFrom(resp)
}

// ID returns the provider identifier.
func (a *Adapter) ID() string {
	return providerID
}
