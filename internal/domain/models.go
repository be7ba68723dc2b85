package domain

import "time"

// Message roles accepted on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Generation parameter defaults applied when the caller leaves options unset.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultTopP        = 0.9
)

// ChatMessage represents one turn of a conversation. Messages are created by
// the caller and never mutated by the router; only role and content are read
// when formatting upstream payloads.
type ChatMessage struct {
	ID          string    `json:"id,omitempty"`
	Role        string    `json:"role"` // user, assistant, system
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	OriginModel string    `json:"originModel,omitempty"`
}

// GenerationOptions carries the caller's sampling overrides. Pointer fields
// distinguish an absent override from an explicit zero, so greedy sampling
// (temperature 0) stays expressible.
type GenerationOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
	TopP        *float64 `json:"topP,omitempty"`
}

// SamplingParams are the resolved generation parameters forwarded upstream.
type SamplingParams struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Resolve fills absent overrides with the documented defaults and keeps
// explicit values, zero included.
func (o GenerationOptions) Resolve() SamplingParams {
	params := SamplingParams{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		TopP:        DefaultTopP,
	}
	if o.Temperature != nil {
		params.Temperature = *o.Temperature
	}
	if o.MaxTokens != nil {
		params.MaxTokens = *o.MaxTokens
	}
	if o.TopP != nil {
		params.TopP = *o.TopP
	}
	return params
}

// ChatRequest is the normalized inbound request, one per call. The latest
// turn travels separately from history; the router appends it before
// forwarding, so callers must not duplicate it inside History.
type ChatRequest struct {
	Message    string            `json:"message"`
	History    []ChatMessage     `json:"history,omitempty"`
	ModelID    string            `json:"model"`
	ProviderID string            `json:"provider"`
	UserAPIKey string            `json:"apiKey,omitempty"`
	Options    GenerationOptions `json:"options,omitempty"`
}

// ChatResult is the uniform success payload returned to the caller.
type ChatResult struct {
	Content    string `json:"content"`
	ModelID    string `json:"model"`
	ProviderID string `json:"provider"`
	Usage      *Usage `json:"usage,omitempty"`
	Demo       bool   `json:"demo,omitempty"`
}

// Usage tracks token consumption reported by the upstream provider.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// SendRequest is the adapter-level request built by the router: the full
// message sequence (history plus latest turn, latest appended last),
// resolved options, and the caller-supplied credential for the user-key
// path.
type SendRequest struct {
	Model    string
	Messages []ChatMessage
	Options  SamplingParams
	UserKey  string
}

// Completion is the adapter-level success envelope.
type Completion struct {
	Content string
	Usage   *Usage
	Demo    bool
}

// ProviderDescriptor describes one backend and its models. Descriptors are
// static catalogue data, immutable after registration.
type ProviderDescriptor struct {
	ID              string            `json:"id"`
	DisplayName     string            `json:"name"`
	RequiresUserKey bool              `json:"apiKeyRequired"`
	Models          []ModelDescriptor `json:"models"`
}

// ModelDescriptor describes one model within a provider. Model ids are
// globally unique across the whole catalogue.
type ModelDescriptor struct {
	ID            string `json:"id"`
	DisplayName   string `json:"name"`
	Description   string `json:"description"`
	ContextLength int    `json:"contextLength"`
}
