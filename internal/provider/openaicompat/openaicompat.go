// Package openaicompat holds the request/response translation shared by
// every OpenAI-shaped backend (Groq, OpenRouter, user-supplied key). The
// adapters differ only in base URL, credential resolution and attribution
// headers; the wire mapping lives here once.
package openaicompat

import (
	"context"
	"errors"

	"github.com/openai/openai-go"

	"github.com/lumiai/lumi-router/internal/domain"
)

// Params converts an adapter request into SDK chat completion parameters.
// The latest turn is already the last element of req.Messages.
func Params(req *domain.SendRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleAssistant:
			messages[i] = openai.AssistantMessage(msg.Content)
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	// Options arrive resolved, so every parameter is forwarded as-is. An
	// explicit temperature or top_p of zero must reach the wire.
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Options.Temperature),
		MaxTokens:   openai.Int(int64(req.Options.MaxTokens)),
		TopP:        openai.Float(req.Options.TopP),
	}
}

// Classify turns an SDK failure into a typed *domain.UpstreamError.
func Classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error()
		}
		return &domain.UpstreamError{
			Kind:       domain.ClassifyStatus(apiErr.StatusCode),
			StatusCode: apiErr.StatusCode,
			Message:    message,
			Cause:      err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.UpstreamError{
			Kind:    domain.UpstreamTimeout,
			Message: "upstream request timed out",
			Cause:   err,
		}
	}

	if errors.Is(err, context.Canceled) {
		// The caller abandoned the request; not a backend failure.
		return err
	}

	return &domain.UpstreamError{
		Kind:    domain.UpstreamConnection,
		Message: err.Error(),
		Cause:   err,
	}
}

// CompletionFrom extracts the generated text and usage from an SDK
// response. A 2xx response with no content is an upstream failure, never a
// silently blank result.
func CompletionFrom(resp *openai.ChatCompletion) (*domain.Completion, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &domain.UpstreamError{
			Kind:    domain.UpstreamEmptyResponse,
			Message: "provider returned no content",
		}
	}

	completion := &domain.Completion{
		Content: resp.Choices[0].Message.Content,
	}

	if resp.Usage.TotalTokens > 0 {
		completion.Usage = &domain.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		}
	}

	return completion, nil
}
