package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lumiai/lumi-router/internal/observability"
)

// User-facing failure messages. The raw upstream text never reaches end
// users in production mode.
const (
	msgAuthFailure        = "The provider rejected the configured credentials. Please check the API key configuration."
	msgQuotaFailure       = "The model is handling too many requests right now. Please try again in a moment."
	msgModelUnavailable   = "That model is not available right now. Please try a different model."
	msgTransientFailure   = "Something went wrong while generating a response. Please try again."
	msgRateLimited        = "You are sending messages too quickly. Please wait a moment before trying again."
	msgInternalFailure    = "An unexpected error occurred. Please try again."
	msgEmptyMessage       = "Message is required."
	msgMissingModel       = "Model and provider are required."
	msgUnknownModel       = "Unknown model."
	msgUnsupportedBackend = "Unsupported provider."
	msgCredentialRequired = "An API key is required for this provider."
)

// RouterService validates inbound chat requests, enforces the per-client
// rate limit, dispatches to the matching provider adapter and normalizes
// every outcome into the uniform ChatResult/RouterError contract.
//
// The service itself is stateless per call; the only cross-call state is
// the injected rate limiter's window bookkeeping.
type RouterService struct {
	registry        ProviderRegistry
	limiter         RateLimiter
	events          EventPublisher
	upstreamTimeout time.Duration
	development     bool
}

// NewRouterService creates a new router service (DI constructor).
func NewRouterService(
	registry ProviderRegistry,
	limiter RateLimiter,
	events EventPublisher,
	upstreamTimeout time.Duration,
	development bool,
) *RouterService {
	if upstreamTimeout <= 0 {
		upstreamTimeout = 30 * time.Second
	}
	return &RouterService{
		registry:        registry,
		limiter:         limiter,
		events:          events,
		upstreamTimeout: upstreamTimeout,
		development:     development,
	}
}

// Route processes one chat request for the given client identifier.
// Validation fails fast in a fixed order: rate limit, empty message,
// missing fields, unknown model, missing user credential, unknown provider.
// Failures always come back as *RouterError.
func (s *RouterService) Route(ctx context.Context, req *ChatRequest, clientID string) (result *ChatResult, err error) {
	logger := observability.FromContext(ctx)

	// An adapter bug must never leak a stack trace to the caller.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while routing request", observability.Any("panic", r))
			result = nil
			err = &RouterError{Kind: KindInternal, Message: msgInternalFailure}
		}
	}()

	if req == nil {
		return nil, &RouterError{Kind: KindInternal, Message: msgInternalFailure}
	}

	if !s.limiter.Allow(clientID) {
		logger.Warn("request rate limited", observability.String("client_id", clientID))
		return nil, &RouterError{Kind: KindRateLimited, Message: msgRateLimited, Retriable: true}
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, NewInvalidInput(msgEmptyMessage)
	}

	if req.ModelID == "" || req.ProviderID == "" {
		return nil, NewInvalidInput(msgMissingModel)
	}

	if _, ok := s.registry.FindModel(req.ModelID); !ok {
		return nil, NewInvalidInput(msgUnknownModel)
	}

	provider, ok := s.registry.FindProvider(req.ProviderID)
	if !ok {
		return nil, NewInvalidInput(msgUnsupportedBackend)
	}

	if provider.RequiresUserKey && req.UserAPIKey == "" {
		return nil, &RouterError{Kind: KindMissingCredential, Message: msgCredentialRequired}
	}

	adapter, ok := s.registry.Adapter(req.ProviderID)
	if !ok {
		return nil, NewInvalidInput(msgUnsupportedBackend)
	}

	// The latest turn is appended as a transient user message; it is never
	// persisted by the router.
	messages := make([]ChatMessage, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, ChatMessage{Role: RoleUser, Content: message})

	sendReq := &SendRequest{
		Model:    req.ModelID,
		Messages: messages,
		Options:  req.Options.Resolve(),
		UserKey:  req.UserAPIKey,
	}

	callCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()

	completion, sendErr := adapter.Send(callCtx, sendReq)
	if sendErr != nil {
		routerErr := s.classify(sendErr)
		logger.Error("provider call failed",
			observability.String("provider", req.ProviderID),
			observability.String("model", req.ModelID),
			observability.Error(sendErr),
		)
		s.publish(ctx, "chat.failed", map[string]interface{}{
			"provider": req.ProviderID,
			"model":    req.ModelID,
			"kind":     string(routerErr.Kind),
		})
		return nil, routerErr
	}

	result = &ChatResult{
		Content:    completion.Content,
		ModelID:    req.ModelID,
		ProviderID: req.ProviderID,
		Usage:      completion.Usage,
		Demo:       completion.Demo,
	}

	event := map[string]interface{}{
		"provider": req.ProviderID,
		"model":    req.ModelID,
		"demo":     completion.Demo,
	}
	if completion.Usage != nil {
		event["total_tokens"] = completion.Usage.TotalTokens
	}
	s.publish(ctx, "chat.completed", event)

	return result, nil
}

// classify translates a typed adapter failure into the user-facing error
// contract. Anything that is not an *UpstreamError is an internal fault.
func (s *RouterService) classify(err error) *RouterError {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		routerErr := &RouterError{Kind: KindInternal, Message: msgInternalFailure}
		if s.development {
			routerErr.Detail = err.Error()
		}
		return routerErr
	}

	routerErr := &RouterError{Kind: KindUpstream}
	switch upstream.Kind {
	case UpstreamAuth:
		routerErr.Message = msgAuthFailure
	case UpstreamQuota:
		routerErr.Message = msgQuotaFailure
		routerErr.Retriable = true
	case UpstreamModelUnavailable:
		routerErr.Message = msgModelUnavailable
	default:
		routerErr.Message = msgTransientFailure
		routerErr.Retriable = true
	}

	if s.development {
		routerErr.Detail = upstream.Message
	}

	return routerErr
}

func (s *RouterService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}
