package domain

import "context"

// Provider is the adapter contract implemented once per backend.
type Provider interface {
	// Send issues a single non-streaming completion call and returns the
	// extracted content, or a typed *UpstreamError on failure.
	Send(ctx context.Context, req *SendRequest) (*Completion, error)

	// ID returns the provider identifier used for dispatch.
	ID() string
}

// ProviderRegistry is the static catalogue of providers and their models,
// immutable once startup registration completes.
type ProviderRegistry interface {
	// FindModel resolves a model id to its descriptor. Model ids are
	// globally unique across providers.
	FindModel(modelID string) (ModelDescriptor, bool)

	// FindProvider resolves a provider id to its descriptor.
	FindProvider(providerID string) (ProviderDescriptor, bool)

	// Adapter returns the adapter registered for a provider id.
	Adapter(providerID string) (Provider, bool)

	// List returns all registered provider descriptors in registration
	// order.
	List() []ProviderDescriptor
}

// RateLimiter tracks per-client request counts in fixed time windows.
type RateLimiter interface {
	// Allow reports whether a request from the client identifier may
	// proceed, incrementing its window counter when it does.
	Allow(clientID string) bool
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
