// Package registry implements the static catalogue of providers and their
// models. Registration happens once at startup; lookups afterwards are
// read-only.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lumiai/lumi-router/internal/domain"
)

// Registry implements the domain.ProviderRegistry interface.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.ProviderDescriptor
	adapters  map[string]domain.Provider
	models    map[string]domain.ModelDescriptor
	order     []string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.ProviderDescriptor),
		adapters:  make(map[string]domain.Provider),
		models:    make(map[string]domain.ModelDescriptor),
	}
}

// Register adds a provider descriptor together with its adapter. Model ids
// must be globally unique across the whole catalogue.
func (r *Registry) Register(desc domain.ProviderDescriptor, adapter domain.Provider) error {
	if adapter == nil {
		return errors.New("adapter cannot be nil")
	}
	if desc.ID == "" {
		return errors.New("provider id cannot be empty")
	}
	if desc.ID != adapter.ID() {
		return fmt.Errorf("descriptor id %s does not match adapter id %s", desc.ID, adapter.ID())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[desc.ID]; exists {
		return fmt.Errorf("provider %s already registered", desc.ID)
	}

	for _, model := range desc.Models {
		if _, exists := r.models[model.ID]; exists {
			return fmt.Errorf("model %s already registered by another provider", model.ID)
		}
	}

	r.providers[desc.ID] = desc
	r.adapters[desc.ID] = adapter
	r.order = append(r.order, desc.ID)
	for _, model := range desc.Models {
		r.models[model.ID] = model
	}

	return nil
}

// FindModel resolves a model id to its descriptor.
func (r *Registry) FindModel(modelID string) (domain.ModelDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, exists := r.models[modelID]
	return model, exists
}

// FindProvider resolves a provider id to its descriptor.
func (r *Registry) FindProvider(providerID string) (domain.ProviderDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.providers[providerID]
	if !exists {
		return domain.ProviderDescriptor{}, false
	}
	return cloneDescriptor(desc), true
}

// Adapter returns the adapter registered for a provider id.
func (r *Registry) Adapter(providerID string) (domain.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[providerID]
	return adapter, exists
}

// List returns all registered provider descriptors in registration order.
func (r *Registry) List() []domain.ProviderDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]domain.ProviderDescriptor, 0, len(r.order))
	for _, id := range r.order {
		descs = append(descs, cloneDescriptor(r.providers[id]))
	}

	return descs
}

// cloneDescriptor copies the descriptor's model slice so callers cannot
// mutate the registry's state through a returned value.
func cloneDescriptor(desc domain.ProviderDescriptor) domain.ProviderDescriptor {
	models := make([]domain.ModelDescriptor, len(desc.Models))
	copy(models, desc.Models)
	desc.Models = models
	return desc
}
