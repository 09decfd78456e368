package services

import (
	"sync"

	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
)

// Registry hands out per-owner summary service instances with
// creation-on-miss semantics. It replaces module-level shared state: the
// request-handling layer owns one Registry and passes it by reference.
type Registry struct {
	mu       sync.Mutex
	build    func(ownerID string) (driving.SummaryService, error)
	services map[string]driving.SummaryService
}

// NewRegistry creates a registry that builds missing instances with the
// given constructor.
func NewRegistry(build func(ownerID string) (driving.SummaryService, error)) *Registry {
	return &Registry{
		build:    build,
		services: make(map[string]driving.SummaryService),
	}
}

// For returns the owner's summary service, creating it on first use.
func (r *Registry) For(ownerID string) (driving.SummaryService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.services[ownerID]; ok {
		return svc, nil
	}

	svc, err := r.build(ownerID)
	if err != nil {
		return nil, err
	}
	r.services[ownerID] = svc
	return svc, nil
}

// Evict drops the owner's cached instance, forcing a rebuild on next use.
// Called when an owner's credentials change.
func (r *Registry) Evict(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, ownerID)
}

// Len returns the number of cached instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}
