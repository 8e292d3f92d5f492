// Package transform routes document submissions to a transform provider
// and shapes the loosely-typed provider output into the strict result the
// review core consumes.
package transform

import (
	"fmt"
	"log/slog"
	"sync"

	"guidesync/internal/config"
	"guidesync/internal/domain/services"
	"guidesync/internal/service/transform/providers/lorem"
	"guidesync/internal/service/transform/providers/openai"
)

// ProviderRegistry manages transform providers and routes submissions to
// the configured one. Provider instances are created lazily and cached.
type ProviderRegistry struct {
	cfg   *config.Config
	cache map[string]services.TransformProvider
	mu    sync.RWMutex
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry(cfg *config.Config) *ProviderRegistry {
	return &ProviderRegistry{
		cfg:   cfg,
		cache: make(map[string]services.TransformProvider),
	}
}

// GetProvider returns the named provider, creating it on first use.
func (r *ProviderRegistry) GetProvider(name string) (services.TransformProvider, error) {
	if name == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	// Fast path: cache hit under read lock.
	r.mu.RLock()
	if cached, exists := r.cache[name]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if cached, exists := r.cache[name]; exists {
		return cached, nil
	}

	var provider services.TransformProvider
	var err error
	switch name {
	case "openai":
		provider, err = openai.NewProvider(r.cfg.OpenAIAPIKey, r.cfg.TransformModel)
	case "lorem":
		provider = lorem.NewProvider()
	default:
		return nil, fmt.Errorf("unknown transform provider %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("create provider %q: %w", name, err)
	}

	r.cache[name] = provider
	return provider, nil
}

// SetupRegistry builds the registry and fails fast when the configured
// default provider cannot be constructed.
func SetupRegistry(cfg *config.Config, logger *slog.Logger) (*ProviderRegistry, error) {
	registry := NewProviderRegistry(cfg)

	if _, err := registry.GetProvider(cfg.DefaultProvider); err != nil {
		return nil, fmt.Errorf("default transform provider: %w", err)
	}

	logger.Info("transform provider registry initialized",
		"default", cfg.DefaultProvider,
		"model", cfg.TransformModel,
	)

	return registry, nil
}
