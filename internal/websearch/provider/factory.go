package provider

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lk2023060901/ai-study-backend/internal/websearch/types"
)

// Constructor builds a provider from its configuration.
type Constructor func(*types.ProviderConfig) (Provider, error)

var (
	constructorsMu sync.RWMutex
	constructors   = map[types.ProviderID]Constructor{
		types.ProviderTavily:  NewTavilyProvider,
		types.ProviderSearXNG: NewSearXNGProvider,
	}
)

// Register adds or replaces the constructor for id.
func Register(id types.ProviderID, c Constructor) {
	constructorsMu.Lock()
	constructors[id] = c
	constructorsMu.Unlock()
}

// Supported returns the registered provider IDs in sorted order.
func Supported() []types.ProviderID {
	constructorsMu.RLock()
	defer constructorsMu.RUnlock()
	ids := make([]types.ProviderID, 0, len(constructors))
	for id := range constructors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// New validates cfg and builds the provider it names.
func New(cfg *types.ProviderConfig) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	constructorsMu.RLock()
	c, ok := constructors[cfg.ID]
	constructorsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderNotFound, cfg.ID)
	}
	return c(cfg)
}
