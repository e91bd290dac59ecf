package llm

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/samber/lo"

	"interview-ai/internal/config"
)

// ProviderCreator builds a provider from the LLM configuration
type ProviderCreator func(cfg config.LLMConfig, client *http.Client) (Provider, error)

var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// ListRegisteredProviders returns all registered provider types, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := lo.Keys(providerRegistry)
	sort.Strings(names)
	return names
}

// New creates the provider selected by cfg.Provider
func New(cfg config.LLMConfig) (Provider, error) {
	registryMutex.RLock()
	creator, ok := providerRegistry[cfg.Provider]
	registryMutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("LLM provider type %q not registered (available: %v)", cfg.Provider, ListRegisteredProviders())
	}
	return creator(cfg, &http.Client{Timeout: cfg.Timeout})
}
