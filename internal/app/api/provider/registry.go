package provider

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/samber/lo"

	"interview-ai/internal/config"
)

// ProviderCreator builds a provider from the STT configuration.
// client carries the STT timeout and may be replaced in tests.
type ProviderCreator func(cfg config.STTConfig, client *http.Client) (TranscriptionProvider, error)

// providerRegistry stores provider creation functions
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

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("STT provider type %q not registered (available: %v)", providerType, listLocked())
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := lo.Keys(providerRegistry)
	sort.Strings(names)
	return names
}

// New creates the provider selected by cfg.Provider.
func New(cfg config.STTConfig) (TranscriptionProvider, error) {
	creator, err := GetProviderCreator(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return creator(cfg, &http.Client{Timeout: cfg.Timeout})
}
