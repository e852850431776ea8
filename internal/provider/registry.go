package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
)

// Registry maps cloud environment names to their azcore configuration.
// Lookups are case-insensitive.
type Registry struct {
	mu     sync.RWMutex
	clouds map[string]cloud.Configuration
}

// NewRegistry returns a registry holding the public, China and US Government clouds.
func NewRegistry() *Registry {
	r := &Registry{
		clouds: make(map[string]cloud.Configuration),
	}
	r.clouds["azurepublic"] = cloud.AzurePublic
	r.clouds["azurechina"] = cloud.AzureChina
	r.clouds["azuregovernment"] = cloud.AzureGovernment
	return r
}

// Register adds or replaces a named environment. The configuration must
// carry a Resource Manager endpoint.
func (r *Registry) Register(name string, cfg cloud.Configuration) error {
	if name == "" {
		return errors.New("cloud name is required")
	}
	if cfg.Services[cloud.ResourceManager].Endpoint == "" {
		return fmt.Errorf("cloud %s: resource manager endpoint is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clouds[strings.ToLower(name)] = cfg
	return nil
}

// Get returns a registered environment.
func (r *Registry) Get(name string) (cloud.Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.clouds[strings.ToLower(name)]
	if !ok {
		return cloud.Configuration{}, fmt.Errorf("unknown cloud: %s", name)
	}
	return cfg, nil
}

// Names returns the registered environment names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clouds))
	for name := range r.clouds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
