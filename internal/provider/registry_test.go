package provider

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	cfg, err := r.Get("AzureChina")
	require.NoError(t, err)
	assert.Equal(t, cloud.AzureChina.Services[cloud.ResourceManager].Endpoint, cfg.Services[cloud.ResourceManager].Endpoint)

	_, err = r.Get("azurestack")
	assert.Error(t, err)

	assert.Equal(t, []string{"azurechina", "azuregovernment", "azurepublic"}, r.Names())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	stack := cloud.Configuration{
		ActiveDirectoryAuthorityHost: "https://login.local/",
		Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
			cloud.ResourceManager: {Endpoint: "https://management.local", Audience: "https://management.local"},
		},
	}
	require.NoError(t, r.Register("AzureStack", stack))

	cfg, err := r.Get("azurestack")
	require.NoError(t, err)
	assert.Equal(t, "https://management.local", cfg.Services[cloud.ResourceManager].Endpoint)

	assert.Error(t, r.Register("", stack))
	assert.Error(t, r.Register("empty", cloud.Configuration{}))
}
