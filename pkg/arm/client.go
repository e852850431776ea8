// Package arm builds the Azure Resource Manager transport shared by the
// management clients: the authenticated pipeline, credentials and resource
// ID helpers.
package arm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azarm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	moduleName    = "github.com/picklr-io/azmgmt"
	moduleVersion = "v0.1.0"
)

// ClientOptions are the azcore ARM client options.
type ClientOptions = azarm.ClientOptions

// Client is an authenticated ARM pipeline bound to one endpoint.
type Client = azarm.Client

// NewClient returns a pipeline for the given credential.
func NewClient(cred azcore.TokenCredential, options *ClientOptions) (*Client, error) {
	if cred == nil {
		return nil, errors.New("arm: credential is required")
	}
	cl, err := azarm.NewClient(moduleName, moduleVersion, cred, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create ARM client: %w", err)
	}
	return cl, nil
}

// NewDefaultCredential returns the environment/managed-identity/CLI credential chain.
func NewDefaultCredential(tenantID string) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default credential: %w", err)
	}
	return cred, nil
}

// CloudWithEndpoint returns a cloud configuration whose Resource Manager
// endpoint is replaced by endpoint.
func CloudWithEndpoint(base cloud.Configuration, endpoint string) cloud.Configuration {
	services := make(map[cloud.ServiceName]cloud.ServiceConfiguration, len(base.Services))
	for k, v := range base.Services {
		services[k] = v
	}
	rm := services[cloud.ResourceManager]
	rm.Endpoint = endpoint
	if rm.Audience == "" {
		rm.Audience = cloud.AzurePublic.Services[cloud.ResourceManager].Audience
	}
	services[cloud.ResourceManager] = rm
	return cloud.Configuration{
		ActiveDirectoryAuthorityHost: base.ActiveDirectoryAuthorityHost,
		Services:                     services,
	}
}

// IsNotFound reports whether err is an ARM 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is an ARM 409 response.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}
	return false
}
