package inner

import (
	"context"
	"net/http"

	"github.com/Azure/go-autorest/autorest/validation"
)

// ServerAzureADAdministratorsClient manages the Active Directory administrator of a server.
type ServerAzureADAdministratorsClient struct {
	base
}

// ActiveDirectoryAdministratorType is the only accepted administrator type.
const ActiveDirectoryAdministratorType = "ActiveDirectory"

// CreateOrUpdate sets the Active Directory administrator of a server.
func (client *ServerAzureADAdministratorsClient) CreateOrUpdate(ctx context.Context, resourceGroupName, serverName string, properties ServerAzureADAdministratorInner) (ServerAzureADAdministratorInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: properties.Properties,
			Constraints: []validation.Constraint{{Target: "properties.Properties", Name: validation.Null, Rule: true,
				Chain: []validation.Constraint{
					{Target: "properties.Properties.AdministratorType", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "properties.Properties.Login", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "properties.Properties.Sid", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "properties.Properties.TenantID", Name: validation.Null, Rule: true, Chain: nil},
				}}}},
	}); err != nil {
		return ServerAzureADAdministratorInner{}, validation.NewError("inner.ServerAzureADAdministratorsClient", "CreateOrUpdate", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(adAdministratorTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return ServerAzureADAdministratorInner{}, err
	}
	var result ServerAzureADAdministratorInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, properties, &result, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return ServerAzureADAdministratorInner{}, err
	}
	return result, nil
}

// Get returns the Active Directory administrator of a server.
func (client *ServerAzureADAdministratorsClient) Get(ctx context.Context, resourceGroupName, serverName string) (ServerAzureADAdministratorInner, error) {
	urlPath, err := client.resourcePath(adAdministratorTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return ServerAzureADAdministratorInner{}, err
	}
	var result ServerAzureADAdministratorInner
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return ServerAzureADAdministratorInner{}, err
	}
	return result, nil
}

// Delete removes the Active Directory administrator of a server.
func (client *ServerAzureADAdministratorsClient) Delete(ctx context.Context, resourceGroupName, serverName string) error {
	urlPath, err := client.resourcePath(adAdministratorTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodDelete, urlPath, apiVersion, nil, nil, http.StatusOK, http.StatusAccepted, http.StatusNoContent)
}
