package inner

import (
	"context"
	"net/http"

	"github.com/Azure/go-autorest/autorest/validation"
)

// ServersClient manages SQL servers.
type ServersClient struct {
	base
}

const serverNamePattern = `^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`

// CreateOrUpdate creates a new server or updates an existing one.
func (client *ServersClient) CreateOrUpdate(ctx context.Context, resourceGroupName, serverName string, parameters ServerInner) (ServerInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: serverName,
			Constraints: []validation.Constraint{
				{Target: "serverName", Name: validation.MaxLength, Rule: 63, Chain: nil},
				{Target: "serverName", Name: validation.Pattern, Rule: serverNamePattern, Chain: nil},
			}},
		{TargetValue: parameters.Location,
			Constraints: []validation.Constraint{{Target: "parameters.Location", Name: validation.Null, Rule: true, Chain: nil}}},
	}); err != nil {
		return ServerInner{}, validation.NewError("inner.ServersClient", "CreateOrUpdate", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(serverPathTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return ServerInner{}, err
	}
	var result ServerInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return ServerInner{}, err
	}
	return result, nil
}

// Get returns a server.
func (client *ServersClient) Get(ctx context.Context, resourceGroupName, serverName string) (ServerInner, error) {
	urlPath, err := client.resourcePath(serverPathTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return ServerInner{}, err
	}
	var result ServerInner
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return ServerInner{}, err
	}
	return result, nil
}

// List returns every server in the subscription.
func (client *ServersClient) List(ctx context.Context) ([]*ServerInner, error) {
	urlPath, err := client.resourcePath(serversPathTemplate)
	if err != nil {
		return nil, err
	}
	var result ServerListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ListByResourceGroup returns the servers in a resource group.
func (client *ServersClient) ListByResourceGroup(ctx context.Context, resourceGroupName string) ([]*ServerInner, error) {
	urlPath, err := client.resourcePath(serversByGroupTemplate, "resourceGroupName", resourceGroupName)
	if err != nil {
		return nil, err
	}
	var result ServerListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Delete deletes a server. Deleting a missing server succeeds.
func (client *ServersClient) Delete(ctx context.Context, resourceGroupName, serverName string) error {
	urlPath, err := client.resourcePath(serverPathTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodDelete, urlPath, apiVersion, nil, nil, http.StatusOK, http.StatusAccepted, http.StatusNoContent)
}
