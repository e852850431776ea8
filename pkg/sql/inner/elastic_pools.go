package inner

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Azure/go-autorest/autorest/validation"
)

// ElasticPoolsClient manages elastic pools.
type ElasticPoolsClient struct {
	base
}

// CreateOrUpdate creates a new elastic pool or updates an existing one.
func (client *ElasticPoolsClient) CreateOrUpdate(ctx context.Context, resourceGroupName, serverName, elasticPoolName string, parameters ElasticPoolInner) (ElasticPoolInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: parameters.Location,
			Constraints: []validation.Constraint{{Target: "parameters.Location", Name: validation.Null, Rule: true, Chain: nil}}},
	}); err != nil {
		return ElasticPoolInner{}, validation.NewError("inner.ElasticPoolsClient", "CreateOrUpdate", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return ElasticPoolInner{}, err
	}
	var result ElasticPoolInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return ElasticPoolInner{}, err
	}
	return result, nil
}

// Get returns an elastic pool.
func (client *ElasticPoolsClient) Get(ctx context.Context, resourceGroupName, serverName, elasticPoolName string) (ElasticPoolInner, error) {
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return ElasticPoolInner{}, err
	}
	var result ElasticPoolInner
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return ElasticPoolInner{}, err
	}
	return result, nil
}

// ListByServer returns the elastic pools of a server.
func (client *ElasticPoolsClient) ListByServer(ctx context.Context, resourceGroupName, serverName string) ([]*ElasticPoolInner, error) {
	urlPath, err := client.resourcePath(elasticPoolsTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return nil, err
	}
	var result ElasticPoolListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ListDatabases returns the databases placed in an elastic pool.
func (client *ElasticPoolsClient) ListDatabases(ctx context.Context, resourceGroupName, serverName, elasticPoolName string) ([]*DatabaseInner, error) {
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}/databases",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return nil, err
	}
	var result DatabaseListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Delete deletes an elastic pool.
func (client *ElasticPoolsClient) Delete(ctx context.Context, resourceGroupName, serverName, elasticPoolName string) error {
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodDelete, urlPath, apiVersion, nil, nil, http.StatusOK, http.StatusNoContent)
}

// ListMetrics returns the database usage metrics of an elastic pool that
// match filter, an OData expression over name, startTime, endTime and
// timeGrain. An empty filter is not sent.
func (client *ElasticPoolsClient) ListMetrics(ctx context.Context, resourceGroupName, serverName, elasticPoolName, filter string) ([]*MetricInner, error) {
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}/metrics",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return nil, err
	}
	var query url.Values
	if filter != "" {
		query = url.Values{"$filter": []string{filter}}
	}
	var result MetricListResult
	if err := client.callWithQuery(ctx, http.MethodGet, urlPath, apiVersion, query, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ListMetricDefinitions returns the metrics an elastic pool can report.
func (client *ElasticPoolsClient) ListMetricDefinitions(ctx context.Context, resourceGroupName, serverName, elasticPoolName string) ([]*MetricDefinitionInner, error) {
	urlPath, err := client.resourcePath(elasticPoolsTemplate+"/{elasticPoolName}/metricDefinitions",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "elasticPoolName", elasticPoolName)
	if err != nil {
		return nil, err
	}
	var result MetricDefinitionListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}
