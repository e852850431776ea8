package inner

import (
	"context"
	"net/http"

	"github.com/Azure/go-autorest/autorest/validation"
)

// DatabasesClient manages databases.
type DatabasesClient struct {
	base
}

// CreateOrUpdate creates a new database or updates an existing one.
func (client *DatabasesClient) CreateOrUpdate(ctx context.Context, resourceGroupName, serverName, databaseName string, parameters DatabaseInner) (DatabaseInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: databaseName,
			Constraints: []validation.Constraint{{Target: "databaseName", Name: validation.MaxLength, Rule: 128, Chain: nil}}},
		{TargetValue: parameters.Location,
			Constraints: []validation.Constraint{{Target: "parameters.Location", Name: validation.Null, Rule: true, Chain: nil}}},
	}); err != nil {
		return DatabaseInner{}, validation.NewError("inner.DatabasesClient", "CreateOrUpdate", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(databasesTemplate+"/{databaseName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName)
	if err != nil {
		return DatabaseInner{}, err
	}
	var result DatabaseInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return DatabaseInner{}, err
	}
	return result, nil
}

// Get returns a database.
func (client *DatabasesClient) Get(ctx context.Context, resourceGroupName, serverName, databaseName string) (DatabaseInner, error) {
	urlPath, err := client.resourcePath(databasesTemplate+"/{databaseName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName)
	if err != nil {
		return DatabaseInner{}, err
	}
	var result DatabaseInner
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return DatabaseInner{}, err
	}
	return result, nil
}

// ListByServer returns the databases of a server.
func (client *DatabasesClient) ListByServer(ctx context.Context, resourceGroupName, serverName string) ([]*DatabaseInner, error) {
	urlPath, err := client.resourcePath(databasesTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return nil, err
	}
	var result DatabaseListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ListByElasticPool returns the databases placed in an elastic pool.
func (client *DatabasesClient) ListByElasticPool(ctx context.Context, resourceGroupName, serverName, elasticPoolName string) ([]*DatabaseInner, error) {
	return (&ElasticPoolsClient{client.base}).ListDatabases(ctx, resourceGroupName, serverName, elasticPoolName)
}

// Delete deletes a database.
func (client *DatabasesClient) Delete(ctx context.Context, resourceGroupName, serverName, databaseName string) error {
	urlPath, err := client.resourcePath(databasesTemplate+"/{databaseName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodDelete, urlPath, apiVersion, nil, nil, http.StatusOK, http.StatusNoContent)
}

// Rename moves a database to targetID, which must name a database on the same server.
func (client *DatabasesClient) Rename(ctx context.Context, resourceGroupName, serverName, databaseName, targetID string) error {
	if targetID == "" {
		return validation.NewError("inner.DatabasesClient", "Rename", "parameter targetID cannot be empty")
	}
	urlPath, err := client.resourcePath(databasesTemplate+"/{databaseName}/move",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodPost, urlPath, renameAPIVersion, ResourceMoveDefinition{ID: &targetID}, nil, http.StatusOK)
}

// CreateImportOperation imports a bacpac into an existing database.
func (client *DatabasesClient) CreateImportOperation(ctx context.Context, resourceGroupName, serverName, databaseName string, parameters ImportExtensionRequest) (ImportExportResponseInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: parameters.Properties,
			Constraints: []validation.Constraint{{Target: "parameters.Properties", Name: validation.Null, Rule: true,
				Chain: []validation.Constraint{
					{Target: "parameters.Properties.OperationMode", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.StorageKeyType", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.StorageKey", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.StorageURI", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.AdministratorLogin", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.AdministratorLoginPassword", Name: validation.Null, Rule: true, Chain: nil},
				}}}},
	}); err != nil {
		return ImportExportResponseInner{}, validation.NewError("inner.DatabasesClient", "CreateImportOperation", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(databaseExtensionTemplate,
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName, "extensionName", "import")
	if err != nil {
		return ImportExportResponseInner{}, err
	}
	var result ImportExportResponseInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return ImportExportResponseInner{}, err
	}
	return result, nil
}

// Export writes a database to a bacpac in blob storage.
func (client *DatabasesClient) Export(ctx context.Context, resourceGroupName, serverName, databaseName string, parameters ExportRequest) (ImportExportResponseInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: parameters.StorageKeyType,
			Constraints: []validation.Constraint{{Target: "parameters.StorageKeyType", Name: validation.Null, Rule: true, Chain: nil}}},
		{TargetValue: parameters.StorageKey,
			Constraints: []validation.Constraint{{Target: "parameters.StorageKey", Name: validation.Null, Rule: true, Chain: nil}}},
		{TargetValue: parameters.StorageURI,
			Constraints: []validation.Constraint{{Target: "parameters.StorageURI", Name: validation.Null, Rule: true, Chain: nil}}},
		{TargetValue: parameters.AdministratorLogin,
			Constraints: []validation.Constraint{{Target: "parameters.AdministratorLogin", Name: validation.Null, Rule: true, Chain: nil}}},
		{TargetValue: parameters.AdministratorLoginPassword,
			Constraints: []validation.Constraint{{Target: "parameters.AdministratorLoginPassword", Name: validation.Null, Rule: true, Chain: nil}}},
	}); err != nil {
		return ImportExportResponseInner{}, validation.NewError("inner.DatabasesClient", "Export", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(databasesTemplate+"/{databaseName}/export",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "databaseName", databaseName)
	if err != nil {
		return ImportExportResponseInner{}, err
	}
	var result ImportExportResponseInner
	if err := client.call(ctx, http.MethodPost, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusAccepted); err != nil {
		return ImportExportResponseInner{}, err
	}
	return result, nil
}
