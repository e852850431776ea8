package inner

import (
	"encoding/json"
	"reflect"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/go-autorest/autorest/date"
)

// ServerInner is an Azure SQL server.
type ServerInner struct {
	// READ-ONLY; Resource ID.
	ID *string `json:"id,omitempty"`
	// READ-ONLY; Resource name.
	Name *string `json:"name,omitempty"`
	// READ-ONLY; Resource type.
	Type *string `json:"type,omitempty"`
	// READ-ONLY; Kind of sql server. This is metadata used for the Azure portal experience.
	Kind       *string            `json:"kind,omitempty"`
	Location   *string            `json:"location,omitempty"`
	Tags       map[string]*string `json:"tags,omitempty"`
	Properties *ServerProperties  `json:"properties,omitempty"`
}

// MarshalJSON omits read-only fields.
func (s ServerInner) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "location", s.Location)
	populate(objectMap, "properties", s.Properties)
	populate(objectMap, "tags", s.Tags)
	return json.Marshal(objectMap)
}

// ServerProperties represents the properties of a server.
type ServerProperties struct {
	// READ-ONLY; The fully qualified domain name of the server.
	FullyQualifiedDomainName *string `json:"fullyQualifiedDomainName,omitempty"`
	// READ-ONLY; The state of the server.
	State                      *string        `json:"state,omitempty"`
	Version                    *ServerVersion `json:"version,omitempty"`
	AdministratorLogin         *string        `json:"administratorLogin,omitempty"`
	AdministratorLoginPassword *string        `json:"administratorLoginPassword,omitempty"`
}

// MarshalJSON omits read-only fields.
func (p ServerProperties) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "version", p.Version)
	populate(objectMap, "administratorLogin", p.AdministratorLogin)
	populate(objectMap, "administratorLoginPassword", p.AdministratorLoginPassword)
	return json.Marshal(objectMap)
}

// ServerListResult is the response to a list servers request.
type ServerListResult struct {
	Value []*ServerInner `json:"value,omitempty"`
}

// FirewallRuleInner represents a server firewall rule.
type FirewallRuleInner struct {
	// READ-ONLY
	ID *string `json:"id,omitempty"`
	// READ-ONLY
	Name *string `json:"name,omitempty"`
	// READ-ONLY
	Type *string `json:"type,omitempty"`
	// READ-ONLY; Kind of server that contains this firewall rule.
	Kind *string `json:"kind,omitempty"`
	// READ-ONLY; Location of the server that contains this firewall rule.
	Location   *string                 `json:"location,omitempty"`
	Properties *FirewallRuleProperties `json:"properties,omitempty"`
}

// MarshalJSON omits read-only fields.
func (f FirewallRuleInner) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "properties", f.Properties)
	return json.Marshal(objectMap)
}

// FirewallRuleProperties represents the properties of a server firewall rule.
type FirewallRuleProperties struct {
	// The start IP address of the firewall rule. Use value '0.0.0.0' to represent all Azure-internal IP addresses.
	StartIPAddress *string `json:"startIpAddress,omitempty"`
	// The end IP address of the firewall rule. Use value '0.0.0.0' to represent all Azure-internal IP addresses.
	EndIPAddress *string `json:"endIpAddress,omitempty"`
}

// FirewallRuleListResult is the response to a list firewall rules request.
type FirewallRuleListResult struct {
	Value []*FirewallRuleInner `json:"value,omitempty"`
}

// ElasticPoolInner represents a database elastic pool.
type ElasticPoolInner struct {
	// READ-ONLY
	ID *string `json:"id,omitempty"`
	// READ-ONLY
	Name *string `json:"name,omitempty"`
	// READ-ONLY
	Type *string `json:"type,omitempty"`
	// READ-ONLY; Kind of elastic pool.
	Kind       *string                `json:"kind,omitempty"`
	Location   *string                `json:"location,omitempty"`
	Tags       map[string]*string     `json:"tags,omitempty"`
	Properties *ElasticPoolProperties `json:"properties,omitempty"`
}

// MarshalJSON omits read-only fields.
func (e ElasticPoolInner) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "location", e.Location)
	populate(objectMap, "properties", e.Properties)
	populate(objectMap, "tags", e.Tags)
	return json.Marshal(objectMap)
}

// ElasticPoolProperties represents the properties of an elastic pool.
type ElasticPoolProperties struct {
	// READ-ONLY; The creation date of the elastic pool (ISO8601 format).
	CreationDate *date.Time `json:"creationDate,omitempty"`
	// READ-ONLY; The state of the elastic pool.
	State          *ElasticPoolState   `json:"state,omitempty"`
	Edition        *ElasticPoolEdition `json:"edition,omitempty"`
	Dtu            *int32              `json:"dtu,omitempty"`
	DatabaseDtuMax *int32              `json:"databaseDtuMax,omitempty"`
	DatabaseDtuMin *int32              `json:"databaseDtuMin,omitempty"`
	StorageMB      *int32              `json:"storageMB,omitempty"`
	ZoneRedundant  *bool               `json:"zoneRedundant,omitempty"`
}

// MarshalJSON omits read-only fields.
func (p ElasticPoolProperties) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "edition", p.Edition)
	populate(objectMap, "dtu", p.Dtu)
	populate(objectMap, "databaseDtuMax", p.DatabaseDtuMax)
	populate(objectMap, "databaseDtuMin", p.DatabaseDtuMin)
	populate(objectMap, "storageMB", p.StorageMB)
	populate(objectMap, "zoneRedundant", p.ZoneRedundant)
	return json.Marshal(objectMap)
}

// ElasticPoolListResult is the response to a list elastic pools request.
type ElasticPoolListResult struct {
	Value []*ElasticPoolInner `json:"value,omitempty"`
}

// DatabaseInner represents a database.
type DatabaseInner struct {
	// READ-ONLY
	ID *string `json:"id,omitempty"`
	// READ-ONLY
	Name *string `json:"name,omitempty"`
	// READ-ONLY
	Type *string `json:"type,omitempty"`
	// READ-ONLY; Kind of database. This is metadata used for the Azure portal experience.
	Kind       *string             `json:"kind,omitempty"`
	Location   *string             `json:"location,omitempty"`
	Tags       map[string]*string  `json:"tags,omitempty"`
	Properties *DatabaseProperties `json:"properties,omitempty"`
}

// MarshalJSON omits read-only fields.
func (d DatabaseInner) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "location", d.Location)
	populate(objectMap, "properties", d.Properties)
	populate(objectMap, "tags", d.Tags)
	return json.Marshal(objectMap)
}

// DatabaseProperties represents the properties of a database.
type DatabaseProperties struct {
	Collation *string `json:"collation,omitempty"`
	// READ-ONLY
	CreationDate *date.Time `json:"creationDate,omitempty"`
	// READ-ONLY
	ContainmentState *int64 `json:"containmentState,omitempty"`
	// READ-ONLY
	CurrentServiceObjectiveID *string `json:"currentServiceObjectiveId,omitempty"`
	// READ-ONLY
	DatabaseID *string `json:"databaseId,omitempty"`
	// READ-ONLY
	EarliestRestoreDate                     *date.Time            `json:"earliestRestoreDate,omitempty"`
	CreateMode                              *CreateMode           `json:"createMode,omitempty"`
	SourceDatabaseID                        *string               `json:"sourceDatabaseId,omitempty"`
	SourceDatabaseDeletionDate              *date.Time            `json:"sourceDatabaseDeletionDate,omitempty"`
	RestorePointInTime                      *date.Time            `json:"restorePointInTime,omitempty"`
	RecoveryServicesRecoveryPointResourceID *string               `json:"recoveryServicesRecoveryPointResourceId,omitempty"`
	Edition                                 *DatabaseEdition      `json:"edition,omitempty"`
	MaxSizeBytes                            *string               `json:"maxSizeBytes,omitempty"`
	RequestedServiceObjectiveID             *string               `json:"requestedServiceObjectiveId,omitempty"`
	RequestedServiceObjectiveName           *ServiceObjectiveName `json:"requestedServiceObjectiveName,omitempty"`
	// READ-ONLY
	ServiceLevelObjective *ServiceObjectiveName `json:"serviceLevelObjective,omitempty"`
	// READ-ONLY
	Status          *string `json:"status,omitempty"`
	ElasticPoolName *string `json:"elasticPoolName,omitempty"`
	// READ-ONLY
	DefaultSecondaryLocation *string     `json:"defaultSecondaryLocation,omitempty"`
	ReadScale                *ReadScale  `json:"readScale,omitempty"`
	SampleName               *SampleName `json:"sampleName,omitempty"`
	ZoneRedundant            *bool       `json:"zoneRedundant,omitempty"`
}

// MarshalJSON omits read-only fields.
func (p DatabaseProperties) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "collation", p.Collation)
	populate(objectMap, "createMode", p.CreateMode)
	populate(objectMap, "sourceDatabaseId", p.SourceDatabaseID)
	populate(objectMap, "sourceDatabaseDeletionDate", p.SourceDatabaseDeletionDate)
	populate(objectMap, "restorePointInTime", p.RestorePointInTime)
	populate(objectMap, "recoveryServicesRecoveryPointResourceId", p.RecoveryServicesRecoveryPointResourceID)
	populate(objectMap, "edition", p.Edition)
	populate(objectMap, "maxSizeBytes", p.MaxSizeBytes)
	populate(objectMap, "requestedServiceObjectiveId", p.RequestedServiceObjectiveID)
	populate(objectMap, "requestedServiceObjectiveName", p.RequestedServiceObjectiveName)
	populate(objectMap, "elasticPoolName", p.ElasticPoolName)
	populate(objectMap, "readScale", p.ReadScale)
	populate(objectMap, "sampleName", p.SampleName)
	populate(objectMap, "zoneRedundant", p.ZoneRedundant)
	return json.Marshal(objectMap)
}

// DatabaseListResult is the response to a list databases request.
type DatabaseListResult struct {
	Value []*DatabaseInner `json:"value,omitempty"`
}

// ServerAzureADAdministratorInner is an Active Directory administrator of a server.
type ServerAzureADAdministratorInner struct {
	// READ-ONLY
	ID *string `json:"id,omitempty"`
	// READ-ONLY
	Name *string `json:"name,omitempty"`
	// READ-ONLY
	Type       *string                               `json:"type,omitempty"`
	Properties *ServerAzureADAdministratorProperties `json:"properties,omitempty"`
}

// MarshalJSON omits read-only fields.
func (s ServerAzureADAdministratorInner) MarshalJSON() ([]byte, error) {
	objectMap := make(map[string]any)
	populate(objectMap, "properties", s.Properties)
	return json.Marshal(objectMap)
}

// ServerAzureADAdministratorProperties are the properties of a server Active Directory administrator.
type ServerAzureADAdministratorProperties struct {
	// The type of administrator. Only "ActiveDirectory" is accepted.
	AdministratorType *string `json:"administratorType,omitempty"`
	Login             *string `json:"login,omitempty"`
	// SID (object ID) of the server administrator.
	Sid      *string `json:"sid,omitempty"`
	TenantID *string `json:"tenantId,omitempty"`
}

// ImportExtensionRequest imports a bacpac into an existing database.
type ImportExtensionRequest struct {
	Name       *string                           `json:"name,omitempty"`
	Type       *string                           `json:"type,omitempty"`
	Properties *ImportExtensionRequestProperties `json:"properties,omitempty"`
}

// ImportExtensionRequestProperties are the properties of an import operation.
type ImportExtensionRequestProperties struct {
	OperationMode              *string             `json:"operationMode,omitempty"`
	StorageKeyType             *StorageKeyType     `json:"storageKeyType,omitempty"`
	StorageKey                 *string             `json:"storageKey,omitempty"`
	StorageURI                 *string             `json:"storageUri,omitempty"`
	AdministratorLogin         *string             `json:"administratorLogin,omitempty"`
	AdministratorLoginPassword *string             `json:"administratorLoginPassword,omitempty"`
	AuthenticationType         *AuthenticationType `json:"authenticationType,omitempty"`
}

// ImportExportResponseInner is the response to an import or export request.
type ImportExportResponseInner struct {
	ID         *string                         `json:"id,omitempty"`
	Name       *string                         `json:"name,omitempty"`
	Type       *string                         `json:"type,omitempty"`
	Properties *ImportExportResponseProperties `json:"properties,omitempty"`
}

// ImportExportResponseProperties are the read-only results of an import or export.
type ImportExportResponseProperties struct {
	RequestType      *string `json:"requestType,omitempty"`
	RequestID        *string `json:"requestId,omitempty"`
	ServerName       *string `json:"serverName,omitempty"`
	DatabaseName     *string `json:"databaseName,omitempty"`
	Status           *string `json:"status,omitempty"`
	LastModifiedTime *string `json:"lastModifiedTime,omitempty"`
	QueuedTime       *string `json:"queuedTime,omitempty"`
	BlobURI          *string `json:"blobUri,omitempty"`
	ErrorMessage     *string `json:"errorMessage,omitempty"`
}

// ExportRequest exports a database to a bacpac in blob storage.
type ExportRequest struct {
	StorageKeyType             *StorageKeyType     `json:"storageKeyType,omitempty"`
	StorageKey                 *string             `json:"storageKey,omitempty"`
	StorageURI                 *string             `json:"storageUri,omitempty"`
	AdministratorLogin         *string             `json:"administratorLogin,omitempty"`
	AdministratorLoginPassword *string             `json:"administratorLoginPassword,omitempty"`
	AuthenticationType         *AuthenticationType `json:"authenticationType,omitempty"`
}

// MetricName is the name of a metric and its display form.
type MetricName struct {
	Value          *string `json:"value,omitempty"`
	LocalizedValue *string `json:"localizedValue,omitempty"`
}

// MetricValue is one aggregated sample of a metric.
type MetricValue struct {
	Count     *float64   `json:"count,omitempty"`
	Average   *float64   `json:"average,omitempty"`
	Maximum   *float64   `json:"maximum,omitempty"`
	Minimum   *float64   `json:"minimum,omitempty"`
	Timestamp *date.Time `json:"timestamp,omitempty"`
	Total     *float64   `json:"total,omitempty"`
}

// MetricInner is a database usage metric over a time window.
type MetricInner struct {
	StartTime    *date.Time     `json:"startTime,omitempty"`
	EndTime      *date.Time     `json:"endTime,omitempty"`
	TimeGrain    *string        `json:"timeGrain,omitempty"`
	Unit         *UnitType      `json:"unit,omitempty"`
	Name         *MetricName    `json:"name,omitempty"`
	MetricValues []*MetricValue `json:"metricValues,omitempty"`
}

// MetricListResult is a page of metrics.
type MetricListResult struct {
	Value []*MetricInner `json:"value,omitempty"`
}

// MetricAvailability is a retention and grain a metric is kept at.
type MetricAvailability struct {
	Retention *string `json:"retention,omitempty"`
	TimeGrain *string `json:"timeGrain,omitempty"`
}

// MetricDefinitionInner describes a metric that can be queried.
type MetricDefinitionInner struct {
	Name                   *MetricName             `json:"name,omitempty"`
	PrimaryAggregationType *PrimaryAggregationType `json:"primaryAggregationType,omitempty"`
	ResourceURI            *string                 `json:"resourceUri,omitempty"`
	Unit                   *UnitDefinitionType     `json:"unit,omitempty"`
	MetricAvailabilities   []*MetricAvailability   `json:"metricAvailabilities,omitempty"`
}

// MetricDefinitionListResult is a page of metric definitions.
type MetricDefinitionListResult struct {
	Value []*MetricDefinitionInner `json:"value,omitempty"`
}

// ResourceMoveDefinition names the target of a database rename.
type ResourceMoveDefinition struct {
	ID *string `json:"id,omitempty"`
}

func populate(m map[string]any, k string, v any) {
	if v == nil {
		return
	} else if azcore.IsNullValue(v) {
		m[k] = nil
	} else if !reflect.ValueOf(v).IsNil() {
		m[k] = v
	}
}
