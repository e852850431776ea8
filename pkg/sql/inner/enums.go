package inner

// DatabaseEdition enumerates the values for database edition.
type DatabaseEdition string

const (
	DatabaseEditionBasic         DatabaseEdition = "Basic"
	DatabaseEditionBusiness      DatabaseEdition = "Business"
	DatabaseEditionDataWarehouse DatabaseEdition = "DataWarehouse"
	DatabaseEditionFree          DatabaseEdition = "Free"
	DatabaseEditionPremium       DatabaseEdition = "Premium"
	DatabaseEditionPremiumRS     DatabaseEdition = "PremiumRS"
	DatabaseEditionStandard      DatabaseEdition = "Standard"
	DatabaseEditionStretch       DatabaseEdition = "Stretch"
	DatabaseEditionSystem        DatabaseEdition = "System"
	DatabaseEditionWeb           DatabaseEdition = "Web"
)

// PossibleDatabaseEditionValues returns the possible values for the DatabaseEdition const type.
func PossibleDatabaseEditionValues() []DatabaseEdition {
	return []DatabaseEdition{
		DatabaseEditionBasic,
		DatabaseEditionBusiness,
		DatabaseEditionDataWarehouse,
		DatabaseEditionFree,
		DatabaseEditionPremium,
		DatabaseEditionPremiumRS,
		DatabaseEditionStandard,
		DatabaseEditionStretch,
		DatabaseEditionSystem,
		DatabaseEditionWeb,
	}
}

// ElasticPoolEdition enumerates the values for elastic pool edition.
type ElasticPoolEdition string

const (
	ElasticPoolEditionBasic     ElasticPoolEdition = "Basic"
	ElasticPoolEditionPremium   ElasticPoolEdition = "Premium"
	ElasticPoolEditionStandard  ElasticPoolEdition = "Standard"
	ElasticPoolEditionPremiumRS ElasticPoolEdition = "PremiumRS"
)

// PossibleElasticPoolEditionValues returns the possible values for the ElasticPoolEdition const type.
func PossibleElasticPoolEditionValues() []ElasticPoolEdition {
	return []ElasticPoolEdition{
		ElasticPoolEditionBasic,
		ElasticPoolEditionPremium,
		ElasticPoolEditionStandard,
		ElasticPoolEditionPremiumRS,
	}
}

// ElasticPoolState enumerates the values for elastic pool state.
type ElasticPoolState string

const (
	ElasticPoolStateCreating ElasticPoolState = "Creating"
	ElasticPoolStateDisabled ElasticPoolState = "Disabled"
	ElasticPoolStateReady    ElasticPoolState = "Ready"
)

// CreateMode enumerates the values for database create mode.
type CreateMode string

const (
	CreateModeCopy                           CreateMode = "Copy"
	CreateModeDefault                        CreateMode = "Default"
	CreateModeNonReadableSecondary           CreateMode = "NonReadableSecondary"
	CreateModeOnlineSecondary                CreateMode = "OnlineSecondary"
	CreateModePointInTimeRestore             CreateMode = "PointInTimeRestore"
	CreateModeRecovery                       CreateMode = "Recovery"
	CreateModeRestore                        CreateMode = "Restore"
	CreateModeRestoreLongTermRetentionBackup CreateMode = "RestoreLongTermRetentionBackup"
)

// PossibleCreateModeValues returns the possible values for the CreateMode const type.
func PossibleCreateModeValues() []CreateMode {
	return []CreateMode{
		CreateModeCopy,
		CreateModeDefault,
		CreateModeNonReadableSecondary,
		CreateModeOnlineSecondary,
		CreateModePointInTimeRestore,
		CreateModeRecovery,
		CreateModeRestore,
		CreateModeRestoreLongTermRetentionBackup,
	}
}

// ServiceObjectiveName enumerates the values for service objective name.
type ServiceObjectiveName string

const (
	ServiceObjectiveNameBasic       ServiceObjectiveName = "Basic"
	ServiceObjectiveNameElasticPool ServiceObjectiveName = "ElasticPool"
	ServiceObjectiveNameS0          ServiceObjectiveName = "S0"
	ServiceObjectiveNameS1          ServiceObjectiveName = "S1"
	ServiceObjectiveNameS2          ServiceObjectiveName = "S2"
	ServiceObjectiveNameS3          ServiceObjectiveName = "S3"
	ServiceObjectiveNameS4          ServiceObjectiveName = "S4"
	ServiceObjectiveNameS6          ServiceObjectiveName = "S6"
	ServiceObjectiveNameS7          ServiceObjectiveName = "S7"
	ServiceObjectiveNameS9          ServiceObjectiveName = "S9"
	ServiceObjectiveNameS12         ServiceObjectiveName = "S12"
	ServiceObjectiveNameP1          ServiceObjectiveName = "P1"
	ServiceObjectiveNameP2          ServiceObjectiveName = "P2"
	ServiceObjectiveNameP3          ServiceObjectiveName = "P3"
	ServiceObjectiveNameP4          ServiceObjectiveName = "P4"
	ServiceObjectiveNameP6          ServiceObjectiveName = "P6"
	ServiceObjectiveNameP11         ServiceObjectiveName = "P11"
	ServiceObjectiveNameP15         ServiceObjectiveName = "P15"
	ServiceObjectiveNamePRS1        ServiceObjectiveName = "PRS1"
	ServiceObjectiveNamePRS2        ServiceObjectiveName = "PRS2"
	ServiceObjectiveNamePRS4        ServiceObjectiveName = "PRS4"
	ServiceObjectiveNamePRS6        ServiceObjectiveName = "PRS6"
	ServiceObjectiveNameSystem      ServiceObjectiveName = "System"
)

// ReadScale enumerates the values for read scale.
type ReadScale string

const (
	ReadScaleDisabled ReadScale = "Disabled"
	ReadScaleEnabled  ReadScale = "Enabled"
)

// SampleName enumerates the values for sample name.
type SampleName string

const (
	SampleNameAdventureWorksLT SampleName = "AdventureWorksLT"
)

// ServerVersion enumerates the values for server version.
type ServerVersion string

const (
	ServerVersionTwoFullStopZero    ServerVersion = "2.0"
	ServerVersionOneTwoFullStopZero ServerVersion = "12.0"
)

// StorageKeyType enumerates the values for storage key type.
type StorageKeyType string

const (
	StorageKeyTypeSharedAccessKey  StorageKeyType = "SharedAccessKey"
	StorageKeyTypeStorageAccessKey StorageKeyType = "StorageAccessKey"
)

// AuthenticationType enumerates the values for import authentication type.
type AuthenticationType string

const (
	AuthenticationTypeADPassword AuthenticationType = "ADPassword"
	AuthenticationTypeSQL        AuthenticationType = "SQL"
)

// UnitType enumerates the units a metric is reported in.
type UnitType string

const (
	UnitTypeBytes          UnitType = "bytes"
	UnitTypeBytesPerSecond UnitType = "bytesPerSecond"
	UnitTypeCount          UnitType = "count"
	UnitTypeCountPerSecond UnitType = "countPerSecond"
	UnitTypePercent        UnitType = "percent"
	UnitTypeSeconds        UnitType = "seconds"
)

// UnitDefinitionType enumerates the units of a metric definition.
type UnitDefinitionType string

const (
	UnitDefinitionTypeBytes          UnitDefinitionType = "Bytes"
	UnitDefinitionTypeBytesPerSecond UnitDefinitionType = "BytesPerSecond"
	UnitDefinitionTypeCount          UnitDefinitionType = "Count"
	UnitDefinitionTypeCountPerSecond UnitDefinitionType = "CountPerSecond"
	UnitDefinitionTypePercent        UnitDefinitionType = "Percent"
	UnitDefinitionTypeSeconds        UnitDefinitionType = "Seconds"
)

// PrimaryAggregationType enumerates how a metric is aggregated by default.
type PrimaryAggregationType string

const (
	PrimaryAggregationTypeAverage PrimaryAggregationType = "Average"
	PrimaryAggregationTypeCount   PrimaryAggregationType = "Count"
	PrimaryAggregationTypeMaximum PrimaryAggregationType = "Maximum"
	PrimaryAggregationTypeMinimum PrimaryAggregationType = "Minimum"
	PrimaryAggregationTypeNone    PrimaryAggregationType = "None"
	PrimaryAggregationTypeTotal   PrimaryAggregationType = "Total"
)
