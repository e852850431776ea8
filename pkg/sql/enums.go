package sql

import (
	"fmt"

	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// AllowAllAzureIPsRuleName is the firewall rule that admits Azure services.
const AllowAllAzureIPsRuleName = "AllowAllWindowsAzureIps"

const allowAllAzureIPsAddress = "0.0.0.0"

// ElasticPoolBasicEDTUs are the reserved eDTU values of a Basic pool.
type ElasticPoolBasicEDTUs int32

const (
	ElasticPoolBasicEDTUs50   ElasticPoolBasicEDTUs = 50
	ElasticPoolBasicEDTUs100  ElasticPoolBasicEDTUs = 100
	ElasticPoolBasicEDTUs200  ElasticPoolBasicEDTUs = 200
	ElasticPoolBasicEDTUs300  ElasticPoolBasicEDTUs = 300
	ElasticPoolBasicEDTUs400  ElasticPoolBasicEDTUs = 400
	ElasticPoolBasicEDTUs800  ElasticPoolBasicEDTUs = 800
	ElasticPoolBasicEDTUs1200 ElasticPoolBasicEDTUs = 1200
	ElasticPoolBasicEDTUs1600 ElasticPoolBasicEDTUs = 1600
)

// ElasticPoolBasicMaxEDTUs are the per-database eDTU caps of a Basic pool.
type ElasticPoolBasicMaxEDTUs int32

const (
	ElasticPoolBasicMaxEDTUs5 ElasticPoolBasicMaxEDTUs = 5
)

// ElasticPoolBasicMinEDTUs are the per-database eDTU floors of a Basic pool.
type ElasticPoolBasicMinEDTUs int32

const (
	ElasticPoolBasicMinEDTUs0 ElasticPoolBasicMinEDTUs = 0
	ElasticPoolBasicMinEDTUs5 ElasticPoolBasicMinEDTUs = 5
)

// ElasticPoolStandardEDTUs are the reserved eDTU values of a Standard pool.
type ElasticPoolStandardEDTUs int32

const (
	ElasticPoolStandardEDTUs50   ElasticPoolStandardEDTUs = 50
	ElasticPoolStandardEDTUs100  ElasticPoolStandardEDTUs = 100
	ElasticPoolStandardEDTUs200  ElasticPoolStandardEDTUs = 200
	ElasticPoolStandardEDTUs300  ElasticPoolStandardEDTUs = 300
	ElasticPoolStandardEDTUs400  ElasticPoolStandardEDTUs = 400
	ElasticPoolStandardEDTUs800  ElasticPoolStandardEDTUs = 800
	ElasticPoolStandardEDTUs1200 ElasticPoolStandardEDTUs = 1200
	ElasticPoolStandardEDTUs1600 ElasticPoolStandardEDTUs = 1600
	ElasticPoolStandardEDTUs2000 ElasticPoolStandardEDTUs = 2000
	ElasticPoolStandardEDTUs2500 ElasticPoolStandardEDTUs = 2500
	ElasticPoolStandardEDTUs3000 ElasticPoolStandardEDTUs = 3000
)

// ElasticPoolStandardMaxEDTUs are the per-database eDTU caps of a Standard pool.
type ElasticPoolStandardMaxEDTUs int32

const (
	ElasticPoolStandardMaxEDTUs10   ElasticPoolStandardMaxEDTUs = 10
	ElasticPoolStandardMaxEDTUs20   ElasticPoolStandardMaxEDTUs = 20
	ElasticPoolStandardMaxEDTUs50   ElasticPoolStandardMaxEDTUs = 50
	ElasticPoolStandardMaxEDTUs100  ElasticPoolStandardMaxEDTUs = 100
	ElasticPoolStandardMaxEDTUs200  ElasticPoolStandardMaxEDTUs = 200
	ElasticPoolStandardMaxEDTUs300  ElasticPoolStandardMaxEDTUs = 300
	ElasticPoolStandardMaxEDTUs400  ElasticPoolStandardMaxEDTUs = 400
	ElasticPoolStandardMaxEDTUs800  ElasticPoolStandardMaxEDTUs = 800
	ElasticPoolStandardMaxEDTUs1200 ElasticPoolStandardMaxEDTUs = 1200
	ElasticPoolStandardMaxEDTUs1600 ElasticPoolStandardMaxEDTUs = 1600
	ElasticPoolStandardMaxEDTUs2000 ElasticPoolStandardMaxEDTUs = 2000
	ElasticPoolStandardMaxEDTUs2500 ElasticPoolStandardMaxEDTUs = 2500
	ElasticPoolStandardMaxEDTUs3000 ElasticPoolStandardMaxEDTUs = 3000
)

// ElasticPoolStandardMinEDTUs are the per-database eDTU floors of a Standard pool.
type ElasticPoolStandardMinEDTUs int32

const (
	ElasticPoolStandardMinEDTUs0   ElasticPoolStandardMinEDTUs = 0
	ElasticPoolStandardMinEDTUs10  ElasticPoolStandardMinEDTUs = 10
	ElasticPoolStandardMinEDTUs20  ElasticPoolStandardMinEDTUs = 20
	ElasticPoolStandardMinEDTUs50  ElasticPoolStandardMinEDTUs = 50
	ElasticPoolStandardMinEDTUs100 ElasticPoolStandardMinEDTUs = 100
	ElasticPoolStandardMinEDTUs200 ElasticPoolStandardMinEDTUs = 200
	ElasticPoolStandardMinEDTUs300 ElasticPoolStandardMinEDTUs = 300
	ElasticPoolStandardMinEDTUs400 ElasticPoolStandardMinEDTUs = 400
	ElasticPoolStandardMinEDTUs800 ElasticPoolStandardMinEDTUs = 800
)

// ElasticPoolStandardStorage are the storage sizes of a Standard pool, in megabytes.
type ElasticPoolStandardStorage int32

const (
	ElasticPoolStandardStorage50GB   ElasticPoolStandardStorage = 51200
	ElasticPoolStandardStorage100GB  ElasticPoolStandardStorage = 102400
	ElasticPoolStandardStorage200GB  ElasticPoolStandardStorage = 204800
	ElasticPoolStandardStorage300GB  ElasticPoolStandardStorage = 307200
	ElasticPoolStandardStorage400GB  ElasticPoolStandardStorage = 409600
	ElasticPoolStandardStorage800GB  ElasticPoolStandardStorage = 819200
	ElasticPoolStandardStorage1200GB ElasticPoolStandardStorage = 1228800
	ElasticPoolStandardStorage1600GB ElasticPoolStandardStorage = 1638400
	ElasticPoolStandardStorage2000GB ElasticPoolStandardStorage = 2048000
	ElasticPoolStandardStorage2500GB ElasticPoolStandardStorage = 2560000
	ElasticPoolStandardStorage3000GB ElasticPoolStandardStorage = 3072000
)

// ElasticPoolPremiumEDTUs are the reserved eDTU values of a Premium pool.
type ElasticPoolPremiumEDTUs int32

const (
	ElasticPoolPremiumEDTUs125  ElasticPoolPremiumEDTUs = 125
	ElasticPoolPremiumEDTUs250  ElasticPoolPremiumEDTUs = 250
	ElasticPoolPremiumEDTUs500  ElasticPoolPremiumEDTUs = 500
	ElasticPoolPremiumEDTUs1000 ElasticPoolPremiumEDTUs = 1000
	ElasticPoolPremiumEDTUs1500 ElasticPoolPremiumEDTUs = 1500
	ElasticPoolPremiumEDTUs2000 ElasticPoolPremiumEDTUs = 2000
	ElasticPoolPremiumEDTUs2500 ElasticPoolPremiumEDTUs = 2500
	ElasticPoolPremiumEDTUs3000 ElasticPoolPremiumEDTUs = 3000
	ElasticPoolPremiumEDTUs3500 ElasticPoolPremiumEDTUs = 3500
	ElasticPoolPremiumEDTUs4000 ElasticPoolPremiumEDTUs = 4000
)

// ElasticPoolPremiumMaxEDTUs are the per-database eDTU caps of a Premium pool.
type ElasticPoolPremiumMaxEDTUs int32

const (
	ElasticPoolPremiumMaxEDTUs125  ElasticPoolPremiumMaxEDTUs = 125
	ElasticPoolPremiumMaxEDTUs250  ElasticPoolPremiumMaxEDTUs = 250
	ElasticPoolPremiumMaxEDTUs500  ElasticPoolPremiumMaxEDTUs = 500
	ElasticPoolPremiumMaxEDTUs1000 ElasticPoolPremiumMaxEDTUs = 1000
	ElasticPoolPremiumMaxEDTUs1750 ElasticPoolPremiumMaxEDTUs = 1750
	ElasticPoolPremiumMaxEDTUs4000 ElasticPoolPremiumMaxEDTUs = 4000
)

// ElasticPoolPremiumMinEDTUs are the per-database eDTU floors of a Premium pool.
type ElasticPoolPremiumMinEDTUs int32

const (
	ElasticPoolPremiumMinEDTUs0    ElasticPoolPremiumMinEDTUs = 0
	ElasticPoolPremiumMinEDTUs25   ElasticPoolPremiumMinEDTUs = 25
	ElasticPoolPremiumMinEDTUs50   ElasticPoolPremiumMinEDTUs = 50
	ElasticPoolPremiumMinEDTUs75   ElasticPoolPremiumMinEDTUs = 75
	ElasticPoolPremiumMinEDTUs125  ElasticPoolPremiumMinEDTUs = 125
	ElasticPoolPremiumMinEDTUs250  ElasticPoolPremiumMinEDTUs = 250
	ElasticPoolPremiumMinEDTUs500  ElasticPoolPremiumMinEDTUs = 500
	ElasticPoolPremiumMinEDTUs1000 ElasticPoolPremiumMinEDTUs = 1000
	ElasticPoolPremiumMinEDTUs1750 ElasticPoolPremiumMinEDTUs = 1750
)

// ElasticPoolPremiumStorage are the storage sizes of a Premium pool, in megabytes.
type ElasticPoolPremiumStorage int32

const (
	ElasticPoolPremiumStorage250GB  ElasticPoolPremiumStorage = 256000
	ElasticPoolPremiumStorage500GB  ElasticPoolPremiumStorage = 512000
	ElasticPoolPremiumStorage750GB  ElasticPoolPremiumStorage = 768000
	ElasticPoolPremiumStorage1024GB ElasticPoolPremiumStorage = 1048576
)

// StandardServiceObjectives lists the Standard edition objectives.
func StandardServiceObjectives() []inner.ServiceObjectiveName {
	return []inner.ServiceObjectiveName{
		inner.ServiceObjectiveNameS0, inner.ServiceObjectiveNameS1, inner.ServiceObjectiveNameS2,
		inner.ServiceObjectiveNameS3, inner.ServiceObjectiveNameS4, inner.ServiceObjectiveNameS6,
		inner.ServiceObjectiveNameS7, inner.ServiceObjectiveNameS9, inner.ServiceObjectiveNameS12,
	}
}

// PremiumServiceObjectives lists the Premium edition objectives.
func PremiumServiceObjectives() []inner.ServiceObjectiveName {
	return []inner.ServiceObjectiveName{
		inner.ServiceObjectiveNameP1, inner.ServiceObjectiveNameP2, inner.ServiceObjectiveNameP3,
		inner.ServiceObjectiveNameP4, inner.ServiceObjectiveNameP6, inner.ServiceObjectiveNameP11,
		inner.ServiceObjectiveNameP15,
	}
}

// PremiumRSServiceObjectives lists the PremiumRS edition objectives.
func PremiumRSServiceObjectives() []inner.ServiceObjectiveName {
	return []inner.ServiceObjectiveName{
		inner.ServiceObjectiveNamePRS1, inner.ServiceObjectiveNamePRS2,
		inner.ServiceObjectiveNamePRS4, inner.ServiceObjectiveNamePRS6,
	}
}

// DatabaseBasicStorage is the maximum size of a Basic database, in bytes.
type DatabaseBasicStorage int64

const (
	DatabaseBasicStorageMax100MB DatabaseBasicStorage = 100 * 1024 * 1024
	DatabaseBasicStorageMax500MB DatabaseBasicStorage = 500 * 1024 * 1024
	DatabaseBasicStorageMax1GB   DatabaseBasicStorage = 1024 * 1024 * 1024
	DatabaseBasicStorageMax2GB   DatabaseBasicStorage = 2 * 1024 * 1024 * 1024
)

// MaxSizeUnits scales a database size to bytes.
type MaxSizeUnits int64

const (
	Megabytes MaxSizeUnits = 1 << 20
	Gigabytes MaxSizeUnits = 1 << 30
	Terabytes MaxSizeUnits = 1 << 40
	Petabytes MaxSizeUnits = 1 << 50
)

// Bytes returns size expressed in u as bytes.
func (u MaxSizeUnits) Bytes(size int64) int64 {
	return size * int64(u)
}

func (u MaxSizeUnits) String() string {
	switch u {
	case Megabytes:
		return "MB"
	case Gigabytes:
		return "GB"
	case Terabytes:
		return "TB"
	case Petabytes:
		return "PB"
	default:
		return fmt.Sprintf("MaxSizeUnits(%d)", int64(u))
	}
}
