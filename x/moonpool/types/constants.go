package types

import (
	"time"

	"cosmossdk.io/math"
)

// Bonding curve
var (
	// CurveSlope is K in price(s) = K * s
	CurveSlope = math.LegacyMustNewDecFromStr("0.001")
)

const (
	// BaseDropletPrice scales curve prices into quote minor units
	BaseDropletPrice int64 = 1000

	// DropletExponent is the number of decimals of every issuance token
	DropletExponent uint32 = 6
	// DropletDecimals = 10^DropletExponent
	DropletDecimals uint64 = 1_000_000

	// MaxDropletSupply caps circulating supply of a pool (minor units)
	MaxDropletSupply uint64 = 1_000_000_000_000_000

	// RaiseTargetSupply is the canonical whole-unit supply the raise goal is spread over
	RaiseTargetSupply uint64 = 1_000_000_000

	// QuoteUnitsPerMajor is the number of quote minor units in one major unit
	QuoteUnitsPerMajor uint64 = 1_000_000_000
)

// Fees
const (
	PoolCreationFee    uint64 = 50_000_000 // 0.05 major units
	OwnerFeePercent    uint64 = 1
	PlatformFeePercent uint64 = 1
)

// Lifecycle windows
const (
	RaisePeriod    = 72 * time.Hour
	MaturityPeriod = 365 * 24 * time.Hour
)

// Field bounds
const (
	MaxPoolNameLength    = 24
	MaxSymbolLength      = 10
	MaxMetadataURILength = 64
)

// Denoms
const (
	DefaultQuoteDenom  = "lamport"
	DropletDenomPrefix = "droplet"
)
