package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Module name and store key
const (
	ModuleName = "moonpool"
	StoreKey   = ModuleName
	RouterKey  = ModuleName
)

// Store key prefixes
var (
	RegistryKey          = []byte{0x01}
	FeeVaultKey          = []byte{0x02}
	PoolKeyPrefix        = []byte{0x03}
	OwnerPoolIndexPrefix = []byte{0x04}
	AssetKeyPrefix       = []byte{0x05}
	ParamsKey            = []byte{0x06}
)

// Derivation seeds. Every record and vault address is a pure function of
// these seeds and the identities they are combined with.
var (
	PoolSeed       = []byte("pool")
	QuoteVaultSeed = []byte("quote_vault")
	AssetVaultSeed = []byte("asset_vault")
	FeeVaultSeed   = []byte("fee_vault")
)

// CanonicalBump is recorded on every pool as its derivation salt.
const CanonicalBump uint8 = 255

// PoolAddress derives the pool address from its owner and name.
func PoolAddress(owner sdk.AccAddress, name string) sdk.AccAddress {
	return address.Module(ModuleName, PoolSeed, owner, []byte(name), []byte{CanonicalBump})
}

// QuoteVaultAddress derives the account holding a pool's trading collateral.
func QuoteVaultAddress(pool sdk.AccAddress) sdk.AccAddress {
	return address.Module(ModuleName, QuoteVaultSeed, pool)
}

// AssetVaultAddress derives the account holding one collateral type for a pool.
func AssetVaultAddress(pool sdk.AccAddress, denom string) sdk.AccAddress {
	return address.Module(ModuleName, AssetVaultSeed, pool, []byte(denom))
}

// FeeVaultAddress derives the platform fee vault account.
func FeeVaultAddress() sdk.AccAddress {
	return address.Module(ModuleName, FeeVaultSeed)
}

// PoolKey returns the store key for a pool record
func PoolKey(pool sdk.AccAddress) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), address.MustLengthPrefix(pool)...)
}

// OwnerPoolIndexKey indexes a pool under its owner
func OwnerPoolIndexKey(owner, pool sdk.AccAddress) []byte {
	return append(OwnerPoolIndexPrefixFor(owner), address.MustLengthPrefix(pool)...)
}

// OwnerPoolIndexPrefixFor returns the index prefix for all pools of an owner
func OwnerPoolIndexPrefixFor(owner sdk.AccAddress) []byte {
	return append(append([]byte{}, OwnerPoolIndexPrefix...), address.MustLengthPrefix(owner)...)
}

// AssetKey returns the store key for the (pool, collateral type) record
func AssetKey(pool sdk.AccAddress, denom string) []byte {
	return append(AssetKeyPrefixFor(pool), []byte(denom)...)
}

// AssetKeyPrefixFor returns the prefix of all collateral records of a pool
func AssetKeyPrefixFor(pool sdk.AccAddress) []byte {
	return append(append([]byte{}, AssetKeyPrefix...), address.MustLengthPrefix(pool)...)
}

// PoolTokenDenom is the bank denom of a pool's issuance token.
func PoolTokenDenom(pool sdk.AccAddress) string {
	return DropletDenomPrefix + "/" + pool.String()
}
