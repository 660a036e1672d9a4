package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// Keeper manages the moonpool module state
type Keeper struct {
	cdc           codec.BinaryCodec
	storeKey      storetypes.StoreKey
	accountKeeper types.AccountKeeper
	bankKeeper    types.BankKeeper
	logger        log.Logger
	authority     string
}

// NewKeeper creates a new moonpool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	if addr := accountKeeper.GetModuleAddress(types.ModuleName); addr == nil {
		panic(fmt.Sprintf("the %s module account has not been set", types.ModuleName))
	}
	return &Keeper{
		cdc:           cdc,
		storeKey:      storeKey,
		accountKeeper: accountKeeper,
		bankKeeper:    bankKeeper,
		authority:     authority,
		logger:        logger.With("module", "x/moonpool"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Singletons ============

// GetParams returns the module params, or the defaults when none are stored
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	var params types.Params
	if !k.get(ctx, types.ParamsKey, &params) {
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and saves the module params
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	k.set(ctx, types.ParamsKey, params)
	return nil
}

// GetRegistry returns the program registry, or nil before bootstrap
func (k *Keeper) GetRegistry(ctx sdk.Context) *types.Registry {
	var reg types.Registry
	if !k.get(ctx, types.RegistryKey, &reg) {
		return nil
	}
	return &reg
}

// SetRegistry saves the program registry
func (k *Keeper) SetRegistry(ctx sdk.Context, reg *types.Registry) {
	k.set(ctx, types.RegistryKey, reg)
}

// GetFeeVault returns the fee vault record, or nil before bootstrap
func (k *Keeper) GetFeeVault(ctx sdk.Context) *types.FeeVault {
	var fv types.FeeVault
	if !k.get(ctx, types.FeeVaultKey, &fv) {
		return nil
	}
	return &fv
}

// SetFeeVault saves the fee vault record
func (k *Keeper) SetFeeVault(ctx sdk.Context, fv *types.FeeVault) {
	k.set(ctx, types.FeeVaultKey, fv)
}

// ============ Pools ============

// SetPool saves a pool and its owner index
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	addr := pool.GetAddress()
	k.set(ctx, types.PoolKey(addr), pool)
	k.GetStore(ctx).Set(types.OwnerPoolIndexKey(pool.GetOwner(), addr), []byte{0x01})
}

// GetPool retrieves a pool by address
func (k *Keeper) GetPool(ctx sdk.Context, addr sdk.AccAddress) *types.Pool {
	var pool types.Pool
	if !k.get(ctx, types.PoolKey(addr), &pool) {
		return nil
	}
	return &pool
}

// HasPool reports whether a pool record exists at addr
func (k *Keeper) HasPool(ctx sdk.Context, addr sdk.AccAddress) bool {
	return k.GetStore(ctx).Has(types.PoolKey(addr))
}

// IteratePools walks all pools in key order until cb returns true
func (k *Keeper) IteratePools(ctx sdk.Context, cb func(pool *types.Pool) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			k.logger.Error("skipping undecodable pool record", "key", fmt.Sprintf("%X", iterator.Key()), "error", err)
			continue
		}
		if cb(&pool) {
			return
		}
	}
}

// GetAllPools returns all pools
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	var pools []*types.Pool
	k.IteratePools(ctx, func(pool *types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools
}

// GetPoolsByOwner returns the pools created by owner
func (k *Keeper) GetPoolsByOwner(ctx sdk.Context, owner sdk.AccAddress) []*types.Pool {
	prefix := types.OwnerPoolIndexPrefixFor(owner)
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), prefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		// key = prefix | len | pool
		poolKey := iterator.Key()[len(prefix)+1:]
		if pool := k.GetPool(ctx, sdk.AccAddress(poolKey)); pool != nil {
			pools = append(pools, pool)
		}
	}
	return pools
}

// ============ Collateral assets ============

// SetAsset saves a collateral asset record
func (k *Keeper) SetAsset(ctx sdk.Context, asset *types.CollateralAsset) {
	pool := sdk.MustAccAddressFromBech32(asset.Pool)
	k.set(ctx, types.AssetKey(pool, asset.Denom), asset)
}

// GetAsset retrieves the collateral record of (pool, denom)
func (k *Keeper) GetAsset(ctx sdk.Context, pool sdk.AccAddress, denom string) *types.CollateralAsset {
	var asset types.CollateralAsset
	if !k.get(ctx, types.AssetKey(pool, denom), &asset) {
		return nil
	}
	return &asset
}

// GetPoolAssets returns all collateral records of a pool
func (k *Keeper) GetPoolAssets(ctx sdk.Context, pool sdk.AccAddress) []*types.CollateralAsset {
	return k.iterateAssets(ctx, types.AssetKeyPrefixFor(pool))
}

// GetAllAssets returns every collateral record
func (k *Keeper) GetAllAssets(ctx sdk.Context) []*types.CollateralAsset {
	return k.iterateAssets(ctx, types.AssetKeyPrefix)
}

func (k *Keeper) iterateAssets(ctx sdk.Context, prefix []byte) []*types.CollateralAsset {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), prefix)
	defer iterator.Close()

	var assets []*types.CollateralAsset
	for ; iterator.Valid(); iterator.Next() {
		var asset types.CollateralAsset
		if err := json.Unmarshal(iterator.Value(), &asset); err != nil {
			continue
		}
		assets = append(assets, &asset)
	}
	return assets
}

// ============ helpers ============

func (k *Keeper) get(ctx sdk.Context, key []byte, v interface{}) bool {
	bz := k.GetStore(ctx).Get(key)
	if bz == nil {
		return false
	}
	if err := json.Unmarshal(bz, v); err != nil {
		k.logger.Error("failed to decode record", "key", fmt.Sprintf("%X", key), "error", err)
		return false
	}
	return true
}

func (k *Keeper) set(ctx sdk.Context, key []byte, v interface{}) {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to encode %T: %v", v, err))
	}
	k.GetStore(ctx).Set(key, bz)
}
