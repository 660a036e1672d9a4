package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// QueryServer defines the moonpool QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Registry returns the program registry
func (q *QueryServer) Registry(ctx context.Context) (*types.Registry, error) {
	reg := q.keeper.GetRegistry(sdk.UnwrapSDKContext(ctx))
	if reg == nil {
		return nil, types.ErrVaultNotInitialized
	}
	return reg, nil
}

// Params returns the module params
func (q *QueryServer) Params(ctx context.Context) types.Params {
	return q.keeper.GetParams(sdk.UnwrapSDKContext(ctx))
}

// FeeVault returns the fee vault record and its quote balance
func (q *QueryServer) FeeVault(ctx context.Context) (*types.FeeVault, sdk.Coin, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fv := q.keeper.GetFeeVault(sdkCtx)
	if fv == nil {
		return nil, sdk.Coin{}, types.ErrVaultNotInitialized
	}
	balance := q.keeper.bankKeeper.GetBalance(sdkCtx, sdk.MustAccAddressFromBech32(fv.Address), q.keeper.GetParams(sdkCtx).QuoteDenom)
	return fv, balance, nil
}

// Pool returns a pool by address
func (q *QueryServer) Pool(ctx context.Context, poolAddr string) (*types.Pool, error) {
	return q.keeper.loadPool(sdk.UnwrapSDKContext(ctx), poolAddr)
}

// PoolByName resolves a pool from its owner and name
func (q *QueryServer) PoolByName(ctx context.Context, owner, name string) (*types.Pool, error) {
	ownerAddr, err := parseAccount(owner)
	if err != nil {
		return nil, err
	}
	return q.Pool(ctx, types.PoolAddress(ownerAddr, name).String())
}

// Pools returns all pools
func (q *QueryServer) Pools(ctx context.Context, offset, limit uint64) ([]*types.Pool, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPools := q.keeper.GetAllPools(sdkCtx)

	total := uint64(len(allPools))

	// Apply pagination
	if offset >= total {
		return []*types.Pool{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allPools[offset:end], total, nil
}

// PoolsByOwner returns the pools created by owner
func (q *QueryServer) PoolsByOwner(ctx context.Context, owner string) ([]*types.Pool, error) {
	ownerAddr, err := parseAccount(owner)
	if err != nil {
		return nil, err
	}
	return q.keeper.GetPoolsByOwner(sdk.UnwrapSDKContext(ctx), ownerAddr), nil
}

// PoolAssets returns the collateral records of a pool
func (q *QueryServer) PoolAssets(ctx context.Context, poolAddr string) ([]*types.CollateralAsset, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := q.keeper.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	return q.keeper.GetPoolAssets(sdkCtx, pool.GetAddress()), nil
}

// PoolPhase reports the lifecycle phase of a pool at the current block time
func (q *QueryServer) PoolPhase(ctx context.Context, poolAddr string) (types.PoolPhase, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := q.keeper.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return 0, err
	}
	return pool.Phase(sdkCtx.BlockTime().Unix()), nil
}

// QuoteBuy prices buying amount from a pool at its current supply
func (q *QueryServer) QuoteBuy(ctx context.Context, poolAddr string, amount uint64) (*types.Quote, error) {
	pool, err := q.Pool(ctx, poolAddr)
	if err != nil {
		return nil, err
	}
	return types.QuoteBuy(pool.CirculatingSupply, amount)
}

// QuoteSell prices selling amount into a pool at its current supply
func (q *QueryServer) QuoteSell(ctx context.Context, poolAddr string, amount uint64) (*types.Quote, error) {
	pool, err := q.Pool(ctx, poolAddr)
	if err != nil {
		return nil, err
	}
	quote, err := types.QuoteSell(pool.CirculatingSupply, amount)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "pool %s", pool.Address)
	}
	return quote, nil
}
