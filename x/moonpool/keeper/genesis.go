package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// InitGenesis loads the moonpool state from genesis
func (k *Keeper) InitGenesis(ctx sdk.Context, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid %s genesis: %w", types.ModuleName, err)
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return err
	}

	if gs.Admin != "" {
		if _, err := k.Bootstrap(ctx, gs.Admin); err != nil {
			return err
		}
	}
	if gs.Registry != nil {
		k.SetRegistry(ctx, gs.Registry)
		k.SetFeeVault(ctx, gs.FeeVault)
	}
	for i := range gs.Pools {
		k.SetPool(ctx, &gs.Pools[i])
	}
	if reg := k.GetRegistry(ctx); reg != nil && gs.Registry == nil {
		reg.PoolCount = uint64(len(gs.Pools))
		k.SetRegistry(ctx, reg)
	}
	for i := range gs.Assets {
		k.SetAsset(ctx, &gs.Assets[i])
	}

	k.logger.Info("Genesis loaded", "pools", len(gs.Pools), "assets", len(gs.Assets))
	return nil
}

// ExportGenesis exports the moonpool state
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)
	gs.Registry = k.GetRegistry(ctx)
	gs.FeeVault = k.GetFeeVault(ctx)
	for _, pool := range k.GetAllPools(ctx) {
		gs.Pools = append(gs.Pools, *pool)
	}
	for _, asset := range k.GetAllAssets(ctx) {
		gs.Assets = append(gs.Assets, *asset)
	}
	return gs
}
