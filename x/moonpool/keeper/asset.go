package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// AddAsset records a collateral type for a pool, derives its vault and
// moves amount of it from the owner into the vault. Each (pool, denom)
// pair can be added once.
func (k *Keeper) AddAsset(ctx context.Context, owner, poolAddr, denom string, amount uint64) (*types.CollateralAsset, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	ownerAddr, err := parseAccount(owner)
	if err != nil {
		return nil, err
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidMint, "invalid denom %q: %s", denom, err)
	}
	if amount == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "asset amount must be positive")
	}
	pool, err := k.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	if err := checkAddAsset(pool, ownerAddr, sdkCtx.BlockTime().Unix()); err != nil {
		return nil, err
	}
	addr := pool.GetAddress()
	if k.GetAsset(sdkCtx, addr, denom) != nil {
		return nil, errorsmod.Wrapf(types.ErrAssetAlreadyExists, "%s for pool %s", denom, pool.Address)
	}

	vault := types.AssetVaultAddress(addr, denom)
	asset := &types.CollateralAsset{
		Pool:   pool.Address,
		Denom:  denom,
		Vault:  vault.String(),
		Amount: amount,
	}

	var s settlement
	s.transfer("asset deposit", ownerAddr, vault, denom, amount)

	err = k.atomically(sdkCtx, func(cacheCtx sdk.Context) error {
		if err := k.execute(cacheCtx, &s); err != nil {
			return err
		}
		k.SetAsset(cacheCtx, asset)

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddAsset,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Address),
				sdk.NewAttribute(types.AttributeKeyDenom, denom),
				sdk.NewAttribute(types.AttributeKeyVault, asset.Vault),
				sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.logger.Info("Collateral asset added", "pool", pool.Address, "denom", denom, "amount", amount)
	return asset, nil
}
