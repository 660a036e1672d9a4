package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// Bootstrap creates the registry and fee vault singletons. It runs once.
func (k *Keeper) Bootstrap(ctx context.Context, admin string) (*types.FeeVault, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	adminAddr, err := parseAccount(admin)
	if err != nil {
		return nil, err
	}
	if k.GetRegistry(sdkCtx) != nil || k.GetFeeVault(sdkCtx) != nil {
		return nil, errorsmod.Wrap(types.ErrAlreadyInitialized, "registry already bootstrapped")
	}

	fv := &types.FeeVault{
		Admin:   adminAddr.String(),
		Address: types.FeeVaultAddress().String(),
	}
	k.SetRegistry(sdkCtx, &types.Registry{Admin: adminAddr.String()})
	k.SetFeeVault(sdkCtx, fv)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBootstrap,
			sdk.NewAttribute(types.AttributeKeyAdmin, fv.Admin),
			sdk.NewAttribute(types.AttributeKeyVault, fv.Address),
		),
	)

	k.logger.Info("Registry bootstrapped", "admin", fv.Admin, "fee_vault", fv.Address)
	return fv, nil
}

// requireFeeVault returns the fee vault address or ErrVaultNotInitialized
func (k *Keeper) requireFeeVault(ctx sdk.Context) (sdk.AccAddress, error) {
	fv := k.GetFeeVault(ctx)
	if fv == nil {
		return nil, errorsmod.Wrap(types.ErrVaultNotInitialized, "fee vault missing, bootstrap first")
	}
	return sdk.MustAccAddressFromBech32(fv.Address), nil
}

func parseAccount(addr string) (sdk.AccAddress, error) {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidAccount, "invalid address %q: %s", addr, err)
	}
	return acc, nil
}

// loadPool resolves a pool by its bech32 address
func (k *Keeper) loadPool(ctx sdk.Context, addr string) (*types.Pool, error) {
	poolAddr, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrPoolNotFound, "invalid pool address %q", addr)
	}
	pool := k.GetPool(ctx, poolAddr)
	if pool == nil {
		return nil, errorsmod.Wrapf(types.ErrPoolNotFound, "%s", addr)
	}
	return pool, nil
}
