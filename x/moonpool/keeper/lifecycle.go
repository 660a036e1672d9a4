package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// Phase gate. Every check reads the block time as "now"; windows are
// inclusive of their end instant.

func checkOwner(pool *types.Pool, caller sdk.AccAddress, err *errorsmod.Error) error {
	if pool.Owner != caller.String() {
		return errorsmod.Wrapf(err, "%s is not the owner of pool %s", caller, pool.Address)
	}
	return nil
}

func checkMintPoolToken(pool *types.Pool, caller sdk.AccAddress) error {
	if err := checkOwner(pool, caller, types.ErrInvalidAccount); err != nil {
		return err
	}
	if pool.IsInitialized {
		return errorsmod.Wrapf(types.ErrAlreadyInitialized, "pool %s already has an issuance token", pool.Address)
	}
	return nil
}

func checkContribute(pool *types.Pool, now int64) error {
	if !pool.IsInitialized {
		return errorsmod.Wrapf(types.ErrPoolNotActivated, "pool %s", pool.Address)
	}
	if now > pool.RaisePeriodEnd {
		return errorsmod.Wrapf(types.ErrPoolNotInRaisePeriod, "raise ended at %d", pool.RaisePeriodEnd)
	}
	return nil
}

func checkBuy(pool *types.Pool, now int64) error {
	if !pool.IsInitialized {
		return errorsmod.Wrapf(types.ErrPoolNotActivated, "pool %s", pool.Address)
	}
	if now <= pool.RaisePeriodEnd {
		return errorsmod.Wrapf(types.ErrRaisePeriodNotEnded, "raise ends at %d", pool.RaisePeriodEnd)
	}
	if now > pool.MaturityDate {
		return errorsmod.Wrapf(types.ErrPoolMatured, "matured at %d", pool.MaturityDate)
	}
	return nil
}

func checkSell(pool *types.Pool, now int64) error {
	if now > pool.MaturityDate {
		return errorsmod.Wrapf(types.ErrPoolMatured, "matured at %d", pool.MaturityDate)
	}
	return nil
}

func checkAddAsset(pool *types.Pool, caller sdk.AccAddress, now int64) error {
	if err := checkOwner(pool, caller, types.ErrUnauthorized); err != nil {
		return err
	}
	if now > pool.MaturityDate {
		return errorsmod.Wrapf(types.ErrPoolMatured, "matured at %d", pool.MaturityDate)
	}
	return nil
}
