package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// Contribute funds a raising pool and mints issuance tokens at the raise rate.
// The platform fee is charged on top of amount.
func (k *Keeper) Contribute(ctx context.Context, contributor, poolAddr string, amount uint64) (*types.ContributionResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	payer, err := parseAccount(contributor)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "contribution must be positive")
	}
	pool, err := k.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	feeVault, err := k.requireFeeVault(sdkCtx)
	if err != nil {
		return nil, err
	}
	if err := checkContribute(pool, sdkCtx.BlockTime().Unix()); err != nil {
		return nil, err
	}

	minted, err := types.RaiseConversion(pool.RaiseGoal, amount)
	if err != nil {
		return nil, err
	}
	supply, err := types.ValidateSupply(pool.CirculatingSupply, minted)
	if err != nil {
		return nil, err
	}
	totalRaised, err := types.AddUint64(pool.TotalRaised, amount)
	if err != nil {
		return nil, err
	}
	fee := types.PlatformFee(amount)

	var s settlement
	s.transfer("platform fee", payer, feeVault, pool.QuoteDenom, fee)
	s.transfer("contribution", payer, pool.GetQuoteVault(), pool.QuoteDenom, amount)
	s.mint("raise issuance", payer, pool.TokenDenom, minted)

	err = k.atomically(sdkCtx, func(cacheCtx sdk.Context) error {
		if err := k.execute(cacheCtx, &s); err != nil {
			return err
		}
		pool.CirculatingSupply = supply
		pool.TotalRaised = totalRaised
		k.SetPool(cacheCtx, pool)

		cacheCtx.EventManager().EmitEvents(sdk.Events{
			sdk.NewEvent(
				types.EventTypeContribute,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Address),
				sdk.NewAttribute(types.AttributeKeyTrader, payer.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
				sdk.NewAttribute(types.AttributeKeyMinted, strconv.FormatUint(minted, 10)),
				sdk.NewAttribute(types.AttributeKeyTotalRaised, strconv.FormatUint(totalRaised, 10)),
				sdk.NewAttribute(types.AttributeKeySupply, strconv.FormatUint(supply, 10)),
			),
			feeEvent(pool.Address, types.FeeKindPlatform, feeVault, fee),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.logger.Info("Contribution processed",
		"pool", pool.Address,
		"contributor", payer.String(),
		"amount", amount,
		"minted", minted,
		"total_raised", totalRaised,
	)

	return &types.ContributionResult{
		Pool:        pool.Address,
		Contributor: payer.String(),
		Amount:      amount,
		PlatformFee: fee,
		Minted:      minted,
		TotalRaised: totalRaised,
		Supply:      supply,
	}, nil
}
