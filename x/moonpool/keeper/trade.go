package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// Buy mints amount issuance tokens to buyer at the curve price. The owner
// and platform fees are charged on top of the cost.
func (k *Keeper) Buy(ctx context.Context, buyer, poolAddr string, amount uint64) (*types.TradeResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	payer, err := parseAccount(buyer)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "buy amount must be positive")
	}
	pool, err := k.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	feeVault, err := k.requireFeeVault(sdkCtx)
	if err != nil {
		return nil, err
	}
	if err := checkBuy(pool, sdkCtx.BlockTime().Unix()); err != nil {
		return nil, err
	}

	cost, err := types.BuyCost(pool.CirculatingSupply, amount)
	if err != nil {
		return nil, err
	}
	// The supply cap is enforced on raise issuance only; trading is bounded
	// by counter overflow.
	supply, err := types.AddUint64(pool.CirculatingSupply, amount)
	if err != nil {
		return nil, err
	}
	ownerFee := types.OwnerFee(cost)
	platformFee := types.PlatformFee(cost)
	owner := pool.GetOwner()

	var s settlement
	s.transfer("buy cost", payer, pool.GetQuoteVault(), pool.QuoteDenom, cost)
	s.transfer("owner fee", payer, owner, pool.QuoteDenom, ownerFee)
	s.transfer("platform fee", payer, feeVault, pool.QuoteDenom, platformFee)
	s.mint("buy issuance", payer, pool.TokenDenom, amount)

	result := &types.TradeResult{
		Pool:        pool.Address,
		Trader:      payer.String(),
		Amount:      amount,
		Value:       cost,
		OwnerFee:    ownerFee,
		PlatformFee: platformFee,
		Supply:      supply,
	}
	if err := k.settleTrade(sdkCtx, pool, &s, types.EventTypeBuy, result, owner, feeVault); err != nil {
		return nil, err
	}

	k.logger.Info("Buy executed",
		"pool", pool.Address,
		"buyer", result.Trader,
		"amount", amount,
		"cost", cost,
		"supply", supply,
	)
	return result, nil
}

// Sell burns amount issuance tokens from seller and pays out the curve
// proceeds from the quote vault. The seller pays the owner and platform fees.
func (k *Keeper) Sell(ctx context.Context, seller, poolAddr string, amount uint64) (*types.TradeResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	payee, err := parseAccount(seller)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "sell amount must be positive")
	}
	pool, err := k.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	feeVault, err := k.requireFeeVault(sdkCtx)
	if err != nil {
		return nil, err
	}
	if err := checkSell(pool, sdkCtx.BlockTime().Unix()); err != nil {
		return nil, err
	}
	proceeds, err := types.SellProceeds(pool.CirculatingSupply, amount)
	if err != nil {
		return nil, err
	}
	supply, err := types.SubUint64(pool.CirculatingSupply, amount)
	if err != nil {
		return nil, err
	}
	vault := pool.GetQuoteVault()
	if held := k.bankKeeper.GetBalance(sdkCtx, vault, pool.QuoteDenom); !held.Amount.IsUint64() || held.Amount.Uint64() < proceeds {
		return nil, errorsmod.Wrapf(types.ErrInvalidCalculation, "vault holds %s, sell needs %d", held.Amount, proceeds)
	}
	ownerFee := types.OwnerFee(proceeds)
	platformFee := types.PlatformFee(proceeds)
	owner := pool.GetOwner()

	var s settlement
	s.transfer("owner fee", payee, owner, pool.QuoteDenom, ownerFee)
	s.transfer("platform fee", payee, feeVault, pool.QuoteDenom, platformFee)
	s.burn("sell burn", payee, pool.TokenDenom, amount)
	s.transfer("sell proceeds", vault, payee, pool.QuoteDenom, proceeds)

	result := &types.TradeResult{
		Pool:        pool.Address,
		Trader:      payee.String(),
		Amount:      amount,
		Value:       proceeds,
		OwnerFee:    ownerFee,
		PlatformFee: platformFee,
		Supply:      supply,
	}
	if err := k.settleTrade(sdkCtx, pool, &s, types.EventTypeSell, result, owner, feeVault); err != nil {
		return nil, err
	}

	k.logger.Info("Sell executed",
		"pool", pool.Address,
		"seller", result.Trader,
		"amount", amount,
		"proceeds", proceeds,
		"supply", supply,
	)
	return result, nil
}

// settleTrade applies a trade's value movements and new supply atomically
func (k *Keeper) settleTrade(ctx sdk.Context, pool *types.Pool, s *settlement, eventType string, res *types.TradeResult, owner, feeVault sdk.AccAddress) error {
	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.execute(cacheCtx, s); err != nil {
			return err
		}
		pool.CirculatingSupply = res.Supply
		k.SetPool(cacheCtx, pool)

		cacheCtx.EventManager().EmitEvents(sdk.Events{
			sdk.NewEvent(
				eventType,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Address),
				sdk.NewAttribute(types.AttributeKeyTrader, res.Trader),
				sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(res.Amount, 10)),
				sdk.NewAttribute(types.AttributeKeyValue, strconv.FormatUint(res.Value, 10)),
				sdk.NewAttribute(types.AttributeKeySupply, strconv.FormatUint(res.Supply, 10)),
			),
			feeEvent(pool.Address, types.FeeKindOwner, owner, res.OwnerFee),
			feeEvent(pool.Address, types.FeeKindPlatform, feeVault, res.PlatformFee),
		})
		return nil
	})
}
