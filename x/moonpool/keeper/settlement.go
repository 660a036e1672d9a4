package keeper

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

type stepKind int

const (
	stepTransfer stepKind = iota
	stepMint
	stepBurn
)

// settlementStep is one value movement of an operation
type settlementStep struct {
	kind   stepKind
	leg    string
	from   sdk.AccAddress
	to     sdk.AccAddress
	denom  string
	amount uint64
}

// settlement is the ordered list of value movements of one operation.
// Zero-amount steps are dropped when added.
type settlement struct {
	steps []settlementStep
}

func (s *settlement) transfer(leg string, from, to sdk.AccAddress, denom string, amount uint64) {
	if amount == 0 {
		return
	}
	s.steps = append(s.steps, settlementStep{kind: stepTransfer, leg: leg, from: from, to: to, denom: denom, amount: amount})
}

func (s *settlement) mint(leg string, to sdk.AccAddress, denom string, amount uint64) {
	if amount == 0 {
		return
	}
	s.steps = append(s.steps, settlementStep{kind: stepMint, leg: leg, to: to, denom: denom, amount: amount})
}

func (s *settlement) burn(leg string, from sdk.AccAddress, denom string, amount uint64) {
	if amount == 0 {
		return
	}
	s.steps = append(s.steps, settlementStep{kind: stepBurn, leg: leg, from: from, denom: denom, amount: amount})
}

// execute applies every step in order, stopping at the first failure.
// Callers run it inside a cache context so a failure leaves no trace.
func (k *Keeper) execute(ctx sdk.Context, s *settlement) error {
	for _, step := range s.steps {
		coins := sdk.NewCoins(sdk.NewCoin(step.denom, math.NewIntFromUint64(step.amount)))
		var err error
		switch step.kind {
		case stepTransfer:
			err = k.bankKeeper.SendCoins(ctx, step.from, step.to, coins)
		case stepMint:
			if err = k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err == nil {
				err = k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, step.to, coins)
			}
		case stepBurn:
			if err = k.bankKeeper.SendCoinsFromAccountToModule(ctx, step.from, types.ModuleName, coins); err == nil {
				err = k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins)
			}
		}
		if err != nil {
			return settlementError(step, err)
		}
	}
	return nil
}

func settlementError(step settlementStep, err error) error {
	if errors.Is(err, sdkerrors.ErrInsufficientFunds) {
		return errorsmod.Wrapf(types.ErrAmountNotEnough, "%s: %s", step.leg, err)
	}
	return errorsmod.Wrapf(err, "%s", step.leg)
}

// atomically runs fn against a cache of the store and commits only if it
// succeeds. Events emitted by fn reach the parent context on commit.
func (k *Keeper) atomically(ctx sdk.Context, fn func(cacheCtx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
