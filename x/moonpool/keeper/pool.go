package keeper

import (
	"context"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// CreatePool opens a pool for owner and charges the creation fee.
func (k *Keeper) CreatePool(ctx context.Context, owner, name, symbol string, raiseGoal uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	ownerAddr, err := parseAccount(owner)
	if err != nil {
		return nil, err
	}
	if err := types.ValidatePoolName(name); err != nil {
		return nil, errorsmod.Wrapf(err, "name %q must be 1-%d bytes", name, types.MaxPoolNameLength)
	}
	if err := types.ValidateSymbol(symbol); err != nil {
		return nil, errorsmod.Wrapf(err, "symbol %q must be at most %d bytes", symbol, types.MaxSymbolLength)
	}
	if raiseGoal == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "raise goal must be positive")
	}

	reg := k.GetRegistry(sdkCtx)
	feeVault, err := k.requireFeeVault(sdkCtx)
	if err != nil || reg == nil {
		return nil, errorsmod.Wrap(types.ErrVaultNotInitialized, "registry missing, bootstrap first")
	}

	quoteDenom := k.GetParams(sdkCtx).QuoteDenom
	pool := types.NewPool(ownerAddr, name, symbol, raiseGoal, quoteDenom, sdkCtx.BlockTime())
	poolAddr := pool.GetAddress()
	if k.HasPool(sdkCtx, poolAddr) {
		return nil, errorsmod.Wrapf(types.ErrAlreadyInitialized, "pool %s already exists for %s", name, owner)
	}
	if pool.MaturityDate < pool.RaisePeriodEnd {
		return nil, types.ErrInvalidMaturity
	}
	poolCount, err := types.AddUint64(reg.PoolCount, 1)
	if err != nil {
		return nil, errorsmod.Wrap(err, "pool count")
	}

	var s settlement
	s.transfer("creation fee", ownerAddr, feeVault, quoteDenom, types.PoolCreationFee)

	err = k.atomically(sdkCtx, func(cacheCtx sdk.Context) error {
		if err := k.execute(cacheCtx, &s); err != nil {
			return err
		}
		reg.PoolCount = poolCount
		k.SetRegistry(cacheCtx, reg)
		k.SetPool(cacheCtx, pool)

		cacheCtx.EventManager().EmitEvents(sdk.Events{
			sdk.NewEvent(
				types.EventTypeCreatePool,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Address),
				sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
				sdk.NewAttribute(types.AttributeKeyName, pool.Name),
				sdk.NewAttribute(types.AttributeKeySymbol, pool.Symbol),
				sdk.NewAttribute(types.AttributeKeyValue, strconv.FormatUint(raiseGoal, 10)),
			),
			feeEvent(pool.Address, types.FeeKindCreation, feeVault, types.PoolCreationFee),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.logger.Info("Pool created",
		"pool", pool.Address,
		"owner", pool.Owner,
		"name", pool.Name,
		"raise_goal", raiseGoal,
		"raise_period_end", pool.RaisePeriodEnd,
		"maturity_date", pool.MaturityDate,
	)
	return pool, nil
}

// MintPoolToken creates the pool's issuance token and activates the pool.
// metadataHash addresses a metadata document published off chain; only its
// gateway URI is recorded.
func (k *Keeper) MintPoolToken(ctx context.Context, owner, poolAddr, metadataHash string) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	ownerAddr, err := parseAccount(owner)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateMetadataURI(metadataHash); err != nil {
		return nil, errorsmod.Wrapf(err, "metadata hash must be 1-%d bytes", types.MaxMetadataURILength)
	}
	pool, err := k.loadPool(sdkCtx, poolAddr)
	if err != nil {
		return nil, err
	}
	if err := checkMintPoolToken(pool, ownerAddr); err != nil {
		return nil, err
	}

	denom := types.PoolTokenDenom(pool.GetAddress())
	if k.bankKeeper.HasDenomMetaData(sdkCtx, denom) {
		return nil, errorsmod.Wrapf(types.ErrInvalidMint, "denom %s already registered", denom)
	}
	uri := k.GetParams(sdkCtx).MetadataURI(metadataHash)
	doc := types.NewTokenMetadata(pool.Name, pool.Symbol, uri)

	err = k.atomically(sdkCtx, func(cacheCtx sdk.Context) error {
		k.bankKeeper.SetDenomMetaData(cacheCtx, denomMetadata(denom, doc))

		pool.URI = metadataHash
		pool.TokenDenom = denom
		pool.IsInitialized = true
		k.SetPool(cacheCtx, pool)

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeMintPoolToken,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Address),
				sdk.NewAttribute(types.AttributeKeyDenom, denom),
				sdk.NewAttribute(types.AttributeKeyURI, uri),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.logger.Info("Pool token created", "pool", pool.Address, "denom", denom, "uri", uri)
	return pool, nil
}

// denomMetadata describes an issuance token with DropletExponent decimals.
// Symbols that are not valid denoms get no display unit, and a blank symbol
// falls back to the pool name so the record passes bank validation.
func denomMetadata(denom string, doc types.TokenMetadata) banktypes.Metadata {
	units := []*banktypes.DenomUnit{{Denom: denom, Exponent: 0}}
	display := strings.ToLower(doc.Symbol)
	if sdk.ValidateDenom(display) == nil && display != denom {
		units = append(units, &banktypes.DenomUnit{Denom: display, Exponent: types.DropletExponent})
	} else {
		display = denom
	}
	return banktypes.Metadata{
		Description: doc.Description,
		DenomUnits:  units,
		Base:        denom,
		Display:     display,
		Name:        firstNonBlank(doc.Name, denom),
		Symbol:      firstNonBlank(doc.Symbol, doc.Name, denom),
		URI:         doc.Image,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func feeEvent(pool, kind string, recipient sdk.AccAddress, amount uint64) sdk.Event {
	return sdk.NewEvent(
		types.EventTypeFee,
		sdk.NewAttribute(types.AttributeKeyPool, pool),
		sdk.NewAttribute(types.AttributeKeyFeeKind, kind),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
	)
}
