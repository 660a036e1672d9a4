package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/moonpool/x/moonpool/types"
)

const scenarioGoal = 300_000_000_000 // 300 major units

func TestContributeScenario(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.alice, types.DefaultQuoteDenom, 232_300_000)

	res, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 230_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(766_666_666_666), res.Minted)
	require.Equal(t, uint64(2_300_000), res.PlatformFee)

	pool = f.pool(t, pool.Address)
	require.Equal(t, uint64(766_666_666_666), pool.CirculatingSupply)
	require.Equal(t, uint64(230_000_000), pool.TotalRaised)

	require.Zero(t, f.quote(f.alice))
	require.Equal(t, uint64(766_666_666_666), f.balance(f.alice, pool.TokenDenom))
	require.Equal(t, uint64(230_000_000), f.quote(pool.GetQuoteVault()))
	require.Equal(t, types.PoolCreationFee+2_300_000, f.quote(types.FeeVaultAddress()))
}

func TestContributeRequiresActivation(t *testing.T) {
	f := newFixture(t)
	f.bootstrap(t)
	f.fund(t, f.owner, types.DefaultQuoteDenom, types.PoolCreationFee)
	f.fund(t, f.alice, types.DefaultQuoteDenom, 1_000_000)

	pool, err := f.keeper.CreatePool(f.ctx, f.owner.String(), "Moon", "MOON", scenarioGoal)
	require.NoError(t, err)

	_, err = f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrPoolNotActivated)

	_, err = f.keeper.Buy(f.ctx, f.alice.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrPoolNotActivated)
}

func TestContributeWindow(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.alice, types.DefaultQuoteDenom, 10_000_000)

	f.setTime(pool.RaisePeriodEnd)
	_, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1_000_000)
	require.NoError(t, err)

	f.setTime(pool.RaisePeriodEnd + 1)
	_, err = f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1_000_000)
	require.ErrorIs(t, err, types.ErrPoolNotInRaisePeriod)
	require.Equal(t, uint64(1_000_000), f.pool(t, pool.Address).TotalRaised)
}

func TestContributeSupplyCap(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, 1)
	f.fund(t, f.alice, types.DefaultQuoteDenom, 10)

	_, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 2)
	require.ErrorIs(t, err, types.ErrExceedsMaximumSupply)
	require.Zero(t, f.pool(t, pool.Address).CirculatingSupply)
	require.Equal(t, uint64(10), f.quote(f.alice))

	res, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1)
	require.NoError(t, err)
	require.Equal(t, types.MaxDropletSupply, res.Supply)

	_, err = f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1)
	require.ErrorIs(t, err, types.ErrExceedsMaximumSupply)
	require.Equal(t, types.MaxDropletSupply, f.pool(t, pool.Address).CirculatingSupply)
}

func TestBuyPhaseGate(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.bob, types.DefaultQuoteDenom, 1_000_000_000)

	_, err := f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrRaisePeriodNotEnded)

	f.setTime(pool.RaisePeriodEnd)
	_, err = f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrRaisePeriodNotEnded)

	f.setTime(pool.RaisePeriodEnd + 1)
	_, err = f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.NoError(t, err)

	f.setTime(pool.MaturityDate)
	_, err = f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.NoError(t, err)

	f.setTime(pool.MaturityDate + 1)
	_, err = f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrPoolMatured)
	_, err = f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.ErrorIs(t, err, types.ErrPoolMatured)
}

func TestBuyAndSell(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.setTime(pool.RaisePeriodEnd + 1)
	f.fund(t, f.bob, types.DefaultQuoteDenom, 510_000_000_000)

	buy, err := f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000_000_000), buy.Value)
	require.Equal(t, uint64(5_000_000_000), buy.OwnerFee)
	require.Equal(t, uint64(5_000_000_000), buy.PlatformFee)
	require.Equal(t, uint64(1_000_000), buy.Supply)

	require.Zero(t, f.quote(f.bob))
	require.Equal(t, uint64(1_000_000), f.balance(f.bob, pool.TokenDenom))
	require.Equal(t, uint64(500_000_000_000), f.quote(pool.GetQuoteVault()))
	require.Equal(t, uint64(5_000_000_000), f.quote(f.owner))
	require.Equal(t, types.PoolCreationFee+5_000_000_000, f.quote(types.FeeVaultAddress()))

	// The seller pays both fees out of its own quote balance.
	_, err = f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 400_000)
	require.ErrorIs(t, err, types.ErrAmountNotEnough)
	require.Equal(t, uint64(1_000_000), f.pool(t, pool.Address).CirculatingSupply)

	f.fund(t, f.bob, types.DefaultQuoteDenom, 6_400_000_000)
	sell, err := f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 400_000)
	require.NoError(t, err)
	require.Equal(t, uint64(320_000_000_000), sell.Value)
	require.Equal(t, uint64(3_200_000_000), sell.OwnerFee)
	require.Equal(t, uint64(600_000), sell.Supply)

	require.Equal(t, uint64(320_000_000_000), f.quote(f.bob))
	require.Equal(t, uint64(600_000), f.balance(f.bob, pool.TokenDenom))
	require.Equal(t, uint64(180_000_000_000), f.quote(pool.GetQuoteVault()))
	require.Equal(t, uint64(8_200_000_000), f.quote(f.owner))
	require.Equal(t, uint64(600_000), f.pool(t, pool.Address).CirculatingSupply)

	f.setTime(pool.MaturityDate)
	f.fund(t, f.bob, types.DefaultQuoteDenom, 10_000_000_000)
	_, err = f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 600_000)
	require.NoError(t, err)
	require.Zero(t, f.pool(t, pool.Address).CirculatingSupply)
	require.Zero(t, f.quote(pool.GetQuoteVault()))
}

func TestSellDuringRaise(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, 1_000_000_000_000_000_000)
	// Contribution plus its platform fee, plus both fees of the sale below.
	f.fund(t, f.alice, types.DefaultQuoteDenom, 1_010_000_000+2*9_999)

	res, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 1_000_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), res.Minted)

	f.setTime(pool.RaisePeriodEnd - 1)
	sell, err := f.keeper.Sell(f.ctx, f.alice.String(), pool.Address, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(999_999), sell.Value)
	require.Equal(t, uint64(9_999), sell.OwnerFee)
	require.Equal(t, uint64(9_999), sell.PlatformFee)
	require.Equal(t, uint64(999_999), sell.Supply)

	require.Equal(t, uint64(999_999), f.quote(f.alice))
	require.Equal(t, uint64(999_999), f.balance(f.alice, pool.TokenDenom))
	require.Equal(t, uint64(999_000_001), f.quote(pool.GetQuoteVault()))
	require.Equal(t, uint64(9_999), f.quote(f.owner))

	// Raise accounting is untouched by curve trades.
	pool = f.pool(t, pool.Address)
	require.Equal(t, uint64(1_000_000_000), pool.TotalRaised)
	require.Equal(t, uint64(999_999), pool.CirculatingSupply)
}

func TestBuyRollsBackOnFeeShortfall(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.setTime(pool.RaisePeriodEnd + 1)
	// Enough for the curve cost but not for the fees that follow it.
	f.fund(t, f.bob, types.DefaultQuoteDenom, 500_000_000_000)

	_, err := f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000_000)
	require.ErrorIs(t, err, types.ErrAmountNotEnough)

	require.Equal(t, uint64(500_000_000_000), f.quote(f.bob))
	require.Zero(t, f.quote(pool.GetQuoteVault()))
	require.Zero(t, f.balance(f.bob, pool.TokenDenom))
	require.Zero(t, f.pool(t, pool.Address).CirculatingSupply)
	require.Zero(t, f.quote(f.owner))
}

func TestSellWithoutTokensRollsBack(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.setTime(pool.RaisePeriodEnd + 1)
	f.fund(t, f.bob, types.DefaultQuoteDenom, 510_000_000_000)
	_, err := f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000_000)
	require.NoError(t, err)

	f.fund(t, f.alice, types.DefaultQuoteDenom, 20_000)
	_, err = f.keeper.Sell(f.ctx, f.alice.String(), pool.Address, 1)
	require.ErrorIs(t, err, types.ErrAmountNotEnough)
	require.Equal(t, uint64(20_000), f.quote(f.alice))
	require.Equal(t, uint64(1_000_000), f.pool(t, pool.Address).CirculatingSupply)
}

func TestSellBounds(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.setTime(pool.RaisePeriodEnd + 1)

	_, err := f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 0)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = f.keeper.Sell(f.ctx, f.bob.String(), pool.Address, 1)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestSellFailsWhenVaultShort(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.alice, types.DefaultQuoteDenom, 232_300_000)
	_, err := f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 230_000_000)
	require.NoError(t, err)

	// Raise issuance is priced far below the curve, so the vault cannot
	// cover curve proceeds for raise-minted supply.
	f.setTime(pool.RaisePeriodEnd + 1)
	_, err = f.keeper.Sell(f.ctx, f.alice.String(), pool.Address, 1_000_000)
	require.ErrorIs(t, err, types.ErrInvalidCalculation)
	require.Equal(t, uint64(766_666_666_666), f.balance(f.alice, pool.TokenDenom))
}

func TestAddAsset(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.owner, "uatom", 3_000)
	f.fund(t, f.alice, "uatom", 1_000)

	_, err := f.keeper.AddAsset(f.ctx, f.alice.String(), pool.Address, "uatom", 1_000)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	asset, err := f.keeper.AddAsset(f.ctx, f.owner.String(), pool.Address, "uatom", 1_000)
	require.NoError(t, err)
	vault := types.AssetVaultAddress(pool.GetAddress(), "uatom")
	require.Equal(t, vault.String(), asset.Vault)
	require.Equal(t, uint64(1_000), f.balance(vault, "uatom"))
	require.Equal(t, uint64(2_000), f.balance(f.owner, "uatom"))

	_, err = f.keeper.AddAsset(f.ctx, f.owner.String(), pool.Address, "uatom", 1_000)
	require.ErrorIs(t, err, types.ErrAssetAlreadyExists)
	require.Equal(t, uint64(1_000), f.balance(vault, "uatom"))

	f.fund(t, f.owner, "uosmo", 2_000)
	f.setTime(pool.MaturityDate)
	_, err = f.keeper.AddAsset(f.ctx, f.owner.String(), pool.Address, "uosmo", 1_000)
	require.NoError(t, err)

	f.setTime(pool.MaturityDate + 1)
	_, err = f.keeper.AddAsset(f.ctx, f.owner.String(), pool.Address, "ustake", 1_000)
	require.ErrorIs(t, err, types.ErrPoolMatured)

	require.Len(t, f.keeper.GetPoolAssets(f.ctx, pool.GetAddress()), 2)
}

func TestPhaseCounts(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.fund(t, f.owner, types.DefaultQuoteDenom, types.PoolCreationFee)
	_, err := f.keeper.CreatePool(f.ctx, f.owner.String(), "Idle", "IDLE", 1)
	require.NoError(t, err)

	require.Equal(t, map[string]int{"raising": 1, "created": 1}, f.keeper.PhaseCounts(f.ctx))

	f.setTime(pool.RaisePeriodEnd + 1)
	require.Equal(t, map[string]int{"trading": 1, "created": 1}, f.keeper.PhaseCounts(f.ctx))

	f.setTime(pool.MaturityDate + 1)
	require.Equal(t, map[string]int{"matured": 2}, f.keeper.PhaseCounts(f.ctx))

	f.keeper.EndBlocker(f.ctx)
}

func TestOperationsEmitEvents(t *testing.T) {
	f := newFixture(t)
	pool := f.activePool(t, scenarioGoal)
	f.setTime(pool.RaisePeriodEnd + 1)
	f.fund(t, f.bob, types.DefaultQuoteDenom, 1_000_000)

	f.ctx = f.ctx.WithEventManager(sdk.NewEventManager())
	_, err := f.keeper.Buy(f.ctx, f.bob.String(), pool.Address, 1_000)
	require.NoError(t, err)

	var kinds []string
	for _, ev := range f.ctx.EventManager().Events() {
		kinds = append(kinds, ev.Type)
	}
	require.Contains(t, kinds, types.EventTypeBuy)
	require.Contains(t, kinds, types.EventTypeFee)
}
