package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openalpha/moonpool/x/moonpool/keeper"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

func TestQueryBeforeBootstrap(t *testing.T) {
	f := newFixture(t)
	q := keeper.NewQueryServerImpl(f.keeper)

	_, err := q.Registry(f.ctx)
	require.ErrorIs(t, err, types.ErrVaultNotInitialized)
	_, _, err = q.FeeVault(f.ctx)
	require.ErrorIs(t, err, types.ErrVaultNotInitialized)
	_, err = q.Pool(f.ctx, f.alice.String())
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestQueryPools(t *testing.T) {
	f := newFixture(t)
	q := keeper.NewQueryServerImpl(f.keeper)
	pool := f.activePool(t, scenarioGoal)

	reg, err := q.Registry(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), reg.PoolCount)

	fv, balance, err := q.FeeVault(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.FeeVaultAddress().String(), fv.Address)
	require.Equal(t, types.PoolCreationFee, balance.Amount.Uint64())

	byName, err := q.PoolByName(f.ctx, f.owner.String(), "Moon")
	require.NoError(t, err)
	require.Equal(t, pool.Address, byName.Address)

	_, err = q.PoolByName(f.ctx, f.owner.String(), "Sun")
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	owned, err := q.PoolsByOwner(f.ctx, f.owner.String())
	require.NoError(t, err)
	require.Len(t, owned, 1)

	pools, total, err := q.Pools(f.ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), total)
	require.Len(t, pools, 1)

	pools, total, err = q.Pools(f.ctx, 5, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), total)
	require.Empty(t, pools)
}

func TestQueryPhaseAndQuotes(t *testing.T) {
	f := newFixture(t)
	q := keeper.NewQueryServerImpl(f.keeper)
	pool := f.activePool(t, scenarioGoal)

	phase, err := q.PoolPhase(f.ctx, pool.Address)
	require.NoError(t, err)
	require.Equal(t, types.PoolPhaseRaising, phase)

	f.fund(t, f.alice, types.DefaultQuoteDenom, 232_300_000)
	_, err = f.keeper.Contribute(f.ctx, f.alice.String(), pool.Address, 230_000_000)
	require.NoError(t, err)

	buy, err := q.QuoteBuy(f.ctx, pool.Address, 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(766_666_667_166_000), buy.Value)
	require.Equal(t, uint64(7_666_666_671_660), buy.OwnerFee)
	require.Equal(t, buy.OwnerFee, buy.PlatformFee)
	require.Equal(t, uint64(766_666_666_666), buy.SpotPrice)

	sell, err := q.QuoteSell(f.ctx, pool.Address, 1000)
	require.NoError(t, err)
	require.Less(t, sell.Value, buy.Value)

	_, err = q.QuoteSell(f.ctx, pool.Address, 766_666_666_667)
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	f.setTime(pool.MaturityDate + 1)
	phase, err = q.PoolPhase(f.ctx, pool.Address)
	require.NoError(t, err)
	require.Equal(t, types.PoolPhaseMatured, phase)
}

func TestQueryPoolAssets(t *testing.T) {
	f := newFixture(t)
	q := keeper.NewQueryServerImpl(f.keeper)
	pool := f.activePool(t, scenarioGoal)

	f.fund(t, f.owner, "uusdc", 500)
	_, err := f.keeper.AddAsset(f.ctx, f.owner.String(), pool.Address, "uusdc", 500)
	require.NoError(t, err)

	assets, err := q.PoolAssets(f.ctx, pool.Address)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.Equal(t, "uusdc", assets[0].Denom)
	require.Equal(t, uint64(500), assets[0].Amount)
	require.Equal(t, types.AssetVaultAddress(pool.GetAddress(), "uusdc").String(), assets[0].Vault)
}
