package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/moonpool/metrics"
	"github.com/openalpha/moonpool/x/moonpool/types"
)

// PhaseCounts tallies pools by lifecycle phase at the current block time
func (k *Keeper) PhaseCounts(ctx sdk.Context) map[string]int {
	now := ctx.BlockTime().Unix()
	counts := make(map[string]int)
	k.IteratePools(ctx, func(pool *types.Pool) bool {
		counts[pool.Phase(now).String()]++
		return false
	})
	return counts
}

// EndBlocker refreshes pool gauges. Pool state only changes through
// messages, so no state is written here.
func (k *Keeper) EndBlocker(ctx sdk.Context) {
	collector := metrics.GetCollector()
	k.IteratePools(ctx, func(pool *types.Pool) bool {
		collector.RecordPoolState(pool.Address, pool.CirculatingSupply, pool.TotalRaised)
		return false
	})
	collector.RecordPhaseCounts(ctx.BlockHeight(), k.PhaseCounts(ctx))
}
