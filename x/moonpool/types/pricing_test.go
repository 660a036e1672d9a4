package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuyCost(t *testing.T) {
	tests := []struct {
		name   string
		supply uint64
		amount uint64
		want   uint64
	}{
		{"single unit truncates", 0, 1, 0},
		{"two units", 0, 2, 2},
		{"from zero", 0, 1_000_000, 500_000_000_000},
		{"from supply", 1_000, 1_000, 1_500_000},
		{"scenario supply", 766_666_666_666, 1_000, 766_666_667_166_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuyCost(tt.supply, tt.amount)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuyCostErrors(t *testing.T) {
	_, err := BuyCost(10, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = BuyCost(1<<40, 1<<30)
	require.ErrorIs(t, err, ErrInvalidCalculation)

	// Supply + amount beyond u64 is still priced exactly; only the result is bounded.
	_, err = BuyCost(math.MaxUint64, math.MaxUint64)
	require.ErrorIs(t, err, ErrInvalidCalculation)
}

func TestBuyCostIsConvex(t *testing.T) {
	for _, supply := range []uint64{0, 7, 1_000, 123_456_789} {
		for _, amount := range []uint64{2, 10, 999, 1_000_000} {
			single, err := BuyCost(supply, amount)
			require.NoError(t, err)
			double, err := BuyCost(supply, 2*amount)
			require.NoError(t, err)
			require.Greater(t, double, 2*single, "supply=%d amount=%d", supply, amount)

			next, err := BuyCost(supply+1, amount)
			require.NoError(t, err)
			require.GreaterOrEqual(t, next, single)
		}
	}
}

func TestSellProceedsMirrorsBuy(t *testing.T) {
	for _, supply := range []uint64{1, 2, 1_000, 1_000_000, 4_000_000_000} {
		for _, amount := range []uint64{1, supply / 3, supply} {
			if amount == 0 {
				continue
			}
			proceeds, err := SellProceeds(supply, amount)
			require.NoError(t, err)
			cost, err := BuyCost(supply-amount, amount)
			require.NoError(t, err)
			require.Equal(t, cost, proceeds, "supply=%d amount=%d", supply, amount)
		}
	}
}

func TestCurveValueOutOfRange(t *testing.T) {
	const supply = 766_666_666_666

	// A single token at a large supply is still priced.
	proceeds, err := SellProceeds(supply, 1)
	require.NoError(t, err)
	cost, err := BuyCost(supply-1, 1)
	require.NoError(t, err)
	require.Equal(t, cost, proceeds)

	// A third of that supply spans a curve area above u64.
	_, err = SellProceeds(supply, supply/3)
	require.ErrorIs(t, err, ErrInvalidCalculation)
	_, err = BuyCost(supply-supply/3, supply/3)
	require.ErrorIs(t, err, ErrInvalidCalculation)
	_, err = SellProceeds(supply, supply)
	require.ErrorIs(t, err, ErrInvalidCalculation)
}

func TestSellProceedsErrors(t *testing.T) {
	_, err := SellProceeds(10, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SellProceeds(10, 11)
	require.ErrorIs(t, err, ErrInvalidAmount)

	got, err := SellProceeds(1_000_000, 400_000)
	require.NoError(t, err)
	require.Equal(t, uint64(320_000_000_000), got)
}

func TestSpotPrice(t *testing.T) {
	got, err := SpotPrice(0)
	require.NoError(t, err)
	require.Zero(t, got)

	got, err = SpotPrice(1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), got)
}

func TestRaiseConversion(t *testing.T) {
	got, err := RaiseConversion(300_000_000_000, 230_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(766_666_666_666), got)

	// Contributing the whole goal mints the full target supply.
	got, err = RaiseConversion(300_000_000_000, 300_000_000_000)
	require.NoError(t, err)
	require.Equal(t, RaiseTargetSupply*DropletDecimals, got)

	_, err = RaiseConversion(0, 1)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = RaiseConversion(1, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = RaiseConversion(1, 1_000_000)
	require.ErrorIs(t, err, ErrInvalidCalculation)
}

func TestValidateSupply(t *testing.T) {
	got, err := ValidateSupply(MaxDropletSupply-5, 5)
	require.NoError(t, err)
	require.Equal(t, MaxDropletSupply, got)

	_, err = ValidateSupply(MaxDropletSupply-5, 6)
	require.ErrorIs(t, err, ErrExceedsMaximumSupply)

	_, err = ValidateSupply(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCheckedCounters(t *testing.T) {
	_, err := AddUint64(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SubUint64(1, 2)
	require.ErrorIs(t, err, ErrInvalidCalculation)

	got, err := SubUint64(5, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), got)
}

func TestFees(t *testing.T) {
	require.Equal(t, uint64(2_300_000), PlatformFee(230_000_000))
	require.Equal(t, uint64(0), OwnerFee(99))
	require.Equal(t, uint64(1), OwnerFee(100))
	require.Equal(t, uint64(184_467_440_737_095_516), PlatformFee(math.MaxUint64))
}

func TestQuoteBuy(t *testing.T) {
	q, err := QuoteBuy(1_000, 1_000)
	require.NoError(t, err)
	require.Equal(t, &Quote{
		Supply:      1_000,
		Amount:      1_000,
		Value:       1_500_000,
		OwnerFee:    15_000,
		PlatformFee: 15_000,
		SpotPrice:   1_000,
	}, q)

	_, err = QuoteSell(0, 1)
	require.ErrorIs(t, err, ErrInvalidAmount)
}
