package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// The curve prices the marginal token at price(s) = K * s, so the cost of
// moving supply from a to b is the integral K * (b^2 - a^2) / 2, scaled by
// BaseDropletPrice into quote minor units. All arithmetic is exact until the
// final truncation toward zero.

// curveArea returns K * (hi^2 - lo^2) / 2 * BaseDropletPrice, truncated
func curveArea(lo, hi math.Int) (uint64, error) {
	diff := hi.Mul(hi).Sub(lo.Mul(lo))
	value := CurveSlope.MulInt(diff).QuoInt64(2).MulInt64(BaseDropletPrice).TruncateInt()
	if value.IsNegative() || !value.IsUint64() {
		return 0, errorsmod.Wrapf(ErrInvalidCalculation, "curve value %s out of range", value)
	}
	return value.Uint64(), nil
}

// BuyCost is the quote cost of minting amount tokens on top of supply.
func BuyCost(supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errorsmod.Wrap(ErrInvalidAmount, "buy amount must be positive")
	}
	start := math.NewIntFromUint64(supply)
	return curveArea(start, start.Add(math.NewIntFromUint64(amount)))
}

// SellProceeds is the quote value released by burning amount tokens from supply.
func SellProceeds(supply, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errorsmod.Wrap(ErrInvalidAmount, "sell amount must be positive")
	}
	if amount > supply {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "sell amount %d exceeds supply %d", amount, supply)
	}
	end := math.NewIntFromUint64(supply)
	return curveArea(end.Sub(math.NewIntFromUint64(amount)), end)
}

// SpotPrice is the marginal price at supply, truncated
func SpotPrice(supply uint64) (uint64, error) {
	price := CurveSlope.MulInt(math.NewIntFromUint64(supply)).MulInt64(BaseDropletPrice).TruncateInt()
	if !price.IsUint64() {
		return 0, errorsmod.Wrapf(ErrInvalidCalculation, "spot price %s out of range", price)
	}
	return price.Uint64(), nil
}

// RaiseConversion converts a raise contribution into issuance minor units.
//
// The goal is spread over RaiseTargetSupply whole tokens, so one major quote
// unit buys RaiseTargetSupply / goalMajor whole tokens:
//
//	minted = contribution * RaiseTargetSupply * DropletDecimals / raiseGoal
//
// rounded toward zero.
func RaiseConversion(raiseGoal, contribution uint64) (uint64, error) {
	if raiseGoal == 0 {
		return 0, errorsmod.Wrap(ErrInvalidAmount, "raise goal must be positive")
	}
	if contribution == 0 {
		return 0, errorsmod.Wrap(ErrInvalidAmount, "contribution must be positive")
	}
	minted := math.NewIntFromUint64(contribution).
		Mul(math.NewIntFromUint64(RaiseTargetSupply)).
		Mul(math.NewIntFromUint64(DropletDecimals)).
		Quo(math.NewIntFromUint64(raiseGoal))
	if !minted.IsUint64() {
		return 0, errorsmod.Wrapf(ErrInvalidCalculation, "minted amount %s out of range", minted)
	}
	return minted.Uint64(), nil
}

// ValidateSupply checks that current+delta stays within MaxDropletSupply.
func ValidateSupply(current, delta uint64) (uint64, error) {
	next, err := AddUint64(current, delta)
	if err != nil {
		return 0, err
	}
	if next > MaxDropletSupply {
		return 0, errorsmod.Wrapf(ErrExceedsMaximumSupply, "supply %d + %d > %d", current, delta, MaxDropletSupply)
	}
	return next, nil
}

// AddUint64 adds two counters, failing with ErrInvalidAmount on overflow
func AddUint64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "%d + %d overflows", a, b)
	}
	return sum, nil
}

// SubUint64 subtracts b from a, failing with ErrInvalidCalculation on underflow
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errorsmod.Wrapf(ErrInvalidCalculation, "%d - %d underflows", a, b)
	}
	return a - b, nil
}

// OwnerFee is OwnerFeePercent of value, truncated
func OwnerFee(value uint64) uint64 {
	return percentOf(value, OwnerFeePercent)
}

// PlatformFee is PlatformFeePercent of value, truncated
func PlatformFee(value uint64) uint64 {
	return percentOf(value, PlatformFeePercent)
}

func percentOf(value, pct uint64) uint64 {
	return math.NewIntFromUint64(value).Mul(math.NewIntFromUint64(pct)).QuoRaw(100).Uint64()
}

// QuoteBuy prices a buy together with the fees charged on top
func QuoteBuy(supply, amount uint64) (*Quote, error) {
	cost, err := BuyCost(supply, amount)
	if err != nil {
		return nil, err
	}
	spot, err := SpotPrice(supply)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Supply:      supply,
		Amount:      amount,
		Value:       cost,
		OwnerFee:    OwnerFee(cost),
		PlatformFee: PlatformFee(cost),
		SpotPrice:   spot,
	}, nil
}

// QuoteSell prices a sell together with the fees the seller pays
func QuoteSell(supply, amount uint64) (*Quote, error) {
	proceeds, err := SellProceeds(supply, amount)
	if err != nil {
		return nil, err
	}
	spot, err := SpotPrice(supply)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Supply:      supply,
		Amount:      amount,
		Value:       proceeds,
		OwnerFee:    OwnerFee(proceeds),
		PlatformFee: PlatformFee(proceeds),
		SpotPrice:   spot,
	}, nil
}
