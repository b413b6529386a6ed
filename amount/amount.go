// Package amount holds the numeric half of the liquidity pipeline: display
// to raw unit conversion and the constant-product deposit math. Everything
// that feeds an on-chain amount goes through exact integer or decimal
// arithmetic, never through native floats.
package amount

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/tasiov/mantis-raydium/errs"
)

var oneHundred = decimal.NewFromInt(100)

// ToRaw converts a display amount into the smallest indivisible unit of a
// mint with the given decimal precision, truncating toward zero.
func ToRaw(display float64, decimals int32) (uint64, error) {
	if math.IsNaN(display) || math.IsInf(display, 0) {
		return 0, errors.Wrap(errs.ErrInvalidInput, "amount is not finite")
	}
	if display < 0 {
		return 0, errors.Wrapf(errs.ErrInvalidInput, "amount is negative: %v", display)
	}
	raw := decimal.NewFromFloat(display).Shift(decimals).Truncate(0)
	v, err := strconv.ParseUint(raw.String(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errs.ErrMath, "raw amount %s does not fit u64", raw)
	}
	return v, nil
}

// ToDisplay converts a raw amount back into display units. The result is
// exact, the raw value is carried with a shifted exponent instead of being
// divided out.
func ToDisplay(raw uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -decimals)
}

// ComputeAddLiquidity computes the other-side deposit for a constant-product
// pool given the reserves and the fixed-side input amount, plus the
// slippage-bounded minimum.
//
// The other-side amount is the exact rational
//
//	otherReserve - (inputReserve*otherReserve)/(inputReserve+inputAmount)
//
// truncated toward zero. The slippage bound is
// floor(otherAmount * (100-slippagePct)/100) with slippagePct in [0, 100).
func ComputeAddLiquidity(inputReserve, otherReserve, inputAmount uint64, slippagePct float64) (otherAmount, minOtherAmount uint64, err error) {
	if math.IsNaN(slippagePct) || slippagePct < 0 || slippagePct >= 100 {
		return 0, 0, errors.Wrapf(errs.ErrInvalidInput, "slippage %v%% outside [0, 100)", slippagePct)
	}

	rIn := new(big.Int).SetUint64(inputReserve)
	rOther := new(big.Int).SetUint64(otherReserve)
	nextIn := new(big.Int).Add(rIn, new(big.Int).SetUint64(inputAmount))
	if nextIn.Sign() == 0 {
		return 0, 0, errors.Wrap(errs.ErrMath, "next input reserve is zero")
	}

	k := new(big.Int).Mul(rIn, rOther)
	quo, rem := new(big.Int).QuoRem(k, nextIn, new(big.Int))
	nextOther := quo
	if rem.Sign() > 0 {
		// k/nextIn has a fractional part; truncating the difference toward
		// zero means rounding the divided reserve up.
		nextOther = nextOther.Add(nextOther, big.NewInt(1))
	}

	other := new(big.Int).Sub(rOther, nextOther)
	if other.Sign() < 0 {
		return 0, 0, errors.Wrapf(errs.ErrMath,
			"inconsistent reserves: divided reserve %s exceeds other reserve %s", nextOther, rOther)
	}
	if !other.IsUint64() {
		return 0, 0, errors.Wrapf(errs.ErrMath, "other amount %s does not fit u64", other)
	}
	otherAmount = other.Uint64()

	// Mul and Shift are exact, so the only rounding here is the final
	// truncation toward zero.
	retained := oneHundred.Sub(decimal.NewFromFloat(slippagePct))
	min := decimal.NewFromBigInt(other, 0).Mul(retained).Shift(-2).Truncate(0)
	minOtherAmount, perr := strconv.ParseUint(min.String(), 10, 64)
	if perr != nil {
		return 0, 0, errors.Wrapf(errs.ErrMath, "minimum other amount %s does not fit u64", min)
	}
	return otherAmount, minOtherAmount, nil
}
