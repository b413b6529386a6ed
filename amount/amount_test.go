package amount

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasiov/mantis-raydium/errs"
)

func TestToRawTruncatesTowardZero(t *testing.T) {
	raw, err := ToRaw(1.2345678, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234567), raw)

	raw, err = ToRaw(0.9999999, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(999999), raw)

	raw, err = ToRaw(0, 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), raw)
}

func TestToRawRejectsBadInput(t *testing.T) {
	_, err := ToRaw(-1.5, 6)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))

	nan := 0.0
	nan = nan / nan
	_, err = ToRaw(nan, 6)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestDisplayRawRoundTrip(t *testing.T) {
	cases := []struct {
		display  float64
		decimals int32
	}{
		{1.5, 9},
		{0.000001, 6},
		{123456.789, 6},
		{42, 0},
	}
	for _, c := range cases {
		raw, err := ToRaw(c.display, c.decimals)
		require.NoError(t, err)
		f, _ := ToDisplay(raw, c.decimals).Float64()
		assert.Equal(t, c.display, f, "display=%v decimals=%d", c.display, c.decimals)
	}
}

func TestComputeAddLiquidityWorkedExample(t *testing.T) {
	other, min, err := ComputeAddLiquidity(1_000_000, 2_000_000, 100_000, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(181_818), other)
	assert.Equal(t, uint64(179_999), min)
}

func TestComputeAddLiquidityZeroSlippage(t *testing.T) {
	other, min, err := ComputeAddLiquidity(1_000_000, 2_000_000, 100_000, 0)
	require.NoError(t, err)
	assert.Equal(t, other, min)
}

func TestComputeAddLiquidityProperties(t *testing.T) {
	cases := []struct {
		inReserve, otherReserve, amount uint64
	}{
		{1_000_000, 2_000_000, 100_000},
		{1, 1, 1},
		{999_999_999_999, 3, 77},
		{5_000_000_000_000, 1_000_000_000_000_000, 123_456_789},
		{2, 18_446_744_073_709_551_615, 1},
	}
	for _, c := range cases {
		other, min, err := ComputeAddLiquidity(c.inReserve, c.otherReserve, c.amount, 2.5)
		require.NoError(t, err, "case %+v", c)
		assert.LessOrEqual(t, other, c.otherReserve, "case %+v", c)
		assert.LessOrEqual(t, min, other, "case %+v", c)

		// The pool product never grows under truncating division.
		k := new(big.Int).Mul(
			new(big.Int).SetUint64(c.inReserve),
			new(big.Int).SetUint64(c.otherReserve),
		)
		nextIn := new(big.Int).Add(
			new(big.Int).SetUint64(c.inReserve),
			new(big.Int).SetUint64(c.amount),
		)
		nextOther := new(big.Int).Quo(k, nextIn)
		nextProduct := new(big.Int).Mul(nextIn, nextOther)
		assert.LessOrEqual(t, nextProduct.Cmp(k), 0, "case %+v", c)
	}
}

func TestComputeAddLiquidityRejectsSlippageRange(t *testing.T) {
	_, _, err := ComputeAddLiquidity(1_000_000, 2_000_000, 1, 100)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))

	_, _, err = ComputeAddLiquidity(1_000_000, 2_000_000, 1, -0.5)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestComputeAddLiquidityZeroReserves(t *testing.T) {
	_, _, err := ComputeAddLiquidity(0, 0, 0, 1)
	assert.True(t, errors.Is(err, errs.ErrMath))
}
