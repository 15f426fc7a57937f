package numeric

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatParseAndScale(t *testing.T) {
	rat := big.NewRat(12345, 100)
	formatted := Format(rat, 2)
	require.Equal(t, "123.45", formatted)

	round := big.NewRat(-12345, 100)
	require.Equal(t, "-123.45", Format(round, 2))

	parsed, ok := Parse(formatted)
	require.True(t, ok)
	require.True(t, new(big.Rat).Sub(parsed, rat).Sign() == 0)
}

func TestScaleFromStep(t *testing.T) {
	cases := map[string]int{
		"0.01":     2,
		"0.0010":   3,
		"1":        0,
		"1.000000": 0,
		"0.00000001": 8,
		"  0.10 ":  1,
		"":         0,
	}
	for step, want := range cases {
		require.Equal(t, want, ScaleFromStep(step), "step %q", step)
	}
}

func TestParseDecimalAndBounds(t *testing.T) {
	d, ok := ParseDecimal("0.01")
	require.True(t, ok)
	require.True(t, WithinBounds(d, decimal.RequireFromString("0.000000001"), decimal.NewFromInt(1000000)))
	require.False(t, WithinBounds(decimal.Zero, decimal.RequireFromString("0.000000001"), decimal.NewFromInt(1000000)))

	_, ok = ParseDecimal("not-a-number")
	require.False(t, ok)
	_, ok = ParseDecimal("   ")
	require.False(t, ok)
}

func TestStrictlyPositive(t *testing.T) {
	require.True(t, StrictlyPositive("0.001"))
	require.False(t, StrictlyPositive("0"))
	require.False(t, StrictlyPositive("-1"))
	require.False(t, StrictlyPositive("abc"))
}
