// Package numeric provides helpers for decimal conversions used across the adapter.
package numeric

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Format converts r into a fixed-scale decimal string rounded toward zero.
// When r is nil the empty string is returned.
func Format(r *big.Rat, scale int) string {
	if r == nil {
		return ""
	}
	pow10 := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(pow10))
	i := new(big.Int)
	if scaled.Sign() >= 0 {
		i.Div(scaled.Num(), scaled.Denom())
	} else {
		tmp := new(big.Int).Div(new(big.Int).Abs(scaled.Num()), scaled.Denom())
		i.Neg(tmp)
	}
	s := i.String()
	if scale == 0 {
		return s
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= scale {
		s = strings.Repeat("0", scale-len(s)+1) + s
	}
	dot := len(s) - scale
	out := s[:dot] + "." + s[dot:]
	if neg {
		out = "-" + out
	}
	return out
}

// Parse converts a decimal string into a rational number.
// On failure, it returns (nil, false).
func Parse(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return nil, false
	}
	return r, true
}

// ScaleFromStep derives the effective fractional precision from a decimal
// "step" string. The string's own decimal representation is authoritative;
// trailing zeros do not count toward the scale.
func ScaleFromStep(step string) int {
	step = strings.TrimSpace(step)
	if step == "" {
		return 0
	}
	idx := strings.IndexByte(step, '.')
	if idx < 0 {
		return 0
	}
	frac := strings.TrimRight(step[idx+1:], "0")
	return len(frac)
}

// ParseDecimal converts a venue-supplied decimal string into an exact decimal.
// On failure or empty input, it returns (zero, false).
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// WithinBounds reports whether value lies in the inclusive [min, max] range.
func WithinBounds(value, min, max decimal.Decimal) bool {
	return value.Cmp(min) >= 0 && value.Cmp(max) <= 0
}

// StrictlyPositive reports whether the decimal string parses and is > 0.
func StrictlyPositive(s string) bool {
	d, ok := ParseDecimal(s)
	return ok && d.Sign() > 0
}
