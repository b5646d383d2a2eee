package ifv

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// RoundToDecimalPlaces returns the value nearest to v that has at most
// places fractional decimal digits. Rounding is done on the exact binary
// value of v and ties round away from zero, the same result as formatting
// v with a fixed number of digits and parsing it back. NaN and infinities
// are returned unchanged.
func RoundToDecimalPlaces(v float64, places int32) float64 {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		return v
	}

	d := decimal.NewFromBigInt(r.Num(), 0).
		DivRound(decimal.NewFromBigInt(r.Denom(), 0), places)

	f, _ := d.Float64()
	if f == 0 {
		// a negative value that rounds to zero formats as "-0.0000"
		if v < 0 {
			return math.Copysign(0, -1)
		}
		return 0
	}
	return f
}
