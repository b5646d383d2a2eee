// Package ifv scores intuitionistic fuzzy values (IFVs) with the RIQ
// ranking index.
package ifv

import "math"

// RIQPrecision is the number of fractional decimal digits kept in a score.
const RIQPrecision int32 = 4

// IFV is an intuitionistic fuzzy value: a named pair of membership (Mu)
// and non-membership (Nu) degrees. Values outside [0, 1] are accepted.
type IFV struct {
	Name string  `json:"name" yaml:"name"`
	Mu   float64 `json:"mu" yaml:"mu"`
	Nu   float64 `json:"nu" yaml:"nu"`
}

// ScoreResult is the RIQ score of a single IFV.
type ScoreResult struct {
	Name string  `json:"name" yaml:"name"`
	RIQ  float64 `json:"riq" yaml:"riq"`
}

// Breakdown holds the intermediate values used to compute a score.
type Breakdown struct {
	Name string  `json:"name" yaml:"name"`
	Mu   float64 `json:"mu" yaml:"mu"`
	Nu   float64 `json:"nu" yaml:"nu"`
	Pi   float64 `json:"pi" yaml:"pi"`
	Hi   float64 `json:"hi" yaml:"hi"`
	Lo   float64 `json:"lo" yaml:"lo"`
	IQ   float64 `json:"iq" yaml:"iq"`
	RIQ  float64 `json:"riq" yaml:"riq"`
}

// Score computes the RIQ of every IFV relative to the whole set.
// The result has the same length and order as the input. A single
// element set divides by zero and yields a non-finite score.
func Score(ifvs []IFV) []ScoreResult {
	out := make([]ScoreResult, len(ifvs))
	scoreInto(out, ifvs, len(ifvs))
	return out
}

// Explain returns the per record breakdown of Score.
func Explain(ifvs []IFV) []Breakdown {
	n := float64(len(ifvs))
	out := make([]Breakdown, len(ifvs))
	for i, v := range ifvs {
		out[i] = breakdown(v, n)
	}
	return out
}

// Hesitation returns 1 - mu - nu clamped to zero.
func Hesitation(mu, nu float64) float64 {
	return math.Max(0, 1-mu-nu)
}

// scoreInto writes the scores of ifvs into dst, where n is the size of
// the full set ifvs belongs to.
func scoreInto(dst []ScoreResult, ifvs []IFV, n int) {
	fn := float64(n)
	for i, v := range ifvs {
		dst[i] = ScoreResult{
			Name: v.Name,
			RIQ:  breakdown(v, fn).RIQ,
		}
	}
}

func breakdown(v IFV, n float64) Breakdown {
	pi := Hesitation(v.Mu, v.Nu)
	hi := math.Max(v.Mu, v.Nu)
	lo := math.Min(v.Mu, v.Nu)

	// explicit conversions stop the compiler from fusing into FMA
	// instructions, which would change the last bits on some platforms
	share := float64(pi / n)
	a := float64(hi + share)
	b := float64(lo/(n-1) + share)
	iq := float64(a*a) + float64((n-1)*float64(b*b))

	riq := iq
	// NaN degrees fail the comparison and take the negative sign
	if !(v.Mu >= v.Nu) {
		riq = -iq
	}

	return Breakdown{
		Name: v.Name,
		Mu:   v.Mu,
		Nu:   v.Nu,
		Pi:   pi,
		Hi:   hi,
		Lo:   lo,
		IQ:   iq,
		RIQ:  RoundToDecimalPlaces(riq, RIQPrecision),
	}
}
