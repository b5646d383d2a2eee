package ifv

import (
	"cmp"
	"math"
	"slices"
)

// RankedResult is a ScoreResult placed in descending RIQ order.
type RankedResult struct {
	ScoreResult `yaml:",inline"`

	// Rank is 1-based. Equal scores share the rank of the first of them.
	Rank int `json:"rank" yaml:"rank"`

	// Index is the position of the result in the scored input.
	Index int `json:"index" yaml:"index"`
}

// Rank orders results by RIQ, highest first. The sort is stable and NaN
// scores are placed last. The input slice is left untouched.
func Rank(results []ScoreResult) []RankedResult {
	ranked := make([]RankedResult, len(results))
	for i, r := range results {
		ranked[i] = RankedResult{ScoreResult: r, Index: i}
	}

	slices.SortStableFunc(ranked, func(a, b RankedResult) int {
		return compareRIQ(a.RIQ, b.RIQ)
	})

	for i := range ranked {
		if i > 0 && compareRIQ(ranked[i-1].RIQ, ranked[i].RIQ) == 0 {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}

	return ranked
}

// compareRIQ orders descending with NaN after every number.
func compareRIQ(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(b, a)
}
