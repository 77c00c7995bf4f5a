package axioms

import (
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// TwoPlayerCoalitions returns every coalition mask with exactly two
// members, the family both meta-evaluators operate over.
func TwoPlayerCoalitions(g *model.Game) []kernel.Mask {
	out := make([]kernel.Mask, 0)
	for _, s := range kernel.Subsets(g.N()) {
		if kernel.Popcount(s) == 2 {
			out = append(out, s)
		}
	}
	return out
}

// bitPositions returns the two set bit positions of a two-player
// coalition mask, in ascending order.
func bitPositions(m kernel.Mask) (int, int) {
	first, second := -1, -1
	pos := 0
	for b := m; b != 0; b >>= 1 {
		if b&1 != 0 {
			if first == -1 {
				first = pos
			} else {
				second = pos
			}
		}
		pos++
	}
	return first, second
}

// AxiomResult is one rule's row in an axiom report: how many pairs the
// axiom's antecedent triggered on, how many of those the rule satisfied,
// and the resulting rate.
type AxiomResult struct {
	RuleName         string
	TriggeredPairs   int
	SatisfiedPairs   int
	SatisfactionRate float64 // NaN when TriggeredPairs == 0
	Degenerate       bool    // true when TriggeredPairs == 0 (NumericDegenerate warning)
}
