package axioms

import (
	"math"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
	"coopgame/pkg/ordinal"
)

// Swimmy evaluates the Swimmy Axiom for every rule in rules: for every
// unordered pair of two-player coalitions (S, T) satisfying the Swimmy
// antecedent (both strictly preferred to the empty coalition, and their
// union strictly preferred to both — see the Swimmy antecedent design
// decision), the coalition with the lower (stronger) SADA synergy level
// is designated the stronger-synergy candidate; ties in synergy level do
// not trigger. A pair is satisfied for a rule when the rule strictly
// prefers the stronger candidate over the weaker one.
func Swimmy(g *model.Game, q *ordinal.QuotientRanking, rules []Rule) []AxiomResult {
	pairs := TwoPlayerCoalitions(g)
	empty := kernel.Mask(0)

	type triggeredPair struct{ strong, weak kernel.Mask }
	var triggered []triggeredPair

	for a := 0; a < len(pairs); a++ {
		for b := a + 1; b < len(pairs); b++ {
			s, t := pairs[a], pairs[b]
			if !q.Strict(s, empty) || !q.Strict(t, empty) {
				continue
			}
			union := s | t
			if !q.Strict(union, s) || !q.Strict(union, t) {
				continue
			}
			iS, jS := bitPositions(s)
			iT, jT := bitPositions(t)
			levelS := SynergyLevel(g, q, iS, jS)
			levelT := SynergyLevel(g, q, iT, jT)
			if levelS == levelT {
				continue
			}
			strong, weak := s, t
			if levelT < levelS {
				strong, weak = t, s
			}
			triggered = append(triggered, triggeredPair{strong, weak})
		}
	}

	results := make([]AxiomResult, 0, len(rules))
	for _, rule := range rules {
		res := AxiomResult{RuleName: rule.Name(), TriggeredPairs: len(triggered)}
		for _, p := range triggered {
			if rule.Prefers(p.strong, p.weak) {
				res.SatisfiedPairs++
			}
		}
		if res.TriggeredPairs == 0 {
			res.SatisfactionRate = math.NaN()
			res.Degenerate = true
		} else {
			res.SatisfactionRate = float64(res.SatisfiedPairs) / float64(res.TriggeredPairs)
		}
		results = append(results, res)
	}
	return results
}
