package axioms

import (
	"math"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
	"coopgame/pkg/ordinal"
)

// SADA evaluates the Synergy-Anasy Distinction for every rule in rules:
// for every ordered pair (T, U) of two-player coalitions with
// syn(T) < syn(U) (T has the strictly stronger synergy level),
// triggered_pairs counts the pair; satisfied_pairs additionally counts it
// when the rule strictly prefers T over U.
func SADA(g *model.Game, q *ordinal.QuotientRanking, rules []Rule) []AxiomResult {
	pairs := TwoPlayerCoalitions(g)
	levels := make(map[kernel.Mask]int, len(pairs))
	for _, t := range pairs {
		i, j := bitPositions(t)
		levels[t] = SynergyLevel(g, q, i, j)
	}

	type orderedPair struct{ t, u kernel.Mask }
	var triggered []orderedPair
	for _, t := range pairs {
		for _, u := range pairs {
			if t == u {
				continue
			}
			if levels[t] < levels[u] {
				triggered = append(triggered, orderedPair{t, u})
			}
		}
	}

	results := make([]AxiomResult, 0, len(rules))
	for _, rule := range rules {
		res := AxiomResult{RuleName: rule.Name(), TriggeredPairs: len(triggered)}
		for _, p := range triggered {
			if rule.Prefers(p.t, p.u) {
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
