// Package cardinal implements the cardinal contribution indices: Shapley
// (exact and Monte-Carlo), Banzhaf, the Shapley/Banzhaf interaction
// indices, and synergy (component 3 of the system overview).
package cardinal

import (
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// ShapleyExact computes phi_i = sum over S subset of N\{i} of
// w(|S|,n)*(v(S U {i}) - v(S)), for every player, in O(n * 2^n).
func ShapleyExact(g *model.Game) map[int]float64 {
	n := g.N()
	w := kernel.NewWeights(n)
	out := make(map[int]float64, n)

	universe := g.Grand()
	for pos, id := range g.Players {
		bit := kernel.Mask(1) << uint(pos)
		rest := universe &^ bit
		var phi float64
		for _, s := range kernel.SubsetsOf(rest) {
			sSize := kernel.Popcount(s)
			marginal := g.Value(s|bit) - g.Value(s)
			phi += w.ShapleyWeight(sSize) * marginal
		}
		out[id] = phi
	}
	return out
}

// ShapleyMonteCarlo estimates phi_i by averaging marginal contributions
// over numSamples uniformly random permutations of the players, drawn
// from a generator seeded deterministically from the game's identity and
// sampling parameters so the estimate is reproducible regardless of
// worker-pool scheduling.
func ShapleyMonteCarlo(g *model.Game, numSamples int, seed int64) map[int]float64 {
	n := g.N()
	sums := make(map[int]float64, n)
	if numSamples <= 0 || n == 0 {
		for _, id := range g.Players {
			sums[id] = 0
		}
		return sums
	}

	rng := kernel.NewPermutationSource(g.ScenarioID, g.GameID, numSamples, seed)
	for s := 0; s < numSamples; s++ {
		perm := rng.Perm(n)
		var prefix kernel.Mask
		for _, pos := range perm {
			id := g.Players[pos]
			bit := kernel.Mask(1) << uint(pos)
			sums[id] += g.Value(prefix|bit) - g.Value(prefix)
			prefix |= bit
		}
	}
	out := make(map[int]float64, n)
	for id, sum := range sums {
		out[id] = sum / float64(numSamples)
	}
	return out
}
