package cardinal

import (
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// DefaultInteractionFamily returns every non-empty, non-singleton
// coalition S (2 <= |S| <= n), the default subset family for the
// interaction indices when the caller supplies no override.
func DefaultInteractionFamily(g *model.Game) []kernel.Mask {
	n := g.N()
	out := make([]kernel.Mask, 0)
	for _, s := range kernel.Subsets(n) {
		size := kernel.Popcount(s)
		if size >= 2 {
			out = append(out, s)
		}
	}
	return out
}

// signedSum returns sum_{L subset S} (-1)^(|S|-|L|) * v(L union T).
func signedSum(g *model.Game, s, t kernel.Mask) float64 {
	var total float64
	sSize := kernel.Popcount(s)
	for _, l := range kernel.SubsetsOf(s) {
		sign := 1.0
		if (sSize-kernel.Popcount(l))%2 != 0 {
			sign = -1.0
		}
		total += sign * g.Value(l|t)
	}
	return total
}

// ShapleyInteraction computes I_v(S) for every coalition in subsets,
// using the weighted double sum over complements T and sub-coalitions L.
func ShapleyInteraction(g *model.Game, subsets []kernel.Mask) map[kernel.Mask]float64 {
	n := g.N()
	w := kernel.NewWeights(n)
	out := make(map[kernel.Mask]float64, len(subsets))
	universe := g.Grand()

	for _, s := range subsets {
		sSize := kernel.Popcount(s)
		complement := universe &^ s
		var total float64
		for _, t := range kernel.SubsetsOf(complement) {
			tSize := kernel.Popcount(t)
			coeff := w.Factorial(n-tSize-sSize) * w.Factorial(tSize) / w.Factorial(n-sSize+1)
			total += coeff * signedSum(g, s, t)
		}
		out[s] = total
	}
	return out
}

// BanzhafInteraction computes I^B_v(S) for every coalition in subsets.
func BanzhafInteraction(g *model.Game, subsets []kernel.Mask) map[kernel.Mask]float64 {
	n := g.N()
	out := make(map[kernel.Mask]float64, len(subsets))
	universe := g.Grand()

	for _, s := range subsets {
		sSize := kernel.Popcount(s)
		complement := universe &^ s
		var total float64
		for _, t := range kernel.SubsetsOf(complement) {
			total += signedSum(g, s, t)
		}
		scale := pow2(-(n - sSize))
		out[s] = scale * total
	}
	return out
}

func pow2(exp int) float64 {
	if exp >= 0 {
		result := 1.0
		for i := 0; i < exp; i++ {
			result *= 2
		}
		return result
	}
	result := 1.0
	for i := 0; i < -exp; i++ {
		result /= 2
	}
	return result
}

// Synergy computes synergy(S) = v(S) - sum_{i in S} v({i}) for every
// coalition in subsets.
func Synergy(g *model.Game, subsets []kernel.Mask) map[kernel.Mask]float64 {
	out := make(map[kernel.Mask]float64, len(subsets))
	for _, s := range subsets {
		total := g.Value(s)
		for pos := range g.Players {
			bit := kernel.Mask(1) << uint(pos)
			if s&bit != 0 {
				total -= g.Value(bit)
			}
		}
		out[s] = total
	}
	return out
}
