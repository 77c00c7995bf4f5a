package cardinal

import (
	"math"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// Banzhaf computes the raw Banzhaf index beta_i = sum over S subset of
// N\{i} of (v(S U {i}) - v(S)). When normalize is true, every value is
// divided by the sum of absolute raw values; if that sum is zero the raw
// (all-zero) values are returned unchanged and degenerate is reported
// true so the caller can emit a NumericDegenerate warning.
func Banzhaf(g *model.Game, normalize bool) (values map[int]float64, degenerate bool) {
	n := g.N()
	raw := make(map[int]float64, n)
	universe := g.Grand()

	for pos, id := range g.Players {
		bit := kernel.Mask(1) << uint(pos)
		rest := universe &^ bit
		var beta float64
		for _, s := range kernel.SubsetsOf(rest) {
			beta += g.Value(s|bit) - g.Value(s)
		}
		raw[id] = beta
	}

	if !normalize {
		return raw, false
	}

	var denom float64
	for _, v := range raw {
		denom += math.Abs(v)
	}
	if denom == 0 {
		return raw, true
	}
	out := make(map[int]float64, n)
	for id, v := range raw {
		out[id] = v / denom
	}
	return out, false
}
