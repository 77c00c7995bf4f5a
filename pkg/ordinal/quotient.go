// Package ordinal builds the coalitional quotient ranking from a game's
// rank mapping and implements every index defined over it: ordinal
// marginal, ordinal Banzhaf, lex-cel, group ordinal Banzhaf, and group
// lex-cel (components 4 and 5 of the system overview).
package ordinal

import (
	"sort"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// QuotientRanking represents the partition of ranked coalitions into
// equivalence layers Sigma_1 > Sigma_2 > ... > Sigma_l (best first), per
// the "arena + index" design note: one slice of coalitions per layer,
// plus a side map from coalition to layer index for O(1) lookups.
type QuotientRanking struct {
	Layers     [][]kernel.Mask
	layerIndex map[kernel.Mask]int
}

// Build constructs the quotient ranking from a game's rank mapping.
// Layers are ordered ascending by rank value (rank 1 = best = layer 0).
func Build(g *model.Game) *QuotientRanking {
	byRank := make(map[int][]kernel.Mask)
	for m, r := range g.Ranks {
		byRank[r] = append(byRank[r], m)
	}
	ranksSorted := make([]int, 0, len(byRank))
	for r := range byRank {
		ranksSorted = append(ranksSorted, r)
	}
	sort.Ints(ranksSorted)

	q := &QuotientRanking{layerIndex: make(map[kernel.Mask]int)}
	for layerIdx, r := range ranksSorted {
		coalitions := byRank[r]
		sort.Slice(coalitions, func(i, j int) bool { return coalitions[i] < coalitions[j] })
		q.Layers = append(q.Layers, coalitions)
		for _, m := range coalitions {
			q.layerIndex[m] = layerIdx
		}
	}
	return q
}

// LayerOf returns the layer index of coalition s (0 = best) and whether s
// is present in the ranking at all.
func (q *QuotientRanking) LayerOf(s kernel.Mask) (int, bool) {
	idx, ok := q.layerIndex[s]
	return idx, ok
}

// Strict reports whether s is strictly preferred to t: s present, t
// present, and s's layer index is smaller (better) than t's.
func (q *QuotientRanking) Strict(s, t kernel.Mask) bool {
	si, sok := q.layerIndex[s]
	ti, tok := q.layerIndex[t]
	if !sok || !tok {
		return false
	}
	return si < ti
}

// Indiff reports whether s and t are in the same layer (both present).
func (q *QuotientRanking) Indiff(s, t kernel.Mask) bool {
	si, sok := q.layerIndex[s]
	ti, tok := q.layerIndex[t]
	return sok && tok && si == ti
}

// NumLayers returns the number of layers, l.
func (q *QuotientRanking) NumLayers() int { return len(q.Layers) }
