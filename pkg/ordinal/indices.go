package ordinal

import (
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// Marginal computes the signed ordinal marginal m_i^S for player at bit
// position pos and reference coalition s: +1 if s union {i} is strictly
// preferred to s, -1 if s is strictly preferred to s union {i}, 0 if
// indifferent, and 0 (by construction of the caller's enumeration) when
// i is already in s.
func Marginal(q *QuotientRanking, pos int, s kernel.Mask) int {
	bit := kernel.Mask(1) << uint(pos)
	if s&bit != 0 {
		return 0
	}
	withI := s | bit
	switch {
	case q.Strict(withI, s):
		return 1
	case q.Strict(s, withI):
		return -1
	default:
		return 0
	}
}

// Banzhaf computes the ordinal Banzhaf raw score u_i+ - u_i- for every
// player, summing Marginal over every reference coalition S subset of
// N\{i}.
func Banzhaf(g *model.Game, q *QuotientRanking) map[int]int {
	out := make(map[int]int, g.N())
	universe := g.Grand()
	for pos, id := range g.Players {
		bit := kernel.Mask(1) << uint(pos)
		rest := universe &^ bit
		plus, minus := 0, 0
		for _, s := range kernel.SubsetsOf(rest) {
			switch Marginal(q, pos, s) {
			case 1:
				plus++
			case -1:
				minus++
			}
		}
		out[id] = plus - minus
	}
	return out
}

// ParticipationVector computes theta(i) = (i_1,...,i_l) for the player at
// bit position pos, where i_k is the number of coalitions in layer Sigma_k
// that have player i as a member. Index 0 is the top layer (best).
func ParticipationVector(g *model.Game, q *QuotientRanking, pos int) []int {
	bit := kernel.Mask(1) << uint(pos)
	theta := make([]int, q.NumLayers())
	for k, layer := range q.Layers {
		count := 0
		for _, s := range layer {
			if s&bit != 0 {
				count++
			}
		}
		theta[k] = count
	}
	return theta
}

// LexCel computes the player lex-cel participation vectors and their
// dense rank (1 = lex-greatest), keyed by player id, in game player
// order.
func LexCel(g *model.Game, q *QuotientRanking) (thetas map[int][]int, ranks map[int]int) {
	vectors := make([][]int, g.N())
	for pos, id := range g.Players {
		vectors[pos] = ParticipationVector(g, q, pos)
		_ = id
	}
	rankSlice := LexDenseRank(vectors)

	thetas = make(map[int][]int, g.N())
	ranks = make(map[int]int, g.N())
	for pos, id := range g.Players {
		thetas[id] = vectors[pos]
		ranks[id] = rankSlice[pos]
	}
	return thetas, ranks
}

// GroupMarginal computes m_T^S for coalition t and reference s (s subset
// of N\T): +1 if s union t is strictly preferred to s, -1 if s is
// strictly preferred to s union t, else 0.
func GroupMarginal(q *QuotientRanking, t, s kernel.Mask) int {
	union := s | t
	switch {
	case q.Strict(union, s):
		return 1
	case q.Strict(s, union):
		return -1
	default:
		return 0
	}
}

// GroupOrdinalBanzhaf computes s_T for every coalition T in subsets,
// summing GroupMarginal over every reference S subset of N\T.
func GroupOrdinalBanzhaf(g *model.Game, q *QuotientRanking, subsets []kernel.Mask) map[kernel.Mask]int {
	universe := g.Grand()
	out := make(map[kernel.Mask]int, len(subsets))
	for _, t := range subsets {
		rest := universe &^ t
		plus, minus := 0, 0
		for _, s := range kernel.SubsetsOf(rest) {
			switch GroupMarginal(q, t, s) {
			case 1:
				plus++
			case -1:
				minus++
			}
		}
		out[t] = plus - minus
	}
	return out
}

// GroupParticipationVector computes Theta(T) = (T_1,...,T_l), where T_k is
// the number of coalitions in layer Sigma_k that are supersets of T.
func GroupParticipationVector(q *QuotientRanking, t kernel.Mask) []int {
	theta := make([]int, q.NumLayers())
	for k, layer := range q.Layers {
		count := 0
		for _, s := range layer {
			if s&t == t {
				count++
			}
		}
		theta[k] = count
	}
	return theta
}

// GroupLexCel computes the group lex-cel participation vectors and their
// dense rank (1 = lex-greatest) for every coalition in subsets.
func GroupLexCel(q *QuotientRanking, subsets []kernel.Mask) (thetas map[kernel.Mask][]int, ranks map[kernel.Mask]int) {
	vectors := make([][]int, len(subsets))
	for i, t := range subsets {
		vectors[i] = GroupParticipationVector(q, t)
	}
	rankSlice := LexDenseRank(vectors)

	thetas = make(map[kernel.Mask][]int, len(subsets))
	ranks = make(map[kernel.Mask]int, len(subsets))
	for i, t := range subsets {
		thetas[t] = vectors[i]
		ranks[t] = rankSlice[i]
	}
	return thetas, ranks
}

// DefaultGroupFamily returns every coalition with |T| >= 2, the default
// family for the group-level indices.
func DefaultGroupFamily(g *model.Game) []kernel.Mask {
	out := make([]kernel.Mask, 0)
	for _, s := range kernel.Subsets(g.N()) {
		if kernel.Popcount(s) >= 2 {
			out = append(out, s)
		}
	}
	return out
}
