package axioms

import "coopgame/pkg/kernel"

// GroupLexCelRule orders coalitions by their precomputed group lex-cel
// rank: T is preferred to U iff group_lexcel_rank(T) < group_lexcel_rank(U)
// (a smaller rank is better, 1 = best). Score is reported as the
// negated rank so that, consistent with the other rules, a larger score
// means a more preferred coalition.
type GroupLexCelRule struct {
	ranks map[kernel.Mask]int
}

func NewGroupLexCelRule(ranks map[kernel.Mask]int) *GroupLexCelRule {
	return &GroupLexCelRule{ranks: ranks}
}

func (r *GroupLexCelRule) Name() string { return "group_lexcel_rank" }

func (r *GroupLexCelRule) Score(t kernel.Mask) float64 { return -float64(r.ranks[t]) }

func (r *GroupLexCelRule) Prefers(a, b kernel.Mask) bool {
	return r.ranks[a] < r.ranks[b]
}
