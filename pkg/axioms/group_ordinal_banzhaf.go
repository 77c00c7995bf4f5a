package axioms

import "coopgame/pkg/kernel"

// GroupOrdinalBanzhafRule orders coalitions by their precomputed group
// ordinal Banzhaf score: T is preferred to U iff s_T > s_U.
type GroupOrdinalBanzhafRule struct {
	scores map[kernel.Mask]int
}

func NewGroupOrdinalBanzhafRule(scores map[kernel.Mask]int) *GroupOrdinalBanzhafRule {
	return &GroupOrdinalBanzhafRule{scores: scores}
}

func (r *GroupOrdinalBanzhafRule) Name() string { return "group_ordinal_banzhaf_score" }

func (r *GroupOrdinalBanzhafRule) Score(t kernel.Mask) float64 { return float64(r.scores[t]) }

func (r *GroupOrdinalBanzhafRule) Prefers(a, b kernel.Mask) bool {
	return r.scores[a] > r.scores[b]
}
