package axioms

import "coopgame/pkg/kernel"

// BanzhafInteractionRule orders coalitions by their precomputed Banzhaf
// Interaction Index: T is preferred to U iff I^B_v(T) > I^B_v(U).
type BanzhafInteractionRule struct {
	values map[kernel.Mask]float64
}

func NewBanzhafInteractionRule(values map[kernel.Mask]float64) *BanzhafInteractionRule {
	return &BanzhafInteractionRule{values: values}
}

func (r *BanzhafInteractionRule) Name() string { return "banzhaf_interaction" }

func (r *BanzhafInteractionRule) Score(t kernel.Mask) float64 { return r.values[t] }

func (r *BanzhafInteractionRule) Prefers(a, b kernel.Mask) bool {
	return r.values[a] > r.values[b]
}
