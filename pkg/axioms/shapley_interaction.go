package axioms

import "coopgame/pkg/kernel"

// ShapleyInteractionRule orders coalitions by their precomputed Shapley
// Interaction Index: T is preferred to U iff I_v(T) > I_v(U).
type ShapleyInteractionRule struct {
	values map[kernel.Mask]float64
}

func NewShapleyInteractionRule(values map[kernel.Mask]float64) *ShapleyInteractionRule {
	return &ShapleyInteractionRule{values: values}
}

func (r *ShapleyInteractionRule) Name() string { return "shapley_interaction" }

func (r *ShapleyInteractionRule) Score(t kernel.Mask) float64 { return r.values[t] }

func (r *ShapleyInteractionRule) Prefers(a, b kernel.Mask) bool {
	return r.values[a] > r.values[b]
}
