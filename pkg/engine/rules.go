package engine

import (
	"coopgame/pkg/axioms"
	"coopgame/pkg/kernel"
)

// gamePerGameIndices bundles the per-game index maps the axiom rules draw
// from, computed once per game and reused by both meta-evaluators.
type gamePerGameIndices struct {
	shapleyInteraction  map[kernel.Mask]float64
	banzhafInteraction  map[kernel.Mask]float64
	groupOrdinalBanzhaf map[kernel.Mask]int
	groupLexCelRanks    map[kernel.Mask]int
}

// resolveRules builds the concrete axioms.Rule set named by rules,
// drawing from the per-game indices already computed for this game.
func resolveRules(names []string, idx gamePerGameIndices) []axioms.Rule {
	out := make([]axioms.Rule, 0, len(names))
	for _, name := range names {
		switch name {
		case "shapley_interaction":
			out = append(out, axioms.NewShapleyInteractionRule(idx.shapleyInteraction))
		case "banzhaf_interaction":
			out = append(out, axioms.NewBanzhafInteractionRule(idx.banzhafInteraction))
		case "group_ordinal_banzhaf_score":
			out = append(out, axioms.NewGroupOrdinalBanzhafRule(idx.groupOrdinalBanzhaf))
		case "group_lexcel_rank":
			out = append(out, axioms.NewGroupLexCelRule(idx.groupLexCelRanks))
		}
	}
	return out
}
