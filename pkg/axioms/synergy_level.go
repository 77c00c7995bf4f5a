package axioms

import (
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
	"coopgame/pkg/ordinal"
)

// SynergyLevel classifies a two-player coalition t={i,j} into one of six
// synergy levels (1 = strongest synergy, 6 = strongest anti-synergy),
// resolving the SADA Open Question per the documented boundary table:
// the classification uses the cardinal value when the game carries one,
// falling back to the quotient-ranking order of {i}, {j}, t when only
// ranks are available. i and j are bit positions (0-indexed into the
// game's player list), t is their union mask.
func SynergyLevel(g *model.Game, q *ordinal.QuotientRanking, i, j int) int {
	bitI := kernel.Mask(1) << uint(i)
	bitJ := kernel.Mask(1) << uint(j)
	t := bitI | bitJ

	if g.GameType == model.TU || g.GameType == model.Both {
		return cardinalSynergyLevel(g.Value(bitI), g.Value(bitJ), g.Value(t))
	}
	return ordinalSynergyLevel(q, bitI, bitJ, t)
}

// cardinalSynergyLevel implements the six cases documented in the SADA
// design decision, tested in order from level 1 to level 6; the first case
// that holds gives the level, so every u gets exactly one level.
func cardinalSynergyLevel(a, b, u float64) int {
	hi, lo := a, b
	if b > a {
		hi, lo = b, a
	}
	switch {
	case u >= a+b:
		return 1
	case u > hi:
		return 2
	case u == hi:
		return 3
	case u >= lo:
		return 4
	case u >= 0:
		return 5
	default:
		return 6
	}
}

// ordinalSynergyLevel classifies t purely from the quotient-ranking order
// of the two singletons and their union, when no cardinal value is
// available. It first identifies the better singleton ("hi", the ordinal
// analogue of max(a,b)) and the worse one ("lo"): level 1 when t beats
// both, 3 when t is indifferent to hi, 2 when t beats lo but not hi, 5 when
// lo strictly beats t, and 4 otherwise (t indifferent to lo, below hi).
// These ordinal levels do not coincide with the cardinal ones for the same
// order of coalitions: a value strictly between min(a,b) and max(a,b) is
// level 4 in cardinalSynergyLevel, while t strictly between the two
// singletons is level 2 here. Level 6 never arises here: it requires an
// absolute negative-value notion that ordinal data does not carry.
func ordinalSynergyLevel(q *ordinal.QuotientRanking, bitI, bitJ, t kernel.Mask) int {
	hi, lo := bitI, bitJ
	if q.Strict(bitJ, bitI) {
		hi, lo = bitJ, bitI
	}

	tBeatsHi := q.Strict(t, hi)
	tBeatsLo := q.Strict(t, lo)
	loBeatsT := q.Strict(lo, t)

	switch {
	case tBeatsHi && tBeatsLo:
		return 1
	case q.Indiff(t, hi):
		return 3
	case tBeatsLo:
		return 2
	case loBeatsT:
		return 5
	default:
		return 4
	}
}
