package model

import (
	"fmt"
	"math"
	"sort"

	"coopgame/pkg/cgerrors"
	"coopgame/pkg/kernel"
)

// RankMode selects how SynthesizeRanks derives rank from value.
type RankMode string

const (
	RankDense RankMode = "dense"
	RankBin   RankMode = "bin"
)

// SynthesizeRanks fills g.Ranks from g.Values for every coalition that
// currently carries a value, per the two modes in the game-model
// construction design: dense ranking directly on value, or bin ranking
// (quantize then dense-rank the bin id). descending=true means larger
// value is better (rank 1 = maximum).
func SynthesizeRanks(g *Game, mode RankMode, binWidth float64, descending bool) error {
	if mode == RankBin && binWidth <= 0 {
		return cgerrors.ForGame(g.ScenarioID, g.GameID, cgerrors.InconsistentConfig,
			errInvalidBinWidth(binWidth))
	}

	masks := make([]kernel.Mask, 0, len(g.Values))
	for m := range g.Values {
		masks = append(masks, m)
	}
	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })

	keys := make([]float64, len(masks))
	for i, m := range masks {
		v := g.Values[m]
		if mode == RankBin {
			if descending {
				v = math.Ceil(v / binWidth)
			} else {
				v = math.Floor(v / binWidth)
			}
		}
		keys[i] = v
	}

	ranks := kernel.DenseRank(keys, descending)
	for i, m := range masks {
		g.Ranks[m] = ranks[i]
	}
	if len(g.Ranks) > 0 {
		if g.GameType == TU {
			g.GameType = Both
		}
	}
	return nil
}

func errInvalidBinWidth(w float64) error {
	return fmt.Errorf("bin ranking mode requires a positive bin_width, got %v", w)
}
