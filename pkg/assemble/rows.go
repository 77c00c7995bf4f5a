// Package assemble shapes the per-game index maps produced by cardinal,
// ordinal, and axioms into the long-format result tables: individuals,
// coalitions, and the two axiom-report tables (component 7 of the system
// overview).
package assemble

import (
	"strconv"
	"strings"

	"coopgame/pkg/axioms"
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

// IndividualRow is one row of the per-player result table.
type IndividualRow struct {
	ScenarioID          string
	GameID              string
	Player              int
	Shapley             float64
	ShapleyRank         int
	Banzhaf             float64
	BanzhafRank         int
	OrdinalBanzhafScore int
	OrdinalBanzhafRank  int
	LexCelTheta         string
	LexCelRank          int
}

// CoalitionRow is one row of the per-coalition result table. Columns that
// do not apply to a coalition outside the index's subset family (e.g.
// interaction indices for a singleton) are reported as zero.
type CoalitionRow struct {
	ScenarioID               string
	GameID                   string
	Coalition                string
	Value                    float64
	ShapleyInteraction       float64
	BanzhafInteraction       float64
	GroupOrdinalBanzhafScore int
	GroupLexCelTheta         string
	GroupLexCelRank          int
}

// AxiomRow is one rule's row in an axiom report table, keyed by
// (scenario_id, game_id, rule_name).
type AxiomRow struct {
	ScenarioID       string
	GameID           string
	RuleName         string
	TriggeredPairs   int
	SatisfiedPairs   int
	SatisfactionRate float64
}

func thetaString(theta []int) string {
	parts := make([]string, len(theta))
	for i, v := range theta {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// BuildIndividuals shapes the per-player index maps into IndividualRows,
// in the game's deterministic player order, computing the shapley_rank
// and banzhaf_rank columns (1 = largest value) via the shared dense-rank
// utility.
func BuildIndividuals(
	g *model.Game,
	shapley map[int]float64,
	banzhaf map[int]float64,
	ordinalBanzhaf map[int]int,
	lexThetas map[int][]int,
	lexRanks map[int]int,
) []IndividualRow {
	n := g.N()
	shapleyKeys := make([]float64, n)
	banzhafKeys := make([]float64, n)
	ordinalBanzhafKeys := make([]float64, n)
	for pos, id := range g.Players {
		shapleyKeys[pos] = shapley[id]
		banzhafKeys[pos] = banzhaf[id]
		ordinalBanzhafKeys[pos] = float64(ordinalBanzhaf[id])
	}
	shapleyRanks := kernel.DenseRank(shapleyKeys, true)
	banzhafRanks := kernel.DenseRank(banzhafKeys, true)
	ordinalBanzhafRanks := kernel.DenseRank(ordinalBanzhafKeys, true)

	rows := make([]IndividualRow, n)
	for pos, id := range g.Players {
		rows[pos] = IndividualRow{
			ScenarioID:          g.ScenarioID,
			GameID:              g.GameID,
			Player:              id,
			Shapley:             shapley[id],
			ShapleyRank:         shapleyRanks[pos],
			Banzhaf:             banzhaf[id],
			BanzhafRank:         banzhafRanks[pos],
			OrdinalBanzhafScore: ordinalBanzhaf[id],
			OrdinalBanzhafRank:  ordinalBanzhafRanks[pos],
			LexCelTheta:         thetaString(lexThetas[id]),
			LexCelRank:          lexRanks[id],
		}
	}
	return rows
}

// BuildCoalitions shapes the per-coalition index maps into CoalitionRows,
// one per entry of coalitions, in the order given.
func BuildCoalitions(
	g *model.Game,
	coalitions []kernel.Mask,
	shapleyInteraction map[kernel.Mask]float64,
	banzhafInteraction map[kernel.Mask]float64,
	groupOrdinalBanzhaf map[kernel.Mask]int,
	groupLexThetas map[kernel.Mask][]int,
	groupLexRanks map[kernel.Mask]int,
) []CoalitionRow {
	rows := make([]CoalitionRow, len(coalitions))
	for i, m := range coalitions {
		rows[i] = CoalitionRow{
			ScenarioID:               g.ScenarioID,
			GameID:                   g.GameID,
			Coalition:                g.CoalitionKey(m),
			Value:                    g.Value(m),
			ShapleyInteraction:       shapleyInteraction[m],
			BanzhafInteraction:       banzhafInteraction[m],
			GroupOrdinalBanzhafScore: groupOrdinalBanzhaf[m],
			GroupLexCelTheta:         thetaString(groupLexThetas[m]),
			GroupLexCelRank:          groupLexRanks[m],
		}
	}
	return rows
}

// BuildAxiomRows shapes a meta-evaluator's per-rule results into
// AxiomRows for a single game.
func BuildAxiomRows(g *model.Game, results []axioms.AxiomResult) []AxiomRow {
	rows := make([]AxiomRow, len(results))
	for i, r := range results {
		rows[i] = AxiomRow{
			ScenarioID:       g.ScenarioID,
			GameID:           g.GameID,
			RuleName:         r.RuleName,
			TriggeredPairs:   r.TriggeredPairs,
			SatisfiedPairs:   r.SatisfiedPairs,
			SatisfactionRate: r.SatisfactionRate,
		}
	}
	return rows
}
