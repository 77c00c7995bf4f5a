package main

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"coopgame/pkg/assemble"
	"coopgame/pkg/engine"
)

func writeResults(dir string, results *engine.Results) error {
	if err := writeIndividuals(filepath.Join(dir, "individuals.csv"), results.Individuals); err != nil {
		return err
	}
	if err := writeCoalitions(filepath.Join(dir, "coalitions.csv"), results.Coalitions); err != nil {
		return err
	}
	if err := writeAxioms(filepath.Join(dir, "axioms_swimmy.csv"), results.SwimmyAxioms); err != nil {
		return err
	}
	if err := writeAxioms(filepath.Join(dir, "axioms_sada.csv"), results.SadaAxioms); err != nil {
		return err
	}
	return nil
}

func writeIndividuals(path string, rows []assemble.IndividualRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"scenario_id", "game_id", "player", "shapley", "shapley_rank",
		"banzhaf", "banzhaf_rank", "ordinal_banzhaf_score", "ordinal_banzhaf_rank",
		"lex_cel_theta", "lex_cel_rank"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ScenarioID, r.GameID, strconv.Itoa(r.Player),
			formatFloat(r.Shapley), strconv.Itoa(r.ShapleyRank),
			formatFloat(r.Banzhaf), strconv.Itoa(r.BanzhafRank),
			strconv.Itoa(r.OrdinalBanzhafScore), strconv.Itoa(r.OrdinalBanzhafRank),
			r.LexCelTheta, strconv.Itoa(r.LexCelRank),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeCoalitions(path string, rows []assemble.CoalitionRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"scenario_id", "game_id", "coalition", "value",
		"shapley_interaction", "banzhaf_interaction", "group_ordinal_banzhaf_score",
		"group_lexcel_theta", "group_lexcel_rank"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ScenarioID, r.GameID, r.Coalition, formatFloat(r.Value),
			formatFloat(r.ShapleyInteraction), formatFloat(r.BanzhafInteraction),
			strconv.Itoa(r.GroupOrdinalBanzhafScore), r.GroupLexCelTheta,
			strconv.Itoa(r.GroupLexCelRank),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeAxioms(path string, rows []assemble.AxiomRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"scenario_id", "game_id", "rule_name", "triggered_pairs",
		"satisfied_pairs", "satisfaction_rate"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ScenarioID, r.GameID, r.RuleName,
			strconv.Itoa(r.TriggeredPairs), strconv.Itoa(r.SatisfiedPairs),
			formatFloat(r.SatisfactionRate),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
