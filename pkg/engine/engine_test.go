package engine

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"coopgame/pkg/cgerrors"
	"coopgame/pkg/model"
)

func floatPtr(f float64) *float64 { return &f }

func additiveGameRows() []model.Row {
	return []model.Row{
		{ScenarioID: "s1", GameID: "g1", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s1", GameID: "g1", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s1", GameID: "g1", Coalition: []int{1}, Value: floatPtr(2)},
		{ScenarioID: "s1", GameID: "g1", Coalition: []int{0, 1}, Value: floatPtr(3)},
	}
}

func TestConfigValidateDefaultIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate cleanly: %v", err)
	}
}

func TestConfigValidateRejectsBinWithoutWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ranking.Mode = model.RankBin
	cfg.Ranking.BinWidth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected bin ranking without a positive bin_width to be rejected")
	}
}

func TestConfigValidateRejectsZeroWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected workers <= 0 to be rejected")
	}
}

func TestConfigValidateRejectsUnknownRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Axioms.SwimmyRules = []string{"not_a_real_rule"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an unknown rule name to be rejected")
	}
}

func TestConfigValidateRejectsEmptyRuleSetWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Axioms.SadaRules = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected sada enabled with no rules to be rejected")
	}
}

func TestRunEndToEndTwoPlayerAdditive(t *testing.T) {
	cfg := DefaultConfig()
	metrics := NewMetrics(prometheus.NewRegistry())
	results, diagnostics, err := Run(context.Background(), additiveGameRows(), cfg, metrics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A two-player game has a single two-player coalition, so neither axiom
	// evaluator can form a pair: each of the four default rules reports
	// triggered_pairs = 0 under both Swimmy and SADA, one warning each.
	if len(diagnostics) != 8 {
		t.Errorf("expected 8 diagnostics (4 rules x 2 axiom evaluators), got %v", diagnostics)
	}
	for _, d := range diagnostics {
		if d.Category != cgerrors.NumericDegenerate {
			t.Errorf("expected only NumericDegenerate diagnostics, got %v", d)
		}
	}
	if len(results.Individuals) != 2 {
		t.Fatalf("expected 2 individual rows, got %d", len(results.Individuals))
	}
	for _, row := range results.Individuals {
		switch row.Player {
		case 0:
			if row.Shapley != 1 {
				t.Errorf("player 0 shapley = %f, want 1", row.Shapley)
			}
		case 1:
			if row.Shapley != 2 {
				t.Errorf("player 1 shapley = %f, want 2", row.Shapley)
			}
		}
	}
}

func TestRunOversizedGameIsNonFatalDiagnostic(t *testing.T) {
	players := make([]int, 13)
	for i := range players {
		players[i] = i
	}
	cfg := DefaultConfig()
	cfg.Players = players
	metrics := NewMetrics(prometheus.NewRegistry())
	rows := []model.Row{{ScenarioID: "s1", GameID: "big", Coalition: []int{0}, Value: floatPtr(1)}}
	results, diagnostics, err := Run(context.Background(), rows, cfg, metrics)
	if err != nil {
		t.Fatalf("an oversized game must not abort the run: %v", err)
	}
	if len(diagnostics) != 1 || diagnostics[0].Category != cgerrors.GameSizeExceeded {
		t.Fatalf("expected 1 GameSizeExceeded diagnostic, got %v", diagnostics)
	}
	if len(results.Individuals) != 0 {
		t.Errorf("expected no individual rows for a skipped game, got %d", len(results.Individuals))
	}
}

func TestRunOversizedGameRunsUnderMonteCarloOnly(t *testing.T) {
	// GameSizeExceeded is defined as "n > 12 with an exact cardinal index
	// requested (MC remains available)": with ShapleyExact off and
	// ShapleyMC on, an oversized game must not be skipped.
	players := make([]int, 13)
	for i := range players {
		players[i] = i
	}
	cfg := DefaultConfig()
	cfg.Players = players
	cfg.Indices = IndicesConfig{
		ShapleyExact: false,
		ShapleyMC:    true,
		NumSamples:   200,
	}
	cfg.Axioms = AxiomsConfig{}
	metrics := NewMetrics(prometheus.NewRegistry())
	rows := []model.Row{{ScenarioID: "s1", GameID: "big", Coalition: []int{0}, Value: floatPtr(1)}}
	results, diagnostics, err := Run(context.Background(), rows, cfg, metrics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range diagnostics {
		if d.Category == cgerrors.GameSizeExceeded {
			t.Fatalf("MC-only config must not raise GameSizeExceeded, got %v", diagnostics)
		}
	}
	if len(results.Individuals) != 13 {
		t.Fatalf("expected the oversized game to be processed via Monte Carlo, got %d individual rows", len(results.Individuals))
	}
}

func TestRunRejectsOrdinalRequirementWithoutRankOrValue(t *testing.T) {
	cfg := DefaultConfig()
	metrics := NewMetrics(prometheus.NewRegistry())
	rows := []model.Row{{ScenarioID: "s1", GameID: "g1", Coalition: []int{0}}}
	_, _, err := Run(context.Background(), rows, cfg, metrics)
	if err == nil {
		t.Fatal("expected an InconsistentConfig error when axioms/ordinal indices are requested but the game has neither rank nor value")
	}
	ge, ok := err.(*cgerrors.GameError)
	if !ok || ge.Category != cgerrors.InconsistentConfig {
		t.Fatalf("expected InconsistentConfig, got %v", err)
	}
}

func TestRunDeterministicAcrossMultipleGames(t *testing.T) {
	cfg := DefaultConfig()
	rows := append(additiveGameRows(), []model.Row{
		{ScenarioID: "s1", GameID: "g2", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s1", GameID: "g2", Coalition: []int{0}, Value: floatPtr(5)},
		{ScenarioID: "s1", GameID: "g2", Coalition: []int{1}, Value: floatPtr(5)},
		{ScenarioID: "s1", GameID: "g2", Coalition: []int{0, 1}, Value: floatPtr(10)},
	}...)
	cfg.Workers = 4

	r1, _, err := Run(context.Background(), rows, cfg, NewMetrics(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, _, err := Run(context.Background(), rows, cfg, NewMetrics(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r1.Individuals) != len(r2.Individuals) {
		t.Fatalf("result size differs across runs: %d vs %d", len(r1.Individuals), len(r2.Individuals))
	}
	seen := make(map[string]float64)
	for _, row := range r1.Individuals {
		seen[row.GameID+":"+string(rune('A'+row.Player))] = row.Shapley
	}
	for _, row := range r2.Individuals {
		key := row.GameID + ":" + string(rune('A'+row.Player))
		if want, ok := seen[key]; ok && want != row.Shapley {
			t.Errorf("worker-pool scheduling should not perturb results: %s shapley %f vs %f", key, want, row.Shapley)
		}
	}
}
