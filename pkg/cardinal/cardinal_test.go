package cardinal

import (
	"math"
	"testing"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

func floatPtr(f float64) *float64 { return &f }

func buildGame(t *testing.T, rows []model.Row) *model.Game {
	t.Helper()
	games, _, err := model.BuildGames(rows, nil)
	if err != nil {
		t.Fatalf("unexpected error building game: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	return games[0]
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// Scenario 1: two-player additive.
func TestTwoPlayerAdditive(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(3)},
	})

	phi := ShapleyExact(g)
	if !approxEqual(phi[0], 1) || !approxEqual(phi[1], 2) {
		t.Errorf("shapley = %v, want (1,2)", phi)
	}

	beta, degenerate := Banzhaf(g, false)
	if degenerate {
		t.Fatal("unexpected degenerate normalization")
	}
	if !approxEqual(beta[0], 1) || !approxEqual(beta[1], 2) {
		t.Errorf("banzhaf = %v, want (1,2)", beta)
	}

	grand, _ := g.MaskOf([]int{0, 1})
	si := ShapleyInteraction(g, []kernel.Mask{grand})
	if !approxEqual(si[grand], 0) {
		t.Errorf("shapley_interaction({0,1}) = %f, want 0", si[grand])
	}
}

// Scenario 2: two-player synergistic.
func TestTwoPlayerSynergistic(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(3)},
	})

	phi := ShapleyExact(g)
	if !approxEqual(phi[0], 1.5) || !approxEqual(phi[1], 1.5) {
		t.Errorf("shapley = %v, want (1.5,1.5)", phi)
	}

	beta, _ := Banzhaf(g, false)
	if !approxEqual(beta[0], 1.5) || !approxEqual(beta[1], 1.5) {
		t.Errorf("banzhaf = %v, want (1.5,1.5)", beta)
	}

	grand, _ := g.MaskOf([]int{0, 1})
	si := ShapleyInteraction(g, []kernel.Mask{grand})
	if !approxEqual(si[grand], 1) {
		t.Errorf("shapley_interaction({0,1}) = %f, want 1", si[grand])
	}
	bi := BanzhafInteraction(g, []kernel.Mask{grand})
	if !approxEqual(bi[grand], 1) {
		t.Errorf("banzhaf_interaction({0,1}) = %f, want 1", bi[grand])
	}
}

// Scenario 3: three-player dummy, v(S) = |S intersect {0,1}|.
func TestThreePlayerDummy(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{2}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 2}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1, 2}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1, 2}, Value: floatPtr(2)},
	})

	phi := ShapleyExact(g)
	if !approxEqual(phi[2], 0) {
		t.Errorf("phi_2 = %f, want 0 (dummy player)", phi[2])
	}
	beta, _ := Banzhaf(g, false)
	if !approxEqual(beta[2], 0) {
		t.Errorf("beta_2 = %f, want 0 (dummy player)", beta[2])
	}
}

func TestShapleyEfficiency(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{2}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(6)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 2}, Value: floatPtr(4)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1, 2}, Value: floatPtr(5)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1, 2}, Value: floatPtr(10)},
	})
	phi := ShapleyExact(g)
	var total float64
	for _, v := range phi {
		total += v
	}
	if !approxEqual(total, 10) {
		t.Errorf("sum of shapley values = %f, want v(N) = 10", total)
	}
}

func TestShapleyMonteCarloDeterministic(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(3)},
	})
	r1 := ShapleyMonteCarlo(g, 500, 7)
	r2 := ShapleyMonteCarlo(g, 500, 7)
	if r1[0] != r2[0] || r1[1] != r2[1] {
		t.Errorf("same (game, num_samples, seed) should reproduce bitwise: %v != %v", r1, r2)
	}
}

func TestShapleyMonteCarloConvergesToExact(t *testing.T) {
	g := buildGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{}, Value: floatPtr(0)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{2}, Value: floatPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Value: floatPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 2}, Value: floatPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1, 2}, Value: floatPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1, 2}, Value: floatPtr(6)},
	})
	exact := ShapleyExact(g)
	mc := ShapleyMonteCarlo(g, 20000, 1)
	for id, want := range exact {
		if math.Abs(mc[id]-want) > 0.05 {
			t.Errorf("player %d: mc = %f, exact = %f, want convergence within 0.05", id, mc[id], want)
		}
	}
}
