package ordinal

import (
	"testing"

	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
)

func intPtr(i int) *int { return &i }

func buildOrdinalGame(t *testing.T, rows []model.Row) *model.Game {
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

func TestQuotientRankingLayersAndComparisons(t *testing.T) {
	g := buildOrdinalGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Rank: intPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Rank: intPtr(1)},
	})
	q := Build(g)
	if q.NumLayers() != 2 {
		t.Fatalf("expected 2 layers, got %d", q.NumLayers())
	}
	m0, _ := g.MaskOf([]int{0})
	m1, _ := g.MaskOf([]int{1})
	m01, _ := g.MaskOf([]int{0, 1})
	if !q.Indiff(m0, m01) {
		t.Error("{0} and {0,1} share rank 1, expected indifference")
	}
	if !q.Strict(m0, m1) {
		t.Error("{0} (rank 1) should be strictly preferred to {1} (rank 2)")
	}
	if q.Strict(m1, m0) {
		t.Error("{1} should not be strictly preferred to {0}")
	}
}

// Scenario 4: ordinal lex-cel tie-break.
func TestLexCelTieBreak(t *testing.T) {
	g := buildOrdinalGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Rank: intPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Rank: intPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{2}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Rank: intPtr(1)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 2}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1, 2}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1, 2}, Rank: intPtr(1)},
	})
	q := Build(g)
	thetas, ranks := LexCel(g, q)

	want := map[int][]int{0: {3, 1}, 1: {3, 1}, 2: {1, 3}}
	for id, theta := range want {
		got := thetas[id]
		if len(got) != len(theta) || got[0] != theta[0] || got[1] != theta[1] {
			t.Errorf("theta(%d) = %v, want %v", id, got, theta)
		}
	}
	if ranks[0] != 1 || ranks[1] != 1 {
		t.Errorf("players 0 and 1 should tie at lex_cel_rank 1, got %d and %d", ranks[0], ranks[1])
	}
	if ranks[2] != 3 {
		t.Errorf("player 2 lex_cel_rank = %d, want 3 (dense rank after the tie)", ranks[2])
	}
}

// Scenario 5: group ordinal Banzhaf on a symmetric game.
func TestGroupOrdinalBanzhafSymmetric(t *testing.T) {
	g := buildOrdinalGame(t, []model.Row{
		{ScenarioID: "s", GameID: "g", Coalition: []int{0}, Rank: intPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1}, Rank: intPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{2}, Rank: intPtr(3)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 2}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{1, 2}, Rank: intPtr(2)},
		{ScenarioID: "s", GameID: "g", Coalition: []int{0, 1, 2}, Rank: intPtr(1)},
	})
	q := Build(g)
	pairs := DefaultGroupFamily(g)
	var twoPlayerPairs []kernel.Mask
	for _, t := range pairs {
		if kernel.Popcount(t) == 2 {
			twoPlayerPairs = append(twoPlayerPairs, t)
		}
	}
	if len(twoPlayerPairs) != 3 {
		t.Fatalf("expected 3 pair coalitions, got %d", len(twoPlayerPairs))
	}
	scores := GroupOrdinalBanzhaf(g, q, twoPlayerPairs)
	first := scores[twoPlayerPairs[0]]
	for _, tMask := range twoPlayerPairs {
		if scores[tMask] != first {
			t.Errorf("group ordinal banzhaf should be symmetric across pairs: s(%v) = %d, want %d", tMask, scores[tMask], first)
		}
	}
}

func TestLexDenseRankOrdersLexicographically(t *testing.T) {
	vectors := [][]int{{2, 0}, {1, 5}, {2, 0}, {0, 9}}
	ranks := LexDenseRank(vectors)
	if ranks[0] != ranks[2] {
		t.Errorf("identical vectors should tie: rank[0]=%d rank[2]=%d", ranks[0], ranks[2])
	}
	if ranks[0] >= ranks[1] {
		t.Errorf("(2,0) should lex-beat (1,5): rank[0]=%d rank[1]=%d", ranks[0], ranks[1])
	}
	if ranks[1] >= ranks[3] {
		t.Errorf("(1,5) should lex-beat (0,9): rank[1]=%d rank[3]=%d", ranks[1], ranks[3])
	}
}
