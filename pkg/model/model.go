// Package model holds the in-memory game representation: the Row wire
// type and Game, built once from a validated input table (component 1 of
// the system overview). Coalitions are kernel.Mask values. After
// construction a Game changes only through SynthesizeRanks, which fills
// in Ranks from Values.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"coopgame/pkg/cgerrors"
	"coopgame/pkg/kernel"
)

// GameType records which representation(s) a Game carries.
type GameType int

const (
	TU GameType = iota
	Ordinal
	Both
)

func (t GameType) String() string {
	switch t {
	case TU:
		return "TU"
	case Ordinal:
		return "ORDINAL"
	case Both:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// Row is the wire row the external tabular-I/O collaborator produces:
// one (scenario_id, game_id, coalition, value?, rank?) record.
type Row struct {
	ScenarioID string
	GameID     string
	Coalition  []int // canonical sorted player-id tuple
	Value      *float64
	Rank       *int
}

// Game is one cooperative-game instance, identified by (ScenarioID,
// GameID). Players is the ordered id sequence that defines bit positions
// in every Coalition mask belonging to this game, and thus deterministic
// iteration order for every index computed over it.
type Game struct {
	ScenarioID string
	GameID     string
	Players    []int
	Values     map[kernel.Mask]float64
	Ranks      map[kernel.Mask]int
	GameType   GameType

	index map[int]int // player id -> bit position
}

// N returns the number of players in the game.
func (g *Game) N() int { return len(g.Players) }

// Value returns v(S), defaulting to 0 for a coalition absent from Values.
func (g *Game) Value(s kernel.Mask) float64 {
	return g.Values[s]
}

// Rank returns the synthesized/provided rank of S and whether one exists.
func (g *Game) Rank(s kernel.Mask) (int, bool) {
	r, ok := g.Ranks[s]
	return r, ok
}

// MaskOf converts a sorted player-id tuple into this game's bitmask
// representation; ids not present in the game are an Internal error
// (BuildGames guarantees every coalition's members are in Players).
func (g *Game) MaskOf(ids []int) (kernel.Mask, error) {
	var m kernel.Mask
	for _, id := range ids {
		pos, ok := g.index[id]
		if !ok {
			return 0, fmt.Errorf("player %d not present in game players", id)
		}
		m |= kernel.Mask(1) << uint(pos)
	}
	return m, nil
}

// IDsOf returns the sorted player ids belonging to mask s.
func (g *Game) IDsOf(s kernel.Mask) []int {
	ids := make([]int, 0, kernel.Popcount(s))
	for pos, id := range g.Players {
		if s&(kernel.Mask(1)<<uint(pos)) != 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// CoalitionKey renders mask s as the external "{0,2,3}" canonical form.
func (g *Game) CoalitionKey(s kernel.Mask) string {
	ids := g.IDsOf(s)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Grand returns the grand coalition mask N.
func (g *Game) Grand() kernel.Mask {
	if g.N() == 0 {
		return 0
	}
	return kernel.Mask(1)<<uint(g.N()) - 1
}

// gameKey is the (scenario_id, game_id) grouping key.
type gameKey struct {
	scenarioID string
	gameID     string
}

// BuildGames groups rows by (scenario_id, game_id), derives each game's
// player list (union of coalition members, unless explicitPlayers is
// given), and validates that no coalition appears twice within a game.
// It preserves the order in which (scenario_id, game_id) pairs first
// appear in rows, so downstream iteration is deterministic regardless of
// row order within a group (rank-determinism testable property).
//
// BuildGames does not itself bound the player count: whether n > 12 is
// fatal for a given game depends on which indices the caller requested
// (an exact cardinal index cannot afford it; Monte Carlo still can), and
// that decision belongs to the engine layer where the requested indices
// are known. The oversized return value is kept for call-site
// compatibility and is always empty.
func BuildGames(rows []Row, explicitPlayers []int) (games []*Game, oversized []*cgerrors.GameError, err error) {
	order := make([]gameKey, 0)
	grouped := make(map[gameKey][]Row)
	for _, r := range rows {
		k := gameKey{r.ScenarioID, r.GameID}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], r)
	}

	games = make([]*Game, 0, len(order))
	for _, k := range order {
		g, buildErr := buildOneGame(k, grouped[k], explicitPlayers)
		if buildErr != nil {
			return nil, nil, buildErr
		}
		games = append(games, g)
	}
	return games, nil, nil
}

func buildOneGame(k gameKey, rows []Row, explicitPlayers []int) (*Game, error) {
	players := explicitPlayers
	if len(players) == 0 {
		seen := make(map[int]bool)
		for _, r := range rows {
			for _, id := range r.Coalition {
				seen[id] = true
			}
		}
		players = make([]int, 0, len(seen))
		for id := range seen {
			players = append(players, id)
		}
		sort.Ints(players)
	} else {
		players = append([]int(nil), players...)
		sort.Ints(players)
	}
	index := make(map[int]int, len(players))
	for pos, id := range players {
		index[id] = pos
	}

	g := &Game{
		ScenarioID: k.scenarioID,
		GameID:     k.gameID,
		Players:    players,
		Values:     make(map[kernel.Mask]float64),
		Ranks:      make(map[kernel.Mask]int),
		index:      index,
	}

	seenMasks := make(map[kernel.Mask]bool)
	hasValue, hasRank := false, false
	for _, r := range rows {
		m, err := g.MaskOf(r.Coalition)
		if err != nil {
			return nil, cgerrors.ForGame(k.scenarioID, k.gameID, cgerrors.Internal, err)
		}
		if seenMasks[m] {
			return nil, cgerrors.ForGame(k.scenarioID, k.gameID, cgerrors.InputSchema,
				fmt.Errorf("duplicate coalition row for %s", g.CoalitionKey(m)))
		}
		seenMasks[m] = true
		if r.Value != nil {
			g.Values[m] = *r.Value
			hasValue = true
		}
		if r.Rank != nil {
			g.Ranks[m] = *r.Rank
			hasRank = true
		}
	}

	switch {
	case hasValue && hasRank:
		g.GameType = Both
	case hasRank:
		g.GameType = Ordinal
	default:
		g.GameType = TU
	}
	return g, nil
}
