package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"coopgame/pkg/assemble"
	"coopgame/pkg/axioms"
	"coopgame/pkg/cardinal"
	"coopgame/pkg/cgerrors"
	"coopgame/pkg/kernel"
	"coopgame/pkg/model"
	"coopgame/pkg/ordinal"
)

// Run processes every game built from rows through the full
// model -> cardinal -> ordinal -> axioms -> assemble pipeline, using a
// bounded worker pool keyed by (scenario_id, game_id), per the
// concurrency and resource model. metrics may be nil.
func Run(ctx context.Context, rows []model.Row, cfg Config, metrics *Metrics) (*Results, []Diagnostic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	cfg.Log()

	games, _, err := model.BuildGames(rows, cfg.Players)
	if err != nil {
		return nil, nil, err
	}

	var diagMu sync.Mutex
	var diagnostics []Diagnostic

	// n > 12 is only fatal for the game when an exact cardinal index was
	// requested; Monte Carlo has no such bound (per the GameSizeExceeded
	// category: "MC remains available"). That makes cfg.Indices visible
	// here, so the check lives in the engine rather than in model.BuildGames.
	if cfg.Indices.ShapleyExact {
		kept := games[:0]
		for _, g := range games {
			if g.N() > kernel.MaxPlayers {
				ge := cgerrors.ForGame(g.ScenarioID, g.GameID, cgerrors.GameSizeExceeded,
					fmt.Errorf("game has %d players, hard bound for an exact cardinal index is %d", g.N(), kernel.MaxPlayers))
				diagnostics = append(diagnostics, Diagnostic{
					ScenarioID: ge.ScenarioID, GameID: ge.GameID,
					Category: ge.Category, Message: ge.Error(),
				})
				if metrics != nil {
					metrics.GameErrors.WithLabelValues(ge.Category.String()).Inc()
				}
				klog.V(1).InfoS("skipping oversized game", "scenarioID", ge.ScenarioID, "gameID", ge.GameID)
				continue
			}
			kept = append(kept, g)
		}
		games = kept
	}

	needsOrdinal := cfg.Indices.OrdinalBanzhaf || cfg.Indices.LexCel ||
		cfg.Indices.GroupOrdinalBanzhaf || cfg.Indices.GroupLexCel ||
		cfg.Axioms.SwimmyEnabled || cfg.Axioms.SadaEnabled
	if needsOrdinal {
		for _, g := range games {
			if len(g.Ranks) == 0 && len(g.Values) == 0 {
				return nil, nil, cgerrors.ForGame(g.ScenarioID, g.GameID, cgerrors.InconsistentConfig,
					fmt.Errorf("ordinal indices or axioms requested but game has neither rank nor value"))
			}
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		results  = &Results{}
		fatalErr error
	)

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan *model.Game)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range jobs {
				select {
				case <-runCtx.Done():
					continue
				default:
				}
				runOneGame(g, cfg, metrics, &mu, results, &diagMu, &diagnostics, &fatalErr, cancel)
			}
		}()
	}
	for _, g := range games {
		jobs <- g
	}
	close(jobs)
	wg.Wait()

	if fatalErr != nil {
		return nil, diagnostics, fatalErr
	}
	return results, diagnostics, nil
}

func runOneGame(
	g *model.Game, cfg Config, metrics *Metrics,
	mu *sync.Mutex, results *Results,
	diagMu *sync.Mutex, diagnostics *[]Diagnostic,
	fatalErr *error, cancel context.CancelFunc,
) {
	start := time.Now()
	indiv, coal, swimmy, sada, diags, perGameErr := safeProcessGame(g, cfg)
	if metrics != nil {
		metrics.GameDuration.Observe(time.Since(start).Seconds())
		if cfg.Indices.ShapleyMC && !cfg.Indices.ShapleyExact {
			metrics.MCSamples.Add(float64(cfg.Indices.NumSamples))
		}
	}

	if perGameErr != nil {
		mu.Lock()
		if *fatalErr == nil {
			*fatalErr = perGameErr
			cancel()
		}
		mu.Unlock()
		if metrics != nil {
			metrics.GameErrors.WithLabelValues(cgerrors.Internal.String()).Inc()
		}
		klog.ErrorS(perGameErr, "game processing failed", "scenarioID", g.ScenarioID, "gameID", g.GameID)
		return
	}

	mu.Lock()
	results.Individuals = append(results.Individuals, indiv...)
	results.Coalitions = append(results.Coalitions, coal...)
	results.SwimmyAxioms = append(results.SwimmyAxioms, swimmy...)
	results.SadaAxioms = append(results.SadaAxioms, sada...)
	mu.Unlock()

	diagMu.Lock()
	*diagnostics = append(*diagnostics, diags...)
	diagMu.Unlock()

	if metrics != nil {
		metrics.GamesProcessed.Inc()
	}
	klog.V(4).InfoS("game processed", "scenarioID", g.ScenarioID, "gameID", g.GameID, "players", g.N())
}

// safeProcessGame recovers a panic from processGame and converts it into
// an Internal GameError, per the propagation policy for invariant
// violations.
func safeProcessGame(g *model.Game, cfg Config) (indiv []assemble.IndividualRow, coal []assemble.CoalitionRow, swimmy, sada []assemble.AxiomRow, diags []Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = cgerrors.ForGame(g.ScenarioID, g.GameID, cgerrors.Internal, fmt.Errorf("panic: %v", r))
		}
	}()
	return processGame(g, cfg)
}

func processGame(g *model.Game, cfg Config) ([]assemble.IndividualRow, []assemble.CoalitionRow, []assemble.AxiomRow, []assemble.AxiomRow, []Diagnostic, error) {
	var diags []Diagnostic

	needsOrdinal := cfg.Indices.OrdinalBanzhaf || cfg.Indices.LexCel ||
		cfg.Indices.GroupOrdinalBanzhaf || cfg.Indices.GroupLexCel ||
		cfg.Axioms.SwimmyEnabled || cfg.Axioms.SadaEnabled

	if needsOrdinal && len(g.Ranks) == 0 {
		if err := model.SynthesizeRanks(g, cfg.Ranking.Mode, cfg.Ranking.BinWidth, cfg.Ranking.Descending); err != nil {
			return nil, nil, nil, nil, nil, cgerrors.ForGame(g.ScenarioID, g.GameID, cgerrors.Internal, err)
		}
	}

	var q *ordinal.QuotientRanking
	if len(g.Ranks) > 0 {
		q = ordinal.Build(g)
	}

	shapley := zeroFloatMap(g)
	switch {
	case cfg.Indices.ShapleyExact:
		shapley = cardinal.ShapleyExact(g)
	case cfg.Indices.ShapleyMC:
		shapley = cardinal.ShapleyMonteCarlo(g, cfg.Indices.NumSamples, cfg.Seed)
	}

	banzhaf := zeroFloatMap(g)
	if cfg.Indices.Banzhaf {
		var degenerate bool
		banzhaf, degenerate = cardinal.Banzhaf(g, cfg.Indices.Normalize)
		if degenerate {
			diags = append(diags, Diagnostic{
				ScenarioID: g.ScenarioID, GameID: g.GameID,
				Category: cgerrors.NumericDegenerate,
				Message:  "banzhaf normalization divisor is zero, emitting zeros",
			})
		}
	}

	ordinalBanzhaf := map[int]int{}
	for _, id := range g.Players {
		ordinalBanzhaf[id] = 0
	}
	if cfg.Indices.OrdinalBanzhaf && q != nil {
		ordinalBanzhaf = ordinal.Banzhaf(g, q)
	}

	lexThetas := map[int][]int{}
	lexRanks := map[int]int{}
	if cfg.Indices.LexCel && q != nil {
		lexThetas, lexRanks = ordinal.LexCel(g, q)
	}

	interactionFamily := cardinal.DefaultInteractionFamily(g)
	if len(cfg.Indices.InteractionSubsets) > 0 {
		if override, err := resolveSubsets(g, cfg.Indices.InteractionSubsets); err == nil {
			interactionFamily = override
		}
	}
	shapleyInteraction := map[kernel.Mask]float64{}
	if cfg.Indices.ShapleyInteraction {
		shapleyInteraction = cardinal.ShapleyInteraction(g, interactionFamily)
	}
	banzhafInteraction := map[kernel.Mask]float64{}
	if cfg.Indices.BanzhafInteraction {
		banzhafInteraction = cardinal.BanzhafInteraction(g, interactionFamily)
	}

	groupFamily := ordinal.DefaultGroupFamily(g)
	if len(cfg.Indices.GroupSubsets) > 0 {
		if override, err := resolveSubsets(g, cfg.Indices.GroupSubsets); err == nil {
			groupFamily = override
		}
	}
	groupOrdinalBanzhaf := map[kernel.Mask]int{}
	if cfg.Indices.GroupOrdinalBanzhaf && q != nil {
		groupOrdinalBanzhaf = ordinal.GroupOrdinalBanzhaf(g, q, groupFamily)
	}
	groupLexThetas := map[kernel.Mask][]int{}
	groupLexRanks := map[kernel.Mask]int{}
	if cfg.Indices.GroupLexCel && q != nil {
		groupLexThetas, groupLexRanks = ordinal.GroupLexCel(q, groupFamily)
	}

	coalitionsList := unionMasks(g)
	indiv := assemble.BuildIndividuals(g, shapley, banzhaf, ordinalBanzhaf, lexThetas, lexRanks)
	coal := assemble.BuildCoalitions(g, coalitionsList, shapleyInteraction, banzhafInteraction, groupOrdinalBanzhaf, groupLexThetas, groupLexRanks)

	var swimmyRows, sadaRows []assemble.AxiomRow
	if q != nil && (cfg.Axioms.SwimmyEnabled || cfg.Axioms.SadaEnabled) {
		idx := gamePerGameIndices{
			shapleyInteraction:  shapleyInteraction,
			banzhafInteraction:  banzhafInteraction,
			groupOrdinalBanzhaf: groupOrdinalBanzhaf,
			groupLexCelRanks:    groupLexRanks,
		}
		if cfg.Axioms.SwimmyEnabled {
			rules := resolveRules(cfg.Axioms.SwimmyRules, idx)
			res := axioms.Swimmy(g, q, rules)
			swimmyRows = assemble.BuildAxiomRows(g, res)
			diags = append(diags, degenerateDiagnostics(g, res)...)
		}
		if cfg.Axioms.SadaEnabled {
			rules := resolveRules(cfg.Axioms.SadaRules, idx)
			res := axioms.SADA(g, q, rules)
			sadaRows = assemble.BuildAxiomRows(g, res)
			diags = append(diags, degenerateDiagnostics(g, res)...)
		}
	}

	return indiv, coal, swimmyRows, sadaRows, diags, nil
}

func degenerateDiagnostics(g *model.Game, results []axioms.AxiomResult) []Diagnostic {
	var out []Diagnostic
	for _, r := range results {
		if r.Degenerate {
			out = append(out, Diagnostic{
				ScenarioID: g.ScenarioID, GameID: g.GameID,
				Category: cgerrors.NumericDegenerate,
				Message:  fmt.Sprintf("%s: triggered_pairs = 0, satisfaction_rate reported as NaN", r.RuleName),
			})
		}
	}
	return out
}

func zeroFloatMap(g *model.Game) map[int]float64 {
	m := make(map[int]float64, g.N())
	for _, id := range g.Players {
		m[id] = 0
	}
	return m
}

func resolveSubsets(g *model.Game, ids [][]int) ([]kernel.Mask, error) {
	out := make([]kernel.Mask, 0, len(ids))
	for _, tuple := range ids {
		m, err := g.MaskOf(tuple)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func unionMasks(g *model.Game) []kernel.Mask {
	seen := make(map[kernel.Mask]bool)
	for m := range g.Values {
		seen[m] = true
	}
	for m := range g.Ranks {
		seen[m] = true
	}
	out := make([]kernel.Mask, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
