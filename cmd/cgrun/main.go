// Command cgrun is a thin demonstration host for the cooperative-game
// contribution metrics engine: it reads an input CSV, builds an
// engine.Config from flags, runs the engine, and writes the four result
// tables as CSV. It stands in for the external tabular-I/O and
// configuration-surface collaborators the core itself never touches.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"k8s.io/klog/v2"

	"coopgame/pkg/cgerrors"
	"coopgame/pkg/engine"
	"coopgame/pkg/model"
)

func main() {
	klog.InitFlags(nil)

	var (
		inputPath  string
		outputPath string
		rankMode   string
		binWidth   float64
		descending bool
		numSamples int
		shapleyMC  bool
		workers    int
		seed       int64
		normalize  bool
	)
	flag.StringVar(&inputPath, "input", "", "path to the input CSV (required)")
	flag.StringVar(&outputPath, "output", "", "output directory (default: outputs/<parent-of-input>/<input-stem>/)")
	flag.StringVar(&rankMode, "rank-mode", "dense", "rank synthesis mode: dense or bin")
	flag.Float64Var(&binWidth, "bin-width", 0, "bin width for bin rank mode")
	flag.BoolVar(&descending, "descending", true, "larger value is better (rank 1 = max)")
	flag.IntVar(&numSamples, "num-samples", 1000, "Monte-Carlo sample count when -shapley-mc is set")
	flag.BoolVar(&shapleyMC, "shapley-mc", false, "use Monte-Carlo Shapley instead of the exact algorithm")
	flag.IntVar(&workers, "workers", 0, "worker pool size (default: number of CPUs)")
	flag.Int64Var(&seed, "seed", 1, "Monte-Carlo seed")
	flag.BoolVar(&normalize, "normalize-banzhaf", true, "normalize the Banzhaf index")
	flag.Parse()

	if inputPath == "" {
		klog.Fatal("-input is required")
	}

	rows, err := readRows(inputPath)
	if err != nil {
		klog.Fatalf("failed to read input: %v", err)
	}

	cfg := engine.DefaultConfig()
	cfg.Ranking.Mode = model.RankMode(rankMode)
	cfg.Ranking.BinWidth = binWidth
	cfg.Ranking.Descending = descending
	cfg.Indices.NumSamples = numSamples
	cfg.Indices.ShapleyMC = shapleyMC
	cfg.Indices.ShapleyExact = !shapleyMC
	cfg.Indices.Normalize = normalize
	cfg.Seed = seed
	if workers > 0 {
		cfg.Workers = workers
	}

	metrics := engine.NewMetrics(nil)

	results, diagnostics, err := engine.Run(context.Background(), rows, cfg, metrics)
	if err != nil {
		exitForError(err)
	}

	for _, d := range diagnostics {
		klog.V(1).InfoS("diagnostic", "scenarioID", d.ScenarioID, "gameID", d.GameID, "category", d.Category, "message", d.Message)
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		klog.Fatalf("failed to create output directory: %v", err)
	}
	if err := writeResults(outputPath, results); err != nil {
		klog.Fatalf("failed to write results: %v", err)
	}
	klog.InfoS("run complete", "games", len(results.Individuals), "output", outputPath)
}

// defaultOutputPath implements the outputs/<parent-of-input>/<input-stem>/
// convention from the external interfaces design.
func defaultOutputPath(inputPath string) string {
	dir := filepath.Base(filepath.Dir(inputPath))
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join("outputs", dir, name)
}

// exitForError maps a categorized engine error to a distinct CLI exit
// code, per the exit/error surface design.
func exitForError(err error) {
	cat := cgerrors.Internal
	if ge, ok := err.(*cgerrors.GameError); ok {
		cat = ge.Category
	}
	klog.Errorf("run failed: %v", err)
	switch cat {
	case cgerrors.InputSchema:
		os.Exit(2)
	case cgerrors.InconsistentConfig:
		os.Exit(3)
	case cgerrors.GameSizeExceeded:
		os.Exit(4)
	default:
		os.Exit(1)
	}
}

func readRows(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	required := []string{"scenario_id", "game_id", "coalition"}
	for _, c := range required {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}

	var rows []model.Row
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		coalition, err := parseCoalition(rec[col["coalition"]])
		if err != nil {
			return nil, fmt.Errorf("parsing coalition %q: %w", rec[col["coalition"]], err)
		}
		row := model.Row{
			ScenarioID: rec[col["scenario_id"]],
			GameID:     rec[col["game_id"]],
			Coalition:  coalition,
		}
		if idx, ok := col["value"]; ok && rec[idx] != "" {
			v, err := strconv.ParseFloat(rec[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing value %q: %w", rec[idx], err)
			}
			row.Value = &v
		}
		if idx, ok := col["rank"]; ok && rec[idx] != "" {
			v, err := strconv.Atoi(rec[idx])
			if err != nil {
				return nil, fmt.Errorf("parsing rank %q: %w", rec[idx], err)
			}
			row.Rank = &v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCoalition parses the canonical "{0,2,3}" wire form (braces
// optional) into a sorted slice of player ids.
func parseCoalition(s string) ([]int, error) {
	s = trimBraces(s)
	if s == "" {
		return []int{}, nil
	}
	parts := splitComma(s)
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	sort.Ints(ids)
	return ids, nil
}

func trimBraces(s string) string {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

