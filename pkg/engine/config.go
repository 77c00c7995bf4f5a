// Package engine orchestrates the whole pipeline: validated configuration,
// a bounded worker pool keyed by (scenario_id, game_id), structured
// logging, and metrics, wired around the model/kernel/cardinal/ordinal/
// axioms/assemble packages (components 8-9 of the system overview).
package engine

import (
	"runtime"

	"k8s.io/klog/v2"

	"coopgame/pkg/cgerrors"
	"coopgame/pkg/model"
)

// IndicesConfig selects which indices to compute and carries their
// per-index options, per the external configuration surface.
type IndicesConfig struct {
	ShapleyExact        bool
	ShapleyMC           bool
	NumSamples          int
	Banzhaf             bool
	Normalize           bool
	ShapleyInteraction  bool
	BanzhafInteraction  bool
	OrdinalBanzhaf      bool
	LexCel              bool
	GroupOrdinalBanzhaf bool
	GroupLexCel         bool
	// InteractionSubsets overrides the default non-singleton family for
	// the Shapley/Banzhaf interaction indices, as sorted player-id
	// tuples; nil selects the default family.
	InteractionSubsets [][]int
	// GroupSubsets overrides the default |T|>=2 family for the group
	// ordinal Banzhaf / group lex-cel indices; nil selects the default.
	GroupSubsets [][]int
}

// RankingConfig controls rank synthesis from value when a game carries
// no rank column.
type RankingConfig struct {
	Mode        model.RankMode
	BinWidth    float64
	Descending  bool
}

// AxiomsConfig selects which meta-evaluators run and which rules each
// draws from.
type AxiomsConfig struct {
	SwimmyEnabled bool
	SwimmyRules   []string
	SadaEnabled   bool
	SadaRules     []string
}

// Config is the validated, host-supplied configuration the engine
// consumes, in the style of the teacher's AgentConfig: a plain struct
// built by DefaultConfig and checked with Validate before use.
type Config struct {
	Indices IndicesConfig
	Ranking RankingConfig
	Players []int
	Axioms  AxiomsConfig
	Workers int
	Seed    int64
}

// knownRules is the closed set of synergy-comparison rule names the
// axioms package can resolve.
var knownRules = map[string]bool{
	"shapley_interaction":          true,
	"banzhaf_interaction":          true,
	"group_ordinal_banzhaf_score":  true,
	"group_lexcel_rank":            true,
}

// DefaultConfig returns the engine's default configuration: every index
// enabled, dense descending ranking, both axiom evaluators enabled with
// all four rules, and one worker per CPU.
func DefaultConfig() Config {
	allRules := []string{
		"shapley_interaction",
		"banzhaf_interaction",
		"group_ordinal_banzhaf_score",
		"group_lexcel_rank",
	}
	return Config{
		Indices: IndicesConfig{
			ShapleyExact:        true,
			ShapleyMC:           false,
			NumSamples:          1000,
			Banzhaf:             true,
			Normalize:           true,
			ShapleyInteraction:  true,
			BanzhafInteraction:  true,
			OrdinalBanzhaf:      true,
			LexCel:              true,
			GroupOrdinalBanzhaf: true,
			GroupLexCel:         true,
		},
		Ranking: RankingConfig{
			Mode:       model.RankDense,
			Descending: true,
		},
		Axioms: AxiomsConfig{
			SwimmyEnabled: true,
			SwimmyRules:   append([]string(nil), allRules...),
			SadaEnabled:   true,
			SadaRules:     append([]string(nil), allRules...),
		},
		Workers: runtime.NumCPU(),
		Seed:    1,
	}
}

// Validate checks the configuration for internal consistency, returning
// an InconsistentConfig error for anything unresolvable before any game
// runs, per the error handling design.
func (c Config) Validate() error {
	if c.Ranking.Mode != model.RankDense && c.Ranking.Mode != model.RankBin {
		return cgerrors.New(cgerrors.InconsistentConfig, "unknown ranking mode %q", c.Ranking.Mode)
	}
	if c.Ranking.Mode == model.RankBin && c.Ranking.BinWidth <= 0 {
		return cgerrors.New(cgerrors.InconsistentConfig, "bin ranking mode requires a positive bin_width")
	}
	if c.Indices.ShapleyMC && c.Indices.NumSamples <= 0 {
		return cgerrors.New(cgerrors.InconsistentConfig, "shapley_mc requires num_samples > 0")
	}
	if c.Workers <= 0 {
		return cgerrors.New(cgerrors.InconsistentConfig, "workers must be > 0")
	}
	if c.Axioms.SwimmyEnabled {
		if err := validateRuleNames("swimmy", c.Axioms.SwimmyRules); err != nil {
			return err
		}
	}
	if c.Axioms.SadaEnabled {
		if err := validateRuleNames("sada", c.Axioms.SadaRules); err != nil {
			return err
		}
	}
	return nil
}

func validateRuleNames(evaluator string, rules []string) error {
	resolvable := 0
	for _, r := range rules {
		if !knownRules[r] {
			return cgerrors.New(cgerrors.InconsistentConfig, "%s: unknown rule %q", evaluator, r)
		}
		resolvable++
	}
	if resolvable == 0 {
		return cgerrors.New(cgerrors.InconsistentConfig, "%s enabled but no rules resolvable", evaluator)
	}
	return nil
}

// Log emits the resolved configuration at a structured debug level, in
// the style of the teacher's AgentConfig.Log().
func (c Config) Log() {
	klog.V(2).InfoS("engine config",
		"shapleyExact", c.Indices.ShapleyExact,
		"shapleyMC", c.Indices.ShapleyMC,
		"numSamples", c.Indices.NumSamples,
		"banzhaf", c.Indices.Banzhaf,
		"normalize", c.Indices.Normalize,
		"rankingMode", c.Ranking.Mode,
		"binWidth", c.Ranking.BinWidth,
		"descending", c.Ranking.Descending,
		"workers", c.Workers,
		"seed", c.Seed,
		"swimmyEnabled", c.Axioms.SwimmyEnabled,
		"sadaEnabled", c.Axioms.SadaEnabled,
	)
}
