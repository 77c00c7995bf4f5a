// Package cgerrors defines the categorized error taxonomy the engine uses
// to report failures to its host, per the error handling design: every
// failure that crosses a package boundary is either a bare Go error (caught
// internally) or a *GameError carrying one of the fixed categories below.
package cgerrors

import "fmt"

// Category classifies a failure so the host can decide whether to abort
// the batch, skip a game, or just record a warning.
type Category int

const (
	// InputSchema covers missing required columns, duplicate coalition
	// rows, or non-integer ranks. Always fatal before any game runs.
	InputSchema Category = iota
	// GameSizeExceeded: n > 12 with an exact cardinal index requested.
	GameSizeExceeded
	// InconsistentConfig covers unresolvable configuration: rank
	// synthesis requested without a value column, bin mode without a
	// bin width, an unknown index name, or an axiom with no resolvable
	// rules. Fatal before any game runs.
	InconsistentConfig
	// NumericDegenerate covers recoverable numeric edge cases (e.g. a
	// zero Banzhaf normalization divisor). Never fatal; surfaced as a
	// warning alongside results.
	NumericDegenerate
	// Internal marks invariant violations — a bug signal, always fatal.
	Internal
)

func (c Category) String() string {
	switch c {
	case InputSchema:
		return "InputSchema"
	case GameSizeExceeded:
		return "GameSizeExceeded"
	case InconsistentConfig:
		return "InconsistentConfig"
	case NumericDegenerate:
		return "NumericDegenerate"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// GameError attaches a (scenario_id, game_id) key and a category to an
// underlying error, per the propagation policy: Internal failures attach
// the offending key and re-raise; NumericDegenerate is recorded as a
// diagnostic instead of aborting.
type GameError struct {
	ScenarioID string
	GameID     string
	Category   Category
	Err        error
}

func (e *GameError) Error() string {
	if e.ScenarioID == "" && e.GameID == "" {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: game (%s,%s): %v", e.Category, e.ScenarioID, e.GameID, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// New wraps err with a category, with no game key attached (used for
// batch-level failures caught before any game runs).
func New(cat Category, format string, args ...any) *GameError {
	return &GameError{Category: cat, Err: fmt.Errorf(format, args...)}
}

// ForGame wraps err with a category and the offending game's key.
func ForGame(scenarioID, gameID string, cat Category, err error) *GameError {
	return &GameError{ScenarioID: scenarioID, GameID: gameID, Category: cat, Err: err}
}

// IsFatalBeforeRun reports whether a category must be caught before any
// game is processed (InputSchema, InconsistentConfig) rather than
// attached per-game.
func IsFatalBeforeRun(cat Category) bool {
	return cat == InputSchema || cat == InconsistentConfig
}
