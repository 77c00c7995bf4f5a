package engine

import (
	"coopgame/pkg/assemble"
	"coopgame/pkg/cgerrors"
)

// Diagnostic is a per-game warning surfaced alongside results without
// aborting the batch (GameSizeExceeded skips, NumericDegenerate warns).
type Diagnostic struct {
	ScenarioID string
	GameID     string
	Category   cgerrors.Category
	Message    string
}

// Results is the full output of a Run: the two long-format index tables
// and the two axiom-report tables, accumulated across every game.
type Results struct {
	Individuals  []assemble.IndividualRow
	Coalitions   []assemble.CoalitionRow
	SwimmyAxioms []assemble.AxiomRow
	SadaAxioms   []assemble.AxiomRow
}
