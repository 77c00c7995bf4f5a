// Package axioms implements the synergy-comparison rules and the Swimmy /
// Synergy-Anasy Distinction (SADA) meta-evaluators that measure how well
// each rule's strict-preference ordering agrees with the axioms'
// predicted synergy direction (component 6 of the system overview).
package axioms

import "coopgame/pkg/kernel"

// Rule is a synergy-comparison rule: a small value object exposing two
// capabilities, per the rule-polymorphism design note — scoring a
// coalition and strictly preferring one coalition to another — so the
// meta-evaluators can iterate any registered rule uniformly without an
// inheritance hierarchy.
type Rule interface {
	Name() string
	Score(t kernel.Mask) float64
	Prefers(a, b kernel.Mask) bool
}
