package rules

import (
	"fmt"
)

// Step represents the steps of a goldfish turn. Combat and second main are
// deliberately absent: with no opponent there is nothing to attack and the
// greedy heuristic spends everything in the first main phase.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:   "UNTAP",
	StepUpkeep:  "UPKEEP",
	StepDraw:    "DRAW",
	StepMain:    "MAIN",
	StepCleanup: "CLEANUP",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// turnSequence is the fixed turn structure. Strictly ordered, never walked
// backwards.
var turnSequence = []Step{
	StepUntap,
	StepUpkeep,
	StepDraw,
	StepMain,
	StepCleanup,
}

// TurnManager tracks turn progression through the fixed step sequence.
type TurnManager struct {
	orderIndex int
	turnNumber int
}

// NewTurnManager creates a new turn manager initialized at turn 1, untap step.
func NewTurnManager() *TurnManager {
	return &TurnManager{
		orderIndex: 0,
		turnNumber: 1,
	}
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return turnSequence[tm.orderIndex]
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// AdvanceStep advances to the next step in the turn structure. When the end
// of the structure is reached, the turn number is incremented and the
// sequence restarts at untap.
func (tm *TurnManager) AdvanceStep() Step {
	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
	}
	return tm.CurrentStep()
}
