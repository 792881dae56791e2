// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes what caused an episode to end. Enders that end an
// episode stamp the final TimeStep with an EndType so that callers can
// distinguish a goal termination from a step-limit cutoff.
type EndType int

const (
	// NotEnded denotes a TimeStep that did not end its episode
	NotEnded EndType = iota

	// TerminalStateReached denotes an episode that ended by reaching
	// a terminal state of the environment
	TerminalStateReached

	// Timeout denotes an episode that was cut off by a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "NotEnded"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	endType     EndType
}

func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{t, r, d, o, n, NotEnded}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records the cause of an episode ending on the TimeStep. Enders
// call SetEnd when they end an episode.
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndingType returns the recorded cause of the episode ending, or
// NotEnded if the TimeStep did not end its episode.
func (t TimeStep) EndingType() EndType {
	return t.endType
}

// TerminatedAtGoal returns whether the TimeStep ended its episode by
// reaching a terminal state, as opposed to being cut off by a step limit.
func (t TimeStep) TerminatedAtGoal() bool {
	return t.endType == TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
