// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes end. An Ender that ends an episode
// modifies the final TimeStep in place, setting its StepType field to
// timestep.Last and stamping the cause of the ending with SetEnd.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme and termination conditions for taking
// actions in some environment. Tasks also determine the starting state
// distribution of the environment through an embedded Starter.
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking an action in some state,
	// resulting in the transition to nextState
	GetReward(state, action, nextState mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	// over all timesteps
	Min() float64
	Max() float64

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a Task to
// complete
type Environment interface {
	Task

	// Reset resets the environment between episodes and returns the
	// first timestep of the new episode
	Reset() (timestep.TimeStep, error)

	// Step takes one environmental step given an action, returning the
	// next timestep and whether that timestep is the last in the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	// CurrentTimeStep returns the last timestep of the environment
	CurrentTimeStep() timestep.TimeStep

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}
