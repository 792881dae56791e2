package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qtable"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

// QLearner implements the update functionality of the Q-Learning
// algorithm. The QLearner caches the latest transition observed from
// an environment and uses it to update a table of action values
// towards the greedy target:
//
//	Q(s, a) ← Q(s, a) + α * (r + γ * max_a' Q(s', a') - Q(s, a))
//
// The QLearner updates the same table that the agent's behaviour
// policy selects actions from, so updates are reflected in behaviour
// immediately.
type QLearner struct {
	table *qtable.QTable
	dims  []int

	// Latest transition
	step     ts.TimeStep
	action   int
	nextStep ts.TimeStep

	learningRate float64
	discount     float64
}

// NewQLearner returns a new QLearner that updates table. The dims
// argument determines how observations are converted to table rows
// and should hold the number of values each observation feature can
// take.
func NewQLearner(table *qtable.QTable, dims []int, learningRate,
	discount float64) *QLearner {
	return &QLearner{
		table:        table,
		dims:         dims,
		learningRate: learningRate,
		discount:     discount,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep "+
			"%v is not first timestep of episode", t.Number)
	}

	q.step = ts.TimeStep{}
	q.nextStep = t
	return nil
}

// Observe observes and records any timestep other than the first
// timestep of an episode
func (q *QLearner) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: cannot observe "+
			"multi-dimensional action (action dim = %d)", action.Len())
	}

	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep
	return nil
}

// Step updates the action values of the QLearner's table using the
// latest observed transition. Updates are applied on every
// transition, including transitions into terminal states. No action
// ever leaves a goal state, so its action values stay at their
// initial zeros and the update target at the goal reduces to the
// goal reward.
func (q *QLearner) Step() error {
	state := qtable.Index(q.step.Observation, q.dims)
	nextState := qtable.Index(q.nextStep.Observation, q.dims)

	// Construct the update target from the highest-valued action in
	// the next state
	target := q.nextStep.Reward + q.discount*q.table.MaxValue(nextState)

	current := q.table.At(state, q.action)
	q.table.Set(state, q.action, current+q.learningRate*(target-current))
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {
	q.step = ts.TimeStep{}
	q.nextStep = ts.TimeStep{}
	q.action = 0
}

// LearningRate returns the step size of the QLearner
func (q *QLearner) LearningRate() float64 {
	return q.learningRate
}

// Discount returns the discount factor of the QLearner
func (q *QLearner) Discount() float64 {
	return q.discount
}
