// Package qlearning implements the tabular Q-Learning algorithm.
//
// Q-Learning is an off-policy temporal difference control algorithm.
// Agents in this package select actions with an ε-greedy behaviour
// policy while learning the action values of the greedy target
// policy. Both policies read from a single shared table of action
// values which the agent's learner updates in-place, so improvements
// to the action value estimates are reflected in behaviour
// immediately.
package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/policy"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qtable"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

// QLearning implements the tabular Q-Learning algorithm
type QLearning struct {
	agent.Learner
	behaviour *policy.EGreedy // ε-greedy
	target    *policy.EGreedy // Greedy
	eval      bool
	seed      uint64
}

// New creates and returns a new QLearning agent that acts on and
// learns about environment. The environment must have discrete
// observation and action specs so that action values can be stored
// in a table.
func New(environment env.Environment, config Config,
	seed uint64) (agent.Agent, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	behaviour := policy.NewEGreedy(config.Epsilon, seed, environment)
	target := policy.NewGreedy(seed, environment)

	// Behaviour and target policies share action values
	if err := target.SetTable(behaviour.Table()); err != nil {
		return nil, fmt.Errorf("new: could not share action values: %v",
			err)
	}

	learner := NewQLearner(behaviour.Table(), behaviour.ObservationDims(),
		config.LearningRate, config.DiscountFactor)

	return &QLearning{
		Learner:   learner,
		behaviour: behaviour,
		target:    target,
		seed:      seed,
	}, nil
}

// SelectAction selects an action from the behaviour policy in train
// mode and from the target policy in eval mode
func (q *QLearning) SelectAction(t ts.TimeStep) *mat.VecDense {
	if q.eval {
		return q.target.SelectAction(t)
	}
	return q.behaviour.SelectAction(t)
}

// Eval sets the agent into evaluation mode
func (q *QLearning) Eval() {
	q.eval = true
}

// Train sets the agent into training mode
func (q *QLearning) Train() {
	q.eval = false
}

// IsEval returns whether or not the agent is in evaluation mode
func (q *QLearning) IsEval() bool {
	return q.eval
}

// SetEpsilon sets the exploration rate of the behaviour policy
func (q *QLearning) SetEpsilon(e float64) {
	q.behaviour.SetEpsilon(e)
}

// Epsilon returns the exploration rate of the behaviour policy
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// Table returns the table of action values learned by the agent
func (q *QLearning) Table() *qtable.QTable {
	return q.behaviour.Table()
}
