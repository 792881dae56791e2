// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qtable"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over tabular action values.
// With probability 1-ε the policy selects the greedy action, and with
// probability ε it selects an action uniformly at random. Greedy ties
// are broken in favour of the lowest action index, so an EGreedy policy
// with ε = 0 is fully deterministic.
type EGreedy struct {
	table   *qtable.QTable
	dims    []int
	epsilon float64
	source  rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where e = epsilon is the
// probability with which a random action is selected. The policy owns a
// new zero-valued QTable sized to the argument environment's
// observation and action spaces.
func NewEGreedy(e float64, seed uint64, environment env.Environment) *EGreedy {
	source := rand.NewSource(seed)

	// Ensure actions are 1-dimensional
	if environment.ActionSpec().Shape.Len() != 1 {
		panic("EGreedy can only be used with 1-dimensional actions")
	}

	// Ensure actions and observations are discrete
	if environment.ActionSpec().Cardinality != env.Discrete {
		panic("EGreedy can only be used with discrete actions")
	}
	if environment.ObservationSpec().Cardinality != env.Discrete {
		panic("EGreedy can only be used with discrete observations")
	}

	// Calculate the number of actions
	actions := int(environment.ActionSpec().UpperBound.AtVec(0)) + 1

	// Calculate the number of values each observation feature can take
	// and the total number of states
	dims := stateDims(environment)
	states := 1
	for _, d := range dims {
		states *= d
	}

	table := qtable.New(states, actions)

	return &EGreedy{table, dims, e, source}
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t ts.TimeStep) *mat.VecDense {
	state := qtable.Index(t.Observation, p.dims)

	// Find the greedy action
	greedyAction := p.table.GreedyAction(state)

	// Calculate the ε probability of choosing any action at random
	numActions := p.table.Actions()
	prob := p.epsilon / float64(numActions)
	actionProbabilites := make([]float64, numActions)
	for i := range actionProbabilites {
		actionProbabilites[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilites[greedyAction] += 1.0 - p.epsilon

	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(actionProbabilites, p.source)

	// Sample an action given the action probabilites and return
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Table returns the action values of the EGreedy policy
func (p *EGreedy) Table() *qtable.QTable {
	return p.table
}

// SetTable sets the action value pointer to point to a new QTable. The
// SetTable function can take the output of a call to Table() on another
// policy directly, so that both policies share action values.
func (p *EGreedy) SetTable(table *qtable.QTable) error {
	if table.States() != p.table.States() ||
		table.Actions() != p.table.Actions() {
		return fmt.Errorf("setTable: table shape (%d, %d) does not match "+
			"(%d, %d)", table.States(), table.Actions(), p.table.States(),
			p.table.Actions())
	}

	p.table = table
	return nil
}

// ObservationDims returns the number of values each observation
// feature of the policy's environment can take
func (p *EGreedy) ObservationDims() []int {
	return p.dims
}

// SetEpsilon sets the exploration rate of the policy
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Epsilon returns the exploration rate of the policy
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// stateDims returns the number of values each observation feature of an
// environment can take
func stateDims(environment env.Environment) []int {
	spec := environment.ObservationSpec()
	dims := make([]int, spec.Shape.Len())
	for i := range dims {
		dims[i] = int(spec.UpperBound.AtVec(i)) + 1
	}
	return dims
}
