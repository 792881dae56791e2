// Package qtable implements dense tables of state-action values for
// tabular reinforcement learning agents
package qtable

import (
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/floatutils"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// QTable stores an action value estimate for every state-action pair
// of a discrete environment. Values are stored densely: every state has
// a row whether it was visited or not, and every action has a column.
// A new QTable starts with every action value equal to 0.
//
// The Learner and Policy of an agent share a single QTable, so updates
// made by the Learner are immediately reflected in the actions the
// Policy selects.
type QTable struct {
	values *mat.Dense
}

// New returns a new QTable with a row for each of states states and a
// column for each of actions actions
func New(states, actions int) *QTable {
	return &QTable{mat.NewDense(states, actions, nil)}
}

// States returns the number of states covered by the QTable
func (q *QTable) States() int {
	states, _ := q.values.Dims()
	return states
}

// Actions returns the number of actions covered by the QTable
func (q *QTable) Actions() int {
	_, actions := q.values.Dims()
	return actions
}

// At returns the action value estimate of taking action in state
func (q *QTable) At(state, action int) float64 {
	return q.values.At(state, action)
}

// Set records a new action value estimate for taking action in state
func (q *QTable) Set(state, action int, value float64) {
	q.values.Set(state, action, value)
}

// ActionValues returns the action value estimates of every action in
// state. The returned slice is a copy and may be freely modified.
func (q *QTable) ActionValues(state int) []float64 {
	return mat.Row(nil, state, q.values)
}

// GreedyAction returns the action with the highest action value
// estimate in state. Ties are broken deterministically in favour of the
// lowest action index.
func (q *QTable) GreedyAction(state int) int {
	_, indices := floatutils.MaxSlice(q.values.RawRowView(state))
	return indices[0]
}

// MaxValue returns the highest action value estimate in state
func (q *QTable) MaxValue(state int) float64 {
	max, _ := floatutils.MaxSlice(q.values.RawRowView(state))
	return max
}

// Matrix returns the action values as a states x actions matrix
func (q *QTable) Matrix() mat.Matrix {
	return q.values
}

// String returns the action values formatted as a matrix, one state per
// row
func (q *QTable) String() string {
	return matutils.Format(q.values)
}

// Index maps a discrete observation vector to its flat state index,
// given the number of values each observation feature can take. The
// mapping is bijective: each observation has exactly one index in
// [0, product(dims)).
func Index(obs mat.Vector, dims []int) int {
	index := 0
	for i := 0; i < obs.Len(); i++ {
		index = index*dims[i] + int(obs.AtVec(i))
	}
	return index
}
