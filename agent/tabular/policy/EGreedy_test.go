package policy

import (
	"testing"

	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment/gridworld"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newTestEnv(t *testing.T) env.Environment {
	environment, _, err := gridworld.NewConfig().Create(42)
	require.NoError(t, err)
	return environment
}

func stepAt(row, col int) ts.TimeStep {
	obs := mat.NewVecDense(2, []float64{float64(row), float64(col)})
	return ts.New(ts.First, 0, 1.0, obs, 0)
}

func TestNewEGreedy(t *testing.T) {
	environment := newTestEnv(t)
	p := NewEGreedy(0.1, 42, environment)

	assert.Equal(t, 25, p.Table().States())
	assert.Equal(t, 4, p.Table().Actions())
	assert.Equal(t, 0.1, p.Epsilon())
}

func TestGreedySelection(t *testing.T) {
	environment := newTestEnv(t)

	t.Run("zero epsilon always selects the argmax", func(t *testing.T) {
		p := NewGreedy(42, environment)
		p.Table().Set(7, 2, 1.0)

		for i := 0; i < 100; i++ {
			action := p.SelectAction(stepAt(1, 2))
			assert.Equal(t, 2.0, action.AtVec(0))
		}
	})

	t.Run("ties break to the lowest action index", func(t *testing.T) {
		p := NewGreedy(42, environment)
		p.Table().Set(7, 1, 3.0)
		p.Table().Set(7, 3, 3.0)

		for i := 0; i < 100; i++ {
			action := p.SelectAction(stepAt(1, 2))
			assert.Equal(t, 1.0, action.AtVec(0))
		}
	})

	t.Run("selection in one state ignores other states", func(t *testing.T) {
		p := NewGreedy(42, environment)
		p.Table().Set(7, 2, 5.0)
		p.Table().Set(8, 1, 50.0)

		action := p.SelectAction(stepAt(1, 2))
		assert.Equal(t, 2.0, action.AtVec(0))
	})
}

func TestExploration(t *testing.T) {
	environment := newTestEnv(t)

	t.Run("epsilon one explores uniformly", func(t *testing.T) {
		p := NewEGreedy(1.0, 42, environment)
		p.Table().Set(0, 3, 10.0)

		const trials = 8000
		counts := make([]int, 4)
		for i := 0; i < trials; i++ {
			counts[int(p.SelectAction(stepAt(0, 0)).AtVec(0))]++
		}

		for a, count := range counts {
			assert.InDelta(t, trials/4, count, 200,
				"action %d selected %d times", a, count)
		}
	})

	t.Run("epsilon splits greedy and random selection", func(t *testing.T) {
		epsilon := 0.1
		p := NewEGreedy(epsilon, 42, environment)
		p.Table().Set(0, 1, 10.0)

		const trials = 5000
		greedy := 0
		for i := 0; i < trials; i++ {
			if int(p.SelectAction(stepAt(0, 0)).AtVec(0)) == 1 {
				greedy++
			}
		}

		expected := (1 - epsilon + epsilon/4) * trials
		assert.InDelta(t, expected, float64(greedy), 100)
	})
}

func TestSeededSelectionIsDeterministic(t *testing.T) {
	environment := newTestEnv(t)

	first := NewEGreedy(0.3, 91, environment)
	second := NewEGreedy(0.3, 91, environment)
	first.Table().Set(7, 2, 1.0)
	second.Table().Set(7, 2, 1.0)

	for i := 0; i < 200; i++ {
		a := first.SelectAction(stepAt(1, 2)).AtVec(0)
		b := second.SelectAction(stepAt(1, 2)).AtVec(0)
		assert.Equal(t, a, b)
	}
}

func TestSetTable(t *testing.T) {
	environment := newTestEnv(t)

	t.Run("policies can share action values", func(t *testing.T) {
		behaviour := NewEGreedy(0.1, 42, environment)
		target := NewGreedy(42, environment)
		require.NoError(t, target.SetTable(behaviour.Table()))

		behaviour.Table().Set(7, 2, 1.0)
		action := target.SelectAction(stepAt(1, 2))
		assert.Equal(t, 2.0, action.AtVec(0))
	})

	t.Run("mismatched shapes are rejected", func(t *testing.T) {
		p := NewEGreedy(0.1, 42, environment)

		small := gridworld.Config{
			Rows:            2,
			Cols:            2,
			Goal:            gridworld.Position{Row: 1, Col: 1},
			Start:           gridworld.Position{Row: 0, Col: 0},
			GoalReward:      1,
			StepReward:      -1,
			ObstaclePenalty: -1,
			EpisodeCutoff:   10,
			Discount:        1.0,
		}
		smallEnv, _, err := small.Create(42)
		require.NoError(t, err)

		other := NewEGreedy(0.1, 42, smallEnv)
		assert.Error(t, p.SetTable(other.Table()))
	})
}

func TestSetEpsilon(t *testing.T) {
	environment := newTestEnv(t)
	p := NewEGreedy(0.5, 42, environment)
	p.Table().Set(7, 2, 1.0)

	p.SetEpsilon(0)
	assert.Zero(t, p.Epsilon())

	for i := 0; i < 50; i++ {
		assert.Equal(t, 2.0, p.SelectAction(stepAt(1, 2)).AtVec(0))
	}
}
