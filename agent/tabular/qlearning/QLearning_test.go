package qlearning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qtable"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment/gridworld"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

func obs(row, col float64) *mat.VecDense {
	return mat.NewVecDense(2, []float64{row, col})
}

func action(a int) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}

func newTestEnv(t *testing.T) env.Environment {
	environment, _, err := gridworld.NewConfig().Create(42)
	require.NoError(t, err)
	return environment
}

func TestQLearnerUpdate(t *testing.T) {
	dims := []int{5, 5}

	t.Run("applies the update rule exactly", func(t *testing.T) {
		table := qtable.New(25, 4)
		learner := NewQLearner(table, dims, 0.5, 0.9)

		// State (1, 0) has row index 5 and a maximal action value of 4
		table.Set(5, 2, 4.0)
		table.Set(5, 0, 1.0)

		require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(0, 0), 0)))
		require.NoError(t, learner.Observe(action(3), ts.New(ts.Mid, -1,
			1, obs(1, 0), 1)))
		require.NoError(t, learner.Step())

		// Q(s, a) ← 0 + 0.5 * (-1 + 0.9*4 - 0) = 1.3
		assert.InDelta(t, 1.3, table.At(0, 3), 1e-12)

		// Only the observed state-action pair changes
		assert.Zero(t, table.At(0, 0))
		assert.Zero(t, table.At(0, 1))
		assert.Zero(t, table.At(0, 2))
	})

	t.Run("zero learning rate leaves the table unchanged", func(t *testing.T) {
		table := qtable.New(25, 4)
		learner := NewQLearner(table, dims, 0.0, 0.9)

		require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(0, 0), 0)))
		for i := 1; i <= 5; i++ {
			require.NoError(t, learner.Observe(action(i%4), ts.New(ts.Mid,
				-1, 1, obs(float64(i%5), 0), i)))
			require.NoError(t, learner.Step())
		}

		assert.True(t, mat.Equal(table.Matrix(), qtable.New(25, 4).Matrix()))
	})

	t.Run("terminal update target reduces to the reward", func(t *testing.T) {
		table := qtable.New(25, 4)
		learner := NewQLearner(table, dims, 0.1, 0.9)

		// Enter the goal at (4, 4) from (3, 4). The goal state's
		// action values are all zero so no value is bootstrapped.
		last := ts.New(ts.Last, 100, 1, obs(4, 4), 9)
		require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(3, 4), 0)))
		require.NoError(t, learner.Observe(action(1), last))
		require.NoError(t, learner.Step())

		state := qtable.Index(obs(3, 4), dims)
		assert.InDelta(t, 10.0, table.At(state, 1), 1e-12)
	})

	t.Run("blocked moves bootstrap from the unchanged state", func(t *testing.T) {
		table := qtable.New(25, 4)
		learner := NewQLearner(table, dims, 0.1, 0.9)

		// Moving left from (0, 0) leaves the position unchanged, so
		// the update bootstraps from state (0, 0) itself
		table.Set(0, 0, 2.0)

		require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(0, 0), 0)))
		require.NoError(t, learner.Observe(action(2), ts.New(ts.Mid, -10,
			1, obs(0, 0), 1)))
		require.NoError(t, learner.Step())

		// Q(s, Left) ← 0 + 0.1 * (-10 + 0.9*2 - 0) = -0.82
		assert.InDelta(t, -0.82, table.At(0, 2), 1e-12)
	})

	t.Run("rejects non-first timesteps in ObserveFirst", func(t *testing.T) {
		learner := NewQLearner(qtable.New(25, 4), dims, 0.1, 0.9)

		err := learner.ObserveFirst(ts.New(ts.Mid, -1, 1, obs(0, 0), 3))
		assert.Error(t, err)
		assert.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(0, 0), 0)))
	})

	t.Run("rejects multi-dimensional actions", func(t *testing.T) {
		learner := NewQLearner(qtable.New(25, 4), dims, 0.1, 0.9)

		require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
			obs(0, 0), 0)))
		err := learner.Observe(mat.NewVecDense(2, []float64{1, 2}),
			ts.New(ts.Mid, -1, 1, obs(1, 0), 1))
		assert.Error(t, err)
	})
}

func TestQLearnerPropagatesGoalReward(t *testing.T) {
	// Repeatedly experiencing (3, 4) → (4, 4) → goal and then
	// (2, 4) → (3, 4) should back up a discounted goal reward two
	// states from the goal
	dims := []int{5, 5}
	table := qtable.New(25, 4)
	learner := NewQLearner(table, dims, 1.0, 0.9)

	require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
		obs(3, 4), 0)))
	require.NoError(t, learner.Observe(action(1), ts.New(ts.Last, 100, 1,
		obs(4, 4), 1)))
	require.NoError(t, learner.Step())
	learner.EndEpisode()

	require.NoError(t, learner.ObserveFirst(ts.New(ts.First, 0, 1,
		obs(2, 4), 0)))
	require.NoError(t, learner.Observe(action(1), ts.New(ts.Mid, -1, 1,
		obs(3, 4), 1)))
	require.NoError(t, learner.Step())

	next := qtable.Index(obs(3, 4), dims)
	state := qtable.Index(obs(2, 4), dims)
	require.InDelta(t, 100.0, table.At(next, 1), 1e-12)

	// Q ← 0 + 1.0 * (-1 + 0.9*100 - 0) = 89
	assert.InDelta(t, 89.0, table.At(state, 1), 1e-12)
}

func TestConfigValidate(t *testing.T) {
	valid := NewConfig()
	require.NoError(t, valid.Validate())
	assert.Equal(t, DefaultEpsilon, valid.Epsilon)
	assert.Equal(t, DefaultLearningRate, valid.LearningRate)
	assert.Equal(t, DefaultDiscountFactor, valid.DiscountFactor)

	tests := []struct {
		name   string
		config Config
	}{
		{"negative epsilon", Config{-0.1, 0.1, 0.9}},
		{"epsilon above one", Config{1.1, 0.1, 0.9}},
		{"zero learning rate", Config{0.1, 0.0, 0.9}},
		{"learning rate above one", Config{0.1, 1.5, 0.9}},
		{"negative discount factor", Config{0.1, 0.1, -0.9}},
		{"discount factor above one", Config{0.1, 0.1, 1.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.config.Validate())
		})
	}
}

func TestConfigCreateAgent(t *testing.T) {
	environment := newTestEnv(t)

	config := NewConfig()
	a, err := config.CreateAgent(environment, 14)
	require.NoError(t, err)
	assert.True(t, config.ValidAgent(a))

	_, err = Config{Epsilon: -1.0}.CreateAgent(environment, 14)
	assert.Error(t, err)
}

func TestQLearningModes(t *testing.T) {
	environment := newTestEnv(t)

	config := Config{Epsilon: 1.0, LearningRate: 0.1, DiscountFactor: 0.9}
	a, err := New(environment, config, 14)
	require.NoError(t, err)
	q := a.(*QLearning)

	// Make Down the greedy action at the start state
	q.Table().Set(0, 1, 5.0)
	first := ts.New(ts.First, 0, 1, obs(0, 0), 0)

	t.Run("eval mode selects greedily", func(t *testing.T) {
		q.Eval()
		require.True(t, q.IsEval())
		for i := 0; i < 50; i++ {
			selected := q.SelectAction(first)
			assert.Equal(t, 1.0, selected.AtVec(0))
		}
	})

	t.Run("train mode explores", func(t *testing.T) {
		q.Train()
		require.False(t, q.IsEval())

		seen := make(map[float64]bool)
		for i := 0; i < 200; i++ {
			seen[q.SelectAction(first).AtVec(0)] = true
		}
		assert.GreaterOrEqual(t, len(seen), 2)
	})

	t.Run("exploration rate is adjustable", func(t *testing.T) {
		assert.Equal(t, 1.0, q.Epsilon())
		q.SetEpsilon(0.0)
		assert.Equal(t, 0.0, q.Epsilon())

		q.Train()
		for i := 0; i < 50; i++ {
			assert.Equal(t, 1.0, q.SelectAction(first).AtVec(0))
		}
	})
}

func TestQLearningLearnerUpdatesSharedTable(t *testing.T) {
	environment := newTestEnv(t)

	a, err := New(environment, NewConfig(), 14)
	require.NoError(t, err)
	q := a.(*QLearning)

	require.NoError(t, q.ObserveFirst(ts.New(ts.First, 0, 1, obs(3, 4), 0)))
	require.NoError(t, q.Observe(action(1), ts.New(ts.Last, 100, 1,
		obs(4, 4), 1)))
	require.NoError(t, q.Step())

	state := qtable.Index(obs(3, 4), []int{5, 5})
	require.InDelta(t, 10.0, q.Table().At(state, 1), 1e-12)

	// The updated values drive greedy selection in eval mode
	q.Eval()
	selected := q.SelectAction(ts.New(ts.Mid, -1, 1, obs(3, 4), 1))
	assert.Equal(t, 1.0, selected.AtVec(0))
}
