package environment

import (
	"testing"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestStepLimit(t *testing.T) {
	ender := NewStepLimit(3)
	obs := mat.NewVecDense(2, []float64{0, 0})

	t.Run("does not end before the limit", func(t *testing.T) {
		step := timestep.New(timestep.Mid, -1, 1.0, obs, 2)
		assert.False(t, ender.End(&step))
		assert.True(t, step.Mid())
		assert.Equal(t, timestep.NotEnded, step.EndingType())
	})

	t.Run("ends at the limit with a timeout", func(t *testing.T) {
		step := timestep.New(timestep.Mid, -1, 1.0, obs, 3)
		assert.True(t, ender.End(&step))
		assert.True(t, step.Last())
		assert.Equal(t, timestep.Timeout, step.EndingType())
	})
}

func TestFunctionEnder(t *testing.T) {
	atOrigin := func(v *mat.VecDense) bool {
		return v.AtVec(0) == 0 && v.AtVec(1) == 0
	}
	ender := NewFunctionEnder(atOrigin, timestep.TerminalStateReached)

	t.Run("does not end when the function is false", func(t *testing.T) {
		step := timestep.New(timestep.Mid, -1, 1.0,
			mat.NewVecDense(2, []float64{1, 0}), 5)
		assert.False(t, ender.End(&step))
		assert.Equal(t, timestep.NotEnded, step.EndingType())
	})

	t.Run("ends with the configured end type", func(t *testing.T) {
		step := timestep.New(timestep.Mid, 0, 1.0,
			mat.NewVecDense(2, []float64{0, 0}), 5)
		assert.True(t, ender.End(&step))
		assert.True(t, step.Last())
		assert.Equal(t, timestep.TerminalStateReached, step.EndingType())
	})
}
