package qtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestQTable(t *testing.T) {
	t.Run("new tables are zero valued", func(t *testing.T) {
		table := New(25, 4)

		assert.Equal(t, 25, table.States())
		assert.Equal(t, 4, table.Actions())
		for state := 0; state < table.States(); state++ {
			for action := 0; action < table.Actions(); action++ {
				assert.Zero(t, table.At(state, action))
			}
		}
	})

	t.Run("set and get round trip", func(t *testing.T) {
		table := New(25, 4)
		table.Set(12, 3, -4.5)

		assert.Equal(t, -4.5, table.At(12, 3))
		assert.Zero(t, table.At(12, 2))
	})

	t.Run("action values are copies", func(t *testing.T) {
		table := New(4, 2)
		table.Set(1, 0, 2.0)

		values := table.ActionValues(1)
		assert.Equal(t, []float64{2.0, 0.0}, values)

		values[0] = 99.0
		assert.Equal(t, 2.0, table.At(1, 0))
	})

	t.Run("string formats one state per row", func(t *testing.T) {
		table := New(2, 2)
		table.Set(0, 1, 1.5)

		str := table.String()
		assert.Contains(t, str, "1.5")
		assert.Equal(t, 1, strings.Count(str, "\n"))
	})
}

func TestGreedyAction(t *testing.T) {
	t.Run("picks the highest valued action", func(t *testing.T) {
		table := New(3, 4)
		table.Set(0, 2, 1.5)
		table.Set(0, 1, 0.5)

		assert.Equal(t, 2, table.GreedyAction(0))
		assert.Equal(t, 1.5, table.MaxValue(0))
	})

	t.Run("breaks ties by the lowest action index", func(t *testing.T) {
		table := New(3, 4)
		table.Set(1, 1, 3.0)
		table.Set(1, 3, 3.0)

		assert.Equal(t, 1, table.GreedyAction(1))
	})

	t.Run("all zero values pick the first action", func(t *testing.T) {
		table := New(3, 4)
		assert.Equal(t, 0, table.GreedyAction(2))
		assert.Zero(t, table.MaxValue(2))
	})
}

func TestIndex(t *testing.T) {
	dims := []int{5, 5}

	t.Run("maps row-major over the grid", func(t *testing.T) {
		assert.Equal(t, 0, Index(mat.NewVecDense(2, []float64{0, 0}), dims))
		assert.Equal(t, 4, Index(mat.NewVecDense(2, []float64{0, 4}), dims))
		assert.Equal(t, 5, Index(mat.NewVecDense(2, []float64{1, 0}), dims))
		assert.Equal(t, 24, Index(mat.NewVecDense(2, []float64{4, 4}), dims))
	})

	t.Run("is bijective over the observation space", func(t *testing.T) {
		seen := make(map[int]bool)
		for row := 0; row < dims[0]; row++ {
			for col := 0; col < dims[1]; col++ {
				obs := mat.NewVecDense(2, []float64{float64(row), float64(col)})
				index := Index(obs, dims)

				assert.GreaterOrEqual(t, index, 0)
				assert.Less(t, index, dims[0]*dims[1])
				assert.False(t, seen[index], "index %d mapped twice", index)
				seen[index] = true
			}
		}
	})
}
