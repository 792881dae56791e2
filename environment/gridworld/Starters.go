package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SingleStart starts every episode at the same fixed cell
type SingleStart struct {
	position Position
}

// NewSingleStart returns a Starter which always starts episodes at
// cell p in a grid with r rows and c columns
func NewSingleStart(p Position, r, c int) (env.Starter, error) {
	if p.Row < 0 || p.Row >= r || p.Col < 0 || p.Col >= c {
		return nil, fmt.Errorf("singleStart: start %v out of bounds "+
			"(%d, %d)", p, r, c)
	}

	return &SingleStart{p}, nil
}

// Start returns the starting cell as an observation vector
func (s *SingleStart) Start() *mat.VecDense {
	return s.position.vector()
}

// RandomStart starts episodes at cells drawn uniformly at random from
// the unblocked cells of a grid. Cells listed in the exclusion set,
// usually the obstacles and the goal, are never chosen.
type RandomStart struct {
	cells []Position
	dist  distuv.Categorical
}

// NewRandomStart returns a Starter which samples starting cells
// uniformly from the cells of an r by c grid not listed in exclude.
// Sampling is seeded so that starting cells are reproducible.
func NewRandomStart(r, c int, exclude []Position, seed uint64) (env.Starter,
	error) {
	excluded := make(map[Position]bool, len(exclude))
	for _, p := range exclude {
		excluded[p] = true
	}

	var cells []Position
	for row := 0; row < r; row++ {
		for col := 0; col < c; col++ {
			p := Position{Row: row, Col: col}
			if !excluded[p] {
				cells = append(cells, p)
			}
		}
	}

	if len(cells) == 0 {
		return nil, fmt.Errorf("randomStart: no cells left to start from")
	}

	// Uniform categorical over the remaining cells
	weights := make([]float64, len(cells))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	source := rand.NewSource(seed)
	dist := distuv.NewCategorical(weights, source)

	return &RandomStart{cells, dist}, nil
}

// Start returns a randomly drawn starting cell as an observation vector
func (s *RandomStart) Start() *mat.VecDense {
	return s.cells[int(s.dist.Rand())].vector()
}
