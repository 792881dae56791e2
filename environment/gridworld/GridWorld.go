// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"
	"strings"

	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"github.com/logrusorgru/aurora"
	"gonum.org/v1/gonum/mat"
)

// Action is a movement direction in a gridworld
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of movement directions in a gridworld
const NumActions int = 4

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Position is a cell in a gridworld. Row 0 is the top row and column 0
// is the leftmost column.
type Position struct {
	Row int
	Col int
}

// Move returns the cell reached by taking an action from the Position.
// The returned cell may be out of bounds or blocked; callers decide how
// such moves are treated.
func (p Position) Move(a Action) Position {
	switch a {
	case Up:
		return Position{Row: p.Row - 1, Col: p.Col}
	case Down:
		return Position{Row: p.Row + 1, Col: p.Col}
	case Left:
		return Position{Row: p.Row, Col: p.Col - 1}
	case Right:
		return Position{Row: p.Row, Col: p.Col + 1}
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// vector converts a Position to its observation vector (row, col)
func (p Position) vector() *mat.VecDense {
	return mat.NewVecDense(2, []float64{float64(p.Row), float64(p.Col)})
}

// positionOf converts an observation vector (row, col) to a Position
func positionOf(v mat.Vector) Position {
	return Position{Row: int(v.AtVec(0)), Col: int(v.AtVec(1))}
}

// GridWorld implements a rectangular grid of cells on which an agent
// moves between adjacent cells. Some cells are blocked by obstacles.
// Actions that would move the agent off the grid or onto an obstacle
// leave the agent in place, but still consume a timestep and still
// accrue the reward of the attempted move.
//
// State observations are 2-dimensional vectors (row, col) of the
// agent's current cell.
type GridWorld struct {
	env.Task
	rows, cols  int
	obstacles   map[Position]bool
	position    Position
	discount    float64
	currentStep ts.TimeStep
}

// New creates a new GridWorld with r rows and c columns, task t, blocked
// cells obstacles, and discount factor discount. The returned environment
// starts ready to use, with the first timestep of the first episode.
func New(t env.Task, r, c int, obstacles []Position,
	discount float64) (env.Environment, ts.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: dimensions (%d, %d) "+
			"must be positive", r, c)
	}

	blocked := make(map[Position]bool, len(obstacles))
	for _, o := range obstacles {
		if o.Row < 0 || o.Row >= r || o.Col < 0 || o.Col >= c {
			return nil, ts.TimeStep{}, fmt.Errorf("new: obstacle %v out of "+
				"bounds (%d, %d)", o, r, c)
		}
		if t.AtGoal(o.vector()) {
			return nil, ts.TimeStep{}, fmt.Errorf("new: obstacle %v "+
				"coincides with the goal", o)
		}
		blocked[o] = true
	}

	g := &GridWorld{
		Task:      t,
		rows:      r,
		cols:      c,
		obstacles: blocked,
		discount:  discount,
	}

	firstStep, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	return g, firstStep, nil
}

// Reset resets the environment between episodes, placing the agent at a
// cell drawn from the environment Starter and returning the first
// timestep of the new episode
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := positionOf(g.Start())
	if !g.IsValidPosition(start) {
		return ts.TimeStep{}, fmt.Errorf("reset: start %v is not a valid "+
			"position", start)
	}

	g.position = start
	step := ts.New(ts.First, 0, g.discount, start.vector(), 0)
	g.currentStep = step

	return step, nil
}

// Step applies a movement action, returning the next timestep and
// whether that timestep is the last in the episode. The reward of a
// timestep is determined by the cell the action attempted to reach, so
// a move into an obstacle or off the grid accrues the blocked-move
// penalty even though the agent stays in place.
func (g *GridWorld) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}

	a := Action(action.AtVec(0))
	if a < Up || a > Right {
		return ts.TimeStep{}, false, fmt.Errorf("step: no such action %d",
			int(a))
	}

	candidate := g.position.Move(a)
	reward := g.GetReward(g.position.vector(), action, candidate.vector())

	next := candidate
	if !g.IsValidPosition(candidate) {
		next = g.position
	}
	g.position = next

	nextStep := ts.New(ts.Mid, reward, g.discount, next.vector(),
		g.currentStep.Number+1)
	last := g.End(&nextStep)
	g.currentStep = nextStep

	return nextStep, last, nil
}

// CurrentTimeStep returns the last timestep of the environment
func (g *GridWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// IsValidPosition returns whether a cell is within the grid bounds and
// not blocked by an obstacle
func (g *GridWorld) IsValidPosition(p Position) bool {
	inBounds := p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
	return inBounds && !g.obstacles[p]
}

// Dims returns the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.rows, g.cols
}

// CurrentPosition returns the cell the agent currently occupies
func (g *GridWorld) CurrentPosition() Position {
	return g.position
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{0, 0})
	upperBound := mat.NewVecDense(2, []float64{
		float64(g.rows - 1),
		float64(g.cols - 1),
	})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(NumActions - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (g *GridWorld) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Discrete)
}

// String renders the grid with the agent's cell marked A, the goal
// marked G, and obstacles marked #
func (g *GridWorld) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p := Position{Row: r, Col: c}
			switch {
			case p == g.position:
				fmt.Fprint(&b, aurora.Green(" A "))
			case g.AtGoal(p.vector()):
				fmt.Fprint(&b, aurora.Blue(" G "))
			case g.obstacles[p]:
				fmt.Fprint(&b, aurora.Red(" # "))
			default:
				fmt.Fprint(&b, aurora.White(" . "))
			}
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
