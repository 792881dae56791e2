package gridworld

import (
	"fmt"

	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Goal represents the task of navigating to a single goal cell in a
// GridWorld while avoiding obstacles.
//
// Rewards are stepReward on each timestep, goalReward for the action
// which transitions the agent to the goal cell, and obstaclePenalty for
// any action that attempts to move onto an obstacle or off the grid.
//
// Episodes end when the agent reaches the goal cell or after a step
// limit.
type Goal struct {
	env.Starter
	goalEnder env.Ender
	stepEnder env.Ender

	goal       Position
	rows, cols int
	obstacles  map[Position]bool

	goalReward      float64
	stepReward      float64
	obstaclePenalty float64
}

// NewGoal creates and returns a new Goal task given a Starter, which
// determines the starting cells; the goal cell; the grid dimensions and
// blocked cells; the three reward constants; and the maximum number of
// episode steps.
func NewGoal(s env.Starter, goal Position, rows, cols int,
	obstacles []Position, goalReward, stepReward, obstaclePenalty float64,
	episodeSteps int) (*Goal, error) {
	if goal.Row < 0 || goal.Row >= rows || goal.Col < 0 || goal.Col >= cols {
		return nil, fmt.Errorf("newGoal: goal %v out of bounds (%d, %d)",
			goal, rows, cols)
	}

	blocked := make(map[Position]bool, len(obstacles))
	for _, o := range obstacles {
		if o == goal {
			return nil, fmt.Errorf("newGoal: goal %v coincides with an "+
				"obstacle", goal)
		}
		blocked[o] = true
	}

	if episodeSteps <= 0 {
		return nil, fmt.Errorf("newGoal: episode step limit %d must be "+
			"positive", episodeSteps)
	}

	atGoal := func(v *mat.VecDense) bool {
		return positionOf(v) == goal
	}
	goalEnder := env.NewFunctionEnder(atGoal, ts.TerminalStateReached)
	stepEnder := env.NewStepLimit(episodeSteps)

	return &Goal{
		Starter:         s,
		goalEnder:       goalEnder,
		stepEnder:       stepEnder,
		goal:            goal,
		rows:            rows,
		cols:            cols,
		obstacles:       blocked,
		goalReward:      goalReward,
		stepReward:      stepReward,
		obstaclePenalty: obstaclePenalty,
	}, nil
}

// GetReward returns the reward for taking an action in some state,
// resulting in the transition to nextState. The next state may be a
// blocked or out-of-bounds cell: such transitions accrue the obstacle
// penalty even though the environment leaves the agent in place.
func (g *Goal) GetReward(state, action, nextState mat.Vector) float64 {
	next := positionOf(nextState)

	switch {
	case next == g.goal:
		return g.goalReward
	case !g.valid(next):
		return g.obstaclePenalty
	default:
		return g.stepReward
	}
}

// AtGoal returns whether the argument state is the goal cell
func (g *Goal) AtGoal(state mat.Matrix) bool {
	return int(state.At(0, 0)) == g.goal.Row &&
		int(state.At(1, 0)) == g.goal.Col
}

// Min returns the minimum attainable reward over all timesteps
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.stepReward, g.goalReward,
		g.obstaclePenalty})
}

// Max returns the maximum attainable reward over all timesteps
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.stepReward, g.goalReward,
		g.obstaclePenalty})
}

// RewardSpec returns the reward specification of the Task
func (g *Goal) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Discrete)
}

// End determines if a timestep is the last in the episode, modifying
// its StepType and ending cause in place. Reaching the goal takes
// precedence over the step limit when both fire on the same timestep.
func (g *Goal) End(t *ts.TimeStep) bool {
	if end := g.goalEnder.End(t); end {
		return true
	}

	if end := g.stepEnder.End(t); end {
		return true
	}
	return false
}

func (g *Goal) String() string {
	return fmt.Sprintf("Goal %v", g.goal)
}

// valid returns whether a cell is within the grid bounds and not
// blocked by an obstacle
func (g *Goal) valid(p Position) bool {
	inBounds := p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
	return inBounds && !g.obstacles[p]
}
