package gridworld

import (
	"fmt"

	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

// Default configuration values. These describe a 5x5 grid with a wall
// of three obstacles between the start corner and the goal corner.
const (
	DefaultRows            int     = 5
	DefaultCols            int     = 5
	DefaultGoalReward      float64 = 100.0
	DefaultStepReward      float64 = -1.0
	DefaultObstaclePenalty float64 = -10.0
	DefaultEpisodeCutoff   int     = 100
	DefaultDiscount        float64 = 1.0
)

// Config implements a specific configuration of a GridWorld and its
// Goal task. Config is JSON serializable.
type Config struct {
	Rows      int
	Cols      int
	Obstacles []Position
	Goal      Position
	Start     Position

	// RandomStart draws each episode's starting cell uniformly from
	// the unblocked, non-goal cells instead of using Start
	RandomStart bool

	GoalReward      float64
	StepReward      float64
	ObstaclePenalty float64

	// EpisodeCutoff is the step limit after which episodes are cut off
	EpisodeCutoff int

	Discount float64
}

// NewConfig returns the default GridWorld configuration
func NewConfig() Config {
	return Config{
		Rows: DefaultRows,
		Cols: DefaultCols,
		Obstacles: []Position{
			{Row: 1, Col: 1},
			{Row: 1, Col: 2},
			{Row: 1, Col: 3},
		},
		Goal:            Position{Row: 4, Col: 4},
		Start:           Position{Row: 0, Col: 0},
		GoalReward:      DefaultGoalReward,
		StepReward:      DefaultStepReward,
		ObstaclePenalty: DefaultObstaclePenalty,
		EpisodeCutoff:   DefaultEpisodeCutoff,
		Discount:        DefaultDiscount,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("dimensions (%d, %d) must be positive", c.Rows,
			c.Cols)
	}

	if c.EpisodeCutoff <= 0 {
		return fmt.Errorf("episode cutoff %d must be positive", c.EpisodeCutoff)
	}

	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount %v must be in [0, 1]", c.Discount)
	}

	if !c.inBounds(c.Goal) {
		return fmt.Errorf("goal %v out of bounds (%d, %d)", c.Goal, c.Rows,
			c.Cols)
	}

	blocked := make(map[Position]bool, len(c.Obstacles))
	for _, o := range c.Obstacles {
		if !c.inBounds(o) {
			return fmt.Errorf("obstacle %v out of bounds (%d, %d)", o,
				c.Rows, c.Cols)
		}
		if o == c.Goal {
			return fmt.Errorf("goal %v coincides with an obstacle", c.Goal)
		}
		blocked[o] = true
	}

	if !c.RandomStart {
		if !c.inBounds(c.Start) {
			return fmt.Errorf("start %v out of bounds (%d, %d)", c.Start,
				c.Rows, c.Cols)
		}
		if blocked[c.Start] {
			return fmt.Errorf("start %v is blocked by an obstacle", c.Start)
		}
	}

	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. Sampled starting cells are
// seeded with seed.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	var starter env.Starter
	var err error
	if c.RandomStart {
		exclude := append([]Position{c.Goal}, c.Obstacles...)
		starter, err = NewRandomStart(c.Rows, c.Cols, exclude, seed)
	} else {
		starter, err = NewSingleStart(c.Start, c.Rows, c.Cols)
	}
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	task, err := NewGoal(starter, c.Goal, c.Rows, c.Cols, c.Obstacles,
		c.GoalReward, c.StepReward, c.ObstaclePenalty, c.EpisodeCutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	return New(task, c.Rows, c.Cols, c.Obstacles, c.Discount)
}

func (c Config) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < c.Rows && p.Col >= 0 && p.Col < c.Cols
}
