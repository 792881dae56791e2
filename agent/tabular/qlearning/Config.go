package qlearning

import (
	"fmt"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
)

// Default hyperparameters for QLearning agents
const (
	DefaultEpsilon        float64 = 0.1
	DefaultLearningRate   float64 = 0.1
	DefaultDiscountFactor float64 = 0.9
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon        float64 // Exploration rate of the behaviour policy
	LearningRate   float64
	DiscountFactor float64
}

// NewConfig returns a new Config with default hyperparameters
func NewConfig() Config {
	return Config{
		Epsilon:        DefaultEpsilon,
		LearningRate:   DefaultLearningRate,
		DiscountFactor: DefaultDiscountFactor,
	}
}

// CreateAgent creates and returns a new QLearning agent from the
// Config. Action values are always initialized to zero.
func (c Config) CreateAgent(environment env.Environment,
	seed uint64) (agent.Agent, error) {
	return New(environment, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if c.DiscountFactor < 0 || c.DiscountFactor > 1 {
		return fmt.Errorf("discount factor must be in [0, 1], got %v",
			c.DiscountFactor)
	}
	return nil
}
