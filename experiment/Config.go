package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qlearning"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment/gridworld"
)

// Default experiment configuration values
const (
	DefaultSeed      uint64 = 42
	DefaultEpisodes  int    = 500
	DefaultNumAgents int    = 3
)

// Config represents a configuration of a whole experiment: the
// environment, the agent hyperparameters, and the run itself. Config
// is JSON serializable.
type Config struct {
	Seed      uint64
	Episodes  int
	NumAgents int // Number of agents in multi-agent experiments

	Grid  gridworld.Config
	Agent qlearning.Config

	// Agents optionally overrides Agent with per-agent hyperparameters
	// in multi-agent experiments. When set, its length must equal
	// NumAgents.
	Agents []qlearning.Config
}

// NewConfig returns the default experiment configuration
func NewConfig() Config {
	return Config{
		Seed:      DefaultSeed,
		Episodes:  DefaultEpisodes,
		NumAgents: DefaultNumAgents,
		Grid:      gridworld.NewConfig(),
		Agent:     qlearning.NewConfig(),
	}
}

// Load reads a Config from the JSON file at path. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	config := NewConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("load: could not parse config: %v", err)
	}
	return config, nil
}

// AgentConfig returns the hyperparameters for the agent at index i,
// taking per-agent overrides into account
func (c Config) AgentConfig(i int) qlearning.Config {
	if len(c.Agents) > 0 {
		return c.Agents[i]
	}
	return c.Agent
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes %d must be positive", c.Episodes)
	}

	if c.NumAgents <= 0 {
		return fmt.Errorf("number of agents %d must be positive",
			c.NumAgents)
	}

	if len(c.Agents) > 0 && len(c.Agents) != c.NumAgents {
		return fmt.Errorf("got %d per-agent configurations for %d agents",
			len(c.Agents), c.NumAgents)
	}

	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %v", err)
	}

	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent: %v", err)
	}

	for i, a := range c.Agents {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("agent %d: %v", i, err)
		}
	}

	return nil
}
