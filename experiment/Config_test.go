package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qlearning"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment/gridworld"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero episodes", func(c *Config) { c.Episodes = 0 }},
		{"negative episodes", func(c *Config) { c.Episodes = -3 }},
		{"zero agents", func(c *Config) { c.NumAgents = 0 }},
		{"override length mismatch", func(c *Config) {
			c.Agents = []qlearning.Config{qlearning.NewConfig()}
		}},
		{"invalid grid", func(c *Config) { c.Grid.Rows = 0 }},
		{"goal on obstacle", func(c *Config) {
			c.Grid.Goal = gridworld.Position{Row: 1, Col: 1}
		}},
		{"invalid agent", func(c *Config) { c.Agent.Epsilon = 2.0 }},
		{"invalid override", func(c *Config) {
			c.Agents = make([]qlearning.Config, c.NumAgents)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			tt.modify(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestConfigLoad(t *testing.T) {
	t.Run("absent fields keep defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"Episodes": 10, "Grid": {"Rows": 3, "Cols": 3}}`), 0o644))

		config, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 10, config.Episodes)
		assert.Equal(t, 3, config.Grid.Rows)
		assert.Equal(t, DefaultSeed, config.Seed)
		assert.Equal(t, DefaultNumAgents, config.NumAgents)
		assert.Equal(t, qlearning.DefaultEpsilon, config.Agent.Epsilon)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestConfigAgentConfig(t *testing.T) {
	config := NewConfig()
	config.NumAgents = 2
	assert.Equal(t, config.Agent, config.AgentConfig(0))
	assert.Equal(t, config.Agent, config.AgentConfig(1))

	config.Agents = []qlearning.Config{
		{Epsilon: 0.2, LearningRate: 0.1, DiscountFactor: 0.9},
		{Epsilon: 0.3, LearningRate: 0.1, DiscountFactor: 0.9},
	}
	assert.Equal(t, 0.2, config.AgentConfig(0).Epsilon)
	assert.Equal(t, 0.3, config.AgentConfig(1).Epsilon)
}
