package gridworld

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := NewConfig()
	require.NoError(t, valid.Validate())

	alter := func(f func(*Config)) Config {
		config := NewConfig()
		f(&config)
		return config
	}

	cases := []struct {
		name   string
		config Config
	}{
		{"zero rows", alter(func(c *Config) { c.Rows = 0 })},
		{"negative cols", alter(func(c *Config) { c.Cols = -2 })},
		{"zero episode cutoff", alter(func(c *Config) { c.EpisodeCutoff = 0 })},
		{"discount above one", alter(func(c *Config) { c.Discount = 1.5 })},
		{"negative discount", alter(func(c *Config) { c.Discount = -0.1 })},
		{"goal out of bounds", alter(func(c *Config) {
			c.Goal = Position{Row: 5, Col: 0}
		})},
		{"obstacle out of bounds", alter(func(c *Config) {
			c.Obstacles = append(c.Obstacles, Position{Row: 0, Col: 9})
		})},
		{"goal on an obstacle", alter(func(c *Config) {
			c.Obstacles = append(c.Obstacles, c.Goal)
		})},
		{"start out of bounds", alter(func(c *Config) {
			c.Start = Position{Row: -1, Col: 0}
		})},
		{"start on an obstacle", alter(func(c *Config) {
			c.Start = Position{Row: 1, Col: 1}
		})},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, test.config.Validate())
		})
	}

	t.Run("blocked start is allowed with random starts", func(t *testing.T) {
		config := alter(func(c *Config) {
			c.Start = Position{Row: 1, Col: 1}
			c.RandomStart = true
		})
		assert.NoError(t, config.Validate())
	})
}

func TestConfigCreate(t *testing.T) {
	t.Run("default config starts at the start cell", func(t *testing.T) {
		env, first, err := NewConfig().Create(91)
		require.NoError(t, err)

		assert.True(t, first.First())
		assert.Equal(t, 0.0, first.Observation.AtVec(0))
		assert.Equal(t, 0.0, first.Observation.AtVec(1))
		assert.False(t, env.AtGoal(first.Observation))
	})

	t.Run("invalid config fails", func(t *testing.T) {
		config := NewConfig()
		config.Rows = 0
		_, _, err := config.Create(91)
		assert.Error(t, err)
	})

	t.Run("random start config starts on open cells", func(t *testing.T) {
		config := NewConfig()
		config.RandomStart = true

		env, _, err := config.Create(91)
		require.NoError(t, err)
		world := env.(*GridWorld)

		for i := 0; i < 50; i++ {
			first, err := world.Reset()
			require.NoError(t, err)
			p := positionOf(first.Observation)
			assert.True(t, world.IsValidPosition(p))
			assert.NotEqual(t, config.Goal, p)
		}
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		config := NewConfig()
		config.RandomStart = true

		data, err := json.Marshal(config)
		require.NoError(t, err)

		var decoded Config
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, config, decoded)
	})
}
