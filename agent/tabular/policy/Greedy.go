package policy

import (
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
)

// NewGreedy creates a new Greedy policy, which always selects the
// action with the highest action value estimate
func NewGreedy(seed uint64, environment env.Environment) *EGreedy {
	return NewEGreedy(0.0, seed, environment)
}
