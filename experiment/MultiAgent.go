package experiment

import (
	"fmt"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment/trackers"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/progressbar"
)

// MultiAgent is an experiment that trains a number of independent
// agents on a single shared environment. Agents do not interact and
// share no learned values: each agent owns its own table of action
// values and its own random source, seeded with the experiment seed
// plus the agent's index.
//
// Within each episode the agents take turns: agent 0 runs a full
// episode on the environment, then agent 1, and so on. The
// environment is reset at the start of every agent's turn. With a
// fixed starting cell the reset is deterministic, so each agent
// experiences exactly the trajectory it would have experienced
// running alone. With random starts the agents consume starting
// cells from the environment's one sample stream in turn order.
type MultiAgent struct {
	config   Config
	trackers []trackers.Tracker
	progress *progressbar.ManualProgressBar
}

// NewMultiAgent creates and returns a new MultiAgent experiment.
// Every TimeStep generated by the experiment is sent to each t.
// Since agents take turns running complete episodes, the timesteps
// each Tracker receives form a sequence of whole episodes ordered by
// episode number first and agent index second.
func NewMultiAgent(config Config, t ...trackers.Tracker) (*MultiAgent,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newMultiAgent: %v", err)
	}
	return &MultiAgent{config: config, trackers: t}, nil
}

// Register adds a Tracker to the experiment
func (m *MultiAgent) Register(t trackers.Tracker) {
	m.trackers = append(m.trackers, t)
}

// AttachProgressBar attaches a progress bar which is incremented and
// displayed once per completed round of episodes
func (m *MultiAgent) AttachProgressBar(p *progressbar.ManualProgressBar) {
	m.progress = p
}

// Run trains the configured number of fresh agents for the configured
// number of episodes on one shared environment. The returned
// AggregateResults are in episode order, each aggregating that
// episode's outcome over all agents.
func (m *MultiAgent) Run() ([]AggregateResult, error) {
	environment, _, err := m.config.Grid.Create(m.config.Seed)
	if err != nil {
		return nil, fmt.Errorf("run: could not create environment: %v", err)
	}

	episodes := make([]*Episode, m.config.NumAgents)
	for i := range episodes {
		var a agent.Agent
		a, err = m.config.AgentConfig(i).CreateAgent(environment,
			m.config.Seed+uint64(i))
		if err != nil {
			return nil, fmt.Errorf("run: could not create agent %d: %v",
				i, err)
		}
		episodes[i] = NewEpisode(a, environment, m.trackers...)
	}

	aggregates := make([]AggregateResult, 0, m.config.Episodes)
	for e := 0; e < m.config.Episodes; e++ {
		aggregate := AggregateResult{
			Episode:  e,
			PerAgent: make([]Result, 0, m.config.NumAgents),
		}

		for i, episode := range episodes {
			result, err := episode.Run(e)
			if err != nil {
				return nil, fmt.Errorf("run: agent %d episode %d: %v", i,
					e, err)
			}

			aggregate.Return += result.Return
			aggregate.Steps += result.Steps
			aggregate.PerAgent = append(aggregate.PerAgent, result)
		}
		aggregates = append(aggregates, aggregate)

		if m.progress != nil {
			m.progress.Increment()
			m.progress.Display()
		}
	}

	return aggregates, nil
}

// Save saves the data cached by the experiment's Trackers to disk
func (m *MultiAgent) Save() {
	for _, tracker := range m.trackers {
		tracker.Save()
	}
}
