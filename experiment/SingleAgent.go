package experiment

import (
	"fmt"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment/trackers"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/progressbar"
)

// SingleAgent is an experiment that trains a single agent on an
// environment. Each call to Run() constructs the environment and the
// agent afresh from the experiment's Config, so for a fixed seed every
// call yields an identical sequence of Results.
type SingleAgent struct {
	config   Config
	trackers []trackers.Tracker
	progress *progressbar.ProgressBar

	// Environment and agent of the most recent call to Run
	environment env.Environment
	agent       agent.Agent
}

// NewSingleAgent creates and returns a new SingleAgent experiment.
// Every TimeStep generated by the experiment is sent to each t.
func NewSingleAgent(config Config, t ...trackers.Tracker) (*SingleAgent,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newSingleAgent: %v", err)
	}
	return &SingleAgent{config: config, trackers: t}, nil
}

// Register adds a Tracker to the experiment
func (s *SingleAgent) Register(t trackers.Tracker) {
	s.trackers = append(s.trackers, t)
}

// AttachProgressBar attaches a progress bar which is incremented once
// per completed episode. The caller remains responsible for calling
// Display() and Close() on the bar.
func (s *SingleAgent) AttachProgressBar(p *progressbar.ProgressBar) {
	s.progress = p
}

// Run trains a fresh agent for the configured number of episodes and
// returns the per-episode Results in episode order
func (s *SingleAgent) Run() ([]Result, error) {
	environment, _, err := s.config.Grid.Create(s.config.Seed)
	if err != nil {
		return nil, fmt.Errorf("run: could not create environment: %v", err)
	}

	a, err := s.config.Agent.CreateAgent(environment, s.config.Seed)
	if err != nil {
		return nil, fmt.Errorf("run: could not create agent: %v", err)
	}
	s.environment = environment
	s.agent = a

	episode := NewEpisode(a, environment, s.trackers...)
	results := make([]Result, 0, s.config.Episodes)
	for i := 0; i < s.config.Episodes; i++ {
		result, err := episode.Run(i)
		if err != nil {
			return nil, fmt.Errorf("run: episode %d: %v", i, err)
		}
		results = append(results, result)

		if s.progress != nil {
			s.progress.Increment()
		}
	}

	return results, nil
}

// Save saves the data cached by the experiment's Trackers to disk
func (s *SingleAgent) Save() {
	for _, tracker := range s.trackers {
		tracker.Save()
	}
}

// Agent returns the agent trained by the most recent call to Run, or
// nil if Run has not been called. Useful for evaluating or exporting
// what was learned.
func (s *SingleAgent) Agent() agent.Agent {
	return s.agent
}

// Environment returns the environment of the most recent call to Run,
// or nil if Run has not been called
func (s *SingleAgent) Environment() env.Environment {
	return s.environment
}
