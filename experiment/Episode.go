package experiment

import (
	"fmt"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent"
	env "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment/trackers"
	ts "github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/timestep"
)

// Episode drives a single agent through episodes on an environment.
// The Episode owns neither the agent nor the environment, so the same
// environment can back multiple Episodes whose agents take turns
// acting on it.
type Episode struct {
	environment env.Environment
	agent       agent.Agent
	trackers    []trackers.Tracker
}

// NewEpisode returns a new Episode that runs a on environment. Every
// TimeStep generated while running is sent to each t.
func NewEpisode(a agent.Agent, environment env.Environment,
	t ...trackers.Tracker) *Episode {
	return &Episode{
		environment: environment,
		agent:       a,
		trackers:    t,
	}
}

// Run runs a single episode to termination and returns its Result.
// The number argument identifies the episode in the returned Result.
//
// If the agent is in evaluation mode its learner is not stepped, so
// running an episode leaves the agent's action values unchanged.
func (e *Episode) Run(number int) (Result, error) {
	step, err := e.environment.Reset()
	if err != nil {
		return Result{}, fmt.Errorf("run: could not reset environment: %v",
			err)
	}
	if err := e.agent.ObserveFirst(step); err != nil {
		return Result{}, fmt.Errorf("run: %v", err)
	}
	e.track(step)

	var (
		episodeReturn float64
		last          bool
	)
	for !last {
		// Select an action, step in the environment
		action := e.agent.SelectAction(step)
		step, last, err = e.environment.Step(action)
		if err != nil {
			return Result{}, fmt.Errorf("run: could not step "+
				"environment: %v", err)
		}
		episodeReturn += step.Reward
		e.track(step)

		// Observe the timestep and step the agent. Updates are applied
		// on every transition, including the transition that ends the
		// episode.
		if err := e.agent.Observe(action, step); err != nil {
			return Result{}, fmt.Errorf("run: %v", err)
		}
		if !e.agent.IsEval() {
			if err := e.agent.Step(); err != nil {
				return Result{}, fmt.Errorf("run: could not update "+
					"agent: %v", err)
			}
		}
	}
	e.agent.EndEpisode()

	return Result{
		Episode:     number,
		Return:      episodeReturn,
		Steps:       step.Number,
		ReachedGoal: step.TerminatedAtGoal(),
	}, nil
}

// track sends the current timestep to each of the Episode's Trackers
func (e *Episode) track(t ts.TimeStep) {
	for _, tracker := range e.trackers {
		tracker.Track(t)
	}
}
