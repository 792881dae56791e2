// Package experiment implements functionality for running experiments.
//
// An experiment drives one or more agents through episodes on an
// environment and records the outcome of every episode as a Result.
// Experiments can also track environment TimeSteps with
// trackers.Tracker values, caching data in RAM to be later saved to
// disk with the Save() method. This is usually performed after an
// experiment has been run.
package experiment

// Result records the outcome of a single episode
type Result struct {
	Episode     int
	Return      float64 // Cumulative reward over the episode
	Steps       int
	ReachedGoal bool // Whether the episode ended at the goal, not by cutoff
}

// AggregateResult records the combined outcome of a single episode
// across every agent in a multi-agent experiment. Return and Steps
// are sums over the per-agent outcomes, which are retained in
// PerAgent in agent order.
type AggregateResult struct {
	Episode  int
	Return   float64
	Steps    int
	PerAgent []Result
}
