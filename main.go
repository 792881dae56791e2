package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qlearning"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment/trackers"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/export"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/progressbar"
)

var runFlags struct {
	config    string
	episodes  int
	agents    int
	seed      uint64
	out       string
	chart     string
	policyPNG string
	trackDir  string
	eval      bool
	quiet     bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "qlmas",
		Short: "qlmas trains tabular Q-learning agents on gridworlds, alone and in groups",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the single-agent and multi-agent simulations",
		RunE:  run,
	}

	flags := runCmd.Flags()
	flags.StringVar(&runFlags.config, "config", "",
		"path to a JSON experiment configuration")
	flags.IntVar(&runFlags.episodes, "episodes", experiment.DefaultEpisodes,
		"number of episodes to train for")
	flags.IntVar(&runFlags.agents, "agents", experiment.DefaultNumAgents,
		"number of agents in the multi-agent simulation")
	flags.Uint64Var(&runFlags.seed, "seed", experiment.DefaultSeed,
		"seed for all random sources")
	flags.StringVar(&runFlags.out, "out", ".",
		"directory the result CSV files are written to")
	flags.StringVar(&runFlags.chart, "chart", "",
		"write learning-curve charts as HTML to this path")
	flags.StringVar(&runFlags.policyPNG, "policy-png", "",
		"write the learned greedy policy as PNG to this path")
	flags.StringVar(&runFlags.trackDir, "track-dir", "",
		"directory for raw tracker data (gob)")
	flags.BoolVar(&runFlags.eval, "eval", false,
		"run one greedy evaluation episode after training")
	flags.BoolVar(&runFlags.quiet, "quiet", false,
		"suppress progress bars and the run summary")

	// A .env file may carry QLMAS_CONFIG to point at a configuration
	// without repeating --config on every invocation
	godotenv.Load()

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	if err := os.MkdirAll(runFlags.out, 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %v", err)
	}
	if runFlags.trackDir != "" {
		if err := os.MkdirAll(runFlags.trackDir, 0o755); err != nil {
			return fmt.Errorf("could not create tracker directory: %v", err)
		}
	}

	runID := uuid.NewString()
	if !runFlags.quiet {
		fmt.Printf("%v %v\n", aurora.Bold("run"), runID)
	}

	single, err := runSingleAgent(config)
	if err != nil {
		return err
	}

	multi, err := runMultiAgent(config)
	if err != nil {
		return err
	}

	if runFlags.chart != "" {
		page := export.LearningCurves("gridworld q-learning",
			single.results, multi)
		if err := export.RenderHTML(runFlags.chart, page); err != nil {
			return err
		}
	}

	if runFlags.policyPNG != "" {
		q, ok := single.experiment.Agent().(*qlearning.QLearning)
		if !ok {
			return fmt.Errorf("cannot render policy: unexpected agent type %T",
				single.experiment.Agent())
		}
		err := export.RenderPolicyPNG(runFlags.policyPNG, config.Grid,
			q.Table())
		if err != nil {
			return err
		}
	}

	if runFlags.eval {
		if err := evaluate(single.experiment); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig assembles the run's configuration: defaults, then the
// JSON file (--config or QLMAS_CONFIG), then explicit flags.
func loadConfig(cmd *cobra.Command) (experiment.Config, error) {
	path := runFlags.config
	if path == "" {
		path = os.Getenv("QLMAS_CONFIG")
	}

	config := experiment.NewConfig()
	if path != "" {
		var err error
		config, err = experiment.Load(path)
		if err != nil {
			return experiment.Config{}, err
		}
	}

	if cmd.Flags().Changed("episodes") {
		config.Episodes = runFlags.episodes
	}
	if cmd.Flags().Changed("agents") {
		config.NumAgents = runFlags.agents
	}
	if cmd.Flags().Changed("seed") {
		config.Seed = runFlags.seed
	}

	return config, nil
}

type singleRun struct {
	experiment *experiment.SingleAgent
	results    []experiment.Result
}

func runSingleAgent(config experiment.Config) (singleRun, error) {
	var t []trackers.Tracker
	if runFlags.trackDir != "" {
		t = append(t,
			trackers.NewReturn(
				filepath.Join(runFlags.trackDir, "single_returns.bin")),
			trackers.NewEpisodeLength(
				filepath.Join(runFlags.trackDir, "single_lengths.bin")))
	}

	single, err := experiment.NewSingleAgent(config, t...)
	if err != nil {
		return singleRun{}, err
	}

	if !runFlags.quiet {
		fmt.Println(aurora.Cyan("single agent"))
	}
	var bar *progressbar.ProgressBar
	if !runFlags.quiet {
		bar = progressbar.NewProgressBar(40, config.Episodes, time.Second,
			false)
		single.AttachProgressBar(bar)
		bar.Display()
	}

	results, err := single.Run()
	if bar != nil {
		bar.Close()
	}
	if err != nil {
		return singleRun{}, err
	}
	single.Save()

	path := filepath.Join(runFlags.out, "single_agent_results.csv")
	if err := writeCSV(path, results, nil); err != nil {
		return singleRun{}, err
	}

	if !runFlags.quiet {
		tail := results[len(results)-(len(results)+9)/10:]
		returns := make([]float64, len(tail))
		for i, result := range tail {
			returns[i] = result.Return
		}
		fmt.Printf("  mean return over the last %d episodes: %v\n",
			len(tail), aurora.Green(stat.Mean(returns, nil)))
		fmt.Printf("  episodes reaching the goal: %v\n",
			aurora.Green(fmt.Sprintf("%d/%d", reachedGoal(results),
				len(results))))
		fmt.Printf("  results written to %v\n", path)
	}

	return singleRun{experiment: single, results: results}, nil
}

func runMultiAgent(config experiment.Config) ([]experiment.AggregateResult, error) {
	var t []trackers.Tracker
	if runFlags.trackDir != "" {
		t = append(t,
			trackers.NewReturn(
				filepath.Join(runFlags.trackDir, "multi_returns.bin")),
			trackers.NewEpisodeLength(
				filepath.Join(runFlags.trackDir, "multi_lengths.bin")))
	}

	multi, err := experiment.NewMultiAgent(config, t...)
	if err != nil {
		return nil, err
	}

	if !runFlags.quiet {
		fmt.Printf("%v (%d agents)\n", aurora.Cyan("multi agent"),
			config.NumAgents)
		bar := progressbar.NewManualProgressBar(40, config.Episodes)
		multi.AttachProgressBar(bar)
	}

	aggregates, err := multi.Run()
	if !runFlags.quiet {
		fmt.Println()
	}
	if err != nil {
		return nil, err
	}
	multi.Save()

	path := filepath.Join(runFlags.out, "multi_agent_results.csv")
	if err := writeCSV(path, nil, aggregates); err != nil {
		return nil, err
	}

	if !runFlags.quiet {
		last := aggregates[len(aggregates)-1]
		fmt.Printf("  final episode: total return %v, total steps %v\n",
			aurora.Green(last.Return), aurora.Green(last.Steps))
		fmt.Printf("  results written to %v\n", path)
	}

	return aggregates, nil
}

// evaluate runs one greedy episode with the trained agent and reports
// the path it found
func evaluate(single *experiment.SingleAgent) error {
	a := single.Agent()
	a.Eval()
	defer a.Train()

	episode := experiment.NewEpisode(a, single.Environment())
	result, err := episode.Run(0)
	if err != nil {
		return fmt.Errorf("evaluation: %v", err)
	}

	if !runFlags.quiet {
		fmt.Println(aurora.Cyan("greedy evaluation"))
	}
	if result.ReachedGoal {
		fmt.Printf("  reached the goal in %v steps (return %v)\n",
			aurora.Green(result.Steps), aurora.Green(result.Return))
	} else {
		fmt.Printf("  %v: cut off after %v steps\n",
			aurora.Red("did not reach the goal"), result.Steps)
	}
	return nil
}

// writeCSV writes either results or aggregates to a CSV file at path
func writeCSV(path string, results []experiment.Result,
	aggregates []experiment.AggregateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %v", path, err)
	}
	defer f.Close()

	if results != nil {
		return export.WriteCSV(f, results)
	}
	return export.WriteAggregateCSV(f, aggregates)
}

func reachedGoal(results []experiment.Result) int {
	n := 0
	for _, result := range results {
		if result.ReachedGoal {
			n++
		}
	}
	return n
}
