package export

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/intutils"
)

// LearningCurves builds a page of line charts showing the reward and
// the number of steps per episode, with one series for the
// single-agent results and one for the multi-agent totals. Either
// argument may be nil to plot only the other.
func LearningCurves(title string, single []experiment.Result,
	multi []experiment.AggregateResult) *components.Page {

	episodes := intutils.Max(len(single), len(multi))
	xAxis := make([]string, episodes)
	for i := range xAxis {
		xAxis[i] = strconv.Itoa(i)
	}

	singleRewards := make([]opts.LineData, len(single))
	singleSteps := make([]opts.LineData, len(single))
	for i, result := range single {
		singleRewards[i] = opts.LineData{Value: result.Return}
		singleSteps[i] = opts.LineData{Value: result.Steps}
	}

	multiRewards := make([]opts.LineData, len(multi))
	multiSteps := make([]opts.LineData, len(multi))
	for i, aggregate := range multi {
		multiRewards[i] = opts.LineData{Value: aggregate.Return}
		multiSteps[i] = opts.LineData{Value: aggregate.Steps}
	}

	rewards := newLine(title + ": reward per episode")
	rewards.SetXAxis(xAxis)
	if single != nil {
		rewards.AddSeries("single agent", singleRewards)
	}
	if multi != nil {
		rewards.AddSeries("all agents", multiRewards)
	}

	steps := newLine(title + ": steps per episode")
	steps.SetXAxis(xAxis)
	if single != nil {
		steps.AddSeries("single agent", singleSteps)
	}
	if multi != nil {
		steps.AddSeries("all agents", multiSteps)
	}

	page := components.NewPage()
	page.AddCharts(rewards, steps)
	return page
}

// RenderHTML renders page to an HTML file at path
func RenderHTML(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderHTML: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("renderHTML: %v", err)
	}
	return nil
}

func newLine(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	return line
}
