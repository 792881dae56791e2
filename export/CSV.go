// Package export converts experiment results into files: CSV tables,
// HTML learning-curve charts, and PNG renderings of learned policies.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/experiment"
)

// csvHeader is the column layout shared by single-agent and
// multi-agent result tables
var csvHeader = []string{"Episode", "Total Reward", "Steps"}

// WriteCSV writes one row per episode of results to w
func WriteCSV(w io.Writer, results []experiment.Result) error {
	out := csv.NewWriter(w)

	if err := out.Write(csvHeader); err != nil {
		return fmt.Errorf("writeCSV: %v", err)
	}
	for _, result := range results {
		row := []string{
			strconv.Itoa(result.Episode),
			strconv.FormatFloat(result.Return, 'g', -1, 64),
			strconv.Itoa(result.Steps),
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("writeCSV: %v", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("writeCSV: %v", err)
	}
	return nil
}

// WriteAggregateCSV writes one row per episode of aggregates to w.
// Each row holds the episode's reward and step totals summed over all
// agents.
func WriteAggregateCSV(w io.Writer, aggregates []experiment.AggregateResult) error {
	out := csv.NewWriter(w)

	if err := out.Write(csvHeader); err != nil {
		return fmt.Errorf("writeAggregateCSV: %v", err)
	}
	for _, aggregate := range aggregates {
		row := []string{
			strconv.Itoa(aggregate.Episode),
			strconv.FormatFloat(aggregate.Return, 'g', -1, 64),
			strconv.Itoa(aggregate.Steps),
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("writeAggregateCSV: %v", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("writeAggregateCSV: %v", err)
	}
	return nil
}
