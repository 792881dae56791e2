package export

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/agent/tabular/qtable"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/environment/gridworld"
	"github.com/hazem-al-kenany/Q-Learning-for-Multi-Agent-Systems/utils/floatutils"
)

// cellSize is the edge length in pixels of one grid cell in rendered
// policy images
const cellSize = 80

// RenderPolicyPNG renders the greedy policy stored in table on the
// grid described by config and saves it as a PNG at path. Unblocked
// cells are shaded by their state value (the highest action value in
// the cell) and carry an arrow along the greedy action. Obstacles are
// drawn dark, the goal green.
func RenderPolicyPNG(path string, config gridworld.Config,
	table *qtable.QTable) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("renderPolicyPNG: %v", err)
	}
	if table.States() != config.Rows*config.Cols ||
		table.Actions() != gridworld.NumActions {
		return fmt.Errorf("renderPolicyPNG: table shape (%d, %d) does "+
			"not fit a (%d, %d) grid", table.States(), table.Actions(),
			config.Rows, config.Cols)
	}

	blocked := make(map[gridworld.Position]bool, len(config.Obstacles))
	for _, o := range config.Obstacles {
		blocked[o] = true
	}

	// Range of state values over the cells that get shaded, i.e. the
	// unblocked non-goal cells
	var values []float64
	for row := 0; row < config.Rows; row++ {
		for col := 0; col < config.Cols; col++ {
			p := gridworld.Position{Row: row, Col: col}
			if blocked[p] || p == config.Goal {
				continue
			}
			values = append(values, table.MaxValue(row*config.Cols+col))
		}
	}
	lo, hi := 0.0, 0.0
	if len(values) > 0 {
		lo, hi = floatutils.Min(values...), floatutils.Max(values...)
	}

	dc := gg.NewContext(config.Cols*cellSize, config.Rows*cellSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for row := 0; row < config.Rows; row++ {
		for col := 0; col < config.Cols; col++ {
			p := gridworld.Position{Row: row, Col: col}
			x, y := float64(col*cellSize), float64(row*cellSize)

			switch {
			case blocked[p]:
				dc.SetRGB(0.2, 0.2, 0.2)
				dc.DrawRectangle(x, y, cellSize, cellSize)
				dc.Fill()

			case p == config.Goal:
				dc.SetRGB(0.3, 0.75, 0.35)
				dc.DrawRectangle(x, y, cellSize, cellSize)
				dc.Fill()

			default:
				state := row*config.Cols + col

				// Deeper blue marks higher-valued cells
				shade := 0.5
				if hi > lo {
					shade = floatutils.Clip(
						(table.MaxValue(state)-lo)/(hi-lo), 0, 1)
				}
				dc.SetRGB(1-0.55*shade, 1-0.35*shade, 1)
				dc.DrawRectangle(x, y, cellSize, cellSize)
				dc.Fill()

				drawArrow(dc, x+cellSize/2, y+cellSize/2,
					gridworld.Action(table.GreedyAction(state)))
			}
		}
	}

	// Grid lines
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(2)
	for row := 0; row <= config.Rows; row++ {
		y := float64(row * cellSize)
		dc.DrawLine(0, y, float64(config.Cols*cellSize), y)
	}
	for col := 0; col <= config.Cols; col++ {
		x := float64(col * cellSize)
		dc.DrawLine(x, 0, x, float64(config.Rows*cellSize))
	}
	dc.Stroke()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("renderPolicyPNG: %v", err)
	}
	return nil
}

// drawArrow draws an arrow centered on (cx, cy) pointing along action
func drawArrow(dc *gg.Context, cx, cy float64, action gridworld.Action) {
	var dx, dy float64
	switch action {
	case gridworld.Up:
		dy = -1
	case gridworld.Down:
		dy = 1
	case gridworld.Left:
		dx = -1
	case gridworld.Right:
		dx = 1
	}

	length := 0.28 * cellSize
	x1, y1 := cx-dx*length, cy-dy*length
	x2, y2 := cx+dx*length, cy+dy*length

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(3)
	dc.DrawLine(x1, y1, x2, y2)

	// Arrowhead
	angle := math.Atan2(dy, dx)
	head := 0.12 * cellSize
	dc.DrawLine(x2, y2, x2-head*math.Cos(angle-0.5), y2-head*math.Sin(angle-0.5))
	dc.DrawLine(x2, y2, x2-head*math.Cos(angle+0.5), y2-head*math.Sin(angle+0.5))
	dc.Stroke()
}
