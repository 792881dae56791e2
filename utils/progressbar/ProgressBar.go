// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar implements a concurrent progress bar. The bar is redrawn
// in a separate goroutine so that it runs concurrently with the
// process whose progress it reports. The progress counter is owned by
// the drawing goroutine, and Increment only ever communicates with it
// over a channel.
type ProgressBar struct {
	// width determines the number of characters wide that the progress
	// bar should be
	width float64

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress float64

	// incrementEvent carries Increment() calls to the drawing
	// goroutine
	incrementEvent chan struct{}

	closeEvent chan struct{}
	closed     bool

	updateEvery       time.Duration
	updateAtIncrement bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls. The bar
// is redrawn every updateEvery, and additionally on every Increment()
// call if updateAtIncrement is set.
func NewProgressBar(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             float64(width),
		maxProgress:       float64(max),
		incrementEvent:    make(chan struct{}),
		closeEvent:        make(chan struct{}),
		closed:            false,
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called. Increments
// after the progress bar has been closed are dropped.
func (p *ProgressBar) Increment() {
	select {
	case p.incrementEvent <- struct{}{}:
	case <-p.closeEvent:
	}
}

// Close closes the progress bar so that it will no longer display to
// the screen. This function also cleans up any resources the progress
// bar is using.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	close(p.closeEvent)
	p.closed = true
	fmt.Println() // Jump to next line after printed pbar
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	go func() {
		currentProgress := 0.0
		startTime := time.Now()

		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		var bar strings.Builder

		for {
			select {
			case <-p.incrementEvent:
				if currentProgress < p.maxProgress {
					currentProgress++
				}
				if !p.updateAtIncrement {
					continue
				}

			case <-tick.C:

			case <-p.closeEvent:
				return
			}

			bar.Reset()
			bar.Write([]byte("|"))

			currentProg := currentProgress / p.maxProgress * p.width
			for i := 0.0; i < currentProg; i++ {
				bar.Write([]byte("█"))
			}
			for i := currentProg; i < p.width; i++ {
				bar.Write([]byte(" "))
			}
			bar.Write([]byte(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
				currentProgress/p.maxProgress*100, "%",
				time.Since(startTime).Truncate(time.Second))))

			fmt.Printf("\n\033[1A\033[K%v", bar.String())
		}
	}()
}
