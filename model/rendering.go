package model

import (
	"fmt"
	"io"
	"sync"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear moves the cursor home and clears the screen.
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws each generation it observes to Out.
type TerminalRenderer struct {
	Out io.Writer
	// NoClear keeps previous frames on screen, useful when Out is a log.
	NoClear bool

	mu sync.Mutex
}

// OnGeneration implements Observer.
func (r *TerminalRenderer) OnGeneration(gen Generation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.NoClear {
		r.Clear()
	}
	fmt.Fprintf(r.Out, "Gen: %d | Living: %d\n", gen.Number, gen.Population())
	r.Display(gen)
}

// Display renders the generation to Out
func (r *TerminalRenderer) Display(gen Generation) {
	fmt.Fprint(r.Out, renderCells(gen.Cells, gen.SideLength, gridPosBlock, gridPosEmpty))
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, ansiClear)
}
