package model

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Generation is a completed generation handed to observers. Cells is a copy
// owned by the receiver.
type Generation struct {
	Number     int
	SideLength int
	Cells      []bool
}

// Alive reports the state of the cell at (row, col), wrapping both coordinates.
func (g Generation) Alive(row, col int) bool {
	return g.Cells[wrap(row, g.SideLength)*g.SideLength+wrap(col, g.SideLength)]
}

// Population returns the number of live cells.
func (g Generation) Population() (count int) {
	for _, alive := range g.Cells {
		if alive {
			count++
		}
	}
	return
}

func (g Generation) String() string {
	return renderCells(g.Cells, g.SideLength, "#", ".")
}

// Observer receives every committed generation.
type Observer interface {
	OnGeneration(gen Generation)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(gen Generation)

func (f ObserverFunc) OnGeneration(gen Generation) { f(gen) }

// SubscriptionID identifies an observer registered with Engine.Subscribe.
type SubscriptionID uint64

// ChannelObserver forwards generations onto a buffered channel for a driver
// that polls or blocks. Sends never block the engine: when the buffer is full
// the generation is dropped and counted.
type ChannelObserver struct {
	ch      chan Generation
	dropped atomic.Uint64
}

// NewChannelObserver creates a ChannelObserver with the given buffer size (minimum 1).
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{ch: make(chan Generation, max(buffer, 1))}
}

func (c *ChannelObserver) OnGeneration(gen Generation) {
	select {
	case c.ch <- gen:
	default:
		c.dropped.Add(1)
	}
}

// C returns the receive side of the channel.
func (c *ChannelObserver) C() <-chan Generation {
	return c.ch
}

// Dropped returns how many generations were discarded on a full buffer.
func (c *ChannelObserver) Dropped() uint64 {
	return c.dropped.Load()
}

// LoggingObserver logs a line per generation.
type LoggingObserver struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (l LoggingObserver) OnGeneration(gen Generation) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), l.Level, "generation ready",
		slog.Int("generation", gen.Number),
		slog.Int("population", gen.Population()),
		slog.Int("side_length", gen.SideLength),
	)
}
