package model

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelObserver(t *testing.T) {
	e := blinkerEngine(t)
	ch := NewChannelObserver(1)
	e.Subscribe(ch)

	e.Step()
	e.Step()

	gen := <-ch.C()
	assert.Equal(t, 1, gen.Number)
	assert.Equal(t, uint64(1), ch.Dropped())

	select {
	case extra := <-ch.C():
		t.Fatalf("unexpected generation %d", extra.Number)
	default:
	}
}

func TestChannelObserverMinimumBuffer(t *testing.T) {
	ch := NewChannelObserver(0)
	ch.OnGeneration(Generation{Number: 3})
	require.Len(t, ch.C(), 1)
	assert.Zero(t, ch.Dropped())
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := blinkerEngine(t)
	e.Subscribe(LoggingObserver{Logger: logger, Level: slog.LevelInfo})
	e.Step()

	out := buf.String()
	assert.Contains(t, out, "generation ready")
	assert.Contains(t, out, "generation=1")
	assert.Contains(t, out, "population=3")
	assert.Contains(t, out, "side_length=5")
}

func TestLoggingObserverBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LoggingObserver{Logger: logger, Level: slog.LevelDebug}.OnGeneration(Generation{Number: 1, SideLength: 1, Cells: []bool{true}})
	assert.Empty(t, buf.String())
}

func TestGenerationHelpers(t *testing.T) {
	gen := Generation{
		Number:     4,
		SideLength: 3,
		Cells: []bool{
			true, false, false,
			false, true, false,
			false, false, true,
		},
	}
	assert.Equal(t, 3, gen.Population())
	assert.True(t, gen.Alive(-1, -1))
	assert.True(t, gen.Alive(3, 3))
	assert.False(t, gen.Alive(0, 1))
	assert.Equal(t, "#..\n.#.\n..#\n", gen.String())
}
