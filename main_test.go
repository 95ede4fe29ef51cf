package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/torus-life/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunStopsAtGenerationLimit(t *testing.T) {
	// Whichever comes first, the limit or a fixed point, ends the run cleanly.
	path := writeConfig(t, `{
		"seed": 7,
		"side_length": 8,
		"tick_interval": 1000000,
		"max_generations": 5,
		"render": false,
		"log_level": "error"
	}`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path}, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Grid: 8x8 torus | Seed: 7")
	assert.Contains(t, out, "Final stats:")
}

func TestRunRendersFrames(t *testing.T) {
	path := writeConfig(t, `{
		"side_length": 6,
		"tick_interval": 1000000,
		"max_generations": 2,
		"render": true,
		"log_level": "error"
	}`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path, "-seed", "11"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Seed: 11")
	assert.Contains(t, stdout.String(), "Final stats:")
}

func TestRunAutoRestart(t *testing.T) {
	// A dead 1x1 torus is a fixed point and restarts with the next seed.
	// A live one dies in its first step, which hits the limit of 1.
	path := writeConfig(t, `{
		"side_length": 1,
		"tick_interval": 1000000,
		"max_generations": 1,
		"auto_restart": true,
		"render": false,
		"log_level": "error"
	}`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Final stats:")
}

func TestRunAutoRestartHonorsLimitAcrossRestarts(t *testing.T) {
	// Each 1x1 engine commits at most one generation before it halts, so
	// only a limit counted across restarts can end this run.
	path := writeConfig(t, `{
		"side_length": 1,
		"tick_interval": 1000000,
		"max_generations": 3,
		"auto_restart": true,
		"render": false,
		"log_level": "error"
	}`)

	var stdout, stderr bytes.Buffer
	errc := make(chan error, 1)
	go func() { errc <- run([]string{"-config", path}, &stdout, &stderr) }()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop at max_generations=3")
	}
	assert.Contains(t, stdout.String(), "Reached maximum generations limit (3)")
}

func TestGameTotalsAcrossRestarts(t *testing.T) {
	g := &game{engine: model.NewEngineFromGrid(model.NewGrid(3), 0)}
	g.retire()
	assert.Equal(t, 0, g.generations)
	assert.Equal(t, 1, g.steps)

	grid := model.NewGrid(5)
	grid.AddBlinker(2, 1)
	g.engine = model.NewEngineFromGrid(grid, 0)
	g.engine.Step()
	g.engine.Step()
	assert.Equal(t, 2, g.totalGenerations())

	g.retire()
	assert.Equal(t, 2, g.generations)
	assert.Equal(t, 4, g.steps)
}

func TestRunSeedFlagZero(t *testing.T) {
	path := writeConfig(t, `{
		"seed": 5,
		"side_length": 4,
		"tick_interval": 1000000,
		"max_generations": 1,
		"render": false,
		"log_level": "error"
	}`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", path, "-seed", "0"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Seed: 0 |")

	stdout.Reset()
	require.NoError(t, run([]string{"-config", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Seed: 5 |")
}

func TestRunBadConfig(t *testing.T) {
	path := writeConfig(t, `{"log_level": "loud"}`)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", path}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[LoadConfig]")
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{"-nope"}, &stdout, &stderr))
}
