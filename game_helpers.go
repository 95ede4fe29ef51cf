package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/utils"
)

// game bundles one engine with the collaborators the driver attaches to it.
type game struct {
	engine   *model.Engine
	pool     *model.GridPool
	seed     int64
	restarts int

	// Totals for engines replaced by a restart. steps also counts the
	// stagnant step that halted each engine, so every restart uses up at
	// least one step of the generation limit.
	generations int
	steps       int
}

// totalGenerations returns the generations committed across all engines.
func (g *game) totalGenerations() int {
	return g.generations + g.engine.Generation()
}

// retire folds the halted engine's counts into the totals.
func (g *game) retire() {
	n := g.engine.Generation()
	g.generations += n
	g.steps += n + 1
}

// newLogger builds the driver's structured logger from config
func newLogger(config utils.Config, out io.Writer) (*slog.Logger, error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}

// initializeGame builds an engine for seed and subscribes the renderer and stats
func initializeGame(
	config utils.Config,
	seed int64,
	pool *model.GridPool,
	logger *slog.Logger,
	renderer *model.TerminalRenderer,
	stats *utils.Stats,
) *model.Engine {
	engine := model.NewEngine(seed, config.SideLength, config.TickInterval,
		model.WithWorkers(config.Workers),
		model.WithGridPool(pool),
		model.WithLogger(logger),
	)

	engine.Subscribe(model.ObserverFunc(func(gen model.Generation) {
		stats.Observe(gen.Number, gen.Population())
	}))
	if renderer != nil {
		engine.Subscribe(renderer)
	} else {
		engine.Subscribe(model.LoggingObserver{Logger: logger, Level: slog.LevelDebug})
	}
	return engine
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, engine *model.Engine) {
	fmt.Fprintf(out, "Features: Memory Pool: %v, Workers: %d, Auto restart: %v\n",
		config.UseMemoryPool, config.Workers, config.AutoRestart)
	fmt.Fprintf(out, "Grid: %dx%d torus | Seed: %d | Initial living cells: %d\n",
		engine.SideLength(), engine.SideLength(), config.Seed, engine.Current().Population())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// displayFinalStats prints the summary shown on exit
func displayFinalStats(out io.Writer, g *game, stats *utils.Stats) {
	snap := stats.Snapshot()
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds (%d restarts)\n",
		g.totalGenerations(), time.Since(snap.StartTime).Seconds(), g.restarts)
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population\n",
		snap.GenerationsPerSecond, snap.AveragePopulation)
}

// limitGenerations pauses the engine once used plus its own generations
// reach limit
func limitGenerations(engine *model.Engine, limit, used int, done func()) {
	if limit <= 0 {
		return
	}
	engine.Subscribe(model.ObserverFunc(func(gen model.Generation) {
		if used+gen.Number >= limit {
			engine.Stop()
			done()
		}
	}))
}

// runGame drives engines until ctx is done, the generation limit is hit, or a
// fixed point is reached without auto restart.
func runGame(
	ctx context.Context,
	out io.Writer,
	config utils.Config,
	logger *slog.Logger,
	renderer *model.TerminalRenderer,
	stats *utils.Stats,
	g *game,
) error {
	for {
		runCtx, cancel := context.WithCancel(ctx)
		limitGenerations(g.engine, config.MaxGenerations, g.steps, cancel)

		err := model.Run(runCtx, g.engine)
		limitHit := runCtx.Err() != nil && ctx.Err() == nil
		cancel()

		switch {
		case ctx.Err() != nil:
			return nil
		case limitHit:
			fmt.Fprintf(out, "\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		case err != nil:
			return err
		}

		logger.Info("simulation halted",
			slog.String("reason", g.engine.StopReason().String()),
			slog.Int("generation", g.engine.Generation()),
			slog.Int64("seed", g.seed),
		)
		if !config.AutoRestart {
			return nil
		}

		g.retire()
		if config.MaxGenerations > 0 && g.steps >= config.MaxGenerations {
			fmt.Fprintf(out, "\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}

		g.seed++
		g.restarts++
		fmt.Fprintf(out, "🔄 Restarting with seed %d...\n", g.seed)
		g.engine = initializeGame(config, g.seed, g.pool, logger, renderer, stats)
	}
}
