package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("torus-life", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "config.json", "path to the JSON config file")
		seed       = fs.Int64("seed", 0, "override the config seed")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return err
		}
		fmt.Fprintf(stdout, "Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			config.Seed = *seed
		}
	})

	logger, err := newLogger(config, stderr)
	if err != nil {
		return err
	}

	var renderer *model.TerminalRenderer
	if config.Render {
		renderer = &model.TerminalRenderer{Out: stdout}
	}

	g := &game{seed: config.Seed}
	if config.UseMemoryPool {
		g.pool = model.NewGridPool()
	}
	stats := utils.NewStats()
	g.engine = initializeGame(config, g.seed, g.pool, logger, renderer, stats)
	displayGameInfo(stdout, config, g.engine)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return runGame(ctx, stdout, config, logger, renderer, stats, g)
	})
	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			logger.Info("signal received", "signal", sig.String())
			fmt.Fprintln(stdout, "\n🛑 Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	displayFinalStats(stdout, g, stats)
	return nil
}
