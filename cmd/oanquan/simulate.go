package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/lox/oanquan/cmd/oanquan/shared"
	"github.com/lox/oanquan/internal/simulator"
)

// SimulateCmd runs bot-vs-bot games and reports aggregate statistics
type SimulateCmd struct {
	Games    int    `kong:"default='1000',help='Number of games to simulate'"`
	Seed     int64  `kong:"default='0',help='RNG seed (0 for random)'"`
	Parallel int    `kong:"default='0',help='Concurrent games (0 for GOMAXPROCS)'"`
	Strategy string `kong:"default='random',help='Bot strategy for both sides (random, first)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	parallel := c.Parallel
	if parallel == 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		Seed:     seed,
		Parallel: parallel,
		Strategy: c.Strategy,
		Logger:   logger,
	})

	ctx := shared.SetupSignalHandler(logger)
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(stats.Summary())
	return nil
}
