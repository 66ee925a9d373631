// Package simulator runs batches of bot-vs-bot games for rule
// validation and balance checks.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/oanquan/internal/bot"
	"github.com/lox/oanquan/internal/game"
	"github.com/lox/oanquan/internal/randutil"
	"github.com/lox/oanquan/internal/statistics"
)

// Config holds configuration for running simulations.
type Config struct {
	Games    int
	Seed     int64
	Parallel int
	Strategy string // bot strategy for both sides
	Logger   *log.Logger
}

// Simulator plays batches of games between built-in bots.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	if config.Strategy == "" {
		config.Strategy = "random"
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregated statistics. Each game
// gets an independent seed stream derived from the batch seed, so
// results are reproducible regardless of scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := statistics.New()
	start := time.Now()

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(s.config.Parallel)

	for i := 0; i < s.config.Games; i++ {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			stats.Add(result)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	stats.Elapsed = time.Since(start)
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

func (s *Simulator) playGame(n int) (*game.GameResult, error) {
	rng := randutil.ForGame(s.config.Seed, n)

	agentA, err := bot.New(s.config.Strategy, rng)
	if err != nil {
		return nil, err
	}
	agentB, err := bot.New(s.config.Strategy, rng)
	if err != nil {
		return nil, err
	}

	g := game.NewGame(s.config.Logger)
	runner := game.NewRunner(g, agentA, agentB, s.config.Logger)
	return runner.Play()
}
