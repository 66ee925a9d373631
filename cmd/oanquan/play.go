package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/oanquan/cmd/oanquan/shared"
	"github.com/lox/oanquan/internal/bot"
	"github.com/lox/oanquan/internal/game"
	"github.com/lox/oanquan/internal/randutil"
	"github.com/lox/oanquan/internal/tui"
)

// PlayCmd runs an interactive game in the terminal
type PlayCmd struct {
	Strategy string `kong:"default='random',help='Opponent bot strategy (random, first)'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal; keep log output away from it unless
	// debugging.
	logger := shared.SetupLogger(c.Debug)
	if !c.Debug {
		logger = log.New(io.Discard)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	opponent, err := bot.New(c.Strategy, randutil.New(seed))
	if err != nil {
		return err
	}

	model := tui.New(game.NewGame(logger), opponent, logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
