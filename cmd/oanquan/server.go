package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/lox/oanquan/cmd/oanquan/shared"
	"github.com/lox/oanquan/internal/randutil"
	"github.com/lox/oanquan/internal/server"
)

// ServerCmd runs the WebSocket match server
type ServerCmd struct {
	Config    string `kong:"default='oanquan.hcl',help='HCL config file'"`
	Addr      string `kong:"help='Listen address override (host:port)'"`
	TimeoutMs int    `kong:"help='Move timeout override in milliseconds'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed for fallback moves (optional)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		host, portStr, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid --addr: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid --addr port: %w", err)
		}
		cfg.Server.Address = host
		cfg.Server.Port = port
	}
	if c.TimeoutMs > 0 {
		cfg.Server.MoveTimeoutMs = c.TimeoutMs
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	}

	s := server.NewServer(cfg, logger, nil, randutil.New(seed))

	logger.Info("Starting match server",
		"addr", s.Addr(),
		"move_timeout_ms", cfg.Server.MoveTimeoutMs,
		"max_rounds", cfg.Server.MaxRounds)

	ctx := shared.SetupSignalHandler(logger)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
