// Package server hosts matches over WebSocket. Two connected bot
// clients are paired into a match; the server proxies move requests to
// them and arbitrates the game.
package server

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/oanquan/internal/protocol"
)

// connectWait bounds how long a fresh connection may sit without
// introducing itself before it is dropped.
const connectWait = 10 * time.Second

// Server is the WebSocket match server. Clients connect to /ws, send a
// connect message, and are paired first-come first-served.
type Server struct {
	cfg      *Config
	upgrader websocket.Upgrader
	waiting  chan *Connection
	logger   *log.Logger
	clock    quartz.Clock
	rng      *rand.Rand
	ctx      context.Context
	cancel   context.CancelFunc
	matches  int
}

// NewServer creates a match server from config. A nil clock means real
// time.
func NewServer(cfg *Config, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Server {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Bot clients connect from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		waiting: make(chan *Connection, 16),
		logger:  logger.WithPrefix("server"),
		clock:   clock,
		rng:     rng,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port)
}

// Start runs the matchmaker and serves WebSocket connections until the
// listener fails or Stop is called.
func (s *Server) Start() error {
	go s.matchmaker()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Info("Starting WebSocket server", "addr", s.Addr())
	return http.ListenAndServe(s.Addr(), mux)
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	s.cancel()
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger)
	conn.Start()
	go s.registerClient(conn)
}

// registerClient waits for the connect handshake, then hands the
// connection to the matchmaker.
func (s *Server) registerClient(conn *Connection) {
	timer := time.NewTimer(connectWait)
	defer timer.Stop()

	select {
	case msg, ok := <-conn.Recv():
		if !ok {
			return
		}
		connect, isConnect := msg.(*protocol.Connect)
		if !isConnect {
			s.logger.Warn("Expected connect message", "got", fmt.Sprintf("%T", msg))
			_ = conn.Send(protocol.NewError("expected_connect", "first message must be connect"))
			_ = conn.Close()
			return
		}
		conn.SetName(connect.Name)
		s.logger.Info("Client connected", "name", connect.Name)

		select {
		case s.waiting <- conn:
		case <-s.ctx.Done():
			_ = conn.Close()
		}

	case <-timer.C:
		s.logger.Warn("Client never introduced itself, dropping")
		_ = conn.Close()

	case <-s.ctx.Done():
		_ = conn.Close()
	}
}

// matchmaker pairs waiting clients two at a time and runs their match.
func (s *Server) matchmaker() {
	for {
		a, ok := s.nextWaiting()
		if !ok {
			return
		}
		b, ok := s.nextWaiting()
		if !ok {
			_ = a.Close()
			return
		}

		s.matches++
		id := fmt.Sprintf("match-%d", s.matches)
		match := NewMatch(id, a, b, MatchOptions{
			Logger:    s.logger,
			Clock:     s.clock,
			Timeout:   time.Duration(s.cfg.Server.MoveTimeoutMs) * time.Millisecond,
			MaxRounds: s.cfg.Server.MaxRounds,
			// Concurrent matches each get their own stream.
			Rng: rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64())),
		})

		go func() {
			defer func() {
				_ = a.Close()
				_ = b.Close()
			}()
			if _, err := match.Run(s.ctx); err != nil {
				s.logger.Error("Match aborted", "id", id, "error", err)
			}
		}()
	}
}

// nextWaiting blocks until a client is available, dropping any whose
// connection died while queued.
func (s *Server) nextWaiting() (*Connection, bool) {
	for {
		select {
		case conn := <-s.waiting:
			select {
			case <-conn.Done():
				s.logger.Debug("Queued client disconnected", "name", conn.Name())
				continue
			default:
			}
			return conn, true
		case <-s.ctx.Done():
			return nil, false
		}
	}
}
