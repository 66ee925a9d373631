package main

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lox/oanquan/cmd/oanquan/shared"
	"github.com/lox/oanquan/internal/bot"
	"github.com/lox/oanquan/internal/game"
	"github.com/lox/oanquan/internal/protocol"
	"github.com/lox/oanquan/internal/randutil"
)

// BotCmd connects a built-in bot to a running match server
type BotCmd struct {
	URL      string `kong:"default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Name     string `kong:"default='bot',help='Bot name reported to the server'"`
	Strategy string `kong:"default='random',help='Bot strategy (random, first)'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *BotCmd) Run() error {
	logger := shared.SetupLogger(c.Debug).WithPrefix("bot").With("name", c.Name)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	agent, err := bot.New(c.Strategy, randutil.New(seed))
	if err != nil {
		return err
	}

	logger.Info("Connecting to server", "url", c.URL)
	conn, _, err := websocket.DefaultDialer.Dial(c.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer func() { _ = conn.Close() }()

	if err := send(conn, protocol.NewConnect(c.Name)); err != nil {
		return err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.Warn("Dropping undecodable message", "error", err)
			continue
		}

		switch m := msg.(type) {
		case *protocol.Joined:
			logger.Info("Joined match", "side", m.Side, "opponent", m.Opponent)

		case *protocol.MoveRequest:
			move, err := chooseMove(agent, m)
			if err != nil {
				logger.Error("Failed to choose a move", "error", err)
				continue
			}
			logger.Debug("Playing move", "pos", move.Pos, "way", move.Way)
			if err := send(conn, protocol.NewMove(string(move.Pos), move.Way.String())); err != nil {
				return err
			}

		case *protocol.Update:
			logger.Debug("Move committed", "side", m.Side, "pos", m.Pos, "way", m.Way)

		case *protocol.GameEnd:
			if m.Draw {
				logger.Info("Game over: draw", "reason", m.Reason, "score", m.Score)
			} else {
				logger.Info("Game over", "reason", m.Reason, "winner", m.Winner, "score", m.Score)
			}
			return nil

		case *protocol.Error:
			logger.Warn("Server reported an error", "code", m.Code, "message", m.Message)
		}
	}
}

func chooseMove(agent game.Agent, req *protocol.MoveRequest) (game.Move, error) {
	state, err := protocol.DecodeState(req.State)
	if err != nil {
		return game.Move{}, err
	}

	available := make([]game.Pit, 0, len(req.Available))
	for _, s := range req.Available {
		pit, err := game.ParsePit(s)
		if err != nil {
			return game.Move{}, err
		}
		available = append(available, pit)
	}

	return agent.ChooseMove(state, available)
}

func send(conn *websocket.Conn, msg any) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
