package server

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/oanquan/internal/game"
	"github.com/lox/oanquan/internal/protocol"
)

// player is the server's view of a connected client. *Connection
// satisfies it; tests substitute channel-backed fakes.
type player interface {
	Name() string
	Send(msg any) error
	Recv() <-chan any
}

// networkAgent proxies move decisions to a remote client. It implements
// game.Agent: a request goes out over the wire and the answer (or a
// timeout fallback) comes back as a move.
type networkAgent struct {
	side     game.Side
	player   player
	fallback game.Agent
	logger   *log.Logger
	clock    quartz.Clock
	timeout  time.Duration
}

func newNetworkAgent(side game.Side, p player, fallback game.Agent, logger *log.Logger, clock quartz.Clock, timeout time.Duration) *networkAgent {
	return &networkAgent{
		side:     side,
		player:   p,
		fallback: fallback,
		logger:   logger.WithPrefix("network-agent").With("player", p.Name()),
		clock:    clock,
		timeout:  timeout,
	}
}

// ChooseMove implements game.Agent by requesting a move from the remote
// client. A slow or undecodable answer falls back to the built-in bot;
// a disconnect is an error that aborts the match.
func (na *networkAgent) ChooseMove(state game.GameState, available []game.Pit) (game.Move, error) {
	na.logger.Info("Requesting move from remote player",
		"side", na.side,
		"round", state.Round,
		"available", len(available))

	req := &protocol.MoveRequest{
		Type:            protocol.TypeMoveRequest,
		Side:            na.side.String(),
		Round:           state.Round,
		State:           protocol.EncodeState(state),
		Available:       encodePits(available),
		TimeRemainingMs: int(na.timeout / time.Millisecond),
	}
	if err := na.player.Send(req); err != nil {
		return game.Move{}, fmt.Errorf("player %s unreachable: %w", na.player.Name(), err)
	}

	// Wait for the answer or a timeout using the quartz clock
	timeoutFired := make(chan struct{})
	timer := na.clock.AfterFunc(na.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	for {
		select {
		case msg, ok := <-na.player.Recv():
			if !ok {
				return game.Move{}, fmt.Errorf("player %s disconnected", na.player.Name())
			}
			mv, ok := msg.(*protocol.Move)
			if !ok {
				na.logger.Warn("Ignoring out-of-turn message", "message", fmt.Sprintf("%T", msg))
				continue
			}
			move, err := protocol.DecodeMove(mv)
			if err != nil {
				na.logger.Warn("Undecodable move from player, falling back", "error", err)
				_ = na.player.Send(protocol.NewError("invalid_move", err.Error()))
				return na.fallback.ChooseMove(state, available)
			}
			// The engine validates against the board only, so a client
			// answering with the opponent's pit would otherwise commit.
			if !pitAvailable(available, move.Pos) {
				na.logger.Warn("Move outside available positions, falling back", "pos", move.Pos)
				_ = na.player.Send(protocol.NewError("invalid_move", fmt.Sprintf("pit %s is not available", move.Pos)))
				return na.fallback.ChooseMove(state, available)
			}
			na.logger.Info("Received move from remote player", "pos", move.Pos, "way", move.Way)
			return move, nil

		case <-timeoutFired:
			na.logger.Warn("Move timeout, falling back to built-in bot")
			_ = na.player.Send(protocol.NewError("timeout", "move request timed out"))
			return na.fallback.ChooseMove(state, available)
		}
	}
}

func encodePits(pits []game.Pit) []string {
	out := make([]string, len(pits))
	for i, p := range pits {
		out[i] = string(p)
	}
	return out
}

// pitAvailable reports whether p is one of the offered pits.
func pitAvailable(available []game.Pit, p game.Pit) bool {
	for _, a := range available {
		if a == p {
			return true
		}
	}
	return false
}
