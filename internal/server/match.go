package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/oanquan/internal/bot"
	"github.com/lox/oanquan/internal/game"
	"github.com/lox/oanquan/internal/protocol"
)

// MatchOptions configure a match. Zero values fall back to defaults.
type MatchOptions struct {
	Logger    *log.Logger
	Clock     quartz.Clock
	Timeout   time.Duration
	MaxRounds int
	Rng       *rand.Rand
}

// Match runs one game between two connected players, proxying move
// requests over the wire and broadcasting every committed move.
type Match struct {
	id        string
	logger    *log.Logger
	game      *game.Game
	players   map[game.Side]player
	agents    map[game.Side]game.Agent
	maxRounds int
}

// NewMatch seats a and b as sides A and B of a fresh game.
func NewMatch(id string, a, b player, opts MatchOptions) *Match {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.MaxRounds == 0 {
		opts.MaxRounds = 500
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	logger := opts.Logger.WithPrefix("match").With("id", id)
	players := map[game.Side]player{game.SideA: a, game.SideB: b}
	agents := make(map[game.Side]game.Agent, len(players))
	for side, p := range players {
		agents[side] = newNetworkAgent(side, p, bot.NewRandom(opts.Rng), logger, opts.Clock, opts.Timeout)
	}

	return &Match{
		id:        id,
		logger:    logger,
		game:      game.NewGame(logger),
		players:   players,
		agents:    agents,
		maxRounds: opts.MaxRounds,
	}
}

// Run plays the match to completion, side A moving first. The returned
// result reflects the final score; an error means a player disconnect
// or an engine failure, not a lost game.
func (m *Match) Run(ctx context.Context) (*game.GameResult, error) {
	m.logger.Info("Starting match",
		"a", m.players[game.SideA].Name(),
		"b", m.players[game.SideB].Name())

	for side, p := range m.players {
		if err := p.Send(protocol.NewJoined(side.String(), m.players[side.Opponent()].Name())); err != nil {
			return nil, fmt.Errorf("seat %s: %w", side, err)
		}
	}

	side := game.SideA
	for turn := 0; turn < m.maxRounds; turn++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if ended, reason := m.game.IsEnd(); ended {
			return m.finish(reason), nil
		}

		if len(m.game.AvailablePositions(side)) == 0 {
			canContinue, msg := m.game.RestorePeasants(side)
			if !canContinue {
				_, reason := m.game.IsEnd()
				m.logger.Debug("side cannot restore", "side", side, "msg", msg)
				return m.finish(reason), nil
			}
			m.logger.Debug("restoration applied", "side", side, "msg", msg)
		}

		ended, reason, err := m.playTurn(side)
		if err != nil {
			return nil, err
		}
		if ended {
			return m.finish(reason), nil
		}
		side = side.Opponent()
	}

	m.logger.Warn("round limit reached", "rounds", m.maxRounds)
	return m.finish(fmt.Sprintf("round limit of %d reached", m.maxRounds)), nil
}

func (m *Match) playTurn(side game.Side) (bool, string, error) {
	available := m.game.AvailablePositions(side)
	state := m.game.State()

	move, err := m.agents[side].ChooseMove(state, available)
	if err != nil {
		return false, "", err
	}

	events, ended, reason, err := m.game.CommitAction(move)
	if errors.Is(err, game.ErrInvalidMove) {
		m.logger.Error("player chose an invalid move", "side", side, "move", move, "error", err)
		_ = m.players[side].Send(protocol.NewError("invalid_move", err.Error()))
		move = game.Move{Pos: available[0], Way: game.Clockwise}
		events, ended, reason, err = m.game.CommitAction(move)
	}
	if err != nil {
		return false, "", err
	}

	m.broadcast(&protocol.Update{
		Type:   protocol.TypeUpdate,
		Side:   side.String(),
		Pos:    string(move.Pos),
		Way:    move.Way.String(),
		Events: protocol.EncodeEvents(events),
		State:  protocol.EncodeState(m.game.State()),
	})
	return ended, reason, nil
}

func (m *Match) finish(reason string) *game.GameResult {
	state := m.game.State()
	res := &game.GameResult{
		Reason: reason,
		Score:  state.Score,
		Rounds: state.Round,
	}
	switch {
	case state.Score[game.SideA] > state.Score[game.SideB]:
		res.Winner = game.SideA
	case state.Score[game.SideB] > state.Score[game.SideA]:
		res.Winner = game.SideB
	default:
		res.Draw = true
	}

	end := &protocol.GameEnd{
		Type:   protocol.TypeGameEnd,
		Reason: reason,
		Score:  encodeScore(state.Score),
		Draw:   res.Draw,
	}
	if !res.Draw {
		end.Winner = res.Winner.String()
	}
	m.broadcast(end)

	m.logger.Info("Match finished",
		"reason", reason,
		"scoreA", state.Score[game.SideA],
		"scoreB", state.Score[game.SideB],
		"rounds", state.Round)
	return res
}

func (m *Match) broadcast(msg any) {
	for _, p := range m.players {
		if err := p.Send(msg); err != nil {
			m.logger.Debug("broadcast failed", "player", p.Name(), "error", err)
		}
	}
}

func encodeScore(score map[game.Side]int) map[string]int {
	out := make(map[string]int, len(score))
	for side, v := range score {
		out[side.String()] = v
	}
	return out
}
