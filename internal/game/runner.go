package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Agent chooses one move per turn. Implementations only make
// decisions; the Runner owns all state mutation.
type Agent interface {
	ChooseMove(state GameState, available []Pit) (Move, error)
}

// GameResult summarizes a finished game.
type GameResult struct {
	Reason string
	Score  map[Side]int
	Rounds int
	// Winner is the side with the higher final score; Draw is set when
	// scores are level.
	Winner Side
	Draw   bool
}

// defaultMaxRounds stops runaway games between two agents that shuffle
// tokens forever without ending the game.
const defaultMaxRounds = 500

// Runner drives a complete game between two agents, handling turn
// alternation and the restoration rule. It is the in-process
// equivalent of an external orchestration loop.
type Runner struct {
	game      *Game
	agents    map[Side]Agent
	logger    *log.Logger
	maxRounds int
}

// NewRunner creates a runner over g with one agent per side.
func NewRunner(g *Game, agentA, agentB Agent, logger *log.Logger) *Runner {
	return &Runner{
		game:      g,
		agents:    map[Side]Agent{SideA: agentA, SideB: agentB},
		logger:    logger.WithPrefix("runner"),
		maxRounds: defaultMaxRounds,
	}
}

// SetMaxRounds overrides the round limit.
func (r *Runner) SetMaxRounds(n int) {
	r.maxRounds = n
}

// Game returns the underlying game, e.g. for event bus subscription.
func (r *Runner) Game() *Game {
	return r.game
}

// Play runs the game to completion, side A moving first, and returns
// the result. Invalid agent decisions fall back to the first available
// move rather than aborting the game; invariant violations abort.
func (r *Runner) Play() (*GameResult, error) {
	side := SideA
	for turn := 0; turn < r.maxRounds; turn++ {
		if ended, reason := r.game.IsEnd(); ended {
			return r.result(reason), nil
		}

		if len(r.game.AvailablePositions(side)) == 0 {
			canContinue, msg := r.game.RestorePeasants(side)
			if !canContinue {
				// IsEnd reports this side as unable to continue.
				_, reason := r.game.IsEnd()
				r.logger.Debug("side cannot restore", "side", side, "msg", msg)
				return r.result(reason), nil
			}
			r.logger.Debug("restoration applied", "side", side, "msg", msg)
		}

		if err := r.playTurn(side); err != nil {
			return nil, err
		}
		side = side.Opponent()
	}
	// Agents that shuffle tokens forever still produce a scoreable
	// result; only engine failures are errors.
	r.logger.Warn("round limit reached", "rounds", r.maxRounds)
	return r.result(fmt.Sprintf("round limit of %d reached", r.maxRounds)), nil
}

func (r *Runner) playTurn(side Side) error {
	available := r.game.AvailablePositions(side)
	state := r.game.State()

	move, err := r.agents[side].ChooseMove(state, available)
	if err != nil {
		r.logger.Error("agent failed to choose a move", "side", side, "error", err)
		move = fallbackMove(available)
	} else if !pitAvailable(available, move.Pos) {
		// The engine validates against the board only; keeping agents
		// inside their own side is the runner's job.
		r.logger.Error("agent chose a pit outside its available positions", "side", side, "move", move)
		move = fallbackMove(available)
	}

	_, _, _, err = r.game.CommitAction(move)
	if errors.Is(err, ErrInvalidMove) {
		// Same recovery as a live host: retry once with a known-legal
		// move.
		r.logger.Error("agent chose an invalid move", "side", side, "move", move, "error", err)
		_, _, _, err = r.game.CommitAction(fallbackMove(available))
	}
	return err
}

func (r *Runner) result(reason string) *GameResult {
	state := r.game.State()
	res := &GameResult{
		Reason: reason,
		Score:  state.Score,
		Rounds: state.Round,
	}
	switch {
	case state.Score[SideA] > state.Score[SideB]:
		res.Winner = SideA
	case state.Score[SideB] > state.Score[SideA]:
		res.Winner = SideB
	default:
		res.Draw = true
	}
	return res
}

func fallbackMove(available []Pit) Move {
	return Move{Pos: available[0], Way: Clockwise}
}

// pitAvailable reports whether p is one of the side's available pits.
func pitAvailable(available []Pit, p Pit) bool {
	for _, a := range available {
		if a == p {
			return true
		}
	}
	return false
}
