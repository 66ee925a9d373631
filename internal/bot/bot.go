// Package bot provides trivial built-in agents for exercising the
// engine in simulations, matches and interactive play. None of them
// look ahead; move-selection intelligence lives outside this repo.
package bot

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/oanquan/internal/game"
)

// ErrNoMoves is returned when a bot is asked to move with no available
// positions; hosts are expected to apply the restoration rule first.
var ErrNoMoves = errors.New("no available positions")

// Random picks a uniformly random pit and direction.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random bot from a seeded rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// ChooseMove implements game.Agent.
func (b *Random) ChooseMove(state game.GameState, available []game.Pit) (game.Move, error) {
	if len(available) == 0 {
		return game.Move{}, ErrNoMoves
	}
	way := game.Clockwise
	if b.rng.IntN(2) == 1 {
		way = game.CounterClockwise
	}
	return game.Move{
		Pos: available[b.rng.IntN(len(available))],
		Way: way,
	}, nil
}

// FirstAvailable always plays the first available pit clockwise: a
// fully deterministic opponent for tests and demos.
type FirstAvailable struct{}

// ChooseMove implements game.Agent.
func (FirstAvailable) ChooseMove(state game.GameState, available []game.Pit) (game.Move, error) {
	if len(available) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return game.Move{Pos: available[0], Way: game.Clockwise}, nil
}

// New constructs a bot by strategy name. The rng is only used by
// strategies that need one.
func New(strategy string, rng *rand.Rand) (game.Agent, error) {
	switch strategy {
	case "random":
		return NewRandom(rng), nil
	case "first":
		return FirstAvailable{}, nil
	}
	return nil, errors.New("unknown bot strategy: " + strategy)
}
