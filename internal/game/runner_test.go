package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAgent plays a fixed list of moves, then errors.
type scriptedAgent struct {
	moves []Move
	index int
}

func (a *scriptedAgent) ChooseMove(state GameState, available []Pit) (Move, error) {
	if a.index >= len(a.moves) {
		return Move{}, errors.New("script exhausted")
	}
	m := a.moves[a.index]
	a.index++
	return m, nil
}

// firstPitAgent always plays the first available pit clockwise.
type firstPitAgent struct{}

func (firstPitAgent) ChooseMove(state GameState, available []Pit) (Move, error) {
	return Move{Pos: available[0], Way: Clockwise}, nil
}

// badAgent returns a move the engine must reject.
type badAgent struct{}

func (badAgent) ChooseMove(state GameState, available []Pit) (Move, error) {
	return Move{Pos: QA, Way: Clockwise}, nil
}

func TestRunnerPlaysToCompletion(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	r := NewRunner(g, firstPitAgent{}, firstPitAgent{}, logger)

	result, err := r.Play()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Reason)
	assert.Greater(t, result.Rounds, 0)

	// Deterministic self-play either reaches a real ending or the
	// round cap; both yield a scoreable result.
	if ended, reason := g.IsEnd(); ended {
		assert.Equal(t, reason, result.Reason)
	} else {
		assert.Contains(t, result.Reason, "round limit")
	}
}

func TestRunnerConservesValue(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	start := boardValue(g.State())

	r := NewRunner(g, firstPitAgent{}, firstPitAgent{}, logger)
	_, err := r.Play()
	require.NoError(t, err)

	// Every restoration trades 10 points for 5 board value, so the
	// deficit from the starting total must be a multiple of 5. This
	// holds at any point of the game, finished or not.
	state := g.State()
	end := boardValue(state) + state.Score[SideA] + state.Score[SideB]
	assert.LessOrEqual(t, end, start)
	assert.Zero(t, (start-end)%5)
}

func TestRunnerFallsBackOnInvalidAgentMove(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	r := NewRunner(g, badAgent{}, firstPitAgent{}, logger)
	r.SetMaxRounds(4)

	// The runner substitutes a legal move instead of failing the game.
	result, err := r.Play()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Greater(t, g.State().Round, 0)
}

func TestRunnerFallsBackOnOpponentsPit(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A1: peasants(SideA, 2),
		B1: peasants(SideB, 2),
	}, map[Side]int{})

	// Side A answers with side B's pit; the runner must substitute a
	// move from A's own available positions instead of committing it.
	agentA := &scriptedAgent{moves: []Move{{Pos: B1, Way: Clockwise}}}
	r := NewRunner(g, agentA, firstPitAgent{}, logger)
	r.SetMaxRounds(1)

	result, err := r.Play()
	require.NoError(t, err)
	require.NotNil(t, result)

	state := g.State()
	assert.Equal(t, 1, state.Round)
	assert.Empty(t, state.Board[A1], "fallback should have played A1")
	assert.Len(t, state.Board[B1], 2, "B1 must be untouched by side A's turn")
}

func TestRunnerWinnerByScore(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A2: peasants(SideA, 1),
		A5: peasants(SideA, 6),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 20, SideB: 10})

	// A2 clockwise captures A5 and ends the game at 26 points.
	agentA := &scriptedAgent{moves: []Move{{Pos: A2, Way: Clockwise}}}
	r := NewRunner(g, agentA, firstPitAgent{}, logger)

	result, err := r.Play()
	require.NoError(t, err)
	assert.Equal(t, "score threshold reached by side A", result.Reason)
	assert.Equal(t, SideA, result.Winner)
	assert.False(t, result.Draw)
	assert.Equal(t, 26, result.Score[SideA])
}

func TestRunnerAppliesRestoration(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	// Side A opens with empty pits but enough score to restore, and
	// must end up moving rather than losing.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
		B2: peasants(SideB, 5),
	}, map[Side]int{SideA: 12, SideB: 10})

	r := NewRunner(g, firstPitAgent{}, firstPitAgent{}, logger)
	result, err := r.Play()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Reason)
	// Side A started with no movable pieces, so any progress proves
	// the restoration was applied.
	assert.Greater(t, g.State().Round, 0)
}

func TestRunnerEndsWhenRestorationImpossible(t *testing.T) {
	logger := log.New(io.Discard)
	g := NewGame(logger)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 9, SideB: 10})

	r := NewRunner(g, firstPitAgent{}, firstPitAgent{}, logger)
	result, err := r.Play()
	require.NoError(t, err)
	assert.Equal(t, "side A cannot restore and has no moves", result.Reason)
	assert.Equal(t, SideB, result.Winner)
}
