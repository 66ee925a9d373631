package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The opening position is fully deterministic, so the first move makes
// a good end-to-end regression: A1 clockwise chains into a six-token
// capture at A2 and finally halts on a forbidden capture at QB.
func TestOpeningMoveRegression(t *testing.T) {
	g := newTestGame(t)

	events, ended, reason, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)
	assert.False(t, ended)
	assert.Empty(t, reason)

	state := g.State()
	assert.Equal(t, 6, state.Score[SideA])
	assert.Equal(t, 0, state.Score[SideB])

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	forbidden, ok := last.(ForbiddenCaptureEvent)
	require.True(t, ok, "resolution should halt on a forbidden capture, got %s", last.EventType())
	assert.Equal(t, QB, forbidden.Pos)
	assert.Equal(t, forbiddenMandarinReason, forbidden.Reason)

	// Both mandarins are still home.
	assert.Equal(t, Mandarin, state.Board[QA][0].Kind)
	assert.Equal(t, Mandarin, state.Board[QB][0].Kind)
}

func TestCaptureAfterEmptyPit(t *testing.T) {
	g := newTestGame(t)
	// Sowing one token from A2 lands in A3; A4 is empty and A5 is not,
	// so A5 is captured. Its mixed contents score per-owner.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A2: peasants(SideA, 1),
		A5: {
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideA},
		},
		B3: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 10})

	events, _, _, err := g.CommitAction(Move{Pos: A2, Way: Clockwise})
	require.NoError(t, err)

	state := g.State()
	assert.Empty(t, state.Board[A5], "captured pit is emptied")
	// Tokens score to their own owners, not to the capturing side.
	assert.Equal(t, 11, state.Score[SideA])
	assert.Equal(t, 12, state.Score[SideB])

	var capture *CaptureEvent
	for _, e := range events {
		if c, ok := e.(CaptureEvent); ok {
			capture = &c
			break
		}
	}
	require.NotNil(t, capture)
	assert.Equal(t, A5, capture.Pos)
	assert.Len(t, capture.Pieces, 3)
}

func TestChainedCaptures(t *testing.T) {
	g := newTestGame(t)
	// After capturing A5, the walk continues: QB is empty so B5 is
	// captured next, then B4 empty / B3 empty halts the chain.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		A2: peasants(SideA, 1),
		A5: peasants(SideA, 3),
		B5: peasants(SideB, 2),
		B1: peasants(SideB, 4),
	}, map[Side]int{SideA: 10, SideB: 10})

	events, _, _, err := g.CommitAction(Move{Pos: A2, Way: Clockwise})
	require.NoError(t, err)

	state := g.State()
	assert.Empty(t, state.Board[A5])
	assert.Empty(t, state.Board[B5])
	assert.Equal(t, 13, state.Score[SideA])
	assert.Equal(t, 12, state.Score[SideB])

	captures := 0
	for _, e := range events {
		if _, ok := e.(CaptureEvent); ok {
			captures++
		}
	}
	assert.Equal(t, 2, captures)
}

func TestHaltOnTwoEmptyPits(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A1: peasants(SideA, 1),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 10})

	// One token into A2; A3 and A4 are both empty, so nothing happens.
	events, _, _, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)

	state := g.State()
	assert.Equal(t, 10, state.Score[SideA])
	assert.Equal(t, 10, state.Score[SideB])
	assert.Len(t, events, 2) // pickup + one drop
}

func TestForbiddenCaptureOnGuardedStore(t *testing.T) {
	g := newTestGame(t)
	// The walk lands in A4, A5 is empty, and QB holds exactly five
	// tokens: capture must be refused and resolution must halt.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {
			mandarin(SideB),
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
		},
		A3: peasants(SideA, 1),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 10})
	before := g.State()

	events, ended, _, err := g.CommitAction(Move{Pos: A3, Way: Clockwise})
	require.NoError(t, err)
	assert.False(t, ended)

	state := g.State()
	assert.Equal(t, before.Score[SideA], state.Score[SideA])
	assert.Equal(t, before.Score[SideB], state.Score[SideB])
	assert.Len(t, state.Board[QB], 5, "guarded store pit keeps its tokens")

	last := events[len(events)-1]
	forbidden, ok := last.(ForbiddenCaptureEvent)
	require.True(t, ok)
	assert.Equal(t, QB, forbidden.Pos)
}

func TestStoreCaptureAboveGuard(t *testing.T) {
	g := newTestGame(t)
	// QB holds six tokens, above the guard, so it may be captured. The
	// mandarin and peasants inside score to side B even though side A
	// triggered the capture.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {
			mandarin(SideB),
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
			{Kind: Peasant, Side: SideB},
		},
		A3: peasants(SideA, 1),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 5})

	_, _, _, err := g.CommitAction(Move{Pos: A3, Way: Clockwise})
	require.NoError(t, err)

	state := g.State()
	assert.Empty(t, state.Board[QB])
	assert.Equal(t, 10, state.Score[SideA])
	assert.Equal(t, 5+mandarinValue+5*peasantValue, state.Score[SideB])
}

func TestRestorationScenario(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 12})

	canContinue, msg := g.RestorePeasants(SideA)
	require.True(t, canContinue)
	assert.NotEmpty(t, msg)

	state := g.State()
	assert.Equal(t, 2, state.Score[SideA])
	for _, p := range sidePits[SideA] {
		require.Len(t, state.Board[p], 1, "pit %s", p)
		assert.Equal(t, Peasant, state.Board[p][0].Kind)
		assert.Equal(t, SideA, state.Board[p][0].Side)
	}
}

func TestRestorationDeniedWhenBroke(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 9})

	canContinue, msg := g.RestorePeasants(SideA)
	assert.False(t, canContinue)
	assert.NotEmpty(t, msg)
	assert.Equal(t, 9, g.State().Score[SideA], "denied restoration must not debit")
}

func TestRestorationNoOpWithMovesLeft(t *testing.T) {
	g := newTestGame(t)

	canContinue, msg := g.RestorePeasants(SideA)
	assert.True(t, canContinue)
	assert.Empty(t, msg)
	assert.Equal(t, 0, g.State().Score[SideA])
	assert.Len(t, g.State().Board[A1], initialPeasants)
}

func TestRestorationConservesAfterNextMove(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 12, SideB: 10})

	canContinue, _ := g.RestorePeasants(SideA)
	require.True(t, canContinue)

	// The conservation baseline tracks the restoration debit, so the
	// next committed move still passes the invariant check.
	_, _, _, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)
}

func TestEndByScoreThreshold(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A1: peasants(SideA, 5),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 25})

	ended, reason := g.IsEnd()
	assert.True(t, ended)
	assert.Equal(t, "score threshold reached by side A", reason)
}

func TestEndByNoMandarins(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		A1: peasants(SideA, 5),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 10})

	ended, reason := g.IsEnd()
	assert.True(t, ended)
	assert.Equal(t, "no mandarins remain", reason)
}

func TestEndByNoRestorePossible(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 9, SideB: 10})

	ended, reason := g.IsEnd()
	assert.True(t, ended)
	assert.Equal(t, "side A cannot restore and has no moves", reason)
}

func TestEndChecksAreOrdered(t *testing.T) {
	g := newTestGame(t)
	// Both the no-mandarin and score conditions hold; the no-mandarin
	// reason wins because it is checked first.
	injectState(t, g, map[Pit][]Token{
		A1: peasants(SideA, 5),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 30, SideB: 10})

	ended, reason := g.IsEnd()
	assert.True(t, ended)
	assert.Equal(t, "no mandarins remain", reason)
}

func TestGameContinuesOtherwise(t *testing.T) {
	g := newTestGame(t)
	ended, reason := g.IsEnd()
	assert.False(t, ended)
	assert.Empty(t, reason)
}

func TestEndGameEventEmittedOnFinalMove(t *testing.T) {
	g := newTestGame(t)
	// Capturing A5 (worth 6 to side A) pushes A past the threshold.
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A2: peasants(SideA, 1),
		A5: peasants(SideA, 6),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 20, SideB: 10})

	events, ended, reason, err := g.CommitAction(Move{Pos: A2, Way: Clockwise})
	require.NoError(t, err)
	assert.True(t, ended)
	assert.Equal(t, "score threshold reached by side A", reason)

	last := events[len(events)-1]
	end, ok := last.(EndGameEvent)
	require.True(t, ok)
	assert.Equal(t, reason, end.Reason)
	assert.Equal(t, 26, end.FinalScore[SideA])
}
