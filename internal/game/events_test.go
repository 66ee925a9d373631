package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusReceivesCommittedEvents(t *testing.T) {
	g := newTestGame(t)
	rec := &eventRecorder{}
	g.EventBus().Subscribe(rec)

	events, _, _, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)

	require.Len(t, rec.events, len(events))
	for i := range events {
		assert.Equal(t, events[i].EventType(), rec.events[i].EventType())
	}
}

func TestEventBusSilentOnInvalidMove(t *testing.T) {
	g := newTestGame(t)
	rec := &eventRecorder{}
	g.EventBus().Subscribe(rec)

	_, _, _, err := g.CommitAction(Move{Pos: QA, Way: Clockwise})
	require.ErrorIs(t, err, ErrInvalidMove)
	assert.Empty(t, rec.events, "rejected moves publish nothing")
}

func TestEventBusUnsubscribe(t *testing.T) {
	g := newTestGame(t)
	rec := &eventRecorder{}
	g.EventBus().Subscribe(rec)
	g.EventBus().Unsubscribe(rec)

	_, _, _, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)
	assert.Empty(t, rec.events)
}

func TestResolutionStartsWithPickup(t *testing.T) {
	g := newTestGame(t)

	events, _, _, err := g.CommitAction(Move{Pos: A1, Way: Clockwise})
	require.NoError(t, err)

	pickup, ok := events[0].(PickupEvent)
	require.True(t, ok)
	assert.Equal(t, A1, pickup.Pos)
	assert.Len(t, pickup.Pieces, initialPeasants)

	// The first sowing walk drops one token per slot beside A1.
	for i := 1; i <= initialPeasants; i++ {
		drop, ok := events[i].(DropEvent)
		require.True(t, ok, "event %d should be a drop", i)
		assert.Equal(t, ringOrder[step(ringIndex[A1], Clockwise, i)], drop.To)
	}
}

func TestEventPiecesAreCopies(t *testing.T) {
	pieces := peasants(SideA, 3)
	e := NewPickupEvent(A1, pieces)

	pieces[0] = Token{Kind: Mandarin, Side: SideB}
	assert.Equal(t, Peasant, e.Pieces[0].Kind)
}

func TestScoreUpdateFollowsEveryCapture(t *testing.T) {
	g := newTestGame(t)
	injectState(t, g, map[Pit][]Token{
		QA: {mandarin(SideA)},
		QB: {mandarin(SideB)},
		A2: peasants(SideA, 1),
		A5: peasants(SideA, 2),
		B1: peasants(SideB, 5),
	}, map[Side]int{SideA: 10, SideB: 10})

	events, _, _, err := g.CommitAction(Move{Pos: A2, Way: Clockwise})
	require.NoError(t, err)

	for i, e := range events {
		if _, ok := e.(CaptureEvent); ok {
			require.Greater(t, len(events), i+1)
			_, ok := events[i+1].(ScoreUpdateEvent)
			assert.True(t, ok, "capture at index %d must be followed by a score update", i)
		}
	}
}
