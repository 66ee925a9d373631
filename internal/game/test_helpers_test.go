package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame(log.New(io.Discard))
}

// injectState overwrites the game's board and score for scenario
// tests. Pits missing from the map are emptied. The conservation
// baseline is recomputed so CommitAction accepts the injected state.
func injectState(t *testing.T, g *Game, pits map[Pit][]Token, score map[Side]int) {
	t.Helper()
	for i := range g.board {
		g.board[i] = nil
	}
	for p, tokens := range pits {
		i, ok := ringIndex[p]
		if !ok {
			t.Fatalf("injectState: unknown pit %q", p)
		}
		g.board[i] = append([]Token(nil), tokens...)
	}
	g.score = [2]int{}
	for side, v := range score {
		g.score[side] = v
	}
	g.valueTotal = g.board.value() + g.score[SideA] + g.score[SideB]
}

func peasants(side Side, n int) []Token {
	out := make([]Token, n)
	for i := range out {
		out[i] = Token{Kind: Peasant, Side: side}
	}
	return out
}

func mandarin(side Side) Token {
	return Token{Kind: Mandarin, Side: side}
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	events []ActionEvent
}

func (r *eventRecorder) OnEvent(event ActionEvent) {
	r.events = append(r.events, event)
}

func countPeasants(state GameState) int {
	n := 0
	for _, stack := range state.Board {
		for _, tok := range stack {
			if tok.Kind == Peasant {
				n++
			}
		}
	}
	return n
}

func boardValue(state GameState) int {
	v := 0
	for _, stack := range state.Board {
		for _, tok := range stack {
			v += tok.Value()
		}
	}
	return v
}
