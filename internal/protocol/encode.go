package protocol

import (
	"fmt"

	"github.com/lox/oanquan/internal/game"
)

// EncodeState converts an engine snapshot to its wire form.
func EncodeState(state game.GameState) State {
	board := make(map[string][]string, len(state.Board))
	for pit, stack := range state.Board {
		tokens := make([]string, len(stack))
		for i, tok := range stack {
			tokens[i] = tok.String()
		}
		board[string(pit)] = tokens
	}
	return State{
		Board: board,
		Score: encodeScore(state.Score),
		Round: state.Round,
	}
}

// EncodeEvents converts resolution events to their wire form.
func EncodeEvents(events []game.ActionEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, encodeEvent(e))
	}
	return out
}

func encodeEvent(e game.ActionEvent) Event {
	switch ev := e.(type) {
	case game.PickupEvent:
		return Event{Type: string(ev.EventType()), Pos: string(ev.Pos), Pieces: encodeTokens(ev.Pieces)}
	case game.DropEvent:
		return Event{Type: string(ev.EventType()), From: string(ev.From), To: string(ev.To), Piece: ev.Piece.String()}
	case game.CaptureEvent:
		return Event{Type: string(ev.EventType()), Pos: string(ev.Pos), Team: ev.Team.String(), Pieces: encodeTokens(ev.Pieces)}
	case game.ForbiddenCaptureEvent:
		return Event{Type: string(ev.EventType()), Pos: string(ev.Pos), Reason: ev.Reason, Pieces: encodeTokens(ev.Pieces)}
	case game.ScoreUpdateEvent:
		return Event{Type: string(ev.EventType()), Score: encodeScore(ev.Score)}
	case game.EndGameEvent:
		return Event{Type: string(ev.EventType()), Reason: ev.Reason, Score: encodeScore(ev.FinalScore)}
	}
	return Event{Type: string(e.EventType())}
}

// DecodeState reconstructs an engine snapshot from its wire form, e.g.
// on the client side of a move request.
func DecodeState(s State) (game.GameState, error) {
	board := make(map[game.Pit][]game.Token, len(s.Board))
	for name, stack := range s.Board {
		pit, err := game.ParsePit(name)
		if err != nil {
			return game.GameState{}, fmt.Errorf("decode state: %w", err)
		}
		tokens := make([]game.Token, len(stack))
		for i, ts := range stack {
			tok, err := game.ParseToken(ts)
			if err != nil {
				return game.GameState{}, fmt.Errorf("decode state: %w", err)
			}
			tokens[i] = tok
		}
		board[pit] = tokens
	}

	score := make(map[game.Side]int, len(s.Score))
	for name, v := range s.Score {
		side, err := game.ParseSide(name)
		if err != nil {
			return game.GameState{}, fmt.Errorf("decode state: %w", err)
		}
		score[side] = v
	}

	return game.GameState{Board: board, Score: score, Round: s.Round}, nil
}

// DecodeMove validates a wire move and converts it to an engine move.
func DecodeMove(m *Move) (game.Move, error) {
	pos, err := game.ParsePit(m.Pos)
	if err != nil {
		return game.Move{}, fmt.Errorf("decode move: %w", err)
	}
	way, err := game.ParseDirection(m.Way)
	if err != nil {
		return game.Move{}, fmt.Errorf("decode move: %w", err)
	}
	return game.Move{Pos: pos, Way: way}, nil
}

func encodeTokens(tokens []game.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

func encodeScore(score map[game.Side]int) map[string]int {
	out := make(map[string]int, len(score))
	for side, v := range score {
		out[side.String()] = v
	}
	return out
}
