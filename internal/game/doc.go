// Package game implements the rules engine for the Vietnamese mancala
// game Ô Ăn Quan.
//
// The main type is Game, which owns the authoritative board, scores and
// round counter for one game and resolves moves against it. Callers
// only ever see deep-copied GameState snapshots, so a rejected move can
// never corrupt live state.
//
// # Basic Usage
//
// Create a game and commit a move:
//
//	g := game.NewGame(logger)
//	positions := g.AvailablePositions(game.SideA)
//	events, ended, reason, err := g.CommitAction(game.Move{Pos: positions[0], Way: game.Clockwise})
//
// Before a side's turn, a host with no legal positions for that side
// applies the restoration rule:
//
//	if len(g.AvailablePositions(side)) == 0 {
//	    canContinue, _ := g.RestorePeasants(side)
//	    ...
//	}
//
// # Architecture
//
// Game delegates to small pieces:
//   - board: the fixed 12-slot ring and its wrap-around arithmetic
//   - ActionEvent / EventBus: an ordered observability log of each
//     move's resolution (pickup, drop, capture, score updates)
//   - Runner: drives a full game between two Agents, applying the
//     restoration rule and turn alternation
//
// Moves are resolved on a private working copy and swapped in
// atomically, so execution is a pure function of (state, move): the
// same inputs always produce the same resulting state and event
// sequence.
package game
