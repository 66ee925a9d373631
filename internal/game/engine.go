package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Rule constants. Captured peasants are worth 1 point and mandarins 10;
// a side with no movable peasants may buy five back for 10 points; the
// game ends at 25 points; a store pit holding 5 or fewer tokens cannot
// be captured.
const (
	initialPeasants = 5
	peasantValue    = 1
	mandarinValue   = 10
	scoreThreshold  = 25
	restoreCost     = 10
	mandarinGuard   = 5

	// maxResolution bounds the scatter/capture loop. Correct play never
	// comes close; exceeding it means the board is corrupted.
	maxResolution = 999
)

// forbiddenMandarinReason is the machine-readable reason attached to
// forbidden-capture events.
const forbiddenMandarinReason = "MANDARIN_TOTAL_LE_5"

// GameState is a caller-facing snapshot of a game. It shares no memory
// with the engine, so callers can inspect or mangle it freely.
type GameState struct {
	Board map[Pit][]Token
	Score map[Side]int
	Round int
}

// Game holds the authoritative state of one Ô Ăn Quan game and
// resolves moves against it. It is not safe for concurrent use; a host
// embedding it must serialize calls per game, which turn alternation
// does naturally.
type Game struct {
	board board
	score [2]int
	round int

	// valueTotal is the conserved quantity checked after every move:
	// board value plus both scores. Restoration lowers it by 5 (10
	// points buy back 5 peasants).
	valueTotal int

	logger *log.Logger
	bus    EventBus
}

// NewGame creates a game in the initial position.
func NewGame(logger *log.Logger) *Game {
	g := &Game{
		logger: logger.WithPrefix("game"),
		bus:    NewEventBus(),
	}
	g.Reset()
	return g
}

// EventBus returns the bus that receives every ActionEvent produced by
// committed moves.
func (g *Game) EventBus() EventBus {
	return g.bus
}

// Reset returns the game to the initial state: five peasants in every
// ordinary pit, one mandarin in each store pit, both scores zero.
func (g *Game) Reset() {
	g.board = newBoard()
	g.score = [2]int{}
	g.round = 0
	g.valueTotal = g.board.value()
}

// State returns a deep-copied snapshot of the current game state.
func (g *Game) State() GameState {
	return GameState{
		Board: g.board.snapshot(),
		Score: scoreMap(g.score),
		Round: g.round,
	}
}

// AvailablePositions returns the ordinary pits of side that hold at
// least one token, in board order. An empty result means the side must
// restore before it can move.
func (g *Game) AvailablePositions(side Side) []Pit {
	var out []Pit
	for _, p := range sidePits[side] {
		if len(g.board.tokens(p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// CommitAction validates and fully resolves one move: the initial sow
// plus the chained scatter/capture loop. On success the working state
// is swapped in atomically, the round counter advances, and the events
// describing the resolution are returned along with the game-end
// evaluation. On error the authoritative state is untouched.
func (g *Game) CommitAction(move Move) ([]ActionEvent, bool, string, error) {
	idx, ok := ringIndex[move.Pos]
	if !ok {
		return nil, false, "", fmt.Errorf("%w: unknown pit %q", ErrInvalidMove, string(move.Pos))
	}
	if move.Way != Clockwise && move.Way != CounterClockwise {
		return nil, false, "", fmt.Errorf("%w: unknown direction", ErrInvalidMove)
	}
	if move.Pos.IsStore() {
		return nil, false, "", fmt.Errorf("%w: %s is a store pit", ErrInvalidMove, move.Pos)
	}

	// All mutation happens on working copies until the final swap.
	b := g.board.clone()
	score := g.score

	movable, staying := b.peasants(idx)
	if len(movable) == 0 {
		return nil, false, "", fmt.Errorf("%w: no peasants to scatter from %s", ErrInvalidMove, move.Pos)
	}

	var events []ActionEvent
	events = append(events, NewPickupEvent(move.Pos, movable))
	b[idx] = staying
	cur := sow(&b, &events, idx, move.Way, movable)

	resolved := false
	for i := 0; i < maxResolution; i++ {
		next := step(cur, move.Way, 1)

		if len(b[next]) == 0 {
			// Empty pit: the pit beyond it decides between halting and
			// capturing.
			target := step(next, move.Way, 1)
			if len(b[target]) == 0 {
				resolved = true
				break
			}
			pit := ringOrder[target]
			if pit.IsStore() && len(b[target]) <= mandarinGuard {
				events = append(events, NewForbiddenCaptureEvent(pit, forbiddenMandarinReason, b[target]))
				resolved = true
				break
			}
			captured := b[target]
			events = append(events, NewCaptureEvent(pit, captured[0].Side, captured))
			// Each token scores to its own owner, not the capturer.
			for _, t := range captured {
				score[t.Side] += t.Value()
			}
			b[target] = nil
			events = append(events, NewScoreUpdateEvent(scoreMap(score)))
			cur = target
			continue
		}

		// Non-empty pit: pick it up and keep sowing. A store pit
		// holding only its mandarin halts resolution here.
		movable, staying := b.peasants(next)
		if len(movable) == 0 {
			resolved = true
			break
		}
		events = append(events, NewPickupEvent(ringOrder[next], movable))
		b[next] = staying
		cur = sow(&b, &events, next, move.Way, movable)
	}

	if !resolved {
		return nil, false, "", fmt.Errorf("%w: resolution exceeded %d iterations from %s", ErrInvariantViolation, maxResolution, move.Pos)
	}
	if got := b.value() + score[SideA] + score[SideB]; got != g.valueTotal {
		return nil, false, "", fmt.Errorf("%w: token conservation broken: total %d, want %d", ErrInvariantViolation, got, g.valueTotal)
	}

	g.board = b
	g.score = score
	g.round++

	ended, reason := g.IsEnd()
	if ended {
		events = append(events, NewEndGameEvent(reason, scoreMap(score)))
	}

	for _, e := range events {
		g.bus.Publish(e)
	}
	g.logger.Debug("committed move",
		"pos", move.Pos, "way", move.Way,
		"round", g.round, "events", len(events),
		"scoreA", g.score[SideA], "scoreB", g.score[SideB])

	return events, ended, reason, nil
}

// IsEnd evaluates the game-end conditions in order: both mandarins
// captured, score threshold reached, or a side that can neither move
// nor afford restoration. It never mutates state.
func (g *Game) IsEnd() (bool, string) {
	if !g.hasMandarin(SideA) && !g.hasMandarin(SideB) {
		return true, "no mandarins remain"
	}
	for _, side := range Sides {
		if g.score[side] >= scoreThreshold {
			return true, fmt.Sprintf("score threshold reached by side %s", side)
		}
	}
	for _, side := range Sides {
		if g.sideEmpty(side) && g.score[side] < restoreCost {
			return true, fmt.Sprintf("side %s cannot restore and has no moves", side)
		}
	}
	return false, ""
}

// RestorePeasants applies the restoration rule for a side with no
// movable pieces: 10 points buy one peasant for each of its five pits.
// It is a no-op when the side still has a non-empty ordinary pit, and
// reports canContinue=false when the side cannot pay.
func (g *Game) RestorePeasants(side Side) (bool, string) {
	if !g.sideEmpty(side) {
		return true, ""
	}
	if g.score[side] < restoreCost {
		return false, fmt.Sprintf("side %s does not have enough score to continue", side)
	}
	g.score[side] -= restoreCost
	for _, p := range sidePits[side] {
		i := ringIndex[p]
		g.board[i] = append(g.board[i], Token{Kind: Peasant, Side: side})
	}
	g.valueTotal -= restoreCost - initialPeasants*peasantValue
	msg := fmt.Sprintf("side %s restored %d peasants", side, initialPeasants)
	g.logger.Debug("restored peasants", "side", side, "score", g.score[side])
	return true, msg
}

// hasMandarin reports whether the side's store pit still holds its
// mandarin.
func (g *Game) hasMandarin(side Side) bool {
	for _, t := range g.board.tokens(storePits[side]) {
		if t.Kind == Mandarin {
			return true
		}
	}
	return false
}

// sideEmpty reports whether all five ordinary pits of side are empty.
func (g *Game) sideEmpty(side Side) bool {
	for _, p := range sidePits[side] {
		if len(g.board.tokens(p)) > 0 {
			return false
		}
	}
	return true
}

// sow deposits tokens one per slot around the ring, starting at the
// slot beside from, and returns the ring index where the last token
// landed.
func sow(b *board, events *[]ActionEvent, from int, dir Direction, tokens []Token) int {
	prev := from
	for n, t := range tokens {
		target := step(from, dir, n+1)
		b[target] = append(b[target], t)
		*events = append(*events, NewDropEvent(ringOrder[prev], ringOrder[target], t))
		prev = target
	}
	return step(from, dir, len(tokens))
}

func scoreMap(score [2]int) map[Side]int {
	return map[Side]int{
		SideA: score[SideA],
		SideB: score[SideB],
	}
}
