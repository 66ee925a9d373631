package game

import "fmt"

// Pit is the label of a single slot on the circular board.
type Pit string

// The 12 pit labels. QA and QB are the store (mandarin) pits, the
// numbered pits are the ordinary (peasant) pits of each side.
const (
	QA Pit = "QA"
	A1 Pit = "A1"
	A2 Pit = "A2"
	A3 Pit = "A3"
	A4 Pit = "A4"
	A5 Pit = "A5"
	QB Pit = "QB"
	B1 Pit = "B1"
	B2 Pit = "B2"
	B3 Pit = "B3"
	B4 Pit = "B4"
	B5 Pit = "B5"
)

const ringSize = 12

// ringOrder is the fixed circular arrangement of the board. Clockwise
// sowing walks this array forward, counter-clockwise walks it backward.
var ringOrder = [ringSize]Pit{
	QA, A1, A2, A3, A4, A5,
	QB, B5, B4, B3, B2, B1,
}

// sidePits maps each side to its five ordinary pits, in play order.
var sidePits = map[Side][]Pit{
	SideA: {A1, A2, A3, A4, A5},
	SideB: {B1, B2, B3, B4, B5},
}

// storePits maps each side to its store pit.
var storePits = map[Side]Pit{
	SideA: QA,
	SideB: QB,
}

var ringIndex = func() map[Pit]int {
	m := make(map[Pit]int, ringSize)
	for i, p := range ringOrder {
		m[p] = i
	}
	return m
}()

// IsStore reports whether the pit is one of the two store pits.
func (p Pit) IsStore() bool {
	return p == QA || p == QB
}

// Owner returns the side the pit belongs to.
func (p Pit) Owner() Side {
	if p[0] == 'Q' {
		if p == QA {
			return SideA
		}
		return SideB
	}
	if p[0] == 'A' {
		return SideA
	}
	return SideB
}

// ParsePit validates a pit label.
func ParsePit(s string) (Pit, error) {
	p := Pit(s)
	if _, ok := ringIndex[p]; !ok {
		return "", fmt.Errorf("unknown pit %q", s)
	}
	return p, nil
}

// step advances a ring index by n slots in the given direction,
// wrapping around the 12-slot circle. This is the single place where
// wrap-around arithmetic happens.
func step(i int, dir Direction, n int) int {
	d := 1
	if dir == CounterClockwise {
		d = -1
	}
	return ((i+d*n)%ringSize + ringSize) % ringSize
}

// board is the engine's working representation: token stacks indexed
// by ring position. Token order within a pit is irrelevant to the
// rules but preserved for event logging.
type board [ringSize][]Token

func newBoard() board {
	var b board
	for _, side := range Sides {
		b[ringIndex[storePits[side]]] = []Token{{Kind: Mandarin, Side: side}}
		for _, p := range sidePits[side] {
			stack := make([]Token, initialPeasants)
			for i := range stack {
				stack[i] = Token{Kind: Peasant, Side: side}
			}
			b[ringIndex[p]] = stack
		}
	}
	return b
}

func (b board) clone() board {
	var out board
	for i, stack := range b {
		out[i] = append([]Token(nil), stack...)
	}
	return out
}

// tokens returns the stack at a pit label.
func (b board) tokens(p Pit) []Token {
	return b[ringIndex[p]]
}

// peasants splits the stack at a ring position into the movable
// peasants and the mandarins that stay behind.
func (b board) peasants(i int) (movable, staying []Token) {
	for _, t := range b[i] {
		if t.Kind == Mandarin {
			staying = append(staying, t)
		} else {
			movable = append(movable, t)
		}
	}
	return movable, staying
}

// value sums the capture value of every token on the board.
func (b board) value() int {
	total := 0
	for _, stack := range b {
		for _, t := range stack {
			total += t.Value()
		}
	}
	return total
}

// snapshot deep-copies the board into the caller-facing map form.
func (b board) snapshot() map[Pit][]Token {
	m := make(map[Pit][]Token, ringSize)
	for i, p := range ringOrder {
		m[p] = append([]Token(nil), b[i]...)
	}
	return m
}
