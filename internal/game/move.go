package game

import "fmt"

// Direction selects which way tokens are sown around the ring.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// String returns the wire form of the direction.
func (d Direction) String() string {
	if d == CounterClockwise {
		return "counter_clockwise"
	}
	return "clockwise"
}

// ParseDirection accepts the wire forms plus the short forms used by
// the CLI ("cw"/"ccw").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "clockwise", "cw":
		return Clockwise, nil
	case "counter_clockwise", "counterclockwise", "ccw":
		return CounterClockwise, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Move is one player's requested action for a turn: the starting pit
// and the sowing direction.
type Move struct {
	Pos Pit
	Way Direction
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Pos, m.Way)
}
