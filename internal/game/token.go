package game

import "fmt"

// Side identifies one of the two players.
type Side int

const (
	SideA Side = iota
	SideB
)

// String returns the short side name used in labels and logs.
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Sides lists both sides in turn order.
var Sides = []Side{SideA, SideB}

// ParseSide converts "A" or "B" into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "A", "a":
		return SideA, nil
	case "B", "b":
		return SideB, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Kind distinguishes the two token types on the board.
type Kind int

const (
	// Peasant is the ordinary movable counter, worth 1 point when captured.
	Peasant Kind = iota
	// Mandarin is the store counter, worth 10 points when captured.
	// Mandarins never move through sowing.
	Mandarin
)

// Token is a single piece on the board. Ownership is fixed for the
// lifetime of the token; captures score to the owner, not the capturer.
type Token struct {
	Kind Kind
	Side Side
}

// Value returns the capture value of the token.
func (t Token) Value() int {
	if t.Kind == Mandarin {
		return mandarinValue
	}
	return peasantValue
}

// String returns the wire form of the token, e.g. "peasant_a" or
// "mandarin_b".
func (t Token) String() string {
	kind := "peasant"
	if t.Kind == Mandarin {
		kind = "mandarin"
	}
	if t.Side == SideA {
		return kind + "_a"
	}
	return kind + "_b"
}

// ParseToken converts the wire form back into a Token.
func ParseToken(s string) (Token, error) {
	switch s {
	case "peasant_a":
		return Token{Kind: Peasant, Side: SideA}, nil
	case "peasant_b":
		return Token{Kind: Peasant, Side: SideB}, nil
	case "mandarin_a":
		return Token{Kind: Mandarin, Side: SideA}, nil
	case "mandarin_b":
		return Token{Kind: Mandarin, Side: SideB}, nil
	}
	return Token{}, fmt.Errorf("unknown token %q", s)
}
