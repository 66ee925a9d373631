package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DisplayStyles contains styling for the board display.
type DisplayStyles struct {
	Header   lipgloss.Style
	PitLabel lipgloss.Style
	PitCount lipgloss.Style
	Store    lipgloss.Style
	Mandarin lipgloss.Style
	Score    lipgloss.Style
	Empty    lipgloss.Style
}

// NewDisplayStyles creates the default board styles. When the terminal
// reports no color support the styles degrade to plain text.
func NewDisplayStyles() *DisplayStyles {
	if termenv.ColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return &DisplayStyles{
			Header: plain, PitLabel: plain, PitCount: plain,
			Store: plain, Mandarin: plain, Score: plain, Empty: plain,
		}
	}
	return &DisplayStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		PitLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		PitCount: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Store: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Mandarin: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Score: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// BoardDisplay renders GameState snapshots for terminals.
type BoardDisplay struct {
	styles *DisplayStyles
}

// NewBoardDisplay creates a board display with default styles.
func NewBoardDisplay() *BoardDisplay {
	return &BoardDisplay{styles: NewDisplayStyles()}
}

// Render draws the board with side B's row on top, the two store pits
// at the ends, and both scores underneath:
//
//	        B1    B2    B3    B4    B5
//	 QA [*1]                          QB [*1]
//	        A1    A2    A3    A4    A5
func (bd *BoardDisplay) Render(state GameState) string {
	var sb strings.Builder

	sb.WriteString(bd.styles.Header.Render(fmt.Sprintf("Round %d", state.Round)))
	sb.WriteString("\n\n")

	sb.WriteString(strings.Repeat(" ", 10))
	sb.WriteString(bd.rowFor(state, SideB))
	sb.WriteString("\n")

	left := bd.storeCell(state, SideA)
	right := bd.storeCell(state, SideB)
	sb.WriteString(fmt.Sprintf("%s%s%s\n", left, strings.Repeat(" ", 44), right))

	sb.WriteString(strings.Repeat(" ", 10))
	sb.WriteString(bd.rowFor(state, SideA))
	sb.WriteString("\n\n")

	sb.WriteString(bd.styles.Score.Render(
		fmt.Sprintf("Score  A: %d   B: %d", state.Score[SideA], state.Score[SideB])))
	sb.WriteString("\n")

	return sb.String()
}

func (bd *BoardDisplay) rowFor(state GameState, side Side) string {
	cells := make([]string, 0, len(sidePits[side]))
	for _, p := range sidePits[side] {
		count := len(state.Board[p])
		label := bd.styles.PitLabel.Render(string(p))
		var body string
		if count == 0 {
			body = bd.styles.Empty.Render("·")
		} else {
			body = bd.styles.PitCount.Render(fmt.Sprintf("%d", count))
		}
		cells = append(cells, fmt.Sprintf("%s:%s", label, body))
	}
	return strings.Join(cells, "   ")
}

func (bd *BoardDisplay) storeCell(state GameState, side Side) string {
	pit := storePits[side]
	mandarins, peasants := 0, 0
	for _, t := range state.Board[pit] {
		if t.Kind == Mandarin {
			mandarins++
		} else {
			peasants++
		}
	}
	label := bd.styles.Store.Render(string(pit))
	body := fmt.Sprintf("%s+%d", strings.Repeat("*", mandarins), peasants)
	if mandarins > 0 {
		body = bd.styles.Mandarin.Render(body)
	} else {
		body = bd.styles.Empty.Render(body)
	}
	return fmt.Sprintf("%s[%s]", label, body)
}

// FormatEvent renders one ActionEvent as a log line, mirroring the
// order and vocabulary of the resolution itself.
func FormatEvent(e ActionEvent) string {
	switch ev := e.(type) {
	case PickupEvent:
		return fmt.Sprintf("pickup %d from %s", len(ev.Pieces), ev.Pos)
	case DropEvent:
		return fmt.Sprintf("drop %s %s -> %s", ev.Piece, ev.From, ev.To)
	case CaptureEvent:
		return fmt.Sprintf("capture %d at %s (team %s)", len(ev.Pieces), ev.Pos, ev.Team)
	case ForbiddenCaptureEvent:
		return fmt.Sprintf("forbidden capture at %s (%s)", ev.Pos, ev.Reason)
	case ScoreUpdateEvent:
		return fmt.Sprintf("score A: %d | B: %d", ev.Score[SideA], ev.Score[SideB])
	case EndGameEvent:
		return fmt.Sprintf("game over: %s", ev.Reason)
	}
	return string(e.EventType())
}
