// Package tui implements interactive terminal play against a built-in
// bot using Bubble Tea. The human plays side A; the bot answers each
// committed move immediately.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/oanquan/internal/game"
)

const (
	humanSide = game.SideA
	botSide   = game.SideB
)

// Model is the Bubble Tea model for a local game against a bot.
type Model struct {
	game   *game.Game
	bot    game.Agent
	logger *log.Logger

	board       *game.BoardDisplay
	logViewport viewport.Model
	moveInput   textinput.Model

	gameLog   []string
	over      bool
	endReason string
	quitting  bool

	width       int
	height      int
	initialized bool
}

// New creates a TUI model over a fresh game. The bot plays side B.
func New(g *game.Game, botAgent game.Agent, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "pit and direction, e.g. \"a3 cw\" or \"b1 ccw\""
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		game:        g,
		bot:         botAgent,
		logger:      logger.WithPrefix("tui"),
		board:       game.NewBoardDisplay(),
		logViewport: vp,
		moveInput:   ti,
		gameLog:     []string{"You are side A. Enter a move to begin."},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := msg.Height - 14
		if logHeight < 3 {
			logHeight = 3
		}
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = logHeight
		m.refreshLog()
		m.initialized = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "q":
			if m.over {
				m.quitting = true
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
		case "enter":
			m.handleInput(strings.TrimSpace(m.moveInput.Value()))
			m.moveInput.SetValue("")
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.moveInput, cmd = m.moveInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput parses and plays one human move, then lets the bot
// answer.
func (m *Model) handleInput(raw string) {
	if m.over {
		m.appendLog("game is over, press q to quit")
		return
	}
	if raw == "" {
		return
	}

	move, err := parseMove(raw)
	if err != nil {
		m.appendLog(fmt.Sprintf("? %s", err))
		return
	}
	if move.Pos.Owner() != humanSide {
		m.appendLog(fmt.Sprintf("%s belongs to side %s", move.Pos, botSide))
		return
	}

	if !m.ensureMovable(humanSide, "you") {
		return
	}

	events, ended, reason, err := m.game.CommitAction(move)
	if err != nil {
		m.appendLog(fmt.Sprintf("invalid move: %s", err))
		return
	}
	m.appendEvents("you", events)
	if ended {
		m.endGame(reason)
		return
	}

	m.botTurn()
}

// botTurn plays side B once, applying restoration if needed.
func (m *Model) botTurn() {
	if !m.ensureMovable(botSide, "bot") {
		return
	}

	available := m.game.AvailablePositions(botSide)
	move, err := m.bot.ChooseMove(m.game.State(), available)
	if err != nil {
		move = game.Move{Pos: available[0], Way: game.Clockwise}
	}

	events, ended, reason, err := m.game.CommitAction(move)
	if err != nil {
		// Bot picked an unplayable pit; retry with a known-legal move.
		m.logger.Error("bot move rejected", "move", move, "error", err)
		events, ended, reason, err = m.game.CommitAction(game.Move{Pos: available[0], Way: game.Clockwise})
		if err != nil {
			m.endGame(err.Error())
			return
		}
	}
	m.appendLog(fmt.Sprintf("bot plays %s %s", move.Pos, move.Way))
	m.appendEvents("bot", events)
	if ended {
		m.endGame(reason)
		return
	}

	// The human may now be out of moves.
	m.ensureMovable(humanSide, "you")
}

// ensureMovable applies the restoration rule for a side with no
// available positions. Returns false when the game ended instead.
func (m *Model) ensureMovable(side game.Side, who string) bool {
	if ended, reason := m.game.IsEnd(); ended {
		m.endGame(reason)
		return false
	}
	if len(m.game.AvailablePositions(side)) > 0 {
		return true
	}

	ok, msg := m.game.RestorePeasants(side)
	if !ok {
		_, reason := m.game.IsEnd()
		m.endGame(reason)
		return false
	}
	m.appendLog(fmt.Sprintf("%s: %s", who, msg))
	return true
}

func (m *Model) endGame(reason string) {
	if m.over {
		return
	}
	m.over = true
	m.endReason = reason
	score := m.game.State().Score
	m.appendLog(fmt.Sprintf("game over: %s", reason))
	m.appendLog(fmt.Sprintf("final score A: %d | B: %d", score[game.SideA], score[game.SideB]))
	m.appendLog("press q to quit")
}

func (m *Model) appendEvents(who string, events []game.ActionEvent) {
	for _, e := range events {
		m.appendLog(fmt.Sprintf("%s: %s", who, game.FormatEvent(e)))
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.board.Render(m.game.State()))
	sb.WriteString("\n")
	sb.WriteString(m.logViewport.View())
	sb.WriteString("\n\n")
	if m.over {
		sb.WriteString("game over, q to quit")
	} else {
		sb.WriteString(m.moveInput.View())
	}
	sb.WriteString("\n")
	return sb.String()
}

// parseMove reads "a3 cw" style input: a pit name followed by an
// optional direction (clockwise when omitted).
func parseMove(raw string) (game.Move, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 || len(fields) > 2 {
		return game.Move{}, fmt.Errorf("expected \"pit [direction]\", got %q", raw)
	}

	pit, err := game.ParsePit(strings.ToUpper(fields[0]))
	if err != nil {
		return game.Move{}, err
	}
	if pit.IsStore() {
		return game.Move{}, fmt.Errorf("store pit %s cannot be played", pit)
	}

	way := game.Clockwise
	if len(fields) == 2 {
		way, err = game.ParseDirection(strings.ToLower(fields[1]))
		if err != nil {
			return game.Move{}, err
		}
	}
	return game.Move{Pos: pit, Way: way}, nil
}
