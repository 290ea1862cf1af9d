// Package repl implements the interactive operator console: a bubbletea
// program that only ever invokes analyze/perft and formats their events,
// never touching search internals directly (spec.md §6's "operator
// interface"). Grounded on the charmbracelet/bubbletea + lipgloss stack
// the rest of the example pack's TUI manifests use (see DESIGN.md); the
// teacher itself has no TUI, so the Update/View shape is adapted from
// those reference manifests rather than from hailam-chessplay.
package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
	"github.com/kestrelchess/kestrel/internal/notation"
	"github.com/kestrelchess/kestrel/internal/search"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Model is the bubbletea program state: the current position plus a
// scrollback of rendered output lines.
type Model struct {
	input      textinput.Model
	history    *search.StateHistory
	state      board.State
	lines      []string
	lastResult search.Result
	quitting   bool
}

// New returns a Model starting from the standard opening position.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "e2e4, .board, .perft 4, .analyze 6, .quit"
	ti.Focus()
	return Model{
		input:   ti,
		history: search.NewStateHistory(),
		state:   board.StartingState(),
		lines:   []string{infoStyle.Render("kestrel interactive console — type .help for commands")},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.lines = append(m.lines, promptStyle.Render("> "+line))
			if m.runCommand(line) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	return b.String()
}

// runCommand executes one input line against the model, returning true if
// the console should exit.
func (m *Model) runCommand(line string) bool {
	switch {
	case line == ".quit" || line == ".exit":
		return true
	case line == ".help":
		m.print("commands: .board  .status  .perft <depth>  .analyze <depth>  .fen <FEN>  <move>")
	case line == ".board":
		m.print(m.state.Board.String())
	case line == ".status":
		m.print(fmt.Sprintf("eval=%d", m.lastResult.Evaluation))
	case strings.HasPrefix(line, ".perft "):
		m.runPerft(strings.TrimPrefix(line, ".perft "))
	case strings.HasPrefix(line, ".analyze "):
		m.runAnalyze(strings.TrimPrefix(line, ".analyze "))
	case strings.HasPrefix(line, ".fen "):
		m.runFEN(strings.TrimPrefix(line, ".fen "))
	default:
		m.runMove(line)
	}
	return false
}

func (m *Model) print(s string) {
	m.lines = append(m.lines, s)
}

func (m *Model) runPerft(arg string) {
	depth, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		m.print(errorStyle.Render("usage: .perft <depth>"))
		return
	}
	total := search.Perft(m.state, depth, nil)
	m.print(fmt.Sprintf("perft(%d) = %d", depth, total))
}

func (m *Model) runAnalyze(arg string) {
	depth, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		m.print(errorStyle.Render("usage: .analyze <depth>"))
		return
	}
	join, control, events := search.Analyze(m.state, 1, eval.NewEvaluator(), depth, nil, m.history)
	for range events {
	}
	result := <-join
	close(control)
	m.lastResult = result
	m.print(fmt.Sprintf("bestmove %s  eval=%d", notation.FormatLongAlgebraic(result.Artifact.BestMove), result.Evaluation))
}

func (m *Model) runFEN(arg string) {
	s, err := notation.ParseFEN(strings.TrimSpace(arg))
	if err != nil {
		m.print(errorStyle.Render(err.Error()))
		return
	}
	m.state = s
	m.history = search.NewStateHistory()
}

func (m *Model) runMove(token string) {
	var q board.MoveQuery
	var err error
	if strings.Contains(token, "=") || token == "O-O" || token == "O-O-O" || strings.ContainsAny(token, "NBRQK") {
		q, err = notation.ParseSAN(token)
	} else {
		q, err = notation.ParseLongAlgebraic(token)
	}
	if err != nil {
		m.print(errorStyle.Render(err.Error()))
		return
	}
	legal := board.GenerateLegalMoves(m.state)
	result, ok := legal.Find(q)
	if !ok {
		m.print(errorStyle.Render("not a legal move: " + token))
		return
	}
	m.history.Push(m.state.Hash())
	m.state = result.State
}
