// Package repl is the interactive calculator surface: a line editor with
// history, a scrollback of results, and the command set (help, vars, memory,
// store, log, ...).
package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davidesantangelo/nmri"
	"github.com/davidesantangelo/nmri/internal/session"
)

// Options configures an interactive session.
type Options struct {
	Logger *session.Logger
	Color  bool
}

// Run starts the interactive calculator and blocks until the user exits.
func Run(ctx context.Context, opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type styles struct {
	title  lipgloss.Style
	result lipgloss.Style
	errs   lipgloss.Style
	warn   lipgloss.Style
	echo   lipgloss.Style
	hint   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		result: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errs:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		echo:   lipgloss.NewStyle().Faint(true),
		hint:   lipgloss.NewStyle().Faint(true),
	}
}

type model struct {
	st     *nmri.State
	logger *session.Logger
	input  textinput.Model
	styles styles

	lines   []string
	history []string
	histIdx int
	draft   string

	// warnings is filled by the evaluator's warning sink during submit.
	warnings *[]string

	width  int
	height int
}

func newModel(opts Options) model {
	warnings := new([]string)
	st := nmri.NewState(
		nmri.WithLogger(opts.Logger.Logf),
		nmri.WithWarnings(func(msg string) {
			*warnings = append(*warnings, msg)
			opts.Logger.Warnf("%s", msg)
		}),
	)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "2 + 2"
	ti.CharLimit = nmri.MaxInput
	ti.Focus()

	return model{
		st:       st,
		logger:   opts.Logger,
		input:    ti,
		styles:   newStyles(opts.Color),
		histIdx:  -1,
		warnings: warnings,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.logger.Close()
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			m.histIdx = -1
			m.draft = ""
			return m.submit(line)

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIdx == -1 {
				m.draft = m.input.Value()
				m.histIdx = len(m.history) - 1
			} else if m.histIdx > 0 {
				m.histIdx--
			}
			m.input.SetValue(m.history[m.histIdx])
			m.input.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.histIdx == -1 {
				return m, nil
			}
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
			} else {
				m.histIdx = -1
				m.input.SetValue(m.draft)
			}
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs one line of input: first as a command, then as an assignment,
// then as an expression.
func (m model) submit(line string) (tea.Model, tea.Cmd) {
	m.logger.Logf("input: %s", line)
	m.echo(line)

	reply, handled := Execute(m.st, m.logger, m.history, line)
	m.history = append(m.history, line)
	if handled {
		if reply.Quit {
			m.logger.Close()
			return m, tea.Quit
		}
		if reply.Clear {
			m.lines = nil
			return m, nil
		}
		m.lines = append(m.lines, reply.Lines...)
		return m, nil
	}

	if name, expr, ok := nmri.SplitAssignment(line); ok {
		r, err := m.st.Assign(name, expr)
		m.flushWarnings()
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.lines = append(m.lines, m.styles.result.Render(fmt.Sprintf("%s = %g", name, nmri.CleanNearZero(r))))
		return m, nil
	}

	r, err := m.st.Evaluate(line)
	m.flushWarnings()
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.lines = append(m.lines, m.styles.result.Render(fmt.Sprintf("= %g", nmri.CleanNearZero(r))))
	return m, nil
}

func (m *model) echo(line string) {
	m.lines = append(m.lines, m.styles.echo.Render("> "+line))
}

func (m *model) fail(err error) {
	m.lines = append(m.lines, m.styles.errs.Render(fmt.Sprintf("Error: %v", err)))
}

func (m *model) flushWarnings() {
	for _, w := range *m.warnings {
		m.lines = append(m.lines, m.styles.warn.Render("Warning: "+w))
	}
	*m.warnings = (*m.warnings)[:0]
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("nmri"))
	b.WriteString("\n")

	visible := m.lines
	if m.height > 4 && len(visible) > m.height-4 {
		visible = visible[len(visible)-(m.height-4):]
	}
	for _, l := range visible {
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("help for commands, exit to quit"))
	return b.String()
}
