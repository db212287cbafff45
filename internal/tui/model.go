// Package tui is the keystroke-driven front end.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookfind/internal/debounce"
	"bookfind/internal/render"
	"bookfind/internal/search"
)

// debounceMsg is delivered when a quiet period for ticket has elapsed.
type debounceMsg struct {
	ticket debounce.Ticket
}

// searchDoneMsg carries a finished request back into Update.
type searchDoneMsg struct {
	outcome search.Outcome
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// Model is the root Bubble Tea model. The controller is shared by pointer;
// Update is the only place that mutates it.
type Model struct {
	ctrl     *search.Controller
	renderer *render.Renderer
	input    textinput.Model
	spinner  spinner.Model
	width    int
}

func New(ctrl *search.Controller, renderer *render.Renderer) Model {
	ti := textinput.New()
	ti.Placeholder = "title, author:name, ..."
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinStyle

	return Model{ctrl: ctrl, renderer: renderer, input: ti, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 22; w > 10 {
			m.input.Width = min(w, 80)
		}
		return m, nil

	case debounceMsg:
		req, ok := m.ctrl.OnSettled(msg.ticket)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.execute(req), m.spinner.Tick)

	case searchDoneMsg:
		m.ctrl.Apply(msg.outcome)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.ctrl.Close()
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	ticket, ok := m.ctrl.OnInput(m.input.Value())
	if !ok {
		return m, cmd
	}
	return m, tea.Batch(cmd, settleAfter(m.ctrl.Debouncer().Quiet(), ticket))
}

func settleAfter(d time.Duration, ticket debounce.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket}
	})
}

// execute runs the request off the event loop.
func (m Model) execute(req search.Request) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return searchDoneMsg{outcome: ctrl.Execute(req)}
	}
}

func (m Model) View() string {
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(render.HeaderStyle.Render("Find Book") + "\n")
	b.WriteString(labelStyle.Render("Search for a book: ") + m.input.View() + "\n\n")

	if snap.Loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	}
	if snap.Error != "" {
		b.WriteString(render.ErrorStyle.Render(snap.Error) + "\n")
	}
	if snap.Loading || snap.Error != "" {
		b.WriteString("\n")
	}

	b.WriteString(render.Text(m.renderer.Build(snap.Results), m.width))
	b.WriteString("\n" + helpStyle.Render("esc: quit") + "\n")
	return b.String()
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
