package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forestfire/internal/engine"
	"github.com/san-kum/forestfire/internal/input"
)

const graphWidth = 30

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	treeGraph   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	fireGraph   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model adapts an engine session to the tea.Model interface.
type Model struct {
	session  *engine.Session
	tracker  *input.Tracker
	interval time.Duration

	paused   bool
	showHelp bool

	lastFrame time.Time
	fps       float64
}

func NewModel(s *engine.Session, interval time.Duration) Model {
	if interval <= 0 {
		interval = engine.DefaultInterval
	}
	return Model{
		session:  s,
		tracker:  &input.Tracker{},
		interval: interval,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(s *engine.Session, interval time.Duration) error {
	p := tea.NewProgram(NewModel(s, interval), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch keyFor(msg) {
		case input.KeyEscape, input.KeyQuit:
			return m, tea.Quit
		case input.KeyPause:
			m.paused = !m.paused
		case input.KeyHelp:
			m.showHelp = !m.showHelp
		case input.KeyReset:
			m.session.Reset()
		}
	case tea.MouseMsg:
		for _, ev := range m.translate(msg) {
			if m.session.Handle(ev) {
				return m, tea.Quit
			}
		}
		if m.paused {
			m.session.Refresh()
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now
		if m.paused {
			m.session.Refresh()
		} else {
			m.session.Advance(m.tracker)
		}
		return m, m.tick()
	}
	return m, nil
}

func keyFor(msg tea.KeyMsg) input.Key {
	if msg.Type == tea.KeyEsc {
		return input.KeyEscape
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return input.KeyQuit
	case " ":
		return input.KeyPause
	case "?":
		return input.KeyHelp
	case "r":
		return input.KeyReset
	}
	return input.KeyOther
}

func buttonFor(b tea.MouseButton) (input.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft, true
	case tea.MouseButtonRight:
		return input.ButtonRight, true
	}
	return 0, false
}

// translate updates the physical button tracker from a mouse report and
// returns the discrete events the session should see.
func (m Model) translate(msg tea.MouseMsg) []input.Event {
	button, known := buttonFor(msg.Button)
	switch msg.Action {
	case tea.MouseActionPress:
		if !known {
			return nil
		}
		m.tracker.Down(button)
		return []input.Event{input.PointerButtonDown{Button: button, X: msg.X, Y: msg.Y}}
	case tea.MouseActionRelease:
		if known {
			m.tracker.Up(button)
		} else {
			m.tracker.Observe(false, false)
		}
		return []input.Event{input.PointerMoved{X: msg.X, Y: msg.Y}}
	case tea.MouseActionMotion:
		m.tracker.Observe(known && button == input.ButtonLeft, known && button == input.ButtonRight)
		return []input.Event{input.PointerMoved{X: msg.X, Y: msg.Y}}
	}
	return nil
}

// View renders the forest with the statistics panel beside it.
func (m Model) View() string {
	grid := m.session.Frame().Render()
	if m.showHelp {
		return lipgloss.JoinHorizontal(lipgloss.Top, grid, statsStyle.Render(helpText))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, statsStyle.Render(m.stats()))
}

func (m Model) stats() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("FOREST FIRES") + "\n")
	if m.paused {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(runStyle.Render("RUNNING") + "\n\n")
	}

	hist := m.session.History()
	census, _ := hist.Last()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Generation", fmt.Sprintf("%d", m.session.Generation()))
	row("Seed", fmt.Sprintf("%d", m.session.Seed()))
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Trees", fmt.Sprintf("%d", census.Trees))
	row("Saplings", fmt.Sprintf("%d", census.Saplings))
	row("Burning", fmt.Sprintf("%d", census.Burning))
	row("Ash", fmt.Sprintf("%d", census.Ash))
	if x, y, ok := m.session.Input().Pointer(); ok && m.session.Grid().InBounds(x, y) {
		row("Cursor", fmt.Sprintf("%d,%d %s", x, y, m.session.Grid().At(x, y)))
	}

	if hist.Len() > 1 {
		s.WriteString("\n")
		s.WriteString(treeGraph.Render(asciigraph.Plot(hist.Trees(), asciigraph.Height(5), asciigraph.Width(graphWidth), asciigraph.Caption("trees"))) + "\n\n")
		s.WriteString(fireGraph.Render(asciigraph.Plot(hist.Burning(), asciigraph.Height(3), asciigraph.Width(graphWidth), asciigraph.Caption("burning"))) + "\n")
	}

	s.WriteString(helpStyle.Render("LMB:Plant RMB:Ignite\nSP:Pause R:Clear\n?:Help ESC:Quit"))
	return s.String()
}

const helpText = `
KEYBOARD & MOUSE

  Left click  - plant a sapling
  Right click - set a tree on fire
  Hold + drag - keep painting
  Space       - pause / resume
  R           - clear the forest
  ?           - toggle this help
  Esc / Q     - quit

Saplings grow into trees in five
steps. Empty ground next to a tree
sprouts more often. Open flame
spreads to touching trees; burnt
trees collapse and stay as ash.
`
