package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-g-everett/ledcat/event"
	"github.com/matt-g-everett/ledcat/stream"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466"))

	statusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	statusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	keyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

const refreshInterval = 250 * time.Millisecond

// Widget reports the state of the previewed widget.
type Widget interface {
	Status() stream.Status
}

// Activity receives key presses as device input.
type Activity interface {
	State() event.ActivityState
	Touch()
}

type refreshMsg time.Time

// Model is the bubbletea model for the preview.
type Model struct {
	widget   Widget
	activity Activity
	view     string
	status   stream.Status
	state    event.ActivityState
}

// NewModel creates a preview model showing view until the first frame arrives.
func NewModel(widget Widget, activity Activity, view string) Model {
	return Model{
		widget:   widget,
		activity: activity,
		view:     view,
		status:   widget.Status(),
		state:    activity.State(),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init starts the status refresh.
func (m Model) Init() tea.Cmd {
	return refresh()
}

// Update handles frames, refreshes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.view = msg.View
		m.status = m.widget.Status()
		return m, nil
	case refreshMsg:
		m.status = m.widget.Status()
		m.state = m.activity.State()
		return m, refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		m.activity.Touch()
		return m, nil
	}
	return m, nil
}

// View renders the panel and a status line.
func (m Model) View() string {
	state := statusRunning.Render("RUNNING")
	if !m.status.Running {
		state = statusPaused.Render("PAUSED")
	}
	line := fmt.Sprintf("%s  frame %d/%d  device %s", state, m.status.Frame+1, m.status.Frames, m.state)
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.view),
		line,
		keyHint.Render("any key: activity  q: quit"),
	)
}
