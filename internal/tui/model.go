// Package tui hosts a viewer.View in a bubbletea program: it turns key,
// mouse and resize messages into viewer input, drives one frame per tick
// and renders the drawn surface with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tvview/internal/logging"
	"github.com/Iron-Ham/tvview/internal/tui/keymap"
	"github.com/Iron-Ham/tvview/internal/tui/styles"
	"github.com/Iron-Ham/tvview/internal/viewer"
)

// DefaultFrameInterval is used when Options leaves the interval unset.
const DefaultFrameInterval = time.Second / 30

// Options configures the host.
type Options struct {
	Theme         styles.Theme
	FrameInterval time.Duration
	Mouse         bool
	Logger        *logging.Logger
}

// Messages

type tickMsg time.Time

// cancelMsg asks the view to close, as if the user pressed No.
type cancelMsg struct{}

// Commands

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model wrapping a view.
type Model struct {
	view     *viewer.View
	keys     keymap.Keymap
	surface  *Surface
	styles   styles.Pair
	interval time.Duration
	logger   *logging.Logger

	pending []viewer.Input
	code    int
	done    bool
}

// NewModel creates a model for view. The model does not close the view.
func NewModel(view *viewer.View, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Theme.Name == "" {
		opts.Theme, _ = styles.Builtin(styles.ThemeDefault)
	}

	keys := keymap.Default()
	keys.SetConfirmEnabled(view.ShowsConfirm())

	return Model{
		view:     view,
		keys:     keys,
		surface:  NewSurface(0, 0),
		styles:   styles.NewPair(opts.Theme),
		interval: opts.FrameInterval,
		logger:   opts.Logger.WithComponent("tui"),
		code:     viewer.ExitCancelled,
	}
}

// Init starts the frame ticks.
func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.Resize(msg.Width, msg.Height)
		m.logger.Debug("window resized", "width", msg.Width, "height", msg.Height)
		return m, m.frame()

	case tea.KeyMsg:
		if action, ok := m.keys.Lookup(msg); ok {
			m.pending = append(m.pending, viewer.Key(action))
		}
		return m, nil

	case tea.MouseMsg:
		if in, ok := mouseInput(msg); ok {
			m.pending = append(m.pending, in)
		}
		return m, nil

	case cancelMsg:
		m.pending = append(m.pending, viewer.Key(viewer.ActionCancel))
		return m, m.frame()

	case tickMsg:
		if cmd := m.frame(); cmd != nil {
			return m, cmd
		}
		return m, tick(m.interval)
	}

	return m, nil
}

// frame runs one view frame with the queued input and returns tea.Quit
// once the user has decided.
func (m *Model) frame() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	inputs := m.pending
	m.pending = nil

	code, done := m.view.Frame(m.surface, inputs)
	if !done {
		return nil
	}
	m.code, m.done = code, true
	m.logger.Info("quitting", "exit_code", code, "decision", m.view.Decision().String())
	return tea.Quit
}

func mouseInput(msg tea.MouseMsg) (viewer.Input, bool) {
	if msg.Action != tea.MouseActionPress {
		return viewer.Input{}, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return viewer.Wheel(-1), true
	case tea.MouseButtonWheelDown:
		return viewer.Wheel(1), true
	case tea.MouseButtonLeft:
		return viewer.Click(msg.X, msg.Y), true
	}
	return viewer.Input{}, false
}

// View renders the last drawn frame.
func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.surface.Render(m.styles.Select(m.view.ErrorDisplay()))
}

// ExitCode returns the decided exit code, or viewer.ExitCancelled when the
// program ended without a decision.
func (m Model) ExitCode() int {
	return m.code
}

// Done reports whether the user has decided.
func (m Model) Done() bool {
	return m.done
}
