package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tvview/internal/viewer"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	opts    Options
}

// New creates a new TUI application for view
func New(view *viewer.View, opts Options) *App {
	return &App{
		model: NewModel(view, opts),
		opts:  opts,
	}
}

// programOptions returns the bubbletea options for the configured host.
func (a *App) programOptions() []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.opts.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

// Run starts the TUI application and returns the exit code of the user's
// decision.
func (a *App) Run() (int, error) {
	a.program = tea.NewProgram(a.model, a.programOptions()...)

	// Termination requests close the view the same way the Close button
	// does, so the script is stopped and the exit code is 0.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(cancelMsg{})
		}
	}()

	final, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	if err != nil {
		return viewer.ExitCancelled, err
	}
	m, ok := final.(Model)
	if !ok {
		return viewer.ExitCancelled, nil
	}
	return m.ExitCode(), nil
}
