package tui

import (
	"io"

	"timepick/internal/timepick"

	tea "github.com/charmbracelet/bubbletea"
)

// RunOptions controls the terminal program around a Picker.
type RunOptions struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run shows a picker for ctl until the user accepts or cancels. It returns
// the controller's value and whether it was accepted.
func Run[T any](ctl *timepick.Controller[T], opts Options[T], run RunOptions) (T, bool, error) {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	p := NewPicker(ctl, opts)

	var progOpts []tea.ProgramOption
	if run.Input != nil {
		progOpts = append(progOpts, tea.WithInput(run.Input))
	}
	if run.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(run.Output))
	}
	if run.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(p, progOpts...).Run(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := p.Result()
	return v, ok, nil
}
