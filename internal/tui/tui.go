// Package tui implements the wodtimer command line: the cobra command tree
// and the full-screen bubbletea timer.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/dirs"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// Run shows the timer screen until the user quits and returns the session's
// final state and the frame it stopped on. Debug output goes to the state
// dir's log file meanwhile.
func Run(w workout.Workout, t timer.Timer, opts Options) (session.State, timer.Frame, error) {
	restore, err := debug.ToFile(dirs.DebugLog())
	if err != nil {
		return session.StateNotStarted, timer.Frame{}, err
	}
	defer restore()

	debug.Logf("tui: starting %q (%d frames)", w.Name, t.Len())
	p := tea.NewProgram(NewModel(w, t, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return session.StateNotStarted, timer.Frame{}, fmt.Errorf("run timer screen: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return session.StateNotStarted, timer.Frame{}, nil
	}
	last, _ := m.session.Current()
	return m.session.State(), last, nil
}
