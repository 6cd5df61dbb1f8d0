package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

var epoch = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

func sec(n int) frameMsg { return frameMsg(epoch.Add(time.Duration(n) * time.Second)) }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testWorkout() workout.Workout {
	return workout.Workout{
		Name:   "Mini",
		Kind:   workout.KindTabata,
		Phases: []workout.Phase{{Duration: 2, Label: "work"}},
	}
}

// newTestModel returns a sized model over placeholder, 1, GO, work 2, work 1.
func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	w := testWorkout()
	tm := timer.CompileWorkout(w, timer.Config{CountdownSeconds: 1, ShowPlaceholder: true, ShowGoCue: true})
	require.Equal(t, 5, tm.Len())

	m := NewModel(w, tm, opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel(t *testing.T) {
	m := NewModel(testWorkout(), timer.Timer{}, Options{})

	assert.Equal(t, time.Second/30, m.opts.Refresh)
	assert.NotNil(t, m.opts.BellOut)
	assert.NotNil(t, m.Session())
	assert.Equal(t, session.StateNotStarted, m.Session().State())
	assert.NotNil(t, m.Init())
}

func TestView_BeforeSize(t *testing.T) {
	m := NewModel(testWorkout(), timer.Timer{}, Options{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestView_Placeholder(t *testing.T) {
	m := newTestModel(t, Options{})

	view := m.View()
	assert.Contains(t, view, "Mini")
	assert.Contains(t, view, "TABATA")
	assert.Contains(t, view, "ready")
	assert.Contains(t, view, "--:--")
	assert.Contains(t, view, "press space to start")
	assert.Contains(t, view, "space: start/pause")
}

func TestModel_FullRun(t *testing.T) {
	var bell bytes.Buffer
	m := newTestModel(t, Options{Bell: true, BellOut: &bell})

	m, _ = update(t, m, key(" "))
	assert.Equal(t, session.StateRunning, m.session.State())

	m, _ = update(t, m, sec(0))
	assert.Contains(t, m.View(), "GET READY")
	assert.Equal(t, 0, m.bells)

	var cmd tea.Cmd
	m, cmd = update(t, m, sec(1))
	assert.Contains(t, m.View(), "GO!")
	assert.Equal(t, 1, m.bells)
	require.NotNil(t, cmd)

	m, _ = update(t, m, sec(2))
	view := m.View()
	assert.Contains(t, view, "00:02")
	assert.Contains(t, view, "phase 1/1")
	assert.Contains(t, view, "work")
	assert.Contains(t, view, "total")
	assert.Equal(t, 2, m.bells)

	m, _ = update(t, m, sec(3))
	assert.Contains(t, m.View(), "00:01")

	m, _ = update(t, m, sec(4))
	assert.Equal(t, session.StateCompleted, m.session.State())
	assert.Contains(t, m.View(), "complete")
	assert.Contains(t, m.View(), "workout complete")
}

func TestModel_BellDisabled(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, key(" "))
	for n := range 5 {
		m, _ = update(t, m, sec(n))
	}
	assert.Equal(t, 0, m.bells)
}

func TestModel_ForwardsEvents(t *testing.T) {
	var kinds []event.Kind
	m := newTestModel(t, Options{Handler: func(ev event.Event) { kinds = append(kinds, ev.Kind) }})

	m, _ = update(t, m, key(" "))
	for n := range 5 {
		m, _ = update(t, m, sec(n))
	}
	require.NotEmpty(t, kinds)
	assert.Equal(t, event.KindResumed, kinds[0])
	assert.Contains(t, kinds, event.KindPhase)
	assert.Equal(t, event.KindComplete, kinds[len(kinds)-1])
	// Forwarding doesn't take events away from the on-screen history.
	assert.NotEmpty(t, m.events)
}

func TestRingBell(t *testing.T) {
	var buf bytes.Buffer
	msg := ringBell(&buf)()
	assert.Nil(t, msg)
	assert.Equal(t, "\a", buf.String())
}

func TestModelUpdateKeyMsgs(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.KeyMsg
		expectQuit bool
		wantState  session.State
	}{
		{name: "q key quits", keys: []tea.KeyMsg{key("q")}, expectQuit: true},
		{name: "ctrl+c quits", keys: []tea.KeyMsg{{Type: tea.KeyCtrlC}}, expectQuit: true},
		{name: "space starts", keys: []tea.KeyMsg{key(" ")}, wantState: session.StateRunning},
		{name: "p pauses when running", keys: []tea.KeyMsg{key(" "), key("p")}, wantState: session.StatePaused},
		{name: "p resumes when paused", keys: []tea.KeyMsg{key("p"), key("p"), key("p")}, wantState: session.StateRunning},
		{name: "r resets", keys: []tea.KeyMsg{key(" "), key("r")}, wantState: session.StateNotStarted},
		{name: "unknown key ignored", keys: []tea.KeyMsg{key("x")}, wantState: session.StateNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Options{})

			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = update(t, m, k)
			}

			if tt.expectQuit {
				require.NotNil(t, cmd)
				assert.IsType(t, tea.QuitMsg{}, cmd())
				assert.True(t, m.quitting)
				assert.Empty(t, m.View())
				return
			}
			assert.Equal(t, tt.wantState, m.session.State())
		})
	}
}

func TestModel_PauseShowsIndicator(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, sec(0))
	m, _ = update(t, m, key("p"))

	view := m.View()
	assert.Contains(t, view, "paused")
	assert.Contains(t, view, "GET READY")
}

func TestModel_ResetReturnsToPlaceholder(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, sec(0))
	m, _ = update(t, m, sec(1))
	m, _ = update(t, m, key("r"))

	f, idx := m.session.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, timer.StagePlaceholder, f.Stage)
	assert.Contains(t, m.View(), "press space to start")
}

func TestModel_StartMsg(t *testing.T) {
	m := newTestModel(t, Options{Autostart: true})
	m, _ = update(t, m, startMsg{})
	assert.Equal(t, session.StateRunning, m.session.State())
}

func TestModel_EventHistoryBounded(t *testing.T) {
	m := newTestModel(t, Options{})
	for range maxEvents + 3 {
		m, _ = update(t, m, key("p"))
	}
	assert.Len(t, m.events, maxEvents)
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, 50, m.progress.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Equal(t, 10, m.progress.Width)
	assert.Equal(t, 10, m.overall.Width)
}

func TestView_EmptyTimer(t *testing.T) {
	w := workout.Workout{Kind: workout.KindRest}
	m := NewModel(w, timer.CompileWorkout(w, timer.Config{}), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	view := m.View()
	assert.Contains(t, view, "wodtimer")
	assert.Contains(t, view, "nothing to time")
}
