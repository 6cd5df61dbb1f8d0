package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/timer"
)

// startMsg plays the session once the program is up.
type startMsg struct{}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

func ringsBell(ev event.Event) bool {
	return ev.Kind == event.KindPhase || (ev.Kind == event.KindStage && ev.Frame.Stage == timer.StageGo)
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tick(m.opts.Refresh), tea.WindowSize()}
	if m.opts.Autostart {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case " ", "p", "enter":
		state := m.session.Toggle()
		debug.Logf("tui: toggle -> %s", state)

	case "r":
		m.session.Reset()
		debug.Logf("tui: reset")
	}

	return m.collect()
}

// collect moves session events raised since the last update into the
// history and rings the bell if one of them asks for it.
func (m Model) collect() (Model, tea.Cmd) {
	ring := false
	for _, ev := range m.log.drain() {
		m.events = append(m.events, ev)
		if ringsBell(ev) {
			ring = true
		}
	}
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}

	if ring && m.opts.Bell {
		m.bells++
		return m, ringBell(m.opts.BellOut)
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case startMsg:
		m.session.Play()
		return m.collect()

	case frameMsg:
		m.session.Frame(time.Time(msg))
		var cmd tea.Cmd
		m, cmd = m.collect()
		cmds = append(cmds, cmd, tick(m.opts.Refresh))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := max(min(m.width-16, 50), 10)
		m.progress.Width = barWidth
		m.overall.Width = barWidth

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
