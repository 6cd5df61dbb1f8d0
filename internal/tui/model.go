package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// maxEvents bounds the event history shown under the timer.
const maxEvents = 5

// Options configures the timer screen.
type Options struct {
	// Refresh is the display refresh period; each refresh feeds the pump.
	Refresh time.Duration
	// Bell rings the terminal bell on GO and at every phase start.
	Bell bool
	// Autostart plays the session as soon as the screen opens.
	Autostart bool
	// BellOut receives the bell character. Defaults to stderr.
	BellOut io.Writer
	// Handler also receives every session event. Optional.
	Handler event.Handler
}

// eventLog collects session events between updates. The session calls its
// handler synchronously from inside Update, so no locking is needed.
type eventLog struct {
	pending []event.Event
	forward event.Handler
}

func (l *eventLog) add(ev event.Event) {
	l.pending = append(l.pending, ev)
	if l.forward != nil {
		l.forward(ev)
	}
}

func (l *eventLog) drain() []event.Event {
	out := l.pending
	l.pending = nil
	return out
}

// Model is the bubbletea model for the timer screen.
type Model struct {
	session  *session.Session
	log      *eventLog
	events   []event.Event
	spinner  spinner.Model
	progress progress.Model
	overall  progress.Model
	opts     Options
	width    int
	height   int
	bells    int
	quitting bool
}

// NewModel builds a timer screen for w compiled into t.
func NewModel(w workout.Workout, t timer.Timer, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second / 30
	}
	if opts.BellOut == nil {
		opts.BellOut = os.Stderr
	}

	log := &eventLog{forward: opts.Handler}
	s := session.New(w, t, session.Options{Handler: log.add})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bar := progress.New(
		progress.WithSolidFill(string(kindColor(w.Kind))),
		progress.WithoutPercentage(),
	)
	overall := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)

	return Model{
		session:  s,
		log:      log,
		spinner:  sp,
		progress: bar,
		overall:  overall,
		opts:     opts,
	}
}

// Session returns the session the screen drives.
func (m Model) Session() *session.Session { return m.session }

// frameMsg is one display refresh.
type frameMsg time.Time
