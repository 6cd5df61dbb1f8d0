// Package session runs a compiled timer: it owns the frame pump, tracks the
// run state (not started, running, paused, completed), and turns frame
// changes into typed events.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/wod-trainer/wodtimer/internal/debug"
	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/ticker"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// State is the run state of a session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	// Handler receives session events. Optional.
	Handler event.Handler
	// OnFrame receives every displayed frame, including each countdown second.
	// Optional.
	OnFrame func(index int, f timer.Frame)
	// Interval overrides the pump's one-second tick, for tests and demos.
	Interval time.Duration
}

// Session drives one run of a timer.
type Session struct {
	mu      sync.Mutex
	workout workout.Workout
	timer   timer.Timer
	pump    *ticker.Pump
	opts    Options
	startAt int
	state   State
	index   int
	shown   bool

	phaseNumber map[int]int
	phaseCount  int
}

// New creates a session positioned on the first frame. When that frame is
// the placeholder it counts as already shown, so the first tick after Play
// moves straight to the countdown.
func New(w workout.Workout, t timer.Timer, opts Options) *Session {
	s := &Session{
		workout:     w,
		timer:       t,
		opts:        opts,
		phaseNumber: make(map[int]int),
	}

	if t.Len() > 0 && t.Frame(0).Stage == timer.StagePlaceholder {
		s.startAt = 1
	}
	s.shown = s.startAt > 0

	for i, ap := range w.ActivePhases() {
		s.phaseNumber[ap.Index] = i + 1
	}
	s.phaseCount = len(s.phaseNumber)

	s.pump = ticker.New(ticker.Options{
		MaxTicks:   t.Len(),
		StartAt:    s.startAt,
		OnTick:     s.onTick,
		OnComplete: s.onComplete,
		Interval:   opts.Interval,
	})
	return s
}

func (s *Session) emit(events []event.Event) {
	for _, ev := range events {
		debug.Logf("session: %s at frame %d: %s", ev.Kind, ev.Index, ev.Text)
		if s.opts.Handler != nil {
			s.opts.Handler(ev)
		}
	}
}

func (s *Session) onTick(index int) {
	s.mu.Lock()
	var prev timer.Frame
	if s.shown {
		prev = s.timer.Frame(s.index)
	}
	s.index = index
	s.shown = true
	cur := s.timer.Frame(index)

	var events []event.Event
	if cur.Stage != prev.Stage {
		events = append(events, event.Stage(index, cur))
	}
	if cur.Stage == timer.StageRunning && (prev.Stage != timer.StageRunning || prev.PhaseIndex != cur.PhaseIndex) {
		events = append(events, event.Phase(index, cur, s.phaseNumber[cur.PhaseIndex], s.phaseCount, s.labelLocked(cur)))
	}
	s.mu.Unlock()

	if s.opts.OnFrame != nil {
		s.opts.OnFrame(index, cur)
	}
	s.emit(events)
}

func (s *Session) onComplete() {
	s.mu.Lock()
	s.state = StateCompleted
	f, idx := s.currentLocked()
	s.mu.Unlock()

	s.emit([]event.Event{event.Complete(idx, f)})
}

// Frame feeds a display-refresh timestamp to the pump.
func (s *Session) Frame(now time.Time) {
	s.pump.Frame(now)
}

// Play starts or resumes the session. Playing a completed session starts it
// over from the first frame.
func (s *Session) Play() {
	s.mu.Lock()
	switch s.state {
	case StateRunning:
		s.mu.Unlock()
		return
	case StateCompleted:
		s.rewindLocked()
	}
	s.pump.Start()
	s.state = StateRunning
	f, idx := s.currentLocked()
	s.mu.Unlock()

	s.emit([]event.Event{event.Resumed(idx, f)})
}

// Run plays the session and drives it from a wall-clock ticker firing every
// refresh until it completes or ctx is cancelled.
func (s *Session) Run(ctx context.Context, refresh time.Duration) error {
	s.Play()
	return s.pump.Run(ctx, refresh)
}

// Pause stops a running session; the next Play resumes with one immediate
// catch-up tick.
func (s *Session) Pause() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.pump.Stop()
	s.state = StatePaused
	f, idx := s.currentLocked()
	s.mu.Unlock()

	s.emit([]event.Event{event.Paused(idx, f)})
}

// Toggle pauses a running session and plays any other, returning the new
// state.
func (s *Session) Toggle() State {
	if s.State() == StateRunning {
		s.Pause()
	} else {
		s.Play()
	}
	return s.State()
}

// Reset stops the session and rewinds it to the first frame.
func (s *Session) Reset() {
	s.mu.Lock()
	s.pump.Stop()
	s.rewindLocked()
	s.state = StateNotStarted
	f, _ := s.currentLocked()
	s.mu.Unlock()

	s.emit([]event.Event{event.Reset(f)})
}

func (s *Session) rewindLocked() {
	s.pump.Reset()
	s.index = 0
	s.shown = s.startAt > 0
}

// State returns the current run state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the displayed frame and its index. An empty timer yields
// a zero frame and index -1.
func (s *Session) Current() (timer.Frame, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (timer.Frame, int) {
	if s.timer.Len() == 0 {
		return timer.Frame{PhaseIndex: -1}, -1
	}
	return s.timer.Frame(s.index), s.index
}

// OverallProgress returns how far through the whole timer the session is.
func (s *Session) OverallProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted {
		return 1
	}
	return s.timer.OverallProgress(s.index)
}

// Timer returns the compiled timer the session walks.
func (s *Session) Timer() timer.Timer { return s.timer }

// Workout returns the workout the timer was compiled from.
func (s *Session) Workout() workout.Workout { return s.workout }

// PhaseLabel returns the label of the phase a RUNNING frame belongs to.
func (s *Session) PhaseLabel(f timer.Frame) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labelLocked(f)
}

func (s *Session) labelLocked(f timer.Frame) string {
	if f.Stage != timer.StageRunning || f.PhaseIndex < 0 || f.PhaseIndex >= len(s.workout.Phases) {
		return ""
	}
	return s.workout.Phases[f.PhaseIndex].Label
}

// PhaseNumber returns the 1-based position of f's phase among the phases that
// contribute time, and how many such phases there are. Non-RUNNING frames
// yield 0.
func (s *Session) PhaseNumber(f timer.Frame) (number, count int) {
	if f.Stage != timer.StageRunning {
		return 0, s.phaseCount
	}
	return s.phaseNumber[f.PhaseIndex], s.phaseCount
}
