package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// RunOptions configures a plain-mode run.
type RunOptions struct {
	Out   io.Writer
	IsTTY bool
	Width int
	Bell  bool
	// Refresh is how often the pump is polled.
	Refresh time.Duration
	// Interval overrides the one-second tick, for tests.
	Interval time.Duration
	// Handler also receives every session event. Optional.
	Handler event.Handler
	// OnExit receives the final state and frame once the run stops. Optional.
	OnExit func(state session.State, last timer.Frame)
}

// Run plays t from start to finish, printing events as they happen. A
// cancelled ctx stops the run cleanly: the stop position is printed and Run
// returns nil.
func Run(ctx context.Context, w workout.Workout, t timer.Timer, opts RunOptions) error {
	out := NewWriter(opts.Out, opts.IsTTY, opts.Width)
	out.SetBell(opts.Bell)

	var s *session.Session
	s = session.New(w, t, session.Options{
		Handler:  teeHandler(out.WriteEvent, opts.Handler),
		OnFrame:  func(_ int, f timer.Frame) { out.UpdateStatus(f, phaseDetail(s, f)) },
		Interval: opts.Interval,
	})

	err := s.Run(ctx, opts.Refresh)
	out.ClearStatus()
	if opts.OnExit != nil {
		f, _ := s.Current()
		opts.OnExit(s.State(), f)
	}

	if errors.Is(err, context.Canceled) {
		f, _ := s.Current()
		fmt.Fprintf(opts.Out, "stopped with %s left\n", timer.FormatTime(f.SecondsTotal))
		return nil
	}
	return err
}

func phaseDetail(s *session.Session, f timer.Frame) string {
	n, count := s.PhaseNumber(f)
	if n == 0 {
		return ""
	}
	detail := fmt.Sprintf("phase %d/%d", n, count)
	if label := s.PhaseLabel(f); label != "" {
		detail += " " + label
	}
	return detail
}

func teeHandler(first, second event.Handler) event.Handler {
	if second == nil {
		return first
	}
	return func(ev event.Event) {
		first(ev)
		second(ev)
	}
}
