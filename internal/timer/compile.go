package timer

import (
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// Compile validates raw as a workout description and compiles it with the
// default config overlaid by override. On failure it returns a zero Timer
// and a *workout.ValidationError; there is no partial result.
func Compile(raw any, override Override) (Timer, error) {
	w, err := workout.Decode(raw)
	if err != nil {
		return Timer{}, err
	}

	cfg := DefaultConfig().Merge(override)
	if err := cfg.Validate(); err != nil {
		return Timer{}, err
	}

	return CompileWorkout(w, cfg), nil
}

// Validate checks the config's own constraints.
func (c Config) Validate() error {
	if c.CountdownSeconds < 0 {
		return &workout.ValidationError{Path: "config.countdownSeconds", Rule: "must be ≥ 0"}
	}
	return nil
}

// CompileWorkout builds the frame sequence for an already validated workout:
// placeholder, countdown, GO cue, then one RUNNING frame per training second.
// Zero-length phases contribute nothing.
func CompileWorkout(w workout.Workout, cfg Config) Timer {
	countdown := max(cfg.CountdownSeconds, 0)
	total := w.TotalSeconds()

	size := countdown + total
	if cfg.ShowPlaceholder {
		size++
	}
	if cfg.ShowGoCue {
		size++
	}

	frames := make([]Frame, 0, size)
	frames = appendPreWorkout(frames, cfg, countdown)
	frames = appendTraining(frames, w, total)

	return Timer{name: w.Name, frames: frames}
}

func idleFrame(stage Stage, seconds int) Frame {
	return Frame{
		Stage:          stage,
		Kind:           workout.KindRest,
		SecondsInPhase: seconds,
		PhaseIndex:     -1,
	}
}

func appendPreWorkout(frames []Frame, cfg Config, countdown int) []Frame {
	if cfg.ShowPlaceholder {
		frames = append(frames, idleFrame(StagePlaceholder, 0))
	}
	for i := range countdown {
		frames = append(frames, idleFrame(StagePreCountdown, countdown-i))
	}
	if cfg.ShowGoCue {
		frames = append(frames, idleFrame(StageGo, 0))
	}
	return frames
}

func appendTraining(frames []Frame, w workout.Workout, total int) []Frame {
	elapsed := 0
	for _, ap := range w.ActivePhases() {
		d := ap.Phase.Duration
		for i := range d {
			frames = append(frames, Frame{
				Stage:          StageRunning,
				Kind:           w.Kind,
				SecondsInPhase: d - i,
				SecondsTotal:   total - elapsed - i,
				Progress:       float64(i+1) / float64(d),
				PhaseIndex:     ap.Index,
			})
		}
		elapsed += d
	}
	return frames
}
