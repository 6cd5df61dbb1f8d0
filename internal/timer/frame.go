// Package timer compiles a workout into the flat, per-second frame sequence
// that drives the timer display.
package timer

import (
	"encoding/json"
	"time"

	"github.com/wod-trainer/wodtimer/internal/workout"
)

// Stage is the coarse display mode of a frame.
type Stage string

const (
	StagePlaceholder  Stage = "PLACEHOLDER"
	StagePreCountdown Stage = "PRE_COUNTDOWN"
	StageGo           Stage = "GO"
	StageRunning      Stage = "RUNNING"
)

func (s Stage) String() string { return string(s) }

// IsValid reports whether s is a recognised stage.
func (s Stage) IsValid() bool {
	switch s {
	case StagePlaceholder, StagePreCountdown, StageGo, StageRunning:
		return true
	default:
		return false
	}
}

// Frame is one second of display state.
type Frame struct {
	Stage Stage        `json:"stage"`
	Kind  workout.Kind `json:"workoutKind"`
	// SecondsInPhase is the countdown value for PRE_COUNTDOWN frames and the
	// seconds left in the current phase for RUNNING frames (never below 1).
	SecondsInPhase int `json:"secondsRemainingInPhase"`
	// SecondsTotal is the training time left including this second; 0 outside
	// RUNNING.
	SecondsTotal int `json:"secondsRemainingTotal"`
	// Progress is the fraction of the current phase elapsed, 1/d on the first
	// second and exactly 1 on the last; 0 outside RUNNING.
	Progress float64 `json:"progress"`
	// PhaseIndex points into the workout's phase list for RUNNING frames, -1
	// otherwise.
	PhaseIndex int `json:"phaseIndex"`
}

// Timer is a named, immutable sequence of frames. The zero value is an empty
// timer.
type Timer struct {
	name   string
	frames []Frame
}

// Name returns the workout name the timer was compiled from, if any.
func (t Timer) Name() string { return t.name }

// Len returns the number of frames.
func (t Timer) Len() int { return len(t.frames) }

// Frame returns the frame at index i. It panics if i is out of range, like a
// slice index.
func (t Timer) Frame(i int) Frame { return t.frames[i] }

// Frames returns a copy of the frame list.
func (t Timer) Frames() []Frame {
	out := make([]Frame, len(t.frames))
	copy(out, t.frames)
	return out
}

// TrainingSeconds returns the number of RUNNING frames.
func (t Timer) TrainingSeconds() int {
	n := 0
	for _, f := range t.frames {
		if f.Stage == StageRunning {
			n++
		}
	}
	return n
}

// FrameAt returns the frame shown after elapsed wall time, clamped into the
// timer's range, along with its index. An empty timer yields a zero frame and
// index -1.
func (t Timer) FrameAt(elapsed time.Duration) (Frame, int) {
	if len(t.frames) == 0 {
		return Frame{PhaseIndex: -1}, -1
	}
	idx := int(elapsed / time.Second)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.frames) {
		idx = len(t.frames) - 1
	}
	return t.frames[idx], idx
}

// OverallProgress returns how far index is through the whole timer, in [0,1].
func (t Timer) OverallProgress(index int) float64 {
	if len(t.frames) <= 1 {
		return 1
	}
	p := float64(index) / float64(len(t.frames)-1)
	return min(max(p, 0), 1)
}

type timerJSON struct {
	Name   string  `json:"name,omitempty"`
	Frames []Frame `json:"frames"`
}

// MarshalJSON encodes the timer as {"name": ..., "frames": [...]}.
func (t Timer) MarshalJSON() ([]byte, error) {
	frames := t.frames
	if frames == nil {
		frames = []Frame{}
	}
	return json.Marshal(timerJSON{Name: t.name, Frames: frames})
}
