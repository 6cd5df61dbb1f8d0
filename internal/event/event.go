// Package event defines typed events emitted by a timer session, consumed by
// the TUI, the plain writer, and the debug log.
package event

import (
	"fmt"

	"github.com/wod-trainer/wodtimer/internal/timer"
)

// Kind identifies the type of event.
type Kind int

const (
	// KindStage fires when the displayed frame's stage changes.
	KindStage Kind = iota
	// KindPhase fires when a new training phase begins.
	KindPhase
	// KindPaused fires when a running session is paused.
	KindPaused
	// KindResumed fires when a session starts or resumes.
	KindResumed
	// KindReset fires when a session is rewound to its first frame.
	KindReset
	// KindComplete fires once the last frame has been shown.
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindStage:
		return "stage"
	case KindPhase:
		return "phase"
	case KindPaused:
		return "paused"
	case KindResumed:
		return "resumed"
	case KindReset:
		return "reset"
	case KindComplete:
		return "complete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single typed session event.
type Event struct {
	Kind  Kind
	Text  string      // human-readable summary
	Index int         // frame index the event refers to
	Frame timer.Frame // frame at Index
}

// Handler is a callback that receives typed events.
type Handler func(Event)

// Stage creates a KindStage event for the frame at index.
func Stage(index int, f timer.Frame) Event {
	return Event{Kind: KindStage, Text: stageText(f), Index: index, Frame: f}
}

// Phase creates a KindPhase event; number is 1-based among active phases.
func Phase(index int, f timer.Frame, number, count int, label string) Event {
	text := fmt.Sprintf("phase %d/%d (%s)", number, count, timer.FormatTime(f.SecondsInPhase))
	if label != "" {
		text += ": " + label
	}
	return Event{Kind: KindPhase, Text: text, Index: index, Frame: f}
}

// Paused creates a KindPaused event.
func Paused(index int, f timer.Frame) Event {
	return Event{Kind: KindPaused, Text: "paused", Index: index, Frame: f}
}

// Resumed creates a KindResumed event.
func Resumed(index int, f timer.Frame) Event {
	return Event{Kind: KindResumed, Text: "running", Index: index, Frame: f}
}

// Reset creates a KindReset event.
func Reset(f timer.Frame) Event {
	return Event{Kind: KindReset, Text: "reset", Index: 0, Frame: f}
}

// Complete creates a KindComplete event.
func Complete(index int, f timer.Frame) Event {
	return Event{Kind: KindComplete, Text: "workout complete", Index: index, Frame: f}
}

func stageText(f timer.Frame) string {
	switch f.Stage {
	case timer.StagePlaceholder:
		return "ready"
	case timer.StagePreCountdown:
		return fmt.Sprintf("get ready: %d", f.SecondsInPhase)
	case timer.StageGo:
		return "GO!"
	case timer.StageRunning:
		return fmt.Sprintf("%s started", f.Kind)
	default:
		return string(f.Stage)
	}
}
