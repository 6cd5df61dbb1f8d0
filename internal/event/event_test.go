package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

func TestEventConstructors(t *testing.T) {
	running := timer.Frame{Stage: timer.StageRunning, Kind: workout.KindTabata, SecondsInPhase: 20, SecondsTotal: 60, PhaseIndex: 2}
	countdown := timer.Frame{Stage: timer.StagePreCountdown, Kind: workout.KindRest, SecondsInPhase: 7, PhaseIndex: -1}

	tests := []struct {
		name  string
		event Event
		kind  Kind
		text  string
		index int
	}{
		{"stage placeholder", Stage(0, timer.Frame{Stage: timer.StagePlaceholder}), KindStage, "ready", 0},
		{"stage countdown", Stage(4, countdown), KindStage, "get ready: 7", 4},
		{"stage go", Stage(11, timer.Frame{Stage: timer.StageGo}), KindStage, "GO!", 11},
		{"stage running", Stage(12, running), KindStage, "TABATA started", 12},
		{"phase with label", Phase(12, running, 2, 4, "Work"), KindPhase, "phase 2/4 (00:20): Work", 12},
		{"phase without label", Phase(12, running, 1, 1, ""), KindPhase, "phase 1/1 (00:20)", 12},
		{"paused", Paused(13, running), KindPaused, "paused", 13},
		{"resumed", Resumed(13, running), KindResumed, "running", 13},
		{"reset", Reset(timer.Frame{}), KindReset, "reset", 0},
		{"complete", Complete(20, running), KindComplete, "workout complete", 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.event.Kind)
			assert.Equal(t, tc.text, tc.event.Text)
			assert.Equal(t, tc.index, tc.event.Index)
		})
	}
}

func TestKindValues(t *testing.T) {
	kinds := []Kind{KindStage, KindPhase, KindPaused, KindResumed, KindReset, KindComplete}
	seen := make(map[Kind]bool)
	names := make(map[string]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate Kind value %d", k)
		assert.False(t, names[k.String()], "duplicate Kind name %s", k)
		seen[k] = true
		names[k.String()] = true
	}
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestHandler(t *testing.T) {
	var received []Event
	h := Handler(func(e Event) {
		received = append(received, e)
	})

	h(Paused(3, timer.Frame{}))
	h(Resumed(3, timer.Frame{}))

	assert.Len(t, received, 2)
	assert.Equal(t, KindPaused, received[0].Kind)
	assert.Equal(t, KindResumed, received[1].Kind)
}
