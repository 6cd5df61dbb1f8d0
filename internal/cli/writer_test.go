package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

func newTestWriter(buf *bytes.Buffer) *Writer {
	return &Writer{
		out:   buf,
		isTTY: false,
		width: 80,
		mu:    sync.Mutex{},
	}
}

func newTestWriterTTY(buf *bytes.Buffer) *Writer {
	return &Writer{
		out:   buf,
		isTTY: true,
		width: 80,
		mu:    sync.Mutex{},
	}
}

var (
	countdownFrame = timer.Frame{Stage: timer.StagePreCountdown, Kind: workout.KindRest, SecondsInPhase: 3, PhaseIndex: -1}
	goFrame        = timer.Frame{Stage: timer.StageGo, Kind: workout.KindRest, PhaseIndex: -1}
	runningFrame   = timer.Frame{Stage: timer.StageRunning, Kind: workout.KindTabata, SecondsInPhase: 20, SecondsTotal: 90, Progress: 0.5, PhaseIndex: 0}
)

func TestWriteEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    event.Event
		expected string
	}{
		{"countdown", event.Stage(1, countdownFrame), "get ready: 3\n"},
		{"go", event.Stage(4, goFrame), "GO!\n"},
		{"running", event.Stage(5, runningFrame), "TABATA started\n"},
		{"phase", event.Phase(5, runningFrame, 1, 8, "Work"), "-> phase 1/8 (00:20): Work\n"},
		{"paused", event.Paused(6, runningFrame), "[paused]\n"},
		{"resumed", event.Resumed(6, runningFrame), "[running]\n"},
		{"reset", event.Reset(countdownFrame), "[reset]\n"},
		{"complete", event.Complete(9, runningFrame), "workout complete\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := newTestWriter(&buf)

			w.WriteEvent(tt.event)

			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteEvent_TTYMode(t *testing.T) {
	tests := []struct {
		name    string
		isTTY   bool
		hasANSI bool
	}{
		{"non-TTY has no ANSI", false, false},
		{"TTY has ANSI", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var w *Writer
			if tt.isTTY {
				w = newTestWriterTTY(&buf)
			} else {
				w = newTestWriter(&buf)
			}

			w.WriteEvent(event.Stage(4, goFrame))

			output := buf.String()
			if tt.hasANSI {
				assert.Contains(t, output, "\033[")
			} else {
				assert.NotContains(t, output, "\033[")
			}
			assert.Contains(t, output, "GO!")
		})
	}
}

func TestWriteEvent_TTYControl(t *testing.T) {
	tests := []struct {
		name     string
		event    event.Event
		expected string
	}{
		{"paused is bold", event.Paused(6, runningFrame), "\033[1m[paused]\033[0m\n"},
		{"resumed is dim", event.Resumed(6, runningFrame), "\033[2m[running]\033[0m\n"},
		{"reset is dim", event.Reset(runningFrame), "\033[2m[reset]\033[0m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := newTestWriterTTY(&buf)

			w.WriteEvent(tt.event)

			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteEvent_Bell(t *testing.T) {
	tests := []struct {
		name  string
		isTTY bool
		bell  bool
		event event.Event
		rings bool
	}{
		{"go rings", true, true, event.Stage(4, goFrame), true},
		{"phase rings", true, true, event.Phase(5, runningFrame, 1, 2, ""), true},
		{"countdown is silent", true, true, event.Stage(1, countdownFrame), false},
		{"bell disabled", true, false, event.Stage(4, goFrame), false},
		{"non-TTY is silent", false, true, event.Stage(4, goFrame), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, tt.isTTY, 80)
			w.SetBell(tt.bell)

			w.WriteEvent(tt.event)

			assert.Equal(t, tt.rings, strings.Contains(buf.String(), bell))
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		frame    timer.Frame
		detail   string
		contains []string
	}{
		{"placeholder", timer.Frame{Stage: timer.StagePlaceholder, PhaseIndex: -1}, "", []string{"--:--"}},
		{"countdown", countdownFrame, "", []string{"get ready 3"}},
		{"go", goFrame, "", []string{"GO!"}},
		{"running", runningFrame, "phase 1/8 Work", []string{"00:20", "total ", "01:30", "phase 1/8 Work", "██████████░░░░░░░░░░"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := newTestWriterTTY(&buf)

			w.UpdateStatus(tt.frame, tt.detail)

			output := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			assert.False(t, strings.HasSuffix(output, "\n"), "status line must not end with a newline")
		})
	}
}

func TestUpdateStatus_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(&buf)

	w.UpdateStatus(runningFrame, "phase 1/8")
	w.ClearStatus()

	assert.Empty(t, buf.String())
}

func TestStatusRedrawnAfterEvent(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriterTTY(&buf)

	w.UpdateStatus(countdownFrame, "")
	buf.Reset()

	w.WriteEvent(event.Stage(4, goFrame))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, clearLine), "status line erased before the event")
	assert.True(t, strings.HasSuffix(output, fgBold(colorOrange, "get ready 3")), "status line redrawn after the event")
}

func TestClearStatus(t *testing.T) {
	t.Run("erases shown status", func(t *testing.T) {
		var buf bytes.Buffer
		w := newTestWriterTTY(&buf)
		w.UpdateStatus(goFrame, "")
		buf.Reset()

		w.ClearStatus()
		assert.Equal(t, clearLine, buf.String())

		buf.Reset()
		w.WriteEvent(event.Complete(9, runningFrame))
		assert.NotContains(t, buf.String(), "GO!")
	})

	t.Run("nothing shown", func(t *testing.T) {
		var buf bytes.Buffer
		w := newTestWriterTTY(&buf)
		w.ClearStatus()
		assert.Empty(t, buf.String())
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{1.5, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progressBar(tt.p, 4), "p=%v", tt.p)
	}
}

func TestKindColor(t *testing.T) {
	seen := map[int]workout.Kind{}
	for _, k := range workout.Kinds() {
		c := kindColor(k)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share color %d", prev, k, c)
		}
		seen[c] = k
	}
}
