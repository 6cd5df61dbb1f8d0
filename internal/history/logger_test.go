package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// fakeClock returns start, then advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func newTestLogger(t *testing.T, dir string, name string, start time.Time) (*Logger, timer.Timer) {
	t.Helper()
	w := workout.Workout{
		Name: name,
		Kind: workout.KindEMOM,
		Phases: []workout.Phase{
			{Duration: 60, Label: "Burpees"},
			{Duration: 0},
			{Duration: 60},
		},
	}
	cfg := timer.DefaultConfig()
	tm := timer.CompileWorkout(w, cfg)

	l, err := NewLogger(Config{
		LogsDir:  dir,
		Workout:  w,
		Timer:    tm,
		Compiler: cfg,
		Now:      fakeClock(start, time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, tm
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	return string(data)
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	start := time.Date(2026, 3, 14, 7, 30, 0, 0, time.Local)

	l, tm := newTestLogger(t, dir, "Morning EMOM", start)

	assert.Equal(t, filepath.Join(dir, "20260314-073000-Morning-EMOM.log"), l.Path())
	content := readLog(t, l)
	assert.Contains(t, content, "Workout: Morning EMOM (EMOM)")
	assert.Contains(t, content, "Phases: 2, training 02:00, ")
	assert.Contains(t, content, "frames")
	assert.Contains(t, content, "Countdown: 10s, placeholder true, go cue true")
	assert.Contains(t, content, "Started: 2026-03-14 07:30:00")
	assert.Equal(t, 120, tm.TrainingSeconds())
}

func TestNewLogger_SameSecond(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 14, 7, 30, 0, 0, time.Local)

	first, _ := newTestLogger(t, dir, "fran", start)
	second, _ := newTestLogger(t, dir, "fran", start)
	third, _ := newTestLogger(t, dir, "fran", start)

	assert.Equal(t, filepath.Join(dir, "20260314-073000-fran.log"), first.Path())
	assert.Equal(t, filepath.Join(dir, "20260314-073000-fran-2.log"), second.Path())
	assert.Equal(t, filepath.Join(dir, "20260314-073000-fran-3.log"), third.Path())

	// Each run keeps its own log.
	first.Printf("first run")
	assert.Contains(t, readLog(t, first), "first run")
	assert.NotContains(t, readLog(t, second), "first run")

	logs, err := FindLogs(dir, "fran")
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestNewLogger_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewLogger(Config{LogsDir: file, Workout: workout.Workout{Name: "fran"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create logs dir")
}

func TestLogger_Handle(t *testing.T) {
	dir := t.TempDir()
	l, tm := newTestLogger(t, dir, "emom", time.Date(2026, 1, 2, 6, 0, 0, 0, time.Local))

	first := tm.Frame(0)
	l.Handle(event.Resumed(0, first))
	l.Handle(event.Phase(12, tm.Frame(12), 1, 2, "Burpees"))
	l.Handle(event.Paused(30, tm.Frame(30)))

	content := readLog(t, l)
	assert.Contains(t, content, "] [running] frame 0\n")
	assert.Contains(t, content, "] -> phase 1/2 (01:00): Burpees\n")
	assert.Contains(t, content, "] [paused] frame 30\n")
	assert.Contains(t, content, "[2026-01-02 06:00:01]")
}

func TestLogger_Exit(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		last  timer.Frame
		want  string
	}{
		{"completed", session.StateCompleted, timer.Frame{}, "Result: completed\n"},
		{"stopped", session.StatePaused, timer.Frame{Stage: timer.StageRunning, SecondsTotal: 75}, "Result: paused with 01:15 left\n"},
		{"never started", session.StateNotStarted, timer.Frame{}, "Result: not started with 00:00 left\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLogger(t, t.TempDir(), tt.name, time.Date(2026, 1, 2, 6, 0, 0, 0, time.Local))
			l.Exit(tt.state, tt.last)
			require.NoError(t, l.Close())

			content := readLog(t, l)
			assert.Contains(t, content, tt.want)
			assert.Contains(t, content, "Duration: ")
			want := strings.TrimPrefix(strings.TrimSuffix(tt.want, "\n"), "Result: ")
			assert.Equal(t, want, Result(l.Path()))
		})
	}
}

func TestLogger_CloseTwice(t *testing.T) {
	l, _ := newTestLogger(t, t.TempDir(), "x", time.Now())
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	// Writes after close are dropped.
	l.Printf("late")
	assert.NotContains(t, readLog(t, l), "late")
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{12*time.Minute + 3*time.Second, "12m3s"},
		{time.Hour + 2*time.Minute + 5*time.Second, "1h2m5s"},
		{1400 * time.Millisecond, "1s"},
	}
	for _, tt := range tests {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		l := &Logger{startTime: start, now: func() time.Time { return start.Add(tt.d) }}
		assert.Equal(t, tt.want, l.elapsed(), tt.d.String())
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Fran", "Fran"},
		{"Morning EMOM", "Morning-EMOM"},
		{"a/b\\c:d", "a-b-c-d"},
		{"  --x--  ", "x"},
		{"???", "unnamed"},
		{"", "unnamed"},
		{strings.Repeat("a", 120), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}
