// Package history keeps a timestamped log file per timer run. Every
// `wodtimer run` writes one to the state dir's logs/ folder with the workout,
// the compiler settings, each session event, and how the run ended.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wod-trainer/wodtimer/internal/dirs"
	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

const (
	// timestampFormat is the format for log timestamps.
	timestampFormat = "2006-01-02 15:04:05"
	// fileTimeFormat prefixes every log file name.
	fileTimeFormat = "20060102-150405"
	// resultPrefix starts the line that records how a run ended.
	resultPrefix = "Result: "
)

// Logger writes a timestamped run log.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	now       func() time.Time
	startTime time.Time
	name      string
	logPath   string
}

// Config holds logger configuration.
type Config struct {
	LogsDir  string // Directory for log files (default: dirs.LogsDir())
	Workout  workout.Workout
	Timer    timer.Timer
	Compiler timer.Config
	Now      func() time.Time // clock, defaults to time.Now
}

// maxSameSecondRuns bounds the numeric suffixes tried when runs of one
// workout start within the same second.
const maxSameSecondRuns = 100

// NewLogger creates a logger that writes to a timestamped log file named
// <timestamp>-<workout>.log, or <timestamp>-<workout>-N.log when that name is
// already taken.
func NewLogger(cfg Config) (*Logger, error) {
	logsDir := cfg.LogsDir
	if logsDir == "" {
		logsDir = dirs.LogsDir()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(logsDir, 0o700); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	start := now()
	base := fmt.Sprintf("%s-%s", start.Format(fileTimeFormat), sanitizeFilename(cfg.Workout.Name))
	f, logPath, err := createUnique(logsDir, base)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := &Logger{
		file:      f,
		now:       now,
		startTime: start,
		name:      cfg.Workout.Name,
		logPath:   logPath,
	}

	c := cfg.Compiler
	l.writef("# wodtimer run log\n")
	l.writef("Workout: %s (%s)\n", cfg.Workout.Name, cfg.Workout.Kind)
	l.writef("Phases: %d, training %s, %d frames\n",
		len(cfg.Workout.ActivePhases()), timer.FormatTime(cfg.Timer.TrainingSeconds()), cfg.Timer.Len())
	l.writef("Countdown: %ds, placeholder %t, go cue %t\n", c.CountdownSeconds, c.ShowPlaceholder, c.ShowGoCue)
	l.writef("Started: %s\n", start.Format(timestampFormat))
	l.writef("%s\n\n", strings.Repeat("-", 60))

	return l, nil
}

// createUnique creates dir/base.log, falling back to dir/base-2.log,
// dir/base-3.log and so on when the name exists.
func createUnique(dir, base string) (*os.File, string, error) {
	for n := 1; n <= maxSameSecondRuns; n++ {
		name := base + ".log"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.log", base, n)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600) //nolint:gosec // path built from the logs dir
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("%s: too many runs in one second", base)
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.logPath
}

// Printf writes a timestamped message to the log.
func (l *Logger) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.writef("[%s] %s\n", l.now().Format(timestampFormat), msg)
}

// Handle logs a session event. It satisfies event.Handler.
func (l *Logger) Handle(ev event.Event) {
	switch ev.Kind {
	case event.KindStage:
		l.Printf("%s", ev.Text)
	case event.KindPhase:
		l.Printf("-> %s", ev.Text)
	default:
		l.Printf("[%s] frame %d", ev.Text, ev.Index)
	}
}

// Exit records how the run ended: its final state and the training time
// still left on the displayed frame.
func (l *Logger) Exit(state session.State, last timer.Frame) {
	l.writef("\n%s\n", strings.Repeat("-", 60))
	if state == session.StateCompleted {
		l.writef("%s%s\n", resultPrefix, state)
	} else {
		l.writef("%s%s with %s left\n", resultPrefix, state, timer.FormatTime(last.SecondsTotal))
	}
	l.writef("Duration: %s\n", l.elapsed())
	l.writef("Finished: %s\n", l.now().Format(timestampFormat))
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func (l *Logger) writef(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		fmt.Fprintf(l.file, format, args...)
	}
}

func (l *Logger) elapsed() string {
	d := l.now().Sub(l.startTime).Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// sanitizeFilename converts a workout name to a safe filename component.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, " ", "-")

	// Keep only alphanumeric, dashes, underscores, and dots
	var clean strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			clean.WriteRune(r)
		}
	}
	result := clean.String()

	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if len(result) > 100 {
		result = strings.TrimRight(result[:100], "-")
	}

	if result == "" {
		return "unnamed"
	}
	return result
}
