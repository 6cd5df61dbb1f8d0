package history

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wod-trainer/wodtimer/internal/dirs"
)

// LogFile represents a run log file.
type LogFile struct {
	Path      string
	Workout   string // sanitized workout name from the file name
	Timestamp time.Time
}

// FindLogs finds run logs in logsDir, optionally filtered by workout name.
// Files are returned sorted by timestamp, newest first.
func FindLogs(logsDir, workoutName string) ([]LogFile, error) {
	if logsDir == "" {
		logsDir = dirs.LogsDir()
	}

	entries, err := os.ReadDir(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No runs yet
		}
		return nil, err
	}

	filter := strings.ToLower(sanitizeFilename(workoutName))
	var logs []LogFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		lf := parseLogFilename(logsDir, entry.Name())
		if lf == nil {
			continue
		}
		if workoutName != "" && !strings.Contains(strings.ToLower(lf.Workout), filter) {
			continue
		}
		logs = append(logs, *lf)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})

	return logs, nil
}

// parseLogFilename parses a log filename into a LogFile.
// Expected format: YYYYMMDD-HHMMSS-<workout>.log
func parseLogFilename(dir, name string) *LogFile {
	base := strings.TrimSuffix(name, ".log")

	// Need at least timestamp prefix: YYYYMMDD-HHMMSS (15 chars)
	if len(base) < 16 {
		return nil
	}

	t, err := time.ParseInLocation(fileTimeFormat, base[:15], time.Local)
	if err != nil {
		return nil
	}

	return &LogFile{
		Path:      filepath.Join(dir, name),
		Workout:   base[16:],
		Timestamp: t,
	}
}

// Result returns the outcome recorded in a run log, or "unfinished" when the
// run never got to write one.
func Result(path string) string {
	f, err := os.Open(path) //nolint:gosec // path from FindLogs
	if err != nil {
		return "unreadable"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if rest, ok := strings.CutPrefix(scanner.Text(), resultPrefix); ok {
			return rest
		}
	}
	return "unfinished"
}
