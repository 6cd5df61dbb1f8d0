// Package dirs provides XDG Base Directory Specification compliant paths
// for wodtimer's config, saved workouts, and state.
package dirs

import (
	"os"
	"path/filepath"
)

const appName = "wodtimer"

// ConfigDir returns the wodtimer configuration directory.
// Resolution order: WODTIMER_CONFIG_DIR > XDG_CONFIG_HOME/wodtimer > ~/.config/wodtimer.
func ConfigDir() string {
	if dir := os.Getenv("WODTIMER_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the wodtimer state directory.
// Resolution order: WODTIMER_STATE_DIR > XDG_STATE_HOME/wodtimer > ~/.local/state/wodtimer.
func StateDir() string {
	if dir := os.Getenv("WODTIMER_STATE_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// WorkoutsDir returns the default directory for saved workouts
// (ConfigDir/workouts).
func WorkoutsDir() string {
	return filepath.Join(ConfigDir(), "workouts")
}

// DebugLog returns the file debug output goes to while the full-screen UI
// is running (StateDir/debug.log).
func DebugLog() string {
	return filepath.Join(StateDir(), "debug.log")
}

// LogsDir returns the directory run history logs are written to
// (StateDir/logs).
func LogsDir() string {
	return filepath.Join(StateDir(), "logs")
}

// workoutExts lists the extensions tried, in order, when resolving a bare
// workout name.
var workoutExts = []string{".yaml", ".yml", ".json"}

// ResolveWorkout turns a workout argument into a file path. An existing path
// is returned unchanged; otherwise name.{yaml,yml,json} is looked up in dir.
// It returns "" when nothing matches.
func ResolveWorkout(arg, dir string) string {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg
	}
	if dir == "" {
		return ""
	}
	for _, ext := range workoutExts {
		candidate := filepath.Join(dir, arg+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
