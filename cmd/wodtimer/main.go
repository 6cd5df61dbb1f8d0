// Package main provides the CLI entry point for wodtimer.
package main

import (
	"os"
	"runtime/debug"

	"github.com/wod-trainer/wodtimer/internal/tui"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if info, ok := debug.ReadBuildInfo(); ok && version == "dev" {
		version, commit, date = versionFromBuildInfo(info)
	}
	tui.SetVersionInfo(version, commit, date)
	if err := tui.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionFromBuildInfo fills in version details for binaries built without
// ldflags: `go install` records a module version, local builds record VCS
// settings.
func versionFromBuildInfo(info *debug.BuildInfo) (v, c, d string) {
	v = "dev"
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		v = mv
	}
	c, d = versionFromSettings(info.Settings)
	return v, c, d
}

func versionFromSettings(settings []debug.BuildSetting) (string, string) {
	var revision, date string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			date = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	c := "unknown"
	if len(revision) >= 7 {
		c = revision[:7]
		if dirty {
			c += "-dirty"
		}
	}

	d := "unknown"
	if date != "" {
		d = date
	}
	return c, d
}
