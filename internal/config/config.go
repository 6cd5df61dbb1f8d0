// Package config provides unified configuration management for wodtimer.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wod-trainer/wodtimer/internal/dirs"
	"github.com/wod-trainer/wodtimer/internal/timer"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// DefaultRefreshHz is the display refresh rate used when none is configured.
const DefaultRefreshHz = 30

// TimerConfig holds the compiler settings. Unset fields fall back to the
// compiler's own defaults rather than to a value written here.
type TimerConfig struct {
	CountdownSeconds int  `yaml:"countdown_seconds"`
	ShowPlaceholder  bool `yaml:"show_placeholder"`
	ShowGoCue        bool `yaml:"show_go_cue"`

	// Set tracking for merge
	CountdownSecondsSet bool `yaml:"-"`
	ShowPlaceholderSet  bool `yaml:"-"`
	ShowGoCueSet        bool `yaml:"-"`
}

// DisplayConfig holds settings for the run screen.
type DisplayConfig struct {
	RefreshHz int  `yaml:"refresh_hz"` // display refresh rate feeding the frame pump
	Bell      bool `yaml:"bell"`       // ring the terminal bell on GO and phase starts

	// Set tracking for merge
	RefreshHzSet bool `yaml:"-"`
	BellSet      bool `yaml:"-"`
}

// Config holds all configuration settings for wodtimer.
// Fields ending in *Set track whether that field was explicitly set in config.
// This allows distinguishing explicit false/0 from "not set", enabling proper
// merge behavior where local config can override global config with zero values.
type Config struct {
	Timer       TimerConfig   `yaml:"timer"`
	Display     DisplayConfig `yaml:"display"`
	WorkoutsDir string        `yaml:"workouts_dir"` // where bare workout names are looked up

	// Private: track where config was loaded from
	configDir string
	localDir  string
	sources   []string // ordered list of sources that contributed to this config
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Load loads all configuration from the default locations.
// It auto-detects .wodtimer/ in the current working directory for local overrides.
// It installs defaults if needed.
func Load() (*Config, error) {
	globalDir := dirs.ConfigDir()

	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, ".wodtimer")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			localDir = candidate
		}
	}

	return LoadWithDirs(globalDir, localDir)
}

// LoadWithDirs loads configuration with explicit global and local directories.
// Local config (.wodtimer/) overrides global config (~/.config/wodtimer/) per-field.
// If localDir is empty, only global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	if err := InstallDefaults(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	// Load in order: embedded → global → env → local
	// Each layer only overwrites fields that were explicitly set

	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	cfg.applyEnv()

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	if cfg.WorkoutsDir == "" {
		cfg.WorkoutsDir = filepath.Join(globalDir, "workouts")
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir

	return cfg, nil
}

// InstallDefaults creates the config directory and installs default config if not exists.
func InstallDefaults(configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	workoutsDir := filepath.Join(configDir, "workouts")
	if err := os.MkdirAll(workoutsDir, 0o700); err != nil {
		return fmt.Errorf("create workouts dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := defaultsFS.ReadFile("defaults/config.yaml")
		if err != nil {
			return fmt.Errorf("read embedded config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	return nil
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	// Parse into a map to detect which fields were explicitly set
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if t, ok := raw["timer"].(map[string]any); ok {
		if _, ok := t["countdown_seconds"]; ok {
			cfg.Timer.CountdownSecondsSet = true
		}
		if _, ok := t["show_placeholder"]; ok {
			cfg.Timer.ShowPlaceholderSet = true
		}
		if _, ok := t["show_go_cue"]; ok {
			cfg.Timer.ShowGoCueSet = true
		}
	}

	if d, ok := raw["display"].(map[string]any); ok {
		if _, ok := d["refresh_hz"]; ok {
			cfg.Display.RefreshHzSet = true
		}
		if _, ok := d["bell"]; ok {
			cfg.Display.BellSet = true
		}
	}

	return cfg, nil
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() {
	if v := os.Getenv("WODTIMER_COUNTDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Timer.CountdownSeconds = n
			c.Timer.CountdownSecondsSet = true
			c.sources = append(c.sources, "env:WODTIMER_COUNTDOWN_SECONDS")
		}
	}

	if v := os.Getenv("WODTIMER_SHOW_PLACEHOLDER"); v != "" {
		c.Timer.ShowPlaceholder = parseBool(v)
		c.Timer.ShowPlaceholderSet = true
		c.sources = append(c.sources, "env:WODTIMER_SHOW_PLACEHOLDER")
	}

	if v := os.Getenv("WODTIMER_SHOW_GO_CUE"); v != "" {
		c.Timer.ShowGoCue = parseBool(v)
		c.Timer.ShowGoCueSet = true
		c.sources = append(c.sources, "env:WODTIMER_SHOW_GO_CUE")
	}

	if v := os.Getenv("WODTIMER_REFRESH_HZ"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Display.RefreshHz = n
			c.Display.RefreshHzSet = true
			c.sources = append(c.sources, "env:WODTIMER_REFRESH_HZ")
		}
	}

	if v := os.Getenv("WODTIMER_BELL"); v != "" {
		c.Display.Bell = parseBool(v)
		c.Display.BellSet = true
		c.sources = append(c.sources, "env:WODTIMER_BELL")
	}

	if v := os.Getenv("WODTIMER_WORKOUTS_DIR"); v != "" {
		c.WorkoutsDir = v
		c.sources = append(c.sources, "env:WODTIMER_WORKOUTS_DIR")
	}
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.Timer.CountdownSecondsSet {
		c.Timer.CountdownSeconds = src.Timer.CountdownSeconds
		c.Timer.CountdownSecondsSet = true
	}
	if src.Timer.ShowPlaceholderSet {
		c.Timer.ShowPlaceholder = src.Timer.ShowPlaceholder
		c.Timer.ShowPlaceholderSet = true
	}
	if src.Timer.ShowGoCueSet {
		c.Timer.ShowGoCue = src.Timer.ShowGoCue
		c.Timer.ShowGoCueSet = true
	}

	if src.Display.RefreshHzSet {
		c.Display.RefreshHz = src.Display.RefreshHz
		c.Display.RefreshHzSet = true
	}
	if src.Display.BellSet {
		c.Display.Bell = src.Display.Bell
		c.Display.BellSet = true
	}

	if src.WorkoutsDir != "" {
		c.WorkoutsDir = src.WorkoutsDir
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence; nil fields are left alone.
func (c *Config) ApplyCLIFlags(o timer.Override) {
	if o.CountdownSeconds != nil {
		c.Timer.CountdownSeconds = *o.CountdownSeconds
		c.Timer.CountdownSecondsSet = true
		c.sources = append(c.sources, "cli:countdown")
	}
	if o.ShowPlaceholder != nil {
		c.Timer.ShowPlaceholder = *o.ShowPlaceholder
		c.Timer.ShowPlaceholderSet = true
		c.sources = append(c.sources, "cli:no-placeholder")
	}
	if o.ShowGoCue != nil {
		c.Timer.ShowGoCue = *o.ShowGoCue
		c.Timer.ShowGoCueSet = true
		c.sources = append(c.sources, "cli:no-go")
	}
}

// Override returns the compiler fields that some layer set explicitly.
func (c *Config) Override() timer.Override {
	var o timer.Override
	if c.Timer.CountdownSecondsSet {
		o.CountdownSeconds = timer.Int(c.Timer.CountdownSeconds)
	}
	if c.Timer.ShowPlaceholderSet {
		o.ShowPlaceholder = timer.Bool(c.Timer.ShowPlaceholder)
	}
	if c.Timer.ShowGoCueSet {
		o.ShowGoCue = timer.Bool(c.Timer.ShowGoCue)
	}
	return o
}

// Compiler returns the effective compiler config: defaults plus Override.
func (c *Config) Compiler() timer.Config {
	return timer.DefaultConfig().Merge(c.Override())
}

// RefreshInterval returns the period between display refreshes.
func (c *Config) RefreshInterval() time.Duration {
	hz := c.Display.RefreshHz
	if hz <= 0 {
		hz = DefaultRefreshHz
	}
	return time.Second / time.Duration(hz)
}
