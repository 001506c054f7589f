// Package config handles reading and writing the questclock config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version        int       `yaml:"version" toml:"version"`
	DataFile       string    `yaml:"data_file" toml:"data_file"`
	StateDir       string    `yaml:"state_dir" toml:"state_dir"`
	Presets        []float64 `yaml:"presets" toml:"presets"`
	WeeklyGoal     float64   `yaml:"weekly_goal" toml:"weekly_goal"`           // minutes
	PollIntervalMS int       `yaml:"poll_interval_ms" toml:"poll_interval_ms"` // view loop cadence
	NerdFonts      bool      `yaml:"nerd_fonts" toml:"nerd_fonts"`
}

// ErrUnsupportedFormat is returned by ReadFile for an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

const (
	configDir  = "questclock"
	configYAML = "config.yaml"
	configTOML = "config.toml"
)

// Poll interval bounds. The loop must wake at least every 50ms for the
// colon blink to stay smooth.
const (
	MinPollInterval = 10 * time.Millisecond
	MaxPollInterval = 50 * time.Millisecond
)

// DefaultPresets are the minute choices offered by the duration picker.
var DefaultPresets = []float64{5, 10, 15, 20, 25, 30, 45, 60, 90, 120}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		DataFile:       "timer_history.json",
		Presets:        append([]float64(nil), DefaultPresets...),
		WeeklyGoal:     1000,
		PollIntervalMS: 50,
	}
}

// Dir returns the directory holding the config file, normally
// ~/.config/questclock.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(base, configDir), nil
}

// DefaultStateDir returns where the event log lives, normally
// ~/.local/state/questclock.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, configDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", configDir), nil
}

// ReadConfig loads config.yaml from dir, or config.toml when only that
// exists. A missing file yields DefaultConfig. Fields present in the file
// override the defaults; the result is normalized.
func ReadConfig(dir string) (*Config, error) {
	for _, name := range []string{configYAML, configTOML} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		cfg, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return DefaultConfig(), nil
}

// ReadFile loads a single config file, choosing the decoder by extension.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	cfg.Normalize()
	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir.
// Creates dir if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configYAML)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Normalize repairs out-of-range values in place.
func (c *Config) Normalize() {
	if c.DataFile == "" {
		c.DataFile = DefaultConfig().DataFile
	}
	if c.WeeklyGoal <= 0 {
		c.WeeklyGoal = DefaultConfig().WeeklyGoal
	}

	presets := c.Presets[:0:0]
	for _, p := range c.Presets {
		if p > 0 {
			presets = append(presets, p)
		}
	}
	if len(presets) == 0 {
		presets = append(presets, DefaultPresets...)
	}
	c.Presets = presets

	d := time.Duration(c.PollIntervalMS) * time.Millisecond
	if d < MinPollInterval {
		d = MinPollInterval
	}
	if d > MaxPollInterval {
		d = MaxPollInterval
	}
	c.PollIntervalMS = int(d / time.Millisecond)
}

// PollInterval returns the view loop cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
