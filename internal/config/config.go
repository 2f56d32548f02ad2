// Package config loads pomotodo settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the home directory.
const FileName = "config.yaml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	UI       UIConfig       `yaml:"ui"`
}

type PomodoroConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type UIConfig struct {
	AltScreen bool `yaml:"alt_screen"`
	Bell      bool `yaml:"bell"`
}

// Default returns the configuration used when no file exists. Paths are
// relative to home.
func Default(home string) *Config {
	return &Config{
		Pomodoro: PomodoroConfig{Duration: 25 * time.Minute},
		Database: DatabaseConfig{Path: filepath.Join(home, "pomotodo.db")},
		Log: LogConfig{
			Path:  filepath.Join(home, "pomotodo.log"),
			Level: "info",
		},
		UI: UIConfig{AltScreen: true, Bell: true},
	}
}

// HomeDir returns $POMOTODO_HOME, falling back to ~/.pomotodo.
func HomeDir() (string, error) {
	if v := os.Getenv("POMOTODO_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".pomotodo"), nil
}

// Load reads home/config.yaml, writing the defaults there first when the
// file does not exist, then applies environment overrides and validates.
func Load(home string) (*Config, error) {
	path := filepath.Join(home, FileName)
	cfg := Default(home)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("POMOTODO_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("POMOTODO_DURATION"); v != "" {
		if d, err := ParseDuration(v); err == nil {
			cfg.Pomodoro.Duration = d
		}
	}
	if v := os.Getenv("POMOTODO_LOG"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("POMOTODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("POMOTODO_BELL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Bell = b
		}
	}
}

// ParseDuration accepts Go duration strings ("25m", "90s") and bare
// integers, which are read as seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidConfig, s)
	}
	return d, nil
}

// Validate checks that the countdown is a positive whole number of
// seconds and that the log level is known.
func (c *Config) Validate() error {
	if err := ValidateDuration(c.Pomodoro.Duration); err != nil {
		return err
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ValidateDuration rejects non-positive and fractional-second durations.
func ValidateDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration %s must be positive", ErrInvalidConfig, d)
	}
	if d%time.Second != 0 {
		return fmt.Errorf("%w: duration %s must be whole seconds", ErrInvalidConfig, d)
	}
	return nil
}

// DurationSeconds returns the countdown length in seconds.
func (c *Config) DurationSeconds() int {
	return int(c.Pomodoro.Duration / time.Second)
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, name)
	}
}
