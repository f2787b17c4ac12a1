package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the environment variable holding an optional config file path.
const EnvConfigPath = "CROSSWALK_CONFIG"

var (
	ErrInvalid           = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Duration is a time.Duration that decodes from Go duration strings ("10s",
// "250ms") in environment variables, TOML and YAML alike.
type Duration time.Duration

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration as a Go duration string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the string representation of the duration
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config holds all application configuration.
type Config struct {
	Timing    TimingConfig    `toml:"timing" yaml:"timing"`
	Request   RequestConfig   `toml:"request" yaml:"request"`
	Input     InputConfig     `toml:"input" yaml:"input"`
	Display   DisplayConfig   `toml:"display" yaml:"display"`
	Logging   LogConfig       `toml:"logging" yaml:"logging"`
	Status    StatusConfig    `toml:"status" yaml:"status"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
}

// TimingConfig holds the phase durations of the signal cycle.
type TimingConfig struct {
	Green    Duration `envconfig:"GREEN_TIME" toml:"green" yaml:"green"`
	Yellow   Duration `envconfig:"YELLOW_TIME" toml:"yellow" yaml:"yellow"`
	Red      Duration `envconfig:"RED_TIME" toml:"red" yaml:"red"`
	Crossing Duration `envconfig:"CROSSING_TIME" toml:"crossing" yaml:"crossing"`
	// Slice bounds how long a sleeping goroutine goes without re-checking shared state
	Slice Duration `envconfig:"SLEEP_SLICE" toml:"slice" yaml:"slice"`
}

// RequestConfig holds the randomized button-push range. Delays are drawn as
// whole multiples of Step in [Min, Max].
type RequestConfig struct {
	Min  Duration `envconfig:"REQUEST_MIN" toml:"min" yaml:"min"`
	Max  Duration `envconfig:"REQUEST_MAX" toml:"max" yaml:"max"`
	Step Duration `envconfig:"REQUEST_STEP" toml:"step" yaml:"step"`
}

// InputConfig holds keyboard input configuration.
type InputConfig struct {
	Device string `envconfig:"INPUT_DEVICE" toml:"device" yaml:"device"`
}

// DisplayConfig holds console display configuration.
type DisplayConfig struct {
	Color bool `envconfig:"DISPLAY_COLOR" toml:"color" yaml:"color"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development" yaml:"development"`
	File        string `envconfig:"LOG_FILE" toml:"file" yaml:"file"`
}

// StatusConfig holds the optional status server configuration. An empty
// address disables the server.
type StatusConfig struct {
	Addr string `envconfig:"STATUS_ADDR" toml:"addr" yaml:"addr"`
}

// Enabled reports whether the status server should run
func (s StatusConfig) Enabled() bool {
	return s.Addr != ""
}

// RateLimitConfig holds per-client limits for the remote press endpoint.
type RateLimitConfig struct {
	RequestsPerSecond int `envconfig:"RATE_LIMIT_RPS" toml:"rps" yaml:"rps"`
	Burst             int `envconfig:"RATE_LIMIT_BURST" toml:"burst" yaml:"burst"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			Green:    Duration(10 * time.Second),
			Yellow:   Duration(3 * time.Second),
			Red:      Duration(7 * time.Second),
			Crossing: Duration(10 * time.Second),
			Slice:    Duration(100 * time.Millisecond),
		},
		Request: RequestConfig{
			Min:  Duration(20 * time.Second),
			Max:  Duration(30 * time.Second),
			Step: Duration(time.Second),
		},
		Input: InputConfig{
			Device: "/dev/tty",
		},
		Display: DisplayConfig{
			Color: true,
		},
		Logging: LogConfig{
			Level:       "warn",
			Development: false,
			File:        "stderr",
		},
		Status: StatusConfig{
			Addr: "",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

// Load builds the configuration from defaults, then the optional file at
// path (or $CROSSWALK_CONFIG when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// No default tags: unset variables leave file and built-in values alone.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// loadFile decodes a TOML or YAML file over cfg, chosen by extension.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Validate checks that the configuration describes a runnable signal.
func (c *Config) Validate() error {
	var problems []error

	phases := []struct {
		name  string
		value Duration
	}{
		{"GREEN_TIME", c.Timing.Green},
		{"YELLOW_TIME", c.Timing.Yellow},
		{"RED_TIME", c.Timing.Red},
		{"CROSSING_TIME", c.Timing.Crossing},
		{"SLEEP_SLICE", c.Timing.Slice},
		{"REQUEST_STEP", c.Request.Step},
	}
	for _, p := range phases {
		if p.value <= 0 {
			problems = append(problems, fmt.Errorf("%s must be positive, got %s", p.name, p.value))
		}
	}

	if c.Request.Min < 0 {
		problems = append(problems, fmt.Errorf("REQUEST_MIN must not be negative, got %s", c.Request.Min))
	}
	if c.Request.Min > c.Request.Max {
		problems = append(problems, fmt.Errorf("REQUEST_MIN (%s) exceeds REQUEST_MAX (%s)", c.Request.Min, c.Request.Max))
	}

	if c.Input.Device == "" {
		problems = append(problems, errors.New("INPUT_DEVICE must not be empty"))
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		problems = append(problems, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return nil
}
