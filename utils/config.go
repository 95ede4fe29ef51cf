package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultSideLength = 10

// Config holds the configuration for the simulation driver
type Config struct {
	Seed           int64         `json:"seed"`
	SideLength     int           `json:"side_length"`
	TickInterval   time.Duration `json:"tick_interval"`
	Workers        int           `json:"workers"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	MaxGenerations int           `json:"max_generations"`
	AutoRestart    bool          `json:"auto_restart"`
	Render         bool          `json:"render"`
	LogLevel       string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Seed:           1,
		SideLength:     defaultSideLength,
		TickInterval:   150 * time.Millisecond,
		Workers:        0, // runtime.NumCPU
		UseMemoryPool:  true,
		MaxGenerations: 1000,
		AutoRestart:    false,
		Render:         true,
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate coerces values the engine tolerates and rejects the rest.
// A non-positive side length becomes the default, as the engine would do.
func (c *Config) Validate() error {
	if c.SideLength <= 0 {
		c.SideLength = defaultSideLength
	}
	if c.TickInterval < 0 {
		return errors.Errorf("[Validate] tick_interval must not be negative, got %v", c.TickInterval)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel. An empty level means info.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "[SlogLevel] unknown log_level %q", c.LogLevel)
	}
	return level, nil
}
