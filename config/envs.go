// Package config loads process settings for the hillclimb binaries from the
// environment, optionally seeded from a .env or TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/hillclimb/climb"
)

// ErrInvalidValue indicates an environment variable that cannot be parsed or is out of range.
var ErrInvalidValue = errors.New("config: invalid value")

// Environment variable names.
const (
	EnvAddr          = "HILLCLIMB_ADDR"
	EnvBaseURL       = "HILLCLIMB_BASE_URL"
	EnvGinMode       = "HILLCLIMB_GIN_MODE"
	EnvWorkers       = "HILLCLIMB_WORKERS"
	EnvStrategy      = "HILLCLIMB_STRATEGY"
	EnvSearchTimeout = "HILLCLIMB_SEARCH_TIMEOUT"
	EnvMaxCells      = "HILLCLIMB_MAX_CELLS"
	EnvLogLevel      = "HILLCLIMB_LOG_LEVEL"
	EnvLogFormat     = "HILLCLIMB_LOG_FORMAT"
)

// Config holds the application's configuration values.
type Config struct {
	Addr          string         // Address the HTTP API listens on
	BaseURL       string         // Prefix for API routes
	GinMode       string         // Mode for the Gin framework (release, debug, test)
	Workers       int            // Concurrent searches for the per-candidate strategy
	Strategy      climb.Strategy // Multi-source strategy
	SearchTimeout time.Duration  // Deadline applied to each API search
	MaxCells      int            // Largest heightmap the API accepts, in cells
	LogLevel      slog.Level     // Minimum log level
	LogFormat     string         // "text" or "json"
}

// Load reads a .env file if one exists in the working directory, then
// builds a Config from the environment. Unset variables take defaults;
// malformed ones yield ErrInvalidValue.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromEnv()
}

// LoadFile is Load with an explicit .env path, which must exist.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	return fromSource(os.LookupEnv)
}

// source resolves a setting by its environment variable name.
type source func(key string) (string, bool)

func fromSource(lookup source) (Config, error) {
	getEnvWithDefault := func(key, defaultValue string) string {
		return getWithDefault(lookup, key, defaultValue)
	}
	getEnvAsInt := func(key string, defaultValue int) (int, error) {
		return getAsInt(lookup, key, defaultValue)
	}

	cfg := Config{
		Addr:      getEnvWithDefault(EnvAddr, ":8080"),
		BaseURL:   getEnvWithDefault(EnvBaseURL, "/api"),
		GinMode:   getEnvWithDefault(EnvGinMode, "release"),
		LogFormat: strings.ToLower(getEnvWithDefault(EnvLogFormat, "text")),
	}

	var err error
	if cfg.Workers, err = getEnvAsInt(EnvWorkers, runtime.NumCPU()); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidValue, EnvWorkers, cfg.Workers)
	}
	if cfg.MaxCells, err = getEnvAsInt(EnvMaxCells, 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.MaxCells < 1 {
		return Config{}, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidValue, EnvMaxCells, cfg.MaxCells)
	}
	if cfg.Strategy, err = climb.ParseStrategy(getEnvWithDefault(EnvStrategy, "reverse")); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, EnvStrategy, err)
	}
	if cfg.SearchTimeout, err = time.ParseDuration(getEnvWithDefault(EnvSearchTimeout, "5s")); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, EnvSearchTimeout, err)
	}
	if cfg.SearchTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: %s must be positive", ErrInvalidValue, EnvSearchTimeout)
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnvWithDefault(EnvLogLevel, "info"))); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, EnvLogLevel, err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: %s must be text or json, got %q", ErrInvalidValue, EnvLogFormat, cfg.LogFormat)
	}
	switch cfg.GinMode {
	case "release", "debug", "test":
	default:
		return Config{}, fmt.Errorf("%w: %s must be release, debug or test, got %q", ErrInvalidValue, EnvGinMode, cfg.GinMode)
	}

	return cfg, nil
}

// getWithDefault retrieves the value of a setting or returns a default value if not set.
func getWithDefault(lookup source, key, defaultValue string) string {
	if value, exists := lookup(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getAsInt retrieves a setting as an integer, or the default if not set.
func getAsInt(lookup source, key string, defaultValue int) (int, error) {
	value, exists := lookup(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidValue, key, err)
	}
	return n, nil
}
