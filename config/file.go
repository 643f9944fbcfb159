package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// File is the TOML form of Config. Keys left out of the file fall back to
// the environment and then to the defaults; a variable that is set in the
// environment always wins over the file.
//
//	addr = ":9090"
//	strategy = "per-candidate"
//	workers = 4
//	search_timeout = "2s"
type File struct {
	Addr          string `toml:"addr"`
	BaseURL       string `toml:"base_url"`
	GinMode       string `toml:"gin_mode"`
	Workers       int    `toml:"workers"`
	Strategy      string `toml:"strategy"`
	SearchTimeout string `toml:"search_timeout"`
	MaxCells      int    `toml:"max_cells"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
}

// LoadTOML decodes the file at path and resolves it against the environment.
func LoadTOML(path string) (Config, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidValue, path, undecoded[0].String())
	}
	return f.Resolve()
}

// Resolve builds a Config from f layered under the environment.
func (f File) Resolve() (Config, error) {
	values := map[string]string{
		EnvAddr:          f.Addr,
		EnvBaseURL:       f.BaseURL,
		EnvGinMode:       f.GinMode,
		EnvStrategy:      f.Strategy,
		EnvSearchTimeout: f.SearchTimeout,
		EnvLogLevel:      f.LogLevel,
		EnvLogFormat:     f.LogFormat,
	}
	if f.Workers != 0 {
		values[EnvWorkers] = strconv.Itoa(f.Workers)
	}
	if f.MaxCells != 0 {
		values[EnvMaxCells] = strconv.Itoa(f.MaxCells)
	}

	return fromSource(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok && v != ""
	})
}
