// Package config loads the configuration of the calculator program.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"src.calc.sh/pkg/calc"
	"src.calc.sh/pkg/eval"
	"src.calc.sh/pkg/history"
	"src.calc.sh/pkg/store"
)

// Name of the configuration file inside the configuration directory.
const fileName = "calc.yaml"

// Config is the configuration of the calculator program.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// HistoryConfig configures the persisted history log.
type HistoryConfig struct {
	// One of "bolt", "sqlite" and "memory".
	Backend string `yaml:"backend"`
	// Path of the database. Ignored by the memory backend.
	Path  string `yaml:"path"`
	Limit int    `yaml:"limit"`
}

// DisplayConfig configures how results are shown.
type DisplayConfig struct {
	Precision   int    `yaml:"precision"`
	ErrorMarker string `yaml:"error_marker"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	// Empty to disable logging.
	File string `yaml:"file,omitempty"`
}

// Default returns the default configuration. The database lives in dataDir.
func Default(dataDir string) *Config {
	return &Config{
		History: HistoryConfig{
			Backend: store.Bolt,
			Path:    filepath.Join(dataDir, "history.db"),
			Limit:   history.DefaultLimit,
		},
		Display: DisplayConfig{
			Precision:   eval.Precision,
			ErrorMarker: calc.DefaultErrorMarker,
		},
	}
}

// Dir returns the default directory for the configuration file and the
// database.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calc"), nil
}

// DefaultPath returns the default path of the configuration file.
func DefaultPath(dir string) string {
	return filepath.Join(dir, fileName)
}

// Load reads the configuration file at path on top of the defaults. A
// missing file is not an error.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default(dataDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ErrInvalid is wrapped by errors returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.History.Backend {
	case store.Bolt, store.SQLite:
		if c.History.Path == "" {
			return fmt.Errorf("%w: history.path is required for backend %s",
				ErrInvalid, c.History.Backend)
		}
	case store.Memory:
	default:
		return fmt.Errorf("%w: unknown history.backend %q", ErrInvalid, c.History.Backend)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("%w: history.limit must be positive", ErrInvalid)
	}
	// Beyond 17 digits a float64 has nothing more to show.
	if c.Display.Precision < 0 || c.Display.Precision > 17 {
		return fmt.Errorf("%w: display.precision must be between 0 and 17", ErrInvalid)
	}
	if c.Display.ErrorMarker == "" {
		return fmt.Errorf("%w: display.error_marker must not be empty", ErrInvalid)
	}
	return nil
}
