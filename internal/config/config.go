// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"modeltime/core/modeltime"
	"modeltime/internal/errors"
	"modeltime/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Modeltime is the schedule used when no input document is given
	Modeltime modeltime.Config `json:"modeltime"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Modeltime: modeltime.Config{
			StartYear:    1990,
			InterYear1:   2005,
			InterYear2:   2035,
			EndYear:      2095,
			TimeStep1:    5,
			TimeStep2:    5,
			TimeStep3:    10,
			DataEndYear:  2005,
			DataTimeStep: 5,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			NoColor:       false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "read config %s", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("decode config "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
