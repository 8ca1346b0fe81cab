package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Defaults applied when a field is missing or out of bounds.
const (
	DefaultTempo      = 120
	DefaultExportFile = "drum_output.mid"
	DefaultKit        = "gm"

	minTempo = 30
	maxTempo = 300
)

// Config is the persisted user configuration.
type Config struct {
	Tempo      int    `json:"tempo,omitempty"`
	ExportFile string `json:"exportFile,omitempty"`
	PortName   string `json:"portName,omitempty"` // empty = first available output
	Kit        string `json:"kit,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tempo:      DefaultTempo,
		ExportFile: DefaultExportFile,
		Kit:        DefaultKit,
	}
}

// Normalize pulls loaded values back into legal ranges.
func (c *Config) Normalize() {
	if c.Tempo < minTempo || c.Tempo > maxTempo {
		c.Tempo = DefaultTempo
	}
	if c.ExportFile == "" {
		c.ExportFile = DefaultExportFile
	}
	if c.Kit == "" {
		c.Kit = DefaultKit
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stepdrum"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
