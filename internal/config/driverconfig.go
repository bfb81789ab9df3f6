package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DriverConfigFileName is the project file `cmd/funxyc` looks for next
// to the source file being compiled, the way the teacher's own driver
// looks for `funxy.yaml`.
const DriverConfigFileName = "funxyc.yaml"

// DriverConfig is the driver's own project configuration: where
// artifacts land, how they're reported, and the class-file version the
// driver copies into the pipeline's Options. That version changes only
// the emitted class-file format, never compilation semantics.
type DriverConfig struct {
	OutputDir        string `yaml:"output_dir,omitempty"`
	ClassFileVersion int    `yaml:"class_file_version,omitempty"`
	Color            *bool  `yaml:"color,omitempty"`
}

// LoadDriverConfig reads and parses a funxyc.yaml file.
func LoadDriverConfig(path string) (*DriverConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg DriverConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.ClassFileVersion == 0 {
		cfg.ClassFileVersion = DefaultClassFileMajorVersion
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &cfg, nil
}

// FindDriverConfig walks up from dir looking for funxyc.yaml, the same
// way the teacher's FindConfig walks up looking for funxy.yaml. Returns
// an empty path and nil error when none is found; that's not an error,
// it just means the driver runs on its built-in defaults.
func FindDriverConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, DriverConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
