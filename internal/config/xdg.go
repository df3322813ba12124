package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fibreflow/antihall-guard/internal/constants"
	yaml "gopkg.in/yaml.v3"
)

// XDGConfig handles XDG Base Directory Specification compliant configuration
type XDGConfig struct {
	BaseDir string
}

// NewXDGConfig creates a new XDG configuration manager
func NewXDGConfig() *XDGConfig {
	baseDir := os.Getenv("XDG_CONFIG_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home directory cannot be determined
			baseDir = ".config"
		} else {
			baseDir = filepath.Join(homeDir, ".config")
		}
	}

	return &XDGConfig{
		BaseDir: filepath.Join(baseDir, constants.BinaryName),
	}
}

// GetConfigDir returns the XDG configuration directory for antihall-guard
func (x *XDGConfig) GetConfigDir() string {
	return x.BaseDir
}

// GlobalConfigCandidates returns the global config file paths in priority
// order. TOML is the canonical format; YAML is accepted for parity with the
// project-level file.
func (x *XDGConfig) GlobalConfigCandidates() []string {
	return []string{
		filepath.Join(x.BaseDir, "config.toml"),
		filepath.Join(x.BaseDir, "config.yml"),
		filepath.Join(x.BaseDir, "config.yaml"),
	}
}

// globalConfig is the file layout of the XDG global configuration.
type globalConfig struct {
	Guard *GuardConfig `toml:"guard" yaml:"guard"`
}

// LoadGlobalGuardConfig reads the guard section of the global config.
// Returns (nil, nil) when no global config exists.
func (x *XDGConfig) LoadGlobalGuardConfig() (*GuardConfig, error) {
	for _, path := range x.GlobalConfigCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
		if err != nil {
			return nil, err
		}

		var cfg globalConfig
		if filepath.Ext(path) == ".toml" {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		}
		return cfg.Guard, nil
	}
	return nil, nil
}

// SaveGlobalGuardConfig writes the guard section to the canonical TOML path.
func (x *XDGConfig) SaveGlobalGuardConfig(guard *GuardConfig) error {
	if err := os.MkdirAll(x.BaseDir, 0o750); err != nil {
		return err
	}

	path := filepath.Join(x.BaseDir, "config.toml")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	return toml.NewEncoder(file).Encode(globalConfig{Guard: guard})
}
