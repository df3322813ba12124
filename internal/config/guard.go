package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fibreflow/antihall-guard/internal/constants"
	yaml "gopkg.in/yaml.v3"
)

// GuardConfig controls the antiHall validation hook.
type GuardConfig struct {
	// AntihallRoot is the antiHall tool directory; `npm run check` runs
	// with this as its working directory.
	AntihallRoot string `yaml:"antihallRoot" json:"antihallRoot,omitempty" toml:"antihallRoot"`
	// TimeoutSeconds bounds each checker invocation. Zero means the
	// built-in 10-second default.
	TimeoutSeconds int `yaml:"timeoutSeconds" json:"timeoutSeconds,omitempty" toml:"timeoutSeconds"`
	// ExtraSuffixes adds target file suffixes to validate beyond the
	// built-in TypeScript set.
	ExtraSuffixes []string `yaml:"extraSuffixes" json:"extraSuffixes,omitempty" toml:"extraSuffixes"`
}

// guardConfigCandidates returns possible guard config file locations in
// priority order (earlier paths win).
func guardConfigCandidates() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		hooksDir := filepath.Join(cwd, constants.ClaudeDir, constants.HooksSubDir)
		paths = append(paths,
			filepath.Join(hooksDir, "antihall.yml"),
			filepath.Join(hooksDir, "antihall.yaml"),
		)
	}

	return paths
}

// LoadGuardConfig resolves the guard configuration: project YAML first, then
// the guard section of the project app config, then the XDG global config.
// A missing configuration everywhere yields the zero value, which is valid.
func LoadGuardConfig() (*GuardConfig, error) {
	for _, path := range guardConfigCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
		if err != nil {
			return nil, fmt.Errorf("failed to read guard config %s: %v", path, err)
		}
		cfg := &GuardConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse guard config %s: %v", path, err)
		}
		return cfg, nil
	}

	// Project app config guard section
	if appPath, err := GetAppConfigPath(false); err == nil {
		if app, err := LoadAppConfig(appPath); err == nil && app.Guard != nil {
			return app.Guard, nil
		}
	}

	// XDG global config
	if cfg, err := NewXDGConfig().LoadGlobalGuardConfig(); err == nil && cfg != nil {
		return cfg, nil
	}

	return &GuardConfig{}, nil
}

// ResolveAntihallRoot picks the checker root: explicit config, then the
// ANTIHALL_DIR environment variable, then ./antiHall under the current
// directory. The path is not required to exist; the checker handles absence.
func (c *GuardConfig) ResolveAntihallRoot() string {
	if c != nil && c.AntihallRoot != "" {
		return c.AntihallRoot
	}
	if env := os.Getenv(constants.AntihallRootEnv); env != "" {
		return env
	}
	cwd, err := os.Getwd()
	if err != nil {
		return constants.AntihallDirName
	}
	return filepath.Join(cwd, constants.AntihallDirName)
}

// CheckTimeout returns the configured checker timeout as a duration.
// Zero or negative config means "use the checker default".
func (c *GuardConfig) CheckTimeout() time.Duration {
	if c == nil || c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ValidatedSuffixes returns the built-in suffix set plus configured extras.
func (c *GuardConfig) ValidatedSuffixes() []string {
	suffixes := append([]string{}, constants.ValidatedSuffixes...)
	if c != nil {
		suffixes = append(suffixes, c.ExtraSuffixes...)
	}
	return suffixes
}
