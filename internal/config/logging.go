package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fibreflow/antihall-guard/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	MaxAge     int  // Maximum number of days to retain log files
	MaxSize    int  // Maximum size in megabytes before rotation
	MaxBackups int  // Maximum number of backup files to retain
	Compress   bool // Whether to compress rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,
		MaxSize:    10,
		MaxBackups: 5,
		Compress:   true,
	}
}

// AppConfig represents the application's JSON config file
// (.claude/hooks/antihall-guard-config.json). Unknown keys round-trip.
type AppConfig struct {
	LogRotation LogRotationConfig      `json:"logRotation"`
	Guard       *GuardConfig           `json:"guard,omitempty"`
	Other       map[string]interface{} `json:"-"`
}

// GetAppConfigPath returns the path to our app configuration file
func GetAppConfigPath(global bool) (string, error) {
	if global {
		// Global config: ~/.claude/hooks/antihall-guard-config.json
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return constants.GetConfigPath(homeDir), nil
	}
	// Project config: ./.claude/hooks/antihall-guard-config.json
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return constants.GetConfigPath(cwd), nil
}

// LoadAppConfig loads the app configuration, returning defaults if the file
// doesn't exist.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	config := &AppConfig{LogRotation: DefaultLogRotationConfig(), Other: map[string]interface{}{}}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled config paths
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	// Preserve unknown fields
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	delete(raw, "logRotation")
	delete(raw, "guard")
	config.Other = raw

	return config, nil
}

// SaveAppConfig saves the app configuration to file
func SaveAppConfig(configPath string, config *AppConfig) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	// Merge known and unknown
	out := map[string]interface{}{}
	for k, v := range config.Other {
		out[k] = v
	}
	out["logRotation"] = config.LogRotation
	if config.Guard != nil {
		out["guard"] = config.Guard
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// GetLogRotationConfigFromFile gets log rotation config from our own config file
func GetLogRotationConfigFromFile(global bool) LogRotationConfig {
	configPath, err := GetAppConfigPath(global)
	if err != nil {
		return DefaultLogRotationConfig()
	}

	config, err := LoadAppConfig(configPath)
	if err != nil {
		return DefaultLogRotationConfig()
	}

	return config.LogRotation
}

// SetupLogRotation configures log rotation for a given log file path
func SetupLogRotation(logPath string, config LogRotationConfig) *lumberjack.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return nil
	}

	logger := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}

	return logger
}

// CleanupOldLogs manually removes log files older than the specified number of days
// This provides additional cleanup beyond lumberjack's built-in MaxAge
func CleanupOldLogs(logDir string, maxAgeDays int) error {
	if maxAgeDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	err := filepath.Walk(logDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if filepath.Ext(path) != ".log" {
			return nil
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to remove old log file %s: %v", path, err)
			}
		}

		return nil
	})

	return err
}

// GetLogPath returns the log file path for a plugin key
func GetLogPath(pluginKey string) string {
	return filepath.Join(constants.ClaudeDir, constants.HooksSubDir, fmt.Sprintf("%s.log", pluginKey))
}

// Logging output formats
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat reports whether f is a supported log format
func IsValidLoggingFormat(f string) bool {
	return f == LoggingFormatJSONL || f == LoggingFormatPretty
}
