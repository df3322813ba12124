package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fibreflow/antihall-guard/internal/constants"
)

// HookCommand is one command entry in Claude Code settings hooks
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout *int   `json:"timeout,omitempty"`
}

// HookMatcher pairs a tool matcher pattern with its hook commands
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// HooksConfig mirrors the hooks section of Claude Code settings.json.
// The event and key names are a fixed external contract.
type HooksConfig struct {
	PreToolUse       []HookMatcher `json:"PreToolUse,omitempty"`
	PostToolUse      []HookMatcher `json:"PostToolUse,omitempty"`
	UserPromptSubmit []HookMatcher `json:"UserPromptSubmit,omitempty"`
	Notification     []HookMatcher `json:"Notification,omitempty"`
	Stop             []HookMatcher `json:"Stop,omitempty"`
	SubagentStop     []HookMatcher `json:"SubagentStop,omitempty"`
	PreCompact       []HookMatcher `json:"PreCompact,omitempty"`
	SessionStart     []HookMatcher `json:"SessionStart,omitempty"`
	SessionEnd       []HookMatcher `json:"SessionEnd,omitempty"`
}

// PluginConfig stores per-plugin settings.
// A nil Enabled means default (enabled). If Enabled=false, the plugin is disabled.
type PluginConfig struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// Settings is the subset of Claude Code settings.json we read and write.
// Unknown fields are preserved across load/save.
type Settings struct {
	Hooks   HooksConfig             `json:"hooks,omitempty"`
	Plugins map[string]PluginConfig `json:"plugins,omitempty"`
	Other   map[string]interface{}  `json:"-"`
}

// GetSettingsPath returns the project or global settings.json path
func GetSettingsPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return filepath.Join(homeDir, constants.ClaudeDir, constants.SettingsFileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return filepath.Join(cwd, constants.ClaudeDir, constants.SettingsFileName), nil
}

// LoadSettings reads Claude Code settings, returning empty settings when the
// file doesn't exist.
func LoadSettings(settingsPath string) (*Settings, error) {
	settings := &Settings{
		Other: make(map[string]interface{}),
	}

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return settings, nil
	}

	data, err := os.ReadFile(settingsPath) // #nosec G304 - controlled settings paths
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}

	// First unmarshal into a generic map to preserve unknown fields
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %v", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %v", err)
	}

	delete(raw, "hooks")
	delete(raw, "plugins")
	settings.Other = raw

	if settings.Plugins == nil {
		settings.Plugins = make(map[string]PluginConfig)
	}

	return settings, nil
}

// SaveSettings writes settings back, merging preserved unknown fields
func SaveSettings(settingsPath string, settings *Settings) error {
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	output := make(map[string]interface{})

	for k, v := range settings.Other {
		output[k] = v
	}

	if !IsHooksConfigEmpty(settings.Hooks) {
		output["hooks"] = settings.Hooks
	}

	if len(settings.Plugins) > 0 {
		output["plugins"] = settings.Plugins
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	if err := os.WriteFile(settingsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}

	return nil
}

// IsHooksConfigEmpty reports whether no hooks are configured for any event
func IsHooksConfigEmpty(hooks HooksConfig) bool {
	return len(hooks.PreToolUse) == 0 &&
		len(hooks.PostToolUse) == 0 &&
		len(hooks.UserPromptSubmit) == 0 &&
		len(hooks.Notification) == 0 &&
		len(hooks.Stop) == 0 &&
		len(hooks.SubagentStop) == 0 &&
		len(hooks.PreCompact) == 0 &&
		len(hooks.SessionStart) == 0 &&
		len(hooks.SessionEnd) == 0
}

// IsPluginEnabled returns true if the plugin is enabled (default) or explicitly enabled.
// Returns false if explicitly disabled in settings.
func (s *Settings) IsPluginEnabled(key string) bool {
	if s == nil || s.Plugins == nil {
		return true
	}
	cfg, ok := s.Plugins[key]
	if !ok || cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// IsPluginEnabled checks project settings first, then global. A plugin is
// enabled unless some settings file explicitly disables it.
func IsPluginEnabled(key string) bool {
	for _, global := range []bool{false, true} {
		path, err := GetSettingsPath(global)
		if err != nil {
			continue
		}
		settings, err := LoadSettings(path)
		if err != nil {
			continue
		}
		if !settings.IsPluginEnabled(key) {
			return false
		}
	}
	return true
}

// MergeResult represents the result of merging hook matchers
type MergeResult struct {
	Matchers      []HookMatcher
	WasDuplicate  bool
	DuplicateInfo string
}

// AddHookToSettings adds a hook command under the given event/matcher,
// replacing an existing antihall-guard command for the same plugin.
func AddHookToSettings(settings *Settings, event, matcher, command string, timeout *int) MergeResult {
	hookCmd := HookCommand{
		Type:    "command",
		Command: command,
		Timeout: timeout,
	}

	hookMatcher := HookMatcher{
		Matcher: matcher,
		Hooks:   []HookCommand{hookCmd},
	}

	var result MergeResult
	switch event {
	case "PreToolUse":
		result = mergeHookMatcher(settings.Hooks.PreToolUse, hookMatcher)
		settings.Hooks.PreToolUse = result.Matchers
	case "PostToolUse":
		result = mergeHookMatcher(settings.Hooks.PostToolUse, hookMatcher)
		settings.Hooks.PostToolUse = result.Matchers
	case "UserPromptSubmit":
		result = mergeHookMatcher(settings.Hooks.UserPromptSubmit, hookMatcher)
		settings.Hooks.UserPromptSubmit = result.Matchers
	case "Notification":
		result = mergeHookMatcher(settings.Hooks.Notification, hookMatcher)
		settings.Hooks.Notification = result.Matchers
	case "Stop":
		result = mergeHookMatcher(settings.Hooks.Stop, hookMatcher)
		settings.Hooks.Stop = result.Matchers
	case "SubagentStop":
		result = mergeHookMatcher(settings.Hooks.SubagentStop, hookMatcher)
		settings.Hooks.SubagentStop = result.Matchers
	case "PreCompact":
		result = mergeHookMatcher(settings.Hooks.PreCompact, hookMatcher)
		settings.Hooks.PreCompact = result.Matchers
	case "SessionStart":
		result = mergeHookMatcher(settings.Hooks.SessionStart, hookMatcher)
		settings.Hooks.SessionStart = result.Matchers
	case "SessionEnd":
		result = mergeHookMatcher(settings.Hooks.SessionEnd, hookMatcher)
		settings.Hooks.SessionEnd = result.Matchers
	}
	return result
}

// extractHookType extracts the plugin key from an antihall-guard command
// Example: "/path/to/antihall-guard run guard --log" -> "guard"
func extractHookType(command string) string {
	re := regexp.MustCompile(constants.BinaryName + `\s+run\s+(\w+)`)
	matches := re.FindStringSubmatch(command)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// IsGuardCommand checks if a settings command belongs to antihall-guard
func IsGuardCommand(command string) bool {
	return strings.Contains(command, constants.CommandPattern)
}

func mergeHookMatcher(existing []HookMatcher, incoming HookMatcher) MergeResult {
	for i, matcher := range existing {
		if matcher.Matcher != incoming.Matcher {
			continue
		}
		for j, existingHook := range existing[i].Hooks {
			for _, newHook := range incoming.Hooks {
				if existingHook.Command == newHook.Command {
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Hook command '%s' already exists for matcher '%s'", newHook.Command, matcher.Matcher),
					}
				}

				// Same plugin, different flags or binary path: replace in place.
				if IsGuardCommand(existingHook.Command) && IsGuardCommand(newHook.Command) {
					existingType := extractHookType(existingHook.Command)
					newType := extractHookType(newHook.Command)
					if existingType != "" && existingType == newType {
						existing[i].Hooks[j] = newHook
						return MergeResult{
							Matchers:      existing,
							WasDuplicate:  true,
							DuplicateInfo: fmt.Sprintf("Replaced existing %s hook with updated command for matcher '%s'", newType, matcher.Matcher),
						}
					}
				}
			}
		}
		// No conflicts found, append to existing matcher
		existing[i].Hooks = append(existing[i].Hooks, incoming.Hooks...)
		return MergeResult{
			Matchers:     existing,
			WasDuplicate: false,
		}
	}
	// No existing matcher found, add new one
	return MergeResult{
		Matchers:     append(existing, incoming),
		WasDuplicate: false,
	}
}

// RemoveHookFromSettings removes every occurrence of the exact command
func RemoveHookFromSettings(settings *Settings, command string) bool {
	removed := false

	settings.Hooks.PreToolUse = removeHookFromMatchers(settings.Hooks.PreToolUse, command, &removed)
	settings.Hooks.PostToolUse = removeHookFromMatchers(settings.Hooks.PostToolUse, command, &removed)
	settings.Hooks.UserPromptSubmit = removeHookFromMatchers(settings.Hooks.UserPromptSubmit, command, &removed)
	settings.Hooks.Notification = removeHookFromMatchers(settings.Hooks.Notification, command, &removed)
	settings.Hooks.Stop = removeHookFromMatchers(settings.Hooks.Stop, command, &removed)
	settings.Hooks.SubagentStop = removeHookFromMatchers(settings.Hooks.SubagentStop, command, &removed)
	settings.Hooks.PreCompact = removeHookFromMatchers(settings.Hooks.PreCompact, command, &removed)
	settings.Hooks.SessionStart = removeHookFromMatchers(settings.Hooks.SessionStart, command, &removed)
	settings.Hooks.SessionEnd = removeHookFromMatchers(settings.Hooks.SessionEnd, command, &removed)

	return removed
}

func removeHookFromMatchers(matchers []HookMatcher, command string, removed *bool) []HookMatcher {
	var result []HookMatcher

	for _, matcher := range matchers {
		var filteredHooks []HookCommand
		for _, hook := range matcher.Hooks {
			if hook.Command != command {
				filteredHooks = append(filteredHooks, hook)
			} else {
				*removed = true
			}
		}

		// Only keep matcher if it still has hooks
		if len(filteredHooks) > 0 {
			matcher.Hooks = filteredHooks
			result = append(result, matcher)
		}
	}

	return result
}

// RemoveHookTypeFromSettings removes all commands for the given plugin key
// from every event, regardless of flags or binary path.
func RemoveHookTypeFromSettings(settings *Settings, hookType string) int {
	removed := 0

	removeType := func(matchers []HookMatcher) []HookMatcher {
		var result []HookMatcher
		for _, matcher := range matchers {
			var filteredHooks []HookCommand
			for _, hook := range matcher.Hooks {
				if IsGuardCommand(hook.Command) && extractHookType(hook.Command) == hookType {
					removed++
					continue
				}
				filteredHooks = append(filteredHooks, hook)
			}
			if len(filteredHooks) > 0 {
				matcher.Hooks = filteredHooks
				result = append(result, matcher)
			}
		}
		return result
	}

	settings.Hooks.PreToolUse = removeType(settings.Hooks.PreToolUse)
	settings.Hooks.PostToolUse = removeType(settings.Hooks.PostToolUse)
	settings.Hooks.UserPromptSubmit = removeType(settings.Hooks.UserPromptSubmit)
	settings.Hooks.Notification = removeType(settings.Hooks.Notification)
	settings.Hooks.Stop = removeType(settings.Hooks.Stop)
	settings.Hooks.SubagentStop = removeType(settings.Hooks.SubagentStop)
	settings.Hooks.PreCompact = removeType(settings.Hooks.PreCompact)
	settings.Hooks.SessionStart = removeType(settings.Hooks.SessionStart)
	settings.Hooks.SessionEnd = removeType(settings.Hooks.SessionEnd)

	return removed
}

// RemoveAllGuardFromSettings removes all antihall-guard hooks from settings
// and returns the count removed.
func RemoveAllGuardFromSettings(settings *Settings) int {
	removed := 0

	removeGuard := func(matchers []HookMatcher) []HookMatcher {
		var result []HookMatcher
		for _, matcher := range matchers {
			var filteredHooks []HookCommand
			for _, hook := range matcher.Hooks {
				if IsGuardCommand(hook.Command) {
					removed++
					continue
				}
				filteredHooks = append(filteredHooks, hook)
			}
			if len(filteredHooks) > 0 {
				matcher.Hooks = filteredHooks
				result = append(result, matcher)
			}
		}
		return result
	}

	settings.Hooks.PreToolUse = removeGuard(settings.Hooks.PreToolUse)
	settings.Hooks.PostToolUse = removeGuard(settings.Hooks.PostToolUse)
	settings.Hooks.UserPromptSubmit = removeGuard(settings.Hooks.UserPromptSubmit)
	settings.Hooks.Notification = removeGuard(settings.Hooks.Notification)
	settings.Hooks.Stop = removeGuard(settings.Hooks.Stop)
	settings.Hooks.SubagentStop = removeGuard(settings.Hooks.SubagentStop)
	settings.Hooks.PreCompact = removeGuard(settings.Hooks.PreCompact)
	settings.Hooks.SessionStart = removeGuard(settings.Hooks.SessionStart)
	settings.Hooks.SessionEnd = removeGuard(settings.Hooks.SessionEnd)

	return removed
}
