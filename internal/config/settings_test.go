package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractHookType(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "exact match without flags",
			command: "/usr/local/bin/antihall-guard run guard",
			want:    "guard",
		},
		{
			name:    "match with --log flag",
			command: "/usr/local/bin/antihall-guard run guard --log",
			want:    "guard",
		},
		{
			name:    "match with log format flags",
			command: "/path/antihall-guard run guard --log --log-format pretty",
			want:    "guard",
		},
		{
			name:    "match with different executable path",
			command: "/different/path/antihall-guard run guard",
			want:    "guard",
		},
		{
			name:    "no match for other tools",
			command: "/usr/bin/some-other-tool run guard",
			want:    "",
		},
		{
			name:    "no match without run",
			command: "antihall-guard list",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractHookType(tt.command); got != tt.want {
				t.Errorf("extractHookType(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestIsGuardCommand(t *testing.T) {
	if !IsGuardCommand("/usr/local/bin/antihall-guard run guard") {
		t.Error("expected guard command to be recognized")
	}
	if IsGuardCommand("/usr/bin/other-tool run guard") {
		t.Error("expected other tool command to be rejected")
	}
}

func TestAddHookToSettings(t *testing.T) {
	settings := &Settings{}

	result := AddHookToSettings(settings, "PreToolUse", "Write|Edit|MultiEdit",
		"/bin/antihall-guard run guard", nil)
	if result.WasDuplicate {
		t.Error("first install should not be a duplicate")
	}
	if len(settings.Hooks.PreToolUse) != 1 {
		t.Fatalf("expected 1 matcher, got %d", len(settings.Hooks.PreToolUse))
	}
	if len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(settings.Hooks.PreToolUse[0].Hooks))
	}

	// Exact same command again is a duplicate with no changes.
	result = AddHookToSettings(settings, "PreToolUse", "Write|Edit|MultiEdit",
		"/bin/antihall-guard run guard", nil)
	if !result.WasDuplicate {
		t.Error("identical install should be flagged as duplicate")
	}
	if len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Errorf("duplicate install must not add hooks, got %d", len(settings.Hooks.PreToolUse[0].Hooks))
	}

	// Same plugin with different flags replaces in place.
	result = AddHookToSettings(settings, "PreToolUse", "Write|Edit|MultiEdit",
		"/bin/antihall-guard run guard --log", nil)
	if !result.WasDuplicate {
		t.Error("expected replacement to report WasDuplicate")
	}
	if len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Fatalf("replacement must not add hooks, got %d", len(settings.Hooks.PreToolUse[0].Hooks))
	}
	if settings.Hooks.PreToolUse[0].Hooks[0].Command != "/bin/antihall-guard run guard --log" {
		t.Errorf("expected replaced command, got %q", settings.Hooks.PreToolUse[0].Hooks[0].Command)
	}
}

func TestAddHookToSettingsDistinctMatchers(t *testing.T) {
	settings := &Settings{}

	AddHookToSettings(settings, "PreToolUse", "Write", "/bin/antihall-guard run guard", nil)
	AddHookToSettings(settings, "PreToolUse", "Edit", "/bin/antihall-guard run guard", nil)

	if len(settings.Hooks.PreToolUse) != 2 {
		t.Errorf("expected 2 matchers, got %d", len(settings.Hooks.PreToolUse))
	}
}

func TestRemoveHookTypeFromSettings(t *testing.T) {
	settings := &Settings{
		Hooks: HooksConfig{
			PreToolUse: []HookMatcher{
				{
					Matcher: "Write|Edit|MultiEdit",
					Hooks: []HookCommand{
						{Type: "command", Command: "/bin/antihall-guard run guard --log"},
						{Type: "command", Command: "/bin/other-tool run lint"},
					},
				},
			},
			PostToolUse: []HookMatcher{
				{
					Matcher: "*",
					Hooks: []HookCommand{
						{Type: "command", Command: "/bin/antihall-guard run guard"},
					},
				},
			},
		},
	}

	removed := RemoveHookTypeFromSettings(settings, "guard")
	if removed != 2 {
		t.Errorf("expected 2 removals, got %d", removed)
	}

	if len(settings.Hooks.PreToolUse) != 1 || len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Fatalf("expected other tool's hook to survive: %+v", settings.Hooks.PreToolUse)
	}
	if settings.Hooks.PreToolUse[0].Hooks[0].Command != "/bin/other-tool run lint" {
		t.Errorf("wrong hook survived: %q", settings.Hooks.PreToolUse[0].Hooks[0].Command)
	}
	if len(settings.Hooks.PostToolUse) != 0 {
		t.Errorf("expected empty PostToolUse, got %+v", settings.Hooks.PostToolUse)
	}
}

func TestRemoveHookFromSettings(t *testing.T) {
	settings := &Settings{
		Hooks: HooksConfig{
			PreToolUse: []HookMatcher{
				{
					Matcher: "Write|Edit|MultiEdit",
					Hooks: []HookCommand{
						{Type: "command", Command: "/old/path/antihall-guard run guard"},
						{Type: "command", Command: "/bin/antihall-guard run guard --log"},
					},
				},
			},
		},
	}

	if !RemoveHookFromSettings(settings, "/old/path/antihall-guard run guard") {
		t.Fatal("expected exact-command removal to report true")
	}

	if len(settings.Hooks.PreToolUse) != 1 || len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Fatalf("expected one hook to survive: %+v", settings.Hooks.PreToolUse)
	}
	if settings.Hooks.PreToolUse[0].Hooks[0].Command != "/bin/antihall-guard run guard --log" {
		t.Errorf("wrong hook survived: %q", settings.Hooks.PreToolUse[0].Hooks[0].Command)
	}

	// A second pass with the same command finds nothing.
	if RemoveHookFromSettings(settings, "/old/path/antihall-guard run guard") {
		t.Error("expected no removal on second pass")
	}
}

func TestRemoveHookFromSettingsDropsEmptyMatcher(t *testing.T) {
	settings := &Settings{
		Hooks: HooksConfig{
			PostToolUse: []HookMatcher{
				{
					Matcher: "*",
					Hooks: []HookCommand{
						{Type: "command", Command: "/bin/antihall-guard run guard"},
					},
				},
			},
		},
	}

	if !RemoveHookFromSettings(settings, "/bin/antihall-guard run guard") {
		t.Fatal("expected removal to report true")
	}
	if len(settings.Hooks.PostToolUse) != 0 {
		t.Errorf("expected emptied matcher to be dropped, got %+v", settings.Hooks.PostToolUse)
	}
}

func TestRemoveAllGuardFromSettings(t *testing.T) {
	settings := &Settings{
		Hooks: HooksConfig{
			PreToolUse: []HookMatcher{
				{
					Matcher: "*",
					Hooks: []HookCommand{
						{Type: "command", Command: "/bin/antihall-guard run guard"},
						{Type: "command", Command: "/bin/other-tool audit"},
					},
				},
			},
		},
	}

	removed := RemoveAllGuardFromSettings(settings)
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
	if len(settings.Hooks.PreToolUse) != 1 || settings.Hooks.PreToolUse[0].Hooks[0].Command != "/bin/other-tool audit" {
		t.Errorf("other tool's hook should survive: %+v", settings.Hooks.PreToolUse)
	}
}

func TestSettingsRoundTripPreservesUnknownFields(t *testing.T) {
	tempDir := t.TempDir()
	settingsPath := filepath.Join(tempDir, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		t.Fatalf("failed to create .claude dir: %v", err)
	}

	original := `{"model":"opus","env":{"FOO":"bar"},"hooks":{"PreToolUse":[{"matcher":"*","hooks":[{"type":"command","command":"/bin/antihall-guard run guard"}]}]}}`
	if err := os.WriteFile(settingsPath, []byte(original), 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if err := SaveSettings(settingsPath, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		t.Fatalf("failed to read settings back: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved settings are not valid JSON: %v", err)
	}
	if raw["model"] != "opus" {
		t.Errorf("unknown field 'model' was dropped, got %v", raw["model"])
	}
	if _, ok := raw["env"]; !ok {
		t.Error("unknown field 'env' was dropped")
	}
	if _, ok := raw["hooks"]; !ok {
		t.Error("hooks section was dropped")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope", "settings.json"))
	if err != nil {
		t.Fatalf("missing settings file should not error: %v", err)
	}
	if !IsHooksConfigEmpty(settings.Hooks) {
		t.Error("expected empty hooks config")
	}
}

func TestSettingsIsPluginEnabled(t *testing.T) {
	enabled := true
	disabled := false

	tests := []struct {
		name     string
		settings *Settings
		want     bool
	}{
		{"no plugins section", &Settings{}, true},
		{"plugin not listed", &Settings{Plugins: map[string]PluginConfig{}}, true},
		{"enabled nil", &Settings{Plugins: map[string]PluginConfig{"guard": {}}}, true},
		{"explicitly enabled", &Settings{Plugins: map[string]PluginConfig{"guard": {Enabled: &enabled}}}, true},
		{"explicitly disabled", &Settings{Plugins: map[string]PluginConfig{"guard": {Enabled: &disabled}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.IsPluginEnabled("guard"); got != tt.want {
				t.Errorf("IsPluginEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}
