package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/urfave/cli/v3"
)

// validEvents are the Claude Code hook events a plugin can be installed for.
var validEvents = []string{
	"PreToolUse",
	"PostToolUse",
	"UserPromptSubmit",
	"Notification",
	"Stop",
	"SubagentStop",
	"PreCompact",
	"SessionStart",
	"SessionEnd",
}

func isValidEvent(event string) bool {
	for _, e := range validEvents {
		if e == event {
			return true
		}
	}
	return false
}

// NewInstallCmd creates the install command, which wires a hook plugin into
// Claude Code settings.json.
func NewInstallCmd(getPlugin func(string) (Plugin, bool), pluginKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "install",
		Usage:       "Install a hook plugin into Claude Code settings",
		ArgsUsage:   "[plugin-key]",
		Description: `Install a hook plugin into your Claude Code settings.json file. The hook will run for the configured event in new sessions.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Usage:   "Install to global settings (~/.claude/settings.json)",
			},
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Value:   "PreToolUse",
				Usage:   "Hook event (PreToolUse, PostToolUse, UserPromptSubmit, etc.)",
			},
			&cli.StringFlag{
				Name:    "matcher",
				Aliases: []string{"m"},
				Value:   "Write|Edit|MultiEdit",
				Usage:   "Tool matcher pattern (* for all tools)",
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "Command timeout in seconds (0 for no timeout)",
			},
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "Enable detailed logging to .claude/hooks/<plugin-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "jsonl",
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [plugin-key]")
			}
			hookType := args[0]

			if _, exists := getPlugin(hookType); !exists {
				return fmt.Errorf("plugin '%s' not found.\nAvailable plugins: %s", hookType, strings.Join(pluginKeys(), ", "))
			}

			global := cmd.Bool("global")
			event := cmd.String("event")
			matcher := cmd.String("matcher")
			timeoutFlag := cmd.Int("timeout")
			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}

			if !isValidEvent(event) {
				return fmt.Errorf("invalid event '%s'.\nValid events: %s", event, strings.Join(validEvents, ", "))
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %v", err)
			}

			hookCommand := fmt.Sprintf("%s run %s", execPath, hookType)
			if logEnabled {
				hookCommand += " --log"
				if logFormat != config.LoggingFormatJSONL {
					hookCommand += fmt.Sprintf(" --log-format %s", logFormat)
				}
			}

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				return fmt.Errorf("error getting settings path: %v", err)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("error loading settings: %v", err)
			}

			var timeout *int
			if timeoutFlag > 0 {
				timeout = &timeoutFlag
			}
			result := config.AddHookToSettings(settings, event, matcher, hookCommand, timeout)

			if result.WasDuplicate {
				if strings.Contains(result.DuplicateInfo, "Replaced existing") {
					fmt.Printf("🔄 %s\n", result.DuplicateInfo)
				} else {
					fmt.Printf("⚠️  Hook already installed: %s\n", result.DuplicateInfo)
					fmt.Println("No changes made. The hook is already configured for this event.")
					return nil
				}
			}

			if err := config.SaveSettings(settingsPath, settings); err != nil {
				return fmt.Errorf("error saving settings: %v", err)
			}

			scope := "project"
			if global {
				scope = "global"
			}

			fmt.Printf("✅ Successfully installed %s hook in %s settings\n", hookType, scope)
			fmt.Printf("   Event: %s\n", event)
			fmt.Printf("   Matcher: %s\n", matcher)
			fmt.Printf("   Command: %s\n", hookCommand)
			fmt.Printf("   Settings: %s\n", settingsPath)
			fmt.Println()
			fmt.Println("The hook will be active in new Claude Code sessions.")
			fmt.Println("Use 'claude /hooks' to verify the configuration.")
			return nil
		},
	}
}

// NewUninstallCmd creates the uninstall command. Use 'all' to remove every
// antihall-guard hook while preserving hooks from other tools, or --command
// to remove a single entry by its exact command string.
func NewUninstallCmd() *cli.Command {
	return &cli.Command{
		Name:        "uninstall",
		Usage:       "Remove a hook plugin from Claude Code settings",
		ArgsUsage:   "[plugin-key|all]",
		Description: `Remove a hook plugin from your Claude Code settings.json file. Use 'all' to remove all antihall-guard hooks, or --command to remove one exact command entry (useful after the binary has moved).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Usage:   "Remove from global settings (~/.claude/settings.json)",
			},
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "Remove entries matching this exact command string instead of a plugin key",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			exactCommand := cmd.String("command")
			if exactCommand == "" && len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [plugin-key|all]")
			}
			if exactCommand != "" && len(args) != 0 {
				return fmt.Errorf("--command cannot be combined with a plugin key")
			}
			global := cmd.Bool("global")

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				return fmt.Errorf("error getting settings path: %v", err)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("error loading settings: %v", err)
			}

			scope := "project"
			if global {
				scope = "global"
			}

			var removed int
			switch {
			case exactCommand != "":
				if config.RemoveHookFromSettings(settings, exactCommand) {
					removed = 1
				}
			case args[0] == "all":
				removed = config.RemoveAllGuardFromSettings(settings)
			default:
				removed = config.RemoveHookTypeFromSettings(settings, args[0])
			}

			if removed == 0 {
				fmt.Printf("No matching hooks found in %s settings.\n", scope)
				return nil
			}

			if err := config.SaveSettings(settingsPath, settings); err != nil {
				return fmt.Errorf("error saving settings: %v", err)
			}

			fmt.Printf("✅ Removed %d hook(s) from %s settings\n", removed, scope)
			fmt.Printf("   Settings: %s\n", settingsPath)
			return nil
		},
	}
}
