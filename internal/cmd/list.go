package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/urfave/cli/v3"
)

// NewListCmd creates the list command showing available hook plugins or,
// with --installed, the hooks configured in Claude Code settings.
func NewListCmd(getPlugin func(string) (Plugin, bool), pluginKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List available hook plugins or installed hooks",
		Description: `List all registered hook plugins, or the hooks currently configured in Claude Code settings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "installed",
				Aliases: []string{"i"},
				Value:   false,
				Usage:   "Show installed hooks from settings",
			},
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Show global settings (~/.claude/settings.json) when using --installed",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("installed") {
				return listInstalledHooks(cmd.Bool("global"))
			}
			return listAvailableHooks(getPlugin, pluginKeys)
		},
	}
}

func listAvailableHooks(getPlugin func(string) (Plugin, bool), pluginKeys func() []string) error {
	keys := pluginKeys()
	sort.Strings(keys)

	fmt.Println("Available hook plugins:")
	fmt.Println()
	for _, key := range keys {
		p, _ := getPlugin(key)
		fmt.Printf("  %s - %s\n", key, p.Description())
	}
	fmt.Println()
	fmt.Println("Use 'antihall-guard run <key>' to run a hook.")
	fmt.Println("Use 'antihall-guard install <key>' to install a hook into Claude Code settings.")
	return nil
}

func listInstalledHooks(global bool) error {
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

	fmt.Printf("Installed hooks (%s settings):\n", scope)
	fmt.Printf("Settings file: %s\n\n", settingsPath)

	if config.IsHooksConfigEmpty(settings.Hooks) {
		fmt.Println("No hooks are currently installed.")
		return nil
	}

	printHookMatchers("PreToolUse", settings.Hooks.PreToolUse)
	printHookMatchers("PostToolUse", settings.Hooks.PostToolUse)
	printHookMatchers("UserPromptSubmit", settings.Hooks.UserPromptSubmit)
	printHookMatchers("Notification", settings.Hooks.Notification)
	printHookMatchers("Stop", settings.Hooks.Stop)
	printHookMatchers("SubagentStop", settings.Hooks.SubagentStop)
	printHookMatchers("PreCompact", settings.Hooks.PreCompact)
	printHookMatchers("SessionStart", settings.Hooks.SessionStart)
	printHookMatchers("SessionEnd", settings.Hooks.SessionEnd)
	return nil
}

func printHookMatchers(eventName string, matchers []config.HookMatcher) {
	if len(matchers) == 0 {
		return
	}

	fmt.Printf("%s:\n", eventName)
	for _, matcher := range matchers {
		matcherStr := matcher.Matcher
		if matcherStr == "" {
			matcherStr = "*"
		}
		fmt.Printf("  Matcher: %s\n", matcherStr)
		for _, hook := range matcher.Hooks {
			fmt.Printf("    - %s", hook.Command)
			if hook.Timeout != nil {
				fmt.Printf(" (timeout: %ds)", *hook.Timeout)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}
