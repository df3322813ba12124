// Package cmd contains the antihall-guard CLI commands.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/fibreflow/antihall-guard/internal/core"
	"github.com/urfave/cli/v3"
)

// Plugin is the minimal surface the run command needs from a hook.
type Plugin interface {
	Run() error
	Description() string
}

// NewRunCmd creates the run command. It executes a single hook plugin,
// reading the hook event from stdin the way Claude Code invokes it.
func NewRunCmd(getPlugin func(string) (Plugin, bool), isPluginEnabled func(string) bool, pluginKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run a specific hook plugin",
		ArgsUsage:   "[plugin-key]",
		Description: `Run a specific hook plugin. Reads the hook event JSON from stdin and writes the decision to stdout.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed logging to .claude/hooks/<plugin-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "jsonl",
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [plugin-key]")
			}
			key := args[0]

			// Validate plugin exists early
			p, exists := getPlugin(key)
			if !exists {
				return fmt.Errorf("plugin '%s' not found.\nAvailable plugins: %s", key, strings.Join(pluginKeys(), ", "))
			}

			// Enablement check before side effects
			if !isPluginEnabled(key) {
				fmt.Printf("Plugin '%s' is disabled via settings. Nothing to do.\n", key)
				return nil
			}

			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}
			if logEnabled {
				logConfig := config.GetLogRotationConfigFromFile(false)
				if logConfig.MaxAge == 0 && logConfig.MaxSize == 0 {
					logConfig = config.GetLogRotationConfigFromFile(true)
				}

				logPath := config.GetLogPath(key)
				core.SetGlobalLoggingConfig(true, ".claude/hooks", logFormat)
				if rotatingLogger := config.SetupLogRotation(logPath, logConfig); rotatingLogger != nil {
					if err := config.CleanupOldLogs(filepath.Dir(logPath), logConfig.MaxAge); err != nil {
						fmt.Printf("Warning: Failed to cleanup old logs: %v\n", err)
					}
				}
			}

			if err := p.Run(); err != nil {
				return fmt.Errorf("hook '%s' failed: %v", key, err)
			}
			return nil
		},
	}
}
