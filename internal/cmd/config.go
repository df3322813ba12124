package cmd

import (
	"context"
	"fmt"

	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/urfave/cli/v3"
)

// NewConfigCmd creates the config command with its subcommands.
func NewConfigCmd() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Manage antihall-guard configuration",
		Description: `Inspect and modify guard configuration: the antiHall root, check timeout, and log rotation settings.`,
		Commands: []*cli.Command{
			newConfigShowCmd(),
			newConfigSetRootCmd(),
			newConfigLogCmd(),
		},
	}
}

func newConfigShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the effective guard configuration",
		Action: func(_ context.Context, _ *cli.Command) error {
			cfg, err := config.LoadGuardConfig()
			if err != nil {
				return fmt.Errorf("error loading config: %v", err)
			}

			fmt.Println("Effective guard configuration:")
			fmt.Printf("  antiHall root: %s\n", cfg.ResolveAntihallRoot())
			fmt.Printf("  Check timeout: %s\n", cfg.CheckTimeout())
			fmt.Printf("  Validated suffixes: %v\n", cfg.ValidatedSuffixes())

			xdg := config.NewXDGConfig()
			fmt.Printf("\nGlobal config directory: %s\n", xdg.GetConfigDir())
			return nil
		},
	}
}

func newConfigSetRootCmd() *cli.Command {
	return &cli.Command{
		Name:      "set-root",
		Usage:     "Set the antiHall installation path",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Usage:   "Write to the global XDG config instead of the project config",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [path]")
			}
			root := args[0]

			if cmd.Bool("global") {
				xdg := config.NewXDGConfig()
				guard, err := xdg.LoadGlobalGuardConfig()
				if err != nil || guard == nil {
					guard = &config.GuardConfig{}
				}
				guard.AntihallRoot = root
				if err := xdg.SaveGlobalGuardConfig(guard); err != nil {
					return fmt.Errorf("error saving global config: %v", err)
				}
				fmt.Printf("antiHall root set to %s in global config (%s)\n", root, xdg.GetConfigDir())
				return nil
			}

			configPath, err := config.GetAppConfigPath(false)
			if err != nil {
				return fmt.Errorf("error getting config path: %v", err)
			}
			appConfig, err := config.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %v", err)
			}
			if appConfig.Guard == nil {
				appConfig.Guard = &config.GuardConfig{}
			}
			appConfig.Guard.AntihallRoot = root
			if err := config.SaveAppConfig(configPath, appConfig); err != nil {
				return fmt.Errorf("error saving config: %v", err)
			}
			fmt.Printf("antiHall root set to %s in project config (%s)\n", root, configPath)
			return nil
		},
	}
}

func newConfigLogCmd() *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Configure log rotation settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Usage:   "Configure global settings",
			},
			&cli.IntFlag{
				Name:    "max-age",
				Aliases: []string{"a"},
				Usage:   "Maximum age in days to retain log files (default: 30)",
			},
			&cli.IntFlag{
				Name:    "max-size",
				Aliases: []string{"s"},
				Usage:   "Maximum size in MB per log file before rotation (default: 10)",
			},
			&cli.IntFlag{
				Name:    "max-backups",
				Aliases: []string{"b"},
				Usage:   "Maximum number of backup files to retain (default: 5)",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"c"},
				Usage:   "Compress rotated log files",
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Show current log rotation settings",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			global := cmd.Bool("global")

			configPath, err := config.GetAppConfigPath(global)
			if err != nil {
				return fmt.Errorf("error getting config path: %v", err)
			}

			appConfig, err := config.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %v", err)
			}

			scope := "project"
			if global {
				scope = "global"
			}

			if cmd.Bool("show") {
				fmt.Printf("Current log rotation settings (%s: %s):\n", scope, configPath)
				printLogRotation(appConfig.LogRotation)
				return nil
			}

			if maxAge := cmd.Int("max-age"); maxAge > 0 {
				appConfig.LogRotation.MaxAge = maxAge
			}
			if maxSize := cmd.Int("max-size"); maxSize > 0 {
				appConfig.LogRotation.MaxSize = maxSize
			}
			if maxBackups := cmd.Int("max-backups"); maxBackups > 0 {
				appConfig.LogRotation.MaxBackups = maxBackups
			}
			if cmd.Bool("compress") {
				appConfig.LogRotation.Compress = true
			}

			if err := config.SaveAppConfig(configPath, appConfig); err != nil {
				return fmt.Errorf("error saving config: %v", err)
			}

			fmt.Printf("Log rotation configuration updated in %s config (%s):\n", scope, configPath)
			printLogRotation(appConfig.LogRotation)
			return nil
		},
	}
}

func printLogRotation(cfg config.LogRotationConfig) {
	fmt.Printf("  Max Age: %d days\n", cfg.MaxAge)
	fmt.Printf("  Max Size: %d MB\n", cfg.MaxSize)
	fmt.Printf("  Max Backups: %d files\n", cfg.MaxBackups)
	fmt.Printf("  Compress: %t\n", cfg.Compress)
}
