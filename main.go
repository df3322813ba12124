package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fibreflow/antihall-guard/internal/cmd"
	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/fibreflow/antihall-guard/internal/constants"
	"github.com/fibreflow/antihall-guard/internal/core"
	"github.com/urfave/cli/v3"

	// Register built-in hooks with the global registry.
	_ "github.com/fibreflow/antihall-guard/internal/hooks"
)

// Populated by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Compose the runtime hook context: real OS implementations plus the
	// settings-backed enablement check.
	hookCtx := core.DefaultHookContext()
	hookCtx.SettingsChecker = config.IsPluginEnabled
	core.SetGlobalContext(hookCtx)

	getPlugin := func(key string) (cmd.Plugin, bool) {
		hook, err := core.CreateHook(key)
		if err != nil {
			return nil, false
		}
		return hook, true
	}

	root := &cli.Command{
		Name:        constants.BinaryName,
		Usage:       "antiHall validation hooks for Claude Code",
		Description: `Pre-write validation hooks that check AI-generated TypeScript against the antiHall knowledge graph, warning about service methods that don't exist and components that break project conventions.`,
		Commands: []*cli.Command{
			cmd.NewRunCmd(getPlugin, config.IsPluginEnabled, core.GetHookKeys),
			cmd.NewValidateCmd(),
			cmd.NewListCmd(getPlugin, core.GetHookKeys),
			cmd.NewInstallCmd(getPlugin, core.GetHookKeys),
			cmd.NewUninstallCmd(),
			cmd.NewConfigCmd(),
			cmd.NewVersionCmd(cmd.VersionInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
				GoVer:   runtime.Version(),
			}),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
