package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fibreflow/antihall-guard/internal/antihall"
	"github.com/fibreflow/antihall-guard/internal/config"
	"github.com/fibreflow/antihall-guard/internal/core"
	"github.com/fibreflow/antihall-guard/internal/hooks"
	"github.com/urfave/cli/v3"
)

// NewValidateCmd creates the validate command. It runs the guard's checks
// against a tool invocation record from a file or stdin, outside of any
// Claude Code session, and prints the annotated record.
func NewValidateCmd() *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "Validate a tool invocation record without a live session",
		ArgsUsage:   "[file]",
		Description: `Read a tool invocation record (JSON with tool_name and params) from a file or stdin, run the antiHall guard checks against it, and print the record with any validation_warnings attached.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Path to the antiHall installation (overrides config and $ANTIHALL_DIR)",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Per-check timeout in seconds",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			data, err := readInvocationInput(cmd.Args().Slice())
			if err != nil {
				return err
			}

			var inv hooks.Invocation
			if err := json.Unmarshal(data, &inv); err != nil {
				return fmt.Errorf("invalid invocation record: %v", err)
			}

			cfg, err := config.LoadGuardConfig()
			if err != nil {
				cfg = &config.GuardConfig{}
			}

			root := cmd.String("root")
			if root == "" {
				root = cfg.ResolveAntihallRoot()
			}

			client := antihall.NewClient(root, &core.RealCommandExecutor{})
			if secs := cmd.Int("timeout"); secs > 0 {
				client.Timeout = time.Duration(secs) * time.Second
			} else if timeout := cfg.CheckTimeout(); timeout > 0 {
				client.Timeout = timeout
			}

			dispatcher := hooks.NewDispatcher(client)
			dispatcher.SetSuffixes(cfg.ValidatedSuffixes())
			dispatcher.SetWarnOutput(os.Stderr)

			result := dispatcher.Dispatch(ctx, inv)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %v", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func readInvocationInput(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %v", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0]) // #nosec G304 - user-supplied input path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", args[0], err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("at most one argument allowed: [file]")
}
