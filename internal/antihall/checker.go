// Package antihall shells out to the antiHall CLI to answer whether a code
// fragment refers to something that actually exists in the indexed codebase.
// The tool is an opaque collaborator: callers only ever look for the
// NotExistsMarker substring in its stdout.
package antihall

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// NotExistsMarker is the stdout substring antiHall prints when a checked
// method or symbol is not found in the indexed codebase.
const NotExistsMarker = "does not exist"

// DefaultTimeout bounds a single checker invocation.
const DefaultTimeout = 10 * time.Second

// ErrRootNotFound is returned when the antiHall tool root does not exist on
// the local filesystem. No process is launched in that case.
var ErrRootNotFound = errors.New("antiHall directory not found")

// CommandExecutor runs an external command from a working directory with
// stdout and stderr captured separately. core.RealCommandExecutor satisfies
// this; tests substitute a mock.
type CommandExecutor interface {
	ExecuteCommand(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// Client invokes the antiHall checker as a subprocess.
type Client struct {
	// Root is the antiHall tool directory; the checker command runs with
	// this as its working directory.
	Root string
	// Timeout bounds each Check call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Exec launches the checker process.
	Exec CommandExecutor
}

// NewClient returns a Client for the given tool root using the provided
// executor.
func NewClient(root string, executor CommandExecutor) *Client {
	return &Client{Root: root, Timeout: DefaultTimeout, Exec: executor}
}

// Check runs `npm run check <fragment>` from the tool root and returns the
// captured stdout and stderr. A nonzero exit is still a completed check:
// antiHall reports misses on stdout, not through its exit code. A missing
// tool root, a launch failure, or a timeout is returned as an error with no
// output; callers are expected to degrade to "no warning" on error.
func (c *Client) Check(ctx context.Context, fragment string) (string, string, error) {
	if _, err := os.Stat(c.Root); err != nil {
		return "", "", ErrRootNotFound
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := c.Exec.ExecuteCommand(ctx, c.Root, "npm", "run", "check", fragment)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return string(stdout), string(stderr), nil
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", "", fmt.Errorf("antiHall check timed out after %s", timeout)
		}
		return "", "", fmt.Errorf("antiHall check failed to start: %w", err)
	}

	return string(stdout), string(stderr), nil
}
