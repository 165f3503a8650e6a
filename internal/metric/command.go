package metric

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandFor builds the command that invokes the target's entry point, with
// the iteration directory as working directory. A mapped interpreter runs
// the entry point by relative name; an unmapped entry point is executed
// directly by absolute path. A missing entry point is an error before
// anything launches.
func CommandFor(ctx context.Context, target Target) (*exec.Cmd, error) {
	script := filepath.Join(target.Dir, target.EntryPoint)
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("entry point not found: %s: %w", script, err)
	}

	var cmd *exec.Cmd
	if interp, ok := target.Interpreters[filepath.Ext(target.EntryPoint)]; ok {
		cmd = exec.CommandContext(ctx, interp, target.EntryPoint)
	} else {
		cmd = exec.CommandContext(ctx, script)
	}
	cmd.Dir = target.Dir
	return cmd, nil
}

// exitErrorf normalizes a subprocess failure into one error carrying the
// exit code and whatever the process wrote to stderr.
func exitErrorf(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if exitErr, ok := err.(*exec.ExitError); ok {
		if msg != "" {
			return fmt.Errorf("entry point exited with code %d: %s", exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("entry point exited with code %d", exitErr.ExitCode())
	}
	return fmt.Errorf("running entry point: %w", err)
}
