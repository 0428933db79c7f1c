// Package executil wraps os/exec for the external tools this service shells
// out to. Commands inherit stdout/stderr, honor context cancellation, and
// support a dry-run mode that prints instead of executing.
package executil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Run executes the command with inherited stdout/stderr.
func Run(ctx context.Context, name string, args ...string) error {
	return run(ctx, false, name, args...)
}

// DryRun prints the command that would be run without executing it.
func DryRun(ctx context.Context, name string, args ...string) error {
	return run(ctx, true, name, args...)
}

func run(ctx context.Context, dry bool, name string, args ...string) error {
	fullCmd := name + " " + QuoteArgs(args)
	if dry {
		fmt.Printf("[dry run] %s\n", fullCmd)
		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("command failed (exit=%d): %s: %w", exitErr.ExitCode(), fullCmd, err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("command canceled: %s", fullCmd)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("command timed out: %s", fullCmd)
		}
		return fmt.Errorf("failed to run command: %s: %w", fullCmd, err)
	}
	return nil
}

// QuoteArgs returns a printable, shell-safe representation of args.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'`$\\*?[]{}()<>|&;") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
