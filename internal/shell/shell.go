// Package shell runs external binaries (git, gh) with captured or inherited
// output. Callers take a RunFunc so tests can substitute a fake.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunFunc executes a command and captures its output.
type RunFunc func(ctx context.Context, name string, args ...string) (Result, error)

// Capture runs the command and buffers stdout/stderr. A non-zero exit returns
// an error wrapping the stderr text, alongside the populated Result.
func Capture(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = err.Error()
		}
		return res, fmt.Errorf("%s %s: %s", name, firstArg(args), msg)
	}
	return res, nil
}

// Interactive runs the command wired to the caller's terminal. Used for
// commands whose output belongs to the user (git status, git push).
func Interactive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
