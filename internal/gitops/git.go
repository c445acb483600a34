// Package gitops wraps the handful of git subcommands the workflow needs:
// working-tree state, stage-all, commit, head SHA, and push.
package gitops

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"inquiry/internal/shell"
)

// Git runs git commands in the current working directory.
type Git struct {
	run    shell.RunFunc
	logger *zap.Logger
}

// New creates a Git wrapper. A nil runner uses shell.Capture.
func New(run shell.RunFunc, logger *zap.Logger) *Git {
	if run == nil {
		run = shell.Capture
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Git{run: run, logger: logger}
}

// HasChanges reports whether the working tree has uncommitted changes.
func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	res, err := g.run(ctx, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// ShortStatus returns `git status --short` output for display.
func (g *Git) ShortStatus(ctx context.Context) (string, error) {
	res, err := g.run(ctx, "git", "status", "--short")
	if err != nil {
		return "", fmt.Errorf("git status: %w", err)
	}
	return res.Stdout, nil
}

// StageAll stages every change in the working tree.
func (g *Git) StageAll(ctx context.Context) error {
	if _, err := g.run(ctx, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

// Commit records a commit with the given message.
func (g *Git) Commit(ctx context.Context, message string) error {
	g.logger.Debug("committing", zap.String("message", message))
	if _, err := g.run(ctx, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// ShortHead returns the abbreviated SHA of HEAD.
func (g *Git) ShortHead(ctx context.Context) (string, error) {
	res, err := g.run(ctx, "git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Push pushes the current branch to its upstream.
func (g *Git) Push(ctx context.Context) error {
	if _, err := g.run(ctx, "git", "push"); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}
