// Package githubcli talks to GitHub through the gh CLI. Every operation is a
// single synchronous subprocess call; there is no retry policy. The gh binary
// must be installed and authenticated.
package githubcli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"inquiry/internal/shell"
)

// Issue identifies a created or fetched issue.
type Issue struct {
	Number int
	URL    string
}

// IssueRequest describes an issue to create.
type IssueRequest struct {
	Title  string
	Body   string
	Labels []string
}

// Label mirrors config.Label for create/update calls.
type Label struct {
	Name        string
	Color       string
	Description string
}

// Client wraps the gh CLI for a single repository.
type Client struct {
	bin    string
	repo   string
	run    shell.RunFunc
	logger *zap.Logger
}

// New creates a Client. repo may be empty, in which case gh resolves the
// repository from the working directory. A nil runner uses shell.Capture.
func New(repo string, run shell.RunFunc, logger *zap.Logger) *Client {
	if run == nil {
		run = shell.Capture
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{bin: "gh", repo: repo, run: run, logger: logger}
}

func (c *Client) args(base ...string) []string {
	if c.repo != "" {
		return append(base, "--repo", c.repo)
	}
	return base
}

// CreateIssue creates an issue and returns its number and URL.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (Issue, error) {
	args := []string{"issue", "create", "--title", req.Title, "--body", req.Body}
	for _, label := range req.Labels {
		args = append(args, "--label", label)
	}
	res, err := c.run(ctx, c.bin, c.args(args...)...)
	if err != nil {
		return Issue{}, fmt.Errorf("create issue %q: %w", req.Title, err)
	}

	url := strings.TrimSpace(res.Stdout)
	issue := Issue{URL: url}
	// gh prints the issue URL; the number is its final path segment.
	if i := strings.LastIndex(url, "/"); i >= 0 {
		if n, err := strconv.Atoi(url[i+1:]); err == nil {
			issue.Number = n
		}
	}
	c.logger.Debug("issue created", zap.String("url", url), zap.Int("number", issue.Number))
	return issue, nil
}

// IssueState returns the state ("OPEN" or "CLOSED") of an issue.
func (c *Client) IssueState(ctx context.Context, number int) (string, error) {
	args := []string{"issue", "view", strconv.Itoa(number), "--json", "state", "--jq", ".state"}
	res, err := c.run(ctx, c.bin, c.args(args...)...)
	if err != nil {
		return "", fmt.Errorf("view issue #%d: %w", number, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Comment adds a comment to an issue.
func (c *Client) Comment(ctx context.Context, number int, body string) error {
	args := []string{"issue", "comment", strconv.Itoa(number), "--body", body}
	if _, err := c.run(ctx, c.bin, c.args(args...)...); err != nil {
		return fmt.Errorf("comment on issue #%d: %w", number, err)
	}
	return nil
}

// CloseIssue closes an issue.
func (c *Client) CloseIssue(ctx context.Context, number int) error {
	args := []string{"issue", "close", strconv.Itoa(number)}
	if _, err := c.run(ctx, c.bin, c.args(args...)...); err != nil {
		return fmt.Errorf("close issue #%d: %w", number, err)
	}
	return nil
}

// EnsureLabel creates a label with the given color if it does not already
// exist. An already-existing label is not an error.
func (c *Client) EnsureLabel(ctx context.Context, name, color string) error {
	args := []string{"label", "create", name, "--color", color}
	if _, err := c.run(ctx, c.bin, c.args(args...)...); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("ensure label %q: %w", name, err)
	}
	return nil
}

// UpsertLabel creates the label or updates its color and description when it
// already exists.
func (c *Client) UpsertLabel(ctx context.Context, label Label) (created bool, err error) {
	args := []string{"label", "create", label.Name, "--color", label.Color}
	if label.Description != "" {
		args = append(args, "--description", label.Description)
	}
	if _, err := c.run(ctx, c.bin, c.args(args...)...); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return false, fmt.Errorf("create label %q: %w", label.Name, err)
		}
		args = append(args, "--force")
		if _, err := c.run(ctx, c.bin, c.args(args...)...); err != nil {
			return false, fmt.Errorf("update label %q: %w", label.Name, err)
		}
		return false, nil
	}
	return true, nil
}
