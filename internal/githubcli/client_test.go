package githubcli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inquiry/internal/shell"
)

// fakeRunner records each invocation and replies from a scripted queue.
type fakeRunner struct {
	calls   [][]string
	results []shell.Result
	errs    []error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) (shell.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	i := len(f.calls) - 1
	var res shell.Result
	var err error
	if i < len(f.results) {
		res = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

func TestCreateIssueParsesNumberFromURL(t *testing.T) {
	fake := &fakeRunner{results: []shell.Result{
		{Stdout: "https://github.com/example/inquiry/issues/123\n"},
	}}
	c := New("example/inquiry", fake.run, nil)

	issue, err := c.CreateIssue(context.Background(), IssueRequest{
		Title:  "[1.1.1] Feature catalog loader",
		Body:   "body",
		Labels: []string{"phase:1-foundation", "size:S"},
	})
	require.NoError(t, err)

	assert.Equal(t, 123, issue.Number)
	assert.Equal(t, "https://github.com/example/inquiry/issues/123", issue.URL)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{
		"gh", "issue", "create",
		"--title", "[1.1.1] Feature catalog loader",
		"--body", "body",
		"--label", "phase:1-foundation",
		"--label", "size:S",
		"--repo", "example/inquiry",
	}, fake.calls[0])
}

func TestCreateIssueUnparseableURL(t *testing.T) {
	fake := &fakeRunner{results: []shell.Result{{Stdout: "something odd"}}}
	c := New("", fake.run, nil)

	issue, err := c.CreateIssue(context.Background(), IssueRequest{Title: "t"})
	require.NoError(t, err)
	assert.Zero(t, issue.Number)
	assert.Equal(t, "something odd", issue.URL)
}

func TestCreateIssueError(t *testing.T) {
	fake := &fakeRunner{errs: []error{errors.New("gh issue: auth required")}}
	c := New("", fake.run, nil)

	_, err := c.CreateIssue(context.Background(), IssueRequest{Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create issue")
}

func TestNoRepoOmitsFlag(t *testing.T) {
	fake := &fakeRunner{results: []shell.Result{{Stdout: "OPEN\n"}}}
	c := New("", fake.run, nil)

	state, err := c.IssueState(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "OPEN", state)
	assert.NotContains(t, fake.calls[0], "--repo")
}

func TestComment(t *testing.T) {
	fake := &fakeRunner{}
	c := New("example/inquiry", fake.run, nil)

	require.NoError(t, c.Comment(context.Background(), 42, "Completed in commit abc1234"))

	assert.Equal(t, []string{
		"gh", "issue", "comment", "42",
		"--body", "Completed in commit abc1234",
		"--repo", "example/inquiry",
	}, fake.calls[0])
}

func TestCloseIssue(t *testing.T) {
	fake := &fakeRunner{}
	c := New("", fake.run, nil)

	require.NoError(t, c.CloseIssue(context.Background(), 42))
	assert.Equal(t, []string{"gh", "issue", "close", "42"}, fake.calls[0])
}

func TestEnsureLabelExistingIsNotAnError(t *testing.T) {
	fake := &fakeRunner{errs: []error{errors.New(`label "size:S" already exists`)}}
	c := New("", fake.run, nil)

	assert.NoError(t, c.EnsureLabel(context.Background(), "size:S", "0366d6"))
}

func TestEnsureLabelOtherErrorPropagates(t *testing.T) {
	fake := &fakeRunner{errs: []error{errors.New("network down")}}
	c := New("", fake.run, nil)

	err := c.EnsureLabel(context.Background(), "size:S", "0366d6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size:S")
}

func TestUpsertLabelCreates(t *testing.T) {
	fake := &fakeRunner{}
	c := New("", fake.run, nil)

	created, err := c.UpsertLabel(context.Background(), Label{
		Name:        "phase:1-foundation",
		Color:       "0e8a16",
		Description: "Foundation work",
	})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{
		"gh", "label", "create", "phase:1-foundation",
		"--color", "0e8a16",
		"--description", "Foundation work",
	}, fake.calls[0])
}

func TestUpsertLabelUpdatesExisting(t *testing.T) {
	fake := &fakeRunner{errs: []error{errors.New("already exists"), nil}}
	c := New("", fake.run, nil)

	created, err := c.UpsertLabel(context.Background(), Label{Name: "size:S", Color: "c2e0c6"})
	require.NoError(t, err)
	assert.False(t, created)

	require.Len(t, fake.calls, 2)
	assert.Contains(t, fake.calls[1], "--force")
}
