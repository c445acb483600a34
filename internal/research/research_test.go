package research

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func newTestScaffolder(t *testing.T) *Scaffolder {
	t.Helper()
	return NewScaffolder(t.TempDir(), nil, WithClock(func() time.Time { return testDate }))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"FTC Claim Categories": "ftc-claim-categories",
		"claim_extraction":     "claim-extraction",
		"already-sluggy":       "already-sluggy",
		"Mixed_Case Name":      "mixed-case-name",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in))
	}
}

func TestAgentDisplayName(t *testing.T) {
	cases := map[string]string{
		"claim-extraction":  "ClaimExtraction",
		"claim_extraction":  "ClaimExtraction",
		"claim extraction":  "ClaimExtraction",
		"ClaimExtraction":   "ClaimExtraction",
		"verification":      "Verification",
		"multi-word-agent":  "MultiWordAgent",
	}
	for in, want := range cases {
		assert.Equal(t, want, AgentDisplayName(in))
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindRepoRoot(nested))
}

func TestFindRepoRootFallsBackToStart(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, FindRepoRoot(dir))
}

func TestInitCreatesTree(t *testing.T) {
	s := newTestScaffolder(t)

	created, err := s.Init()
	require.NoError(t, err)
	assert.NotEmpty(t, created)

	for _, dir := range []string{
		"domains/claim-categories/ftc-guidelines",
		"agents/specifications",
		"agents/test-cases",
		"agents/evaluations",
		"pilots",
		"knowledge-base/ftc/enforcement-actions",
		"findings",
	} {
		info, err := os.Stat(filepath.Join(s.Dir(), filepath.FromSlash(dir)))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}

	// Empty leaves get a .gitkeep so git tracks them.
	_, err = os.Stat(filepath.Join(s.Dir(), "findings", ".gitkeep"))
	assert.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(s.Dir(), "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# Research")
}

func TestInitIsRerunnable(t *testing.T) {
	s := newTestScaffolder(t)

	first, err := s.Init()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	// A second run finds everything in place and reports nothing new.
	second, err := s.Init()
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestInitReportsRelativePaths(t *testing.T) {
	s := newTestScaffolder(t)

	created, err := s.Init()
	require.NoError(t, err)
	for _, dir := range created {
		assert.False(t, filepath.IsAbs(dir), dir)
		assert.True(t, strings.HasPrefix(dir, "research"), dir)
	}
}

func TestNewDomainRouting(t *testing.T) {
	cases := map[string]string{
		"FTC Claim Categories": "domains/claim-categories",
		"Brief Types Overview": "domains/brief-types",
		"Agency Workflow":      "domains/agency-workflow",
		"Source Credibility":   "domains/sources",
		"Health Claims":        "domains/claim-categories/industry-specific",
		"Something Else":       "domains",
	}
	for topic, folder := range cases {
		s := newTestScaffolder(t)
		path, err := s.NewDomain(topic)
		require.NoError(t, err, topic)

		wantDir := filepath.Join(s.Dir(), filepath.FromSlash(folder))
		assert.Equal(t, wantDir, filepath.Dir(path), topic)
	}
}

func TestNewDomainContent(t *testing.T) {
	s := newTestScaffolder(t)

	path, err := s.NewDomain("FTC Claim Categories")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(content)
	assert.Contains(t, body, "FTC Claim Categories")
	assert.Contains(t, body, "2026-08-29")
}

func TestNewDomainRefusesDuplicate(t *testing.T) {
	s := newTestScaffolder(t)

	_, err := s.NewDomain("FTC Claim Categories")
	require.NoError(t, err)

	_, err = s.NewDomain("FTC Claim Categories")
	assert.ErrorIs(t, err, ErrExists)
}

func TestNewSpecCreatesTestCases(t *testing.T) {
	s := newTestScaffolder(t)

	paths, err := s.NewSpec("claim-extraction")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	spec := filepath.Join(s.Dir(), "agents", "specifications", "claim-extraction-spec.md")
	assert.Equal(t, spec, paths[0])

	content, err := os.ReadFile(spec)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ClaimExtraction")

	sample, err := os.ReadFile(filepath.Join(s.Dir(), "agents", "test-cases", "claim-extraction", "TC-001.json"))
	require.NoError(t, err)
	assert.Contains(t, string(sample), `"id": "TC-001"`)
}

func TestNewEvalFilename(t *testing.T) {
	s := newTestScaffolder(t)

	path, err := s.NewEval("claim-extraction", "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-29-claim-extraction-v1-2-3.md", filepath.Base(path))
	assert.Equal(t, filepath.Join(s.Dir(), "agents", "evaluations"), filepath.Dir(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "1.2.3")
}

func TestNewPilotLaysOutFolder(t *testing.T) {
	s := newTestScaffolder(t)

	paths, err := s.NewPilot("Agency A")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	folder := filepath.Join(s.Dir(), "pilots", "agency-a")
	for _, sub := range []string{"briefs", "feedback"} {
		info, err := os.Stat(filepath.Join(folder, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	readme, err := os.ReadFile(filepath.Join(folder, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "Agency A")
}

func TestNewInterviewGoesUnderPilotFeedback(t *testing.T) {
	s := newTestScaffolder(t)

	path, err := s.NewInterview("Agency A")
	require.NoError(t, err)

	assert.Equal(t,
		filepath.Join(s.Dir(), "pilots", "agency-a", "feedback", "2026-08-29-interview.md"),
		path)
}

func TestNewFindingIsDated(t *testing.T) {
	s := newTestScaffolder(t)

	path, err := s.NewFinding("Substantiation Standards")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-29-substantiation-standards.md", filepath.Base(path))
	assert.Equal(t, filepath.Join(s.Dir(), "findings"), filepath.Dir(path))
}

func TestListTree(t *testing.T) {
	s := newTestScaffolder(t)
	_, err := s.Init()
	require.NoError(t, err)
	_, err = s.NewFinding("Substantiation Standards")
	require.NoError(t, err)

	tree, err := s.List("finding")
	require.NoError(t, err)
	assert.Contains(t, tree, "2026-08-29-substantiation-standards.md")
}

func TestListUnknownType(t *testing.T) {
	s := newTestScaffolder(t)
	_, err := s.Init()
	require.NoError(t, err)

	_, err = s.List("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestListRequiresInit(t *testing.T) {
	s := newTestScaffolder(t)

	_, err := s.List("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "research init")
}

func TestStatusCounts(t *testing.T) {
	s := newTestScaffolder(t)
	_, err := s.Init()
	require.NoError(t, err)

	_, err = s.NewDomain("FTC Claim Categories")
	require.NoError(t, err)
	_, err = s.NewSpec("claim-extraction")
	require.NoError(t, err)
	_, err = s.NewPilot("Agency A")
	require.NoError(t, err)
	_, err = s.NewFinding("Substantiation Standards")
	require.NoError(t, err)

	entries, err := s.Status(context.Background())
	require.NoError(t, err)

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Category] = e.Count
	}
	assert.Equal(t, 1, counts["Domain Research"])
	assert.Equal(t, 1, counts["Agent Specs"])
	assert.Equal(t, 0, counts["Agent Evaluations"])
	assert.Equal(t, 1, counts["Test Cases"])
	assert.Equal(t, 1, counts["Pilots"])
	assert.Equal(t, 1, counts["Findings"])
}

func TestStatusRequiresInit(t *testing.T) {
	s := newTestScaffolder(t)

	_, err := s.Status(context.Background())
	assert.Error(t, err)
}
