package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleConfig = `
project:
  name: Inquiry Framework
  repo: example/inquiry

features:
  "1.1.1":
    title: Feature catalog loader
    phase: "phase:1-foundation"
    component: "component:core"
    size: "size:S"
    acceptance_criteria:
      - Parses the catalog
      - Preserves ordering
    files:
      - internal/config/config.go
  "1.2.1":
    title: Issue templates
    phase: "phase:1-foundation"
    component: "component:issues"
    size: "size:M"
  "2.1.1":
    title: Prompt combiner
    phase: "phase:2-workflow"
    component: "component:prompts"
    size: "size:L"

labels:
  phases:
    - name: "phase:1-foundation"
      color: "0e8a16"
      description: Foundation work
  components:
    - name: "component:core"
      color: "1d76db"
  sizes:
    - name: "size:S"
      color: "c2e0c6"

domains:
  - name: Advertising Claims
    slug: advertising
    regulator: FTC
    categories:
      - Health claims
      - name: Environmental claims
        description: Green marketing
        priority: High
    resources:
      - title: FTC Guides
        url: https://example.com/ftc
      - Plain reference text
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPreservesFeatureOrder(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"1.1.1", "1.2.1", "2.1.1"}, cfg.Features.IDs())
	assert.Equal(t, 3, cfg.Features.Len())
}

func TestLoadFeatureFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	f, ok := cfg.Features.Get("1.1.1")
	require.True(t, ok)
	assert.Equal(t, "1.1.1", f.ID)
	assert.Equal(t, "Feature catalog loader", f.Title)
	assert.Equal(t, "phase:1-foundation", f.Phase)
	assert.Len(t, f.AcceptanceCriteria, 2)
	assert.Equal(t, []string{"internal/config/config.go"}, f.Files)
}

func TestFeatureLabelAccessors(t *testing.T) {
	f := Feature{
		Phase:     "phase:1-foundation",
		Component: "component:core",
		Size:      "size:S",
	}
	assert.Equal(t, "1", f.PhaseNumber())
	assert.Equal(t, "core", f.ComponentValue())
	assert.Equal(t, "S", f.SizeValue())

	// Bare values pass through untouched.
	bare := Feature{Phase: "2", Size: "M"}
	assert.Equal(t, "2", bare.PhaseNumber())
	assert.Equal(t, "M", bare.SizeValue())
}

func TestConfigFeatureUnknown(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	_, err = cfg.Feature("9.9.9")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestLabelGroupsAll(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	all := cfg.Labels.All()
	require.Len(t, all, 3)
	assert.Equal(t, "phase:1-foundation", all[0].Name)
	assert.Equal(t, "component:core", all[1].Name)
	assert.Equal(t, "size:S", all[2].Name)
}

func TestTableItemScalarOrMapping(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cats := cfg.Domains[0].Categories
	require.Len(t, cats, 2)

	assert.True(t, cats[0].Scalar)
	assert.Equal(t, "Health claims", cats[0].Name)

	assert.False(t, cats[1].Scalar)
	assert.Equal(t, "Environmental claims", cats[1].Name)
	assert.Equal(t, "Green marketing", cats[1].Description)
	assert.Equal(t, "High", cats[1].Priority)
}

func TestResourceScalarOrMapping(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	res := cfg.Domains[0].Resources
	require.Len(t, res, 2)

	assert.Equal(t, "FTC Guides", res[0].Title)
	assert.Equal(t, "https://example.com/ftc", res[0].URL)
	assert.False(t, res[0].Scalar)

	assert.True(t, res[1].Scalar)
	assert.Equal(t, "Plain reference text", res[1].Text)
}

func TestErrorRuleScalarOrMapping(t *testing.T) {
	var rules []ErrorRule
	doc := `
- API timeout
- error: Rate limited
  strategy: Exponential backoff
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rules))
	require.Len(t, rules, 2)
	assert.True(t, rules[0].Scalar)
	assert.Equal(t, "API timeout", rules[0].Error)
	assert.Equal(t, "Exponential backoff", rules[1].Strategy)
}

func TestFeatureSetRejectsNonMapping(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("features:\n  - not-a-map\n"), &cfg)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "features: [unclosed"))
	assert.Error(t, err)
}

func TestWorkspacePaths(t *testing.T) {
	ws := NewWorkspace(filepath.Join("proj", "features.yaml"))

	assert.Equal(t, "proj", ws.Dir())
	assert.Equal(t, filepath.Join("proj", "prompts"), ws.PromptsDir())
	assert.Equal(t, filepath.Join("proj", "generated"), ws.GeneratedDir())
	assert.Equal(t, filepath.Join("proj", ".current"), ws.CurrentFile())
	assert.Equal(t, filepath.Join("proj", ".inquiry", "ledger.db"), ws.LedgerPath())
	assert.Equal(t, filepath.Join("proj", "prompts", "1.1.1.md"), ws.PromptFile("1.1.1"))
}
