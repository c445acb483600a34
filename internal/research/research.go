// Package research scaffolds the markdown research document tree: domain
// research, agent specs and evaluations, pilot folders, interview notes, and
// findings. Document templates are baked in with go:embed and rendered with
// the current date.
package research

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
)

//go:embed templates
var templates embed.FS

var docTemplates = template.Must(template.ParseFS(templates, "templates/*.md"))

// ErrExists is returned when a document would overwrite an existing file.
var ErrExists = errors.New("file exists")

// sampleTestCase seeds the test-cases folder created alongside a spec.
const sampleTestCase = `{
  "id": "TC-001",
  "name": "Basic test case",
  "description": "",
  "input": {

  },
  "expectedOutput": {

  },
  "tags": ["basic"]
}
`

// templateData feeds the embedded document templates.
type templateData struct {
	Title      string
	Date       string
	Tags       string
	AgentName  string
	Version    string
	AgencyName string
}

// Scaffolder creates research documents under <root>/research.
type Scaffolder struct {
	root   string
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a Scaffolder.
type Option func(*Scaffolder)

// WithClock overrides the date source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scaffolder) { s.now = now }
}

// NewScaffolder creates a Scaffolder rooted at the repository root.
func NewScaffolder(root string, logger *zap.Logger, opts ...Option) *Scaffolder {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scaffolder{root: root, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir is the research directory under the repository root.
func (s *Scaffolder) Dir() string { return filepath.Join(s.root, "research") }

func (s *Scaffolder) today() string { return s.now().Format("2006-01-02") }

// Rel returns path relative to the repository root, for display.
func (s *Scaffolder) Rel(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return path
	}
	return rel
}

// FindRepoRoot walks up from start looking for a .git directory. When none is
// found the start directory is returned.
func FindRepoRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// Slugify lowercases text and replaces spaces and underscores with hyphens.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// AgentDisplayName normalizes an agent name to CamelCase:
// "claim-extraction" -> "ClaimExtraction".
func AgentDisplayName(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(strings.ToUpper(f[:1]))
		sb.WriteString(f[1:])
	}
	return sb.String()
}

func (s *Scaffolder) renderDoc(name string, data templateData) (string, error) {
	var sb strings.Builder
	if err := docTemplates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

// createFile writes content at path, refusing to overwrite.
func (s *Scaffolder) createFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, s.Rel(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("created document", zap.String("path", s.Rel(path)))
	return nil
}

// domainFolders routes a domain topic to a subfolder by keyword.
var domainFolders = []struct {
	keywords []string
	path     []string
}{
	{[]string{"ftc", "claim", "category", "substantiation"}, []string{"domains", "claim-categories"}},
	{[]string{"brief", "deliverable", "type"}, []string{"domains", "brief-types"}},
	{[]string{"workflow", "agency", "process"}, []string{"domains", "agency-workflow"}},
	{[]string{"source", "credibility"}, []string{"domains", "sources"}},
	{[]string{"health", "financial", "cpg", "food", "environment"}, []string{"domains", "claim-categories", "industry-specific"}},
}

func (s *Scaffolder) domainFolder(slug string) string {
	for _, route := range domainFolders {
		for _, kw := range route.keywords {
			if strings.Contains(slug, kw) {
				return filepath.Join(append([]string{s.Dir()}, route.path...)...)
			}
		}
	}
	return filepath.Join(s.Dir(), "domains")
}

// NewDomain creates a domain research document and returns its path.
func (s *Scaffolder) NewDomain(topic string) (string, error) {
	slug := Slugify(topic)
	path := filepath.Join(s.domainFolder(slug), slug+".md")

	content, err := s.renderDoc("domain.md", templateData{
		Title: topic,
		Date:  s.today(),
		Tags:  strings.ReplaceAll(slug, "-", ", "),
	})
	if err != nil {
		return "", err
	}
	return path, s.createFile(path, content)
}

// NewSpec creates an agent specification plus its test-cases folder seeded
// with a sample test case. Returns every path created.
func (s *Scaffolder) NewSpec(agentName string) ([]string, error) {
	name := AgentDisplayName(agentName)
	slug := Slugify(agentName)

	specPath := filepath.Join(s.Dir(), "agents", "specifications", slug+"-spec.md")
	content, err := s.renderDoc("spec.md", templateData{AgentName: name, Date: s.today()})
	if err != nil {
		return nil, err
	}
	if err := s.createFile(specPath, content); err != nil {
		return nil, err
	}

	testDir := filepath.Join(s.Dir(), "agents", "test-cases", slug)
	if err := os.MkdirAll(testDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", testDir, err)
	}
	samplePath := filepath.Join(testDir, "TC-001.json")
	if err := s.createFile(samplePath, sampleTestCase); err != nil && !errors.Is(err, ErrExists) {
		return nil, err
	}

	return []string{specPath, testDir, samplePath}, nil
}

// NewEval creates an evaluation document for an agent version.
func (s *Scaffolder) NewEval(agentName, version string) (string, error) {
	name := AgentDisplayName(agentName)
	slug := Slugify(agentName)

	filename := fmt.Sprintf("%s-%s-v%s.md", s.today(), slug, strings.ReplaceAll(version, ".", "-"))
	path := filepath.Join(s.Dir(), "agents", "evaluations", filename)

	content, err := s.renderDoc("eval.md", templateData{
		AgentName: name,
		Version:   version,
		Date:      s.today(),
	})
	if err != nil {
		return "", err
	}
	return path, s.createFile(path, content)
}

// NewPilot creates a pilot agency folder with briefs/ and feedback/
// subfolders and a pilot README. Returns every path created.
func (s *Scaffolder) NewPilot(agencyName string) ([]string, error) {
	slug := Slugify(agencyName)
	folder := filepath.Join(s.Dir(), "pilots", slug)

	for _, sub := range []string{"briefs", "feedback"} {
		if err := os.MkdirAll(filepath.Join(folder, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Join(folder, sub), err)
		}
	}

	readme := filepath.Join(folder, "README.md")
	content, err := s.renderDoc("pilot.md", templateData{AgencyName: agencyName, Date: s.today()})
	if err != nil {
		return nil, err
	}
	if err := s.createFile(readme, content); err != nil {
		return nil, err
	}

	return []string{readme, filepath.Join(folder, "briefs"), filepath.Join(folder, "feedback")}, nil
}

// NewInterview creates a dated interview document under the pilot's feedback
// folder.
func (s *Scaffolder) NewInterview(agencyName string) (string, error) {
	slug := Slugify(agencyName)
	path := filepath.Join(s.Dir(), "pilots", slug, "feedback", s.today()+"-interview.md")

	content, err := s.renderDoc("interview.md", templateData{AgencyName: agencyName, Date: s.today()})
	if err != nil {
		return "", err
	}
	return path, s.createFile(path, content)
}

// NewFinding creates a dated research finding document.
func (s *Scaffolder) NewFinding(topic string) (string, error) {
	slug := Slugify(topic)
	path := filepath.Join(s.Dir(), "findings", s.today()+"-"+slug+".md")

	content, err := s.renderDoc("finding.md", templateData{Title: topic, Date: s.today()})
	if err != nil {
		return "", err
	}
	return path, s.createFile(path, content)
}
