package research

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// initDirs is the fixed research folder tree, leaf paths only. Parents are
// created implicitly.
var initDirs = []string{
	"domains/claim-categories/ftc-guidelines",
	"domains/claim-categories/industry-specific",
	"domains/brief-types/templates",
	"domains/brief-types/samples",
	"domains/agency-workflow",
	"domains/sources",
	"agents/specifications",
	"agents/test-cases",
	"agents/evaluations",
	"pilots",
	"knowledge-base/ftc/enforcement-actions",
	"knowledge-base/ftc/guidelines",
	"knowledge-base/regulations",
	"findings",
}

const researchReadme = `# Research

This folder contains all research documentation for the Inquiry Framework.

## Structure

` + "```" + `
research/
├── domains/           # Domain research
│   ├── claim-categories/
│   ├── brief-types/
│   ├── agency-workflow/
│   └── sources/
├── agents/            # Agent specifications and evaluations
│   ├── specifications/
│   ├── test-cases/
│   └── evaluations/
├── pilots/            # Pilot agency documentation
├── knowledge-base/    # Reference materials
│   ├── ftc/
│   └── regulations/
└── findings/          # Individual research findings
` + "```" + `

## Managing Research

Use the research commands:

` + "```bash" + `
inquiry research new domain "FTC claim categories"
inquiry research new spec ClaimExtraction
inquiry research new pilot "Agency A"
` + "```" + `

See ` + "`inquiry research --help`" + ` for all commands.
`

// Init creates the research folder tree with .gitkeep markers in empty
// folders and (re)writes the research README. Returns the directories that
// did not exist before, relative to the repository root.
func (s *Scaffolder) Init() ([]string, error) {
	var created []string

	for _, leaf := range initDirs {
		dir := filepath.Join(s.Dir(), filepath.FromSlash(leaf))
		_, statErr := os.Stat(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		if os.IsNotExist(statErr) {
			created = append(created, s.Rel(dir))
		}
		if err := touchGitkeep(dir); err != nil {
			return nil, err
		}
	}

	readme := filepath.Join(s.Dir(), "README.md")
	if err := os.WriteFile(readme, []byte(researchReadme), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", readme, err)
	}
	s.logger.Info("research structure initialized", zap.String("dir", s.Dir()))

	return created, nil
}

// touchGitkeep drops a .gitkeep into a directory that is otherwise empty so
// git tracks it.
func touchGitkeep(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, ".gitkeep"), os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
