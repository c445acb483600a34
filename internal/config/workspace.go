package config

import "path/filepath"

// Workspace resolves the well-known paths that live next to features.yaml:
// the prompts directory, the generated-output directory, the current-feature
// marker, and the issue ledger.
type Workspace struct {
	ConfigPath string
}

// NewWorkspace builds a Workspace rooted at the given config file path.
func NewWorkspace(configPath string) Workspace {
	return Workspace{ConfigPath: configPath}
}

// Dir is the directory containing the config file.
func (w Workspace) Dir() string { return filepath.Dir(w.ConfigPath) }

// PromptsDir holds one markdown prompt file per feature or research id.
func (w Workspace) PromptsDir() string { return filepath.Join(w.Dir(), "prompts") }

// GeneratedDir receives combined prompt output.
func (w Workspace) GeneratedDir() string { return filepath.Join(w.Dir(), "generated") }

// CurrentFile is the marker recording the feature currently in progress.
func (w Workspace) CurrentFile() string { return filepath.Join(w.Dir(), ".current") }

// LedgerPath is the SQLite database recording created issues.
func (w Workspace) LedgerPath() string {
	return filepath.Join(w.Dir(), ".inquiry", "ledger.db")
}

// PromptFile is the prompt path for a feature or prompt id.
func (w Workspace) PromptFile(id string) string {
	return filepath.Join(w.PromptsDir(), id+".md")
}
