// Package promptgen manages the per-feature markdown prompt files: scaffolding
// them from the feature catalog, and filtering and combining them into a
// single document for batch execution.
package promptgen

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"inquiry/internal/config"
)

//go:embed templates
var templates embed.FS

var scaffoldTemplate = template.Must(template.ParseFS(templates, "templates/prompt.md"))

// File is one prompt file on disk. The ID is the file stem (e.g. "R.1.1") and
// the Type is the segment before the first dot.
type File struct {
	ID   string
	Path string
	Type string
}

// TypeNames maps type letters and phase digits to display names.
var TypeNames = map[string]string{
	"R": "Research",
	"S": "Specs",
	"V": "Validation",
	"P": "Pilot",
	"1": "Phase 1",
	"2": "Phase 2",
	"3": "Phase 3",
	"4": "Phase 4",
	"5": "Phase 5",
}

// Scan lists the markdown prompt files in dir, sorted by filename. A missing
// directory yields an empty slice.
func Scan(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read prompts dir: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		files = append(files, File{
			ID:   id,
			Path: filepath.Join(dir, entry.Name()),
			Type: typeOf(id),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func typeOf(id string) string {
	if t, _, ok := strings.Cut(id, "."); ok {
		return t
	}
	if id == "" {
		return ""
	}
	return id[:1]
}

// Filter selects prompts by type letters, explicit ids, or phase number.
type Filter struct {
	Types []string
	IDs   []string
	Phase *int
}

// Apply returns the prompts matching every set criterion.
func (f Filter) Apply(files []File) []File {
	out := files

	if len(f.IDs) > 0 {
		want := make(map[string]bool, len(f.IDs))
		for _, id := range f.IDs {
			want[strings.TrimSpace(id)] = true
		}
		out = keep(out, func(p File) bool { return want[p.ID] })
	}

	if len(f.Types) > 0 {
		want := make(map[string]bool, len(f.Types))
		for _, t := range f.Types {
			want[strings.ToUpper(strings.TrimSpace(t))] = true
		}
		out = keep(out, func(p File) bool { return want[strings.ToUpper(p.Type)] })
	}

	if f.Phase != nil {
		phase := strconv.Itoa(*f.Phase)
		out = keep(out, func(p File) bool {
			return strings.Contains(p.ID, "."+phase+".") ||
				strings.HasPrefix(p.ID, p.Type+"."+phase)
		})
	}

	return out
}

func keep(files []File, pred func(File) bool) []File {
	var out []File
	for _, f := range files {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// OutputName derives the combined-output filename from the filter:
// prompts-R-S.md, prompts-custom.md, prompts-phase-2.md, or prompts-all.md.
func (f Filter) OutputName() string {
	switch {
	case len(f.Types) > 0:
		return fmt.Sprintf("prompts-%s.md", strings.ToUpper(strings.Join(f.Types, "-")))
	case len(f.IDs) > 0:
		return "prompts-custom.md"
	case f.Phase != nil:
		return fmt.Sprintf("prompts-phase-%d.md", *f.Phase)
	default:
		return "prompts-all.md"
	}
}

// Combine concatenates prompt files into a single markdown document with a
// generated header and per-prompt markers.
func Combine(files []File, now time.Time) (string, error) {
	var lines []string

	lines = append(lines, "# Combined Prompts")
	lines = append(lines, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")))
	lines = append(lines, fmt.Sprintf("Total prompts: %d", len(files)))
	lines = append(lines, "")
	lines = append(lines, "## Prompts Included")
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("- %s", f.ID))
	}
	lines = append(lines, "", "---", "")

	for i, f := range files {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			return "", fmt.Errorf("read prompt %s: %w", f.ID, err)
		}
		if i > 0 {
			lines = append(lines, "", "---", "")
		}
		lines = append(lines, fmt.Sprintf("<!-- PROMPT: %s -->", f.ID), "", string(content))
	}

	return strings.Join(lines, "\n"), nil
}

// Scaffold writes the prompt template for a feature to path. An existing file
// is left untouched unless overwrite is set; the return value reports whether
// the file was written.
func Scaffold(path string, feature config.Feature, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create prompts dir: %w", err)
	}

	ctx := strings.TrimSpace(feature.Description)
	if ctx == "" {
		ctx = "TODO: Add context"
	}

	var sb strings.Builder
	err := scaffoldTemplate.Execute(&sb, struct {
		Feature config.Feature
		Context string
	}{feature, ctx})
	if err != nil {
		return false, fmt.Errorf("render prompt template: %w", err)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
