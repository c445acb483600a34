package research

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// listFolders maps a list filter to its folder.
var listFolders = map[string][]string{
	"domain":  {"domains"},
	"spec":    {"agents", "specifications"},
	"eval":    {"agents", "evaluations"},
	"pilot":   {"pilots"},
	"finding": {"findings"},
}

// ListTypes are the accepted arguments to List.
func ListTypes() []string {
	types := make([]string, 0, len(listFolders))
	for t := range listFolders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// List renders an indented tree of the markdown documents under the research
// directory, optionally narrowed to one document type.
func (s *Scaffolder) List(docType string) (string, error) {
	root := s.Dir()
	if docType != "" {
		parts, ok := listFolders[docType]
		if !ok {
			return "", fmt.Errorf("unknown type: %s (types: %s)", docType, strings.Join(ListTypes(), ", "))
		}
		root = filepath.Join(append([]string{root}, parts...)...)
	}

	if _, err := os.Stat(s.Dir()); err != nil {
		return "", fmt.Errorf("research folder not found, run 'inquiry research init' first")
	}

	var sb strings.Builder
	if err := listTree(&sb, root, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func listTree(sb *strings.Builder, dir string, depth int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.IsDir() {
			fmt.Fprintf(sb, "%s%s/\n", indent, entry.Name())
			if err := listTree(sb, filepath.Join(dir, entry.Name()), depth+1); err != nil {
				return err
			}
		} else if strings.HasSuffix(entry.Name(), ".md") {
			fmt.Fprintf(sb, "%s%s\n", indent, entry.Name())
		}
	}
	return nil
}

// StatusEntry is one category count in the research status report.
type StatusEntry struct {
	Category string
	Count    int
}

// Status counts documents per category. The categories are independent
// subtrees, so they are counted concurrently.
func (s *Scaffolder) Status(ctx context.Context) ([]StatusEntry, error) {
	if _, err := os.Stat(s.Dir()); err != nil {
		return nil, fmt.Errorf("research folder not found, run 'inquiry research init' first")
	}

	entries := []StatusEntry{
		{Category: "Domain Research"},
		{Category: "Agent Specs"},
		{Category: "Agent Evaluations"},
		{Category: "Test Cases"},
		{Category: "Pilots"},
		{Category: "Findings"},
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries[0].Count, err = countFiles(filepath.Join(s.Dir(), "domains"), ".md")
		return
	})
	g.Go(func() (err error) {
		entries[1].Count, err = countFiles(filepath.Join(s.Dir(), "agents", "specifications"), ".md")
		return
	})
	g.Go(func() (err error) {
		entries[2].Count, err = countFiles(filepath.Join(s.Dir(), "agents", "evaluations"), ".md")
		return
	})
	g.Go(func() (err error) {
		entries[3].Count, err = countFiles(filepath.Join(s.Dir(), "agents", "test-cases"), ".json")
		return
	})
	g.Go(func() (err error) {
		entries[4].Count, err = countDirs(filepath.Join(s.Dir(), "pilots"))
		return
	})
	g.Go(func() (err error) {
		entries[5].Count, err = countFiles(filepath.Join(s.Dir(), "findings"), ".md")
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func countFiles(dir, ext string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if !d.IsDir() && strings.HasSuffix(name, ext) && !strings.HasPrefix(name, ".") {
			count++
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	return count, err
}

func countDirs(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}
	return count, nil
}
